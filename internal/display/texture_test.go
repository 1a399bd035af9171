package display

import (
	"errors"
	"testing"

	"github.com/gogpu/gg"

	"github.com/gogpu/montepi"
	"github.com/gogpu/montepi/internal/ui"
)

func mustTexture(t *testing.T, w, h int) *Texture {
	t.Helper()
	tex, err := New(w, h)
	if err != nil {
		t.Fatalf("New(%d, %d) = %v", w, h, err)
	}
	return tex
}

func TestNew_Black(t *testing.T) {
	tex := mustTexture(t, 4, 3)
	if w, h := tex.Size(); w != 4 || h != 3 {
		t.Fatalf("Size() = %dx%d, want 4x3", w, h)
	}
	img := tex.Image()
	for y := range 3 {
		for x := range 4 {
			if c := img.RGBAAt(x, y); c.R != 0 || c.G != 0 || c.B != 0 || c.A != 255 {
				t.Fatalf("pixel (%d, %d) = %v, want opaque black", x, y, c)
			}
		}
	}
}

func TestNew_Invalid(t *testing.T) {
	if _, err := New(0, 4); !errors.Is(err, montepi.ErrInvalidDimensions) {
		t.Errorf("New(0, 4) = %v, want ErrInvalidDimensions", err)
	}
}

func TestUpdate_UnpacksChannels(t *testing.T) {
	tex := mustTexture(t, 2, 2)
	pixels := []uint32{
		montepi.PackRGBA(255, 0, 0, 255), montepi.PackRGBA(0, 255, 0, 255),
		montepi.PackRGBA(0, 0, 255, 255), montepi.PackRGBA(120, 160, 255, 255),
	}
	if err := tex.Update(pixels, 2, 2); err != nil {
		t.Fatalf("Update() = %v", err)
	}

	img := tex.Image()
	tests := []struct {
		x, y       int
		r, g, b, a uint8
	}{
		{0, 0, 255, 0, 0, 255},
		{1, 0, 0, 255, 0, 255},
		{0, 1, 0, 0, 255, 255},
		{1, 1, 120, 160, 255, 255},
	}
	for _, tt := range tests {
		c := img.RGBAAt(tt.x, tt.y)
		if c.R != tt.r || c.G != tt.g || c.B != tt.b || c.A != tt.a {
			t.Errorf("pixel (%d, %d) = %v, want (%d, %d, %d, %d)", tt.x, tt.y, c, tt.r, tt.g, tt.b, tt.a)
		}
	}
}

func TestUpdate_SizeMismatch(t *testing.T) {
	tex := mustTexture(t, 8, 8)
	if err := tex.Update(make([]uint32, 16*16), 16, 16); !errors.Is(err, montepi.ErrSizeMismatch) {
		t.Errorf("Update(16x16) = %v, want ErrSizeMismatch", err)
	}
	if err := tex.Update(make([]uint32, 10), 8, 8); !errors.Is(err, montepi.ErrSizeMismatch) {
		t.Errorf("Update(short slice) = %v, want ErrSizeMismatch", err)
	}
}

func TestRecreate_ThenSimulationResize(t *testing.T) {
	tex := mustTexture(t, 512, 512)
	sim, err := montepi.New(512, 512, montepi.WithSurface(tex))
	if err != nil {
		t.Fatal(err)
	}
	if err := sim.Frame(100); err != nil {
		t.Fatal(err)
	}

	if err := tex.Recreate(1024, 1024); err != nil {
		t.Fatalf("Recreate() = %v", err)
	}
	if err := sim.Resize(1024, 1024); err != nil {
		t.Fatalf("Resize() = %v", err)
	}
	if w, h := tex.Size(); w != 1024 || h != 1024 {
		t.Errorf("Size() = %dx%d, want 1024x1024", w, h)
	}
	if err := sim.Frame(10); err != nil {
		t.Errorf("Frame() after resize = %v", err)
	}
}

func TestDraw_NearestNeighbor(t *testing.T) {
	tex := mustTexture(t, 2, 2)
	red := montepi.PackRGBA(255, 0, 0, 255)
	blue := montepi.PackRGBA(0, 0, 255, 255)
	if err := tex.Update([]uint32{red, blue, blue, red}, 2, 2); err != nil {
		t.Fatal(err)
	}

	dc := gg.NewContext(200, 100)
	t.Cleanup(func() { _ = dc.Close() })

	got := tex.Draw(dc, ui.Rect{W: 200, H: 100})
	if want := (ui.Rect{X: 50, Y: 0, W: 100, H: 100}); got != want {
		t.Fatalf("Draw() = %+v, want %+v", got, want)
	}

	img := dc.Image()
	tests := []struct {
		x, y    int
		r, g, b uint32
	}{
		{60, 10, 255, 0, 0},
		{98, 48, 255, 0, 0},
		{101, 10, 0, 0, 255},
		{60, 60, 0, 0, 255},
		{140, 90, 255, 0, 0},
	}
	for _, tt := range tests {
		r, g, b, a := img.At(tt.x, tt.y).RGBA()
		r, g, b, a = r>>8, g>>8, b>>8, a>>8
		if !near(r, tt.r) || !near(g, tt.g) || !near(b, tt.b) || a != 255 {
			t.Errorf("pixel (%d, %d) = (%d, %d, %d, %d), want (%d, %d, %d, 255)",
				tt.x, tt.y, r, g, b, a, tt.r, tt.g, tt.b)
		}
	}
}

func TestDraw_ReusesView(t *testing.T) {
	tex := mustTexture(t, 8, 8)
	dc := gg.NewContext(64, 64)
	t.Cleanup(func() { _ = dc.Close() })

	tex.Draw(dc, ui.Rect{W: 64, H: 64})
	first := tex.view
	if first == nil || tex.dirty {
		t.Fatalf("after Draw: view=%v dirty=%v", first, tex.dirty)
	}

	tex.Draw(dc, ui.Rect{W: 64, H: 64})
	if tex.view != first {
		t.Error("Draw() reallocated the view for an unchanged size")
	}

	tex.Draw(dc, ui.Rect{W: 32, H: 32})
	if tex.view == first || tex.view.Width() != 32 {
		t.Error("Draw() did not reallocate the view for a new size")
	}
}

func TestDraw_EmptyArea(t *testing.T) {
	tex := mustTexture(t, 8, 8)
	dc := gg.NewContext(16, 16)
	t.Cleanup(func() { _ = dc.Close() })

	if got := tex.Draw(dc, ui.Rect{X: 3, Y: 4}); !got.Empty() {
		t.Errorf("Draw() into an empty area = %+v", got)
	}
	if tex.view != nil {
		t.Error("Draw() into an empty area allocated a view")
	}
}

func near(got, want uint32) bool {
	d := int(got) - int(want)
	return d >= -2 && d <= 2
}
