package montepi

import (
	"errors"
	"math"
	"testing"
)

// recordingSurface keeps a copy of the last update it received.
type recordingSurface struct {
	updates int
	last    []uint32
	width   int
	height  int
	err     error
}

func (r *recordingSurface) Update(pixels []uint32, width, height int) error {
	if r.err != nil {
		return r.err
	}
	if len(pixels) != width*height {
		return ErrSizeMismatch
	}
	r.updates++
	r.last = append(r.last[:0], pixels...)
	r.width, r.height = width, height
	return nil
}

func mustNew(t *testing.T, w, h int, opts ...Option) *Simulation {
	t.Helper()
	s, err := New(w, h, opts...)
	if err != nil {
		t.Fatalf("New(%d, %d) = %v", w, h, err)
	}
	return s
}

// assertCleared checks the post-reset state.
func assertCleared(t *testing.T, s *Simulation) {
	t.Helper()
	n := s.Width() * s.Height()
	if len(s.sumR) != n || len(s.sumG) != n || len(s.sumB) != n || len(s.samples) != n || len(s.pixels) != n {
		t.Fatalf("buffer lengths = (%d, %d, %d, %d, %d), want %d",
			len(s.sumR), len(s.sumG), len(s.sumB), len(s.samples), len(s.pixels), n)
	}
	for i := range n {
		r, g, b := s.Sums(i)
		if r != 0 || g != 0 || b != 0 || s.samples[i] != 0 {
			t.Fatalf("pixel %d: sums (%d, %d, %d) count %d, want all zero", i, r, g, b, s.samples[i])
		}
		if s.pixels[i] != Black {
			t.Fatalf("pixel %d: display %#08x, want opaque black", i, s.pixels[i])
		}
	}
	if st := s.Stats(); st.Total != 0 || st.Inside != 0 {
		t.Errorf("Stats() = %+v, want zero counters", st)
	}
}

func TestNew_InvalidDimensions(t *testing.T) {
	for _, dims := range [][2]int{{0, 8}, {8, 0}, {-1, 8}, {0, 0}} {
		if _, err := New(dims[0], dims[1]); !errors.Is(err, ErrInvalidDimensions) {
			t.Errorf("New(%d, %d) error = %v, want ErrInvalidDimensions", dims[0], dims[1], err)
		}
	}
}

func TestNew_PushesClearedBuffer(t *testing.T) {
	surf := &recordingSurface{}
	s := mustNew(t, 16, 16, WithSurface(surf))

	assertCleared(t, s)
	if surf.updates != 1 {
		t.Fatalf("surface updates = %d, want 1", surf.updates)
	}
	if surf.width != 16 || surf.height != 16 || len(surf.last) != 256 {
		t.Errorf("surface got %dx%d with %d pixels, want 16x16 with 256", surf.width, surf.height, len(surf.last))
	}
}

func TestPixelIndex(t *testing.T) {
	tests := []struct {
		name string
		x, y float32
		w, h int
		want int
	}{
		{"origin", 0, 0, 8, 8, 0},
		{"last column", 0.99, 0, 8, 8, 7},
		{"x exactly one", 1, 0, 8, 8, 7},
		{"y exactly one", 0, 1, 8, 8, 56},
		{"both one", 1, 1, 8, 8, 63},
		{"center", 0.5, 0.5, 8, 8, 4*8 + 4},
		{"non square", 1, 1, 4, 2, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PixelIndex(tt.x, tt.y, tt.w, tt.h); got != tt.want {
				t.Errorf("PixelIndex(%v, %v, %d, %d) = %d, want %d", tt.x, tt.y, tt.w, tt.h, got, tt.want)
			}
		})
	}
}

func TestPixelIndex_AlwaysInRange(t *testing.T) {
	g := NewGenerator(0)
	for _, size := range TextureSizes {
		for range 5000 {
			i := PixelIndex(g.Float32(), g.Float32(), size, size)
			if i < 0 || i >= size*size {
				t.Fatalf("PixelIndex() = %d, outside [0, %d)", i, size*size)
			}
		}
	}
}

func TestInside(t *testing.T) {
	tests := []struct {
		name string
		x, y float32
		want bool
	}{
		{"center", 0.5, 0.5, true},
		{"right edge on circle", 1, 0.5, true},
		{"left edge on circle", 0, 0.5, true},
		{"top edge on circle", 0.5, 0, true},
		{"corner", 0, 0, false},
		{"far corner", 1, 1, false},
		{"just outside diagonal", 0.9, 0.9, false},
		{"inside diagonal", 0.8, 0.8, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Inside(tt.x, tt.y); got != tt.want {
				t.Errorf("Inside(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestNorm(t *testing.T) {
	if got := Norm(1, 0); got != 1 {
		t.Errorf("Norm(1, 0) = %v, want 1", got)
	}
	if got := Norm(3, 4); got != 5 {
		t.Errorf("Norm(3, 4) = %v, want 5", got)
	}
}

func TestResolvePixel(t *testing.T) {
	tests := []struct {
		name             string
		r, g, b, count   uint32
		wantR, wantG, wB uint8
	}{
		{"no samples", 500, 500, 500, 0, 0, 0, 0},
		{"single", 120, 160, 255, 1, 120, 160, 255},
		{"truncates", 255 + 120, 140 + 160, 140 + 255, 2, 187, 150, 197},
		{"three", 10, 11, 2, 3, 3, 3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b, a := UnpackRGBA(ResolvePixel(tt.r, tt.g, tt.b, tt.count))
			if r != tt.wantR || g != tt.wantG || b != tt.wB || a != 255 {
				t.Errorf("ResolvePixel() = (%d, %d, %d, %d), want (%d, %d, %d, 255)",
					r, g, b, a, tt.wantR, tt.wantG, tt.wB)
			}
		})
	}
}

// replay draws n samples from a fresh generator and returns the expected
// per-pixel counts and inside count.
func replay(seed uint32, n, w, h int) (counts []uint32, inside uint64) {
	counts = make([]uint32, w*h)
	state := seed
	for range n {
		x := NextFloat(&state)
		y := NextFloat(&state)
		counts[PixelIndex(x, y, w, h)]++
		if Inside(x, y) {
			inside++
		}
	}
	return counts, inside
}

func TestStep_MatchesReplay(t *testing.T) {
	const n = 5000
	s := mustNew(t, 32, 32)
	for range n / 100 {
		s.Step(100)
	}

	counts, inside := replay(0, n, 32, 32)
	st := s.Stats()
	if st.Total != n {
		t.Errorf("Total = %d, want %d", st.Total, n)
	}
	if st.Inside != inside {
		t.Errorf("Inside = %d, want %d", st.Inside, inside)
	}
	if st.Inside > st.Total {
		t.Errorf("Inside %d > Total %d", st.Inside, st.Total)
	}
	for i, c := range s.SampleCounts() {
		if c != counts[i] {
			t.Fatalf("pixel %d: count = %d, want %d", i, c, counts[i])
		}
	}
}

func TestStep_SumsAreColorMultiples(t *testing.T) {
	in := Color{R: 10, G: 20, B: 30}
	out := Color{R: 1, G: 2, B: 3}
	s := mustNew(t, 8, 8, WithColors(in, out))
	s.Step(2000)

	for i, n := range s.SampleCounts() {
		r, g, b := s.Sums(i)
		// r = 10*k + 1*(n-k) for some k in [0, n].
		k := (r - n) / 9
		if (r-n)%9 != 0 || k > n {
			t.Fatalf("pixel %d: red sum %d is not a mix of %d samples", i, r, n)
		}
		if g != 20*k+2*(n-k) || b != 30*k+3*(n-k) {
			t.Fatalf("pixel %d: sums (%d, %d, %d) inconsistent with %d inside of %d", i, r, g, b, k, n)
		}
	}
}

func TestStep_NonPositiveDrawsNothing(t *testing.T) {
	s := mustNew(t, 8, 8)
	s.Step(0)
	s.Step(-5)
	if st := s.Stats(); st.Total != 0 {
		t.Errorf("Total = %d after Step(0) and Step(-5), want 0", st.Total)
	}
	if s.GeneratorState() != 0 {
		t.Errorf("GeneratorState() = %d, want untouched 0", s.GeneratorState())
	}
}

func TestFrame_EightByEightScenario(t *testing.T) {
	surf := &recordingSurface{}
	s := mustNew(t, 8, 8, WithSurface(surf))

	for range 64 {
		if err := s.Frame(1); err != nil {
			t.Fatalf("Frame(1) = %v", err)
		}
	}

	st := s.Stats()
	if st.Total != 64 {
		t.Errorf("Total = %d, want 64", st.Total)
	}
	var sum uint32
	for _, c := range s.SampleCounts() {
		sum += c
	}
	if sum != 64 {
		t.Errorf("sample counts sum = %d, want 64", sum)
	}

	_, inside := replay(0, 64, 8, 8)
	if st.Inside != inside {
		t.Errorf("Inside = %d, want replayed %d", st.Inside, inside)
	}
	if st.Inside != 57 {
		t.Errorf("Inside = %d, want 57 for seed 0", st.Inside)
	}
	if surf.updates != 65 {
		t.Errorf("surface updates = %d, want 65 (reset + 64 frames)", surf.updates)
	}
}

func TestResolve_MatchesAccumulators(t *testing.T) {
	s := mustNew(t, 16, 16)
	s.Step(3000)
	s.Resolve()

	for i, p := range s.Pixels() {
		r, g, b := s.Sums(i)
		if want := ResolvePixel(r, g, b, s.SampleCounts()[i]); p != want {
			t.Fatalf("pixel %d = %#08x, want %#08x", i, p, want)
		}
	}
}

func TestResolve_Idempotent(t *testing.T) {
	s := mustNew(t, 8, 8)
	s.Step(100)
	s.Resolve()
	first := append([]uint32(nil), s.Pixels()...)
	s.Resolve()
	for i, p := range s.Pixels() {
		if p != first[i] {
			t.Fatalf("pixel %d changed on second Resolve: %#08x -> %#08x", i, first[i], p)
		}
	}
}

func TestReset(t *testing.T) {
	surf := &recordingSurface{}
	s := mustNew(t, 16, 16, WithSurface(surf))
	if err := s.Frame(500); err != nil {
		t.Fatal(err)
	}
	if err := s.Reset(); err != nil {
		t.Fatalf("Reset() = %v", err)
	}

	assertCleared(t, s)
	for i, p := range surf.last {
		if p != Black {
			t.Fatalf("surface pixel %d = %#08x after reset, want black", i, p)
		}
	}
}

func TestResize_DiscardsAccumulation(t *testing.T) {
	surf := &recordingSurface{}
	s := mustNew(t, 512, 512, WithSurface(surf))
	if err := s.Frame(1000); err != nil {
		t.Fatal(err)
	}

	if err := s.Resize(1024, 1024); err != nil {
		t.Fatalf("Resize() = %v", err)
	}
	if s.Width() != 1024 || s.Height() != 1024 {
		t.Fatalf("size = %dx%d, want 1024x1024", s.Width(), s.Height())
	}
	assertCleared(t, s)
	if surf.width != 1024 || len(surf.last) != 1024*1024 {
		t.Errorf("surface got %dx%d (%d pixels), want 1024x1024", surf.width, surf.height, len(surf.last))
	}

	// The generator keeps running; only accumulation is discarded.
	if s.GeneratorState() == 0 {
		t.Error("Resize() rewound the generator")
	}
}

func TestResize_Invalid(t *testing.T) {
	s := mustNew(t, 8, 8)
	if err := s.Resize(0, 8); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("Resize(0, 8) = %v, want ErrInvalidDimensions", err)
	}
	if s.Width() != 8 {
		t.Errorf("failed Resize changed width to %d", s.Width())
	}
}

func TestSetColors_ResetOnlyOnChange(t *testing.T) {
	s := mustNew(t, 8, 8)
	s.Step(50)

	if err := s.SetInsideColor(DefaultInsideColor); err != nil {
		t.Fatal(err)
	}
	if s.Stats().Total != 50 {
		t.Fatalf("setting the same inside color reset the buffers")
	}

	if err := s.SetOutsideColor(Color{R: 1}); err != nil {
		t.Fatal(err)
	}
	assertCleared(t, s)
	if s.OutsideColor() != (Color{R: 1}) {
		t.Errorf("OutsideColor() = %+v, want {R:1}", s.OutsideColor())
	}

	s.Step(50)
	if err := s.SetInsideColor(Color{G: 9}); err != nil {
		t.Fatal(err)
	}
	assertCleared(t, s)
}

func TestFrame_SurfaceError(t *testing.T) {
	boom := errors.New("boom")
	surf := &recordingSurface{}
	s := mustNew(t, 8, 8, WithSurface(surf))
	surf.err = boom

	if err := s.Frame(1); !errors.Is(err, boom) {
		t.Errorf("Frame() = %v, want wrapped boom", err)
	}
	if s.Stats().Total != 1 {
		t.Errorf("Total = %d, want the sample kept despite the push error", s.Stats().Total)
	}
}

func TestWithSeed(t *testing.T) {
	a := mustNew(t, 8, 8, WithSeed(99))
	b := mustNew(t, 8, 8, WithSeed(99))
	a.Step(200)
	b.Step(200)
	if a.Stats() != b.Stats() {
		t.Errorf("same seed gave %+v and %+v", a.Stats(), b.Stats())
	}
}

func TestEstimateConverges(t *testing.T) {
	s := mustNew(t, 64, 64)
	s.Step(100000)
	if est := s.Stats().Estimate(); math.Abs(est-ActualPi) > 0.02 {
		t.Errorf("Estimate() = %v after 100000 samples, want within 0.02 of pi", est)
	}
}
