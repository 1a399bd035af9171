// Package display holds the viewport texture that receives resolved
// simulation frames and draws them into a gg context.
package display

import (
	"fmt"
	"image"

	"github.com/gogpu/gg"
	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/montepi"
	"github.com/gogpu/montepi/internal/ui"
)

// Texture is a fixed-size RGBA8 image fed by montepi.Simulation. It scales to
// the viewport with nearest-neighbor sampling so single pixels stay sharp.
//
// Texture implements montepi.Surface.
type Texture struct {
	buf *gg.ImageBuf

	// view is buf scaled to the last drawn size.
	view  *gg.ImageBuf
	dirty bool
}

var _ montepi.Surface = (*Texture)(nil)

// New creates a black width x height texture.
func New(width, height int) (*Texture, error) {
	t := &Texture{}
	if err := t.Recreate(width, height); err != nil {
		return nil, err
	}
	return t, nil
}

// Recreate drops the current image and allocates a new width x height one.
// The simulation must be resized to match before the next Update.
func (t *Texture) Recreate(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("display: %w: width=%d, height=%d", montepi.ErrInvalidDimensions, width, height)
	}

	buf, err := gg.NewImageBuf(width, height, gg.FormatRGBA8)
	if err != nil {
		return fmt.Errorf("display: create texture: %w", err)
	}
	fillOpaqueBlack(buf.Data())
	buf.InvalidatePremulCache()

	t.buf = buf
	t.view = nil
	t.dirty = true

	montepi.Logger().Debug("display: texture recreated", "width", width, "height", height)
	return nil
}

// Size returns the texture dimensions.
func (t *Texture) Size() (width, height int) {
	return t.buf.Width(), t.buf.Height()
}

// Update copies packed RGBA8888 pixels into the texture.
func (t *Texture) Update(pixels []uint32, width, height int) error {
	w, h := t.Size()
	if width != w || height != h || len(pixels) != w*h {
		return fmt.Errorf("display: update %dx%d (%d pixels) into %dx%d: %w",
			width, height, len(pixels), w, h, montepi.ErrSizeMismatch)
	}

	data := t.buf.Data()
	stride := t.buf.Stride()
	for y := range h {
		row := data[y*stride : y*stride+w*4]
		src := pixels[y*w : (y+1)*w]
		for x, p := range src {
			r, g, b, a := montepi.UnpackRGBA(p)
			o := x * 4
			row[o+0] = r
			row[o+1] = g
			row[o+2] = b
			row[o+3] = a
		}
	}
	t.buf.InvalidatePremulCache()
	t.dirty = true
	return nil
}

// Image returns an image.RGBA sharing the texture memory. Pixels are always
// opaque, so the premultiplied and straight forms agree.
func (t *Texture) Image() *image.RGBA {
	return rgbaView(t.buf)
}

// Draw fits the texture into area keeping its aspect ratio, centers it and
// returns the rectangle it covers.
func (t *Texture) Draw(dc *gg.Context, area ui.Rect) ui.Rect {
	w, h := t.Size()
	dst := area.FitAspect(w, h)
	if dst.Empty() {
		return dst
	}

	vw, vh := int(dst.W), int(dst.H)
	if t.view == nil || t.view.Width() != vw || t.view.Height() != vh {
		view, err := gg.NewImageBuf(vw, vh, gg.FormatRGBA8)
		if err != nil {
			montepi.Logger().Warn("display: allocate view", "width", vw, "height", vh, "error", err)
			return dst
		}
		t.view = view
		t.dirty = true
	}

	if t.dirty {
		dstImg := rgbaView(t.view)
		srcImg := rgbaView(t.buf)
		xdraw.NearestNeighbor.Scale(dstImg, dstImg.Bounds(), srcImg, srcImg.Bounds(), xdraw.Src, nil)
		t.view.InvalidatePremulCache()
		t.dirty = false
	}

	// The view already has the target size; drawing it 1:1 at whole-pixel
	// offsets copies texels without filtering.
	dc.DrawImage(t.view, dst.X, dst.Y)
	return dst
}

func rgbaView(b *gg.ImageBuf) *image.RGBA {
	return &image.RGBA{
		Pix:    b.Data(),
		Stride: b.Stride(),
		Rect:   image.Rect(0, 0, b.Width(), b.Height()),
	}
}

func fillOpaqueBlack(data []byte) {
	clear(data)
	for i := 3; i < len(data); i += 4 {
		data[i] = 0xFF
	}
}
