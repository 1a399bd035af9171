// Package snapshot writes resolved simulation frames to image files.
package snapshot

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"

	"github.com/gogpu/montepi"
)

// ErrUnknownFormat is returned for file extensions other than png, webp and tga.
var ErrUnknownFormat = errors.New("snapshot: unknown image format")

// Format names an output encoding.
type Format string

// Supported formats.
const (
	PNG  Format = "png"
	WebP Format = "webp"
	TGA  Format = "tga"
)

// ParseFormat accepts a format name or extension, with or without the dot.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimPrefix(s, "."))); f {
	case PNG, WebP, TGA:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// FormatOf returns the format implied by path's extension.
func FormatOf(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// Filename returns "montepi-<W>x<H>-<total>.<ext>" inside dir.
func Filename(dir string, width, height int, total uint64, f Format) string {
	return filepath.Join(dir, fmt.Sprintf("montepi-%dx%d-%d.%s", width, height, total, f))
}

// FromPacked converts packed RGBA8888 pixels into a new image.RGBA.
func FromPacked(pixels []uint32, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("snapshot: %w: width=%d, height=%d", montepi.ErrInvalidDimensions, width, height)
	}
	if len(pixels) != width*height {
		return nil, fmt.Errorf("snapshot: %d pixels for %dx%d: %w", len(pixels), width, height, montepi.ErrSizeMismatch)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i, p := range pixels {
		r, g, b, a := montepi.UnpackRGBA(p)
		o := (i/width)*img.Stride + (i%width)*4
		img.Pix[o+0] = r
		img.Pix[o+1] = g
		img.Pix[o+2] = b
		img.Pix[o+3] = a
	}
	return img, nil
}

// Encode writes img to w in format f.
func Encode(w io.Writer, img image.Image, f Format) error {
	var err error
	switch f {
	case PNG:
		err = png.Encode(w, img)
	case WebP:
		err = nativewebp.Encode(w, img, nil)
	case TGA:
		err = tga.Encode(w, img)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
	if err != nil {
		return fmt.Errorf("snapshot: encode %s: %w", f, err)
	}
	return nil
}

// Save writes img to path, choosing the encoder from the extension. Missing
// parent directories are created.
func Save(path string, img image.Image) (err error) {
	f, err := FormatOf(path)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("snapshot: create %s: %w", dir, err)
		}
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("snapshot: create %s: %w", path, err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("snapshot: close %s: %w", path, cerr)
		}
	}()

	if err := Encode(out, img, f); err != nil {
		return err
	}

	montepi.Logger().Info("snapshot written", "path", path, "format", string(f))
	return nil
}

// SaveSimulation writes the current display buffer of sim into dir under
// Filename and returns the path.
func SaveSimulation(sim *montepi.Simulation, dir string, f Format) (string, error) {
	img, err := FromPacked(sim.Pixels(), sim.Width(), sim.Height())
	if err != nil {
		return "", err
	}
	path := Filename(dir, sim.Width(), sim.Height(), sim.Stats().Total, f)
	if err := Save(path, img); err != nil {
		return "", err
	}
	return path, nil
}
