package montepi

import (
	"errors"
	"fmt"
	"math"
)

// Common errors returned by Simulation operations.
var (
	// ErrInvalidDimensions is returned when width or height is not positive.
	ErrInvalidDimensions = errors.New("montepi: invalid dimensions")

	// ErrSizeMismatch is returned by surfaces given a pixel slice whose
	// length does not match their dimensions.
	ErrSizeMismatch = errors.New("montepi: pixel count does not match surface size")
)

// Surface receives packed RGBA8888 pixels in one bulk update.
// len(pixels) is always width*height, row-major.
type Surface interface {
	Update(pixels []uint32, width, height int) error
}

// Simulation owns the accumulation buffers, the display buffer and the
// sample counters. It is not safe for concurrent use; the frame loop owns it.
type Simulation struct {
	width  int
	height int

	gen     Generator
	inside  Color
	outside Color

	// Per-pixel accumulators, all of length width*height.
	sumR    []uint32
	sumG    []uint32
	sumB    []uint32
	samples []uint32

	pixels []uint32

	totalPoints  uint64
	insideCircle uint64

	surface Surface
}

// New creates a cleared simulation for a width x height texture and pushes
// the black buffer to the surface, if one was given.
func New(width, height int, opts ...Option) (*Simulation, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, width, height)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	s := &Simulation{
		width:   width,
		height:  height,
		gen:     Generator{state: o.seed},
		inside:  o.inside,
		outside: o.outside,
		surface: o.surface,
	}
	if err := s.reset(width * height); err != nil {
		return nil, err
	}
	return s, nil
}

// Width returns the texture width in pixels.
func (s *Simulation) Width() int { return s.width }

// Height returns the texture height in pixels.
func (s *Simulation) Height() int { return s.height }

// Pixels returns the display buffer. The slice is owned by the simulation and
// is overwritten by the next Resolve or reset.
func (s *Simulation) Pixels() []uint32 { return s.pixels }

// SampleCounts returns the per-pixel sample counts. Read only.
func (s *Simulation) SampleCounts() []uint32 { return s.samples }

// Sums returns the accumulated channel sums of pixel i.
func (s *Simulation) Sums(i int) (r, g, b uint32) {
	return s.sumR[i], s.sumG[i], s.sumB[i]
}

// Stats returns a snapshot of the counters.
func (s *Simulation) Stats() Stats {
	return Stats{Total: s.totalPoints, Inside: s.insideCircle}
}

// GeneratorState returns the current generator state.
func (s *Simulation) GeneratorState() uint32 { return s.gen.State() }

// InsideColor returns the color added for samples inside the circle.
func (s *Simulation) InsideColor() Color { return s.inside }

// OutsideColor returns the color added for samples outside the circle.
func (s *Simulation) OutsideColor() Color { return s.outside }

// SetInsideColor changes the inside color. Accumulated samples were colored
// with the old value, so a change resets the buffers.
func (s *Simulation) SetInsideColor(c Color) error {
	if c == s.inside {
		return nil
	}
	s.inside = c
	return s.Reset()
}

// SetOutsideColor changes the outside color and resets on change.
func (s *Simulation) SetOutsideColor(c Color) error {
	if c == s.outside {
		return nil
	}
	s.outside = c
	return s.Reset()
}

// PixelIndex maps a sample in [0, 1]² to a row-major index in a width x height
// texture. Coordinates of exactly 1.0 are clamped onto the last row/column.
func PixelIndex(x, y float32, width, height int) int {
	px := int(x * float32(width))
	py := int(y * float32(height))
	if px >= width {
		px = width - 1
	}
	if py >= height {
		py = height - 1
	}
	return py*width + px
}

// Inside reports whether a sample in [0, 1]² lies inside the circle inscribed
// in the unit square. The sample is remapped to [-1, 1]² and tested with
// norm <= 1, so points exactly on the circle count as inside.
func Inside(x, y float32) bool {
	cx := float32(x*2) - 1
	cy := float32(y*2) - 1
	return Norm(cx, cy) <= 1
}

// Norm returns the float32 Euclidean length of (x, y).
func Norm(x, y float32) float32 {
	d := float32(x*x) + float32(y*y)
	return float32(math.Sqrt(float64(d)))
}

// Step draws n samples and accumulates them. n <= 0 draws nothing.
func (s *Simulation) Step(n int) {
	for range n {
		x := s.gen.Float32()
		y := s.gen.Float32()
		i := PixelIndex(x, y, s.width, s.height)

		s.samples[i]++
		s.totalPoints++

		c := s.outside
		if Inside(x, y) {
			c = s.inside
			s.insideCircle++
		}

		s.sumR[i] += uint32(c.R)
		s.sumG[i] += uint32(c.G)
		s.sumB[i] += uint32(c.B)
	}
}

// Resolve recomputes every display pixel from the accumulators, regardless of
// which pixels changed since the last call.
func (s *Simulation) Resolve() {
	for i, n := range s.samples {
		s.pixels[i] = ResolvePixel(s.sumR[i], s.sumG[i], s.sumB[i], n)
	}
}

// ResolvePixel returns the packed average color of one pixel: each channel
// sum divided by count, truncated. Zero samples resolve to opaque black.
func ResolvePixel(sumR, sumG, sumB, count uint32) uint32 {
	if count == 0 {
		return Black
	}
	return PackRGBA(uint8(sumR/count), uint8(sumG/count), uint8(sumB/count), 255)
}

// Frame runs one simulation frame: Step(n), Resolve, then one bulk push to
// the surface.
func (s *Simulation) Frame(n int) error {
	s.Step(n)
	s.Resolve()
	return s.push()
}

// Reset clears all accumulation at the current size.
func (s *Simulation) Reset() error {
	return s.reset(s.width * s.height)
}

// Resize discards all accumulation and switches to a width x height texture.
// Old samples are never rescaled.
func (s *Simulation) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, width, height)
	}
	s.width = width
	s.height = height
	return s.reset(width * height)
}

// reset resizes all five buffers to pixelCount, zeroes the accumulators and
// counters, fills the display with opaque black and pushes it.
func (s *Simulation) reset(pixelCount int) error {
	s.totalPoints = 0
	s.insideCircle = 0

	s.sumR = resizeZeroed(s.sumR, pixelCount)
	s.sumG = resizeZeroed(s.sumG, pixelCount)
	s.sumB = resizeZeroed(s.sumB, pixelCount)
	s.samples = resizeZeroed(s.samples, pixelCount)

	s.pixels = resizeZeroed(s.pixels, pixelCount)
	for i := range s.pixels {
		s.pixels[i] = Black
	}

	Logger().Debug("montepi: reset", "width", s.width, "height", s.height, "pixels", pixelCount)
	return s.push()
}

func (s *Simulation) push() error {
	if s.surface == nil {
		return nil
	}
	if err := s.surface.Update(s.pixels, s.width, s.height); err != nil {
		return fmt.Errorf("montepi: surface update: %w", err)
	}
	return nil
}

// resizeZeroed returns a zeroed slice of length n, reusing buf's storage when
// it is large enough.
func resizeZeroed(buf []uint32, n int) []uint32 {
	if cap(buf) < n {
		return make([]uint32, n)
	}
	buf = buf[:n]
	clear(buf)
	return buf
}
