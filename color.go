package montepi

import "fmt"

// Color is an opaque 8-bit RGB color used for sample contributions.
type Color struct {
	R, G, B uint8
}

// Default sample colors.
var (
	DefaultInsideColor  = Color{R: 120, G: 160, B: 255}
	DefaultOutsideColor = Color{R: 255, G: 140, B: 140}
)

// Black is the packed value of an unsampled pixel.
var Black = PackRGBA(0, 0, 0, 255)

// Hex returns the color as "#rrggbb".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// PackRGBA packs channels as RGBA8888: R in bits 24-31, G in 16-23,
// B in 8-15 and A in 0-7.
func PackRGBA(r, g, b, a uint8) uint32 {
	return uint32(r)<<24 | uint32(g)<<16 | uint32(b)<<8 | uint32(a)
}

// UnpackRGBA is the inverse of PackRGBA.
func UnpackRGBA(p uint32) (r, g, b, a uint8) {
	return uint8(p >> 24), uint8(p >> 16), uint8(p >> 8), uint8(p)
}
