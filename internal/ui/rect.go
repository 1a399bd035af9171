package ui

import "math"

// Rect is an axis-aligned rectangle in window pixels.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether (x, y) lies inside r. The right and bottom edges
// are exclusive.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Inset shrinks r by d on every side. The result never has negative size.
func (r Rect) Inset(d float64) Rect {
	out := Rect{X: r.X + d, Y: r.Y + d, W: r.W - 2*d, H: r.H - 2*d}
	out.W = max(out.W, 0)
	out.H = max(out.H, 0)
	return out
}

// SplitRight cuts a column of width w off the right side of r and returns
// the remaining left part and the column. w is clamped to r.W.
func (r Rect) SplitRight(w float64) (left, right Rect) {
	w = max(0, min(w, r.W))
	left = Rect{X: r.X, Y: r.Y, W: r.W - w, H: r.H}
	right = Rect{X: r.X + r.W - w, Y: r.Y, W: w, H: r.H}
	return left, right
}

// SplitTop cuts a row of height h off the top of r.
func (r Rect) SplitTop(h float64) (top, rest Rect) {
	h = max(0, min(h, r.H))
	top = Rect{X: r.X, Y: r.Y, W: r.W, H: h}
	rest = Rect{X: r.X, Y: r.Y + h, W: r.W, H: r.H - h}
	return top, rest
}

// FitAspect returns the largest rectangle with the aspect ratio srcW:srcH that
// fits in r, centered. Edges are snapped to whole pixels.
func (r Rect) FitAspect(srcW, srcH int) Rect {
	if srcW <= 0 || srcH <= 0 || r.Empty() {
		return Rect{X: r.X, Y: r.Y}
	}

	src := float64(srcW) / float64(srcH)
	dst := r.W / r.H

	var w, h float64
	if src > dst {
		// Source is wider, fit to width
		w = r.W
		h = r.W / src
	} else {
		h = r.H
		w = r.H * src
	}
	w = math.Floor(w)
	h = math.Floor(h)

	return Rect{
		X: math.Floor(r.X + (r.W-w)/2),
		Y: math.Floor(r.Y + (r.H-h)/2),
		W: w,
		H: h,
	}
}
