// Package core provides the fundamental types of the console: colors and the
// palette, pixel surfaces, and input keys. It has no external dependencies
// (no Lua, no Bubble Tea) to keep it pure and testable.
package core

// Rect is an axis-aligned pixel rectangle. Surfaces clip every write
// against their Bounds.
type Rect struct {
	X, Y int
	W, H int
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains reports whether pixel (x, y) lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Intersect returns the overlap of r and o, with zero size when they are
// disjoint.
func (r Rect) Intersect(o Rect) Rect {
	x0, y0 := Max(r.X, o.X), Max(r.Y, o.Y)
	x1, y1 := Min(r.Right(), o.Right()), Min(r.Bottom(), o.Bottom())
	return Rect{X: x0, Y: y0, W: Max(x1-x0, 0), H: Max(y1-y0, 0)}
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
