// Package core provides fundamental types and utilities shared by the game
// simulation and the terminal platform. It has no external dependencies
// (especially no Bubble Tea) to keep game logic pure and testable.
package core

import "math"

// Rect is an integer axis-aligned box in screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
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

// RectF is an axis-aligned rectangle in world units.
// Left/Top are inclusive; Right/Bottom are X+W and Y+H.
type RectF struct {
	X, Y float64
	W, H float64
}

// NewRectF creates a world-space rectangle.
func NewRectF(x, y, w, h float64) RectF {
	return RectF{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r RectF) Right() float64 {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r RectF) Bottom() float64 {
	return r.Y + r.H
}

// ClosestPoint returns the point inside r nearest to (px, py).
func (r RectF) ClosestPoint(px, py float64) (float64, float64) {
	return ClampF(px, r.X, r.Right()), ClampF(py, r.Y, r.Bottom())
}

// Circle is a world-space circle used as a hitbox.
type Circle struct {
	X, Y   float64 // Center
	Radius float64
}

// IntersectsRect reports whether the circle overlaps the rectangle.
// The test is strict: a circle exactly tangent to an edge does not intersect.
func (c Circle) IntersectsRect(r RectF) bool {
	cx, cy := r.ClosestPoint(c.X, c.Y)
	return math.Hypot(c.X-cx, c.Y-cy) < c.Radius
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
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
