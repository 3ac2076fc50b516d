package core

import "math"

// Vec2 is a 2D vector in grid units.
type Vec2 struct {
	X, Y float64
}

// V is shorthand for constructing a Vec2.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Neg returns -v.
func (v Vec2) Neg() Vec2 {
	return Vec2{X: -v.X, Y: -v.Y}
}

// AddScalar adds f to both components.
func (v Vec2) AddScalar(f float64) Vec2 {
	return Vec2{X: v.X + f, Y: v.Y + f}
}

// DivScalar divides both components by f.
func (v Vec2) DivScalar(f float64) Vec2 {
	return Vec2{X: v.X / f, Y: v.Y / f}
}

// Scale multiplies both components by f.
func (v Vec2) Scale(f float64) Vec2 {
	return Vec2{X: v.X * f, Y: v.Y * f}
}

// Clamp restricts each component to the matching [min, max] component.
func (v Vec2) Clamp(min, max Vec2) Vec2 {
	return Vec2{
		X: ClampF(v.X, min.X, max.X),
		Y: ClampF(v.Y, min.Y, max.Y),
	}
}

// Dot returns the inner product of v and o.
func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// LenSq returns the squared length.
func (v Vec2) LenSq() float64 {
	return v.Dot(v)
}

// Len returns the Euclidean length.
func (v Vec2) Len() float64 {
	return math.Sqrt(v.LenSq())
}

// Normalize returns the unit vector in the direction of v.
// The zero vector normalizes to the zero vector.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l <= 0 {
		return Vec2{}
	}
	return Vec2{X: v.X / l, Y: v.Y / l}
}

// Eq reports exact component equality.
func (v Vec2) Eq(o Vec2) bool {
	return v.X == o.X && v.Y == o.Y
}
