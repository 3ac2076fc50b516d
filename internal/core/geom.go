// Package core provides fundamental types and utilities for the territory
// simulation. It contains no external dependencies (especially no Bubble Tea)
// to keep simulation logic pure and testable.
package core

// Rect is a block of screen cells.
type Rect struct {
	X, Y int // Top-left cell
	W, H int
}

// CellRect returns the w x h block whose top-left cell is (x, y).
func CellRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the first column past the block.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the first row past the block.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Empty reports whether the block covers no cells.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// ClampF restricts val to [lo, hi].
func ClampF(val, lo, hi float64) float64 {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
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
