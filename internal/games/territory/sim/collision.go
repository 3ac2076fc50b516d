package sim

import "github.com/vovakirdan/territory/internal/core"

// Contact is the result of testing a ball against one entity.
// Dir and Separation are only meaningful when Hit is true.
type Contact struct {
	Hit        bool
	Dir        Direction
	Separation core.Vec2 // closest point on the target minus the ball center
}

// compass is scanned in this order; the first of equal dot products wins.
var compass = [...]struct {
	dir Direction
	v   core.Vec2
}{
	{DirUp, core.V(0, -1)},
	{DirRight, core.V(1, 0)},
	{DirDown, core.V(0, 1)},
	{DirLeft, core.V(-1, 0)},
}

// Detect tests the circle of ball a against the axis-aligned box of b using
// the closest point on b to the circle center. Touching exactly at the radius
// is not a hit. Non-ball a never hits.
func Detect(a, b *Entity) Contact {
	if a.body == nil {
		return Contact{}
	}

	center := a.pos.AddScalar(a.body.Radius)

	half := b.size.DivScalar(2)
	boxCenter := b.pos.Add(half)

	diff := center.Sub(boxCenter)
	clamped := diff.Clamp(half.Neg(), half)
	closest := boxCenter.Add(clamped)

	sep := closest.Sub(center)
	if sep.Len() >= a.body.Radius {
		return Contact{}
	}

	return Contact{
		Hit:        true,
		Dir:        Classify(sep),
		Separation: sep,
	}
}

// Classify returns the compass direction best aligned with v.
// A vector with no positive alignment (including the zero vector) is DirNone.
func Classify(v core.Vec2) Direction {
	n := v.Normalize()
	best := DirNone
	bestDot := 0.0
	for _, c := range compass {
		if d := n.Dot(c.v); d > bestDot {
			bestDot = d
			best = c.dir
		}
	}
	return best
}
