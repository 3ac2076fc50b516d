package sim

import "github.com/vovakirdan/territory/internal/core"

// DefaultRadius is the ball radius in grid units (diameter = one cell).
const DefaultRadius = 0.5

// Body holds the state that only balls have.
type Body struct {
	Radius   float64
	Velocity core.Vec2
}

// Entity is a wall, block or ball. Positions are top-left corners in grid
// units; for balls the center is Pos + Radius on both axes.
//
// Fields are unexported so that only this package mutates entities: a
// block's team during capture, a ball's position and velocity during Step.
type Entity struct {
	pos  core.Vec2
	size core.Vec2
	kind Kind
	team Team
	body *Body // non-nil only for KindBall
}

// NewWall creates a teamless unit wall tile at (x, y).
func NewWall(x, y float64) Entity {
	return Entity{
		pos:  core.V(x, y),
		size: core.V(1, 1),
		kind: KindWall,
		team: TeamNone,
	}
}

// NewBlock creates a unit block tile owned by team.
func NewBlock(x, y float64, team Team) Entity {
	return Entity{
		pos:  core.V(x, y),
		size: core.V(1, 1),
		kind: KindBlock,
		team: team,
	}
}

// NewBall creates a ball whose bounding square starts at (x, y).
// A non-positive radius is replaced by DefaultRadius.
func NewBall(x, y float64, team Team, radius float64, velocity core.Vec2) Entity {
	if radius <= 0 {
		radius = DefaultRadius
	}
	return Entity{
		pos:  core.V(x, y),
		size: core.V(radius*2, radius*2),
		kind: KindBall,
		team: team,
		body: &Body{Radius: radius, Velocity: velocity},
	}
}

// Kind returns the entity kind.
func (e *Entity) Kind() Kind { return e.kind }

// Team returns the current owner.
func (e *Entity) Team() Team { return e.team }

// Pos returns the top-left corner.
func (e *Entity) Pos() core.Vec2 { return e.pos }

// Size returns the bounding size.
func (e *Entity) Size() core.Vec2 { return e.size }

// Ball returns a copy of the ball body. ok is false for walls and blocks.
func (e *Entity) Ball() (body Body, ok bool) {
	if e.body == nil {
		return Body{}, false
	}
	return *e.body, true
}

// Radius returns the ball radius, or 0 for tiles.
func (e *Entity) Radius() float64 {
	if e.body == nil {
		return 0
	}
	return e.body.Radius
}

// Velocity returns the ball velocity, or the zero vector for tiles.
func (e *Entity) Velocity() core.Vec2 {
	if e.body == nil {
		return core.Vec2{}
	}
	return e.body.Velocity
}

// Center returns the midpoint of the entity.
func (e *Entity) Center() core.Vec2 {
	if e.body != nil {
		return e.pos.AddScalar(e.body.Radius)
	}
	return e.pos.Add(e.size.DivScalar(2))
}

// clone returns a deep copy that shares no Body with e.
func (e Entity) clone() Entity {
	if e.body != nil {
		b := *e.body
		e.body = &b
	}
	return e
}
