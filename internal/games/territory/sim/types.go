// Package sim is the territory collision-and-capture engine.
// It is UI-agnostic, single-threaded and deterministic: given the same
// registry contents and dt, every Step produces the same result.
package sim

// Kind tags what an entity is. It never changes after creation.
type Kind uint8

const (
	KindWall Kind = iota + 1
	KindBlock
	KindBall
)

// String returns the string representation of a kind.
func (k Kind) String() string {
	switch k {
	case KindWall:
		return "Wall"
	case KindBlock:
		return "Block"
	case KindBall:
		return "Ball"
	default:
		return "Unknown"
	}
}

// Team is the owner of a block or ball.
type Team uint8

const (
	TeamNone Team = iota
	TeamLight
	TeamDark
)

// String returns the string representation of a team.
func (t Team) String() string {
	switch t {
	case TeamLight:
		return "Light"
	case TeamDark:
		return "Dark"
	default:
		return "None"
	}
}

// Opposite returns the opposing team. TeamNone has no opponent.
func (t Team) Opposite() Team {
	switch t {
	case TeamLight:
		return TeamDark
	case TeamDark:
		return TeamLight
	default:
		return TeamNone
	}
}

// Direction is the dominant face of a contact.
// DirNone is produced when the separation vector is degenerate.
type Direction uint8

const (
	DirNone Direction = iota
	DirUp
	DirRight
	DirDown
	DirLeft
)

// String returns the string representation of a direction.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "Up"
	case DirRight:
		return "Right"
	case DirDown:
		return "Down"
	case DirLeft:
		return "Left"
	default:
		return "None"
	}
}

// Horizontal reports whether the direction lies on the X axis.
func (d Direction) Horizontal() bool {
	return d == DirLeft || d == DirRight
}

// Axis is the velocity component a resolution negated.
type Axis uint8

const (
	AxisNone Axis = iota
	AxisX
	AxisY
)

// String returns the string representation of an axis.
func (a Axis) String() string {
	switch a {
	case AxisX:
		return "X"
	case AxisY:
		return "Y"
	default:
		return "None"
	}
}

// DegeneratePolicy selects how a hit classified as DirNone is resolved.
type DegeneratePolicy uint8

const (
	// DegenerateReflectY negates the vertical velocity, the same as an Up or
	// Down contact.
	DegenerateReflectY DegeneratePolicy = iota
	// DegenerateIgnore leaves velocity untouched. The capture still happens.
	DegenerateIgnore
)

// String returns the config name of a policy.
func (p DegeneratePolicy) String() string {
	switch p {
	case DegenerateIgnore:
		return "ignore"
	default:
		return "reflect_y"
	}
}

// ParseDegeneratePolicy maps a config name to a policy.
// Unknown names report ok=false and the default policy.
func ParseDegeneratePolicy(s string) (DegeneratePolicy, bool) {
	switch s {
	case "", "reflect_y":
		return DegenerateReflectY, true
	case "ignore":
		return DegenerateIgnore, true
	default:
		return DegenerateReflectY, false
	}
}
