package sim

// Outcome describes what a resolution changed.
type Outcome struct {
	Reflected Axis // velocity component that was negated
	Captured  bool // target block changed owner
	From, To  Team // target team before and after
}

// Qualifies reports whether a geometric contact between ball and target
// counts as a hit under the game rules:
//
//   - walls always block
//   - blocks of the ball's own team block (and get captured)
//   - blocks of any other team are passed through
//   - balls are never targets
func Qualifies(ball, target *Entity) bool {
	switch target.kind {
	case KindWall:
		return true
	case KindBlock:
		return target.team == ball.team
	default:
		return false
	}
}

// Resolve applies a qualifying contact: a same-team block flips to the
// opposing team, then one velocity axis of the ball is negated. Left and
// Right contacts negate X, Up and Down negate Y, DirNone follows policy.
func Resolve(ball, target *Entity, c Contact, policy DegeneratePolicy) Outcome {
	out := Outcome{From: target.team, To: target.team}

	if target.kind == KindBlock && target.team == ball.team {
		target.team = ball.team.Opposite()
		out.To = target.team
		out.Captured = out.From != out.To
	}

	if ball.body == nil {
		return out
	}

	switch {
	case c.Dir.Horizontal():
		ball.body.Velocity.X = -ball.body.Velocity.X
		out.Reflected = AxisX
	case c.Dir == DirUp || c.Dir == DirDown:
		ball.body.Velocity.Y = -ball.body.Velocity.Y
		out.Reflected = AxisY
	case policy == DegenerateReflectY:
		ball.body.Velocity.Y = -ball.body.Velocity.Y
		out.Reflected = AxisY
	}

	return out
}
