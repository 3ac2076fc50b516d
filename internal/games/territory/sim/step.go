package sim

import "github.com/vovakirdan/territory/internal/core"

// FixedDT is the simulated time of one tick, in seconds.
const FixedDT = 1.0 / 60.0

// Stepper advances a simulation by one tick. World implements it; any other
// contact solver must honor the same contract so the registry and renderer
// do not change.
type Stepper interface {
	Step(dt float64) StepResult
}

// ContactEvent records the single contact resolved for one ball in a tick.
type ContactEvent struct {
	Ball       EntityID
	Target     EntityID
	TargetKind Kind
	Dir        Direction
	Separation core.Vec2
	Outcome    Outcome
}

// StepResult contains what happened during one tick.
type StepResult struct {
	Tick     uint64 // tick number after this step
	Contacts []ContactEvent
}

// Captures returns how many contacts in the tick flipped a block.
func (r StepResult) Captures() int {
	n := 0
	for _, c := range r.Contacts {
		if c.Outcome.Captured {
			n++
		}
	}
	return n
}

// World runs the per-tick detect, resolve and integrate pass over a registry.
type World struct {
	reg    *Registry
	policy DegeneratePolicy
	tick   uint64
}

// Option configures a World.
type Option func(*World)

// WithDegeneratePolicy sets how DirNone contacts are resolved.
func WithDegeneratePolicy(p DegeneratePolicy) Option {
	return func(w *World) {
		w.policy = p
	}
}

// NewWorld seals reg and wraps it in a World.
func NewWorld(reg *Registry, opts ...Option) *World {
	reg.Seal()
	w := &World{reg: reg}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Registry returns the world's registry.
func (w *World) Registry() *Registry {
	return w.reg
}

// Tick returns the number of completed steps.
func (w *World) Tick() uint64 {
	return w.tick
}

// Tally counts blocks per team.
func (w *World) Tally() Tally {
	return w.reg.Tally()
}

// Policy returns the degenerate contact policy.
func (w *World) Policy() DegeneratePolicy {
	return w.policy
}

// Step advances every ball by one tick of dt seconds.
//
// Each ball scans all entities in storage order and resolves only against
// the first one that both overlaps and qualifies; later overlaps are ignored
// for this tick. The ball then moves by its (possibly reflected) velocity.
func (w *World) Step(dt float64) StepResult {
	w.tick++
	result := StepResult{Tick: w.tick}

	for _, bid := range w.reg.balls {
		ball := w.reg.at(bid)

		for j := range w.reg.entities {
			tid := EntityID(j)
			target := w.reg.at(tid)
			if target.kind == KindBall {
				continue
			}

			c := Detect(ball, target)
			if !c.Hit || !Qualifies(ball, target) {
				continue
			}

			out := Resolve(ball, target, c, w.policy)
			result.Contacts = append(result.Contacts, ContactEvent{
				Ball:       bid,
				Target:     tid,
				TargetKind: target.kind,
				Dir:        c.Dir,
				Separation: c.Separation,
				Outcome:    out,
			})
			break
		}

		ball.pos = ball.pos.Add(ball.body.Velocity.Scale(dt))
	}

	return result
}
