// Package territory drives the ball-and-block territory simulation behind
// the registry.Game interface.
package territory

import (
	"fmt"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/territory/internal/config"
	"github.com/vovakirdan/territory/internal/core"
	"github.com/vovakirdan/territory/internal/games/territory/levels"
	"github.com/vovakirdan/territory/internal/games/territory/sim"
	"github.com/vovakirdan/territory/internal/registry"
)

// ID is the registry key of the simulation.
const ID = "territory"

func init() {
	registry.Register(ID, "Territory", func(opts registry.Options) registry.Game {
		return New(opts.Config, opts.Logger)
	})
}

// Game adapts a sim.World to registry.Game.
type Game struct {
	cfg    config.TerritoryConfig
	logger *log.Logger
	loader *levels.Loader

	level   levels.Level
	reg     *sim.Registry
	stepper sim.Stepper
	rng     *rand.Rand
	rc      core.RuntimeConfig
	seed    int64

	tick     uint64
	captures int
	paused   bool
}

// New creates a territory simulation. Reset must be called before Step.
func New(cfg config.TerritoryConfig, logger *log.Logger) *Game {
	if logger == nil {
		logger = log.Default()
	}
	return &Game{
		cfg:    cfg,
		logger: logger,
		loader: levels.NewLoader(cfg.Level.Dir),
	}
}

// ID returns the simulation identifier.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Territory"
}

// Reset loads the configured level and seeds the ball velocities.
// A non-zero rc.Seed overrides the configured seed.
func (g *Game) Reset(rc core.RuntimeConfig) error {
	level, err := g.loader.Find(g.cfg.Level.ID)
	if err != nil {
		return fmt.Errorf("territory: loading level: %w", err)
	}

	g.rc = rc
	g.seed = g.cfg.Seed
	if rc.Seed != 0 {
		g.seed = rc.Seed
	}
	g.rng = rand.New(rand.NewSource(g.seed))
	g.level = level
	g.tick = 0
	g.captures = 0
	g.paused = false

	g.reg = sim.NewRegistry()
	stats := levels.Decode(level.Grid, g.reg, levels.DecodeOptions{
		Radius:   g.cfg.Physics.Radius,
		Velocity: g.randomVelocity,
		Logger:   g.logger,
	})
	if stats.Balls == 0 {
		g.logger.Warn("level has no balls", "level", level.ID)
	}

	g.stepper = sim.NewWorld(g.reg, sim.WithDegeneratePolicy(g.cfg.Physics.Policy()))
	g.logger.Info("simulation reset",
		"level", level.ID,
		"seed", g.seed,
		"policy", g.cfg.Physics.Policy(),
	)
	return nil
}

// randomVelocity draws each axis from [-max_speed, max_speed] and lifts
// the result to at least min_speed.
func (g *Game) randomVelocity() core.Vec2 {
	maxSpeed := g.cfg.Physics.MaxSpeed
	v := core.V(
		g.rng.Float64()*2*maxSpeed-maxSpeed,
		g.rng.Float64()*2*maxSpeed-maxSpeed,
	)

	minSpeed := g.cfg.Physics.MinSpeed
	if l := v.Len(); l < minSpeed {
		if l == 0 {
			return core.V(minSpeed, 0)
		}
		v = v.Normalize().Scale(minSpeed)
	}
	return v
}

// Step advances one tick unless paused. ActionStep advances a paused run
// by one tick; ActionRestart rebuilds the level.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.stepper == nil {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionRestart) {
		if err := g.Reset(g.rc); err != nil {
			g.logger.Error("restart failed", "error", err)
		}
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused && !in.Has(core.ActionStep) {
		return core.StepResult{State: g.State()}
	}

	res := g.stepper.Step(sim.FixedDT)
	g.tick = res.Tick
	g.captures += res.Captures()

	for _, c := range res.Contacts {
		if c.Outcome.Captured {
			g.logger.Debug("capture",
				"tick", res.Tick,
				"ball", c.Ball,
				"block", c.Target,
				"from", c.Outcome.From,
				"to", c.Outcome.To,
			)
		}
	}

	return core.StepResult{
		State:    g.State(),
		Captures: res.Captures(),
	}
}

// State returns the current tally.
func (g *Game) State() core.GameState {
	st := core.GameState{
		Level:    g.level.ID,
		Seed:     g.seed,
		Tick:     g.tick,
		Captures: g.captures,
		Paused:   g.paused,
	}
	if g.reg != nil {
		tally := g.reg.Tally()
		st.Light = tally.Light
		st.Dark = tally.Dark
	}
	return st
}

// Registry exposes the entities for read-only inspection.
func (g *Game) Registry() *sim.Registry {
	return g.reg
}
