// Package config provides YAML-based simulation configuration loading and
// speed presets.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/territory/internal/games/territory/sim"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// TerritoryConfig contains all configuration for the territory simulation.
type TerritoryConfig struct {
	Physics PhysicsConfig `yaml:"physics"`
	Level   LevelConfig   `yaml:"level"`
	Seed    int64         `yaml:"seed"`
}

// PhysicsConfig defines simulation parameters.
type PhysicsConfig struct {
	TickRate   int     `yaml:"tick_rate"`  // Frames per second for the interactive loop
	Radius     float64 `yaml:"radius"`     // Ball radius in grid units
	MinSpeed   float64 `yaml:"min_speed"`  // Lower bound on initial ball speed
	MaxSpeed   float64 `yaml:"max_speed"`  // Per-axis bound on initial velocity
	Degenerate string  `yaml:"degenerate"` // "reflect_y" or "ignore"
}

// LevelConfig selects the level to load.
type LevelConfig struct {
	ID  string `yaml:"id"`
	Dir string `yaml:"dir"` // Optional directory of YAML level files
}

// Policy returns the parsed degenerate-contact policy.
func (p PhysicsConfig) Policy() sim.DegeneratePolicy {
	policy, _ := sim.ParseDegeneratePolicy(p.Degenerate)
	return policy
}

// Validate checks the config for values the simulation cannot run with.
func (c TerritoryConfig) Validate() error {
	if c.Physics.TickRate <= 0 {
		return fmt.Errorf("%w: tick_rate must be positive, got %d", ErrInvalid, c.Physics.TickRate)
	}
	if c.Physics.Radius <= 0 || c.Physics.Radius > 1 {
		return fmt.Errorf("%w: radius must be in (0, 1], got %g", ErrInvalid, c.Physics.Radius)
	}
	if c.Physics.MinSpeed < 0 || c.Physics.MaxSpeed < 0 {
		return fmt.Errorf("%w: speeds must not be negative", ErrInvalid)
	}
	if c.Physics.MinSpeed > c.Physics.MaxSpeed {
		return fmt.Errorf("%w: min_speed %g exceeds max_speed %g", ErrInvalid, c.Physics.MinSpeed, c.Physics.MaxSpeed)
	}
	if _, ok := sim.ParseDegeneratePolicy(c.Physics.Degenerate); !ok {
		return fmt.Errorf("%w: unknown degenerate policy %q", ErrInvalid, c.Physics.Degenerate)
	}
	if c.Level.ID == "" {
		return fmt.Errorf("%w: level id is empty", ErrInvalid)
	}
	return nil
}
