package config

import (
	_ "embed"
)

//go:embed defaults/territory.yaml
var defaultTerritoryYAML []byte

// DefaultTerritoryConfig returns the default territory configuration.
func DefaultTerritoryConfig() TerritoryConfig {
	return TerritoryConfig{
		Physics: PhysicsConfig{
			TickRate:   60,
			Radius:     0.5,
			MinSpeed:   1.0,
			MaxSpeed:   10.0,
			Degenerate: "reflect_y",
		},
		Level: LevelConfig{
			ID: "classic",
		},
		Seed: 117,
	}
}
