package config

import "fmt"

// SpeedPreset represents a named initial-velocity range.
type SpeedPreset string

const (
	SpeedSlow   SpeedPreset = "slow"
	SpeedNormal SpeedPreset = "normal"
	SpeedFast   SpeedPreset = "fast"
)

// ParseSpeedPreset validates a preset name. Empty means normal.
func ParseSpeedPreset(s string) (SpeedPreset, error) {
	switch SpeedPreset(s) {
	case "", SpeedNormal:
		return SpeedNormal, nil
	case SpeedSlow, SpeedFast:
		return SpeedPreset(s), nil
	default:
		return "", fmt.Errorf("%w: unknown speed preset %q (want slow, normal or fast)", ErrInvalid, s)
	}
}

// ApplySpeedPreset modifies the initial velocity range for a preset.
func ApplySpeedPreset(cfg *TerritoryConfig, preset SpeedPreset) {
	switch preset {
	case SpeedSlow:
		cfg.Physics.MinSpeed = 0.5
		cfg.Physics.MaxSpeed = 4
	case SpeedFast:
		cfg.Physics.MinSpeed = 4
		cfg.Physics.MaxSpeed = 20
	}
}
