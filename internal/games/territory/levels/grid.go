// Package levels turns packed level grids into sim registries.
// This package depends on sim but sim does not depend on levels.
package levels

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/territory/internal/core"
	"github.com/vovakirdan/territory/internal/games/territory/sim"
)

// GridSize is the width and height of every level grid.
const GridSize = 18

// Cell type values (low nibble).
const (
	CellWall  byte = 0x1
	CellBlock byte = 0x2
	CellSpawn byte = 0x4
)

// Cell team values (high nibble).
const (
	NibbleLight byte = 0x1
	NibbleDark  byte = 0x2
)

// Grid is a packed level: one byte per cell, low nibble type, high nibble team.
// Indexed [row][col].
type Grid [GridSize][GridSize]byte

// Cell packs a type and team nibble into a grid byte.
func Cell(typ, team byte) byte {
	return (team&0x0F)<<4 | typ&0x0F
}

// SplitCell unpacks a grid byte.
func SplitCell(b byte) (typ, team byte) {
	return b & 0x0F, (b & 0xF0) >> 4
}

// TeamFromNibble maps a team nibble to a team; unknown values are TeamNone.
func TeamFromNibble(n byte) sim.Team {
	switch n {
	case NibbleLight:
		return sim.TeamLight
	case NibbleDark:
		return sim.TeamDark
	default:
		return sim.TeamNone
	}
}

// groundTeam is the team of the block placed under a spawning ball.
// A ball always starts on territory it does not own; a teamless ball
// starts on Light.
func groundTeam(ball sim.Team) sim.Team {
	if ball == sim.TeamLight {
		return sim.TeamDark
	}
	return sim.TeamLight
}

// DecodeOptions configures how a grid becomes entities.
type DecodeOptions struct {
	Radius   float64          // Ball radius; sim.DefaultRadius when zero
	Velocity func() core.Vec2 // Initial ball velocity; zero when nil
	Logger   *log.Logger      // Diagnostics; log.Default() when nil
}

// DecodeStats counts what a decode produced.
type DecodeStats struct {
	Walls   int
	Blocks  int
	Balls   int
	Dropped int // adds rejected by the registry
}

// Total returns the number of entities added.
func (s DecodeStats) Total() int {
	return s.Walls + s.Blocks + s.Balls
}

// Decode scans g in row-major order and appends its entities to reg.
// A spawn cell adds the ball first and then the block under it.
// Registry overflows are logged and skipped; decoding always completes.
func Decode(g Grid, reg *sim.Registry, opts DecodeOptions) DecodeStats {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	var stats DecodeStats
	add := func(e sim.Entity) {
		if _, err := reg.Add(e); err != nil {
			stats.Dropped++
			logger.Warn("failed to add entity",
				"kind", e.Kind(),
				"x", e.Pos().X,
				"y", e.Pos().Y,
				"error", err,
			)
			return
		}
		switch e.Kind() {
		case sim.KindWall:
			stats.Walls++
		case sim.KindBlock:
			stats.Blocks++
		case sim.KindBall:
			stats.Balls++
			logger.Debug("added ball",
				"x", e.Pos().X,
				"y", e.Pos().Y,
				"team", e.Team(),
				"velocity", fmt.Sprintf("(%.2f, %.2f)", e.Velocity().X, e.Velocity().Y),
			)
		}
	}

	for y := 0; y < GridSize; y++ {
		for x := 0; x < GridSize; x++ {
			typ, nibble := SplitCell(g[y][x])
			team := TeamFromNibble(nibble)
			fx, fy := float64(x), float64(y)

			switch typ {
			case CellWall:
				add(sim.NewWall(fx, fy))
			case CellBlock:
				add(sim.NewBlock(fx, fy, team))
			case CellSpawn:
				var v core.Vec2
				if opts.Velocity != nil {
					v = opts.Velocity()
				}
				add(sim.NewBall(fx, fy, team, opts.Radius, v))
				add(sim.NewBlock(fx, fy, groundTeam(team)))
			}
		}
	}

	logger.Info("level decoded",
		"entities", stats.Total(),
		"balls", stats.Balls,
		"dropped", stats.Dropped,
	)
	return stats
}
