package levels_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/territory/internal/core"
	"github.com/vovakirdan/territory/internal/games/territory/levels"
	"github.com/vovakirdan/territory/internal/games/territory/sim"
)

func quiet() levels.DecodeOptions {
	return levels.DecodeOptions{Logger: log.New(io.Discard)}
}

func TestSplitCell(t *testing.T) {
	tests := []struct {
		in       byte
		typ      byte
		team     byte
		expected sim.Team
	}{
		{0x01, levels.CellWall, 0, sim.TeamNone},
		{0x12, levels.CellBlock, 1, sim.TeamLight},
		{0x22, levels.CellBlock, 2, sim.TeamDark},
		{0x24, levels.CellSpawn, 2, sim.TeamDark},
		{0x14, levels.CellSpawn, 1, sim.TeamLight},
		{0x32, levels.CellBlock, 3, sim.TeamNone},
	}

	for _, tc := range tests {
		typ, team := levels.SplitCell(tc.in)
		if typ != tc.typ || team != tc.team {
			t.Errorf("SplitCell(%#x) = (%d, %d), expected (%d, %d)", tc.in, typ, team, tc.typ, tc.team)
		}
		if got := levels.TeamFromNibble(team); got != tc.expected {
			t.Errorf("TeamFromNibble(%d) = %s, expected %s", team, got, tc.expected)
		}
		if levels.Cell(typ, team) != tc.in {
			t.Errorf("Cell(%d, %d) = %#x, expected %#x", typ, team, levels.Cell(typ, team), tc.in)
		}
	}
}

func TestDecodeClassic(t *testing.T) {
	lvl, ok := levels.BuiltinByID("classic")
	if !ok {
		t.Fatal("classic level missing")
	}

	reg := sim.NewRegistry()
	stats := levels.Decode(lvl.Grid, reg, quiet())

	if stats.Walls != 68 || stats.Blocks != 256 || stats.Balls != 2 || stats.Dropped != 0 {
		t.Errorf("stats = %+v, expected 68 walls, 256 blocks, 2 balls", stats)
	}
	if reg.Len() != stats.Total() {
		t.Errorf("Len() = %d, expected %d", reg.Len(), stats.Total())
	}

	tally := reg.Tally()
	if tally.Light != 128 || tally.Dark != 128 || tally.None != 0 {
		t.Errorf("Tally() = %+v, expected 128/128/0", tally)
	}

	// Row-major: 18 walls in row 0, 7 full rows of 18, then the row 8 wall.
	balls := reg.Balls()
	if len(balls) != 2 || balls[0] != 145 {
		t.Fatalf("Balls() = %v, expected first ball at 145", balls)
	}

	dark, _ := reg.Get(balls[0])
	if dark.Team() != sim.TeamDark || !dark.Pos().Eq(core.V(1, 8)) {
		t.Errorf("first ball = %s at %v, expected Dark at (1, 8)", dark.Team(), dark.Pos())
	}
	ground, _ := reg.Get(balls[0] + 1)
	if ground.Kind() != sim.KindBlock || ground.Team() != sim.TeamLight {
		t.Errorf("entity after ball = %s/%s, expected Light block", ground.Kind(), ground.Team())
	}

	light, _ := reg.Get(balls[1])
	if light.Team() != sim.TeamLight || !light.Pos().Eq(core.V(16, 9)) {
		t.Errorf("second ball = %s at %v, expected Light at (16, 9)", light.Team(), light.Pos())
	}
}

func TestDecodeVelocityAndRadius(t *testing.T) {
	var g levels.Grid
	g[2][3] = levels.Cell(levels.CellSpawn, levels.NibbleLight)

	calls := 0
	opts := quiet()
	opts.Radius = 0.25
	opts.Velocity = func() core.Vec2 {
		calls++
		return core.V(4, -2)
	}

	reg := sim.NewRegistry()
	levels.Decode(g, reg, opts)

	if calls != 1 {
		t.Errorf("Velocity called %d times, expected 1", calls)
	}
	ball, _ := reg.Get(reg.Balls()[0])
	if ball.Radius() != 0.25 || !ball.Velocity().Eq(core.V(4, -2)) {
		t.Errorf("ball radius=%f velocity=%v", ball.Radius(), ball.Velocity())
	}
}

func TestDecodeTeamlessSpawn(t *testing.T) {
	var g levels.Grid
	g[0][0] = levels.Cell(levels.CellSpawn, 0x7)

	reg := sim.NewRegistry()
	levels.Decode(g, reg, quiet())

	ball, _ := reg.Get(0)
	block, _ := reg.Get(1)
	if ball.Kind() != sim.KindBall || ball.Team() != sim.TeamNone {
		t.Errorf("entity 0 = %s/%s, expected teamless ball", ball.Kind(), ball.Team())
	}
	if block.Kind() != sim.KindBlock || block.Team() != sim.TeamLight {
		t.Errorf("entity 1 = %s/%s, expected Light block", block.Kind(), block.Team())
	}
}

func TestDecodeIgnoresUnknownTypes(t *testing.T) {
	var g levels.Grid
	g[0][0] = 0x03
	g[0][1] = 0x18
	g[0][2] = 0x10

	reg := sim.NewRegistry()
	stats := levels.Decode(g, reg, quiet())
	if stats.Total() != 0 || reg.Len() != 0 {
		t.Errorf("unknown cell types produced %d entities", reg.Len())
	}
}

func TestDecodeOverflowContinues(t *testing.T) {
	var g levels.Grid
	for x := 0; x < 4; x++ {
		g[0][x] = levels.Cell(levels.CellSpawn, levels.NibbleDark)
	}
	g[1][0] = levels.Cell(levels.CellWall, 0)

	var buf bytes.Buffer
	opts := levels.DecodeOptions{Logger: log.New(&buf)}

	reg := sim.NewRegistry()
	stats := levels.Decode(g, reg, opts)

	if stats.Balls != sim.MaxBalls || stats.Dropped != 2 {
		t.Errorf("stats = %+v, expected %d balls and 2 dropped", stats, sim.MaxBalls)
	}
	if stats.Blocks != 4 || stats.Walls != 1 {
		t.Errorf("tiles after overflow: blocks=%d walls=%d, expected 4 and 1", stats.Blocks, stats.Walls)
	}
	if !strings.Contains(buf.String(), "failed to add entity") {
		t.Errorf("expected overflow warning in log, got %q", buf.String())
	}
}

func TestFromASCIIErrors(t *testing.T) {
	if _, err := levels.FromASCII([]string{"#"}); err == nil {
		t.Error("short map should fail")
	}

	rows := make([]string, levels.GridSize)
	for i := range rows {
		rows[i] = strings.Repeat(".", levels.GridSize)
	}
	rows[3] = "....?............."
	if _, err := levels.FromASCII(rows); err == nil {
		t.Error("unknown character should fail")
	}
}

func TestBuiltinLevelsDecode(t *testing.T) {
	for _, lvl := range levels.Builtin() {
		t.Run(lvl.ID, func(t *testing.T) {
			reg := sim.NewRegistry()
			stats := levels.Decode(lvl.Grid, reg, quiet())
			if stats.Dropped != 0 {
				t.Errorf("dropped %d entities", stats.Dropped)
			}
			if stats.Balls != 2 {
				t.Errorf("balls = %d, expected 2", stats.Balls)
			}
		})
	}
}

func TestToASCIIRoundTrip(t *testing.T) {
	for _, lvl := range levels.Builtin() {
		t.Run(lvl.ID, func(t *testing.T) {
			back, err := levels.FromASCII(levels.ToASCII(lvl.Grid))
			if err != nil {
				t.Fatalf("FromASCII(ToASCII) failed: %v", err)
			}
			if back != lvl.Grid {
				t.Error("grid changed after a round trip")
			}
		})
	}

	var g levels.Grid
	g[0][0] = 0x7f
	if got := levels.ToASCII(g)[0][0]; got != '?' {
		t.Errorf("unknown cell rendered as %q, expected '?'", got)
	}
}
