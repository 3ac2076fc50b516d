package territory

import (
	"fmt"
	"math"

	"github.com/vovakirdan/territory/internal/core"
	"github.com/vovakirdan/territory/internal/games/territory/levels"
	"github.com/vovakirdan/territory/internal/games/territory/sim"
)

const (
	tileGlyph = '█'
	ballGlyph = '●'
	hudHeight = 2
)

// TeamColor maps a team to its screen color.
func TeamColor(t sim.Team) core.Color {
	switch t {
	case sim.TeamLight:
		return core.ColorLight
	case sim.TeamDark:
		return core.ColorDark
	default:
		return core.ColorAccent
	}
}

// layout picks the cell width and the top-left corner of the board.
// Cells are two columns wide when the screen allows it.
func layout(w, h int) (cellW, offX, offY int, ok bool) {
	if h < levels.GridSize+hudHeight || w < levels.GridSize {
		return 0, 0, 0, false
	}
	cellW = 1
	if w >= levels.GridSize*2 {
		cellW = 2
	}
	offX = (w - levels.GridSize*cellW) / 2
	offY = hudHeight + (h-hudHeight-levels.GridSize)/2
	return cellW, offX, offY, true
}

// Render draws the HUD, tiles and balls.
func (g *Game) Render(dst *core.Screen) {
	st := g.State()
	hud := fmt.Sprintf("Light %d  Dark %d  Tick %d  Captures %d", st.Light, st.Dark, st.Tick, st.Captures)
	if st.Paused {
		hud += "  [PAUSED]"
	}
	dst.DrawTextCenteredColored(0, hud, core.ColorHUD)

	if g.reg == nil {
		return
	}

	cellW, offX, offY, ok := layout(dst.Width(), dst.Height())
	if !ok {
		dst.DrawTextCentered(dst.Height()/2, "Terminal too small")
		return
	}

	var balls []sim.Entity
	g.reg.Each(func(_ sim.EntityID, e sim.Entity) {
		if e.Kind() == sim.KindBall {
			balls = append(balls, e)
			return
		}
		p := e.Pos()
		r := core.CellRect(offX+int(p.X)*cellW, offY+int(p.Y), cellW, 1)
		dst.DrawRect(r, tileGlyph, TeamColor(e.Team()))
	})

	// Balls are drawn last so they sit on top of the tiles.
	for _, b := range balls {
		c := b.Center()
		x := offX + int(math.Floor(c.X))*cellW
		y := offY + int(math.Floor(c.Y))
		dst.SetColored(x, y, ballGlyph, TeamColor(b.Team()))
		if cellW == 2 {
			dst.SetColored(x+1, y, ' ', TeamColor(b.Team()))
		}
	}
}
