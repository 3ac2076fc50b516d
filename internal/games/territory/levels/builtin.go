package levels

import (
	"errors"
	"fmt"
)

// ErrBadSize is returned when a level does not have GridSize rows of
// GridSize cells.
var ErrBadSize = errors.New("levels: grid must be 18x18")

// Level is a named grid.
type Level struct {
	ID       string
	Name     string
	Grid     Grid
	FilePath string // empty for built-in levels
}

// FromASCII builds a grid from a character map.
// Characters:
//
//	'#' = wall
//	'l' = Light block    'd' = Dark block    'n' = teamless block
//	'L' = Light spawn    'D' = Dark spawn
//	'.' or ' ' = empty
func FromASCII(rows []string) (Grid, error) {
	var g Grid
	if len(rows) != GridSize {
		return g, fmt.Errorf("%w: got %d rows", ErrBadSize, len(rows))
	}

	for y, row := range rows {
		if len(row) != GridSize {
			return g, fmt.Errorf("%w: row %d has %d cells", ErrBadSize, y, len(row))
		}
		for x := 0; x < GridSize; x++ {
			switch row[x] {
			case '#':
				g[y][x] = Cell(CellWall, 0)
			case 'l':
				g[y][x] = Cell(CellBlock, NibbleLight)
			case 'd':
				g[y][x] = Cell(CellBlock, NibbleDark)
			case 'n':
				g[y][x] = Cell(CellBlock, 0)
			case 'L':
				g[y][x] = Cell(CellSpawn, NibbleLight)
			case 'D':
				g[y][x] = Cell(CellSpawn, NibbleDark)
			case '.', ' ':
				g[y][x] = 0
			default:
				return g, fmt.Errorf("levels: unknown cell %q at row %d col %d", row[x], y, x)
			}
		}
	}
	return g, nil
}

// ToASCII renders g in the FromASCII alphabet. Cells FromASCII cannot
// express are written as '?'.
func ToASCII(g Grid) []string {
	rows := make([]string, GridSize)
	for y := 0; y < GridSize; y++ {
		row := make([]byte, GridSize)
		for x := 0; x < GridSize; x++ {
			row[x] = asciiCell(g[y][x])
		}
		rows[y] = string(row)
	}
	return rows
}

func asciiCell(b byte) byte {
	switch b {
	case 0:
		return '.'
	case Cell(CellWall, 0):
		return '#'
	case Cell(CellBlock, NibbleLight):
		return 'l'
	case Cell(CellBlock, NibbleDark):
		return 'd'
	case Cell(CellBlock, 0):
		return 'n'
	case Cell(CellSpawn, NibbleLight):
		return 'L'
	case Cell(CellSpawn, NibbleDark):
		return 'D'
	}
	return '?'
}

func mustASCII(rows []string) Grid {
	g, err := FromASCII(rows)
	if err != nil {
		panic(err)
	}
	return g
}

// Builtin returns the built-in levels. "classic" is the default.
func Builtin() []Level {
	return []Level{
		{
			ID:   "classic",
			Name: "Classic",
			Grid: mustASCII([]string{
				"##################",
				"#lllllllldddddddd#",
				"#lllllllldddddddd#",
				"#lllllllldddddddd#",
				"#lllllllldddddddd#",
				"#lllllllldddddddd#",
				"#lllllllldddddddd#",
				"#lllllllldddddddd#",
				"#Dllllllldddddddd#",
				"#lllllllldddddddL#",
				"#lllllllldddddddd#",
				"#lllllllldddddddd#",
				"#lllllllldddddddd#",
				"#lllllllldddddddd#",
				"#lllllllldddddddd#",
				"#lllllllldddddddd#",
				"#lllllllldddddddd#",
				"##################",
			}),
		},
		{
			ID:   "quarters",
			Name: "Quarters",
			Grid: mustASCII([]string{
				"##################",
				"#lllllllldddddddd#",
				"#lllllllldddddddd#",
				"#lllllllldddddddd#",
				"#llllDllldddddddd#",
				"#lllllllldddddddd#",
				"#lllllllldddddddd#",
				"#lllllllldddddddd#",
				"#lllllllldddddddd#",
				"#ddddddddllllllll#",
				"#ddddddddllllllll#",
				"#ddddddddllllllll#",
				"#ddddddddllllllll#",
				"#ddddddddllllLlll#",
				"#ddddddddllllllll#",
				"#ddddddddllllllll#",
				"#ddddddddllllllll#",
				"##################",
			}),
		},
		{
			ID:   "pillars",
			Name: "Pillars",
			Grid: mustASCII([]string{
				"##################",
				"#lllllllldddddddd#",
				"#lllllllldddddddd#",
				"#ll#llll#ddd#dddd#",
				"#lllllllldddddddd#",
				"#lllllllldddddddd#",
				"#lllll#llddd#dddd#",
				"#lllllllldddddddd#",
				"#Dllllllldddddddd#",
				"#lllllllldddddddL#",
				"#lllllllldddddddd#",
				"#ll#lllllddd#dddd#",
				"#lllllllldddddddd#",
				"#lllllllldddddddd#",
				"#llll#llldddd#ddd#",
				"#lllllllldddddddd#",
				"#lllllllldddddddd#",
				"##################",
			}),
		},
	}
}

// BuiltinByID returns a built-in level by its ID.
func BuiltinByID(id string) (Level, bool) {
	for _, l := range Builtin() {
		if l.ID == id {
			return l, true
		}
	}
	return Level{}, false
}
