// Package formats provides level file parsers.
package formats

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// YAMLLevel represents the YAML structure for a level file.
// Exactly one of Rows or Map is expected.
type YAMLLevel struct {
	ID   string   `yaml:"id"`
	Name string   `yaml:"name"`
	Rows []string `yaml:"rows,omitempty"` // space-separated hex bytes, e.g. "01 12 22"
	Map  []string `yaml:"map,omitempty"`  // character map, see levels.FromASCII
}

// Level is a parsed level file. Cells is set when the file uses rows,
// Map when it uses a character map.
type Level struct {
	ID    string
	Name  string
	Cells [][]byte
	Map   []string
}

// ParseYAML parses a YAML level file.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	if yl.ID == "" {
		return Level{}, fmt.Errorf("missing id")
	}

	level := Level{
		ID:   yl.ID,
		Name: yl.Name,
		Map:  yl.Map,
	}
	if level.Name == "" {
		level.Name = yl.ID
	}

	switch {
	case len(yl.Rows) > 0 && len(yl.Map) > 0:
		return Level{}, fmt.Errorf("level %s: rows and map are mutually exclusive", yl.ID)
	case len(yl.Rows) > 0:
		cells, err := parseRows(yl.Rows)
		if err != nil {
			return Level{}, fmt.Errorf("level %s: %w", yl.ID, err)
		}
		level.Cells = cells
	case len(yl.Map) == 0:
		return Level{}, fmt.Errorf("level %s: no rows or map", yl.ID)
	}

	return level, nil
}

func parseRows(rows []string) ([][]byte, error) {
	cells := make([][]byte, len(rows))
	for y, row := range rows {
		fields := strings.Fields(row)
		cells[y] = make([]byte, len(fields))
		for x, f := range fields {
			v, err := strconv.ParseUint(strings.TrimPrefix(f, "0x"), 16, 8)
			if err != nil {
				return nil, fmt.Errorf("row %d col %d: bad cell %q", y, x, f)
			}
			cells[y][x] = byte(v)
		}
	}
	return cells, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
