package levels

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vovakirdan/territory/internal/games/territory/levels/formats"
)

// ErrNotFound is returned when no level has the requested ID.
var ErrNotFound = errors.New("levels: not found")

// Loader loads level files from a directory.
// An empty Root means built-in levels only.
type Loader struct {
	Root string
}

// NewLoader creates a new level loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans and loads all level files.
// Invalid files are skipped. Returns levels sorted by ID.
func (l *Loader) LoadAll() ([]Level, error) {
	if l.Root == "" {
		return nil, nil
	}

	var levels []Level
	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if !isSupportedExtension(ext) {
			return nil
		}

		level, err := l.LoadFile(path)
		if err != nil {
			return nil
		}
		levels = append(levels, level)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})
	return levels, nil
}

// LoadFile loads a single level file.
func (l *Loader) LoadFile(path string) (Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Level{}, fmt.Errorf("reading file %s: %w", path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	parsed, err := parseByExtension(data, ext)
	if err != nil {
		return Level{}, fmt.Errorf("parsing file %s: %w", path, err)
	}

	grid, err := toGrid(parsed)
	if err != nil {
		return Level{}, fmt.Errorf("parsing file %s: %w", path, err)
	}

	return Level{
		ID:       parsed.ID,
		Name:     parsed.Name,
		Grid:     grid,
		FilePath: path,
	}, nil
}

// Find returns the level with the given ID. Files under Root shadow
// built-in levels with the same ID.
func (l *Loader) Find(id string) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}
	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}

	if lvl, ok := BuiltinByID(id); ok {
		return lvl, nil
	}
	return Level{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// List returns built-in levels followed by file levels, with file levels
// replacing built-ins that share an ID.
func (l *Loader) List() ([]Level, error) {
	files, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	shadowed := make(map[string]bool, len(files))
	for _, f := range files {
		shadowed[f.ID] = true
	}

	var out []Level
	for _, b := range Builtin() {
		if !shadowed[b.ID] {
			out = append(out, b)
		}
	}
	return append(out, files...), nil
}

func toGrid(parsed formats.Level) (Grid, error) {
	if parsed.Cells == nil {
		return FromASCII(parsed.Map)
	}

	var g Grid
	if len(parsed.Cells) != GridSize {
		return g, fmt.Errorf("%w: got %d rows", ErrBadSize, len(parsed.Cells))
	}
	for y, row := range parsed.Cells {
		if len(row) != GridSize {
			return g, fmt.Errorf("%w: row %d has %d cells", ErrBadSize, y, len(row))
		}
		copy(g[y][:], row)
	}
	return g, nil
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// parseByExtension routes to the correct parser.
func parseByExtension(data []byte, ext string) (formats.Level, error) {
	switch ext {
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	default:
		return formats.Level{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}
