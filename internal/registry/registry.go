// Package registry maps simulation IDs to factories.
// Simulations register themselves in init() so the CLI and the SSH server
// can build them by name.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/territory/internal/config"
	"github.com/vovakirdan/territory/internal/core"
)

// ErrUnknown is returned by Create for an unregistered ID.
var ErrUnknown = errors.New("registry: unknown simulation")

// Game is a simulation the platform can drive.
// Implementations hold no terminal state; the platform maps keys to
// actions, paces ticks and paints the screen buffer.
type Game interface {
	// ID is the registry key.
	ID() string

	// Title is the display name.
	Title() string

	// Reset builds the level and reseeds. Called before the first Step
	// and on restart.
	Reset(rc core.RuntimeConfig) error

	// Step advances one platform tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws into a pre-cleared screen.
	Render(dst *core.Screen)

	// State returns the current tally and tick.
	State() core.GameState
}

// Options are passed to every factory.
type Options struct {
	Config config.TerritoryConfig
	Logger *log.Logger
}

// Factory builds a new game instance.
type Factory func(opts Options) Game

// Info describes a registered simulation.
type Info struct {
	ID    string
	Title string
}

type entry struct {
	title   string
	factory Factory
}

var (
	mu      sync.RWMutex
	entries = make(map[string]entry)
)

// Register adds a factory. Panics on duplicate IDs.
func Register(id, title string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := entries[id]; exists {
		panic(fmt.Sprintf("registry: simulation %q already registered", id))
	}
	entries[id] = entry{title: title, factory: f}
}

// List returns all registered simulations sorted by ID.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(entries))
	for id, e := range entries {
		result = append(result, Info{ID: id, Title: e.title})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Create builds a simulation by ID.
func Create(id string, opts Options) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknown, id)
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return e.factory(opts), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := entries[id]
	return ok
}
