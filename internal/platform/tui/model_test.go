package tui

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/territory/internal/core"
	"github.com/vovakirdan/territory/internal/storage"
)

// fakeGame counts ticks and records the last input frame.
type fakeGame struct {
	tick    uint64
	resets  int
	paused  bool
	lastIn  core.InputFrame
	painted bool
}

func (g *fakeGame) ID() string    { return "fake" }
func (g *fakeGame) Title() string { return "Fake" }

func (g *fakeGame) Reset(core.RuntimeConfig) error {
	g.resets++
	g.tick = 0
	return nil
}

func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	g.lastIn = core.NewInputFrame()
	for a := range in.Actions {
		g.lastIn.Set(a)
	}
	if in.Has(core.ActionRestart) {
		g.Reset(core.RuntimeConfig{})
		return core.StepResult{State: g.State()}
	}
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if !g.paused {
		g.tick++
	}
	return core.StepResult{State: g.State()}
}

func (g *fakeGame) Render(dst *core.Screen) {
	g.painted = true
	dst.DrawText(0, 0, "board")
}

func (g *fakeGame) State() core.GameState {
	return core.GameState{Level: "classic", Seed: 117, Tick: g.tick, Light: 130, Dark: 126, Paused: g.paused}
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel(t *testing.T, store *storage.Store) (Model, *fakeGame) {
	t.Helper()
	g := &fakeGame{}
	rc := core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 60}
	return NewModel(g, rc, Options{
		Store:         store,
		Logger:        log.New(io.Discard),
		ScreenshotDir: t.TempDir(),
	}), g
}

func update(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestModelTickAdvances(t *testing.T) {
	m, g := newTestModel(t, nil)

	for i := 0; i < 3; i++ {
		var cmd tea.Cmd
		m, cmd = update(m, TickMsg{})
		if cmd == nil {
			t.Fatal("tick should schedule the next tick")
		}
	}
	if g.tick != 3 || m.State().Tick != 3 {
		t.Errorf("tick = %d / state %d, expected 3", g.tick, m.State().Tick)
	}
}

func TestModelKeysQueueActions(t *testing.T) {
	m, g := newTestModel(t, nil)

	m, _ = update(m, runeKey("p"))
	m, _ = update(m, TickMsg{})
	if !g.lastIn.Has(core.ActionPause) || !m.State().Paused {
		t.Error("p should pause on the next tick")
	}

	m, _ = update(m, TickMsg{})
	if g.lastIn.Has(core.ActionPause) {
		t.Error("input frame should be cleared after each tick")
	}

	m, _ = update(m, runeKey("n"))
	m, _ = update(m, TickMsg{})
	if !g.lastIn.Has(core.ActionStep) {
		t.Error("n should send a step action")
	}
}

func TestModelQuitSavesResult(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "results.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	m, _ := newTestModel(t, store)
	for i := 0; i < 5; i++ {
		m, _ = update(m, TickMsg{})
	}

	m, cmd := update(m, runeKey("q"))
	if cmd == nil {
		t.Fatal("quit should return tea.Quit")
	}
	if m.View() != "" {
		t.Error("View should be empty after quit")
	}

	// A second quit must not record the run twice
	update(m, tea.KeyMsg{Type: tea.KeyEsc})

	results, err := store.RecentResults(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 saved result, got %d", len(results))
	}
	r := results[0]
	if r.LevelID != "classic" || r.Seed != 117 || r.Ticks != 5 || r.Light != 130 {
		t.Errorf("saved result = %+v", r)
	}
}

func TestModelQuitWithoutTicksSavesNothing(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "results.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	m, _ := newTestModel(t, store)
	update(m, runeKey("q"))

	results, _ := store.RecentResults(10)
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestModelRestartRecordsRun(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "results.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	m, g := newTestModel(t, store)
	m, _ = update(m, TickMsg{})
	m, _ = update(m, TickMsg{})
	m, _ = update(m, runeKey("r"))
	m, _ = update(m, TickMsg{})
	if g.resets != 1 {
		t.Errorf("resets = %d, expected 1", g.resets)
	}

	m, _ = update(m, TickMsg{})
	update(m, runeKey("q"))

	results, _ := store.RecentResults(10)
	if len(results) != 2 {
		t.Fatalf("expected restart and quit to record 2 runs, got %d", len(results))
	}
}

func TestModelResizeAndView(t *testing.T) {
	m, g := newTestModel(t, nil)
	m, _ = update(m, tea.WindowSizeMsg{Width: 60, Height: 20})

	if m.screen.Width() != 60 || m.screen.Height() != 19 {
		t.Errorf("screen = %dx%d, expected 60x19", m.screen.Width(), m.screen.Height())
	}

	view := m.View()
	if !g.painted || !strings.Contains(view, "board") {
		t.Error("View should render the game")
	}
	if !strings.Contains(view, "pause") || !strings.Contains(view, "quit") {
		t.Error("View should include the help footer")
	}
}

func TestModelScreenshot(t *testing.T) {
	m, _ := newTestModel(t, nil)
	dir := m.opts.ScreenshotDir

	update(m, tea.KeyMsg{Type: tea.KeyCtrlS})

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || !strings.HasPrefix(entries[0].Name(), "fake_") {
		t.Fatalf("expected one screenshot, got %v", entries)
	}
	data, _ := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	if !strings.HasPrefix(string(data), "board") {
		t.Errorf("screenshot content = %q", string(data))
	}
}
