package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/territory/internal/core"
	"github.com/vovakirdan/territory/internal/registry"
	"github.com/vovakirdan/territory/internal/storage"
)

// Options configures a Model beyond the game itself.
type Options struct {
	Store         *storage.Store // nil disables result recording
	Logger        *log.Logger
	Policy        string // recorded with the result
	ScreenshotDir string // defaults to ~/.territory/screenshots
	NoScreenshots bool
}

// Model is the Bubble Tea model that drives one simulation.
// The game must already be Reset.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	opts       Options
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	state      core.GameState
	keys       KeyMap
	help       help.Model
	quitting   bool
	saved      bool
}

// NewModel creates a model for a reset game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, boardHeight(cfg.ScreenH)),
		opts:       opts,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		state:      game.State(),
		keys:       DefaultKeyMap(),
		help:       help.New(),
	}
}

// boardHeight leaves the last line for the help footer.
func boardHeight(h int) int {
	if h > 1 {
		return h - 1
	}
	return h
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, boardHeight(msg.Height))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

// handleKey queues actions for the next tick.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keys.MapKey(msg)
	switch action {
	case core.ActionQuit:
		m.quitting = true
		m.saveResult()
		return m, tea.Quit
	case core.ActionNone:
		if key.Matches(msg, m.keys.Screenshot) {
			m.saveScreenshot()
		}
		return m, nil
	case core.ActionRestart:
		// The discarded run is recorded before the level is rebuilt.
		m.saveResult()
		m.saved = false
		m.state.Tick = 0
	}
	m.inputFrame.Set(action)
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}

	result := m.game.Step(m.inputFrame)
	m.state = result.State
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// saveResult records the current run once. Runs that never ticked are skipped.
func (m *Model) saveResult() {
	if m.saved || m.opts.Store == nil || m.state.Tick == 0 {
		return
	}
	m.saved = true

	res, err := m.opts.Store.SaveResult(storage.RunResult{
		LevelID:  m.state.Level,
		Seed:     m.state.Seed,
		Policy:   m.opts.Policy,
		Ticks:    m.state.Tick,
		Light:    m.state.Light,
		Dark:     m.state.Dark,
		Captures: m.state.Captures,
	})
	if err != nil {
		m.opts.Logger.Error("could not save result", "error", err)
		return
	}
	m.opts.Logger.Info("result saved", "run", res.RunID, "winner", res.Winner())
}

// saveScreenshot saves the current screen to a text file.
func (m *Model) saveScreenshot() {
	if m.opts.NoScreenshots {
		return
	}
	m.screen.Clear()
	m.game.Render(m.screen)

	dir := m.opts.ScreenshotDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			m.opts.Logger.Warn("no home directory for screenshots", "error", err)
			return
		}
		dir = filepath.Join(home, ".territory", "screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.opts.Logger.Warn("could not create screenshot directory", "error", err)
		return
	}

	filename := fmt.Sprintf("%s_%s_%d.txt", m.game.ID(), time.Now().Format("20060102_150405"), m.state.Tick)
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.opts.Logger.Warn("could not save screenshot", "error", err)
		return
	}
	m.opts.Logger.Debug("screenshot saved", "path", path)
}

// State returns the last observed simulation state.
func (m Model) State() core.GameState {
	return m.state
}

// View renders the board and the help footer.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + m.help.View(m.keys)
}

// Run starts the Bubble Tea program for a reset game and blocks until quit.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) (core.GameState, error) {
	p := tea.NewProgram(
		NewModel(game, cfg, opts),
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return core.GameState{}, fmt.Errorf("tui: %w", err)
	}
	if fm, ok := final.(Model); ok {
		return fm.State(), nil
	}
	return game.State(), nil
}
