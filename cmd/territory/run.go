package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/territory/internal/config"
	"github.com/vovakirdan/territory/internal/core"
	"github.com/vovakirdan/territory/internal/platform/tui"
	"github.com/vovakirdan/territory/internal/storage"
)

var (
	flagRandomSeed bool
	flagNoRecord   bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Watch the simulation",
	Long: `Start the simulation in the terminal.

Controls:
  P/Space    - Pause / resume
  N/Right    - Advance one tick while paused
  R          - Restart the level with the same seed
  Ctrl+S     - Save a screenshot to ~/.territory/screenshots
  Q/Esc      - Quit

The final tally is recorded in the results database on quit and restart.

Examples:
  territory run
  territory run --level quarters
  territory run --seed 42 --speed slow
  territory run --random-seed --no-record`,
	Args: cobra.NoArgs,
	Run:  runRun,
}

func init() {
	runCmd.Flags().BoolVar(&flagRandomSeed, "random-seed", false, "Seed from the current time")
	runCmd.Flags().BoolVar(&flagNoRecord, "no-record", false, "Do not record the result")
}

func runRun(cmd *cobra.Command, args []string) {
	logger, closer, err := newLogger("territory")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if flagRandomSeed {
		cfg.Seed = time.Now().UnixNano()
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	game, err := newGame(cfg, logger, width, height)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'territory levels' to see available levels.")
		os.Exit(1)
	}

	// Logs on stderr would tear the alt screen.
	if flagLogFile == "" {
		logger.SetLevel(log.ErrorLevel)
	}

	var store *storage.Store
	if !flagNoRecord {
		store, err = storage.Open(flagDBPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Could not open results database: %v\n", err)
			store = nil
		} else {
			defer store.Close()
		}
	}

	final, err := tui.Run(game, runtimeConfig(cfg, width, height), tui.Options{
		Store:  store,
		Logger: logger,
		Policy: cfg.Physics.Degenerate,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	printTally(os.Stdout, final)
}

// runtimeConfig builds the per-run settings from the loaded config.
func runtimeConfig(cfg config.TerritoryConfig, width, height int) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: cfg.Physics.TickRate,
		Seed:     cfg.Seed,
	}
}
