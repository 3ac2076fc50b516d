// territory runs a two-team ball-and-block territory simulation in the terminal.
//
// Usage:
//
//	territory run              - Watch the simulation interactively
//	territory sim              - Run headless and print the tally
//	territory levels           - List available levels
//	territory levels show <id> - Print a level map
//	territory results          - Show recorded run results
//	territory serve            - Start SSH server for remote spectating
//
// Global flags:
//
//	--config <path>    - Config file (default search: ~/.territory/configs, ./configs)
//	--level <id>       - Level to load (overrides config)
//	--seed <value>     - RNG seed (0 = config seed)
//	--speed <preset>   - Initial speed preset: slow, normal, fast
//	--fps <rate>       - Tick rate for the interactive loop
//	--db <path>        - Results database (default: ~/.territory/results.db)
//	--log-level <lvl>  - debug, info, warn, error
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/territory/internal/config"
	"github.com/vovakirdan/territory/internal/games/territory"
)

var (
	// Global flags
	flagConfig   string
	flagLevel    string
	flagLevelDir string
	flagSeed     int64
	flagSpeed    string
	flagPolicy   string
	flagFPS      int
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "territory",
	Short: "Territory - two balls fight over a grid of blocks",
	Long: `Territory is a deterministic simulation of two teams, Light and Dark.
Each team has a ball that bounces around a walled grid. A ball that hits
a block of its own team flips it to the other team and bounces off.
Blocks of the other team let the ball pass through.

Available commands:
  run      - Watch the simulation interactively
  sim      - Run headless for a number of ticks
  levels   - List or preview levels
  results  - Show recorded run results
  serve    - Start SSH server for remote spectating

Examples:
  territory run
  territory run --level pillars --speed fast
  territory sim --ticks 3600 --record
  territory levels show classic
  territory serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "Path to config YAML")
	pf.StringVar(&flagLevel, "level", "", "Level ID (overrides config)")
	pf.StringVar(&flagLevelDir, "levels-dir", "", "Directory of YAML level files (overrides config)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = config seed)")
	pf.StringVar(&flagSpeed, "speed", "", "Initial speed preset: slow, normal, fast")
	pf.StringVar(&flagPolicy, "degenerate", "", "Contact policy with no dominant direction: reflect_y, ignore")
	pf.IntVar(&flagFPS, "fps", 0, "Tick rate (0 = config tick_rate)")
	pf.StringVar(&flagDBPath, "db", "~/.territory/results.db", "Path to results database")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&flagLogFile, "log-file", "", "Write logs to a file instead of stderr")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(resultsCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadConfig loads the config file and applies command-line overrides.
func loadConfig() (config.TerritoryConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	if flagLevel != "" {
		cfg.Level.ID = flagLevel
	}
	if flagLevelDir != "" {
		cfg.Level.Dir = flagLevelDir
	}
	if flagSeed != 0 {
		cfg.Seed = flagSeed
	}
	if flagFPS > 0 {
		cfg.Physics.TickRate = flagFPS
	}
	if flagPolicy != "" {
		cfg.Physics.Degenerate = flagPolicy
	}
	if flagSpeed != "" {
		preset, err := config.ParseSpeedPreset(flagSpeed)
		if err != nil {
			return cfg, err
		}
		config.ApplySpeedPreset(&cfg, preset)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// newLogger builds the process logger from --log-level and --log-file.
// The returned closer must be called on exit.
func newLogger(prefix string) (*log.Logger, io.Closer, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	var w io.Writer = os.Stderr
	var closer io.Closer = io.NopCloser(nil)
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		w, closer = f, f
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
	return logger, closer, nil
}

// newGame creates and resets the simulation.
func newGame(cfg config.TerritoryConfig, logger *log.Logger, screenW, screenH int) (*territory.Game, error) {
	game := territory.New(cfg, logger)
	rc := runtimeConfig(cfg, screenW, screenH)
	if err := game.Reset(rc); err != nil {
		return nil, err
	}
	return game, nil
}
