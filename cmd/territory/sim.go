package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/territory/internal/core"
	"github.com/vovakirdan/territory/internal/registry"
	"github.com/vovakirdan/territory/internal/storage"
)

var (
	flagTicks    uint64
	flagEvery    uint64
	flagRecord   bool
	flagSimBoard bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run the simulation headless",
	Long: `Run the simulation without a terminal UI and print the final tally.

With --ticks 0 the simulation runs until interrupted (Ctrl+C).
Runs with the same level, seed and config always produce the same tally.

Examples:
  territory sim --ticks 3600
  territory sim --ticks 600 --seed 42 --board
  territory sim --ticks 0 --every 600 --record`,
	Args: cobra.NoArgs,
	Run:  runSim,
}

func init() {
	simCmd.Flags().Uint64Var(&flagTicks, "ticks", 3600, "Number of ticks to simulate (0 = until interrupted)")
	simCmd.Flags().Uint64Var(&flagEvery, "every", 0, "Log the tally every N ticks (0 = never)")
	simCmd.Flags().BoolVar(&flagRecord, "record", false, "Record the result in the database")
	simCmd.Flags().BoolVar(&flagSimBoard, "board", false, "Print the final board")
}

func runSim(cmd *cobra.Command, args []string) {
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

	screen := core.DefaultConfig()
	game, err := newGame(cfg, logger, screen.ScreenW, screen.ScreenH)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	final := simulate(ctx, game, flagTicks, flagEvery, logger)

	if flagSimBoard {
		scr := core.NewScreen(screen.ScreenW, screen.ScreenH)
		game.Render(scr)
		fmt.Println(scr.String())
	}
	printTally(os.Stdout, final)

	if flagRecord {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening results database: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()

		res, err := store.SaveResult(storage.RunResult{
			LevelID:  final.Level,
			Seed:     final.Seed,
			Policy:   cfg.Physics.Degenerate,
			Ticks:    final.Tick,
			Light:    final.Light,
			Dark:     final.Dark,
			Captures: final.Captures,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error saving result: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Recorded run %s\n", res.RunID)
	}
}

// simulate steps game until ticks have elapsed or ctx is done.
// ticks == 0 runs until ctx is done.
func simulate(ctx context.Context, game registry.Game, ticks, every uint64, logger *log.Logger) core.GameState {
	none := core.NewInputFrame()
	state := game.State()

	for ticks == 0 || state.Tick < ticks {
		select {
		case <-ctx.Done():
			logger.Info("interrupted", "tick", state.Tick)
			return state
		default:
		}

		state = game.Step(none).State
		if every > 0 && state.Tick%every == 0 {
			logger.Info("tally",
				"tick", state.Tick,
				"light", state.Light,
				"dark", state.Dark,
				"captures", state.Captures,
			)
		}
	}
	return state
}

// printTally writes the final block counts.
func printTally(w io.Writer, st core.GameState) {
	winner := "Draw"
	switch {
	case st.Light > st.Dark:
		winner = "Light"
	case st.Dark > st.Light:
		winner = "Dark"
	}

	fmt.Fprintf(w, "Level:    %s (seed %d)\n", st.Level, st.Seed)
	fmt.Fprintf(w, "Ticks:    %s\n", humanize.Comma(int64(st.Tick)))
	fmt.Fprintf(w, "Light:    %d\n", st.Light)
	fmt.Fprintf(w, "Dark:     %d\n", st.Dark)
	fmt.Fprintf(w, "Captures: %s\n", humanize.Comma(int64(st.Captures)))
	fmt.Fprintf(w, "Leader:   %s\n", winner)
}
