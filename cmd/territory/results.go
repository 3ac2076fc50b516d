package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/territory/internal/storage"
)

var (
	flagResultsLevel string
	flagResultsLimit int
	flagResultsClear bool
)

var resultsCmd = &cobra.Command{
	Use:   "results [run-id]",
	Short: "Show recorded run results",
	Long: `Display recorded runs.

Without --level, the most recent runs across all levels are shown.
With --level, the runs with the most captures on that level are shown
together with win statistics.

Examples:
  territory results
  territory results --level classic
  territory results 1b4e28ba-2fa1-11d2-883f-0016d3cca427
  territory results --level classic --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runResults,
}

func init() {
	resultsCmd.Flags().StringVar(&flagResultsLevel, "level", "", "Only show runs on this level")
	resultsCmd.Flags().IntVar(&flagResultsLimit, "limit", 10, "Maximum number of runs to show")
	resultsCmd.Flags().BoolVar(&flagResultsClear, "clear", false, "Delete all results for --level")
}

func runResults(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening results database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := showResults(os.Stdout, store, args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		store.Close()
		os.Exit(1)
	}
}

func showResults(w io.Writer, store *storage.Store, args []string) error {
	if len(args) == 1 {
		r, err := store.ResultByRunID(args[0])
		if err != nil {
			return err
		}
		writeResultTable(w, []storage.RunResult{r})
		return nil
	}

	if flagResultsClear {
		if flagResultsLevel == "" {
			return fmt.Errorf("--clear requires --level")
		}
		if err := store.ClearResults(flagResultsLevel); err != nil {
			return err
		}
		fmt.Fprintf(w, "Cleared results for %s\n", flagResultsLevel)
		return nil
	}

	if flagResultsLevel == "" {
		results, err := store.RecentResults(flagResultsLimit)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, "Recent runs")
		fmt.Fprintln(w)
		writeResultTable(w, results)
		return nil
	}

	results, err := store.TopResults(flagResultsLevel, flagResultsLimit)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Top runs - %s\n", flagResultsLevel)
	fmt.Fprintln(w)
	writeResultTable(w, results)

	stats, err := store.Stats(flagResultsLevel)
	if err != nil {
		return err
	}
	if stats.Runs > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Runs: %d  Light wins: %d  Dark wins: %d\n", stats.Runs, stats.LightWins, stats.DarkWins)
		fmt.Fprintf(w, "Most captures: %s  Average ticks: %s  Last run: %s\n",
			humanize.Comma(int64(stats.MaxCaptures)),
			humanize.Comma(int64(stats.AvgTicks+0.5)),
			humanize.Time(stats.LastRun),
		)
	}
	return nil
}

// writeResultTable prints runs in a fixed-width table.
func writeResultTable(w io.Writer, results []storage.RunResult) {
	if len(results) == 0 {
		fmt.Fprintln(w, "No runs recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Run 'territory sim --record' or 'territory run' to record one.")
		return
	}

	fmt.Fprintf(w, "  %-8s  %-10s  %12s  %9s  %5s  %5s  %8s  %-6s  %s\n",
		"Run", "Level", "Seed", "Ticks", "Light", "Dark", "Captures", "Winner", "When")
	for _, r := range results {
		fmt.Fprintf(w, "  %-8s  %-10s  %12d  %9s  %5d  %5d  %8s  %-6s  %s\n",
			shortID(r.RunID),
			r.LevelID,
			r.Seed,
			humanize.Comma(int64(r.Ticks)),
			r.Light,
			r.Dark,
			humanize.Comma(int64(r.Captures)),
			r.Winner(),
			humanize.Time(r.CreatedAt),
		)
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
