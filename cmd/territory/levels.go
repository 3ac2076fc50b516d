package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/territory/internal/games/territory/levels"
	"github.com/vovakirdan/territory/internal/games/territory/sim"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List available levels",
	Long: `List built-in levels and levels found in the levels directory.

Level files are YAML with either hex "rows" or an ASCII "map":
  #  wall           l/d/n  Light/Dark/teamless block
  L/D  Light/Dark ball spawn   .  empty

Examples:
  territory levels
  territory levels --levels-dir ./levels
  territory levels show pillars`,
	Args: cobra.NoArgs,
	Run:  runLevels,
}

var levelsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a level map",
	Args:  cobra.ExactArgs(1),
	Run:   runLevelsShow,
}

func init() {
	levelsCmd.AddCommand(levelsShowCmd)
}

func levelLoader() *levels.Loader {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return levels.NewLoader(cfg.Level.Dir)
}

func runLevels(cmd *cobra.Command, args []string) {
	list, err := levelLoader().List()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Available levels:")
	fmt.Println()
	writeLevelTable(os.Stdout, list)
	fmt.Println()
	fmt.Println("Run 'territory run --level <id>' to watch a level.")
}

// writeLevelTable prints one row per level with its decoded entity counts.
func writeLevelTable(w io.Writer, list []levels.Level) {
	quiet := log.New(io.Discard)
	fmt.Fprintf(w, "  %-12s  %-20s  %5s  %6s  %5s  %s\n", "ID", "Name", "Walls", "Blocks", "Balls", "Source")
	for _, lvl := range list {
		stats := levels.Decode(lvl.Grid, sim.NewRegistry(), levels.DecodeOptions{Logger: quiet})
		source := "built-in"
		if lvl.FilePath != "" {
			source = lvl.FilePath
		}
		fmt.Fprintf(w, "  %-12s  %-20s  %5d  %6d  %5d  %s\n",
			lvl.ID, lvl.Name, stats.Walls, stats.Blocks, stats.Balls, source)
	}
}

func runLevelsShow(cmd *cobra.Command, args []string) {
	lvl, err := levelLoader().Find(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'territory levels' to see available levels.")
		os.Exit(1)
	}

	fmt.Printf("%s (%s)\n\n", lvl.Name, lvl.ID)
	for _, row := range levels.ToASCII(lvl.Grid) {
		fmt.Println("  " + row)
	}
}
