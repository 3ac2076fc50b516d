package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/territory/internal/games/territory"
	"github.com/vovakirdan/territory/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagSSHRandSeed bool
	flagSSHNoRecord bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the territory SSH server",
	Long: `Start an SSH server that runs one simulation per connection.

Each SSH connection gets its own independent simulation built from the
same config. Results are stored per-server in the results database.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.territory/host_key

Examples:
  territory serve                           # Listen on :23234 with auto-generated key
  territory serve --ssh :2222               # Listen on port 2222
  territory serve --random-seed             # Every session gets a fresh seed
  territory serve --level pillars --speed fast

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().BoolVar(&flagSSHRandSeed, "random-seed", false, "Seed each session from the current time")
	serveCmd.Flags().BoolVar(&flagSSHNoRecord, "no-record", false, "Do not record session results")
}

func runServe(_ *cobra.Command, _ []string) {
	logger, closer, err := newLogger("territory-ssh")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()

	simCfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.DBPath = flagDBPath
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.GameID = territory.ID
	cfg.Sim = simCfg
	cfg.RandomSeed = flagSSHRandSeed
	cfg.Logger = logger
	if flagSSHNoRecord {
		cfg.DBPath = ""
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting territory SSH server on %s\n", server.Addr())
	fmt.Println("Connect with: ssh localhost -p 23234")
	fmt.Println("Press Ctrl+C to stop")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.ListenAndServe(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
