package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed; 0 means use the configured seed
}

// DefaultConfig returns an 80x24 screen at 60 ticks per second.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// GameState represents the current state of a running simulation.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Level    string // ID of the loaded level
	Seed     int64  // Seed the run was started with
	Tick     uint64 // Ticks simulated so far
	Light    int    // Blocks owned by the Light team
	Dark     int    // Blocks owned by the Dark team
	Captures int    // Total captures since reset
	Paused   bool   // Whether the simulation is paused
}

// StepResult is returned by Game.Step() after each platform tick.
type StepResult struct {
	State    GameState
	Captures int // Captures that happened during this tick
}
