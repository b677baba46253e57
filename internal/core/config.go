package core

// RuntimeConfig carries what the platform knows when a game starts:
// the terminal size, the tick rate and the seed for the random source.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Host ticks per second (default 60)
	Seed     int64 // RNG seed; 0 lets the platform pick one from the clock
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// GameState is what the platform needs to know after each tick.
type GameState struct {
	Score    int    // Current score, may be negative
	Started  bool   // The player has begun this run
	GameOver bool   // Won or lost
	Won      bool   // Only meaningful when GameOver is set
	Paused   bool   // Whether the game is paused
	Status   string // Player-facing status label
}

// StepResult is returned by Game.Step() after each tick.
type StepResult struct {
	State GameState
}

// RunSummary describes a finished game for persistence.
type RunSummary struct {
	Points  int
	Length  int
	Steps   int    // world steps taken
	Outcome string // "won", "lost" or "abandoned"
	Width   int
	Seed    int64
}
