package core

// TickRate is the fixed simulation rate in ticks per second.
// Replays are only valid at this rate, so the platform never changes it.
const TickRate = 60

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW  int // Screen width in characters
	ScreenH  int // Screen height in characters
	TickRate int // Simulation ticks per second (always TickRate)
}

// DefaultConfig returns a RuntimeConfig for a standard 80x24 terminal.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: TickRate,
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Score of the finished run, 0 while playing
	GameOver bool // Whether the run has reached a terminal outcome
	Won      bool // Whether the terminal outcome was a level completion
	Paused   bool // Whether the game is paused
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
	Event string // Name of the outcome produced this tick, empty when none
}
