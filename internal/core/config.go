package core

// RuntimeConfig is passed to the game by its host.
type RuntimeConfig struct {
	ScreenW  int   // Canvas width in cells
	ScreenH  int   // Canvas height in cells
	TickRate int   // Host frame rate (frames per second)
	Seed     int64 // RNG seed; 0 means the host picks one
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// GameState is the summary a host needs after each frame.
type GameState struct {
	Phase    string // idle, tutorial, countdown, playing, paused, transition, over, won
	Score    int
	Lives    int
	Level    int
	GameOver bool
	Won      bool
	Paused   bool
}

// StepResult is returned by Game.Advance after each frame.
type StepResult struct {
	State GameState
	Quit  bool // the player asked to leave
}
