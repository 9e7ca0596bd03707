package core

import "time"

// RuntimeConfig contains configuration passed to the game by the platform.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// StepDuration returns the fixed simulation step for the tick rate.
func (c RuntimeConfig) StepDuration() time.Duration {
	if c.TickRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.TickRate)
}

// GameState summarizes session status for the platform.
type GameState struct {
	Score     int  // Current score
	HighScore int  // Best score this process run
	Started   bool // A round is in progress or finished (not on the start screen)
	Paused    bool // Whether the game is paused
	GameOver  bool // Whether the current round has ended
	Quit      bool // Quit was requested; the platform should stop after this tick
}

// EventKind identifies something notable that happened during a tick.
type EventKind int

const (
	EventStarted EventKind = iota
	EventJumped
	EventScored
	EventDied
	EventPaused
	EventResumed
	EventRestarted
	EventQuit
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventStarted:
		return "started"
	case EventJumped:
		return "jumped"
	case EventScored:
		return "scored"
	case EventDied:
		return "died"
	case EventPaused:
		return "paused"
	case EventResumed:
		return "resumed"
	case EventRestarted:
		return "restarted"
	case EventQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Event is emitted by Step for the platform to log or react to.
type Event struct {
	Kind  EventKind
	Tick  uint64
	Score int
}

// StepResult is returned by Step after each simulation tick.
type StepResult struct {
	State  GameState
	Events []Event
}
