package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
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

// TickDelta returns the nominal seconds per tick for the configured rate.
func (c RuntimeConfig) TickDelta() float64 {
	if c.TickRate <= 0 {
		return 1.0 / 60.0
	}
	return 1.0 / float64(c.TickRate)
}

// GameState is the platform-facing summary of a run.
// Returned by Game.State() so the platform can decide what to save and show.
type GameState struct {
	Score    float64 // Seconds left on the clock
	GameOver bool    // Won or lost
	Won      bool
	Started  bool // False while the title screen is shown
	Paused   bool // A challenge is open and the world is frozen
	RunID    string
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
	// Events lists what happened during the tick, oldest first.
	Events []Event
}

// EventKind identifies a notable thing that happened during a tick.
type EventKind int

const (
	EventNone EventKind = iota
	EventHit
	EventPowerUp
	EventCollected
	EventTaskStarted
	EventTaskCompleted
	EventTaskFailed
	EventWon
	EventLost
)

// Event describes one notable occurrence inside a Step.
type Event struct {
	Kind   EventKind
	Detail string
}

var eventNames = map[EventKind]string{
	EventNone:          "none",
	EventHit:           "hit",
	EventPowerUp:       "powerup",
	EventCollected:     "collected",
	EventTaskStarted:   "task_started",
	EventTaskCompleted: "task_completed",
	EventTaskFailed:    "task_failed",
	EventWon:           "won",
	EventLost:          "lost",
}

func (k EventKind) String() string {
	if name, ok := eventNames[k]; ok {
		return name
	}
	return "unknown"
}
