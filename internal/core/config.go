package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic level generation
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

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	GameOver bool // Whether the run has ended
	Paused   bool // Whether the game is paused
}

// EventKind classifies something that happened during a tick.
type EventKind int

const (
	EventNone EventKind = iota
	EventStrokeExtended
	EventStrokeReverted
	EventTouchRejected
	EventLevelCompleted
	EventLevelAdvanced
	EventHintShown
)

// String returns a short name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventStrokeExtended:
		return "extended"
	case EventStrokeReverted:
		return "reverted"
	case EventTouchRejected:
		return "rejected"
	case EventLevelCompleted:
		return "completed"
	case EventLevelAdvanced:
		return "advanced"
	case EventHintShown:
		return "hint"
	default:
		return "none"
	}
}

// LevelStats summarizes one cleared level. Attached to EventLevelCompleted.
type LevelStats struct {
	LevelID    string
	Targets    int
	Touches    int
	Reverts    int
	Hints      int
	DurationMs int64
}

// Event is emitted by a game step so the platform can trigger feedback
// and persistence without inspecting game internals.
type Event struct {
	Kind  EventKind
	Stats *LevelStats // Set for EventLevelCompleted only
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State  GameState
	Events []Event
}

// Has reports whether any event of the given kind happened this step.
func (r StepResult) Has(kind EventKind) bool {
	for _, e := range r.Events {
		if e.Kind == kind {
			return true
		}
	}
	return false
}
