package engine

import "time"

// EventType defines the type of engine event.
type EventType string

const (
	// EventStateChange fires whenever the phase, index or pause state changes.
	EventStateChange EventType = "state_change"
	// EventProgress fires after the countdown value changes without a phase change.
	EventProgress EventType = "progress"
	// EventWarning fires once per tick while 0 < remaining <= warning threshold.
	EventWarning EventType = "warning"
	// EventBuzzer fires on every phase completion, including the last one.
	EventBuzzer EventType = "buzzer"
	// EventPhaseComplete fires when an exercise or rest hands over to the next phase.
	EventPhaseComplete EventType = "phase_complete"
	// EventWorkoutComplete fires once when the final exercise finishes.
	EventWorkoutComplete EventType = "workout_complete"
)

// Snapshot is a read-only view of the engine for renderers.
type Snapshot struct {
	State State
	Kind  Kind
	// Phase is the kind of the running or paused phase, otherwise Kind.
	Phase     Kind
	Index     int
	Remaining int
	Total     int
	Progress  float64
	Warning   bool
}

// Event represents an engine update for observers.
type Event struct {
	Type     EventType
	Snapshot Snapshot
	// Replayed marks events produced while catching up a suspension gap.
	Replayed bool
	At       time.Time
}

// Listener receives events synchronously on the engine's thread.
type Listener func(Event)
