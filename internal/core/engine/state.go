package engine

import "fmt"

// Kind names a State variant.
type Kind int

const (
	KindNotStarted Kind = iota
	KindExercise
	KindRest
	KindPaused
	KindCompleted
)

func (kind Kind) String() string {
	switch kind {
	case KindNotStarted:
		return "not_started"
	case KindExercise:
		return "exercise"
	case KindRest:
		return "rest"
	case KindPaused:
		return "paused"
	case KindCompleted:
		return "completed"
	default:
		return fmt.Sprintf("kind(%d)", int(kind))
	}
}

// State is the workout position. Only the variants in this package satisfy it.
type State interface {
	Kind() Kind
	state()
}

// Phase is an active countdown: InExercise or InRest.
type Phase interface {
	State
	// RemainingSeconds is the countdown value of the phase.
	RemainingSeconds() int
	withRemaining(seconds int) Phase
}

// NotStarted is the initial state and the target of Restart.
type NotStarted struct{}

// InExercise counts down exercise Index.
type InExercise struct {
	Index     int
	Remaining int
}

// InRest counts down the rest that follows exercise AfterIndex.
type InRest struct {
	AfterIndex int
	Remaining  int
}

// Paused holds the phase that Resume restores, unchanged. Only the engine
// builds a Paused, so it always wraps exactly one phase.
type Paused struct {
	resumeInto Phase
}

// ResumeInto returns the captured phase snapshot.
func (paused Paused) ResumeInto() Phase {
	return paused.resumeInto
}

// Completed is reached after the last exercise finishes.
type Completed struct{}

func (NotStarted) Kind() Kind { return KindNotStarted }
func (InExercise) Kind() Kind { return KindExercise }
func (InRest) Kind() Kind { return KindRest }
func (Paused) Kind() Kind { return KindPaused }
func (Completed) Kind() Kind { return KindCompleted }

func (NotStarted) state() {}
func (InExercise) state() {}
func (InRest) state() {}
func (Paused) state() {}
func (Completed) state() {}

func (phase InExercise) RemainingSeconds() int { return phase.Remaining }
func (phase InRest) RemainingSeconds() int { return phase.Remaining }

func (phase InExercise) withRemaining(seconds int) Phase {
	phase.Remaining = seconds
	return phase
}

func (phase InRest) withRemaining(seconds int) Phase {
	phase.Remaining = seconds
	return phase
}

func (NotStarted) String() string { return "not_started" }
func (Completed) String() string { return "completed" }

func (phase InExercise) String() string {
	return fmt.Sprintf("exercise[%d] %ds", phase.Index, phase.Remaining)
}

func (phase InRest) String() string {
	return fmt.Sprintf("rest[after %d] %ds", phase.AfterIndex, phase.Remaining)
}

func (paused Paused) String() string {
	return fmt.Sprintf("paused(%v)", paused.resumeInto)
}

// ActivePhase returns the running phase, or the phase a pause is holding.
func ActivePhase(current State) (Phase, bool) {
	switch value := current.(type) {
	case InExercise:
		return value, true
	case InRest:
		return value, true
	case Paused:
		return value.resumeInto, value.resumeInto != nil
	default:
		return nil, false
	}
}
