package engine

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"holdfast/internal/core/model"
)

var (
	// ErrInvalidTransition reports an operation that is not valid in the current state.
	ErrInvalidTransition = errors.New("invalid transition")
	// ErrNegativeElapsed reports a reconciliation with a negative gap.
	ErrNegativeElapsed = errors.New("negative elapsed time")
)

// Options contains runtime options for Engine.
type Options struct {
	TickInterval time.Duration
	Clock        Clock
	Logger       *slog.Logger
}

// Engine is the workout state machine. It is not safe for concurrent use:
// every method, and every callback the Scheduler delivers, must run on one
// thread of control.
type Engine struct {
	workout      model.Workout
	options      Options
	restSeconds  int
	warnSeconds  int
	scheduler    Scheduler
	state        State
	registration Registration
	listeners    []Listener
	replaying    bool
}

// New creates an Engine in NotStarted for the given workout.
func New(workout model.Workout, scheduler Scheduler, options Options) (*Engine, error) {
	if err := workout.Validate(); err != nil {
		return nil, err
	}
	if scheduler == nil {
		return nil, errors.New("engine: scheduler is required")
	}
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	if options.Clock == nil {
		options.Clock = SystemClock{}
	}
	if options.Logger == nil {
		options.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Engine{
		workout:     workout,
		options:     options,
		restSeconds: model.Seconds(workout.RestDuration),
		warnSeconds: model.Seconds(workout.WarningThreshold),
		scheduler:   scheduler,
		state:       NotStarted{},
	}, nil
}

// AddListener registers an observer. Listeners run synchronously, in order.
func (engine *Engine) AddListener(listener Listener) {
	if listener == nil {
		return
	}
	engine.listeners = append(engine.listeners, listener)
}

// Workout returns the routine the engine runs.
func (engine *Engine) Workout() model.Workout {
	return engine.workout
}

// Start begins the first exercise. Valid from NotStarted or Completed.
func (engine *Engine) Start() error {
	switch engine.state.(type) {
	case NotStarted, Completed:
	default:
		return engine.rejectf("start")
	}

	engine.state = InExercise{Index: 0, Remaining: engine.exerciseSeconds(0)}
	engine.arm()
	engine.emit(EventStateChange)
	return nil
}

// Tick advances the active countdown by one second. Ticks outside an active
// phase are dropped.
func (engine *Engine) Tick() {
	phase, ok := engine.state.(Phase)
	if !ok {
		return
	}

	remaining := phase.RemainingSeconds() - 1
	if remaining < 0 {
		remaining = 0
	}
	engine.state = phase.withRemaining(remaining)
	engine.emit(EventProgress)

	if engine.inWarningBand(remaining) {
		engine.emit(EventWarning)
	}
	if remaining == 0 {
		engine.completePhase()
	}
}

// Pause freezes the active phase. Valid from InExercise or InRest.
func (engine *Engine) Pause() error {
	phase, ok := engine.state.(Phase)
	if !ok {
		return engine.rejectf("pause")
	}

	engine.disarm()
	engine.state = Paused{resumeInto: phase}
	engine.emit(EventStateChange)
	return nil
}

// Resume restores the paused phase with its captured countdown.
func (engine *Engine) Resume() error {
	paused, ok := engine.state.(Paused)
	if !ok || paused.resumeInto == nil {
		return engine.rejectf("resume")
	}

	engine.state = paused.resumeInto
	engine.arm()
	engine.emit(EventStateChange)
	return nil
}

// TogglePause pauses an active phase or resumes a paused one.
func (engine *Engine) TogglePause() error {
	if _, ok := engine.state.(Paused); ok {
		return engine.Resume()
	}
	return engine.Pause()
}

// Skip shortens a rest, active or paused, to the warning threshold so the
// closing warning and buzzer still play.
func (engine *Engine) Skip() error {
	target := engine.warnSeconds
	if target < 1 {
		target = 1
	}

	switch current := engine.state.(type) {
	case InRest:
		current.Remaining = target
		engine.state = current
	case Paused:
		rest, ok := current.resumeInto.(InRest)
		if !ok {
			return engine.rejectf("skip")
		}
		rest.Remaining = target
		engine.state = Paused{resumeInto: rest}
	default:
		return engine.rejectf("skip")
	}

	engine.emit(EventProgress)
	return nil
}

// Restart cancels ticking and returns to NotStarted. Valid from any state.
func (engine *Engine) Restart() {
	engine.disarm()
	engine.state = NotStarted{}
	engine.emit(EventStateChange)
}

// ReconcileElapsed replays seconds that passed while ticks could not be
// delivered. The overage is carried across phase boundaries exactly as the
// same number of Tick calls would, stopping at Completed. Warning events for
// the skipped seconds are not replayed. Paused and idle states ignore it.
func (engine *Engine) ReconcileElapsed(seconds int) error {
	if seconds < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeElapsed, seconds)
	}

	engine.replaying = true
	defer func() {
		engine.replaying = false
	}()

	overage := seconds
	for overage > 0 {
		phase, ok := engine.state.(Phase)
		if !ok {
			return nil
		}

		remaining := phase.RemainingSeconds()
		if overage < remaining {
			engine.state = phase.withRemaining(remaining - overage)
			engine.emit(EventProgress)
			return nil
		}

		overage -= remaining
		engine.state = phase.withRemaining(0)
		engine.emit(EventProgress)
		engine.completePhase()
	}
	return nil
}

// State returns the current state.
func (engine *Engine) State() State {
	return engine.state
}

// Running reports whether a phase is counting down.
func (engine *Engine) Running() bool {
	_, ok := engine.state.(Phase)
	return ok
}

// Remaining returns the countdown of the running or paused phase.
func (engine *Engine) Remaining() int {
	if phase, ok := ActivePhase(engine.state); ok {
		return phase.RemainingSeconds()
	}
	return 0
}

// ExerciseIndex returns the current exercise position. During rest it is the
// exercise just finished.
func (engine *Engine) ExerciseIndex() int {
	switch current := engine.state.(type) {
	case Completed:
		return engine.workout.Len() - 1
	default:
		if phase, ok := ActivePhase(current); ok {
			return phaseIndex(phase)
		}
		return 0
	}
}

// CurrentExercise returns the exercise being performed or just finished.
func (engine *Engine) CurrentExercise() (model.Exercise, bool) {
	if _, ok := engine.state.(NotStarted); ok {
		return model.Exercise{}, false
	}
	return engine.workout.Exercise(engine.ExerciseIndex())
}

// NextExercise returns the exercise that follows the current rest.
func (engine *Engine) NextExercise() (model.Exercise, bool) {
	phase, ok := ActivePhase(engine.state)
	if !ok {
		return model.Exercise{}, false
	}
	rest, ok := phase.(InRest)
	if !ok {
		return model.Exercise{}, false
	}
	return engine.workout.Exercise(rest.AfterIndex + 1)
}

// CurrentWarning reports whether the running or paused phase is in the warning band.
func (engine *Engine) CurrentWarning() bool {
	phase, ok := ActivePhase(engine.state)
	if !ok {
		return false
	}
	return engine.inWarningBand(phase.RemainingSeconds())
}

// Progress returns the elapsed fraction of the running or paused phase.
func (engine *Engine) Progress() float64 {
	switch engine.state.(type) {
	case NotStarted:
		return 0
	case Completed:
		return 1
	}

	phase, ok := ActivePhase(engine.state)
	if !ok {
		return 0
	}
	total := engine.phaseTotal(phase)
	if total <= 0 {
		return 1
	}
	progress := 1 - float64(phase.RemainingSeconds())/float64(total)
	if progress < 0 {
		return 0
	}
	if progress > 1 {
		return 1
	}
	return progress
}

// IsPausedFrom reports whether the engine is paused inside a phase of kind.
func (engine *Engine) IsPausedFrom(kind Kind) bool {
	paused, ok := engine.state.(Paused)
	return ok && paused.resumeInto != nil && paused.resumeInto.Kind() == kind
}

// Snapshot captures the derived view of the current state.
func (engine *Engine) Snapshot() Snapshot {
	snapshot := Snapshot{
		State:     engine.state,
		Kind:      engine.state.Kind(),
		Phase:     engine.state.Kind(),
		Index:     engine.ExerciseIndex(),
		Remaining: engine.Remaining(),
		Progress:  engine.Progress(),
		Warning:   engine.CurrentWarning(),
	}
	if phase, ok := ActivePhase(engine.state); ok {
		snapshot.Total = engine.phaseTotal(phase)
		snapshot.Phase = phase.Kind()
	}
	return snapshot
}

func (engine *Engine) completePhase() {
	engine.disarm()
	engine.emit(EventBuzzer)

	switch current := engine.state.(type) {
	case InExercise:
		if engine.workout.IsLast(current.Index) {
			engine.state = Completed{}
			engine.emit(EventStateChange)
			engine.emit(EventWorkoutComplete)
			return
		}
		engine.state = InRest{AfterIndex: current.Index, Remaining: engine.restSeconds}
	case InRest:
		next := current.AfterIndex + 1
		if next >= engine.workout.Len() {
			engine.state = Completed{}
			engine.emit(EventStateChange)
			engine.emit(EventWorkoutComplete)
			return
		}
		engine.state = InExercise{Index: next, Remaining: engine.exerciseSeconds(next)}
	default:
		return
	}

	engine.arm()
	engine.emit(EventStateChange)
	engine.emit(EventPhaseComplete)
}

// arm replaces any live registration with a fresh one.
func (engine *Engine) arm() {
	engine.disarm()
	engine.registration = engine.scheduler.Every(engine.options.TickInterval, engine.Tick)
}

func (engine *Engine) disarm() {
	if engine.registration != nil {
		engine.registration.Cancel()
		engine.registration = nil
	}
}

func (engine *Engine) inWarningBand(remaining int) bool {
	return remaining > 0 && remaining <= engine.warnSeconds
}

func (engine *Engine) exerciseSeconds(index int) int {
	exercise, ok := engine.workout.Exercise(index)
	if !ok {
		return 0
	}
	return model.Seconds(exercise.Duration)
}

func (engine *Engine) phaseTotal(phase Phase) int {
	switch value := phase.(type) {
	case InExercise:
		return engine.exerciseSeconds(value.Index)
	case InRest:
		return engine.restSeconds
	default:
		return 0
	}
}

func (engine *Engine) rejectf(operation string) error {
	err := fmt.Errorf("%w: %s from %s", ErrInvalidTransition, operation, engine.state.Kind())
	engine.options.Logger.Debug("rejected transition", "operation", operation, "state", engine.state.Kind().String())
	return err
}

func (engine *Engine) emit(eventType EventType) {
	event := Event{
		Type:     eventType,
		Snapshot: engine.Snapshot(),
		Replayed: engine.replaying,
		At:       engine.options.Clock.Now(),
	}
	if eventType == EventStateChange {
		engine.options.Logger.Debug("workout state", "state", fmt.Sprint(engine.state), "replayed", engine.replaying)
	}
	for _, listener := range engine.listeners {
		listener(event)
	}
}

func phaseIndex(phase Phase) int {
	switch value := phase.(type) {
	case InExercise:
		return value.Index
	case InRest:
		return value.AfterIndex
	default:
		return 0
	}
}
