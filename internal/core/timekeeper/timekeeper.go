package timekeeper

import (
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"holdfast/internal/core/engine"
	"holdfast/internal/core/model"
)

// ErrStopped is returned by commands issued after Stop.
var ErrStopped = errors.New("timekeeper stopped")

// Config contains runtime options for TimeKeeper.
type Config struct {
	TickInterval time.Duration
	// CatchUp replays wall-clock gaps (sleep, suspended process) into the engine.
	CatchUp      bool
	GapTolerance time.Duration
	Clock        Clock
	Logger       *slog.Logger
}

// TimeKeeper hosts an Engine on a single goroutine. Commands from any
// goroutine are queued onto that goroutine, and so are ticks from the one
// live ticker, so the engine never sees concurrent calls.
type TimeKeeper struct {
	mu       sync.Mutex
	engine   *engine.Engine
	options  Config
	detector *GapDetector
	commands chan func()
	stopCh   chan struct{}
	done     chan struct{}
	events   []chan engine.Event
	snapshot engine.Snapshot
	stopped  bool

	// active is owned by the loop goroutine.
	active *registration
}

type registration struct {
	keeper   *TimeKeeper
	ticker   Ticker
	interval time.Duration
	fn       func()
}

// New creates a TimeKeeper for workout and starts its loop goroutine.
func New(workout model.Workout, options Config) (*TimeKeeper, error) {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	if options.Clock == nil {
		options.Clock = SystemClock()
	}
	if options.Logger == nil {
		options.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	keeper := &TimeKeeper{
		options:  options,
		detector: NewGapDetector(options.GapTolerance),
		commands: make(chan func()),
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
	}

	workoutEngine, err := engine.New(workout, keeper, engine.Options{
		TickInterval: options.TickInterval,
		Clock:        options.Clock,
		Logger:       options.Logger,
	})
	if err != nil {
		return nil, err
	}
	workoutEngine.AddListener(keeper.dispatch)
	keeper.engine = workoutEngine
	keeper.snapshot = workoutEngine.Snapshot()

	go keeper.run()
	return keeper, nil
}

// Workout returns the routine being run.
func (keeper *TimeKeeper) Workout() model.Workout {
	return keeper.engine.Workout()
}

// Subscribe registers a new observer channel. When an observer's buffer is
// full its oldest pending event is discarded, so the latest events, including
// the final state of a catch-up burst, always arrive.
func (keeper *TimeKeeper) Subscribe(buffer int) <-chan engine.Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan engine.Event, buffer)
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.stopped {
		close(ch)
		return ch
	}
	keeper.events = append(keeper.events, ch)
	return ch
}

// Start begins the workout from the first exercise.
func (keeper *TimeKeeper) Start() error {
	return keeper.call(keeper.engine.Start)
}

// Pause freezes the running phase.
func (keeper *TimeKeeper) Pause() error {
	return keeper.call(keeper.engine.Pause)
}

// Resume continues a paused phase.
func (keeper *TimeKeeper) Resume() error {
	return keeper.call(keeper.engine.Resume)
}

// TogglePause pauses or resumes depending on the current state.
func (keeper *TimeKeeper) TogglePause() error {
	return keeper.call(keeper.engine.TogglePause)
}

// Skip shortens the current rest.
func (keeper *TimeKeeper) Skip() error {
	return keeper.call(keeper.engine.Skip)
}

// Restart returns the workout to NotStarted.
func (keeper *TimeKeeper) Restart() error {
	return keeper.call(func() error {
		keeper.engine.Restart()
		return nil
	})
}

// SetCatchUp turns gap replay on or off for subsequent ticks.
func (keeper *TimeKeeper) SetCatchUp(enabled bool) error {
	return keeper.call(func() error {
		keeper.options.CatchUp = enabled
		keeper.detector.Reset(keeper.options.Clock.Now())
		return nil
	})
}

// Wake reconciles time that passed since the last delivered tick. The OS
// sleep notifier calls it on resume so catch-up does not wait for a tick.
func (keeper *TimeKeeper) Wake() error {
	return keeper.call(func() error {
		if !keeper.options.CatchUp || keeper.active == nil {
			return nil
		}
		missed := keeper.detector.Observe(keeper.options.Clock.Now(), 0)
		return keeper.reconcile(missed)
	})
}

// Snapshot returns the latest engine view.
func (keeper *TimeKeeper) Snapshot() engine.Snapshot {
	var snapshot engine.Snapshot
	err := keeper.call(func() error {
		snapshot = keeper.engine.Snapshot()
		return nil
	})
	if err != nil {
		keeper.mu.Lock()
		defer keeper.mu.Unlock()
		return keeper.snapshot
	}
	return snapshot
}

// Stop terminates the loop and closes observers.
func (keeper *TimeKeeper) Stop() {
	keeper.mu.Lock()
	if keeper.stopped {
		keeper.mu.Unlock()
		return
	}
	keeper.stopped = true
	close(keeper.stopCh)
	keeper.mu.Unlock()

	<-keeper.done

	keeper.mu.Lock()
	events := keeper.events
	keeper.events = nil
	keeper.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

// Every implements engine.Scheduler. The engine only calls it from the loop
// goroutine, so the single active registration needs no locking.
func (keeper *TimeKeeper) Every(interval time.Duration, fn func()) engine.Registration {
	if keeper.active != nil {
		keeper.active.Cancel()
	}
	reg := &registration{
		keeper:   keeper,
		ticker:   keeper.options.Clock.NewTicker(interval),
		interval: interval,
		fn:       fn,
	}
	keeper.active = reg
	keeper.detector.Reset(keeper.options.Clock.Now())
	return reg
}

func (reg *registration) Cancel() {
	reg.ticker.Stop()
	if reg.keeper.active == reg {
		reg.keeper.active = nil
	}
}

func (keeper *TimeKeeper) run() {
	defer close(keeper.done)
	for {
		// A nil channel blocks, so no tick is read without a live registration,
		// and a replaced registration's channel is never read again.
		var tickC <-chan time.Time
		if keeper.active != nil {
			tickC = keeper.active.ticker.C()
		}

		select {
		case <-keeper.stopCh:
			if keeper.active != nil {
				keeper.active.Cancel()
			}
			return
		case command := <-keeper.commands:
			command()
		case tickTime := <-tickC:
			keeper.deliverTick(tickTime)
		}
	}
}

func (keeper *TimeKeeper) deliverTick(tickTime time.Time) {
	reg := keeper.active
	if keeper.options.CatchUp {
		missed := keeper.detector.Observe(tickTime, reg.interval)
		if err := keeper.reconcile(missed); err != nil {
			keeper.options.Logger.Warn("reconcile gap", "error", err)
		}
	}
	// Catch-up may have finished the phase and armed a new registration,
	// or completed the workout and left none.
	if keeper.active != nil {
		keeper.active.fn()
	}
}

func (keeper *TimeKeeper) reconcile(missed int) error {
	if missed <= 0 {
		return nil
	}
	keeper.options.Logger.Info("catching up missed time", "seconds", missed)
	return keeper.engine.ReconcileElapsed(missed)
}

func (keeper *TimeKeeper) call(fn func() error) error {
	result := make(chan error, 1)
	select {
	case keeper.commands <- func() { result <- fn() }:
	case <-keeper.done:
		return ErrStopped
	}
	select {
	case err := <-result:
		return err
	case <-keeper.done:
		return ErrStopped
	}
}

// dispatch runs on the loop goroutine for every engine event.
func (keeper *TimeKeeper) dispatch(event engine.Event) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.snapshot = event.Snapshot
	for _, ch := range keeper.events {
		deliverLatest(ch, event)
	}
}

// deliverLatest sends event, evicting the oldest buffered events if needed.
// dispatch is the only sender, so eviction makes room.
func deliverLatest(ch chan engine.Event, event engine.Event) {
	for {
		select {
		case ch <- event:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}
