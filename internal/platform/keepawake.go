package platform

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"holdfast/internal/core/engine"
)

// KeepAwake holds a WakeLock while a phase is counting down.
type KeepAwake struct {
	mu      sync.Mutex
	lock    WakeLock
	logger  *slog.Logger
	reason  string
	enabled bool
	held    bool
}

// NewKeepAwake creates a follower for lock. A disabled follower never acquires.
func NewKeepAwake(lock WakeLock, enabled bool, logger *slog.Logger) *KeepAwake {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &KeepAwake{lock: lock, logger: logger, reason: "Workout in progress", enabled: enabled}
}

// Held reports whether the lock is currently taken.
func (keep *KeepAwake) Held() bool {
	keep.mu.Lock()
	defer keep.mu.Unlock()
	return keep.held
}

// SetEnabled switches the follower on or off. Disabling releases a held lock;
// enabling takes effect on the next phase change.
func (keep *KeepAwake) SetEnabled(enabled bool) {
	keep.mu.Lock()
	defer keep.mu.Unlock()
	keep.enabled = enabled
	if !enabled {
		keep.releaseLocked()
	}
}

// Handle acquires or releases the lock for the state carried by event.
func (keep *KeepAwake) Handle(event engine.Event) {
	if event.Type != engine.EventStateChange {
		return
	}
	keep.mu.Lock()
	defer keep.mu.Unlock()
	switch event.Snapshot.Kind {
	case engine.KindExercise, engine.KindRest:
		keep.acquireLocked()
	default:
		keep.releaseLocked()
	}
}

// Run follows events until the channel closes or ctx is done, then releases.
func (keep *KeepAwake) Run(ctx context.Context, events <-chan engine.Event) {
	defer func() {
		keep.mu.Lock()
		defer keep.mu.Unlock()
		keep.releaseLocked()
	}()
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			keep.Handle(event)
		}
	}
}

func (keep *KeepAwake) acquireLocked() {
	if !keep.enabled || keep.held {
		return
	}
	if err := keep.lock.Acquire(keep.reason); err != nil {
		keep.logger.Warn("acquire wake lock", "error", err)
		return
	}
	keep.held = true
}

func (keep *KeepAwake) releaseLocked() {
	if !keep.held {
		return
	}
	if err := keep.lock.Release(); err != nil {
		keep.logger.Warn("release wake lock", "error", err)
	}
	keep.held = false
}
