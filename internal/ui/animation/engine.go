package animation

import (
	"context"
	"sync"
	"time"
)

// Config contains flash timing values.
type Config struct {
	OnDuration  time.Duration
	OffDuration time.Duration
}

// Engine drives the warning flash on the timer. It never touches widgets
// directly; highlight is called with true and then false for each pulse.
type Engine struct {
	mu        sync.Mutex
	config    Config
	highlight func(bool)
	cancel    context.CancelFunc
	done      chan struct{}
}

// New creates a new flash engine.
func New(config Config, highlight func(bool)) *Engine {
	return &Engine{
		config:    config,
		highlight: highlight,
	}
}

// Flash runs pattern, replacing any flash still in progress.
func (engine *Engine) Flash(ctx context.Context, pattern Pattern) {
	engine.start(ctx, func(runCtx context.Context) {
		defer engine.highlight(false)
		for pulse := 0; pulse < pattern.Pulses; pulse++ {
			engine.highlight(true)
			if !sleepWithContext(runCtx, engine.config.OnDuration) {
				return
			}
			engine.highlight(false)
			if pulse == pattern.Pulses-1 {
				return
			}
			if !sleepWithContext(runCtx, engine.config.OffDuration) {
				return
			}
		}
	})
}

// Stop terminates any active flash and waits for it to clear the highlight.
func (engine *Engine) Stop() {
	engine.mu.Lock()
	cancel, done := engine.cancel, engine.done
	engine.cancel, engine.done = nil, nil
	engine.mu.Unlock()
	if cancel != nil {
		cancel()
		<-done
	}
}

func (engine *Engine) start(parent context.Context, run func(context.Context)) {
	engine.Stop()

	engine.mu.Lock()
	runCtx, cancel := context.WithCancel(parent)
	done := make(chan struct{})
	engine.cancel, engine.done = cancel, done
	engine.mu.Unlock()

	go func() {
		defer close(done)
		run(runCtx)
	}()
}

func sleepWithContext(ctx context.Context, duration time.Duration) bool {
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
