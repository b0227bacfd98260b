package audio

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"

	"holdfast/internal/core/engine"
)

// Sink turns engine events into cues.
type Sink struct {
	player Player
	logger *slog.Logger
	muted  atomic.Bool
}

// NewSink creates a sink that plays through player.
func NewSink(player Player, logger *slog.Logger) *Sink {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Sink{player: player, logger: logger}
}

// SetMuted silences or re-enables playback.
func (sink *Sink) SetMuted(muted bool) {
	sink.muted.Store(muted)
}

// Handle plays the cue for event, if any. Buzzers replayed during a
// suspension catch-up stay silent; the final success cue always plays.
func (sink *Sink) Handle(event engine.Event) {
	cue, ok := cueFor(event)
	if !ok || sink.muted.Load() {
		return
	}
	if err := sink.player.Play(cue); err != nil {
		sink.logger.Warn("play cue", "cue", cue.String(), "error", err)
	}
}

// Run handles events until the channel closes or ctx is done.
func (sink *Sink) Run(ctx context.Context, events <-chan engine.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			sink.Handle(event)
		}
	}
}

func cueFor(event engine.Event) (Cue, bool) {
	switch event.Type {
	case engine.EventWarning:
		return CueWarning, !event.Replayed
	case engine.EventBuzzer:
		return CueBuzzer, !event.Replayed
	case engine.EventWorkoutComplete:
		return CueSuccess, true
	default:
		return 0, false
	}
}
