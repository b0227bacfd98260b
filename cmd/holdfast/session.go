package main

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"holdfast/internal/audio"
	"holdfast/internal/core/model"
	"holdfast/internal/core/timekeeper"
	"holdfast/internal/platform"
	"holdfast/internal/ui/preferences"
)

const subscriberBuffer = 32

// session owns the timekeeper and the headless sinks shared by both front ends.
type session struct {
	keeper    *timekeeper.TimeKeeper
	player    audio.Player
	sink      *audio.Sink
	keepAwake *platform.KeepAwake
	logger    *slog.Logger
	mute      bool
	cancel    context.CancelFunc
	wg        sync.WaitGroup
}

func startSession(ctx context.Context, settings preferences.Settings, mute bool, logger *slog.Logger) (*session, error) {
	config := settings.TimeKeeperConfig()
	config.Logger = logger
	keeper, err := timekeeper.New(model.DefaultWorkout(), config)
	if err != nil {
		return nil, err
	}

	player, err := audio.NewPlayer()
	if err != nil {
		logger.Warn("sound cues unavailable", "error", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	current := &session{
		keeper:    keeper,
		player:    player,
		sink:      audio.NewSink(player, logger),
		keepAwake: platform.NewKeepAwake(platform.NewWakeLock(appName), settings.KeepAwake, logger),
		logger:    logger,
		mute:      mute,
		cancel:    cancel,
	}
	current.sink.SetMuted(mute || !settings.SoundEnabled)

	sinkEvents := keeper.Subscribe(subscriberBuffer)
	awakeEvents := keeper.Subscribe(subscriberBuffer)
	current.wg.Add(2)
	go func() {
		defer current.wg.Done()
		current.sink.Run(ctx, sinkEvents)
	}()
	go func() {
		defer current.wg.Done()
		current.keepAwake.Run(ctx, awakeEvents)
	}()

	err = platform.WatchSleep(ctx, func() {
		logger.Info("resumed from sleep")
		if err := keeper.Wake(); err != nil && !errors.Is(err, timekeeper.ErrStopped) {
			logger.Warn("reconcile after sleep", "error", err)
		}
	})
	switch {
	case errors.Is(err, platform.ErrSleepUnsupported):
		logger.Debug("sleep notifications unavailable, relying on tick gaps", "error", err)
	case err != nil:
		logger.Warn("watch sleep", "error", err)
	}

	return current, nil
}

// apply pushes edited preferences into the running session.
func (current *session) apply(settings preferences.Settings) {
	current.sink.SetMuted(current.mute || !settings.SoundEnabled)
	current.keepAwake.SetEnabled(settings.KeepAwake)
	if err := current.keeper.SetCatchUp(settings.CatchUpAfterSleep); err != nil {
		current.logger.Warn("update catch up", "error", err)
	}
}

func (current *session) Close() {
	current.keeper.Stop()
	current.cancel()
	current.wg.Wait()
	if err := current.player.Close(); err != nil {
		current.logger.Warn("close player", "error", err)
	}
}
