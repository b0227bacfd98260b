package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"holdfast/internal/core/display"
	"holdfast/internal/platform"
	"holdfast/internal/storage"
	"holdfast/internal/ui/preferences"
	"holdfast/internal/ui/tray"
	"holdfast/internal/ui/workout"
	"holdfast/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
)

func runGUI(ctx context.Context, settings preferences.Settings, mute bool, logger *slog.Logger) error {
	activate := make(chan struct{}, 1)
	guard, err := platform.AcquireSingleInstance(appName, func() {
		select {
		case activate <- struct{}{}:
		default:
		}
	})
	if errors.Is(err, platform.ErrAlreadyRunning) {
		logger.Info("holdfast is already running, asked it to show its window", "error", err)
		return nil
	}
	if err != nil {
		return fmt.Errorf("single instance: %w", err)
	}
	defer func() {
		_ = guard.Release()
	}()

	current, err := startSession(ctx, settings, mute, logger)
	if err != nil {
		return err
	}
	defer current.Close()
	keeper := current.keeper

	fyneApp := app.NewWithID(appID)
	fyneApp.SetIcon(resources.MustIcon(resources.IconLogo))

	workoutWindow := workout.New(fyneApp, keeper.Workout(), keeper, workout.Config{
		Fullscreen: settings.Fullscreen,
		Logger:     logger,
	})

	prefsWindow := preferences.New(fyneApp, settings, func(updated preferences.Settings) {
		settings = updated
		current.apply(settings)
		workoutWindow.SetFullscreen(settings.Fullscreen)
		if err := storage.SaveSettings(appName, settings); err != nil {
			logger.Warn("save settings", "error", err)
		}
	})

	if desktopApp, ok := fyneApp.(desktop.App); ok {
		trayManager := tray.New(desktopApp, tray.Icons{
			Idle:   resources.MustIcon(resources.IconTrayIdle),
			Active: resources.MustIcon(resources.IconTrayActive),
			Paused: resources.MustIcon(resources.IconTrayPaused),
		}, tray.Callbacks{
			OnShow:        workoutWindow.Show,
			OnStart:       ignoreRejected(logger, "start", keeper.Start),
			OnTogglePause: ignoreRejected(logger, "pause", keeper.TogglePause),
			OnSkipRest:    ignoreRejected(logger, "skip", keeper.Skip),
			OnRestart:     ignoreRejected(logger, "restart", keeper.Restart),
			OnPreferences: prefsWindow.Show,
			OnQuit:        fyneApp.Quit,
		})
		workoutWindow.SetOnRender(func(screen display.Screen) {
			trayManager.Update(screen)
		})
		workoutWindow.SetOnExit(workoutWindow.Hide)
		workoutWindow.SetCloseIntercept(func() {
			_ = keeper.Pause()
			workoutWindow.Hide()
		})
	} else {
		logger.Info("system tray unsupported, closing the window quits")
	}

	windowCtx, cancelWindow := context.WithCancel(ctx)
	defer cancelWindow()
	go workoutWindow.Run(windowCtx, keeper.Subscribe(subscriberBuffer))
	go func() {
		for {
			select {
			case <-windowCtx.Done():
				return
			case <-activate:
				fyne.Do(workoutWindow.Show)
			}
		}
	}()

	workoutWindow.Show()
	fyneApp.Run()
	return nil
}

func ignoreRejected(logger *slog.Logger, name string, run func() error) func() {
	return func() {
		if err := run(); err != nil {
			logger.Debug("tray command ignored", "command", name, "error", err)
		}
	}
}
