package preferences

import (
	"log/slog"
	"strings"
	"time"

	"holdfast/internal/core/timekeeper"
)

// Settings defines editable user preferences.
type Settings struct {
	SoundEnabled      bool
	KeepAwake         bool
	Fullscreen        bool
	CatchUpAfterSleep bool
	LogLevel          string
}

// DefaultSettings returns default settings for holdfast.
func DefaultSettings() Settings {
	return Settings{
		SoundEnabled:      true,
		KeepAwake:         true,
		Fullscreen:        false,
		CatchUpAfterSleep: true,
		LogLevel:          "info",
	}
}

// TimeKeeperConfig converts settings to timekeeper.Config.
func (settings Settings) TimeKeeperConfig() timekeeper.Config {
	return timekeeper.Config{
		TickInterval: time.Second,
		CatchUp:      settings.CatchUpAfterSleep,
		GapTolerance: timekeeper.DefaultGapTolerance,
	}
}

// Level parses LogLevel, defaulting to info.
func (settings Settings) Level() slog.Level {
	switch strings.ToLower(strings.TrimSpace(settings.LogLevel)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
