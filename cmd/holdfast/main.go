package main

import (
	"io"
	"log/slog"
	"os"

	"holdfast/internal/storage"
	"holdfast/internal/ui/preferences"

	"github.com/spf13/cobra"
)

const (
	appName = "holdfast"
	appID   = "io.github.holdfast"
)

type options struct {
	logLevel string
	mute     bool
}

func main() {
	if err := newRootCommand(&options{}).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand(opts *options) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          appName,
		Short:        "Interval workout timer",
		Long:         "Holdfast runs a fixed routine of timed holds with rests in between.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := loadSettings(cmd, opts)
			logger := newLogger(os.Stderr, settings.Level())
			return runGUI(cmd.Context(), settings, opts.mute, logger)
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn or error")
	rootCmd.PersistentFlags().BoolVar(&opts.mute, "mute", false, "disable sound cues for this run")

	rootCmd.AddCommand(newTUICommand(opts))
	return rootCmd
}

// loadSettings reads the settings file and applies flag overrides.
func loadSettings(cmd *cobra.Command, opts *options) preferences.Settings {
	settings, err := storage.LoadSettings(appName)
	if cmd.Flags().Changed("log-level") {
		settings.LogLevel = opts.logLevel
	}
	if err != nil {
		newLogger(os.Stderr, settings.Level()).Warn("load settings, using defaults", "error", err)
	}
	return settings
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
