package main

import (
	"fmt"
	"os"
	"path/filepath"

	"holdfast/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newTUICommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the workout in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := loadSettings(cmd, opts)

			// The terminal belongs to the UI, so logs go to a file.
			logPath := filepath.Join(os.TempDir(), appName+"-tui.log")
			logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
			if err != nil {
				return fmt.Errorf("open log file: %w", err)
			}
			defer logFile.Close()
			logger := newLogger(logFile, settings.Level())

			current, err := startSession(cmd.Context(), settings, opts.mute, logger)
			if err != nil {
				return err
			}
			defer current.Close()

			keeper := current.keeper
			events := keeper.Subscribe(subscriberBuffer)
			program := tea.NewProgram(
				tui.NewApp(keeper, keeper.Workout(), keeper.Snapshot(), events),
				tea.WithAltScreen(),
				tea.WithContext(cmd.Context()),
			)
			_, err = program.Run()
			return err
		},
	}
}
