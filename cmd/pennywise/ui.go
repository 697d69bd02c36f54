package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Veraticus/pennywise/internal/app"
	"github.com/Veraticus/pennywise/internal/config"
	"github.com/Veraticus/pennywise/internal/model"
	"github.com/Veraticus/pennywise/internal/storage"
	"github.com/Veraticus/pennywise/internal/tui"
	"github.com/Veraticus/pennywise/internal/tui/themes"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func uiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive interface",
		Long: `Open the full-screen interface with the Add Expense, View Expenses, Reports
and Categories tabs. Press Esc for the menu and Ctrl+C to quit.`,
		RunE: runUI,
	}
	return cmd
}

func runUI(cmd *cobra.Command, _ []string) error {
	listTF, err := model.ParseTimeframe(viper.GetString(config.KeyListTimeframe))
	if err != nil {
		return fmt.Errorf("invalid %s: %w", config.KeyListTimeframe, err)
	}
	reportTF, err := model.ParseTimeframe(viper.GetString(config.KeyReportTimeframe))
	if err != nil {
		return fmt.Errorf("invalid %s: %w", config.KeyReportTimeframe, err)
	}

	// Logs would draw over the alternate screen, so send them to a file.
	logPath := config.ExpandPath(viper.GetString(config.KeyLogFile))
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600) // #nosec G304
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()
	if err := setupLogging(logFile); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	return withController(cmd, func(ctx context.Context, c *app.Controller, _ *storage.SQLiteStorage) error {
		return tui.Run(ctx,
			tui.WithController(c),
			tui.WithTheme(themes.GetTheme(viper.GetString(config.KeyTheme))),
			tui.WithTimeframes(listTF, reportTF),
			tui.WithExportPath(config.ExpandPath(viper.GetString(config.KeyExportPath))),
			tui.WithVersion(version),
		)
	})
}
