package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Veraticus/pennywise/internal/app"
	"github.com/Veraticus/pennywise/internal/cli"
	"github.com/Veraticus/pennywise/internal/config"
	"github.com/Veraticus/pennywise/internal/sheets"
	"github.com/Veraticus/pennywise/internal/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func exportCmd() *cobra.Command {
	var toSheets bool

	cmd := &cobra.Command{
		Use:   "export [path]",
		Short: "Export expenses to Excel, CSV or Google Sheets",
		Long: `Export every expense to a file. A path ending in .xlsx writes an Excel
workbook; any other path writes CSV. The path defaults to export.path.

With --sheets the report for --timeframe is published to Google Sheets
instead. Run 'pennywise auth sheets' first or configure a service account.

Examples:
  pennywise export
  pennywise export ~/Documents/expenses.csv
  pennywise export --sheets --timeframe month`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if toSheets {
				return runSheetsExport(cmd)
			}

			path := viper.GetString(config.KeyExportPath)
			if len(args) == 1 {
				path = args[0]
			}
			path = config.ExpandPath(path)

			return withController(cmd, func(ctx context.Context, c *app.Controller, _ *storage.SQLiteStorage) error {
				n, err := c.Export(ctx, path)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Exported %d expense(s) to %s", n, path)))
				return err
			})
		},
	}

	cmd.Flags().BoolVar(&toSheets, "sheets", false, "Publish the report to Google Sheets")
	cmd.Flags().StringP("timeframe", "t", "", "Report timeframe for --sheets (default: ui.report_timeframe)")

	return cmd
}

func runSheetsExport(cmd *cobra.Command) error {
	tf, err := timeframeFlag(cmd, config.KeyReportTimeframe)
	if err != nil {
		return err
	}

	sheetsConfig, err := config.LoadSheetsConfig()
	if err != nil {
		return fmt.Errorf("google sheets is not configured: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	writer, err := sheets.NewWriter(ctx, *sheetsConfig, slog.Default())
	if err != nil {
		return fmt.Errorf("failed to create sheets writer: %w", err)
	}

	return withController(cmd, func(ctx context.Context, c *app.Controller, _ *storage.SQLiteStorage) error {
		n, err := c.Publish(ctx, tf)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(
			fmt.Sprintf("Published %d expense(s) for %s to Google Sheets", n, tf.Label())))
		return err
	}, app.WithReportWriter(writer))
}
