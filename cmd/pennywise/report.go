package main

import (
	"context"
	"fmt"

	"github.com/Veraticus/pennywise/internal/app"
	"github.com/Veraticus/pennywise/internal/chart"
	"github.com/Veraticus/pennywise/internal/cli"
	"github.com/Veraticus/pennywise/internal/config"
	"github.com/Veraticus/pennywise/internal/model"
	"github.com/Veraticus/pennywise/internal/storage"
	"github.com/spf13/cobra"
)

func reportCmd() *cobra.Command {
	var width int

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarize expenses by category",
		Long: `Print the total, count and average of the expenses in a timeframe and a
chart of how they split across categories.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tf, err := timeframeFlag(cmd, config.KeyReportTimeframe)
			if err != nil {
				return err
			}

			return withController(cmd, func(ctx context.Context, c *app.Controller, _ *storage.SQLiteStorage) error {
				snap, err := c.Snapshot(ctx, model.TimeframeAll, tf)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if _, err := fmt.Fprintln(out, cli.FormatTitle("Expense Report")); err != nil {
					return err
				}
				if err := cli.RenderSummary(out, snap.Report); err != nil {
					return err
				}
				_, err = fmt.Fprintf(out, "\n%s\n", chart.NewPie(snap.Report.ByCategory, width).Render())
				return err
			})
		},
	}

	cmd.Flags().StringP("timeframe", "t", "", "all, today, week or month (default: ui.report_timeframe)")
	cmd.Flags().IntVar(&width, "width", 60, "Chart width in columns")

	return cmd
}
