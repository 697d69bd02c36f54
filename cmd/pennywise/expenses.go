package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Veraticus/pennywise/internal/app"
	"github.com/Veraticus/pennywise/internal/cli"
	"github.com/Veraticus/pennywise/internal/config"
	"github.com/Veraticus/pennywise/internal/model"
	"github.com/Veraticus/pennywise/internal/storage"
	"github.com/spf13/cobra"
)

func addCmd() *cobra.Command {
	var form app.ExpenseForm

	cmd := &cobra.Command{
		Use:   "add <description> <amount>",
		Short: "Record an expense",
		Long: `Record a single expense. The date defaults to today.

Examples:
  pennywise add "Lunch" 12.50 --category Food
  pennywise add "Rent" 1200 --category Rent --payment "Bank Transfer" --recurring
  pennywise add "Taxi" 18,40 --category Transport --date 2024-03-01`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			form.Description = args[0]
			form.Amount = args[1]

			return withController(cmd, func(ctx context.Context, c *app.Controller, _ *storage.SQLiteStorage) error {
				expense, err := c.AddExpense(ctx, form)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Added expense #%d: %s %s on %s",
					expense.ID, expense.Description, cli.FormatAmount(expense.Amount), expense.Date)))
				return err
			})
		},
	}

	cmd.Flags().StringVarP(&form.Category, "category", "c", "Other", "Expense category")
	cmd.Flags().StringVarP(&form.Date, "date", "d", "", "Date as YYYY-MM-DD (default: today)")
	cmd.Flags().StringVarP(&form.PaymentMethod, "payment", "p", model.PaymentMethods[0], "Payment method")
	cmd.Flags().BoolVarP(&form.Recurring, "recurring", "r", false, "Mark the expense as recurring")

	return cmd
}

func listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List expenses",
		Long:  `List expenses newest first, optionally restricted to today, this week or this month.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tf, err := timeframeFlag(cmd, config.KeyListTimeframe)
			if err != nil {
				return err
			}

			return withController(cmd, func(ctx context.Context, c *app.Controller, _ *storage.SQLiteStorage) error {
				expenses, err := c.List(ctx, tf)
				if err != nil {
					return err
				}
				return cli.RenderExpenses(cmd.OutOrStdout(), expenses)
			})
		},
	}

	cmd.Flags().StringP("timeframe", "t", "", "all, today, week or month (default: ui.list_timeframe)")

	return cmd
}

func deleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid expense id %q: %w", args[0], err)
			}

			return withController(cmd, func(ctx context.Context, c *app.Controller, store *storage.SQLiteStorage) error {
				expense, err := store.GetExpense(ctx, id)
				if err != nil {
					return fmt.Errorf("failed to load expense: %w", err)
				}
				if expense == nil {
					_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo(fmt.Sprintf("No expense with id %d, nothing deleted", id)))
					return err
				}

				if !yes {
					prompter := cli.NewCLIPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
					prompter.ShowExpense("Delete this expense?", model.NewExpense{
						Date:          expense.Date,
						Description:   expense.Description,
						Category:      expense.Category,
						PaymentMethod: expense.PaymentMethod,
						Amount:        expense.Amount,
						Recurring:     expense.Recurring,
					})
					ok, err := prompter.Confirm(ctx, "Delete it")
					if err != nil {
						return err
					}
					if !ok {
						_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo("Nothing deleted"))
						return err
					}
				}

				if err := c.DeleteExpense(ctx, id); err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Deleted expense #%d", id)))
				return err
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Delete without asking")

	return cmd
}
