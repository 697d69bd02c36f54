package main

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/Veraticus/pennywise/internal/app"
	"github.com/Veraticus/pennywise/internal/cli"
	"github.com/Veraticus/pennywise/internal/storage"
	"github.com/Veraticus/pennywise/internal/tui/themes"
	"github.com/spf13/cobra"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage expense categories",
		Long:  `List, add and delete the categories expenses are filed under.`,
	}

	cmd.AddCommand(listCategoriesCmd())
	cmd.AddCommand(addCategoryCmd())
	cmd.AddCommand(deleteCategoryCmd())

	return cmd
}

func listCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all categories",
		Long:  `Display all categories alphabetically with the number of expenses in each.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withController(cmd, func(ctx context.Context, _ *app.Controller, store *storage.SQLiteStorage) error {
				categories, err := store.ListCategories(ctx)
				if err != nil {
					return fmt.Errorf("failed to get categories: %w", err)
				}

				out := cmd.OutOrStdout()
				if len(categories) == 0 {
					_, err := fmt.Fprintln(out, cli.InfoStyle.Render("No categories found. Use 'pennywise categories add' to create one."))
					return err
				}

				w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

				fmt.Fprintf(w, "%s\t%s\n", cli.HeaderStyle.Render("Name"), cli.HeaderStyle.Render("Expenses"))
				fmt.Fprintf(w, "%s\t%s\n", strings.Repeat("-", 20), strings.Repeat("-", 8))

				for _, cat := range categories {
					count, err := store.CountExpensesByCategory(ctx, cat.Name)
					if err != nil {
						return fmt.Errorf("failed to count expenses for %q: %w", cat.Name, err)
					}
					fmt.Fprintf(w, "%s %s\t%d\n", themes.GetCategoryIcon(cat.Name), cat.Name, count)
				}

				return w.Flush()
			})
		},
	}
}

func addCategoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Add a new category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withController(cmd, func(ctx context.Context, c *app.Controller, _ *storage.SQLiteStorage) error {
				if err := c.AddCategory(ctx, args[0]); err != nil {
					return err
				}
				_, err := fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Created category %q", strings.TrimSpace(args[0]))))
				return err
			})
		},
	}
}

func deleteCategoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a category",
		Long:  `Delete a category. Categories that still have expenses cannot be deleted.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withController(cmd, func(ctx context.Context, c *app.Controller, _ *storage.SQLiteStorage) error {
				if err := c.DeleteCategory(ctx, args[0]); err != nil {
					return err
				}
				_, err := fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Deleted category %q", strings.TrimSpace(args[0]))))
				return err
			})
		},
	}
}
