package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/Veraticus/pennywise/internal/app"
	"github.com/Veraticus/pennywise/internal/cli"
	"github.com/Veraticus/pennywise/internal/common"
	"github.com/Veraticus/pennywise/internal/config"
	"github.com/Veraticus/pennywise/internal/model"
	"github.com/Veraticus/pennywise/internal/ofx"
	"github.com/Veraticus/pennywise/internal/pattern"
	"github.com/Veraticus/pennywise/internal/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func importOFXCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import-ofx [files...]",
		Short: "Import expenses from OFX/QFX files",
		Long: `Import expenses from OFX or QFX (Quicken) statements exported from your bank.

Debits become expenses and credits become refunds (negative amounts). Lines
repeated across files are imported once.

Examples:
  # Import single file
  pennywise import-ofx ~/Downloads/checking_jan_2024.qfx

  # Import all QFX files in a directory
  pennywise import-ofx ~/Downloads/*.qfx

  # Preview without saving
  pennywise import-ofx --dry-run ~/Downloads/card.ofx`,
		Args: cobra.MinimumNArgs(1),
		RunE: runImportOFX,
	}

	cmd.Flags().BoolP("dry-run", "d", false, "Preview import without saving")
	cmd.Flags().StringP("category", "c", ofx.DefaultCategory, "Category for imported expenses")

	return cmd
}

func runImportOFX(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	category, _ := cmd.Flags().GetString("category")
	out := cmd.OutOrStdout()

	files, err := expandFiles(args)
	if err != nil {
		return err
	}

	slog.Info("Importing OFX files", "file_count", len(files), "dry_run", dryRun)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := cli.NewInterruptHandler(out).HandleInterrupts(ctx, true)
	defer stop()

	entries, skipped := parseFiles(ctx, files)
	if len(entries) == 0 {
		return common.NewUserError("No transactions found to import", ofx.ErrNoTransactions)
	}
	for i := range entries {
		entries[i].Expense.Category = category
	}

	matcher, err := importRules()
	if err != nil {
		return err
	}
	expenses := ofx.Expenses(entries)
	if n := matcher.Categorize(expenses); n > 0 {
		slog.Info("Categorized expenses by import rules", "count", n)
	}

	prompter := cli.NewCLIPrompter(cmd.InOrStdin(), out)

	if dryRun {
		for i, e := range expenses {
			prompter.ShowExpense(entries[i].Account, e)
		}
		_, err := fmt.Fprintln(out, cli.FormatInfo(fmt.Sprintf("Dry run: %d expense(s) would be imported", len(expenses))))
		return err
	}

	return withController(cmd, func(ctx context.Context, c *app.Controller, store *storage.SQLiteStorage) error {
		// Imports may name categories that do not exist yet.
		for _, name := range usedCategories(expenses) {
			if err := c.AddCategory(ctx, name); err != nil && !errors.Is(err, common.ErrDuplicateEntry) {
				return err
			}
		}

		stats := cli.ImportStats{Total: len(expenses) + skipped, Skipped: skipped}
		start := time.Now()

		prompter.StartProgress(len(expenses), "Importing expenses")
		for _, e := range expenses {
			if ctx.Err() != nil {
				break
			}
			if _, err := store.AddExpense(ctx, e); err != nil {
				common.LogError(err, "failed to import expense", common.Fields{"description": e.Description, "date": e.Date})
				stats.Failed++
			} else {
				stats.Added++
			}
			prompter.Advance()
		}

		stats.Duration = time.Since(start)
		prompter.ShowImportSummary(stats)
		return nil
	})
}

// importRules loads the import.rules list from the config.
func importRules() (*pattern.Matcher, error) {
	var rules []pattern.Rule
	if err := viper.UnmarshalKey(config.KeyImportRules, &rules); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", config.KeyImportRules, err)
	}
	return pattern.NewMatcher(rules)
}

func usedCategories(expenses []model.NewExpense) []string {
	seen := make(map[string]bool)
	var names []string
	for _, e := range expenses {
		if !seen[e.Category] {
			seen[e.Category] = true
			names = append(names, e.Category)
		}
	}
	return names
}

// expandFiles expands globs and keeps plain paths that exist.
func expandFiles(patterns []string) ([]string, error) {
	var files []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			if _, err := os.Stat(pattern); err == nil {
				files = append(files, pattern)
			} else {
				slog.Warn("No files found matching pattern", "pattern", pattern)
			}
			continue
		}
		files = append(files, matches...)
	}

	if len(files) == 0 {
		return nil, common.NewUserError("No files found to import", common.ErrNotFound)
	}
	return files, nil
}

// parseFiles parses every file, dropping lines whose account and FITID were
// already seen. It returns the unique entries and how many were dropped.
func parseFiles(ctx context.Context, files []string) ([]ofx.Entry, int) {
	parser := ofx.NewParser()
	seen := make(map[string]bool)

	var entries []ofx.Entry
	skipped := 0

	for _, path := range files {
		if ctx.Err() != nil {
			break
		}

		f, err := os.Open(path) // #nosec G304
		if err != nil {
			slog.Error("Failed to open file", "file", path, "error", err)
			continue
		}

		parsed, err := parser.ParseFile(ctx, f)
		_ = f.Close()
		if err != nil {
			slog.Error("Failed to parse OFX file", "file", path, "error", err)
			continue
		}

		added := 0
		for _, entry := range parsed {
			key := entry.Account + "/" + entry.FITID
			if entry.FITID != "" && seen[key] {
				skipped++
				continue
			}
			seen[key] = true
			entries = append(entries, entry)
			added++
		}

		slog.Info("Processed file",
			"file", filepath.Base(path),
			"transactions_found", len(parsed),
			"added", added,
			"duplicates", len(parsed)-added)
	}

	return entries, skipped
}
