package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/Veraticus/pennywise/internal/model"
	"github.com/schollz/progressbar/v3"
)

// ImportStats summarizes one statement import.
type ImportStats struct {
	Duration time.Duration
	Total    int
	Added    int
	Skipped  int
	Failed   int
}

// Prompter handles the interactive parts of CLI commands: yes/no
// confirmations, import progress and summaries.
type Prompter struct {
	startTime   time.Time
	writer      io.Writer
	reader      *NonBlockingReader
	progressBar *progressbar.ProgressBar
}

// NewCLIPrompter creates a prompter over reader and writer. Nil means stdin
// and stdout.
func NewCLIPrompter(reader io.Reader, writer io.Writer) *Prompter {
	if reader == nil {
		reader = os.Stdin
	}
	if writer == nil {
		writer = os.Stdout
	}

	return &Prompter{
		reader:    NewNonBlockingReader(reader),
		writer:    writer,
		startTime: time.Now(),
	}
}

// Confirm asks a yes/no question. Anything but y or yes, including end of
// input, is a no.
func (p *Prompter) Confirm(ctx context.Context, question string) (bool, error) {
	if _, err := fmt.Fprint(p.writer, formatPrompt(question+" [y/N]")); err != nil {
		return false, fmt.Errorf("failed to write prompt: %w", err)
	}

	answer, err := p.reader.ReadLine(ctx)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		return false, err
	}

	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// ShowExpense prints one expense in a box.
func (p *Prompter) ShowExpense(title string, e model.NewExpense) {
	content := fmt.Sprintf("Date: %s\n", e.Date) +
		fmt.Sprintf("Description: %s\n", e.Description) +
		fmt.Sprintf("Category: %s\n", e.Category) +
		fmt.Sprintf("Amount: %s\n", FormatAmount(e.Amount)) +
		fmt.Sprintf("Payment Method: %s\n", e.PaymentMethod) +
		fmt.Sprintf("Recurring: %s", model.Expense{Recurring: e.Recurring}.RecurringLabel())

	if _, err := fmt.Fprintln(p.writer, RenderBox(title, content)); err != nil {
		slog.Warn("failed to write expense box", "error", err)
	}
}

// StartProgress shows a progress bar for total items.
func (p *Prompter) StartProgress(total int, description string) {
	p.startTime = time.Now()
	p.progressBar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(p.writer),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[green][bold]"+description+"[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(p.writer); err != nil {
				slog.Warn("failed to write newline after progress bar", "error", err)
			}
		}),
	)
}

// Advance moves the progress bar forward by one.
func (p *Prompter) Advance() {
	if p.progressBar == nil {
		return
	}
	if err := p.progressBar.Add(1); err != nil {
		slog.Warn("failed to update progress bar", "error", err)
	}
}

// ShowImportSummary prints the outcome of an import.
func (p *Prompter) ShowImportSummary(stats ImportStats) {
	if p.progressBar != nil {
		_ = p.progressBar.Finish()
		p.progressBar = nil
	}
	if stats.Duration == 0 {
		stats.Duration = time.Since(p.startTime)
	}

	summary := fmt.Sprintf("  • Statement lines: %d\n", stats.Total) +
		fmt.Sprintf("  • Added: %d\n", stats.Added) +
		fmt.Sprintf("  • Skipped: %d\n", stats.Skipped) +
		fmt.Sprintf("  • Failed: %d\n", stats.Failed) +
		fmt.Sprintf("  • Time taken: %s", stats.Duration.Round(time.Millisecond))

	if _, err := fmt.Fprintln(p.writer, RenderBox("Import Complete", summary)); err != nil {
		slog.Warn("failed to write summary box", "error", err)
	}
}
