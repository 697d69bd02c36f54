package tui

import (
	"context"

	"github.com/Veraticus/pennywise/internal/app"
	"github.com/Veraticus/pennywise/internal/model"
	"github.com/Veraticus/pennywise/internal/tui/themes"
)

// Controller is the part of app.Controller the TUI drives.
type Controller interface {
	AddExpense(ctx context.Context, form app.ExpenseForm) (*model.Expense, error)
	DeleteExpense(ctx context.Context, id int64) error
	AddCategory(ctx context.Context, name string) error
	DeleteCategory(ctx context.Context, name string) error
	Snapshot(ctx context.Context, list, report model.Timeframe) (app.Snapshot, error)
	Export(ctx context.Context, path string) (int, error)
}

// Config holds TUI configuration.
type Config struct {
	Controller      Controller
	Theme           themes.Theme
	ListTimeframe   model.Timeframe
	ReportTimeframe model.Timeframe
	ExportPath      string
	Version         string
	Width           int
	Height          int
	ShowHelp        bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

func defaultConfig() Config {
	return Config{
		Theme:           themes.Default,
		ListTimeframe:   model.TimeframeAll,
		ReportTimeframe: model.TimeframeMonth,
		ExportPath:      "expenses.xlsx",
		Version:         "dev",
		Width:           80,
		Height:          24,
		ShowHelp:        true,
	}
}

// WithController sets the controller every action goes through.
func WithController(c Controller) Option {
	return func(cfg *Config) {
		cfg.Controller = c
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(cfg *Config) {
		cfg.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(cfg *Config) {
		cfg.Width = width
		cfg.Height = height
	}
}

// WithTimeframes sets the initial windows of the list and report tabs.
func WithTimeframes(list, report model.Timeframe) Option {
	return func(cfg *Config) {
		cfg.ListTimeframe = list
		cfg.ReportTimeframe = report
	}
}

// WithExportPath sets the file name the export prompt starts with.
func WithExportPath(path string) Option {
	return func(cfg *Config) {
		cfg.ExportPath = path
	}
}

// WithVersion sets the version shown in the About box.
func WithVersion(version string) Option {
	return func(cfg *Config) {
		cfg.Version = version
	}
}

// WithHelp toggles the key help footer.
func WithHelp(show bool) Option {
	return func(cfg *Config) {
		cfg.ShowHelp = show
	}
}
