// Package app is the controller between the views and the store. Every
// operation validates its input first, so a rejected form never reaches the
// database.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/pennywise/internal/common"
	"github.com/Veraticus/pennywise/internal/export"
	"github.com/Veraticus/pennywise/internal/model"
	"github.com/Veraticus/pennywise/internal/report"
	"github.com/Veraticus/pennywise/internal/service"
	"github.com/Veraticus/pennywise/internal/storage"
	"github.com/shopspring/decimal"
)

// Validation errors.
var (
	ErrMissingFields = errors.New("missing required fields")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrNoReportSink  = errors.New("no report destination configured")
)

// ErrNothingToExport is returned by Export when the store is empty.
var ErrNothingToExport = export.ErrNothingToExport

// ExpenseForm is the raw text of the add-expense form.
type ExpenseForm struct {
	Description   string
	Category      string
	Amount        string
	Date          string
	PaymentMethod string
	Recurring     bool
}

// Snapshot is the state every view renders from.
type Snapshot struct {
	Expenses   []model.Expense
	Categories []model.Category
	Report     report.Report
}

// Controller coordinates validation, persistence and reporting.
type Controller struct {
	store  service.Storage
	writer service.ReportWriter
}

// Option configures a Controller.
type Option func(*Controller)

// WithReportWriter sets the destination used by Publish.
func WithReportWriter(w service.ReportWriter) Option {
	return func(c *Controller) {
		c.writer = w
	}
}

// New creates a controller over an initialized store.
func New(store service.Storage, opts ...Option) *Controller {
	c := &Controller{store: store}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ParseAmount parses user-entered money. A single decimal comma with at most
// two digits after it is accepted; grouping separators are not.
func ParseAmount(text string) (float64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, ErrMissingFields
	}

	normalized, ok := decimalComma(text)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, text)
	}

	d, err := decimal.NewFromString(normalized)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, text)
	}
	return d.InexactFloat64(), nil
}

func decimalComma(text string) (string, bool) {
	switch strings.Count(text, ",") {
	case 0:
		return text, true
	case 1:
		if strings.Contains(text, ".") {
			return "", false
		}
		if len(text)-strings.Index(text, ",")-1 > 2 {
			return "", false
		}
		return strings.Replace(text, ",", ".", 1), true
	default:
		return "", false
	}
}

// AddExpense validates the form and records the expense.
func (c *Controller) AddExpense(ctx context.Context, form ExpenseForm) (*model.Expense, error) {
	description := strings.TrimSpace(form.Description)
	category := strings.TrimSpace(form.Category)
	if description == "" || category == "" || strings.TrimSpace(form.Amount) == "" {
		return nil, common.NewUserError("Please fill in all fields", ErrMissingFields)
	}

	amount, err := ParseAmount(form.Amount)
	if err != nil {
		return nil, common.NewUserError("Amount must be a number", err)
	}

	expense, err := c.store.AddExpense(ctx, model.NewExpense{
		Date:          strings.TrimSpace(form.Date),
		Description:   description,
		Category:      category,
		PaymentMethod: strings.TrimSpace(form.PaymentMethod),
		Amount:        amount,
		Recurring:     form.Recurring,
	})
	if err != nil {
		if errors.Is(err, storage.ErrInvalidDate) {
			return nil, common.NewUserError("Date must be YYYY-MM-DD", err)
		}
		return nil, c.fault(err, "failed to add expense", common.Fields{"description": description})
	}

	common.LogInfo("expense added", common.Fields{"id": expense.ID, "category": expense.Category})
	return expense, nil
}

// DeleteExpense removes an expense. A missing id is not an error.
func (c *Controller) DeleteExpense(ctx context.Context, id int64) error {
	if err := c.store.DeleteExpense(ctx, id); err != nil {
		return c.fault(err, "failed to delete expense", common.Fields{"id": id})
	}
	return nil
}

// AddCategory creates a category.
func (c *Controller) AddCategory(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return common.NewUserError("Please enter a category name", ErrMissingFields)
	}

	if err := c.store.AddCategory(ctx, name); err != nil {
		if errors.Is(err, common.ErrDuplicateEntry) {
			return common.NewUserError(fmt.Sprintf("Category %q already exists", name), err)
		}
		return c.fault(err, "failed to add category", common.Fields{"name": name})
	}
	return nil
}

// DeleteCategory removes a category that no expense references.
func (c *Controller) DeleteCategory(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return common.NewUserError("Please select a category", ErrMissingFields)
	}

	if err := c.store.DeleteCategory(ctx, name); err != nil {
		if errors.Is(err, common.ErrCategoryInUse) {
			count, countErr := c.store.CountExpensesByCategory(ctx, name)
			if countErr != nil {
				return common.NewUserError(fmt.Sprintf("Cannot delete %q: it is in use", name), err)
			}
			return common.NewUserError(
				fmt.Sprintf("Cannot delete %q: it is used by %d expense(s)", name, count), err)
		}
		return c.fault(err, "failed to delete category", common.Fields{"name": name})
	}
	return nil
}

// List returns the expenses in tf, newest first.
func (c *Controller) List(ctx context.Context, tf model.Timeframe) ([]model.Expense, error) {
	expenses, err := c.store.ListExpenses(ctx, tf)
	if err != nil {
		return nil, c.fault(err, "failed to load expenses", common.Fields{"timeframe": string(tf)})
	}
	return expenses, nil
}

// Snapshot loads the list, the report and the categories in one pass.
func (c *Controller) Snapshot(ctx context.Context, list, reportTF model.Timeframe) (Snapshot, error) {
	expenses, err := c.List(ctx, list)
	if err != nil {
		return Snapshot{}, err
	}

	reportExpenses := expenses
	if reportTF != list {
		reportExpenses, err = c.store.ListExpenses(ctx, reportTF)
		if err != nil {
			return Snapshot{}, c.fault(err, "failed to load report", common.Fields{"timeframe": string(reportTF)})
		}
	}

	categories, err := c.store.ListCategories(ctx)
	if err != nil {
		return Snapshot{}, c.fault(err, "failed to load categories", nil)
	}

	common.LogDebug("snapshot loaded", common.Fields{
		"list":       string(list),
		"report":     string(reportTF),
		"expenses":   len(expenses),
		"categories": len(categories),
	})

	return Snapshot{
		Expenses:   expenses,
		Categories: categories,
		Report:     report.Build(reportTF, reportExpenses),
	}, nil
}

// Export writes every expense to path and returns how many were written.
func (c *Controller) Export(ctx context.Context, path string) (int, error) {
	if strings.TrimSpace(path) == "" {
		return 0, common.NewUserError("Please choose a file name", ErrMissingFields)
	}

	expenses, err := c.store.ListExpenses(ctx, model.TimeframeAll)
	if err != nil {
		return 0, c.fault(err, "failed to load expenses", nil)
	}

	if err := export.ToFile(path, expenses); err != nil {
		if errors.Is(err, export.ErrNothingToExport) {
			return 0, common.NewUserError("No expenses to export", err)
		}
		return 0, c.fault(err, "failed to export expenses", common.Fields{"path": path})
	}
	return len(expenses), nil
}

// Publish sends the report for tf, with its expenses, to the configured writer.
func (c *Controller) Publish(ctx context.Context, tf model.Timeframe) (int, error) {
	if c.writer == nil {
		return 0, common.NewUserError("No report destination configured", ErrNoReportSink)
	}

	expenses, err := c.store.ListExpenses(ctx, tf)
	if err != nil {
		return 0, c.fault(err, "failed to load expenses", common.Fields{"timeframe": string(tf)})
	}
	if len(expenses) == 0 {
		return 0, common.NewUserError("No expenses to export", ErrNothingToExport)
	}

	if err := c.writer.Write(ctx, expenses, report.Build(tf, expenses)); err != nil {
		return 0, c.fault(err, "failed to publish report", common.Fields{"timeframe": string(tf)})
	}
	return len(expenses), nil
}

// fault logs an unexpected storage or I/O failure and wraps it for display.
func (c *Controller) fault(err error, msg string, fields common.Fields) error {
	common.LogError(err, msg, fields)
	return common.NewUserError("Something went wrong: "+msg, err)
}
