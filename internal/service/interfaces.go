// Package service defines the interfaces for all application services.
package service

import (
	"context"

	"github.com/Veraticus/pennywise/internal/model"
	"github.com/Veraticus/pennywise/internal/report"
)

// Storage defines the contract for our persistence layer.
type Storage interface {
	// Expense operations
	AddExpense(ctx context.Context, expense model.NewExpense) (*model.Expense, error)
	ListExpenses(ctx context.Context, timeframe model.Timeframe) ([]model.Expense, error)
	GetExpense(ctx context.Context, id int64) (*model.Expense, error)
	DeleteExpense(ctx context.Context, id int64) error

	// Category operations
	ListCategories(ctx context.Context) ([]model.Category, error)
	AddCategory(ctx context.Context, name string) error
	DeleteCategory(ctx context.Context, name string) error
	CountExpensesByCategory(ctx context.Context, name string) (int, error)

	// Database management
	Initialize(ctx context.Context) error
	Close() error
}

// ReportWriter publishes a report and its expenses to an external destination.
type ReportWriter interface {
	Write(ctx context.Context, expenses []model.Expense, rep report.Report) error
}
