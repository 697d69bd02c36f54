// Package expenses provides a fluent builder for seeding expenses in tests.
//
// Example usage:
//
//	seeded, err := expenses.NewBuilder(t).
//		WithExpense("2024-03-15", "Coffee", "Food", 3.5).
//		WithFixture(expenses.FixtureMixedMonth).
//		Build(ctx, store)
package expenses

import (
	"context"
	"fmt"
	"testing"

	"github.com/Veraticus/pennywise/internal/model"
	"github.com/Veraticus/pennywise/internal/service"
)

// Builder provides a fluent interface for constructing test expenses.
type Builder interface {
	// WithExpense adds one expense paid in cash.
	WithExpense(date, description, category string, amount float64) Builder

	// WithNewExpense adds a fully specified expense.
	WithNewExpense(e model.NewExpense) Builder

	// WithFixture adds the expenses of a predefined fixture.
	WithFixture(fixture Fixture) Builder

	// Build stores the expenses in insertion order and returns them with IDs.
	Build(ctx context.Context, storage service.Storage) (Expenses, error)
}

// Expenses is a collection of stored test expenses.
type Expenses []model.Expense

// IDs returns the assigned ids in insertion order.
func (e Expenses) IDs() []int64 {
	ids := make([]int64, len(e))
	for i, exp := range e {
		ids[i] = exp.ID
	}
	return ids
}

// MustFind returns the first expense with the given description or fails the test.
func (e Expenses) MustFind(t *testing.T, description string) model.Expense {
	t.Helper()
	for _, exp := range e {
		if exp.Description == description {
			return exp
		}
	}
	t.Fatalf("expense %q not found in test data", description)
	return model.Expense{}
}

type expenseBuilder struct {
	t        *testing.T
	expenses []model.NewExpense
}

// NewBuilder creates a new expense builder for the given test.
func NewBuilder(t *testing.T) Builder {
	t.Helper()
	return &expenseBuilder{t: t}
}

func (b *expenseBuilder) WithExpense(date, description, category string, amount float64) Builder {
	return b.WithNewExpense(model.NewExpense{
		Date:        date,
		Description: description,
		Category:    category,
		Amount:      amount,
	})
}

func (b *expenseBuilder) WithNewExpense(e model.NewExpense) Builder {
	b.expenses = append(b.expenses, e)
	return b
}

func (b *expenseBuilder) WithFixture(fixture Fixture) Builder {
	b.expenses = append(b.expenses, fixture.Expenses()...)
	return b
}

func (b *expenseBuilder) Build(ctx context.Context, storage service.Storage) (Expenses, error) {
	b.t.Helper()

	result := make(Expenses, 0, len(b.expenses))
	for _, e := range b.expenses {
		stored, err := storage.AddExpense(ctx, e)
		if err != nil {
			return nil, fmt.Errorf("failed to add expense %q: %w", e.Description, err)
		}
		result = append(result, *stored)
	}
	return result, nil
}
