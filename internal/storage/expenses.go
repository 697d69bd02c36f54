package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Veraticus/pennywise/internal/model"
)

const expenseColumns = `id, date, description, category, amount, payment_method, recurring`

// AddExpense records a new expense and returns it with its assigned ID.
// Description and category are not checked here; callers validate form input.
func (s *SQLiteStorage) AddExpense(ctx context.Context, expense model.NewExpense) (*model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	if expense.Date == "" {
		expense.Date = model.FormatDay(s.today())
	}
	if err := validateDate(expense.Date); err != nil {
		return nil, err
	}
	if expense.PaymentMethod == "" {
		expense.PaymentMethod = model.DefaultPaymentMethod
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO expenses (date, description, category, amount, payment_method, recurring)
		VALUES (?, ?, ?, ?, ?, ?)`,
		expense.Date,
		expense.Description,
		expense.Category,
		expense.Amount,
		expense.PaymentMethod,
		boolToInt(expense.Recurring),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert expense: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get expense ID: %w", err)
	}

	slog.Debug("added expense", "id", id, "date", expense.Date, "category", expense.Category, "amount", expense.Amount)

	return &model.Expense{
		ID:            id,
		Date:          expense.Date,
		Description:   expense.Description,
		Category:      expense.Category,
		Amount:        expense.Amount,
		PaymentMethod: expense.PaymentMethod,
		Recurring:     expense.Recurring,
	}, nil
}

// ListExpenses returns the expenses within timeframe, newest date first.
// Expenses on the same day have no guaranteed relative order.
func (s *SQLiteStorage) ListExpenses(ctx context.Context, timeframe model.Timeframe) ([]model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `SELECT ` + expenseColumns + ` FROM expenses`
	var args []any

	if bound, exact, ok := timeframe.Bound(s.today()); ok {
		if exact {
			query += ` WHERE date = ?`
		} else {
			query += ` WHERE date >= ?`
		}
		args = append(args, bound)
	}
	query += ` ORDER BY date DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var expenses []model.Expense
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, *expense)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expenses: %w", err)
	}

	slog.Debug("retrieved expenses", "timeframe", string(timeframe), "count", len(expenses))
	return expenses, nil
}

// GetExpense returns the expense with id, or nil if there is none.
func (s *SQLiteStorage) GetExpense(ctx context.Context, id int64) (*model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `SELECT `+expenseColumns+` FROM expenses WHERE id = ?`, id)
	expense, err := scanExpense(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return expense, nil
}

// DeleteExpense removes the expense with id. A missing id is not an error.
func (s *SQLiteStorage) DeleteExpense(ctx context.Context, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete expense %d: %w", id, err)
	}

	if n, err := result.RowsAffected(); err == nil && n == 0 {
		slog.Debug("delete of missing expense ignored", "id", id)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanExpense builds an Expense from one row. NULL columns read as zero values.
func scanExpense(row rowScanner) (*model.Expense, error) {
	var (
		expense                                    model.Expense
		date, description, category, paymentMethod sql.NullString
		amount                                     sql.NullFloat64
		recurring                                  sql.NullInt64
	)

	err := row.Scan(&expense.ID, &date, &description, &category, &amount, &paymentMethod, &recurring)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan expense: %w", err)
	}

	expense.Date = date.String
	expense.Description = description.String
	expense.Category = category.String
	expense.Amount = amount.Float64
	expense.PaymentMethod = paymentMethod.String
	expense.Recurring = recurring.Int64 != 0

	return &expense, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
