package app

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/Veraticus/pennywise/internal/common"
	"github.com/Veraticus/pennywise/internal/model"
	"github.com/Veraticus/pennywise/internal/report"
	"github.com/Veraticus/pennywise/internal/service"
	"github.com/Veraticus/pennywise/internal/testutil"
	"github.com/Veraticus/pennywise/internal/testutil/expenses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// spyStorage counts calls that reach the store.
type spyStorage struct {
	service.Storage
	calls int
}

func (s *spyStorage) AddExpense(ctx context.Context, e model.NewExpense) (*model.Expense, error) {
	s.calls++
	return s.Storage.AddExpense(ctx, e)
}

func (s *spyStorage) AddCategory(ctx context.Context, name string) error {
	s.calls++
	return s.Storage.AddCategory(ctx, name)
}

func (s *spyStorage) DeleteCategory(ctx context.Context, name string) error {
	s.calls++
	return s.Storage.DeleteCategory(ctx, name)
}

// failingStorage fails every read.
type failingStorage struct {
	service.Storage
}

var errDiskGone = errors.New("disk gone")

func (failingStorage) ListExpenses(context.Context, model.Timeframe) ([]model.Expense, error) {
	return nil, errDiskGone
}

type recordingWriter struct {
	expenses []model.Expense
	report   report.Report
}

func (w *recordingWriter) Write(_ context.Context, e []model.Expense, r report.Report) error {
	w.expenses = e
	w.report = r
	return nil
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input   string
		wantErr error
		want    float64
	}{
		{input: "12.50", want: 12.5},
		{input: "12,50", want: 12.5},
		{input: "-3", want: -3},
		{input: " 7 ", want: 7},
		{input: "", wantErr: ErrMissingFields},
		{input: "abc", wantErr: ErrInvalidAmount},
		{input: "1.2.3", wantErr: ErrInvalidAmount},
		{input: "1,234", wantErr: ErrInvalidAmount},
		{input: "1,000,000", wantErr: ErrInvalidAmount},
		{input: "1,234.56", wantErr: ErrInvalidAmount},
		{input: "0,5", want: 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAmount(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestAddExpense_ValidationNeverTouchesStore(t *testing.T) {
	tests := []struct {
		name    string
		wantErr error
		form    ExpenseForm
	}{
		{name: "missing description", form: ExpenseForm{Category: "Food", Amount: "1"}, wantErr: ErrMissingFields},
		{name: "missing category", form: ExpenseForm{Description: "x", Amount: "1"}, wantErr: ErrMissingFields},
		{name: "missing amount", form: ExpenseForm{Description: "x", Category: "Food"}, wantErr: ErrMissingFields},
		{name: "blank description", form: ExpenseForm{Description: "   ", Category: "Food", Amount: "1"}, wantErr: ErrMissingFields},
		{name: "non-numeric amount", form: ExpenseForm{Description: "x", Category: "Food", Amount: "ten"}, wantErr: ErrInvalidAmount},
		{name: "grouped amount", form: ExpenseForm{Description: "x", Category: "Food", Amount: "1,234"}, wantErr: ErrInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := testutil.SetupTestDB(t, nil)
			spy := &spyStorage{Storage: db.Storage}
			c := New(spy)

			_, err := c.AddExpense(context.Background(), tt.form)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)

			var userErr *common.UserError
			assert.ErrorAs(t, err, &userErr)
			assert.Zero(t, spy.calls)
			assert.Zero(t, db.MustCount())
		})
	}
}

func TestAddExpense_Stores(t *testing.T) {
	db := testutil.SetupTestDB(t, nil)
	c := New(db.Storage)

	got, err := c.AddExpense(context.Background(), ExpenseForm{
		Description:   " Coffee ",
		Category:      "Food",
		Amount:        "3,75",
		PaymentMethod: "Credit Card",
		Recurring:     true,
	})
	require.NoError(t, err)

	assert.Equal(t, "Coffee", got.Description)
	assert.Equal(t, "2024-03-15", got.Date)
	assert.InDelta(t, 3.75, got.Amount, 1e-9)
	assert.Equal(t, "Credit Card", got.PaymentMethod)
	assert.True(t, got.Recurring)
	assert.Equal(t, 1, db.MustCount())
}

func TestAddExpense_BadDate(t *testing.T) {
	db := testutil.SetupTestDB(t, nil)
	c := New(db.Storage)

	_, err := c.AddExpense(context.Background(), ExpenseForm{
		Description: "Coffee", Category: "Food", Amount: "3", Date: "15/03/2024",
	})
	require.Error(t, err)
	assert.Equal(t, "Date must be YYYY-MM-DD", common.UserMessage(err))
	assert.Zero(t, db.MustCount())
}

func TestCategories(t *testing.T) {
	db := testutil.SetupTestDB(t, func(b expenses.Builder) expenses.Builder {
		return b.WithFixture(expenses.FixtureSingleCategory)
	})
	ctx := context.Background()
	c := New(db.Storage)

	t.Run("empty name", func(t *testing.T) {
		assert.ErrorIs(t, c.AddCategory(ctx, "  "), ErrMissingFields)
		assert.ErrorIs(t, c.DeleteCategory(ctx, ""), ErrMissingFields)
	})

	t.Run("add then duplicate", func(t *testing.T) {
		require.NoError(t, c.AddCategory(ctx, "Travel"))
		err := c.AddCategory(ctx, "Travel")
		assert.ErrorIs(t, err, common.ErrDuplicateEntry)
		assert.Equal(t, `Category "Travel" already exists`, common.UserMessage(err))
	})

	t.Run("delete in use", func(t *testing.T) {
		err := c.DeleteCategory(ctx, "Food")
		assert.ErrorIs(t, err, common.ErrCategoryInUse)
		assert.Equal(t, `Cannot delete "Food": it is used by 2 expense(s)`, common.UserMessage(err))
	})

	t.Run("delete unused", func(t *testing.T) {
		require.NoError(t, c.DeleteCategory(ctx, "Travel"))
		cats, err := db.Storage.ListCategories(ctx)
		require.NoError(t, err)
		assert.NotContains(t, model.CategoryNames(cats), "Travel")
	})
}

func TestSnapshot(t *testing.T) {
	db := testutil.SetupTestDB(t, func(b expenses.Builder) expenses.Builder {
		return b.WithFixture(expenses.FixtureMixedMonth)
	})
	ctx := context.Background()
	c := New(db.Storage)

	snap, err := c.Snapshot(ctx, model.TimeframeAll, model.TimeframeWeek)
	require.NoError(t, err)

	assert.Len(t, snap.Expenses, 5)
	assert.Len(t, snap.Categories, len(model.DefaultCategories))
	assert.Equal(t, model.TimeframeWeek, snap.Report.Timeframe)
	assert.Equal(t, 3, snap.Report.Summary.Count)
	assert.InDelta(t, 122.5, snap.Report.Summary.Total, 1e-9)

	// Mutations are visible in the next snapshot of every view.
	lunch := db.Expenses.MustFind(t, "Lunch")
	require.NoError(t, c.DeleteExpense(ctx, lunch.ID))

	snap, err = c.Snapshot(ctx, model.TimeframeToday, model.TimeframeToday)
	require.NoError(t, err)
	assert.Empty(t, snap.Expenses)
	assert.True(t, snap.Report.Empty())
}

func TestSnapshot_StorageFault(t *testing.T) {
	c := New(failingStorage{})

	_, err := c.Snapshot(context.Background(), model.TimeframeAll, model.TimeframeAll)
	require.Error(t, err)
	assert.ErrorIs(t, err, errDiskGone)
	assert.Equal(t, "Something went wrong: failed to load expenses", common.UserMessage(err))
}

func TestList(t *testing.T) {
	db := testutil.SetupTestDB(t, func(b expenses.Builder) expenses.Builder {
		return b.WithFixture(expenses.FixtureMixedMonth)
	})
	c := New(db.Storage)

	got, err := c.List(context.Background(), model.TimeframeWeek)
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestList_StorageFaultIsLogged(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	var logs bytes.Buffer
	require.NoError(t, common.SetupLogger(&logs, slog.LevelDebug, "json"))

	c := New(failingStorage{})
	_, err := c.List(context.Background(), model.TimeframeMonth)
	require.Error(t, err)
	assert.ErrorIs(t, err, errDiskGone)
	assert.Equal(t, "Something went wrong: failed to load expenses", common.UserMessage(err))

	assert.Contains(t, logs.String(), `"msg":"failed to load expenses"`)
	assert.Contains(t, logs.String(), `"error":"disk gone"`)
	assert.Contains(t, logs.String(), `"timeframe":"month"`)
}

func TestSnapshot_DebugLog(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	var logs bytes.Buffer
	require.NoError(t, common.SetupLogger(&logs, slog.LevelDebug, "json"))

	db := testutil.SetupTestDB(t, nil)
	_, err := New(db.Storage).Snapshot(context.Background(), model.TimeframeAll, model.TimeframeAll)
	require.NoError(t, err)

	assert.Contains(t, logs.String(), `"msg":"snapshot loaded"`)
	assert.Contains(t, logs.String(), `"expenses":0`)
}

func TestExport(t *testing.T) {
	ctx := context.Background()

	t.Run("empty store", func(t *testing.T) {
		db := testutil.SetupTestDB(t, nil)
		n, err := New(db.Storage).Export(ctx, filepath.Join(t.TempDir(), "out.csv"))
		assert.ErrorIs(t, err, ErrNothingToExport)
		assert.Zero(t, n)
	})

	t.Run("writes all expenses", func(t *testing.T) {
		db := testutil.SetupTestDB(t, func(b expenses.Builder) expenses.Builder {
			return b.WithFixture(expenses.FixtureMixedMonth)
		})
		path := filepath.Join(t.TempDir(), "out.xlsx")

		n, err := New(db.Storage).Export(ctx, path)
		require.NoError(t, err)
		assert.Equal(t, 5, n)

		_, err = os.Stat(path)
		assert.NoError(t, err)
	})

	t.Run("empty path", func(t *testing.T) {
		db := testutil.SetupTestDB(t, nil)
		_, err := New(db.Storage).Export(ctx, " ")
		assert.ErrorIs(t, err, ErrMissingFields)
	})
}

func TestPublish(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t, func(b expenses.Builder) expenses.Builder {
		return b.WithFixture(expenses.FixtureMixedMonth)
	})

	_, err := New(db.Storage).Publish(ctx, model.TimeframeAll)
	assert.ErrorIs(t, err, ErrNoReportSink)

	w := &recordingWriter{}
	n, err := New(db.Storage, WithReportWriter(w)).Publish(ctx, model.TimeframeMonth)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Len(t, w.expenses, 4)
	assert.Equal(t, model.TimeframeMonth, w.report.Timeframe)
	assert.Equal(t, "Food", w.report.Shares[len(w.report.Shares)-1].Category)
}
