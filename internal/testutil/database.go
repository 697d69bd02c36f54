// Package testutil provides shared helpers for tests that need a real store.
package testutil

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/Veraticus/pennywise/internal/storage"
	"github.com/Veraticus/pennywise/internal/testutil/expenses"
)

// FixedNow is the clock every store built here runs against.
var FixedNow = time.Date(2024, time.March, 15, 12, 0, 0, 0, time.Local)

// TestDB is an initialized store plus the expenses seeded into it.
type TestDB struct {
	Storage  *storage.SQLiteStorage
	t        *testing.T
	Expenses expenses.Expenses
}

// SetupTestDB creates an initialized store in a temp directory. The default
// categories are always present; extra expenses come from the builder.
//
// Example:
//
//	db := testutil.SetupTestDB(t, func(b expenses.Builder) expenses.Builder {
//		return b.WithFixture(expenses.FixtureMixedMonth)
//	})
func SetupTestDB(t *testing.T, configure func(expenses.Builder) expenses.Builder) *TestDB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "expenses.db")
	store, err := storage.NewSQLiteStorage(dbPath, storage.WithClock(func() time.Time { return FixedNow }))
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})

	ctx := context.Background()
	if err := store.Initialize(ctx); err != nil {
		t.Fatalf("failed to initialize test database: %v", err)
	}

	builder := expenses.NewBuilder(t)
	if configure != nil {
		builder = configure(builder)
	}

	seeded, err := builder.Build(ctx, store)
	if err != nil {
		t.Fatalf("failed to seed expenses: %v", err)
	}

	return &TestDB{
		Storage:  store,
		Expenses: seeded,
		t:        t,
	}
}

// MustCount returns the number of stored expenses or fails the test.
func (db *TestDB) MustCount() int {
	db.t.Helper()
	all, err := db.Storage.ListExpenses(context.Background(), "")
	if err != nil {
		db.t.Fatalf("failed to list expenses: %v", err)
	}
	return len(all)
}
