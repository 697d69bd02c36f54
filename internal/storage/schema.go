package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Veraticus/pennywise/internal/model"
)

// schema is applied on every startup, so each statement must be idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS expenses (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		date TEXT,
		description TEXT,
		category TEXT,
		amount REAL,
		payment_method TEXT,
		recurring INTEGER
	)`,
	`CREATE TABLE IF NOT EXISTS categories (
		name TEXT PRIMARY KEY
	)`,
}

// Initialize creates the tables if needed and seeds the default categories.
// It is safe to call on every startup.
func (s *SQLiteStorage) Initialize(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, query := range schema {
		if _, err := tx.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	seeded := 0
	for _, name := range model.DefaultCategories {
		result, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO categories (name) VALUES (?)`, name)
		if err != nil {
			return fmt.Errorf("failed to seed category %q: %w", name, err)
		}
		if n, err := result.RowsAffected(); err == nil {
			seeded += int(n)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit schema: %w", err)
	}

	slog.Debug("database initialized", "path", s.dbPath, "seeded_categories", seeded)
	return nil
}
