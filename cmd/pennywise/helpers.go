package main

import (
	"context"
	"fmt"

	"github.com/Veraticus/pennywise/internal/app"
	"github.com/Veraticus/pennywise/internal/config"
	"github.com/Veraticus/pennywise/internal/model"
	"github.com/Veraticus/pennywise/internal/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// initStorage opens the database with proper path expansion and makes sure
// the schema and default categories exist.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	dbPath := viper.GetString(config.KeyDatabasePath)
	if dbPath == "" {
		dbPath = config.DefaultDatabasePath
	}

	// Expand tilde and environment variables
	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Initialize(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return store, nil
}

// withController runs fn against a controller over a freshly opened store.
func withController(cmd *cobra.Command, fn func(ctx context.Context, c *app.Controller, store *storage.SQLiteStorage) error, opts ...app.Option) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	return fn(ctx, app.New(store, opts...), store)
}

// timeframeFlag reads a --timeframe flag, falling back to the config key.
func timeframeFlag(cmd *cobra.Command, key string) (model.Timeframe, error) {
	value, _ := cmd.Flags().GetString("timeframe")
	if value == "" {
		value = viper.GetString(key)
	}
	return model.ParseTimeframe(value)
}
