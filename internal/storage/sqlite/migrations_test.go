package sqlite

import (
	"context"
	"testing"

	"github.com/GustavoCaso/finbot/internal/config"
	"github.com/GustavoCaso/finbot/internal/logger"
)

func setupTestStorage(t *testing.T) *DB {
	t.Helper()

	stor, err := New(config.DBConfig{Source: ":memory:", MaxOpenConns: 1})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	t.Cleanup(func() {
		if err := stor.Close(); err != nil {
			t.Errorf("Failed to close test database: %v", err)
		}
	})

	testLogger := logger.New(logger.Config{Level: logger.LevelInfo, Output: "discard"})
	if err = stor.ApplyMigrations(context.Background(), testLogger); err != nil {
		t.Fatalf("Failed to apply migrations: %v", err)
	}

	return stor
}

func TestMigrations(t *testing.T) {
	stor := setupTestStorage(t)
	ctx := context.Background()

	for _, table := range []string{"transactions", "categories", "snapshot_meta"} {
		var count int
		err := stor.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&count)
		if err != nil {
			t.Fatalf("Failed to query %s table after migrations: %v", table, err)
		}
	}

	var version int
	if err := stor.db.QueryRowContext(ctx, "SELECT MAX(version) FROM schema_migrations").Scan(&version); err != nil {
		t.Fatalf("Failed to read schema version: %v", err)
	}

	if version != len(migrations) {
		t.Errorf("Expected schema version %d, got %d", len(migrations), version)
	}
}

func TestMigrationsIdempotent(t *testing.T) {
	stor := setupTestStorage(t)

	testLogger := logger.New(logger.Config{Output: "discard"})
	if err := stor.ApplyMigrations(context.Background(), testLogger); err != nil {
		t.Fatalf("Second migration run failed: %v", err)
	}
}

func TestDropTables(t *testing.T) {
	stor := setupTestStorage(t)
	ctx := context.Background()

	if err := stor.DropTables(ctx); err != nil {
		t.Fatalf("DropTables() error = %v", err)
	}

	var count int
	err := stor.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name IN ('transactions', 'categories')").Scan(&count)
	if err != nil {
		t.Fatalf("Failed to inspect schema: %v", err)
	}

	if count != 0 {
		t.Errorf("Expected tables to be dropped, %d remain", count)
	}
}
