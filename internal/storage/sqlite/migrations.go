package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/GustavoCaso/finbot/internal/logger"
)

func createMigrationsTable(ctx context.Context, db *sql.DB) error {
	statement, err := db.PrepareContext(ctx, `
			CREATE TABLE IF NOT EXISTS schema_migrations (
					version INTEGER PRIMARY KEY,
					applied_at INTEGER NOT NULL
			)
	`)
	if err != nil {
		return err
	}
	defer statement.Close()
	_, err = statement.ExecContext(ctx)
	return err
}

// DropTables removes every table, leaving an empty database.
func (s *DB) DropTables(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction for dropping tables: %w", err)
	}

	for _, table := range []string{"transactions", "categories", "snapshot_meta", "schema_migrations"} {
		_, err = tx.ExecContext(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s;", table))
		if err != nil {
			rErr := tx.Rollback()
			if rErr != nil {
				return rErr
			}
			return fmt.Errorf("failed to drop %s: %w", table, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit deletion: %w", err)
	}

	return nil
}

type migration struct {
	name string
	up   func(ctx context.Context, tx *sql.Tx) error
}

func exec(statement string) func(ctx context.Context, tx *sql.Tx) error {
	return func(ctx context.Context, tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, statement)
		return err
	}
}

var migrations = []migration{
	{
		name: "Create transactions table",
		// category_id has no foreign key: transactions may outlive their category
		up: exec(`
			CREATE TABLE IF NOT EXISTS transactions
			(
			 id TEXT PRIMARY KEY,
			 position INTEGER NOT NULL,
			 amount REAL NOT NULL CHECK (amount >= 0),
			 description TEXT NOT NULL,
			 category_id TEXT NOT NULL,
			 date TEXT NOT NULL,
			 type TEXT NOT NULL CHECK (type IN ('income', 'expense')),
			 created_at TEXT NOT NULL
			) STRICT;`),
	},
	{
		name: "Create categories table",
		up: exec(`
			CREATE TABLE IF NOT EXISTS categories
			(
			 id TEXT PRIMARY KEY,
			 position INTEGER NOT NULL,
			 name TEXT NOT NULL,
			 color TEXT NOT NULL,
			 icon TEXT NOT NULL,
			 type TEXT NOT NULL CHECK (type IN ('income', 'expense', 'both'))
			) STRICT;`),
	},
	{
		name: "Create snapshot metadata table",
		up: exec(`
			CREATE TABLE IF NOT EXISTS snapshot_meta
			(
			 id INTEGER PRIMARY KEY CHECK (id = 1),
			 saved_at INTEGER NOT NULL
			) STRICT;`),
	},
	{
		name: "Index transactions by date",
		up:   exec(`CREATE INDEX IF NOT EXISTS transactions_date_idx ON transactions(date);`),
	},
}

func (s *DB) ApplyMigrations(ctx context.Context, logger *logger.Logger) error {
	// Create migrations table if it doesn't exist
	if err := createMigrationsTable(ctx, s.db); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	// Get current schema version
	currentVersion := 0
	row := s.db.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}

	// Apply pending migrations
	for i, migration := range migrations {
		migrationVersion := i + 1
		if migrationVersion <= currentVersion {
			continue
		}

		logger.Info("Applying migration",
			"version", migrationVersion,
			"name", migration.name)

		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin transaction for migration %d: %w",
				migrationVersion, err)
		}

		if err = migration.up(ctx, tx); err != nil {
			rErr := tx.Rollback()
			if rErr != nil {
				return rErr
			}
			return fmt.Errorf("migration %d failed: %w", migrationVersion, err)
		}

		_, err = tx.ExecContext(ctx,
			"INSERT INTO schema_migrations (version, applied_at) VALUES (?, ?)",
			migrationVersion, time.Now().Unix(),
		)
		if err != nil {
			rErr := tx.Rollback()
			if rErr != nil {
				return rErr
			}
			return fmt.Errorf("failed to record migration %d: %w",
				migrationVersion, err)
		}

		if err = tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w",
				migrationVersion, err)
		}

		logger.Info("Migration applied successfully", "version", migrationVersion)
	}

	return nil
}
