// Package postgres stores snapshots as JSONB documents keyed by name.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/GustavoCaso/finbot/internal/storage"
)

const pingTimeout = 5 * time.Second

const schema = `
	CREATE TABLE IF NOT EXISTS snapshots (
		name TEXT PRIMARY KEY,
		data JSONB NOT NULL,
		saved_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);`

type Storage struct {
	db   *sql.DB
	name string
}

// New opens the database at dsn and creates the snapshots table if needed.
func New(ctx context.Context, dsn, name string) (*Storage, error) {
	config, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	db := stdlib.OpenDB(*config)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err = db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err = db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create snapshots table: %w", err)
	}

	return &Storage{db: db, name: name}, nil
}

func (s *Storage) Load(ctx context.Context) (storage.Snapshot, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, "SELECT data FROM snapshots WHERE name = $1", s.name).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Snapshot{}, &storage.NotFoundError{}
		}
		return storage.Snapshot{}, err
	}

	return storage.Decode(data)
}

func (s *Storage) Save(ctx context.Context, snapshot storage.Snapshot) error {
	data, err := storage.Encode(snapshot)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO snapshots (name, data, saved_at) VALUES ($1, $2, now())
		ON CONFLICT (name) DO UPDATE SET data = EXCLUDED.data, saved_at = EXCLUDED.saved_at`,
		s.name, string(data),
	)
	return err
}

func (s *Storage) Close() error {
	return s.db.Close()
}
