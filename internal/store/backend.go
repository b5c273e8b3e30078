package store

import (
	"context"
	"fmt"

	"github.com/GustavoCaso/finbot/internal/config"
	"github.com/GustavoCaso/finbot/internal/logger"
	"github.com/GustavoCaso/finbot/internal/storage"
	"github.com/GustavoCaso/finbot/internal/storage/file"
	"github.com/GustavoCaso/finbot/internal/storage/memory"
	"github.com/GustavoCaso/finbot/internal/storage/postgres"
	"github.com/GustavoCaso/finbot/internal/storage/redis"
	"github.com/GustavoCaso/finbot/internal/storage/sqlite"
)

// NewStorage opens the snapshot backend selected by conf.
func NewStorage(ctx context.Context, conf *config.Config, logger *logger.Logger) (storage.Storage, error) {
	logger.Debug("Opening storage", "backend", string(conf.Storage.Backend))

	switch conf.Storage.Backend {
	case config.BackendSQLite:
		db, err := sqlite.New(conf.DB)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database %s: %w", conf.DB.Source, err)
		}

		if err = db.ApplyMigrations(ctx, logger); err != nil {
			_ = db.Close()
			return nil, err
		}

		return db, nil
	case config.BackendFile:
		return file.New(conf.Storage.File), nil
	case config.BackendRedis:
		return redis.New(ctx, conf.Storage.RedisURL, conf.Storage.Key)
	case config.BackendPostgres:
		return postgres.New(ctx, conf.Storage.PostgresDSN, conf.Storage.Key)
	case config.BackendMemory:
		return memory.New(), nil
	}

	return nil, fmt.Errorf("unsupported storage backend %q", conf.Storage.Backend)
}

// OpenFromConfig opens the configured backend and loads a Store from it.
func OpenFromConfig(ctx context.Context, conf *config.Config, logger *logger.Logger, opts ...Option) (*Store, error) {
	stor, err := NewStorage(ctx, conf, logger)
	if err != nil {
		return nil, err
	}

	s, err := Open(ctx, stor, logger, opts...)
	if err != nil {
		_ = stor.Close()
		return nil, err
	}

	return s, nil
}
