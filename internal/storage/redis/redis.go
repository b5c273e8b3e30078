// Package redis stores the encoded snapshot under a single Redis key.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/GustavoCaso/finbot/internal/storage"
)

const pingTimeout = 5 * time.Second

type Storage struct {
	client *goredis.Client
	key    string
}

// New connects to the server at url and verifies it answers a ping.
func New(ctx context.Context, url, key string) (*Storage, error) {
	opt, err := goredis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	client := goredis.NewClient(opt)

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err = client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &Storage{client: client, key: key}, nil
}

func (s *Storage) Load(ctx context.Context) (storage.Snapshot, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
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

	return s.client.Set(ctx, s.key, data, 0).Err()
}

func (s *Storage) Close() error {
	return s.client.Close()
}
