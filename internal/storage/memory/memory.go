// Package memory keeps the encoded snapshot in process memory. It backs
// tests and throwaway sessions.
package memory

import (
	"context"
	"sync"

	"github.com/GustavoCaso/finbot/internal/storage"
)

type Storage struct {
	mu    sync.Mutex
	data  []byte
	saves int
}

func New() *Storage {
	return &Storage{}
}

func (s *Storage) Load(_ context.Context) (storage.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		return storage.Snapshot{}, &storage.NotFoundError{}
	}

	return storage.Decode(s.data)
}

func (s *Storage) Save(_ context.Context, snapshot storage.Snapshot) error {
	data, err := storage.Encode(snapshot)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = data
	s.saves++
	return nil
}

// SetRaw stores data verbatim, bypassing encoding.
func (s *Storage) SetRaw(data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = data
}

// Saves reports how many times Save succeeded.
func (s *Storage) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.saves
}

func (s *Storage) Close() error {
	return nil
}
