package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/GustavoCaso/finbot/internal/logger"
	"github.com/GustavoCaso/finbot/internal/storage/memory"
	"github.com/GustavoCaso/finbot/internal/store"
)

// Now is the fixed instant test stores answer queries with. It falls on the
// day of the last sample transaction.
var Now = time.Date(2025, time.January, 20, 12, 0, 0, 0, time.UTC)

// SetupTestStore returns a store seeded with the defaults, backed by memory
// and pinned to Now.
func SetupTestStore(t *testing.T, logger *logger.Logger) (*store.Store, *memory.Storage) {
	t.Helper()

	stor := memory.New()
	s, err := store.Open(context.Background(), stor, logger, store.WithClock(func() time.Time { return Now }))
	if err != nil {
		t.Fatalf("Failed to open test store: %v", err)
	}

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("Failed to close test store: %v", err)
		}
	})

	return s, stor
}
