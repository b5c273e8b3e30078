package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/GustavoCaso/finbot/internal/ledger"
	"github.com/GustavoCaso/finbot/internal/storage"
)

func TestLoadEmpty(t *testing.T) {
	stor := setupTestStorage(t)

	_, err := stor.Load(context.Background())
	if !errors.Is(err, &storage.NotFoundError{}) {
		t.Fatalf("Expected NotFoundError, got %v", err)
	}
}

func TestSaveLoad(t *testing.T) {
	stor := setupTestStorage(t)
	ctx := context.Background()

	snapshot := storage.SnapshotOf(ledger.NewState())
	if err := stor.Save(ctx, snapshot); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := stor.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(loaded.Transactions) != len(snapshot.Transactions) {
		t.Fatalf("Expected %d transactions, got %d", len(snapshot.Transactions), len(loaded.Transactions))
	}

	for i, want := range snapshot.Transactions {
		got := loaded.Transactions[i]
		if got.ID != want.ID || got.Amount != want.Amount || !got.Date.Equal(want.Date.Time) ||
			got.Type != want.Type || got.Category != want.Category || !got.CreatedAt.Equal(want.CreatedAt) {
			t.Errorf("transaction %d: expected %+v, got %+v", i, want, got)
		}
	}

	for i, want := range snapshot.Categories {
		if loaded.Categories[i] != want {
			t.Errorf("category %d: expected %+v, got %+v", i, want, loaded.Categories[i])
		}
	}
}

func TestSaveReplaces(t *testing.T) {
	stor := setupTestStorage(t)
	ctx := context.Background()

	if err := stor.Save(ctx, storage.SnapshotOf(ledger.NewState())); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	replacement := storage.Snapshot{
		Transactions: []ledger.Transaction{{
			ID:       "abc",
			Amount:   12.5,
			Category: "9",
			Date:     ledger.NewDate(2025, 2, 3),
			Type:     ledger.Expense,
		}},
	}
	if err := stor.Save(ctx, replacement); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := stor.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(loaded.Transactions) != 1 || loaded.Transactions[0].ID != "abc" {
		t.Errorf("Expected only transaction abc, got %+v", loaded.Transactions)
	}

	if len(loaded.Categories) != 0 {
		t.Errorf("Expected no categories, got %d", len(loaded.Categories))
	}
}

func TestLoadCorruptDate(t *testing.T) {
	stor := setupTestStorage(t)
	ctx := context.Background()

	if err := stor.Save(ctx, storage.Snapshot{}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	_, err := stor.db.ExecContext(ctx, `
		INSERT INTO transactions(id, position, amount, description, category_id, date, type, created_at)
		VALUES('x', 0, 1, 'broken', '1', 'someday', 'income', '2025-01-01T00:00:00Z')`)
	if err != nil {
		t.Fatalf("Failed to insert broken row: %v", err)
	}

	_, err = stor.Load(ctx)
	if !errors.Is(err, &storage.CorruptSnapshotError{}) {
		t.Errorf("Expected CorruptSnapshotError, got %v", err)
	}
}
