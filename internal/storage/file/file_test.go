package file

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/GustavoCaso/finbot/internal/ledger"
	"github.com/GustavoCaso/finbot/internal/storage"
)

func TestLoadMissing(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "missing.json"))

	_, err := s.Load(context.Background())
	if !errors.Is(err, &storage.NotFoundError{}) {
		t.Fatalf("Expected NotFoundError, got %v", err)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.json")
	s := New(path)
	ctx := context.Background()

	snapshot := storage.SnapshotOf(ledger.NewState())
	if err := s.Save(ctx, snapshot); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(loaded.Transactions) != len(snapshot.Transactions) {
		t.Errorf("Expected %d transactions, got %d", len(snapshot.Transactions), len(loaded.Transactions))
	}

	if loaded.Categories[3] != snapshot.Categories[3] {
		t.Errorf("Expected %+v, got %+v", snapshot.Categories[3], loaded.Categories[3])
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}

	if len(entries) != 1 {
		t.Errorf("Expected only the snapshot file, found %d entries", len(entries))
	}
}

func TestLoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.json")
	if err := os.WriteFile(path, []byte("not json"), 0600); err != nil {
		t.Fatal(err)
	}

	_, err := New(path).Load(context.Background())
	if !errors.Is(err, &storage.CorruptSnapshotError{}) {
		t.Errorf("Expected CorruptSnapshotError, got %v", err)
	}
}
