// Package file stores the ledger snapshot as a JSON document on disk.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/GustavoCaso/finbot/internal/storage"
)

type Storage struct {
	path string
}

func New(path string) *Storage {
	return &Storage{path: path}
}

func (s *Storage) Load(_ context.Context) (storage.Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return storage.Snapshot{}, &storage.NotFoundError{}
		}
		return storage.Snapshot{}, fmt.Errorf("failed to read %s: %w", s.path, err)
	}

	return storage.Decode(data)
}

// Save writes to a temporary file next to the target and renames it into
// place, so readers never observe a partial document.
func (s *Storage) Save(_ context.Context, snapshot storage.Snapshot) error {
	data, err := storage.Encode(snapshot)
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	if err = tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}

	if err = os.Rename(tmp.Name(), s.path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace %s: %w", s.path, err)
	}

	return nil
}

func (s *Storage) Close() error {
	return nil
}
