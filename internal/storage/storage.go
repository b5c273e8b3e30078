package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/GustavoCaso/finbot/internal/ledger"
)

type NotFoundError struct{}

func (e *NotFoundError) Error() string {
	return "snapshot not found"
}

func (e *NotFoundError) Is(target error) bool {
	_, ok := target.(*NotFoundError)
	return ok
}

// CorruptSnapshotError reports a persisted snapshot that cannot be decoded.
type CorruptSnapshotError struct {
	Err error
}

func (e *CorruptSnapshotError) Error() string {
	return fmt.Sprintf("corrupt snapshot: %v", e.Err)
}

func (e *CorruptSnapshotError) Unwrap() error {
	return e.Err
}

func (e *CorruptSnapshotError) Is(target error) bool {
	_, ok := target.(*CorruptSnapshotError)
	return ok
}

// Snapshot is the persisted part of the ledger. The filter is session state
// and never stored.
type Snapshot struct {
	Transactions []ledger.Transaction `json:"transactions"`
	Categories   []ledger.Category    `json:"categories"`
}

// SnapshotOf extracts the persisted collections of a state.
func SnapshotOf(state ledger.State) Snapshot {
	return Snapshot{
		Transactions: state.Transactions,
		Categories:   state.Categories,
	}
}

// Encode serializes the snapshot as a JSON document.
func Encode(snapshot Snapshot) ([]byte, error) {
	if snapshot.Transactions == nil {
		snapshot.Transactions = []ledger.Transaction{}
	}
	if snapshot.Categories == nil {
		snapshot.Categories = []ledger.Category{}
	}

	return json.Marshal(snapshot)
}

// Decode parses a JSON snapshot. Any failure is a *CorruptSnapshotError.
func Decode(data []byte) (Snapshot, error) {
	var snapshot Snapshot

	if err := json.Unmarshal(data, &snapshot); err != nil {
		return Snapshot{}, &CorruptSnapshotError{Err: err}
	}

	if err := snapshot.Validate(); err != nil {
		return Snapshot{}, &CorruptSnapshotError{Err: err}
	}

	return snapshot, nil
}

// Validate checks the invariants a loaded snapshot must hold.
func (s Snapshot) Validate() error {
	seen := make(map[string]bool, len(s.Transactions))
	for _, t := range s.Transactions {
		if t.ID == "" {
			return fmt.Errorf("transaction without id")
		}
		if seen[t.ID] {
			return fmt.Errorf("duplicate transaction id %q", t.ID)
		}
		seen[t.ID] = true

		if t.Amount < 0 {
			return fmt.Errorf("transaction %q has negative amount", t.ID)
		}
		if !t.Type.Valid() {
			return fmt.Errorf("transaction %q has invalid type %q", t.ID, t.Type)
		}
	}

	seenCategories := make(map[string]bool, len(s.Categories))
	for _, c := range s.Categories {
		if c.ID == "" {
			return fmt.Errorf("category without id")
		}
		if seenCategories[c.ID] {
			return fmt.Errorf("duplicate category id %q", c.ID)
		}
		seenCategories[c.ID] = true

		if !c.Type.Valid() {
			return fmt.Errorf("category %q has invalid type %q", c.ID, c.Type)
		}
	}

	return nil
}

type Storage interface {
	// Load returns the last saved snapshot, or *NotFoundError when nothing
	// has been saved yet.
	Load(ctx context.Context) (Snapshot, error)
	// Save replaces the stored snapshot.
	Save(ctx context.Context, snapshot Snapshot) error

	// Resource managment
	Close() error
}
