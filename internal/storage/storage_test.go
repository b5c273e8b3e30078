package storage

import (
	"errors"
	"strings"
	"testing"

	"github.com/GustavoCaso/finbot/internal/ledger"
)

func TestEncodeDecode(t *testing.T) {
	snapshot := SnapshotOf(ledger.NewState())

	data, err := Encode(snapshot)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	if !strings.HasPrefix(string(data), `{"transactions":[`) {
		t.Errorf("unexpected snapshot shape: %s", data)
	}

	decoded, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if len(decoded.Transactions) != len(snapshot.Transactions) || len(decoded.Categories) != len(snapshot.Categories) {
		t.Errorf("expected %d/%d records, got %d/%d",
			len(snapshot.Transactions), len(snapshot.Categories),
			len(decoded.Transactions), len(decoded.Categories))
	}

	if decoded.Transactions[2] != snapshot.Transactions[2] {
		t.Errorf("expected %+v, got %+v", snapshot.Transactions[2], decoded.Transactions[2])
	}
}

func TestEncodeEmpty(t *testing.T) {
	data, err := Encode(Snapshot{})
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	if string(data) != `{"transactions":[],"categories":[]}` {
		t.Errorf("unexpected empty snapshot: %s", data)
	}
}

func TestDecodeCorrupt(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", "{{{"},
		{"wrong shape", `{"transactions": "nope"}`},
		{"bad date", `{"transactions":[{"id":"1","amount":1,"type":"income","date":"yesterday"}],"categories":[]}`},
		{"duplicate id", `{"transactions":[{"id":"1","amount":1,"type":"income","date":"2025-01-01"},{"id":"1","amount":2,"type":"expense","date":"2025-01-02"}],"categories":[]}`},
		{"negative amount", `{"transactions":[{"id":"1","amount":-1,"type":"income","date":"2025-01-01"}],"categories":[]}`},
		{"bad type", `{"transactions":[{"id":"1","amount":1,"type":"transfer","date":"2025-01-01"}],"categories":[]}`},
		{"bad category type", `{"transactions":[],"categories":[{"id":"1","name":"x","type":"all"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data))

			var corrupt *CorruptSnapshotError
			if !errors.As(err, &corrupt) {
				t.Fatalf("expected CorruptSnapshotError, got %v", err)
			}

			if !errors.Is(err, &CorruptSnapshotError{}) {
				t.Errorf("errors.Is should match any CorruptSnapshotError")
			}
		})
	}
}

func TestNotFoundErrorIs(t *testing.T) {
	var err error = &NotFoundError{}
	if !errors.Is(err, &NotFoundError{}) {
		t.Error("errors.Is should match any NotFoundError")
	}
}
