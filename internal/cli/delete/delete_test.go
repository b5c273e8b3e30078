package delete

import (
	"bytes"
	"errors"
	"flag"
	"testing"

	"github.com/GustavoCaso/finbot/internal/cli"
	"github.com/GustavoCaso/finbot/internal/ledger"
	"github.com/GustavoCaso/finbot/internal/store"
	"github.com/GustavoCaso/finbot/internal/testutil"
)

func runDelete(t *testing.T, s *store.Store, args ...string) error {
	t.Helper()

	cmd := NewCommand()
	fs := flag.NewFlagSet("delete", flag.ContinueOnError)
	cmd.SetFlags(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatal(err)
	}

	return cmd.Run(cli.Env{Store: s, Logger: testutil.TestLogger(t), Out: &bytes.Buffer{}})
}

func TestDeleteTransaction(t *testing.T) {
	s, stor := testutil.SetupTestStore(t, testutil.TestLogger(t))

	if err := runDelete(t, s, "-id", "3"); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if _, ok := s.State().Transaction("3"); ok {
		t.Error("Transaction 3 still present")
	}

	if stor.Saves() != 1 {
		t.Errorf("Expected one save, got %d", stor.Saves())
	}

	err := runDelete(t, s, "-id", "3")
	if !errors.Is(err, &ledger.NotFoundError{}) {
		t.Errorf("Second delete error = %v, want NotFoundError", err)
	}
}

func TestDeleteAll(t *testing.T) {
	s, _ := testutil.SetupTestStore(t, testutil.TestLogger(t))

	if err := s.DeleteTransaction("1"); err != nil {
		t.Fatal(err)
	}
	if err := s.DeleteCategory("10"); err != nil {
		t.Fatal(err)
	}

	if err := runDelete(t, s, "-all"); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	state := s.State()
	if len(state.Transactions) != len(ledger.SampleTransactions()) {
		t.Errorf("Expected the sample transactions back, got %d", len(state.Transactions))
	}
	if len(state.Categories) != len(ledger.DefaultCategories()) {
		t.Errorf("Expected the default categories back, got %d", len(state.Categories))
	}
}

func TestDeleteFlagErrors(t *testing.T) {
	s, _ := testutil.SetupTestStore(t, testutil.TestLogger(t))

	if err := runDelete(t, s); err == nil {
		t.Error("Expected an error without -id")
	}

	if err := runDelete(t, s, "-id", "1", "-all"); err == nil {
		t.Error("Expected an error when combining -id and -all")
	}
}
