// Package importer loads transactions from CSV or JSON files, including the
// files written by the export package.
package importer

import (
	"errors"
	"fmt"
	"io"

	"github.com/GustavoCaso/finbot/internal/ledger"
	"github.com/GustavoCaso/finbot/internal/store"
)

// Info reports the outcome of an import. A file with any bad row imports
// nothing and Error joins every row error.
type Info struct {
	TotalImports int
	Imported     []ledger.Transaction
	Error        error
}

// Import parses the file and adds its transactions to s in a single commit.
func Import(filename string, reader io.Reader, s *store.Store) Info {
	data, err := ParseFile(filename, reader)
	if err != nil {
		return Info{Error: err}
	}

	mapping, err := DetectMapping(data.Headers)
	if err != nil {
		return Info{Error: err}
	}

	result, err := ApplyMapping(data, mapping, s.State().Categories)
	if err != nil {
		return Info{Error: err}
	}

	if len(result.Errors) > 0 {
		return Info{Error: errors.Join(result.Errors...)}
	}

	imported, err := s.ImportTransactions(result.Transactions)
	if err != nil {
		return Info{Error: fmt.Errorf("unable to import transactions: %w", err)}
	}

	return Info{TotalImports: len(imported), Imported: imported}
}
