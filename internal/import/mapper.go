package importer

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/GustavoCaso/finbot/internal/ledger"
	"github.com/GustavoCaso/finbot/internal/store"
)

const noColumn = -1

// FieldMapping defines which columns hold the transaction fields.
// Type is optional: without it the sign of the amount decides.
type FieldMapping struct {
	DateColumn        int
	DescriptionColumn int
	AmountColumn      int
	CategoryColumn    int
	TypeColumn        int
}

// columnNames lists the accepted headers per field, most specific first.
var columnNames = struct {
	date, description, amount, category, txType []string
}{
	date:        []string{"date"},
	description: []string{"description"},
	amount:      []string{"amount"},
	category:    []string{"categoryname", "category"},
	txType:      []string{"type"},
}

// DetectMapping finds the columns by header name, ignoring case. The headers
// written by the export package are always recognised.
func DetectMapping(headers []string) (*FieldMapping, error) {
	find := func(names []string) int {
		for _, name := range names {
			for i, header := range headers {
				if strings.EqualFold(strings.TrimSpace(header), name) {
					return i
				}
			}
		}
		return noColumn
	}

	mapping := &FieldMapping{
		DateColumn:        find(columnNames.date),
		DescriptionColumn: find(columnNames.description),
		AmountColumn:      find(columnNames.amount),
		CategoryColumn:    find(columnNames.category),
		TypeColumn:        find(columnNames.txType),
	}

	if err := mapping.Validate(len(headers)); err != nil {
		return nil, err
	}

	return mapping, nil
}

// Validate checks if the field mapping is valid.
func (m *FieldMapping) Validate(headerCount int) error {
	required := []struct {
		name  string
		index int
	}{
		{"date", m.DateColumn},
		{"description", m.DescriptionColumn},
		{"amount", m.AmountColumn},
		{"category", m.CategoryColumn},
	}

	for _, column := range required {
		if column.index < 0 || column.index >= headerCount {
			return fmt.Errorf("missing %s column", column.name)
		}
	}

	if m.TypeColumn >= headerCount {
		return fmt.Errorf("invalid type column index: %d", m.TypeColumn)
	}

	return nil
}

// mappingError represents an error that occurred while mapping a specific row.
type mappingError struct {
	RowIndex int
	Err      error
}

func (e mappingError) Error() string {
	return fmt.Sprintf("row %d: %s", e.RowIndex+1, e.Err)
}

func (e mappingError) Unwrap() error {
	return e.Err
}

// MappingResult contains the results of applying a field mapping.
type MappingResult struct {
	Transactions []store.TransactionInput
	Errors       []error
}

// ApplyMapping turns every row into a transaction input. Rows that fail are
// reported in Errors and left out.
func ApplyMapping(data *ParsedData, mapping *FieldMapping, categories []ledger.Category) (*MappingResult, error) {
	if err := mapping.Validate(len(data.Headers)); err != nil {
		return nil, fmt.Errorf("invalid mapping: %w", err)
	}

	result := &MappingResult{
		Transactions: make([]store.TransactionInput, 0, len(data.Rows)),
	}

	for i, row := range data.Rows {
		input, err := mapRow(row, mapping, categories)
		if err != nil {
			result.Errors = append(result.Errors, mappingError{RowIndex: i, Err: err})
			continue
		}
		result.Transactions = append(result.Transactions, input)
	}

	return result, nil
}

func mapRow(row []string, mapping *FieldMapping, categories []ledger.Category) (store.TransactionInput, error) {
	if len(row) <= max(mapping.DateColumn, mapping.DescriptionColumn, mapping.AmountColumn, mapping.CategoryColumn, mapping.TypeColumn) {
		return store.TransactionInput{}, errors.New("row has too few columns")
	}

	dateStr := row[mapping.DateColumn]
	date, err := parseDate(dateStr)
	if err != nil {
		return store.TransactionInput{}, fmt.Errorf("invalid date %q: %w", dateStr, err)
	}

	amountStr := row[mapping.AmountColumn]
	amount, err := parseAmount(amountStr)
	if err != nil {
		return store.TransactionInput{}, fmt.Errorf("invalid amount %q: %w", amountStr, err)
	}

	txType := ledger.Income
	if amount < 0 {
		txType = ledger.Expense
	}

	if mapping.TypeColumn != noColumn && strings.TrimSpace(row[mapping.TypeColumn]) != "" {
		if txType, err = ledger.ParseType(row[mapping.TypeColumn]); err != nil {
			return store.TransactionInput{}, err
		}
	}

	categoryRef := strings.TrimSpace(row[mapping.CategoryColumn])
	category, ok := matchCategory(categories, categoryRef)
	if !ok {
		return store.TransactionInput{}, fmt.Errorf("%w: %q", store.ErrUnknownCategory, categoryRef)
	}

	return store.TransactionInput{
		Amount:      math.Abs(amount),
		Description: row[mapping.DescriptionColumn],
		Category:    category.ID,
		Date:        date,
		Type:        txType,
	}, nil
}

// matchCategory resolves ref by name first, since exports carry names, and by
// ID second.
func matchCategory(categories []ledger.Category, ref string) (ledger.Category, bool) {
	for _, c := range categories {
		if strings.EqualFold(c.Name, ref) {
			return c, true
		}
	}
	return ledger.FindCategory(categories, ref)
}

// fallbackFormats are tried after ISO dates and RFC 3339 timestamps.
var fallbackFormats = []string{
	"02/01/2006", // DD/MM/YYYY
	"2006/01/02",
}

func parseDate(dateStr string) (ledger.Date, error) {
	if date, err := ledger.ParseDate(dateStr); err == nil {
		return date, nil
	}

	for _, layout := range fallbackFormats {
		if parsed, err := time.Parse(layout, strings.TrimSpace(dateStr)); err == nil {
			return ledger.DateOf(parsed), nil
		}
	}

	return ledger.Date{}, errors.New("unable to parse date")
}

// parseAmount accepts an optional sign, thousands separators and a currency
// symbol, e.g. "-$1,200.50".
func parseAmount(amountStr string) (float64, error) {
	cleaned := strings.TrimSpace(amountStr)
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.ReplaceAll(cleaned, "$", "")

	amount, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, errors.New("amount is not a number")
	}

	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, errors.New("amount is not finite")
	}

	return amount, nil
}
