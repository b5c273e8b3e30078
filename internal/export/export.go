package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/GustavoCaso/finbot/internal/ledger"
)

const decimalPlaces = 2

// Format selects the export encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// ParseFormat accepts csv or json; empty means csv.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatJSON:
		return FormatJSON, nil
	}
	return "", fmt.Errorf("invalid export format: %q (must be csv or json)", s)
}

// ContentType is the MIME type of the format.
func (f Format) ContentType() string {
	if f == FormatJSON {
		return "application/json"
	}
	return "text/csv"
}

// Write exports transactions in the given format.
func Write(writer io.Writer, format Format, transactions []ledger.Transaction, categories []ledger.Category) error {
	switch format {
	case FormatJSON:
		return JSON(writer, transactions, categories)
	case FormatCSV:
		return CSV(writer, transactions, categories)
	}
	return fmt.Errorf("invalid export format: %q", format)
}

// CSV exports transactions to CSV format
// format: ID,Date,Description,Category,Type,Amount,CreatedAt
func CSV(writer io.Writer, transactions []ledger.Transaction, categories []ledger.Category) error {
	w := csv.NewWriter(writer)
	defer w.Flush()

	// Pre-allocate records slice: header + all transaction records
	records := make([][]string, 0, len(transactions)+1)

	header := []string{"ID", "Date", "Description", "Category", "Type", "Amount", "CreatedAt"}
	records = append(records, header)

	for _, t := range transactions {
		records = append(records, transactionToCSVRecord(t, categories))
	}

	// Write all records at once
	if err := w.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write CSV records: %w", err)
	}

	return nil
}

func transactionToCSVRecord(t ledger.Transaction, categories []ledger.Category) []string {
	return []string{
		t.ID,
		t.Date.String(),
		t.Description,
		categoryName(t.Category, categories),
		string(t.Type),
		strconv.FormatFloat(t.Amount, 'f', decimalPlaces, 64),
		t.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// categoryName resolves id, leaving it empty when the category was deleted.
func categoryName(id string, categories []ledger.Category) string {
	if c, ok := ledger.FindCategory(categories, id); ok {
		return c.Name
	}
	return ""
}

type jsonRecord struct {
	ledger.Transaction
	CategoryName string `json:"categoryName"`
}

// JSON exports transactions as an indented JSON array with the category name
// resolved next to each category ID.
func JSON(writer io.Writer, transactions []ledger.Transaction, categories []ledger.Category) error {
	records := make([]jsonRecord, 0, len(transactions))
	for _, t := range transactions {
		records = append(records, jsonRecord{
			Transaction:  t,
			CategoryName: categoryName(t.Category, categories),
		})
	}

	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(records); err != nil {
		return fmt.Errorf("failed to write JSON export: %w", err)
	}

	return nil
}
