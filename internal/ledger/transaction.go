package ledger

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Type is the direction of a transaction.
type Type string

const (
	Income  Type = "income"
	Expense Type = "expense"
)

// Valid reports whether t is income or expense.
func (t Type) Valid() bool {
	return t == Income || t == Expense
}

// ParseType validates a transaction type string.
func ParseType(s string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("invalid transaction type: %q (must be income or expense)", s)
	}
	return t, nil
}

// DateLayout is the wire format of a calendar date.
const DateLayout = "2006-01-02"

// Date is a calendar date stored at UTC midnight.
type Date struct {
	time.Time
}

// NewDate returns the calendar date of the given year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf returns the calendar date t falls on in its own location.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate parses a "2006-01-02" date. A full RFC 3339 timestamp is
// accepted too and truncated to its calendar date.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)

	t, err := time.Parse(DateLayout, s)
	if err == nil {
		return Date{t}, nil
	}

	ts, tsErr := time.Parse(time.RFC3339, s)
	if tsErr == nil {
		return DateOf(ts), nil
	}

	return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
}

// MustParseDate is ParseDate for literals known to be valid.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}

	*d = parsed
	return nil
}

// Transaction is a single dated income or expense entry.
type Transaction struct {
	ID          string    `json:"id"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Date        Date      `json:"date"`
	Type        Type      `json:"type"`
	CreatedAt   time.Time `json:"createdAt"`
}

// TransactionPatch holds a partial transaction update. ID and CreatedAt are
// immutable and therefore absent.
type TransactionPatch struct {
	Amount      *float64 `json:"amount,omitempty"`
	Description *string  `json:"description,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Date        *Date    `json:"date,omitempty"`
	Type        *Type    `json:"type,omitempty"`
}

// Apply merges the set fields of p over t.
func (t Transaction) Apply(p TransactionPatch) Transaction {
	if p.Amount != nil {
		t.Amount = *p.Amount
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Date != nil {
		t.Date = *p.Date
	}
	if p.Type != nil {
		t.Type = *p.Type
	}

	return t
}
