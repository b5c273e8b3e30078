package filter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/GustavoCaso/finbot/internal/util"
)

// Type narrows transactions by direction.
type Type string

const (
	TypeAll     Type = "all"
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

// TimeRange is a relative window ending now.
type TimeRange string

const (
	RangeWeek  TimeRange = "week"
	RangeMonth TimeRange = "month"
	RangeYear  TimeRange = "year"
	RangeAll   TimeRange = "all"
)

const daysInWeek = 7

// Filter holds the active query parameters of the ledger.
// An empty Category or Search disables that dimension.
type Filter struct {
	Type      Type      `json:"type"`
	Category  string    `json:"category"`
	TimeRange TimeRange `json:"timeRange"`
	Search    string    `json:"search"`
}

// Default returns the filter a fresh session starts with.
func Default() Filter {
	return Filter{
		Type:      TypeAll,
		Category:  "",
		TimeRange: RangeMonth,
		Search:    "",
	}
}

// PassThrough returns a filter that keeps every transaction.
func PassThrough() Filter {
	return Filter{
		Type:      TypeAll,
		TimeRange: RangeAll,
	}
}

// Patch holds a partial filter update.
// All fields are pointers to distinguish "not set" from zero values.
type Patch struct {
	Type      *Type      `json:"type,omitempty"`
	Category  *string    `json:"category,omitempty"`
	TimeRange *TimeRange `json:"timeRange,omitempty"`
	Search    *string    `json:"search,omitempty"`
}

var patchFields = map[string]bool{"type": true, "category": true, "timeRange": true, "search": true}

// UnmarshalJSON treats an explicit null for category or search as a request
// to clear that dimension. Other null fields stay unset. Unknown keys are
// rejected.
func (p *Patch) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	for key := range fields {
		if !patchFields[key] {
			return fmt.Errorf("unknown filter field %q", key)
		}
	}

	type plain Patch
	var decoded plain
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}

	none := ""
	for key, target := range map[string]**string{"category": &decoded.Category, "search": &decoded.Search} {
		if raw, ok := fields[key]; ok && bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			*target = &none
		}
	}

	*p = Patch(decoded)
	return nil
}

// Apply merges the set fields of p over f.
func (f Filter) Apply(p Patch) Filter {
	if p.Type != nil {
		f.Type = *p.Type
	}
	if p.Category != nil {
		f.Category = *p.Category
	}
	if p.TimeRange != nil {
		f.TimeRange = *p.TimeRange
	}
	if p.Search != nil {
		f.Search = *p.Search
	}

	return f
}

// Validate reports unknown enum values.
func (f Filter) Validate() error {
	if !f.Type.Valid() {
		return fmt.Errorf("invalid type: %q (must be all, income or expense)", f.Type)
	}

	if !f.TimeRange.Valid() {
		return fmt.Errorf("invalid time range: %q (must be week, month, year or all)", f.TimeRange)
	}

	return nil
}

// Valid reports whether t is a known type.
func (t Type) Valid() bool {
	switch t {
	case TypeAll, TypeIncome, TypeExpense:
		return true
	}
	return false
}

// Valid reports whether r is a known time range.
func (r TimeRange) Valid() bool {
	switch r {
	case RangeWeek, RangeMonth, RangeYear, RangeAll:
		return true
	}
	return false
}

// Cutoff returns the instant a transaction date must be strictly after to be
// inside the window. The boolean is false for RangeAll.
func (r TimeRange) Cutoff(now time.Time) (time.Time, bool) {
	switch r {
	case RangeWeek:
		return now.AddDate(0, 0, -daysInWeek), true
	case RangeMonth:
		return util.AddMonths(now, -1), true
	case RangeYear:
		return util.AddYears(now, -1), true
	case RangeAll:
		return time.Time{}, false
	}

	return time.Time{}, false
}

// Next cycles through the time ranges, used by interactive views.
func (r TimeRange) Next() TimeRange {
	switch r {
	case RangeWeek:
		return RangeMonth
	case RangeMonth:
		return RangeYear
	case RangeYear:
		return RangeAll
	case RangeAll:
		return RangeWeek
	}
	return RangeMonth
}

// Next cycles through the types, used by interactive views.
func (t Type) Next() Type {
	switch t {
	case TypeAll:
		return TypeIncome
	case TypeIncome:
		return TypeExpense
	case TypeExpense:
		return TypeAll
	}
	return TypeAll
}
