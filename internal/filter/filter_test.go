package filter

import (
	"encoding/json"
	"net/url"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	f := Default()

	if f.Type != TypeAll {
		t.Errorf("expected type %q, got %q", TypeAll, f.Type)
	}

	if f.TimeRange != RangeMonth {
		t.Errorf("expected time range %q, got %q", RangeMonth, f.TimeRange)
	}

	if f.Category != "" || f.Search != "" {
		t.Errorf("expected empty category and search, got %q and %q", f.Category, f.Search)
	}
}

func TestPatchUnmarshalJSON(t *testing.T) {
	base := Filter{Type: TypeIncome, Category: "5", TimeRange: RangeYear, Search: "rent"}

	tests := []struct {
		name     string
		body     string
		expected Filter
	}{
		{
			name:     "null category clears it",
			body:     `{"category": null}`,
			expected: Filter{Type: TypeIncome, TimeRange: RangeYear, Search: "rent"},
		},
		{
			name:     "null search clears it",
			body:     `{"search":null}`,
			expected: Filter{Type: TypeIncome, Category: "5", TimeRange: RangeYear},
		},
		{
			name:     "absent keys are left alone",
			body:     `{"timeRange": "week"}`,
			expected: Filter{Type: TypeIncome, Category: "5", TimeRange: RangeWeek, Search: "rent"},
		},
		{
			name:     "null type is ignored",
			body:     `{"type": null, "category": "2"}`,
			expected: Filter{Type: TypeIncome, Category: "2", TimeRange: RangeYear, Search: "rent"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Patch
			if err := json.Unmarshal([]byte(tt.body), &p); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got := base.Apply(p); got != tt.expected {
				t.Errorf("expected %+v, got %+v", tt.expected, got)
			}
		})
	}

	for _, body := range []string{`["category"]`, `{"currency": "EUR"}`} {
		var p Patch
		if err := json.Unmarshal([]byte(body), &p); err == nil {
			t.Errorf("expected an error for %s", body)
		}
	}
}

func TestApply(t *testing.T) {
	income := TypeIncome
	category := "4"
	week := RangeWeek
	search := "rent"
	empty := ""

	tests := []struct {
		name     string
		base     Filter
		patch    Patch
		expected Filter
	}{
		{
			name:     "empty patch keeps filter",
			base:     Default(),
			patch:    Patch{},
			expected: Default(),
		},
		{
			name:  "patch every field",
			base:  Default(),
			patch: Patch{Type: &income, Category: &category, TimeRange: &week, Search: &search},
			expected: Filter{
				Type:      TypeIncome,
				Category:  "4",
				TimeRange: RangeWeek,
				Search:    "rent",
			},
		},
		{
			name:  "clear category",
			base:  Filter{Type: TypeAll, Category: "4", TimeRange: RangeAll},
			patch: Patch{Category: &empty},
			expected: Filter{
				Type:      TypeAll,
				TimeRange: RangeAll,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.base.Apply(tt.patch)
			if got != tt.expected {
				t.Errorf("expected %+v, got %+v", tt.expected, got)
			}
		})
	}
}

func TestApplyDoesNotMutate(t *testing.T) {
	base := Default()
	search := "food"

	_ = base.Apply(Patch{Search: &search})

	if base.Search != "" {
		t.Errorf("Apply mutated the receiver: %+v", base)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		filter  Filter
		wantErr bool
	}{
		{"default", Default(), false},
		{"pass through", PassThrough(), false},
		{"bad type", Filter{Type: "transfer", TimeRange: RangeAll}, true},
		{"bad range", Filter{Type: TypeAll, TimeRange: "decade"}, true},
		{"zero value", Filter{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.filter.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCutoff(t *testing.T) {
	now := time.Date(2025, time.March, 31, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		r        TimeRange
		expected time.Time
		ok       bool
	}{
		{"week", RangeWeek, time.Date(2025, time.March, 24, 15, 0, 0, 0, time.UTC), true},
		{"month clamps", RangeMonth, time.Date(2025, time.February, 28, 15, 0, 0, 0, time.UTC), true},
		{"year", RangeYear, time.Date(2024, time.March, 31, 15, 0, 0, 0, time.UTC), true},
		{"all", RangeAll, time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.r.Cutoff(now)
			if ok != tt.ok {
				t.Fatalf("Cutoff() ok = %v, want %v", ok, tt.ok)
			}
			if !got.Equal(tt.expected) {
				t.Errorf("Cutoff() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestNext(t *testing.T) {
	r := RangeWeek
	seen := map[TimeRange]bool{}
	for range 4 {
		seen[r] = true
		r = r.Next()
	}
	if r != RangeWeek || len(seen) != 4 {
		t.Errorf("time range cycle broken: ended at %q after visiting %d ranges", r, len(seen))
	}

	ty := TypeAll
	for range 3 {
		ty = ty.Next()
	}
	if ty != TypeAll {
		t.Errorf("type cycle broken: ended at %q", ty)
	}
}

func TestParsePatch(t *testing.T) {
	tests := []struct {
		name    string
		params  url.Values
		check   func(t *testing.T, p Patch)
		wantErr bool
	}{
		{
			name:   "empty params",
			params: url.Values{},
			check: func(t *testing.T, p Patch) {
				if p.Type != nil || p.Category != nil || p.TimeRange != nil || p.Search != nil {
					t.Errorf("expected empty patch, got %+v", p)
				}
			},
		},
		{
			name: "all params",
			params: url.Values{
				"type":     {"Expense"},
				"category": {"5"},
				"range":    {"year"},
				"search":   {"rent"},
			},
			check: func(t *testing.T, p Patch) {
				if p.Type == nil || *p.Type != TypeExpense {
					t.Errorf("expected type expense, got %v", p.Type)
				}
				if p.Category == nil || *p.Category != "5" {
					t.Errorf("expected category 5, got %v", p.Category)
				}
				if p.TimeRange == nil || *p.TimeRange != RangeYear {
					t.Errorf("expected range year, got %v", p.TimeRange)
				}
				if p.Search == nil || *p.Search != "rent" {
					t.Errorf("expected search rent, got %v", p.Search)
				}
			},
		},
		{
			name:   "timeRange alias",
			params: url.Values{"timeRange": {"week"}},
			check: func(t *testing.T, p Patch) {
				if p.TimeRange == nil || *p.TimeRange != RangeWeek {
					t.Errorf("expected range week, got %v", p.TimeRange)
				}
			},
		},
		{
			name:   "empty category clears",
			params: url.Values{"category": {""}},
			check: func(t *testing.T, p Patch) {
				if p.Category == nil || *p.Category != "" {
					t.Errorf("expected empty category pointer, got %v", p.Category)
				}
			},
		},
		{
			name:    "invalid type",
			params:  url.Values{"type": {"transfer"}},
			wantErr: true,
		},
		{
			name:    "invalid range",
			params:  url.Values{"range": {"decade"}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ParsePatch(tt.params)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePatch() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.check != nil {
				tt.check(t, p)
			}
		})
	}
}
