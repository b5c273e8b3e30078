package ledger

import (
	"slices"
	"testing"
	"time"

	"github.com/GustavoCaso/finbot/internal/filter"
)

func scenarioTransactions() []Transaction {
	return []Transaction{
		{ID: "a", Amount: 3500, Description: "Monthly Salary", Category: "1", Date: MustParseDate("2025-01-01"), Type: Income},
		{ID: "b", Amount: 1200, Description: "Rent Payment", Category: "5", Date: MustParseDate("2025-01-05"), Type: Expense},
	}
}

func ids(transactions []Transaction) []string {
	result := make([]string, len(transactions))
	for i, t := range transactions {
		result[i] = t.ID
	}
	return result
}

func TestApplyFilterPassThrough(t *testing.T) {
	now := time.Date(2025, time.February, 1, 12, 0, 0, 0, time.UTC)
	transactions := SampleTransactions()

	got := ApplyFilter(transactions, DefaultCategories(), filter.PassThrough(), now)

	if len(got) != len(transactions) {
		t.Fatalf("expected %d transactions, got %d", len(transactions), len(got))
	}

	expected := []string{"5", "2", "4", "3", "1"}
	if !slices.Equal(ids(got), expected) {
		t.Errorf("expected order %v, got %v", expected, ids(got))
	}
}

func TestApplyFilterScenario(t *testing.T) {
	now := time.Date(2025, time.January, 20, 0, 0, 0, 0, time.UTC)

	got := ApplyFilter(scenarioTransactions(), DefaultCategories(), filter.PassThrough(), now)

	if !slices.Equal(ids(got), []string{"b", "a"}) {
		t.Fatalf("expected [expense@01-05, income@01-01], got %v", ids(got))
	}

	summary := Summarize(got)
	expected := Summary{TotalIncome: 3500, TotalExpense: 1200, Balance: 2300}
	if summary != expected {
		t.Errorf("expected summary %+v, got %+v", expected, summary)
	}
}

func TestApplyFilterDoesNotMutateInput(t *testing.T) {
	now := time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)
	transactions := scenarioTransactions()
	before := ids(transactions)

	_ = ApplyFilter(transactions, DefaultCategories(), filter.PassThrough(), now)

	if !slices.Equal(ids(transactions), before) {
		t.Errorf("input reordered: before %v, after %v", before, ids(transactions))
	}
}

func TestApplyFilterDimensions(t *testing.T) {
	now := time.Date(2025, time.January, 21, 9, 0, 0, 0, time.UTC)
	transactions := append(SampleTransactions(), Transaction{
		ID:          "orphan",
		Amount:      40,
		Description: "Mystery charge",
		Category:    "deleted",
		Date:        MustParseDate("2025-01-18"),
		Type:        Expense,
	})
	categories := DefaultCategories()

	tests := []struct {
		name     string
		filter   filter.Filter
		expected []string
	}{
		{
			name:     "search description",
			filter:   filter.Filter{Type: filter.TypeAll, TimeRange: filter.RangeAll, Search: "rent"},
			expected: []string{"3"},
		},
		{
			name:     "search is case insensitive",
			filter:   filter.Filter{Type: filter.TypeAll, TimeRange: filter.RangeAll, Search: "CONCERT"},
			expected: []string{"5"},
		},
		{
			name:     "search category name",
			filter:   filter.Filter{Type: filter.TypeAll, TimeRange: filter.RangeAll, Search: "housing"},
			expected: []string{"3"},
		},
		{
			name:     "search matches description of dangling category",
			filter:   filter.Filter{Type: filter.TypeAll, TimeRange: filter.RangeAll, Search: "mystery"},
			expected: []string{"orphan"},
		},
		{
			name:     "search does not resolve dangling category",
			filter:   filter.Filter{Type: filter.TypeAll, TimeRange: filter.RangeAll, Search: "deleted"},
			expected: []string{},
		},
		{
			name:     "type income",
			filter:   filter.Filter{Type: filter.TypeIncome, TimeRange: filter.RangeAll},
			expected: []string{"2", "1"},
		},
		{
			name:     "type expense",
			filter:   filter.Filter{Type: filter.TypeExpense, TimeRange: filter.RangeAll},
			expected: []string{"5", "orphan", "4", "3"},
		},
		{
			name:     "category",
			filter:   filter.Filter{Type: filter.TypeAll, TimeRange: filter.RangeAll, Category: "4"},
			expected: []string{"4"},
		},
		{
			name:     "dangling category is still filterable",
			filter:   filter.Filter{Type: filter.TypeAll, TimeRange: filter.RangeAll, Category: "deleted"},
			expected: []string{"orphan"},
		},
		{
			name:     "week window",
			filter:   filter.Filter{Type: filter.TypeAll, TimeRange: filter.RangeWeek},
			expected: []string{"5", "orphan", "2"},
		},
		{
			name:     "month window",
			filter:   filter.Filter{Type: filter.TypeAll, TimeRange: filter.RangeMonth},
			expected: []string{"5", "orphan", "2", "4", "3", "1"},
		},
		{
			name:     "dimensions compose",
			filter:   filter.Filter{Type: filter.TypeExpense, TimeRange: filter.RangeWeek, Search: "c"},
			expected: []string{"5", "orphan"},
		},
		{
			name:     "no match",
			filter:   filter.Filter{Type: filter.TypeIncome, TimeRange: filter.RangeAll, Category: "4"},
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyFilter(transactions, categories, tt.filter, now)
			if !slices.Equal(ids(got), tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, ids(got))
			}
		})
	}
}

func TestApplyFilterCutoffIsExclusive(t *testing.T) {
	now := time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)
	transactions := []Transaction{
		{ID: "edge", Date: MustParseDate("2025-01-08"), Type: Expense},
		{ID: "inside", Date: MustParseDate("2025-01-09"), Type: Expense},
	}

	got := ApplyFilter(transactions, nil, filter.Filter{Type: filter.TypeAll, TimeRange: filter.RangeWeek}, now)

	if !slices.Equal(ids(got), []string{"inside"}) {
		t.Errorf("expected only the transaction after the cutoff, got %v", ids(got))
	}
}

func TestApplyFilterUsesLocalCalendar(t *testing.T) {
	// 23:30 on 14 January in UTC-5 is already 15 January in UTC.
	now := time.Date(2025, time.January, 14, 23, 30, 0, 0, time.FixedZone("UTC-5", -5*60*60))
	transactions := []Transaction{
		{ID: "edge", Date: MustParseDate("2025-01-08"), Type: Expense},
	}

	got := ApplyFilter(transactions, nil, filter.Filter{Type: filter.TypeAll, TimeRange: filter.RangeWeek}, now)

	if !slices.Equal(ids(got), []string{"edge"}) {
		t.Errorf("expected the 8 January transaction inside the week window, got %v", ids(got))
	}
}

func TestApplyFilterStableOnEqualDates(t *testing.T) {
	now := time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)
	date := MustParseDate("2025-01-10")
	transactions := []Transaction{
		{ID: "first", Date: date, Type: Expense},
		{ID: "newer", Date: MustParseDate("2025-01-11"), Type: Expense},
		{ID: "second", Date: date, Type: Income},
		{ID: "third", Date: date, Type: Expense},
	}

	got := ApplyFilter(transactions, nil, filter.PassThrough(), now)

	expected := []string{"newer", "first", "second", "third"}
	if !slices.Equal(ids(got), expected) {
		t.Errorf("expected %v, got %v", expected, ids(got))
	}
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name         string
		transactions []Transaction
		expected     Summary
	}{
		{
			name:         "empty",
			transactions: nil,
			expected:     Summary{},
		},
		{
			name:         "sample",
			transactions: SampleTransactions(),
			expected:     Summary{TotalIncome: 4300, TotalExpense: 1435, Balance: 2865},
		},
		{
			name: "negative balance",
			transactions: []Transaction{
				{Amount: 10, Type: Income},
				{Amount: 25.5, Type: Expense},
			},
			expected: Summary{TotalIncome: 10, TotalExpense: 25.5, Balance: -15.5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Summarize(tt.transactions)
			if got != tt.expected {
				t.Errorf("expected %+v, got %+v", tt.expected, got)
			}
			if got.Balance != got.TotalIncome-got.TotalExpense {
				t.Errorf("balance %v does not equal income %v minus expense %v", got.Balance, got.TotalIncome, got.TotalExpense)
			}
		})
	}
}

func TestCategoryBreakdown(t *testing.T) {
	transactions := []Transaction{
		{Amount: 20, Category: "4", Type: Expense},
		{Amount: 1200, Category: "5", Type: Expense},
		{Amount: 3500, Category: "1", Type: Income},
		{Amount: 40, Category: "deleted", Type: Expense},
		{Amount: 65, Category: "4", Type: Expense},
	}

	got := CategoryBreakdown(transactions, DefaultCategories())

	if !slices.Equal(got.Labels, []string{"Food", "Housing"}) {
		t.Errorf("expected labels [Food Housing], got %v", got.Labels)
	}

	if !slices.Equal(got.Amounts, []float64{85, 1200}) {
		t.Errorf("expected amounts [85 1200], got %v", got.Amounts)
	}

	if !slices.Equal(got.Colors, []string{"#EF4444", "#8B5CF6"}) {
		t.Errorf("expected colours [#EF4444 #8B5CF6], got %v", got.Colors)
	}
}

func TestCategoryBreakdownEmpty(t *testing.T) {
	got := CategoryBreakdown(nil, DefaultCategories())

	if got.Labels == nil || got.Amounts == nil || got.Colors == nil {
		t.Fatalf("expected empty non-nil slices, got %+v", got)
	}

	if len(got.Labels) != 0 {
		t.Errorf("expected no labels, got %v", got.Labels)
	}
}

func TestMonthlySeries(t *testing.T) {
	now := time.Date(2025, time.March, 31, 18, 0, 0, 0, time.UTC)
	transactions := []Transaction{
		{Amount: 3500, Date: MustParseDate("2025-01-01"), Type: Income},
		{Amount: 1200, Date: MustParseDate("2025-01-05"), Type: Expense},
		{Amount: 85, Date: MustParseDate("2025-01-31"), Type: Expense},
		{Amount: 100, Date: MustParseDate("2025-03-31"), Type: Income},
		{Amount: 50, Date: MustParseDate("2024-10-01"), Type: Expense},
		// outside the window
		{Amount: 999, Date: MustParseDate("2024-09-30"), Type: Expense},
		{Amount: 999, Date: MustParseDate("2025-04-01"), Type: Income},
		{Amount: 999, Date: MustParseDate("2024-01-15"), Type: Income},
	}

	got := MonthlySeries(transactions, now)

	expectedLabels := []string{"Oct 2024", "Nov 2024", "Dec 2024", "Jan 2025", "Feb 2025", "Mar 2025"}
	if !slices.Equal(got.Labels, expectedLabels) {
		t.Errorf("expected labels %v, got %v", expectedLabels, got.Labels)
	}

	expectedIncome := []float64{0, 0, 0, 3500, 0, 100}
	if !slices.Equal(got.Income, expectedIncome) {
		t.Errorf("expected income %v, got %v", expectedIncome, got.Income)
	}

	expectedExpense := []float64{50, 0, 0, 1285, 0, 0}
	if !slices.Equal(got.Expense, expectedExpense) {
		t.Errorf("expected expense %v, got %v", expectedExpense, got.Expense)
	}
}

func TestMonthlySeriesAlwaysSixBuckets(t *testing.T) {
	now := time.Date(2026, time.October, 17, 0, 0, 0, 0, time.UTC)

	for _, transactions := range [][]Transaction{nil, SampleTransactions()} {
		got := MonthlySeries(transactions, now)

		if len(got.Labels) != MonthlyWindow || len(got.Income) != MonthlyWindow || len(got.Expense) != MonthlyWindow {
			t.Fatalf("expected %d buckets, got %d/%d/%d", MonthlyWindow, len(got.Labels), len(got.Income), len(got.Expense))
		}

		for i := range MonthlyWindow {
			if got.Income[i] != 0 || got.Expense[i] != 0 {
				t.Errorf("expected zero bucket %d, got income %v expense %v", i, got.Income[i], got.Expense[i])
			}
		}
	}
}
