package ledger

import (
	"slices"
	"strings"
	"time"

	"github.com/GustavoCaso/finbot/internal/filter"
	"github.com/GustavoCaso/finbot/internal/util"
)

// MonthlyWindow is the number of calendar months covered by MonthlySeries.
const MonthlyWindow = 6

// MonthLabelLayout formats the label of a monthly bucket, e.g. "Jan 2025".
const MonthLabelLayout = "Jan 2006"

// Summary holds the aggregate totals of a transaction set.
type Summary struct {
	TotalIncome  float64 `json:"totalIncome"`
	TotalExpense float64 `json:"totalExpense"`
	Balance      float64 `json:"balance"`
}

// CategoryTotals holds expense totals per category as parallel slices.
type CategoryTotals struct {
	Labels  []string  `json:"labels"`
	Amounts []float64 `json:"amounts"`
	Colors  []string  `json:"colors"`
}

// MonthlyTotals holds income and expense totals per calendar month as
// parallel slices, oldest month first.
type MonthlyTotals struct {
	Labels  []string  `json:"labels"`
	Income  []float64 `json:"income"`
	Expense []float64 `json:"expense"`
}

// ApplyFilter returns the transactions matching f, most recent date first.
// Transactions sharing a date keep their input order. The input slice is
// never modified.
func ApplyFilter(transactions []Transaction, categories []Category, f filter.Filter, now time.Time) []Transaction {
	cutoff, hasCutoff := f.TimeRange.Cutoff(now)
	if hasCutoff {
		cutoff = util.WallClock(cutoff)
	}

	search := strings.ToLower(f.Search)

	result := make([]Transaction, 0, len(transactions))
	for _, t := range transactions {
		if hasCutoff && !t.Date.After(cutoff) {
			continue
		}

		if f.Type != filter.TypeAll && string(t.Type) != string(f.Type) {
			continue
		}

		if f.Category != "" && t.Category != f.Category {
			continue
		}

		if search != "" && !matchesSearch(t, categories, search) {
			continue
		}

		result = append(result, t)
	}

	slices.SortStableFunc(result, func(a, b Transaction) int {
		return b.Date.Compare(a.Date.Time)
	})

	return result
}

func matchesSearch(t Transaction, categories []Category, search string) bool {
	if strings.Contains(strings.ToLower(t.Description), search) {
		return true
	}

	// a dangling category reference never matches on the name side
	category, ok := FindCategory(categories, t.Category)
	if !ok {
		return false
	}

	return strings.Contains(strings.ToLower(category.Name), search)
}

// Summarize totals income and expense amounts in input order.
func Summarize(transactions []Transaction) Summary {
	var summary Summary

	for _, t := range transactions {
		switch t.Type {
		case Income:
			summary.TotalIncome += t.Amount
		case Expense:
			summary.TotalExpense += t.Amount
		}
	}

	summary.Balance = summary.TotalIncome - summary.TotalExpense

	return summary
}

// CategoryBreakdown groups expenses by category in first-encounter order.
// Groups whose category no longer exists are dropped.
func CategoryBreakdown(transactions []Transaction, categories []Category) CategoryTotals {
	order := []string{}
	totals := make(map[string]float64)

	for _, t := range transactions {
		if t.Type != Expense {
			continue
		}

		if _, ok := totals[t.Category]; !ok {
			order = append(order, t.Category)
		}
		totals[t.Category] += t.Amount
	}

	breakdown := CategoryTotals{
		Labels:  []string{},
		Amounts: []float64{},
		Colors:  []string{},
	}

	for _, id := range order {
		category, ok := FindCategory(categories, id)
		if !ok {
			continue
		}

		breakdown.Labels = append(breakdown.Labels, category.Name)
		breakdown.Amounts = append(breakdown.Amounts, totals[id])
		breakdown.Colors = append(breakdown.Colors, category.Color)
	}

	return breakdown
}

// MonthlySeries buckets transactions into the MonthlyWindow calendar months
// ending with the month of now. The filter's time range plays no part here:
// the window is always the trailing six months.
func MonthlySeries(transactions []Transaction, now time.Time) MonthlyTotals {
	series := MonthlyTotals{
		Labels:  make([]string, MonthlyWindow),
		Income:  make([]float64, MonthlyWindow),
		Expense: make([]float64, MonthlyWindow),
	}

	current := util.MonthStart(util.WallClock(now))
	first := util.AddMonths(current, -(MonthlyWindow - 1))

	for i := range MonthlyWindow {
		series.Labels[i] = util.AddMonths(first, i).Format(MonthLabelLayout)
	}

	for _, t := range transactions {
		idx := monthsBetween(first, t.Date.Time)
		if idx < 0 || idx >= MonthlyWindow {
			continue
		}

		switch t.Type {
		case Income:
			series.Income[idx] += t.Amount
		case Expense:
			series.Expense[idx] += t.Amount
		}
	}

	return series
}

func monthsBetween(from, to time.Time) int {
	const monthsInYear = 12
	return (to.Year()-from.Year())*monthsInYear + int(to.Month()) - int(from.Month())
}
