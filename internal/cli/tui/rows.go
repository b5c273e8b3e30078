package tui

import (
	"github.com/charmbracelet/bubbles/table"

	"github.com/GustavoCaso/finbot/internal/ledger"
	"github.com/GustavoCaso/finbot/internal/util"
)

// categoryGroup is one line of the expense breakdown together with the
// transactions behind it.
type categoryGroup struct {
	category     ledger.Category
	total        float64
	transactions []ledger.Transaction
}

// groupExpenses groups expenses by category in first-encounter order,
// dropping transactions whose category was deleted.
func groupExpenses(transactions []ledger.Transaction, categories []ledger.Category) []categoryGroup {
	groups := []categoryGroup{}
	index := map[string]int{}

	for _, t := range transactions {
		if t.Type != ledger.Expense {
			continue
		}

		category, ok := ledger.FindCategory(categories, t.Category)
		if !ok {
			continue
		}

		i, seen := index[t.Category]
		if !seen {
			i = len(groups)
			index[t.Category] = i
			groups = append(groups, categoryGroup{category: category})
		}

		groups[i].total += t.Amount
		groups[i].transactions = append(groups[i].transactions, t)
	}

	return groups
}

func transactionRows(transactions []ledger.Transaction, categories []ledger.Category) []table.Row {
	rows := make([]table.Row, len(transactions))

	for i, t := range transactions {
		categoryName := "-"
		if c, ok := ledger.FindCategory(categories, t.Category); ok {
			categoryName = c.Name
		}

		rows[i] = table.Row{
			t.Date.String(),
			t.Description,
			categoryName,
			signedAmount(t),
		}
	}

	return rows
}

func categoryRows(groups []categoryGroup) []table.Row {
	rows := make([]table.Row, len(groups))

	for i, g := range groups {
		rows[i] = table.Row{
			g.category.Name,
			util.FormatCurrency(g.total),
		}
	}

	return rows
}

func signedAmount(t ledger.Transaction) string {
	if t.Type == ledger.Expense {
		return util.FormatCurrency(-t.Amount)
	}
	return util.FormatCurrency(t.Amount)
}
