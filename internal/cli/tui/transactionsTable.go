package tui

import (
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
)

type transactionsTable struct {
	table table.Model
}

func newTransactionsTable(rows []table.Row, width int) transactionsTable {
	t := table.New(
		table.WithColumns(createTransactionColumns(width)),
		table.WithRows(rows),
		table.WithFocused(true),
	)

	return transactionsTable{table: t}
}

func (r transactionsTable) Cursor() int {
	return r.table.Cursor()
}

func (r transactionsTable) SetRows(rows []table.Row) transactionsTable {
	r.table.SetRows(rows)
	if r.table.Cursor() >= len(rows) {
		r.table.SetCursor(max(len(rows)-1, 0))
	}
	return r
}

func (r transactionsTable) Update(msg tea.Msg) (transactionsTable, tea.Cmd) {
	var cmd tea.Cmd
	r.table.Focus()
	r.table, cmd = r.table.Update(msg)
	return r, cmd
}

func (r transactionsTable) UpdateDimensions(width, height int) transactionsTable {
	r.table.SetColumns(createTransactionColumns(width))
	r.table.SetWidth(width)
	r.table.SetHeight(height)
	return r
}

func (r transactionsTable) View() string {
	return r.table.View()
}

func createTransactionColumns(width int) []table.Column {
	const (
		dateWidth   = 12
		amountWidth = 14
	)

	rest := max(width-dateWidth-amountWidth, 20)

	return []table.Column{
		{Title: "Date", Width: dateWidth},
		{Title: "Description", Width: rest * 3 / 5},
		{Title: "Category", Width: rest * 2 / 5},
		{Title: "Amount", Width: amountWidth},
	}
}
