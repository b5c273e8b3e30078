package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/list"

	"github.com/GustavoCaso/finbot/internal/util"
)

// categoryPanel shows the expense breakdown and the transactions of the
// selected category.
type categoryPanel struct {
	table  table.Model
	groups []categoryGroup
}

func newCategoryPanel(groups []categoryGroup, width int) categoryPanel {
	t := table.New(
		table.WithColumns(createCategoryColumns(width)),
		table.WithRows(categoryRows(groups)),
	)

	return categoryPanel{table: t, groups: groups}
}

func (d categoryPanel) SetGroups(groups []categoryGroup) categoryPanel {
	d.groups = groups
	d.table.SetRows(categoryRows(groups))
	if d.table.Cursor() >= len(groups) {
		d.table.SetCursor(max(len(groups)-1, 0))
	}
	return d
}

func (d categoryPanel) Update(msg tea.Msg) (categoryPanel, tea.Cmd) {
	var cmd tea.Cmd
	d.table.Focus()
	d.table, cmd = d.table.Update(msg)
	return d, cmd
}

func (d categoryPanel) UpdateDimensions(width, height int) categoryPanel {
	d.table.SetColumns(createCategoryColumns(width))
	d.table.SetWidth(width / 2)
	d.table.SetHeight(height)
	return d
}

func (d categoryPanel) Cursor() int {
	return d.table.Cursor()
}

// Selected returns the group under the cursor.
func (d categoryPanel) Selected() (categoryGroup, bool) {
	if len(d.groups) == 0 {
		return categoryGroup{}, false
	}
	return d.groups[min(d.Cursor(), len(d.groups)-1)], true
}

func (d categoryPanel) View() string {
	group, ok := d.Selected()
	if !ok {
		return "No expenses in this range"
	}

	items := make([]any, 0, len(group.transactions))
	for _, t := range group.transactions {
		items = append(items, fmt.Sprintf("%s | %s | %s", t.Date, t.Description, util.FormatCurrency(t.Amount)))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, d.table.View(), list.New(items...).String())
}

func createCategoryColumns(width int) []table.Column {
	w := width / 4

	return []table.Column{
		{Title: "Category", Width: w},
		{Title: "Spending", Width: w},
	}
}
