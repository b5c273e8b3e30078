package list

import (
	"flag"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/GustavoCaso/finbot/internal/cli"
	"github.com/GustavoCaso/finbot/internal/ledger"
	"github.com/GustavoCaso/finbot/internal/util"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	amountStyle = cellStyle.Align(lipgloss.Right)
)

const amountColumn = 5

type listCommand struct {
	filters *cli.FilterFlags
	limit   *int
}

func NewCommand() cli.Command {
	return &listCommand{filters: &cli.FilterFlags{}, limit: new(int)}
}

func (c *listCommand) Description() string {
	return "Lists the transactions matching the filter, most recent first"
}

func (c *listCommand) SetFlags(fs *flag.FlagSet) {
	c.filters.Register(fs)
	fs.IntVar(c.limit, "limit", 0, "maximum number of transactions to show (0 shows all)")
}

func (c *listCommand) Run(env cli.Env) error {
	patch, err := c.filters.Patch()
	if err != nil {
		return err
	}

	if *c.limit < 0 {
		return fmt.Errorf("limit must not be negative: %d", *c.limit)
	}

	state, err := env.Store.View(patch)
	if err != nil {
		return err
	}

	transactions := state.Filtered(env.Store.Now())
	if len(transactions) == 0 {
		_, err = fmt.Fprintln(env.Out, "No transactions found")
		return err
	}

	total := len(transactions)
	if *c.limit > 0 && *c.limit < total {
		transactions = transactions[:*c.limit]
	}

	_, err = fmt.Fprintln(env.Out, render(transactions, state.Categories))
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(env.Out, "%d of %d transactions\n", len(transactions), total)
	return err
}

func render(transactions []ledger.Transaction, categories []ledger.Category) string {
	rows := make([][]string, 0, len(transactions))
	for _, t := range transactions {
		rows = append(rows, []string{
			t.ID,
			t.Date.String(),
			t.Description,
			categoryName(t.Category, categories),
			string(t.Type),
			signedAmount(t),
		})
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "Date", "Description", "Category", "Type", "Amount").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == amountColumn:
				return amountStyle
			default:
				return cellStyle
			}
		}).
		String()
}

func signedAmount(t ledger.Transaction) string {
	if t.Type == ledger.Expense {
		return util.FormatCurrency(-t.Amount)
	}
	return util.FormatCurrency(t.Amount)
}

func categoryName(id string, categories []ledger.Category) string {
	if c, ok := ledger.FindCategory(categories, id); ok {
		return c.Name
	}
	return "-"
}
