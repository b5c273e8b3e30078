package add

import (
	"flag"
	"fmt"

	"github.com/GustavoCaso/finbot/internal/cli"
	"github.com/GustavoCaso/finbot/internal/ledger"
	"github.com/GustavoCaso/finbot/internal/store"
	"github.com/GustavoCaso/finbot/internal/util"
)

type addCommand struct {
	amount      float64
	description string
	category    string
	date        string
	txType      string
}

func NewCommand() cli.Command {
	return &addCommand{}
}

func (c *addCommand) Description() string {
	return "Records a new income or expense transaction"
}

func (c *addCommand) SetFlags(fs *flag.FlagSet) {
	fs.Float64Var(&c.amount, "amount", 0, "transaction amount")
	fs.StringVar(&c.description, "description", "", "transaction description")
	fs.StringVar(&c.category, "category", "", "category ID or name")
	fs.StringVar(&c.date, "date", "", "transaction date as YYYY-MM-DD (defaults to today)")
	fs.StringVar(&c.txType, "type", string(ledger.Expense), "income or expense")
}

func (c *addCommand) Run(env cli.Env) error {
	txType, err := ledger.ParseType(c.txType)
	if err != nil {
		return err
	}

	date := ledger.DateOf(env.Store.Now())
	if c.date != "" {
		if date, err = ledger.ParseDate(c.date); err != nil {
			return err
		}
	}

	category, err := cli.ResolveCategory(env.Store.State().Categories, c.category)
	if err != nil {
		return err
	}

	t, err := env.Store.AddTransaction(store.TransactionInput{
		Amount:      c.amount,
		Description: c.description,
		Category:    category.ID,
		Date:        date,
		Type:        txType,
	})
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(env.Out, "Added %s %s on %s in %s (ID %s)\n",
		t.Type, util.FormatCurrency(t.Amount), t.Date, category.Name, t.ID)
	return err
}
