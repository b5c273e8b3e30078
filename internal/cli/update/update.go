package update

import (
	"errors"
	"flag"
	"fmt"

	"github.com/GustavoCaso/finbot/internal/cli"
	"github.com/GustavoCaso/finbot/internal/ledger"
)

var errNothingToUpdate = errors.New("nothing to update: pass at least one of -amount, -description, -category, -date or -type")

type updateCommand struct {
	fset        *flag.FlagSet
	id          string
	amount      float64
	description string
	category    string
	date        string
	txType      string
}

func NewCommand() cli.Command {
	return &updateCommand{}
}

func (c *updateCommand) Description() string {
	return "Changes the given fields of an existing transaction"
}

func (c *updateCommand) SetFlags(fs *flag.FlagSet) {
	c.fset = fs
	fs.StringVar(&c.id, "id", "", "ID of the transaction to update")
	fs.Float64Var(&c.amount, "amount", 0, "new amount")
	fs.StringVar(&c.description, "description", "", "new description")
	fs.StringVar(&c.category, "category", "", "new category ID or name")
	fs.StringVar(&c.date, "date", "", "new date as YYYY-MM-DD")
	fs.StringVar(&c.txType, "type", "", "new type: income or expense")
}

func (c *updateCommand) Run(env cli.Env) error {
	if c.id == "" {
		return errors.New("-id is required")
	}

	patch, err := c.patch(env.Store.State().Categories)
	if err != nil {
		return err
	}

	t, err := env.Store.UpdateTransaction(c.id, patch)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(env.Out, "Updated transaction %s\n", t.ID)
	return err
}

// patch holds only the flags given on the command line.
func (c *updateCommand) patch(categories []ledger.Category) (ledger.TransactionPatch, error) {
	var patch ledger.TransactionPatch
	var err error
	set := 0

	c.fset.Visit(func(fl *flag.Flag) {
		if err != nil {
			return
		}

		switch fl.Name {
		case "amount":
			patch.Amount = &c.amount
		case "description":
			patch.Description = &c.description
		case "category":
			var category ledger.Category
			category, err = cli.ResolveCategory(categories, c.category)
			patch.Category = &category.ID
		case "date":
			var date ledger.Date
			date, err = ledger.ParseDate(c.date)
			patch.Date = &date
		case "type":
			var txType ledger.Type
			txType, err = ledger.ParseType(c.txType)
			patch.Type = &txType
		default:
			return
		}
		set++
	})

	if err != nil {
		return ledger.TransactionPatch{}, err
	}

	if set == 0 {
		return ledger.TransactionPatch{}, errNothingToUpdate
	}

	return patch, nil
}
