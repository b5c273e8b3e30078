package delete

import (
	"errors"
	"flag"
	"fmt"

	"github.com/GustavoCaso/finbot/internal/cli"
)

type deleteCommand struct {
	id  string
	all bool
}

func NewCommand() cli.Command {
	return &deleteCommand{}
}

func (c *deleteCommand) Description() string {
	return "Deletes a transaction, or with -all resets the ledger to its defaults"
}

func (c *deleteCommand) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.id, "id", "", "ID of the transaction to delete")
	fs.BoolVar(&c.all, "all", false, "drop every change and restore the default categories and sample transactions")
}

func (c *deleteCommand) Run(env cli.Env) error {
	switch {
	case c.all && c.id != "":
		return errors.New("-id and -all are mutually exclusive")
	case c.all:
		env.Store.Reset()
		env.Logger.Info("Ledger reset to defaults")
		_, err := fmt.Fprintln(env.Out, "Ledger reset to defaults")
		return err
	case c.id == "":
		return errors.New("-id is required")
	}

	if err := env.Store.DeleteTransaction(c.id); err != nil {
		return err
	}

	_, err := fmt.Fprintf(env.Out, "Deleted transaction %s\n", c.id)
	return err
}
