package importcmd

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/GustavoCaso/finbot/internal/cli"
	importer "github.com/GustavoCaso/finbot/internal/import"
)

type importCommand struct {
	file string
}

func NewCommand() cli.Command {
	return &importCommand{}
}

func (c *importCommand) Description() string {
	return "Imports transactions from a CSV or JSON file"
}

func (c *importCommand) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.file, "f", "", "file to import (.csv or .json)")
}

func (c *importCommand) Run(env cli.Env) error {
	if c.file == "" {
		return errors.New("you must provide a file to import")
	}

	file, err := os.Open(c.file)
	if err != nil {
		return err
	}
	defer file.Close()

	info := importer.Import(c.file, file, env.Store)
	if info.Error != nil {
		return fmt.Errorf("unable to import transactions due to error: %w", info.Error)
	}

	if info.TotalImports > 0 {
		_, err = fmt.Fprintf(env.Out, "Total transactions imported: %d\n", info.TotalImports)
	} else {
		_, err = fmt.Fprintln(env.Out, "No transactions were imported")
	}

	return err
}
