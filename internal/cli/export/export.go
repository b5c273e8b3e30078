package exportcmd

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/GustavoCaso/finbot/internal/cli"
	"github.com/GustavoCaso/finbot/internal/export"
)

type exportCommand struct {
	filters *cli.FilterFlags
	format  string
	output  string
}

func NewCommand() cli.Command {
	return &exportCommand{filters: &cli.FilterFlags{}}
}

func (c *exportCommand) Description() string {
	return "Exports the transactions matching the filter as CSV or JSON"
}

func (c *exportCommand) SetFlags(fs *flag.FlagSet) {
	c.filters.Register(fs)
	fs.StringVar(&c.format, "format", string(export.FormatCSV), "export format: csv or json")
	fs.StringVar(&c.output, "o", "", "file to write the export to (defaults to stdout)")
}

func (c *exportCommand) Run(env cli.Env) error {
	format, err := export.ParseFormat(c.format)
	if err != nil {
		return err
	}

	patch, err := c.filters.Patch()
	if err != nil {
		return err
	}

	state, err := env.Store.View(patch)
	if err != nil {
		return err
	}

	transactions := state.Filtered(env.Store.Now())

	var out io.Writer = env.Out
	if c.output != "" {
		f, createErr := os.Create(c.output)
		if createErr != nil {
			return fmt.Errorf("unable to create export file: %w", createErr)
		}
		defer f.Close()

		out = f
	}

	if err = export.Write(out, format, transactions, state.Categories); err != nil {
		return err
	}

	env.Logger.Info("Exported transactions",
		"count", len(transactions),
		"format", string(format),
		"output", c.output)

	return nil
}
