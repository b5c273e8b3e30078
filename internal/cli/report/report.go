package report

import (
	"embed"
	"flag"
	"fmt"
	"io"
	"path"
	"strings"
	"text/template"
	"time"

	"github.com/GustavoCaso/finbot/internal/cli"
	"github.com/GustavoCaso/finbot/internal/filter"
	"github.com/GustavoCaso/finbot/internal/ledger"
	"github.com/GustavoCaso/finbot/internal/util"
)

//go:embed templates/*
var content embed.FS

const barWidth = 30

type reportCommand struct {
	filters *cli.FilterFlags
	verbose *bool
}

func NewCommand() cli.Command {
	return &reportCommand{filters: &cli.FilterFlags{}, verbose: new(bool)}
}

func (c *reportCommand) Description() string {
	return "Displays totals, the expense breakdown by category and the last six months"
}

func (c *reportCommand) SetFlags(fs *flag.FlagSet) {
	c.filters.Register(fs)
	fs.BoolVar(c.verbose, "v", false, "list the matching transactions")
}

type categoryLine struct {
	Name   string
	Amount float64
	Color  string
	Bar    string
}

type monthLine struct {
	Label   string
	Income  float64
	Expense float64
}

type report struct {
	Filter       filter.Filter
	Summary      ledger.Summary
	Categories   []categoryLine
	Months       []monthLine
	Transactions []ledger.Transaction
	Verbose      bool
}

func (c *reportCommand) Run(env cli.Env) error {
	patch, err := c.filters.Patch()
	if err != nil {
		return err
	}

	state, err := env.Store.View(patch)
	if err != nil {
		return err
	}

	r := build(state, env.Store.Now())
	r.Verbose = *c.verbose

	return renderTemplate(env.Out, "report.tmpl", r)
}

func build(state ledger.State, now time.Time) report {
	transactions := state.Filtered(now)
	breakdown := ledger.CategoryBreakdown(transactions, state.Categories)
	series := ledger.MonthlySeries(transactions, now)

	r := report{
		Filter:       state.Filter,
		Summary:      ledger.Summarize(transactions),
		Transactions: transactions,
	}

	largest := 0.0
	for _, amount := range breakdown.Amounts {
		largest = max(largest, amount)
	}

	for i, label := range breakdown.Labels {
		r.Categories = append(r.Categories, categoryLine{
			Name:   label,
			Amount: breakdown.Amounts[i],
			Color:  breakdown.Colors[i],
			Bar:    bar(breakdown.Amounts[i], largest),
		})
	}

	for i, label := range series.Labels {
		r.Months = append(r.Months, monthLine{
			Label:   label,
			Income:  series.Income[i],
			Expense: series.Expense[i],
		})
	}

	return r
}

// bar scales amount against largest into at most barWidth blocks. Any
// non-zero amount gets at least one block.
func bar(amount, largest float64) string {
	if largest <= 0 || amount <= 0 {
		return ""
	}

	width := int(amount / largest * barWidth)
	if width == 0 {
		width = 1
	}

	return strings.Repeat("█", width)
}

var templateFuncs = template.FuncMap{
	"formatMoney": util.FormatMoney,
	"colorOutput": util.ColorOutput,
	"colorHex":    util.ColorHex,
}

func renderTemplate(out io.Writer, templateName string, value any) error {
	tmpl, err := content.ReadFile(path.Join("templates", templateName))
	if err != nil {
		return err
	}

	t, err := template.New(templateName).Funcs(templateFuncs).Parse(string(tmpl))
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", templateName, err)
	}

	return t.Execute(out, value)
}
