package list

import (
	"bytes"
	"flag"
	"strings"
	"testing"

	"github.com/GustavoCaso/finbot/internal/cli"
	"github.com/GustavoCaso/finbot/internal/testutil"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	logger := testutil.TestLogger(t)
	s, _ := testutil.SetupTestStore(t, logger)

	cmd := NewCommand()
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	cmd.SetFlags(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	err := cmd.Run(cli.Env{Store: s, Logger: logger, Out: &out})
	return out.String(), err
}

func TestRun(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		contains []string
		excludes []string
	}{
		{
			name:     "all transactions",
			args:     []string{},
			contains: []string{"Monthly Salary", "Rent Payment", "-$1,200.00", "$3,500.00", "Housing", "5 of 5 transactions"},
		},
		{
			name:     "income only",
			args:     []string{"-type", "income"},
			contains: []string{"Monthly Salary", "Freelance Project", "2 of 2 transactions"},
			excludes: []string{"Rent Payment"},
		},
		{
			name:     "limit keeps the most recent",
			args:     []string{"-limit", "1"},
			contains: []string{"Concert Tickets", "1 of 5 transactions"},
			excludes: []string{"Monthly Salary"},
		},
		{
			name:     "no match",
			args:     []string{"-search", "yacht"},
			contains: []string{"No transactions found"},
		},
		{
			name:     "by category",
			args:     []string{"-category", "4"},
			contains: []string{"Grocery Shopping", "1 of 1 transactions"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := run(t, tt.args...)
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}

			for _, want := range tt.contains {
				if !strings.Contains(output, want) {
					t.Errorf("Output missing %q:\n%s", want, output)
				}
			}
			for _, unwanted := range tt.excludes {
				if strings.Contains(output, unwanted) {
					t.Errorf("Output should not contain %q:\n%s", unwanted, output)
				}
			}
		})
	}
}

func TestRunErrors(t *testing.T) {
	for _, args := range [][]string{
		{"-limit", "-1"},
		{"-type", "transfer"},
	} {
		if _, err := run(t, args...); err == nil {
			t.Errorf("Expected an error for %v", args)
		}
	}
}
