package cli

import (
	"flag"

	"github.com/GustavoCaso/finbot/internal/filter"
)

// FilterFlags binds the -type, -category, -range and -search flags shared by
// the read-only subcommands.
type FilterFlags struct {
	fset      *flag.FlagSet
	typ       string
	category  string
	timeRange string
	search    string
}

func (f *FilterFlags) Register(fset *flag.FlagSet) {
	f.fset = fset
	fset.StringVar(&f.typ, "type", string(filter.TypeAll), "transaction type: all, income or expense")
	fset.StringVar(&f.category, "category", "", "category ID")
	fset.StringVar(&f.timeRange, "range", string(filter.RangeMonth), "time range: week, month, year or all")
	fset.StringVar(&f.search, "search", "", "text to look for in descriptions and category names")
}

// Patch returns a filter patch holding only the flags given on the command line.
func (f *FilterFlags) Patch() (filter.Patch, error) {
	patch := filter.Patch{}
	if f.fset == nil {
		return patch, nil
	}

	var err error
	f.fset.Visit(func(fl *flag.Flag) {
		if err != nil {
			return
		}

		switch fl.Name {
		case "type":
			var t filter.Type
			t, err = filter.ParseType(f.typ)
			patch.Type = &t
		case "category":
			patch.Category = &f.category
		case "range":
			var r filter.TimeRange
			r, err = filter.ParseTimeRange(f.timeRange)
			patch.TimeRange = &r
		case "search":
			patch.Search = &f.search
		}
	})

	if err != nil {
		return filter.Patch{}, err
	}

	return patch, nil
}
