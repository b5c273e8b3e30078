package cli

import (
	"fmt"
	"strings"

	"github.com/GustavoCaso/finbot/internal/ledger"
)

// ResolveCategory finds a category by ID or, failing that, by name ignoring
// case.
func ResolveCategory(categories []ledger.Category, ref string) (ledger.Category, error) {
	ref = strings.TrimSpace(ref)

	if c, ok := ledger.FindCategory(categories, ref); ok {
		return c, nil
	}

	for _, c := range categories {
		if strings.EqualFold(c.Name, ref) {
			return c, nil
		}
	}

	return ledger.Category{}, fmt.Errorf("no category matches %q", ref)
}
