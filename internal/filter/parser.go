package filter

import (
	"fmt"
	"net/url"
	"strings"
)

// ParseType validates a type string.
func ParseType(s string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("invalid type: %s (must be all, income or expense)", s)
	}
	return t, nil
}

// ParseTimeRange validates a time range string.
func ParseTimeRange(s string) (TimeRange, error) {
	r := TimeRange(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("invalid time range: %s (must be week, month, year or all)", s)
	}
	return r, nil
}

// ParsePatch parses URL query parameters into a filter patch. Only the
// parameters present in params are set on the patch.
func ParsePatch(params url.Values) (Patch, error) {
	patch := Patch{}

	if params.Has("type") {
		t, err := ParseType(params.Get("type"))
		if err != nil {
			return Patch{}, err
		}
		patch.Type = &t
	}

	if params.Has("category") {
		category := params.Get("category")
		patch.Category = &category
	}

	for _, key := range []string{"range", "timeRange"} {
		if !params.Has(key) {
			continue
		}
		r, err := ParseTimeRange(params.Get(key))
		if err != nil {
			return Patch{}, err
		}
		patch.TimeRange = &r
	}

	if params.Has("search") {
		search := params.Get("search")
		patch.Search = &search
	}

	return patch, nil
}
