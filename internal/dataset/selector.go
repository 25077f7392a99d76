package dataset

import (
	"fmt"
	"strings"
)

// MatchMode controls how Select recognises a country's row.
type MatchMode string

const (
	// MatchExact compares the trimmed first field with the country name.
	MatchExact MatchMode = "exact"
	// MatchSubstring accepts a row when any field contains the name.
	// The last matching row in the table wins.
	MatchSubstring MatchMode = "substring"
)

// ParseMatchMode validates a mode name. Empty means MatchExact.
func ParseMatchMode(s string) (MatchMode, error) {
	switch MatchMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", MatchExact:
		return MatchExact, nil
	case MatchSubstring:
		return MatchSubstring, nil
	default:
		return "", fmt.Errorf("unsupported match mode: %s (use exact|substring)", s)
	}
}

// Select returns the row for country with empty fields removed.
// When several rows match, the last one wins. The table is not modified.
func Select(t *Table, country string, mode MatchMode) (Row, error) {
	name := ""
	if t != nil {
		name = t.Name
	}
	var found Row
	if t != nil {
		for _, row := range t.Rows {
			if matches(row, country, mode) {
				found = row
			}
		}
	}
	if found == nil {
		return nil, &CountryNotFoundError{Country: country, Dataset: name}
	}
	return found.WithoutEmpty(), nil
}

func matches(row Row, country string, mode MatchMode) bool {
	if mode == MatchSubstring {
		for _, f := range row {
			if strings.Contains(f, country) {
				return true
			}
		}
		return false
	}
	return row.Key() == strings.TrimSpace(country)
}
