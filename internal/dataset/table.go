package dataset

import (
	"errors"
	"strings"
)

// Row is one delimited line of a source file, fields in file order.
type Row []string

// Key returns the trimmed first field, which names the country.
func (r Row) Key() string {
	if len(r) == 0 {
		return ""
	}
	return strings.TrimSpace(r[0])
}

// WithoutEmpty returns a copy of r with every empty field removed.
func (r Row) WithoutEmpty() Row {
	out := make(Row, 0, len(r))
	for _, f := range r {
		if f == "" {
			continue
		}
		out = append(out, f)
	}
	return out
}

// Table is an ordered sequence of rows loaded from one file.
type Table struct {
	Name string
	Rows []Row
}

// Header returns the first row. Only the personality dataset carries one.
func (t *Table) Header() (Row, error) {
	if t == nil || len(t.Rows) == 0 {
		name := ""
		if t != nil {
			name = t.Name
		}
		return nil, &MalformedRecordError{Dataset: name, Line: 1, Err: errors.New("missing header row")}
	}
	return t.Rows[0], nil
}

// Len reports the number of rows, header included.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}
