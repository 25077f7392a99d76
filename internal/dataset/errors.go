package dataset

import "fmt"

// Dataset labels used in error messages.
const (
	DatasetPersonality = "personality"
	DatasetGNI         = "gni"
)

// InputNotFoundError indicates a source file is missing or unreadable.
type InputNotFoundError struct {
	Path string
	Err  error
}

func (e *InputNotFoundError) Error() string {
	return fmt.Sprintf("input not found: %s: %v", e.Path, e.Err)
}

func (e *InputNotFoundError) Unwrap() error { return e.Err }

// MalformedRecordError indicates a row with the wrong arity or a non-numeric
// value where a number is expected. Line and Field are 1-based; zero means unknown.
type MalformedRecordError struct {
	Dataset string
	Country string
	Line    int
	Field   int
	Value   string
	Err     error
}

func (e *MalformedRecordError) Error() string {
	msg := "malformed record"
	if e.Dataset != "" {
		msg += " in " + e.Dataset
	}
	if e.Country != "" {
		msg += fmt.Sprintf(" for %q", e.Country)
	}
	if e.Line > 0 {
		msg += fmt.Sprintf(" at line %d", e.Line)
	}
	if e.Field > 0 {
		msg += fmt.Sprintf(" field %d", e.Field)
	}
	if e.Value != "" {
		msg += fmt.Sprintf(" (value %q)", e.Value)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedRecordError) Unwrap() error { return e.Err }

// CountryNotFoundError indicates the requested country has no row in a dataset.
type CountryNotFoundError struct {
	Country string
	Dataset string
}

func (e *CountryNotFoundError) Error() string {
	if e.Dataset != "" {
		return fmt.Sprintf("country %q not found in %s dataset", e.Country, e.Dataset)
	}
	return fmt.Sprintf("country %q not found", e.Country)
}
