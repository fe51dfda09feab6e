package pointfile

import "fmt"

// ParseError reports a field that could not be converted to a real number.
// Row is the 1-based line in the input file; Column is the 1-based field
// position within that row.
type ParseError struct {
	Row    int
	Column int
	Field  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("row %d, column %d: cannot parse %q as a number", e.Row, e.Column, e.Field)
}

func (e *ParseError) Unwrap() error { return e.Err }

// SchemaError reports that no usable coordinate columns could be resolved,
// after named lookup and the positional fallback. Row is the 1-based line
// where resolution failed, or 0 when the whole file is unusable.
type SchemaError struct {
	Row    int
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("row %d: %s", e.Row, e.Reason)
	}
	return e.Reason
}
