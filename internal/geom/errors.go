package geom

import "fmt"

// CardinalityError reports a leading/trailing edge row-count mismatch.
// Misaligned rows silently produce physically wrong geometry, so this is a
// hard failure rather than a truncate-and-warn.
type CardinalityError struct {
	LECount int
	TECount int
}

func (e *CardinalityError) Error() string {
	return fmt.Sprintf("leading edge has %d points but trailing edge has %d; row counts must match", e.LECount, e.TECount)
}

// InvalidGeometryError reports a section whose geometry cannot be used,
// typically coincident LE/TE points yielding a non-positive chord.
// Index is the zero-based spanwise section index.
type InvalidGeometryError struct {
	Index  int
	Reason string
}

func (e *InvalidGeometryError) Error() string {
	return fmt.Sprintf("section %d: invalid geometry: %s", e.Index, e.Reason)
}

// InsufficientDataError reports that aggregate reference quantities were
// requested with fewer than two sections. Integration needs at least one
// spanwise interval.
type InsufficientDataError struct {
	Sections int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("need at least 2 sections to derive reference quantities, have %d", e.Sections)
}
