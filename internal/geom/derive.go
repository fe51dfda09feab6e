package geom

import (
	"math"

	"go.uber.org/zap"
)

// ReferenceQuantities are the aggregate planform values AVL uses to
// non-dimensionalize coefficients. They are derived from the full section
// sequence on every call; nothing is cached across reloads.
type ReferenceQuantities struct {
	// Sref is the planform area, trapezoidal integration of chord over
	// the spanwise coordinate.
	Sref float64

	// Cref is the mean chord, Sref/Bref using full-model values.
	Cref float64

	// Bref is the spanwise extent between the first and last sections.
	Bref float64
}

// DeriveReferences integrates the section sequence into reference
// quantities. halfModel indicates the input models one side of a
// symmetric wing; area and span are doubled to full-model values.
//
// Fewer than two sections cannot span an integration interval and return
// *InsufficientDataError. Non-monotonic spanwise ordering is accepted (the
// trapezoidal rule remains well defined) but logged once as a diagnostic.
func DeriveReferences(sections []Section, halfModel bool, log *zap.Logger) (ReferenceQuantities, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if len(sections) < 2 {
		return ReferenceQuantities{}, &InsufficientDataError{Sections: len(sections)}
	}

	if idx, ok := firstNonMonotonic(sections); ok {
		log.Warn("spanwise coordinates are not monotonic; integrating as given",
			zap.Int("section", idx),
			zap.Float64("y", sections[idx].LE.Y))
	}

	span := math.Abs(sections[len(sections)-1].LE.Y - sections[0].LE.Y)
	if span == 0 {
		return ReferenceQuantities{}, &InvalidGeometryError{
			Index:  len(sections) - 1,
			Reason: "zero spanwise extent between first and last sections",
		}
	}

	area := 0.0
	for i := 0; i < len(sections)-1; i++ {
		dy := math.Abs(sections[i+1].LE.Y - sections[i].LE.Y)
		area += (sections[i].Chord + sections[i+1].Chord) / 2.0 * dy
	}

	if halfModel {
		area *= 2.0
		span *= 2.0
	}

	return ReferenceQuantities{
		Sref: area,
		Cref: area / span,
		Bref: span,
	}, nil
}

// firstNonMonotonic returns the index of the first section that breaks a
// strictly increasing or strictly decreasing spanwise progression.
func firstNonMonotonic(sections []Section) (int, bool) {
	increasing, decreasing := true, true
	for i := 1; i < len(sections); i++ {
		dy := sections[i].LE.Y - sections[i-1].LE.Y
		if dy <= 0 {
			increasing = false
		}
		if dy >= 0 {
			decreasing = false
		}
		if !increasing && !decreasing {
			return i, true
		}
	}
	return 0, false
}
