package geom

import "math"

// Section is one spanwise station of the wing: a leading-edge point, its
// row-aligned trailing-edge point, and the quantities derived from the
// chord line between them. Sections are ordered by input row; the order is
// semantically significant (root-to-tip or tip-to-root) and is never
// changed after pairing.
type Section struct {
	LE Point3
	TE Point3

	// Chord is the LE->TE distance projected onto the chordwise/vertical
	// plane. The spanwise component is excluded so slightly misaligned
	// exports do not inflate the chord.
	Chord float64

	// Incidence is the chord-line angle relative to the chordwise axis,
	// in degrees, nose-up positive.
	Incidence float64
}

// PairSections aligns a leading-edge sequence with a trailing-edge
// sequence by row position and returns the ordered section sequence.
// Correspondence is positional only: LE[i] pairs with TE[i]. No spatial
// matching, reordering, deduplication, or interpolation is performed; the
// caller's declared row order is the sole source of truth.
//
// Returns *CardinalityError when the sequences differ in length and
// *InvalidGeometryError when any pair yields a non-positive chord.
func PairSections(le, te []Point3) ([]Section, error) {
	if len(le) != len(te) {
		return nil, &CardinalityError{LECount: len(le), TECount: len(te)}
	}

	sections := make([]Section, 0, len(le))
	for i := range le {
		s, err := newSection(i, le[i], te[i])
		if err != nil {
			return nil, err
		}
		sections = append(sections, s)
	}
	return sections, nil
}

func newSection(index int, le, te Point3) (Section, error) {
	v := te.Sub(le)
	chord := math.Hypot(v.X, v.Z)
	if chord <= 0 {
		return Section{}, &InvalidGeometryError{
			Index:  index,
			Reason: "leading and trailing edge points are coincident in the chord plane",
		}
	}

	// Nose-up positive: a trailing edge below the leading edge gives a
	// positive incidence.
	incidence := math.Atan2(le.Z-te.Z, v.X) * 180.0 / math.Pi

	return Section{
		LE:        le,
		TE:        te,
		Chord:     chord,
		Incidence: incidence,
	}, nil
}

// LECentroid returns the mean of the leading-edge points. AVL moment
// references default to this location when no override is configured.
func LECentroid(sections []Section) Point3 {
	if len(sections) == 0 {
		return Point3{}
	}
	var c Point3
	for _, s := range sections {
		c.X += s.LE.X
		c.Y += s.LE.Y
		c.Z += s.LE.Z
	}
	n := float64(len(sections))
	return Point3{c.X / n, c.Y / n, c.Z / n}
}
