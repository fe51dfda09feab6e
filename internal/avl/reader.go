package avl

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"avlgen/internal/geom"
)

// Parse reads an AVL geometry file back into a Model. It understands the
// subset of the grammar this package writes (one surface, per-section
// NACA/AFILE directives) and is used to verify round-trip fidelity and to
// load previously generated geometry.
func Parse(text string) (*Model, error) {
	lines := contentLines(text)
	cur := 0

	next := func() (string, error) {
		if cur >= len(lines) {
			return "", fmt.Errorf("unexpected end of file at content line %d", cur)
		}
		l := lines[cur]
		cur++
		return l, nil
	}

	name, err := next()
	if err != nil {
		return nil, err
	}
	machLine, err := next()
	if err != nil {
		return nil, err
	}
	mach, err := strconv.ParseFloat(strings.TrimSpace(machLine), 64)
	if err != nil {
		return nil, fmt.Errorf("mach line %q: %w", machLine, err)
	}

	symFields, err := nextFloats(next, 3, "symmetry")
	if err != nil {
		return nil, err
	}
	srefFields, err := nextFloats(next, 3, "Sref/Cref/Bref")
	if err != nil {
		return nil, err
	}
	xrefFields, err := nextFloats(next, 3, "Xref/Yref/Zref")
	if err != nil {
		return nil, err
	}

	m := &Model{
		Config: ModelConfig{
			Name:      name,
			Mach:      mach,
			HalfModel: symFields[0] == 1,
		},
		Refs: Refs{
			Sref: srefFields[0], Cref: srefFields[1], Bref: srefFields[2],
			Xref: xrefFields[0], Yref: xrefFields[1], Zref: xrefFields[2],
		},
	}

	for cur < len(lines) {
		keyword, _ := next()
		switch strings.ToUpper(strings.Fields(keyword)[0]) {
		case "SURFACE":
			if m.Config.Surface, err = next(); err != nil {
				return nil, err
			}
			fields, err := nextFloats(next, 2, "Nchordwise/Cspace")
			if err != nil {
				return nil, err
			}
			m.Config.Nchordwise = int(fields[0])
			m.Config.ChordSpacing = fields[1]
		case "SECTION":
			s, airfoil, err := parseSection(next)
			if err != nil {
				return nil, fmt.Errorf("section %d: %w", len(m.Sections), err)
			}
			m.Sections = append(m.Sections, s)
			m.Config.Airfoil = airfoil
		case "END":
			return m, nil
		default:
			return nil, fmt.Errorf("unexpected keyword %q", keyword)
		}
	}
	return m, nil
}

// ParseFile reads and parses an AVL geometry file from disk.
func ParseFile(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read geometry file: %w", err)
	}
	return Parse(string(data))
}

func parseSection(next func() (string, error)) (geom.Section, AirfoilSpec, error) {
	fields, err := nextFloats(next, 7, "section")
	if err != nil {
		return geom.Section{}, AirfoilSpec{}, err
	}

	le := geom.Point3{X: fields[0], Y: fields[1], Z: fields[2]}
	chord, ainc := fields[3], fields[4]

	// Invert the chord-plane projection: the trailing edge sits one chord
	// length aft of the LE, rotated by the incidence angle.
	rad := ainc * math.Pi / 180.0
	te := geom.Point3{
		X: le.X + chord*math.Cos(rad),
		Y: le.Y,
		Z: le.Z - chord*math.Sin(rad),
	}

	s := geom.Section{LE: le, TE: te, Chord: chord, Incidence: ainc}

	directive, err := next()
	if err != nil {
		return geom.Section{}, AirfoilSpec{}, err
	}
	value, err := next()
	if err != nil {
		return geom.Section{}, AirfoilSpec{}, err
	}

	var airfoil AirfoilSpec
	switch strings.ToUpper(strings.TrimSpace(directive)) {
	case "NACA":
		airfoil.NACA = strings.TrimSpace(value)
	case "AFILE":
		airfoil.File = strings.TrimSpace(value)
	default:
		return geom.Section{}, AirfoilSpec{}, fmt.Errorf("unexpected airfoil directive %q", directive)
	}
	return s, airfoil, nil
}

func nextFloats(next func() (string, error), n int, what string) ([]float64, error) {
	line, err := next()
	if err != nil {
		return nil, err
	}
	fields := strings.Fields(line)
	if len(fields) < n {
		return nil, fmt.Errorf("%s line %q: want %d fields, have %d", what, line, n, len(fields))
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i], err = strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, fmt.Errorf("%s line %q: %w", what, line, err)
		}
	}
	return out, nil
}

// contentLines strips comments (! prefixed) and blank lines, preserving
// the order of everything else.
func contentLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "!") {
			continue
		}
		out = append(out, trimmed)
	}
	return out
}
