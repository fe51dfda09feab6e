// Package avl renders derived wing geometry into AVL's order-sensitive
// input grammar and generates the companion run-case files and command
// scripts the solver consumes. The writer assumes its inputs were already
// validated by the geom pipeline and performs no geometry checks of its
// own.
package avl

import (
	"strings"

	"go.uber.org/zap"

	"avlgen/internal/geom"
)

// Defaults mirror the values the original nTop export pipeline hardcoded.
const (
	DefaultName          = "nTop Geometry"
	DefaultSurface       = "WING"
	DefaultNchordwise    = 8
	DefaultChordSpacing  = 1.0
	DefaultSpanSpacing   = 1.0
	DefaultMinSpanPanels = 3
	DefaultPanelsPerUnit = 2.0
)

// AirfoilSpec selects the per-section airfoil directive: either a NACA
// 4-digit profile or an external airfoil coordinate file.
type AirfoilSpec struct {
	NACA string // digits only, e.g. "2412"
	File string // path emitted after AFILE
}

// ParseAirfoil interprets a user-supplied airfoil string. "NACA 2412" (or
// bare digits) selects a NACA profile; anything else is treated as an
// airfoil-data file path.
func ParseAirfoil(s string) AirfoilSpec {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return AirfoilSpec{NACA: "2412"}
	}
	upper := strings.ToUpper(trimmed)
	if strings.HasPrefix(upper, "NACA") {
		return AirfoilSpec{NACA: strings.TrimSpace(trimmed[4:])}
	}
	if isDigits(trimmed) {
		return AirfoilSpec{NACA: trimmed}
	}
	return AirfoilSpec{File: trimmed}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Refs are the six reference values of the AVL header block.
type Refs struct {
	Sref float64
	Cref float64
	Bref float64
	Xref float64
	Yref float64
	Zref float64
}

// RefOverrides replaces individual derived reference values with
// user-supplied ones. Nil fields keep the derived value.
type RefOverrides struct {
	Sref *float64
	Cref *float64
	Bref *float64
	Xref *float64
	Yref *float64
	Zref *float64
}

func (o *RefOverrides) apply(r Refs) Refs {
	if o == nil {
		return r
	}
	if o.Sref != nil {
		r.Sref = *o.Sref
	}
	if o.Cref != nil {
		r.Cref = *o.Cref
	}
	if o.Bref != nil {
		r.Bref = *o.Bref
	}
	if o.Xref != nil {
		r.Xref = *o.Xref
	}
	if o.Yref != nil {
		r.Yref = *o.Yref
	}
	if o.Zref != nil {
		r.Zref = *o.Zref
	}
	return r
}

// ModelConfig carries the user parameters that cannot be derived from
// geometry. It is passed explicitly; there are no package-level defaults
// beyond the constants above.
type ModelConfig struct {
	Name         string
	Surface      string
	Mach         float64
	HalfModel    bool // model one side, mirror about Y=0 (IYsym=1)
	Nchordwise   int
	ChordSpacing float64
	SpanSpacing  float64
	Airfoil      AirfoilSpec

	// Spanwise panel density between consecutive sections:
	// max(MinSpanPanels, dy*PanelsPerUnit).
	MinSpanPanels int
	PanelsPerUnit float64

	Overrides *RefOverrides
}

func (c ModelConfig) withDefaults() ModelConfig {
	if c.Name == "" {
		c.Name = DefaultName
	}
	if c.Surface == "" {
		c.Surface = DefaultSurface
	}
	if c.Nchordwise <= 0 {
		c.Nchordwise = DefaultNchordwise
	}
	if c.ChordSpacing == 0 {
		c.ChordSpacing = DefaultChordSpacing
	}
	if c.SpanSpacing == 0 {
		c.SpanSpacing = DefaultSpanSpacing
	}
	if c.MinSpanPanels <= 0 {
		c.MinSpanPanels = DefaultMinSpanPanels
	}
	if c.PanelsPerUnit <= 0 {
		c.PanelsPerUnit = DefaultPanelsPerUnit
	}
	if c.Airfoil == (AirfoilSpec{}) {
		c.Airfoil = AirfoilSpec{NACA: "2412"}
	}
	return c
}

// Model is the finished, order-preserving rendering input: the section
// sequence plus the resolved reference values and configuration. It is
// not mutated after construction.
type Model struct {
	Config   ModelConfig
	Sections []geom.Section
	Refs     Refs
}

// BuildModel derives reference quantities from the section sequence,
// applies configured overrides, and assembles the serializable model.
// Moment references default to the leading-edge centroid.
func BuildModel(sections []geom.Section, cfg ModelConfig, log *zap.Logger) (*Model, error) {
	cfg = cfg.withDefaults()

	derived, err := geom.DeriveReferences(sections, cfg.HalfModel, log)
	if err != nil {
		return nil, err
	}

	centroid := geom.LECentroid(sections)
	refs := cfg.Overrides.apply(Refs{
		Sref: derived.Sref,
		Cref: derived.Cref,
		Bref: derived.Bref,
		Xref: centroid.X,
		Yref: centroid.Y,
		Zref: centroid.Z,
	})

	return &Model{Config: cfg, Sections: sections, Refs: refs}, nil
}
