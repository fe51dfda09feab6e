package avl

import (
	"fmt"
	"math"
	"os"
	"strings"
)

// Render produces the AVL geometry file text. The output is deterministic:
// the same model always renders byte-identically, sections appear exactly
// once each in input order, and %.6f formatting keeps re-parsed values
// within 1e-6 of the originals.
func (m *Model) Render() string {
	cfg := m.Config
	var b strings.Builder

	iysym := 0
	if cfg.HalfModel {
		iysym = 1
	}

	fmt.Fprintf(&b, "!***************************************\n")
	fmt.Fprintf(&b, "!AVL input file generated from nTop geometry\n")
	fmt.Fprintf(&b, "!***************************************\n")
	fmt.Fprintf(&b, "%s\n", cfg.Name)
	fmt.Fprintf(&b, "!Mach\n")
	fmt.Fprintf(&b, " %.3f\n", cfg.Mach)
	fmt.Fprintf(&b, "!IYsym   IZsym   Zsym\n")
	fmt.Fprintf(&b, " %d       0       0.000\n", iysym)
	fmt.Fprintf(&b, "!Sref    Cref    Bref\n")
	fmt.Fprintf(&b, "%.6f     %.6f     %.6f\n", m.Refs.Sref, m.Refs.Cref, m.Refs.Bref)
	fmt.Fprintf(&b, "!Xref    Yref    Zref\n")
	fmt.Fprintf(&b, "%.6f     %.6f     %.6f\n", m.Refs.Xref, m.Refs.Yref, m.Refs.Zref)
	fmt.Fprintf(&b, "\n")
	fmt.Fprintf(&b, "SURFACE\n")
	fmt.Fprintf(&b, "%s\n", cfg.Surface)
	fmt.Fprintf(&b, "!Nchordwise  Cspace\n")
	fmt.Fprintf(&b, "%d            %.1f\n", cfg.Nchordwise, cfg.ChordSpacing)
	fmt.Fprintf(&b, "\n")

	for i, s := range m.Sections {
		fmt.Fprintf(&b, "SECTION\n")
		fmt.Fprintf(&b, "!Xle    Yle    Zle     Chord   Ainc  Nspanwise  Sspace\n")
		fmt.Fprintf(&b, "%.6f    %.6f    %.6f    %.6f   %.6f   %d          %.3f\n",
			s.LE.X, s.LE.Y, s.LE.Z, s.Chord, s.Incidence,
			m.spanPanels(i), cfg.SpanSpacing)
		if cfg.Airfoil.File != "" {
			fmt.Fprintf(&b, "AFILE\n")
			fmt.Fprintf(&b, "%s\n", cfg.Airfoil.File)
		} else {
			fmt.Fprintf(&b, "NACA\n")
			fmt.Fprintf(&b, "%s\n", cfg.Airfoil.NACA)
		}
		fmt.Fprintf(&b, "\n")
	}

	fmt.Fprintf(&b, "END\n")
	return b.String()
}

// spanPanels computes the vortex count between section i and its
// successor. Wider gaps get more panels; the last section closes the
// surface and carries zero.
func (m *Model) spanPanels(i int) int {
	if i >= len(m.Sections)-1 {
		return 0
	}
	dy := math.Abs(m.Sections[i+1].LE.Y - m.Sections[i].LE.Y)
	n := int(dy * m.Config.PanelsPerUnit)
	if n < m.Config.MinSpanPanels {
		n = m.Config.MinSpanPanels
	}
	return n
}

// WriteFile renders the model and writes it to path. Failures are I/O
// only and reported as *SerializationError.
func (m *Model) WriteFile(path string) error {
	if err := os.WriteFile(path, []byte(m.Render()), 0o644); err != nil {
		return &SerializationError{Path: path, Err: err}
	}
	return nil
}
