package avl

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"avlgen/internal/geom"
)

func taperedWing(t *testing.T) []geom.Section {
	t.Helper()
	le := []geom.Point3{{X: 0, Y: 0, Z: 0}, {X: 0.2, Y: 3, Z: 0.05}, {X: 0.5, Y: 5, Z: 0.1}}
	te := []geom.Point3{{X: 1, Y: 0, Z: 0}, {X: 1.1, Y: 3, Z: 0.02}, {X: 1.2, Y: 5, Z: 0.08}}
	sections, err := geom.PairSections(le, te)
	require.NoError(t, err)
	return sections
}

func TestRender_Structure(t *testing.T) {
	m, err := BuildModel(taperedWing(t), ModelConfig{
		Name:      "Test Wing",
		Mach:      0.75,
		HalfModel: true,
	}, nil)
	require.NoError(t, err)

	text := m.Render()

	assert.True(t, strings.HasPrefix(text, "!"), "starts with the banner comment")
	assert.Contains(t, text, "Test Wing\n")
	assert.Contains(t, text, " 0.750\n")
	assert.Contains(t, text, " 1       0       0.000\n") // IYsym for half model
	assert.Contains(t, text, "SURFACE\nWING\n")
	assert.Equal(t, 3, strings.Count(text, "SECTION\n"))
	assert.Equal(t, 3, strings.Count(text, "NACA\n2412\n"))
	assert.True(t, strings.HasSuffix(text, "END\n"))
}

func TestRender_Deterministic(t *testing.T) {
	m, err := BuildModel(taperedWing(t), ModelConfig{}, nil)
	require.NoError(t, err)
	assert.Equal(t, m.Render(), m.Render())
}

func TestRender_SectionOrderPreserved(t *testing.T) {
	m, err := BuildModel(taperedWing(t), ModelConfig{}, nil)
	require.NoError(t, err)

	parsed, err := Parse(m.Render())
	require.NoError(t, err)
	require.Len(t, parsed.Sections, 3)
	assert.Equal(t, []float64{0, 3, 5},
		[]float64{parsed.Sections[0].LE.Y, parsed.Sections[1].LE.Y, parsed.Sections[2].LE.Y})
}

func TestRender_SpanwisePanels(t *testing.T) {
	m, err := BuildModel(taperedWing(t), ModelConfig{}, nil)
	require.NoError(t, err)

	// dy = 3 -> 3*2 = 6 panels, dy = 2 -> 4 panels, last section 0.
	assert.Equal(t, 6, m.spanPanels(0))
	assert.Equal(t, 4, m.spanPanels(1))
	assert.Equal(t, 0, m.spanPanels(2))

	// Narrow gaps clamp to the minimum.
	narrow, err := BuildModel(mustSections(t,
		[]geom.Point3{{X: 0, Y: 0, Z: 0}, {X: 0, Y: 0.5, Z: 0}},
		[]geom.Point3{{X: 1, Y: 0, Z: 0}, {X: 1, Y: 0.5, Z: 0}}), ModelConfig{}, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultMinSpanPanels, narrow.spanPanels(0))
}

func TestRender_AirfoilFileDirective(t *testing.T) {
	m, err := BuildModel(taperedWing(t), ModelConfig{
		Airfoil: AirfoilSpec{File: "profiles/mh60.dat"},
	}, nil)
	require.NoError(t, err)

	text := m.Render()
	assert.Contains(t, text, "AFILE\nprofiles/mh60.dat\n")
	assert.NotContains(t, text, "NACA\n")
}

func TestRoundTrip_ReferencesReproduced(t *testing.T) {
	m, err := BuildModel(taperedWing(t), ModelConfig{HalfModel: true}, nil)
	require.NoError(t, err)

	parsed, err := Parse(m.Render())
	require.NoError(t, err)
	require.Equal(t, len(m.Sections), len(parsed.Sections))
	assert.True(t, parsed.Config.HalfModel)

	rederived, err := geom.DeriveReferences(parsed.Sections, parsed.Config.HalfModel, nil)
	require.NoError(t, err)

	relTol := func(want, got float64) {
		t.Helper()
		require.NotZero(t, want)
		assert.InDelta(t, 0, math.Abs(got-want)/math.Abs(want), 1e-6)
	}
	relTol(m.Refs.Sref, rederived.Sref)
	relTol(m.Refs.Cref, rederived.Cref)
	relTol(m.Refs.Bref, rederived.Bref)
}

func TestRoundTrip_HeaderValues(t *testing.T) {
	sref, xref := 20.0, 0.5
	m, err := BuildModel(taperedWing(t), ModelConfig{
		Name: "Override Wing",
		Overrides: &RefOverrides{
			Sref: &sref,
			Xref: &xref,
		},
	}, nil)
	require.NoError(t, err)

	parsed, err := Parse(m.Render())
	require.NoError(t, err)
	assert.Equal(t, "Override Wing", parsed.Config.Name)
	assert.InDelta(t, 20.0, parsed.Refs.Sref, 1e-9)
	assert.InDelta(t, 0.5, parsed.Refs.Xref, 1e-9)
	// Non-overridden values still derived.
	assert.InDelta(t, m.Refs.Bref, parsed.Refs.Bref, 1e-6)
}

func TestWriteFile(t *testing.T) {
	m, err := BuildModel(taperedWing(t), ModelConfig{}, nil)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "wing.avl")
	require.NoError(t, m.WriteFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, m.Render(), string(data))
}

func TestWriteFile_IOError(t *testing.T) {
	m, err := BuildModel(taperedWing(t), ModelConfig{}, nil)
	require.NoError(t, err)

	err = m.WriteFile(filepath.Join(t.TempDir(), "missing", "wing.avl"))

	var serErr *SerializationError
	require.ErrorAs(t, err, &serErr)
}

func mustSections(t *testing.T, le, te []geom.Point3) []geom.Section {
	t.Helper()
	sections, err := geom.PairSections(le, te)
	require.NoError(t, err)
	return sections
}
