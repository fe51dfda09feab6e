package avl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"avlgen/internal/geom"
)

func TestParseAirfoil(t *testing.T) {
	tests := []struct {
		in   string
		want AirfoilSpec
	}{
		{"NACA 2412", AirfoilSpec{NACA: "2412"}},
		{"naca 0012", AirfoilSpec{NACA: "0012"}},
		{"NACA2412", AirfoilSpec{NACA: "2412"}},
		{"4415", AirfoilSpec{NACA: "4415"}},
		{"profiles/mh60.dat", AirfoilSpec{File: "profiles/mh60.dat"}},
		{"", AirfoilSpec{NACA: "2412"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseAirfoil(tt.in))
		})
	}
}

func TestBuildModel_Defaults(t *testing.T) {
	sections := mustSections(t,
		[]geom.Point3{{X: 0, Y: 0, Z: 0}, {X: 0, Y: 5, Z: 0}},
		[]geom.Point3{{X: 1, Y: 0, Z: 0}, {X: 0.8, Y: 5, Z: 0}})

	m, err := BuildModel(sections, ModelConfig{}, nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultName, m.Config.Name)
	assert.Equal(t, DefaultSurface, m.Config.Surface)
	assert.Equal(t, DefaultNchordwise, m.Config.Nchordwise)
	assert.Equal(t, AirfoilSpec{NACA: "2412"}, m.Config.Airfoil)

	// Full model: trapezoid(5, [1.0, 0.8]) = 4.5 over span 5.
	assert.InDelta(t, 4.5, m.Refs.Sref, 1e-12)
	assert.InDelta(t, 5.0, m.Refs.Bref, 1e-12)
	assert.InDelta(t, 0.9, m.Refs.Cref, 1e-12)

	// Moment reference defaults to the LE centroid.
	assert.InDelta(t, 2.5, m.Refs.Yref, 1e-12)
}

func TestBuildModel_InsufficientSections(t *testing.T) {
	sections := mustSections(t, []geom.Point3{{X: 0, Y: 0, Z: 0}}, []geom.Point3{{X: 1, Y: 0, Z: 0}})

	_, err := BuildModel(sections, ModelConfig{}, nil)

	var insufficientErr *geom.InsufficientDataError
	require.ErrorAs(t, err, &insufficientErr)
}

func TestRefOverrides_NilKeepsDerived(t *testing.T) {
	base := Refs{Sref: 1, Cref: 2, Bref: 3, Xref: 4, Yref: 5, Zref: 6}

	var o *RefOverrides
	assert.Equal(t, base, o.apply(base))

	cref := 9.0
	got := (&RefOverrides{Cref: &cref}).apply(base)
	assert.Equal(t, 9.0, got.Cref)
	assert.Equal(t, 1.0, got.Sref)
}
