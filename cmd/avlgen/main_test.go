package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"avlgen/internal/avl"
	"avlgen/internal/config"
)

// setupGenerate points the generate globals at a temp workspace with a
// simple two-section wing export.
func setupGenerate(t *testing.T) string {
	t.Helper()

	logger = zap.NewNop()
	cfg = config.DefaultConfig()
	cfg.Geometry.Scale = 1.0
	t.Cleanup(func() { logger = nil; cfg = nil })

	dir := t.TempDir()
	generateLE = filepath.Join(dir, "le.csv")
	generateTE = filepath.Join(dir, "te.csv")
	generateOut = filepath.Join(dir, "wing.avl")
	generateName = ""
	generateAirfoil = ""

	le := "X,Y,Z\n0.0,0.0,0.0\n0.2,5.0,0.1\n"
	te := "X,Y,Z\n1.0,0.0,0.0\n1.0,5.0,0.1\n"
	require.NoError(t, os.WriteFile(generateLE, []byte(le), 0o644))
	require.NoError(t, os.WriteFile(generateTE, []byte(te), 0o644))
	return dir
}

func TestRunGenerate(t *testing.T) {
	setupGenerate(t)

	require.NoError(t, runGenerate(generateCmd, nil))

	model, err := avl.ParseFile(generateOut)
	require.NoError(t, err)

	assert.Equal(t, "nTop Geometry", model.Config.Name)
	require.Len(t, model.Sections, 2)
	assert.InDelta(t, 1.0, model.Sections[0].Chord, 1e-6)
	assert.InDelta(t, 0.8, model.Sections[1].Chord, 1e-6)
	assert.InDelta(t, 5.0, model.Refs.Bref, 1e-6)
	// Trapezoid of chords 1.0 and 0.8 over a 5 unit span.
	assert.InDelta(t, 4.5, model.Refs.Sref, 1e-6)
	assert.InDelta(t, 0.9, model.Refs.Cref, 1e-6)
}

func TestRunGenerate_MissingInput(t *testing.T) {
	setupGenerate(t)
	require.NoError(t, os.Remove(generateTE))

	assert.Error(t, runGenerate(generateCmd, nil))
}

func TestModelConfig_FlagOverrides(t *testing.T) {
	setupGenerate(t)

	generateName = "Test Wing"
	generateAirfoil = "NACA 0012"
	require.NoError(t, generateCmd.Flags().Set("sref", "12.5"))
	t.Cleanup(func() {
		generateCmd.Flags().Lookup("sref").Changed = false
	})

	mc := modelConfig(generateCmd)
	assert.Equal(t, "Test Wing", mc.Name)
	assert.Equal(t, "0012", mc.Airfoil.NACA)
	require.NotNil(t, mc.Overrides)
	require.NotNil(t, mc.Overrides.Sref)
	assert.Equal(t, 12.5, *mc.Overrides.Sref)
	assert.Nil(t, mc.Overrides.Bref)
}

func TestSweepConfig_Defaults(t *testing.T) {
	logger = zap.NewNop()
	cfg = config.DefaultConfig()
	t.Cleanup(func() { logger = nil; cfg = nil })

	sc := sweepConfig(sweepCmd)
	assert.Equal(t, cfg.Sweep.AlphaMin, sc.AlphaMin)
	assert.Equal(t, cfg.Sweep.AlphaMax, sc.AlphaMax)
	assert.Nil(t, sc.CLTarget)
}

func TestRunSweep(t *testing.T) {
	logger = zap.NewNop()
	cfg = config.DefaultConfig()
	cfg.Sweep = config.SweepConfig{AlphaMin: 0, AlphaMax: 2, AlphaStep: 1}
	t.Cleanup(func() { logger = nil; cfg = nil })

	sweepOut = filepath.Join(t.TempDir(), "wing.run")
	require.NoError(t, runSweep(sweepCmd, nil))

	data, err := os.ReadFile(sweepOut)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Run case  1:  alpha =   0.00 deg")
	assert.Contains(t, string(data), "Run case  3:  alpha =   2.00 deg")
}

func TestRunInitConfig(t *testing.T) {
	dir := t.TempDir()
	configPath = filepath.Join(dir, "avlgen.yaml")
	initForce = false

	require.NoError(t, runInitConfig(initConfigCmd, nil))

	loaded, err := config.Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, "WING", loaded.Geometry.Surface)

	// Second run refuses without --force.
	assert.Error(t, runInitConfig(initConfigCmd, nil))
	initForce = true
	assert.NoError(t, runInitConfig(initConfigCmd, nil))
}
