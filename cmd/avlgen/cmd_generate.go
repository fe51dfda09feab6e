package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"avlgen/internal/avl"
	"avlgen/internal/geom"
	"avlgen/internal/pointfile"
)

var (
	generateLE  string
	generateTE  string
	generateOut string

	generateName      string
	generateHalfModel bool
	generateAirfoil   string

	// Reference overrides; cmd.Flags().Changed distinguishes "0" from
	// "not given".
	generateSref float64
	generateCref float64
	generateBref float64
	generateXref float64
	generateYref float64
	generateZref float64
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Compile LE/TE point exports into an AVL geometry file",
	Long: `Reads the leading-edge and trailing-edge point files, pairs them row
by row into spanwise sections, derives Sref/Cref/Bref, and writes the
AVL geometry file.

Example:
  avlgen generate --le le_points.csv --te te_points.csv -o wing.avl`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&generateLE, "le", "le_points.csv", "Leading-edge point CSV")
	generateCmd.Flags().StringVar(&generateTE, "te", "te_points.csv", "Trailing-edge point CSV")
	generateCmd.Flags().StringVarP(&generateOut, "out", "o", "wing.avl", "Output AVL geometry file")
	generateCmd.Flags().StringVar(&generateName, "name", "", "Model title (default from config)")
	generateCmd.Flags().BoolVar(&generateHalfModel, "half", false, "Treat input as a half model mirrored about Y=0")
	generateCmd.Flags().StringVar(&generateAirfoil, "airfoil", "", "Airfoil: NACA digits or coordinate file path")

	generateCmd.Flags().Float64Var(&generateSref, "sref", 0, "Override derived reference area")
	generateCmd.Flags().Float64Var(&generateCref, "cref", 0, "Override derived reference chord")
	generateCmd.Flags().Float64Var(&generateBref, "bref", 0, "Override derived reference span")
	generateCmd.Flags().Float64Var(&generateXref, "xref", 0, "Override moment reference X")
	generateCmd.Flags().Float64Var(&generateYref, "yref", 0, "Override moment reference Y")
	generateCmd.Flags().Float64Var(&generateZref, "zref", 0, "Override moment reference Z")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	model, err := compileModel(cmd)
	if err != nil {
		return err
	}
	if err := model.WriteFile(generateOut); err != nil {
		return err
	}

	logger.Info("geometry compiled",
		zap.String("output", generateOut),
		zap.Int("sections", len(model.Sections)),
		zap.Float64("sref", model.Refs.Sref),
		zap.Float64("cref", model.Refs.Cref),
		zap.Float64("bref", model.Refs.Bref))
	return nil
}

// compileModel runs the point-file to model pipeline with the current
// flag and config values. The watch command reuses it on every change.
func compileModel(cmd *cobra.Command) (*avl.Model, error) {
	le, err := pointfile.Read(generateLE, pointfile.RoleLeading)
	if err != nil {
		return nil, err
	}
	te, err := pointfile.Read(generateTE, pointfile.RoleTrailing)
	if err != nil {
		return nil, err
	}

	if cfg.Geometry.Scale != 1.0 {
		le = geom.ScalePoints(le, cfg.Geometry.Scale)
		te = geom.ScalePoints(te, cfg.Geometry.Scale)
	}

	sections, err := geom.PairSections(le, te)
	if err != nil {
		return nil, err
	}

	logger.Debug("sections paired",
		zap.Int("count", len(sections)),
		zap.Float64("scale", cfg.Geometry.Scale))

	return avl.BuildModel(sections, modelConfig(cmd), logger)
}

// modelConfig merges config-file geometry parameters with command-line
// overrides.
func modelConfig(cmd *cobra.Command) avl.ModelConfig {
	mc := avl.ModelConfig{
		Name:          cfg.Geometry.Name,
		Surface:       cfg.Geometry.Surface,
		Mach:          cfg.Geometry.Mach,
		HalfModel:     cfg.Geometry.HalfModel,
		Nchordwise:    cfg.Geometry.Nchordwise,
		ChordSpacing:  cfg.Geometry.ChordSpacing,
		SpanSpacing:   cfg.Geometry.SpanSpacing,
		Airfoil:       avl.ParseAirfoil(cfg.Geometry.Airfoil),
		MinSpanPanels: cfg.Geometry.MinSpanPanels,
		PanelsPerUnit: cfg.Geometry.PanelsPerUnit,
	}

	if generateName != "" {
		mc.Name = generateName
	}
	if cmd.Flags().Changed("half") {
		mc.HalfModel = generateHalfModel
	}
	if generateAirfoil != "" {
		mc.Airfoil = avl.ParseAirfoil(generateAirfoil)
	}

	overrides := &avl.RefOverrides{}
	any := false
	for _, o := range []struct {
		flag  string
		value *float64
		dest  **float64
	}{
		{"sref", &generateSref, &overrides.Sref},
		{"cref", &generateCref, &overrides.Cref},
		{"bref", &generateBref, &overrides.Bref},
		{"xref", &generateXref, &overrides.Xref},
		{"yref", &generateYref, &overrides.Yref},
		{"zref", &generateZref, &overrides.Zref},
	} {
		if cmd.Flags().Changed(o.flag) {
			*o.dest = o.value
			any = true
		}
	}
	if any {
		mc.Overrides = overrides
	}
	return mc
}
