package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"avlgen/internal/avl"
)

var (
	sweepOut      string
	sweepAlphaMin float64
	sweepAlphaMax float64
	sweepStep     float64
	sweepCL       float64
	sweepMach     float64
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Generate an AVL run file covering an alpha sweep",
	Long: `Writes a .run file with one run case per angle of attack across the
configured range. With --cl the cases constrain lift coefficient
instead, letting AVL solve for alpha.

Example:
  avlgen sweep --alpha-min -5 --alpha-max 15 --alpha-step 1 -o wing.run`,
	RunE: runSweep,
}

func init() {
	sweepCmd.Flags().StringVarP(&sweepOut, "out", "o", "wing.run", "Output run file")
	sweepCmd.Flags().Float64Var(&sweepAlphaMin, "alpha-min", 0, "Sweep start angle of attack, deg (default from config)")
	sweepCmd.Flags().Float64Var(&sweepAlphaMax, "alpha-max", 0, "Sweep end angle of attack, deg (default from config)")
	sweepCmd.Flags().Float64Var(&sweepStep, "alpha-step", 0, "Sweep step, deg (default from config)")
	sweepCmd.Flags().Float64Var(&sweepCL, "cl", 0, "Constrain CL to this value instead of alpha")
	sweepCmd.Flags().Float64Var(&sweepMach, "mach", 0, "Case Mach number (default from config)")
}

// sweepConfig merges config-file sweep defaults with command-line
// overrides.
func sweepConfig(cmd *cobra.Command) avl.SweepConfig {
	sc := avl.SweepConfig{
		AlphaMin:  cfg.Sweep.AlphaMin,
		AlphaMax:  cfg.Sweep.AlphaMax,
		AlphaStep: cfg.Sweep.AlphaStep,
		Mach:      cfg.Sweep.Mach,
	}
	if cmd.Flags().Changed("alpha-min") {
		sc.AlphaMin = sweepAlphaMin
	}
	if cmd.Flags().Changed("alpha-max") {
		sc.AlphaMax = sweepAlphaMax
	}
	if cmd.Flags().Changed("alpha-step") {
		sc.AlphaStep = sweepStep
	}
	if cmd.Flags().Changed("mach") {
		sc.Mach = sweepMach
	}
	if cmd.Flags().Changed("cl") {
		cl := sweepCL
		sc.CLTarget = &cl
	}
	return sc
}

func runSweep(cmd *cobra.Command, args []string) error {
	sc := sweepConfig(cmd)
	numCases, err := avl.WriteRunFile(sweepOut, sc)
	if err != nil {
		return err
	}

	logger.Info("run file written",
		zap.String("output", sweepOut),
		zap.Int("cases", numCases),
		zap.Float64("alpha_min", sc.AlphaMin),
		zap.Float64("alpha_max", sc.AlphaMax))
	return nil
}
