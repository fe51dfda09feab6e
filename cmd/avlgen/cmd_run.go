package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"avlgen/internal/avl"
	"avlgen/internal/runner"
)

var (
	runGeometry  string
	runRunFile   string
	runView      bool
	runStability bool
	runNPOut     string
)

var runAVLCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute the flight-envelope sweep in AVL",
	Long: `Writes the run file for the configured sweep, launches AVL on the
geometry, and executes every case. --stability additionally dumps the
stability derivatives for the first case and records the neutral point.
--view opens a second AVL instance with the geometry and Trefftz plots.

Sweep flags mirror the sweep command; unset flags fall back to the
configuration file.`,
	RunE: runAVL,
}

func init() {
	runAVLCmd.Flags().StringVar(&runGeometry, "geometry", "wing.avl", "AVL geometry file")
	runAVLCmd.Flags().StringVar(&runRunFile, "run-file", "wing.run", "Run file to write and execute")
	runAVLCmd.Flags().BoolVar(&runView, "view", false, "Also launch geometry and Trefftz plot instances")
	runAVLCmd.Flags().BoolVar(&runStability, "stability", false, "Dump stability derivatives and capture the neutral point")
	runAVLCmd.Flags().StringVar(&runNPOut, "np-out", "neutral_point.txt", "Neutral point summary file (with --stability)")

	runAVLCmd.Flags().Float64Var(&sweepAlphaMin, "alpha-min", 0, "Sweep start angle of attack, deg (default from config)")
	runAVLCmd.Flags().Float64Var(&sweepAlphaMax, "alpha-max", 0, "Sweep end angle of attack, deg (default from config)")
	runAVLCmd.Flags().Float64Var(&sweepStep, "alpha-step", 0, "Sweep step, deg (default from config)")
	runAVLCmd.Flags().Float64Var(&sweepCL, "cl", 0, "Constrain CL to this value instead of alpha")
	runAVLCmd.Flags().Float64Var(&sweepMach, "mach", 0, "Case Mach number (default from config)")
}

func newRunner() (*runner.Runner, error) {
	timeout, err := cfg.SolverTimeout()
	if err != nil {
		return nil, err
	}
	return &runner.Runner{
		Executable:  cfg.Solver.Executable,
		SearchPaths: cfg.Solver.SearchPaths,
		Timeout:     timeout,
		Log:         logger,
	}, nil
}

func runAVL(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(runGeometry); err != nil {
		return err
	}

	sc := sweepConfig(cmd)
	numCases, err := avl.WriteRunFile(runRunFile, sc)
	if err != nil {
		return err
	}
	logger.Info("run file written",
		zap.String("run_file", runRunFile), zap.Int("cases", numCases))

	r, err := newRunner()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := r.Run(ctx, runGeometry, avl.EnvelopeScript(runRunFile, numCases)); err != nil {
		return err
	}

	if runStability {
		if err := captureStability(ctx, r); err != nil {
			return err
		}
	}

	if runView {
		if err := r.RunDual(ctx, runGeometry,
			avl.GeometryRefreshScript(), avl.TrefftzRefreshScript()); err != nil {
			return err
		}
	}
	return nil
}

// captureStability runs a stability dump for the first case and extracts
// the neutral point from it.
func captureStability(ctx context.Context, r *runner.Runner) error {
	stabilityFile := filepath.Join(filepath.Dir(runNPOut), "stability.txt")
	// AVL refuses to overwrite its output files.
	_ = os.Remove(stabilityFile)

	if err := r.Run(ctx, runGeometry, avl.StabilityScript(runRunFile, stabilityFile)); err != nil {
		return err
	}

	capCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	xnp, err := runner.CaptureNeutralPoint(capCtx, stabilityFile, runNPOut, logger)
	if err != nil {
		return err
	}

	logger.Info("neutral point", zap.Float64("xnp", xnp), zap.String("summary", runNPOut))
	return nil
}
