package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"avlgen/internal/avl"
	"avlgen/internal/watch"
)

var watchView bool

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Regenerate the AVL geometry whenever the point exports change",
	Long: `Watches the leading-edge and trailing-edge point files and recompiles
the AVL geometry each time nTop rewrites them. With --view, running AVL
plot instances are relaunched after every regeneration.

Runs until interrupted.`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&generateLE, "le", "le_points.csv", "Leading-edge point CSV")
	watchCmd.Flags().StringVar(&generateTE, "te", "te_points.csv", "Trailing-edge point CSV")
	watchCmd.Flags().StringVarP(&generateOut, "out", "o", "wing.avl", "Output AVL geometry file")
	watchCmd.Flags().BoolVar(&watchView, "view", false, "Relaunch geometry and Trefftz plots on each change")
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initial compile so the watcher starts from a current geometry file.
	if err := regenerate(ctx, cmd); err != nil {
		return err
	}

	w, err := watch.New([]string{generateLE, generateTE}, func(paths []string) {
		logger.Info("point files changed", zap.Strings("paths", paths))
		if err := regenerate(ctx, cmd); err != nil {
			// Partial nTop writes produce transient parse failures; keep
			// watching and pick up the next settled change.
			logger.Error("regeneration failed", zap.Error(err))
		}
	}, logger)
	if err != nil {
		return err
	}

	w.Start(ctx)
	defer w.Stop()

	logger.Info("watching point files",
		zap.String("le", generateLE),
		zap.String("te", generateTE),
		zap.String("output", generateOut))

	<-ctx.Done()
	logger.Info("watch stopped")
	return nil
}

func regenerate(ctx context.Context, cmd *cobra.Command) error {
	model, err := compileModel(cmd)
	if err != nil {
		return err
	}
	if err := model.WriteFile(generateOut); err != nil {
		return err
	}
	logger.Info("geometry recompiled",
		zap.String("output", generateOut),
		zap.Int("sections", len(model.Sections)))

	if !watchView {
		return nil
	}
	r, err := newRunner()
	if err != nil {
		return err
	}
	return r.RunDual(ctx, generateOut,
		avl.GeometryRefreshScript(), avl.TrefftzRefreshScript())
}
