// Command avlgen compiles nTop point-cloud exports into AVL vortex-lattice
// input files and drives the AVL solver over them.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"avlgen/internal/config"
)

var (
	// Global flags
	verbose    bool
	configPath string

	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "avlgen",
	Short: "avlgen - nTop point cloud to AVL geometry compiler",
	Long: `avlgen converts wing point-cloud exports into AVL vortex-lattice input.

It reads leading-edge and trailing-edge coordinate CSV files, pairs them
row-by-row into spanwise sections, derives the reference quantities
(Sref, Cref, Bref), and writes an AVL geometry file. It can also generate
flight-envelope run cases and drive the AVL executable directly.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		// Initialize logger
		logConfig := zap.NewProductionConfig()
		if cfg.Logging.Format == "console" {
			logConfig.Encoding = "console"
			logConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		}
		if level, err := zapcore.ParseLevel(cfg.Logging.Level); err == nil {
			logConfig.Level = zap.NewAtomicLevelAt(level)
		}
		if verbose {
			logConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err = logConfig.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "avlgen.yaml", "Path to the configuration file")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(sweepCmd)
	rootCmd.AddCommand(runAVLCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(initConfigCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
