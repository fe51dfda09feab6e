package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"avlgen/internal/config"
)

var initForce bool

var initConfigCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Long: `Writes the default configuration to the --config path (avlgen.yaml by
default) so individual values can be edited rather than supplied as
flags on every invocation.`,
	RunE: runInitConfig,
}

func init() {
	initConfigCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing configuration file")
}

func runInitConfig(cmd *cobra.Command, args []string) error {
	if !initForce {
		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", configPath)
		}
	}
	if err := config.DefaultConfig().Save(configPath); err != nil {
		return err
	}
	fmt.Printf("Wrote default configuration to %s\n", configPath)
	return nil
}
