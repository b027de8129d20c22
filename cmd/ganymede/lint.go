package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mercator-hq/ganymede/pkg/config"
)

var lintFlags struct {
	config string
}

var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Validate a configuration file",
	Long: `Validate a Ganymede configuration file.

The lint command loads the file, applies defaults and environment
overrides, and runs the same validation the logger runs at setup time,
so a configuration that lints clean will not fail at construction.

Examples:
  # Validate a config file
  ganymede lint --config ganymede.yaml`,
	RunE: lintConfig,
}

func init() {
	rootCmd.AddCommand(lintCmd)

	lintCmd.Flags().StringVarP(&lintFlags.config, "config", "c", "ganymede.yaml", "config file to validate")
}

func lintConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(lintFlags.config)
	if err != nil {
		return err
	}

	fmt.Printf("%s: OK\n", lintFlags.config)
	fmt.Printf("  log file:        %s\n", cfg.Log.File)
	fmt.Printf("  rotation budget: %d bytes\n", cfg.Log.MaxSizeBytes)
	fmt.Printf("  redacted fields: %v\n", cfg.Log.Redact)
	if len(cfg.Log.IncludePaths) > 0 {
		fmt.Printf("  include paths:   %v\n", cfg.Log.IncludePaths)
	}
	if len(cfg.Log.IgnorePaths) > 0 {
		fmt.Printf("  ignore paths:    %v\n", cfg.Log.IgnorePaths)
	}
	if cfg.Log.SweepSchedule != "" {
		fmt.Printf("  sweep schedule:  %s\n", cfg.Log.SweepSchedule)
	}
	return nil
}
