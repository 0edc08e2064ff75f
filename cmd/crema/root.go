package main

import (
	"fmt"
	"os"

	"github.com/aretw0/crema/internal/cli"
	"github.com/aretw0/crema/internal/config"
	"github.com/aretw0/crema/pkg/domain"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "crema",
	Short: "crema translates espresso profiles from stages to phases",
	Long: `crema converts Meticulous stage-based espresso profiles into Gaggimate
phase-based profiles, and audits translations against their source.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML or TOML config file")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging on stderr")
}

// loadApp reads the config and applies the --mode flag when the command has one.
// Mode precedence: flag, environment, file, default.
func loadApp(cmd *cobra.Command, service bool) (*cli.App, error) {
	path, _ := cmd.Flags().GetString("config")
	debug, _ := cmd.Flags().GetBool("debug")

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if f := cmd.Flags().Lookup("mode"); f != nil && f.Changed {
		mode, err := domain.ParseTransitionMode(f.Value.String())
		if err != nil {
			return nil, err
		}
		cfg.Mode = string(mode)
	}
	return cli.NewApp(cfg, cli.AppOptions{Debug: debug, Service: service})
}

func addModeFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("mode", "m", "", "Transition mode: smart, preserve, linear or instant")
}
