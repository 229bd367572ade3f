package main

import (
	"os"
	"time"

	"github.com/haasonsaas/montyhall/internal/config"
	"github.com/haasonsaas/montyhall/internal/montyhall"
	"github.com/spf13/cobra"
)

// =============================================================================
// Simulate (root) Command
// =============================================================================

// simulateFlags holds the root command's flag values. Values only override
// the config file when the flag was set explicitly.
type simulateFlags struct {
	configPath       string
	options          int
	switchStrategy   bool
	runs             int
	seed             uint64
	workers          int
	progressInterval time.Duration
	logLevel         string
	logFormat        string
	metricsFile      string
	traceEndpoint    string
}

// buildSimulateCmd creates the root "montyhall" command that runs one simulation.
func buildSimulateCmd() *cobra.Command {
	var flags simulateFlags

	cmd := &cobra.Command{
		Use:   "montyhall",
		Short: "Estimate Monty Hall win probabilities by simulation",
		Long: `Plays the generalized Monty Hall game many times and reports how often
the chosen strategy wins.

The player always picks the first option, the host reveals one option that is
neither the pick nor the correct one, and the player then stays or switches
to one of the remaining options.`,
		Args: cobra.NoArgs,
		// SilenceUsage prevents printing usage on every error.
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulate(cmd, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.configPath, "config", "c", os.Getenv(config.EnvConfigPath),
		"Path to configuration file (or set "+config.EnvConfigPath+")")
	cmd.Flags().IntVarP(&flags.options, "options", "o", 0, "Number of options per game (required unless set in config)")
	cmd.Flags().BoolVarP(&flags.switchStrategy, "switch", "s", false, "Switch after the host reveals an option")
	cmd.Flags().IntVarP(&flags.runs, "runs", "r", montyhall.DefaultTrials, "Number of games to play")
	cmd.Flags().Uint64Var(&flags.seed, "seed", 0, "Random seed (0 derives one from the clock)")
	cmd.Flags().IntVarP(&flags.workers, "workers", "w", 1, "Parallel workers (0 uses every CPU)")
	cmd.Flags().DurationVar(&flags.progressInterval, "progress", 0, "Log progress at this interval (e.g. 1s)")
	cmd.Flags().StringVar(&flags.logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	cmd.Flags().StringVar(&flags.logFormat, "log-format", "text", "Log format: text or json")
	cmd.Flags().StringVar(&flags.metricsFile, "metrics-file", "", "Write Prometheus metrics to this file after the run")
	cmd.Flags().StringVar(&flags.traceEndpoint, "otel-endpoint", "", "OTLP/gRPC endpoint for traces")

	return cmd
}

// =============================================================================
// Config Command
// =============================================================================

// buildConfigCmd creates the "config" command group.
func buildConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and validate configuration files",
	}
	cmd.AddCommand(
		buildConfigValidateCmd(),
		buildConfigSchemaCmd(),
	)
	return cmd
}

func buildConfigValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <path>",
		Short: "Load a configuration file and report problems",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigValidate(cmd, args[0])
		},
	}
}

func buildConfigSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of the configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigSchema(cmd)
		},
	}
}
