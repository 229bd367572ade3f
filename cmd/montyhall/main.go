// Package main provides the CLI entry point for montyhall, a Monte Carlo
// estimator for the generalized Monty Hall game.
//
// # Basic Usage
//
// Estimate the win probability of staying with three options:
//
//	montyhall --options 3
//
// Switch after the reveal, with ten options and a million trials on every CPU:
//
//	montyhall -o 10 -s -r 1000000 --workers 0
//
// Validate a configuration file:
//
//	montyhall config validate montyhall.yaml
//
// # Environment Variables
//
//   - MONTYHALL_CONFIG: Path to a configuration file (YAML, JSON or JSON5)
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// Build information - populated by ldflags during build.
//
//	go build -ldflags "-X main.version=v1.0.0 -X main.commit=$(git rev-parse HEAD) -X main.date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	rootCmd := buildRootCmd()
	if err := rootCmd.Execute(); err != nil {
		slog.Error("command execution failed", "error", err)
		os.Exit(1)
	}
}

// buildRootCmd creates the root command with all subcommands attached.
// The root command itself runs a simulation.
func buildRootCmd() *cobra.Command {
	rootCmd := buildSimulateCmd()
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)

	rootCmd.AddCommand(
		buildConfigCmd(),
	)
	return rootCmd
}
