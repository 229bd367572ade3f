package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/haasonsaas/montyhall/internal/config"
	"github.com/haasonsaas/montyhall/internal/format"
	"github.com/haasonsaas/montyhall/internal/montyhall"
	"github.com/haasonsaas/montyhall/internal/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
)

// errOptionsRequired mirrors cobra's wording for a missing required flag; the
// option count may also come from the config file, so the flag is not marked
// required.
var errOptionsRequired = errors.New(`required flag(s) "options" not set`)

// =============================================================================
// Simulate Command Handler
// =============================================================================

// runSimulate resolves configuration, runs the simulation and prints the
// summary line.
func runSimulate(cmd *cobra.Command, flags simulateFlags) error {
	cfg, err := resolveConfig(cmd, flags)
	if err != nil {
		return err
	}
	params := cfg.SimulationParams()

	logger := observability.NewLogger(observability.LogConfig{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cmd.ErrOrStderr(),
	})
	slog.SetDefault(logger.Slog())

	tracer, shutdown := observability.NewTracer(observability.TraceConfig{
		ServiceName:    "montyhall",
		ServiceVersion: version,
		Endpoint:       cfg.Tracing.Endpoint,
		SamplingRate:   cfg.Tracing.SamplingRate,
		EnableInsecure: cfg.Tracing.Insecure,
	})
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			slog.Warn("trace shutdown failed", "error", err)
		}
	}()

	registry := prometheus.NewRegistry()
	metrics := observability.NewMetrics(registry)

	strategy := params.Strategy().String()
	runID := uuid.NewString()
	ctx := observability.AddRunID(cmd.Context(), runID)
	ctx = observability.AddStrategy(ctx, strategy)

	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	ctx, span := tracer.TraceRun(ctx, strategy, params.Options, params.Trials)
	defer span.End()
	span.SetAttributes(attribute.String("montyhall.run_id", runID))

	seed := cfg.Simulation.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	logger.Info(ctx, "simulation started",
		"options", params.Options,
		"trials", format.FormatCount(int64(params.Trials)),
		"workers", cfg.Simulation.Workers,
		"seed", seed,
	)

	start := time.Now()
	res, err := montyhall.RunParallel(ctx, params, montyhall.ParallelOptions{
		Workers:          cfg.Simulation.Workers,
		Seed:             seed,
		ProgressInterval: cfg.Simulation.ProgressInterval,
		OnProgress: func(done, total int64) {
			logger.Info(ctx, "simulation progress",
				"done", format.FormatCount(done),
				"total", format.FormatCount(total),
				"rate", format.FormatRate(done, time.Since(start), "trials"),
			)
		},
	})
	elapsed := time.Since(start)
	if err != nil {
		status := "error"
		if errors.Is(err, context.Canceled) {
			status = "cancelled"
		}
		metrics.RecordFailure(strategy, status)
		tracer.RecordError(span, err)
		writeMetrics(ctx, logger, cfg.Metrics.Textfile, registry)
		return fmt.Errorf("simulation %s: %w", status, err)
	}

	metrics.RecordRun(strategy, res.Options, res.Trials, res.Wins, elapsed.Seconds())
	span.SetAttributes(
		attribute.Int("montyhall.wins", res.Wins),
		attribute.Float64("montyhall.win_probability", res.WinProbability()),
	)

	fmt.Fprintln(cmd.OutOrStdout(), formatSummary(res))

	logger.Info(ctx, "simulation finished",
		"wins", res.Wins,
		"win_probability", res.WinProbability(),
		"elapsed", format.FormatDuration(elapsed, nil),
		"rate", format.FormatRate(int64(res.Trials), elapsed, "trials"),
		"trace_id", observability.GetTraceID(ctx),
	)

	writeMetrics(ctx, logger, cfg.Metrics.Textfile, registry)
	return nil
}

// formatSummary renders the single result line printed on stdout.
func formatSummary(res montyhall.Result) string {
	return fmt.Sprintf("[SWITCH=%t] Total payoff was %d (P[WIN]=%s & N=%d)",
		res.Switch, res.Wins, format.FormatProbability(res.WinProbability()), res.Trials)
}

// writeMetrics writes the textfile when a path is configured. Failures are
// logged and do not fail the run.
func writeMetrics(ctx context.Context, logger *observability.Logger, path string, registry *prometheus.Registry) {
	if path == "" {
		return
	}
	if err := observability.WriteTextfile(path, registry); err != nil {
		logger.Warn(ctx, "failed to write metrics textfile", "path", path, "error", err)
		return
	}
	logger.Debug(ctx, "metrics written", "path", path)
}

// resolveConfig loads the config file, if any, and applies explicitly set flags
// on top of it.
func resolveConfig(cmd *cobra.Command, flags simulateFlags) (*config.Config, error) {
	cfg := config.Default()
	if flags.configPath != "" {
		loaded, err := config.Load(flags.configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	set := cmd.Flags().Changed
	if set("options") {
		cfg.Simulation.Options = flags.options
	}
	if set("switch") {
		cfg.Simulation.Switch = flags.switchStrategy
	}
	if set("runs") {
		cfg.Simulation.Runs = flags.runs
	}
	if set("seed") {
		cfg.Simulation.Seed = flags.seed
	}
	if set("workers") {
		cfg.Simulation.Workers = flags.workers
	}
	if set("progress") {
		cfg.Simulation.ProgressInterval = flags.progressInterval
	}
	if set("log-level") {
		cfg.Logging.Level = flags.logLevel
	}
	if set("log-format") {
		cfg.Logging.Format = flags.logFormat
	}
	if set("metrics-file") {
		cfg.Metrics.Textfile = flags.metricsFile
	}
	if set("otel-endpoint") {
		cfg.Tracing.Endpoint = flags.traceEndpoint
	}

	if cfg.Simulation.Options == 0 {
		return nil, errOptionsRequired
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// =============================================================================
// Config Command Handlers
// =============================================================================

func runConfigValidate(cmd *cobra.Command, path string) error {
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: ok (version %d)\n", path, cfg.Version)
	if cfg.Simulation.Options == 0 {
		fmt.Fprintln(out, "note: simulation.options is not set; pass --options when running")
	}
	return nil
}

func runConfigSchema(cmd *cobra.Command) error {
	schema, err := config.JSONSchema()
	if err != nil {
		return fmt.Errorf("failed to build schema: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(schema))
	return err
}
