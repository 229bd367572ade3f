// Package observability provides logging, metrics and tracing for simulation
// runs.
//
// # Overview
//
//  1. Logging - structured logs on log/slog with run correlation
//  2. Metrics - Prometheus counters, gauges and histograms on a private
//     registry, exported as a node_exporter style textfile
//  3. Tracing - OpenTelemetry spans exported over OTLP/gRPC when an endpoint
//     is configured, no-op otherwise
//
// # Logging
//
//	logger := observability.NewLogger(observability.LogConfig{
//	    Level:  "info",
//	    Format: "text",
//	    Output: os.Stderr,
//	})
//
//	ctx = observability.AddRunID(ctx, uuid.NewString())
//	ctx = observability.AddStrategy(ctx, "switch")
//	logger.Info(ctx, "simulation started", "options", 3, "trials", 100000)
//
// # Metrics
//
//	reg := prometheus.NewRegistry()
//	metrics := observability.NewMetrics(reg)
//	metrics.RecordRun("switch", 3, 100000, 66712, elapsed.Seconds())
//	_ = observability.WriteTextfile("montyhall.prom", reg)
//
// # Tracing
//
//	tracer, shutdown := observability.NewTracer(observability.TraceConfig{
//	    ServiceName: "montyhall",
//	    Endpoint:    "localhost:4317",
//	})
//	defer shutdown(context.Background())
//
//	ctx, span := tracer.TraceRun(ctx, "switch", 3, 100000)
//	defer span.End()
package observability
