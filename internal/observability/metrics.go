package observability

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics collects per-run simulation metrics.
//
// The tool is not a long-running service, so metrics live on a caller-owned
// registry and are written out once with WriteTextfile instead of being
// scraped.
type Metrics struct {
	// RunCounter counts runs by outcome.
	// Labels: strategy (stay|switch), status (success|error|cancelled)
	RunCounter *prometheus.CounterVec

	// TrialCounter counts trials played.
	// Labels: strategy
	TrialCounter *prometheus.CounterVec

	// WinCounter counts winning trials.
	// Labels: strategy
	WinCounter *prometheus.CounterVec

	// WinProbability holds the latest estimate.
	// Labels: strategy, options
	WinProbability *prometheus.GaugeVec

	// RunDuration measures wall time of a run in seconds.
	// Labels: strategy
	// Buckets: 0.01s, 0.05s, 0.1s, 0.5s, 1s, 5s, 10s, 30s, 60s
	RunDuration *prometheus.HistogramVec
}

// NewMetrics creates all simulation metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RunCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "montyhall_runs_total",
				Help: "Total number of simulation runs by strategy and status",
			},
			[]string{"strategy", "status"},
		),

		TrialCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "montyhall_trials_total",
				Help: "Total number of trials played by strategy",
			},
			[]string{"strategy"},
		),

		WinCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "montyhall_wins_total",
				Help: "Total number of winning trials by strategy",
			},
			[]string{"strategy"},
		),

		WinProbability: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "montyhall_win_probability",
				Help: "Estimated win probability of the latest run",
			},
			[]string{"strategy", "options"},
		),

		RunDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "montyhall_run_duration_seconds",
				Help:    "Duration of simulation runs in seconds",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60},
			},
			[]string{"strategy"},
		),
	}
}

// RecordRun records a completed run.
//
// Example:
//
//	metrics.RecordRun("switch", 3, 100000, 66712, time.Since(start).Seconds())
func (m *Metrics) RecordRun(strategy string, options, trials, wins int, durationSeconds float64) {
	m.RunCounter.WithLabelValues(strategy, "success").Inc()
	m.TrialCounter.WithLabelValues(strategy).Add(float64(trials))
	m.WinCounter.WithLabelValues(strategy).Add(float64(wins))
	if trials > 0 {
		m.WinProbability.WithLabelValues(strategy, strconv.Itoa(options)).Set(float64(wins) / float64(trials))
	}
	m.RunDuration.WithLabelValues(strategy).Observe(durationSeconds)
}

// RecordFailure counts a run that ended without a result.
// status is typically "error" or "cancelled".
func (m *Metrics) RecordFailure(strategy, status string) {
	m.RunCounter.WithLabelValues(strategy, status).Inc()
}

// WriteTextfile writes everything gathered by g to path in the Prometheus
// text exposition format. The file is replaced atomically.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(path, g)
}
