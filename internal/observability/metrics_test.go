package observability

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewMetricsRegistersOnGivenRegistry(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := NewMetrics(registry)
	metrics.RecordRun("stay", 3, 10, 3, 0.02)

	families, err := registry.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	names := map[string]bool{}
	for _, mf := range families {
		names[mf.GetName()] = true
	}
	for _, name := range []string{
		"montyhall_runs_total",
		"montyhall_trials_total",
		"montyhall_wins_total",
		"montyhall_win_probability",
		"montyhall_run_duration_seconds",
	} {
		if !names[name] {
			t.Errorf("metric %q not registered", name)
		}
	}
}

func TestRecordRun(t *testing.T) {
	metrics := NewMetrics(prometheus.NewRegistry())
	metrics.RecordRun("switch", 3, 100000, 66712, 0.4)
	metrics.RecordRun("switch", 3, 100000, 66500, 0.3)

	if got := testutil.ToFloat64(metrics.TrialCounter.WithLabelValues("switch")); got != 200000 {
		t.Errorf("trials = %v, want 200000", got)
	}
	if got := testutil.ToFloat64(metrics.WinCounter.WithLabelValues("switch")); got != 133212 {
		t.Errorf("wins = %v, want 133212", got)
	}
	if got := testutil.ToFloat64(metrics.WinProbability.WithLabelValues("switch", "3")); got != 0.665 {
		t.Errorf("win probability = %v, want 0.665", got)
	}

	expected := `
		# HELP montyhall_runs_total Total number of simulation runs by strategy and status
		# TYPE montyhall_runs_total counter
		montyhall_runs_total{status="success",strategy="switch"} 2
	`
	if err := testutil.CollectAndCompare(metrics.RunCounter, strings.NewReader(expected)); err != nil {
		t.Errorf("Unexpected metric value: %v", err)
	}
	if count := testutil.CollectAndCount(metrics.RunDuration); count != 1 {
		t.Errorf("Expected 1 duration series, got %d", count)
	}
}

func TestRecordFailure(t *testing.T) {
	metrics := NewMetrics(prometheus.NewRegistry())
	metrics.RecordFailure("stay", "cancelled")
	metrics.RecordFailure("stay", "error")
	metrics.RecordFailure("stay", "error")

	if got := testutil.ToFloat64(metrics.RunCounter.WithLabelValues("stay", "error")); got != 2 {
		t.Errorf("error runs = %v, want 2", got)
	}
	if got := testutil.ToFloat64(metrics.RunCounter.WithLabelValues("stay", "cancelled")); got != 1 {
		t.Errorf("cancelled runs = %v, want 1", got)
	}
}

func TestWriteTextfile(t *testing.T) {
	registry := prometheus.NewRegistry()
	NewMetrics(registry).RecordRun("stay", 10, 1000, 100, 0.01)

	path := filepath.Join(t.TempDir(), "montyhall.prom")
	if err := WriteTextfile(path, registry); err != nil {
		t.Fatalf("WriteTextfile() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read textfile: %v", err)
	}
	if !strings.Contains(string(data), `montyhall_win_probability{options="10",strategy="stay"} 0.1`) {
		t.Errorf("textfile missing win probability:\n%s", data)
	}
}
