package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/haasonsaas/montyhall/internal/config"
	"github.com/haasonsaas/montyhall/internal/montyhall"
)

var summaryPattern = regexp.MustCompile(`^\[SWITCH=(true|false)\] Total payoff was (\d+) \(P\[WIN\]=(\d\.\d{4}) & N=(\d+)\)$`)

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv(config.EnvConfigPath, "")
	cmd := buildRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func parseSummary(t *testing.T, out string) (bool, int, float64, int) {
	t.Helper()
	m := summaryPattern.FindStringSubmatch(strings.TrimSpace(out))
	if m == nil {
		t.Fatalf("unexpected summary line: %q", out)
	}
	wins, _ := strconv.Atoi(m[2])
	p, _ := strconv.ParseFloat(m[3], 64)
	n, _ := strconv.Atoi(m[4])
	return m[1] == "true", wins, p, n
}

func TestBuildRootCmdIncludesSubcommands(t *testing.T) {
	cmd := buildRootCmd()
	names := map[string]bool{}
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}
	if !names["config"] {
		t.Fatalf("expected subcommand %q to be registered", "config")
	}
	for _, flag := range []string{"options", "switch", "runs", "seed", "workers", "config"} {
		if cmd.Flags().Lookup(flag) == nil {
			t.Errorf("expected flag %q", flag)
		}
	}
	if got := cmd.Flags().Lookup("runs").DefValue; got != "100000" {
		t.Errorf("runs default = %s, want 100000", got)
	}
	for short, long := range map[string]string{"o": "options", "s": "switch", "r": "runs"} {
		if f := cmd.Flags().ShorthandLookup(short); f == nil || f.Name != long {
			t.Errorf("expected -%s to map to --%s", short, long)
		}
	}
}

func TestSimulatePrintsSummary(t *testing.T) {
	stdout, _, err := execute(t, "-o", "3", "-s", "-r", "100000", "--seed", "11")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	switched, wins, p, n := parseSummary(t, stdout)
	if !switched {
		t.Error("expected SWITCH=true")
	}
	if n != 100000 {
		t.Errorf("N = %d, want 100000", n)
	}
	if wins < 0 || wins > n {
		t.Errorf("wins %d outside [0, %d]", wins, n)
	}
	if p < 0.657 || p > 0.677 {
		t.Errorf("P[WIN] = %.4f, want ~0.667", p)
	}
}

func TestSimulateStayDefaultRuns(t *testing.T) {
	stdout, _, err := execute(t, "--options", "10", "--seed", "3", "--workers", "2")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	switched, _, p, n := parseSummary(t, stdout)
	if switched {
		t.Error("expected SWITCH=false")
	}
	if n != montyhall.DefaultTrials {
		t.Errorf("N = %d, want %d", n, montyhall.DefaultTrials)
	}
	if p < 0.09 || p > 0.11 {
		t.Errorf("P[WIN] = %.4f, want ~0.10", p)
	}
}

func TestSimulateSeedIsDeterministic(t *testing.T) {
	first, _, err := execute(t, "-o", "5", "-s", "-r", "20000", "--seed", "77", "-w", "3")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	second, _, err := execute(t, "-o", "5", "-s", "-r", "20000", "--seed", "77", "-w", "3")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if first != second {
		t.Fatalf("same seed produced %q and %q", first, second)
	}
}

func TestSimulateRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want error
	}{
		{"missing options", []string{"-r", "10"}, errOptionsRequired},
		{"too few options", []string{"-o", "2"}, montyhall.ErrTooFewOptions},
		{"zero runs", []string{"-o", "3", "-r", "0"}, montyhall.ErrInvalidTrials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := execute(t, tt.args...)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Execute() error = %v, want %v", err, tt.want)
			}
			if stdout != "" {
				t.Errorf("expected no summary, got %q", stdout)
			}
		})
	}
}

func TestSimulateUsesConfigFile(t *testing.T) {
	dir := t.TempDir()
	metricsPath := filepath.Join(dir, "montyhall.prom")
	configPath := filepath.Join(dir, "montyhall.yaml")
	contents := "simulation:\n  options: 4\n  switch: true\n  runs: 4000\n  seed: 9\nmetrics:\n  textfile: " + metricsPath + "\n"
	if err := os.WriteFile(configPath, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	stdout, _, err := execute(t, "--config", configPath, "--runs", "3000")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	switched, _, _, n := parseSummary(t, stdout)
	if !switched {
		t.Error("expected switch from config")
	}
	if n != 3000 {
		t.Errorf("N = %d, want flag override 3000", n)
	}

	data, err := os.ReadFile(metricsPath)
	if err != nil {
		t.Fatalf("metrics textfile not written: %v", err)
	}
	if !strings.Contains(string(data), `montyhall_trials_total{strategy="switch"} 3000`) {
		t.Errorf("unexpected metrics:\n%s", data)
	}
}

func TestSimulateLogsToStderr(t *testing.T) {
	stdout, stderr, err := execute(t, "-o", "3", "-r", "100", "--seed", "1", "--log-format", "json")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if strings.Count(strings.TrimSpace(stdout), "\n") != 0 {
		t.Errorf("stdout should hold one line, got %q", stdout)
	}
	if !strings.Contains(stderr, `"msg":"simulation finished"`) || !strings.Contains(stderr, `"run_id"`) {
		t.Errorf("expected structured run log on stderr, got %q", stderr)
	}
}

func TestFormatSummary(t *testing.T) {
	got := formatSummary(montyhall.Result{Options: 3, Switch: true, Trials: 100000, Wins: 66712})
	want := "[SWITCH=true] Total payoff was 66712 (P[WIN]=0.6671 & N=100000)"
	if got != want {
		t.Fatalf("formatSummary() = %q, want %q", got, want)
	}
}

func TestConfigValidateAndSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "montyhall.yaml")
	if err := os.WriteFile(path, []byte("simulation:\n  runs: 10\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	stdout, _, err := execute(t, "config", "validate", path)
	if err != nil {
		t.Fatalf("config validate error = %v", err)
	}
	if !strings.Contains(stdout, "ok (version 1)") || !strings.Contains(stdout, "simulation.options is not set") {
		t.Errorf("unexpected validate output: %q", stdout)
	}

	stdout, _, err = execute(t, "config", "schema")
	if err != nil {
		t.Fatalf("config schema error = %v", err)
	}
	if !strings.Contains(stdout, `"simulation"`) {
		t.Errorf("schema missing simulation section: %s", stdout)
	}
}
