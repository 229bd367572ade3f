package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/haasonsaas/montyhall/internal/montyhall"
)

// EnvConfigPath names the environment variable holding the default config path.
const EnvConfigPath = "MONTYHALL_CONFIG"

// Config is the main configuration structure for montyhall.
type Config struct {
	Version    int              `yaml:"version"`
	Simulation SimulationConfig `yaml:"simulation"`
	Logging    LoggingConfig    `yaml:"logging"`
	Metrics    MetricsConfig    `yaml:"metrics"`
	Tracing    TracingConfig    `yaml:"tracing"`
}

// SimulationConfig holds the parameters of a run. Command-line flags that are
// set explicitly take precedence over these values.
type SimulationConfig struct {
	// Options is the option count. Zero means it must be given on the command line.
	Options int    `yaml:"options"`
	Switch  bool   `yaml:"switch"`
	Runs    int    `yaml:"runs"`
	Seed    uint64 `yaml:"seed"`

	// Workers is the number of parallel workers; 0 uses every CPU.
	Workers          int           `yaml:"workers"`
	ProgressInterval time.Duration `yaml:"progress_interval"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type MetricsConfig struct {
	// Textfile is where Prometheus metrics are written after a run. Empty disables it.
	Textfile string `yaml:"textfile"`
}

type TracingConfig struct {
	Endpoint     string  `yaml:"endpoint"`
	Insecure     bool    `yaml:"insecure"`
	SamplingRate float64 `yaml:"sampling_rate"`
}

// Default returns the configuration used when no file is given. Files are
// decoded on top of it, so omitted keys keep these values.
func Default() *Config {
	return &Config{
		Version: CurrentVersion,
		Simulation: SimulationConfig{
			Runs:    montyhall.DefaultTrials,
			Workers: 1,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Tracing: TracingConfig{
			SamplingRate: 1.0,
		},
	}
}

// SimulationParams converts the simulation section into simulator parameters.
func (c *Config) SimulationParams() montyhall.Config {
	return montyhall.Config{
		Options: c.Simulation.Options,
		Switch:  c.Simulation.Switch,
		Trials:  c.Simulation.Runs,
	}
}

// Validate reports every problem in the configuration at once.
func (c *Config) Validate() error {
	var errs []error
	if err := ValidateVersion(c.Version); err != nil {
		errs = append(errs, err)
	}
	if c.Simulation.Options != 0 && c.Simulation.Options < montyhall.MinOptions {
		errs = append(errs, fmt.Errorf("simulation.options: %w", montyhall.ErrTooFewOptions))
	}
	if c.Simulation.Runs <= 0 {
		errs = append(errs, fmt.Errorf("simulation.runs: %w", montyhall.ErrInvalidTrials))
	}
	if c.Simulation.Workers < 0 {
		errs = append(errs, errors.New("simulation.workers must be >= 0"))
	}
	if c.Simulation.ProgressInterval < 0 {
		errs = append(errs, errors.New("simulation.progress_interval must be >= 0"))
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level))
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("logging.format %q is not one of json, text", c.Logging.Format))
	}
	if c.Tracing.SamplingRate < 0 || c.Tracing.SamplingRate > 1 {
		errs = append(errs, errors.New("tracing.sampling_rate must be within [0, 1]"))
	}
	return errors.Join(errs...)
}
