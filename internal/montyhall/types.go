package montyhall

import (
	"errors"
	"fmt"
)

// MinOptions is the smallest option count for which the host can always
// reveal an option and a switching player always has somewhere to go.
const MinOptions = 3

// DefaultTrials is the trial count used when none is configured.
const DefaultTrials = 100000

var (
	// ErrTooFewOptions is returned when the option count is below MinOptions.
	ErrTooFewOptions = errors.New("option count must be at least 3")

	// ErrInvalidTrials is returned when the trial count is not positive.
	ErrInvalidTrials = errors.New("trial count must be positive")
)

// ConfigError describes a rejected simulation parameter.
type ConfigError struct {
	Field string
	Value int
	Err   error
}

func (e *ConfigError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("invalid %s %d: %v", e.Field, e.Value, e.Err)
}

func (e *ConfigError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Strategy is the player's decision after the host reveals an option.
type Strategy int

const (
	Stay Strategy = iota
	Switch
)

// StrategyFromSwitch maps the CLI switch flag to a Strategy.
func StrategyFromSwitch(switchStrategy bool) Strategy {
	if switchStrategy {
		return Switch
	}
	return Stay
}

func (s Strategy) String() string {
	switch s {
	case Stay:
		return "stay"
	case Switch:
		return "switch"
	default:
		return fmt.Sprintf("strategy(%d)", int(s))
	}
}

// Config holds the parameters of one simulation run.
type Config struct {
	// Options is the number of distinct options per trial.
	Options int
	// Switch selects the switch strategy instead of stay.
	Switch bool
	// Trials is the number of independent games to play.
	Trials int
}

// Strategy returns the strategy selected by the Switch flag.
func (c Config) Strategy() Strategy {
	return StrategyFromSwitch(c.Switch)
}

// Validate rejects parameters for which the game is undefined. It is called
// before any trial runs.
func (c Config) Validate() error {
	if c.Options < MinOptions {
		return &ConfigError{Field: "option count", Value: c.Options, Err: ErrTooFewOptions}
	}
	if c.Trials <= 0 {
		return &ConfigError{Field: "trial count", Value: c.Trials, Err: ErrInvalidTrials}
	}
	return nil
}

// Trial is the outcome of a single game.
type Trial struct {
	Chosen   int
	Correct  int
	Revealed int
	Final    int
	Won      bool
}

// Result aggregates the wins of one run.
type Result struct {
	Options int
	Switch  bool
	Trials  int
	Wins    int
}

// WinProbability is the empirical estimate Wins / Trials.
func (r Result) WinProbability() float64 {
	if r.Trials == 0 {
		return 0
	}
	return float64(r.Wins) / float64(r.Trials)
}

// Strategy returns the strategy the result was produced with.
func (r Result) Strategy() Strategy {
	return StrategyFromSwitch(r.Switch)
}
