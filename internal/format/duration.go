// Package format provides formatting utilities for run summaries and logs.
package format

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// DurationOptions configures FormatDuration output.
type DurationOptions struct {
	// Decimals is the number of decimal places for seconds (default: 2)
	Decimals int
	// Unit is the suffix to use for seconds: "s" or "seconds" (default: "s")
	Unit string
}

// FormatDuration formats d as "Xms" below one second and as seconds otherwise.
func FormatDuration(d time.Duration, opts *DurationOptions) string {
	ms := float64(d) / float64(time.Millisecond)
	if ms < 0 {
		ms = 0
	}
	if ms < 1000 {
		return fmt.Sprintf("%.0fms", ms)
	}

	decimals := 2
	unit := "s"
	if opts != nil {
		if opts.Decimals > 0 {
			decimals = opts.Decimals
		}
		if opts.Unit == "seconds" {
			unit = " seconds"
		}
	}

	formatted := fmt.Sprintf("%.*f", decimals, ms/1000)
	return trimTrailingZeros(formatted) + unit
}

// FormatProbability rounds p to four decimal places. Returns "unknown" for
// non-finite values.
func FormatProbability(p float64) string {
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return "unknown"
	}
	return fmt.Sprintf("%.4f", math.Round(p*1e4)/1e4)
}

// trimTrailingZeros removes trailing zeros after the decimal point.
// e.g., "1.50" -> "1.5", "2.00" -> "2"
func trimTrailingZeros(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
