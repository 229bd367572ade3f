package format

import (
	"time"

	"github.com/dustin/go-humanize"
)

// FormatCount renders n with thousands separators ("100,000").
func FormatCount(n int64) string {
	return humanize.Comma(n)
}

// FormatRate renders count/elapsed with an SI prefix, e.g. "12.5 Mtrials/s".
// A zero or negative elapsed time yields "n/a".
func FormatRate(count int64, elapsed time.Duration, unit string) string {
	if elapsed <= 0 {
		return "n/a"
	}
	perSecond := float64(count) / elapsed.Seconds()
	return humanize.SIWithDigits(perSecond, 1, unit+"/s")
}
