package util

import (
	"math"
	"time"
)

// Round Method to round to 2 decimals
func Round(f float64) float64 {
	return math.Round(f*100) / 100
}

// DurationToMs converts a duration to milliseconds rounded to 2 decimals.
func DurationToMs(d time.Duration) float64 {
	return Round(float64(d) / float64(time.Millisecond))
}

// TimePtr returns a pointer to t, or nil for the zero time.
func TimePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// BoolPtr returns a pointer to the given bool
func BoolPtr(b bool) *bool {
	return &b
}

// PageCount returns the number of pages of size pageSize needed for total
// items. An empty result still has one page.
func PageCount(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 1
	}
	return (total + pageSize - 1) / pageSize
}

// Clamp bounds v to [lo, hi].
func Clamp[T ~int | ~int64 | ~uint64](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
