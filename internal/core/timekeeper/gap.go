package timekeeper

import "time"

// DefaultGapTolerance is the wall-clock lateness ignored as scheduling jitter.
const DefaultGapTolerance = 2 * time.Second

// GapDetector measures wall-clock time that passed without tick delivery,
// for example while the machine slept. Readings are compared on the wall
// clock because the monotonic clock can stop during suspend.
type GapDetector struct {
	tolerance time.Duration
	mark      time.Time
}

// NewGapDetector creates a detector that ignores gaps shorter than tolerance.
func NewGapDetector(tolerance time.Duration) *GapDetector {
	if tolerance <= 0 {
		tolerance = DefaultGapTolerance
	}
	return &GapDetector{tolerance: tolerance}
}

// Reset starts measuring from now. Time before the reset never counts.
func (detector *GapDetector) Reset(now time.Time) {
	detector.mark = now.Round(0)
}

// Observe records a delivery at now that accounts for expected of the time
// since the previous mark, and returns the whole seconds left unaccounted.
func (detector *GapDetector) Observe(now time.Time, expected time.Duration) int {
	now = now.Round(0)
	if detector.mark.IsZero() {
		detector.mark = now
		return 0
	}

	gap := now.Sub(detector.mark) - expected
	detector.mark = now
	if gap < detector.tolerance {
		return 0
	}
	return int(gap / time.Second)
}
