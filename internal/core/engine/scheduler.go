package engine

import "time"

// Registration is a live periodic callback.
type Registration interface {
	Cancel()
}

// Scheduler delivers fn every interval on the engine's thread until cancelled.
type Scheduler interface {
	Every(interval time.Duration, fn func()) Registration
}

// Clock reports the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns time.Now.
func (SystemClock) Now() time.Time {
	return time.Now()
}
