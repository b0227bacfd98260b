package timekeeper

import "time"

// Ticker is the periodic source behind one engine registration.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// Clock creates tickers and reports the time.
type Clock interface {
	Now() time.Time
	NewTicker(interval time.Duration) Ticker
}

type systemClock struct{}

type systemTicker struct {
	ticker *time.Ticker
}

// SystemClock returns the real clock.
func SystemClock() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now()
}

func (systemClock) NewTicker(interval time.Duration) Ticker {
	return &systemTicker{ticker: time.NewTicker(interval)}
}

func (ticker *systemTicker) C() <-chan time.Time {
	return ticker.ticker.C
}

func (ticker *systemTicker) Stop() {
	ticker.ticker.Stop()
}
