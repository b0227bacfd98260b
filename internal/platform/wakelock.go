package platform

// WakeLock keeps the screen from blanking while a workout runs.
type WakeLock interface {
	Acquire(reason string) error
	Release() error
}

// NewWakeLock returns a platform-specific wake lock for appName.
func NewWakeLock(appName string) WakeLock {
	return newWakeLock(appName)
}

type noopWakeLock struct{}

func (noopWakeLock) Acquire(string) error { return nil }

func (noopWakeLock) Release() error { return nil }
