package platform

import (
	"context"
	"errors"
)

// ErrSleepUnsupported indicates the OS does not report sleep/resume.
var ErrSleepUnsupported = errors.New("sleep notifications unsupported")

// WatchSleep calls onWake each time the machine resumes from sleep, until
// ctx is cancelled. It returns ErrSleepUnsupported where no notifier exists.
func WatchSleep(ctx context.Context, onWake func()) error {
	if onWake == nil {
		return errors.New("watch sleep: wake handler is nil")
	}
	return watchSleep(ctx, onWake)
}
