//go:build !linux

package platform

import "context"

func watchSleep(context.Context, func()) error {
	return ErrSleepUnsupported
}
