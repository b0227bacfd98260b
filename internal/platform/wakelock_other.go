//go:build !linux

package platform

func newWakeLock(string) WakeLock {
	return noopWakeLock{}
}
