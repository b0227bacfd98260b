package platform

import (
	"fmt"
	"sync"

	"github.com/godbus/dbus/v5"
)

const (
	screenSaverName = "org.freedesktop.ScreenSaver"
	screenSaverPath = dbus.ObjectPath("/org/freedesktop/ScreenSaver")
)

// screenSaverLock inhibits idle blanking through the freedesktop ScreenSaver API.
type screenSaverLock struct {
	mu      sync.Mutex
	appName string
	conn    *dbus.Conn
	cookie  uint32
	held    bool
}

func newWakeLock(appName string) WakeLock {
	return &screenSaverLock{appName: appName}
}

func (lock *screenSaverLock) Acquire(reason string) error {
	lock.mu.Lock()
	defer lock.mu.Unlock()
	if lock.held {
		return nil
	}
	if lock.conn == nil {
		conn, err := dbus.ConnectSessionBus()
		if err != nil {
			return fmt.Errorf("wake lock: session bus: %w", err)
		}
		lock.conn = conn
	}

	var cookie uint32
	object := lock.conn.Object(screenSaverName, screenSaverPath)
	if err := object.Call(screenSaverName+".Inhibit", 0, lock.appName, reason).Store(&cookie); err != nil {
		return fmt.Errorf("wake lock: inhibit: %w", err)
	}
	lock.cookie = cookie
	lock.held = true
	return nil
}

func (lock *screenSaverLock) Release() error {
	lock.mu.Lock()
	defer lock.mu.Unlock()
	if !lock.held || lock.conn == nil {
		return nil
	}
	lock.held = false
	object := lock.conn.Object(screenSaverName, screenSaverPath)
	if call := object.Call(screenSaverName+".UnInhibit", 0, lock.cookie); call.Err != nil {
		return fmt.Errorf("wake lock: uninhibit: %w", call.Err)
	}
	return nil
}
