package platform

import (
	"context"
	"fmt"

	"github.com/godbus/dbus/v5"
)

const (
	login1Interface = "org.freedesktop.login1.Manager"
	prepareForSleep = "PrepareForSleep"
)

func watchSleep(ctx context.Context, onWake func()) error {
	conn, err := dbus.ConnectSystemBus()
	if err != nil {
		return fmt.Errorf("%w: system bus: %v", ErrSleepUnsupported, err)
	}
	if err := conn.AddMatchSignal(
		dbus.WithMatchInterface(login1Interface),
		dbus.WithMatchMember(prepareForSleep),
	); err != nil {
		_ = conn.Close()
		return fmt.Errorf("watch sleep: add match: %w", err)
	}

	signals := make(chan *dbus.Signal, 4)
	conn.Signal(signals)

	go func() {
		defer func() {
			conn.RemoveSignal(signals)
			_ = conn.Close()
		}()
		for {
			select {
			case <-ctx.Done():
				return
			case signal, ok := <-signals:
				if !ok {
					return
				}
				if signal.Name != login1Interface+"."+prepareForSleep || len(signal.Body) == 0 {
					continue
				}
				// PrepareForSleep(true) precedes suspend, (false) follows resume.
				if sleeping, ok := signal.Body[0].(bool); ok && !sleeping {
					onWake()
				}
			}
		}
	}()
	return nil
}
