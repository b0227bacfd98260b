package tray

import (
	"testing"

	"holdfast/internal/core/display"

	"fyne.io/fyne/v2"
)

type fakeHost struct {
	menu  *fyne.Menu
	menus int
	icon  fyne.Resource
	icons int
}

func (host *fakeHost) SetSystemTrayMenu(menu *fyne.Menu) {
	host.menu = menu
	host.menus++
}

func (host *fakeHost) SetSystemTrayIcon(icon fyne.Resource) {
	host.icon = icon
	host.icons++
}

func testIcons() Icons {
	return Icons{
		Idle:   fyne.NewStaticResource("idle.svg", []byte("idle")),
		Active: fyne.NewStaticResource("active.svg", []byte("active")),
		Paused: fyne.NewStaticResource("paused.svg", []byte("paused")),
	}
}

func TestTrayInitialMenu(t *testing.T) {
	host := &fakeHost{}
	icons := testIcons()
	manager := New(host, icons, Callbacks{})
	if host.menu != manager.Menu() || host.icon != icons.Idle {
		t.Fatalf("tray not installed")
	}
	if manager.startItem.Disabled || !manager.pauseItem.Disabled || !manager.skipItem.Disabled {
		t.Fatalf("initial items wrong")
	}
}

func TestTrayUpdateFollowsScreen(t *testing.T) {
	host := &fakeHost{}
	icons := testIcons()
	manager := New(host, icons, Callbacks{})

	manager.Update(display.Screen{Kind: display.ScreenRest, Title: "Rest", Timer: "0:42", PauseLabel: "Pause", CanSkip: true})
	if manager.statusItem.Label != "Status: Rest 0:42" {
		t.Fatalf("status = %q", manager.statusItem.Label)
	}
	if !manager.startItem.Disabled || manager.pauseItem.Disabled || manager.skipItem.Disabled {
		t.Fatalf("rest items wrong")
	}
	if host.icon != icons.Active {
		t.Fatalf("icon should be active")
	}

	manager.Update(display.Screen{Kind: display.ScreenExercise, Title: "Dip Hold", Timer: "0:10", Paused: true, PauseLabel: "Resume"})
	if manager.pauseItem.Label != "Resume" || !manager.skipItem.Disabled || host.icon != icons.Paused {
		t.Fatalf("paused items wrong")
	}

	iconChanges := host.icons
	manager.Update(display.Screen{Kind: display.ScreenExercise, Title: "Dip Hold", Timer: "0:09", Paused: true, PauseLabel: "Resume"})
	if host.icons != iconChanges {
		t.Fatalf("icon reset without change")
	}
}

func TestTrayCallbacks(t *testing.T) {
	host := &fakeHost{}
	started, skipped := 0, 0
	manager := New(host, testIcons(), Callbacks{
		OnStart:    func() { started++ },
		OnSkipRest: func() { skipped++ },
	})
	manager.startItem.Action()
	manager.skipItem.Action()
	manager.restartItem.Action()
	if started != 1 || skipped != 1 {
		t.Fatalf("started = %d, skipped = %d", started, skipped)
	}
}

func TestTrayReinstallsMenuOnlyOnItemChange(t *testing.T) {
	host := &fakeHost{}
	manager := New(host, testIcons(), Callbacks{})
	if host.menus != 1 {
		t.Fatalf("menus = %d after New", host.menus)
	}

	running := display.Screen{Kind: display.ScreenExercise, Title: "Dead Hang", Timer: "0:59", PauseLabel: "Pause"}
	manager.Update(running)
	if host.menus != 2 {
		t.Fatalf("starting should reinstall the menu, menus = %d", host.menus)
	}

	for _, timer := range []string{"0:58", "0:57", "0:56"} {
		running.Timer = timer
		manager.Update(running)
	}
	if host.menus != 2 {
		t.Fatalf("countdown reinstalled the menu, menus = %d", host.menus)
	}
	if manager.statusItem.Label != "Status: Dead Hang 0:56" {
		t.Fatalf("status = %q", manager.statusItem.Label)
	}

	running.Paused = true
	running.PauseLabel = "Resume"
	manager.Update(running)
	if host.menus != 3 {
		t.Fatalf("pause label change should reinstall, menus = %d", host.menus)
	}
}
