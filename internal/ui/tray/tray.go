package tray

import (
	"fmt"

	"holdfast/internal/core/display"

	"fyne.io/fyne/v2"
)

// Host is the part of desktop.App the tray needs.
type Host interface {
	SetSystemTrayMenu(menu *fyne.Menu)
	SetSystemTrayIcon(icon fyne.Resource)
}

// Icons are shown for idle, running and paused workouts.
type Icons struct {
	Idle   fyne.Resource
	Active fyne.Resource
	Paused fyne.Resource
}

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow        func()
	OnStart       func()
	OnTogglePause func()
	OnSkipRest    func()
	OnRestart     func()
	OnPreferences func()
	OnQuit        func()
}

// Manager handles system tray state.
type Manager struct {
	host        Host
	icons       Icons
	callbacks   Callbacks
	menu        *fyne.Menu
	statusItem  *fyne.MenuItem
	startItem   *fyne.MenuItem
	pauseItem   *fyne.MenuItem
	skipItem    *fyne.MenuItem
	restartItem *fyne.MenuItem
	icon        fyne.Resource
	installed   itemState
}

// itemState is the part of the menu that needs a reinstall when it changes.
type itemState struct {
	startDisabled   bool
	pauseDisabled   bool
	pauseLabel      string
	skipDisabled    bool
	restartDisabled bool
}

// New creates a tray manager with the provided callbacks.
func New(host Host, icons Icons, callbacks Callbacks) *Manager {
	manager := &Manager{
		host:      host,
		icons:     icons,
		callbacks: callbacks,
	}

	manager.statusItem = fyne.NewMenuItem("Status: Ready", invoke(callbacks.OnShow))
	manager.startItem = fyne.NewMenuItem("Start workout", invoke(callbacks.OnStart))
	manager.pauseItem = fyne.NewMenuItem("Pause", invoke(callbacks.OnTogglePause))
	manager.pauseItem.Disabled = true
	manager.skipItem = fyne.NewMenuItem("Skip rest", invoke(callbacks.OnSkipRest))
	manager.skipItem.Disabled = true
	manager.restartItem = fyne.NewMenuItem("Restart", invoke(callbacks.OnRestart))
	manager.restartItem.Disabled = true

	quit := fyne.NewMenuItem("Quit", invoke(callbacks.OnQuit))
	quit.IsQuit = true

	manager.menu = fyne.NewMenu("Holdfast",
		manager.statusItem,
		fyne.NewMenuItemSeparator(),
		manager.startItem,
		manager.pauseItem,
		manager.skipItem,
		manager.restartItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Preferences", invoke(callbacks.OnPreferences)),
		quit,
	)
	host.SetSystemTrayMenu(manager.menu)
	manager.installed = manager.currentItems()
	manager.setIcon(icons.Idle)

	return manager
}

// Update reflects screen in the menu and icon. Call it on the UI thread.
func (manager *Manager) Update(screen display.Screen) {
	manager.statusItem.Label = fmt.Sprintf("Status: %s", display.Status(screen))

	idle := screen.Kind == display.ScreenMain || screen.Kind == display.ScreenCompletion
	manager.startItem.Disabled = !idle
	manager.pauseItem.Disabled = idle
	manager.pauseItem.Label = screen.PauseLabel
	manager.skipItem.Disabled = !screen.CanSkip
	manager.restartItem.Disabled = screen.Kind == display.ScreenMain

	switch {
	case idle:
		manager.setIcon(manager.icons.Idle)
	case screen.Paused:
		manager.setIcon(manager.icons.Paused)
	default:
		manager.setIcon(manager.icons.Active)
	}

	if items := manager.currentItems(); items != manager.installed {
		manager.installed = items
		manager.host.SetSystemTrayMenu(manager.menu)
		return
	}
	manager.menu.Refresh()
}

func (manager *Manager) currentItems() itemState {
	return itemState{
		startDisabled:   manager.startItem.Disabled,
		pauseDisabled:   manager.pauseItem.Disabled,
		pauseLabel:      manager.pauseItem.Label,
		skipDisabled:    manager.skipItem.Disabled,
		restartDisabled: manager.restartItem.Disabled,
	}
}

// Menu returns the current tray menu.
func (manager *Manager) Menu() *fyne.Menu {
	return manager.menu
}

func (manager *Manager) setIcon(icon fyne.Resource) {
	if icon == nil || icon == manager.icon {
		return
	}
	manager.icon = icon
	manager.host.SetSystemTrayIcon(icon)
}

func invoke(handler func()) func() {
	return func() {
		if handler != nil {
			handler()
		}
	}
}
