package preferences

import (
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

var logLevels = []string{"debug", "info", "warn", "error"}

// Window handles the preferences UI.
type Window struct {
	window     fyne.Window
	settings   Settings
	onSave     func(Settings)
	sound      *widget.Check
	keepAwake  *widget.Check
	fullscreen *widget.Check
	catchUp    *widget.Check
	logLevel   *widget.Select
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("Holdfast Settings")

	prefs := &Window{
		window:     window,
		onSave:     onSave,
		sound:      widget.NewCheck("Play sounds", nil),
		keepAwake:  widget.NewCheck("Keep the screen awake during a workout", nil),
		fullscreen: widget.NewCheck("Fullscreen workout window", nil),
		catchUp:    widget.NewCheck("Catch up time missed while asleep", nil),
		logLevel:   widget.NewSelect(logLevels, nil),
	}
	prefs.UpdateSettings(settings)

	form := container.NewVBox(
		widget.NewLabelWithStyle("General", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		prefs.sound,
		prefs.keepAwake,
		prefs.fullscreen,
		prefs.catchUp,
		container.NewHBox(widget.NewLabel("Log level"), prefs.logLevel),
	)

	saveButton := widget.NewButton("Save", prefs.handleSave)
	cancelButton := widget.NewButton("Cancel", func() {
		prefs.UpdateSettings(prefs.settings)
		window.Hide()
	})
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.SetCloseIntercept(window.Hide)
	window.Resize(fyne.NewSize(380, 260))

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.sound.SetChecked(settings.SoundEnabled)
	prefs.keepAwake.SetChecked(settings.KeepAwake)
	prefs.fullscreen.SetChecked(settings.Fullscreen)
	prefs.catchUp.SetChecked(settings.CatchUpAfterSleep)
	prefs.logLevel.SetSelected(strings.ToLower(settings.Level().String()))
}

func (prefs *Window) handleSave() {
	settings := prefs.settings
	settings.SoundEnabled = prefs.sound.Checked
	settings.KeepAwake = prefs.keepAwake.Checked
	settings.Fullscreen = prefs.fullscreen.Checked
	settings.CatchUpAfterSleep = prefs.catchUp.Checked
	if prefs.logLevel.Selected != "" {
		settings.LogLevel = prefs.logLevel.Selected
	}

	prefs.settings = settings
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}
