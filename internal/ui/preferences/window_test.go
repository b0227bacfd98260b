package preferences

import (
	"testing"

	"fyne.io/fyne/v2/test"
)

func TestWindowSavesEditedSettings(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	var saved []Settings
	prefs := New(app, DefaultSettings(), func(settings Settings) {
		saved = append(saved, settings)
	})
	if !prefs.sound.Checked || prefs.logLevel.Selected != "info" {
		t.Fatalf("defaults not shown")
	}

	test.Tap(prefs.sound)
	test.Tap(prefs.fullscreen)
	prefs.logLevel.SetSelected("debug")
	prefs.handleSave()

	if len(saved) != 1 {
		t.Fatalf("saved %d times", len(saved))
	}
	got := saved[0]
	if got.SoundEnabled || !got.Fullscreen || !got.KeepAwake || got.LogLevel != "debug" {
		t.Fatalf("saved = %+v", got)
	}
}

func TestWindowUpdateSettings(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	prefs := New(app, DefaultSettings(), nil)
	updated := DefaultSettings()
	updated.CatchUpAfterSleep = false
	updated.LogLevel = "warning"
	prefs.UpdateSettings(updated)
	if prefs.catchUp.Checked || prefs.logLevel.Selected != "warn" {
		t.Fatalf("window not refreshed")
	}
}
