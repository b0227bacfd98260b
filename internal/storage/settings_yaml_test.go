package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"holdfast/internal/ui/preferences"
)

func TestLoadSettingsDefaultsWhenMissing(t *testing.T) {
	t.Setenv(EnvSound, "")
	t.Setenv(EnvLogLevel, "")
	settings, err := LoadSettingsFile(filepath.Join(t.TempDir(), "settings.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if settings != preferences.DefaultSettings() {
		t.Fatalf("settings = %+v, want defaults", settings)
	}
}

func TestLoadSettingsParsesYaml(t *testing.T) {
	t.Setenv(EnvSound, "")
	t.Setenv(EnvLogLevel, "")
	path := filepath.Join(t.TempDir(), "settings.yaml")
	content := strings.TrimSpace(`
sound_enabled: false
fullscreen: true
log_level: nonsense
`)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	settings, err := LoadSettingsFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if settings.SoundEnabled || !settings.Fullscreen {
		t.Fatalf("file values not applied: %+v", settings)
	}
	if !settings.KeepAwake || !settings.CatchUpAfterSleep {
		t.Fatalf("missing keys should keep defaults: %+v", settings)
	}
	if settings.LogLevel != "info" {
		t.Fatalf("invalid log level should fall back, got %q", settings.LogLevel)
	}
}

func TestLoadSettingsRejectsBrokenYaml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte("sound_enabled: [oops"), 0o644); err != nil {
		t.Fatal(err)
	}
	settings, err := LoadSettingsFile(path)
	if err == nil {
		t.Fatalf("expected parse error")
	}
	if settings.LogLevel == "" {
		t.Fatalf("defaults should be returned alongside the error")
	}
}

func TestSaveSettingsRoundTrip(t *testing.T) {
	t.Setenv(EnvSound, "")
	t.Setenv(EnvLogLevel, "")
	path := filepath.Join(t.TempDir(), "nested", "settings.yaml")
	want := preferences.Settings{
		SoundEnabled:      false,
		KeepAwake:         false,
		Fullscreen:        true,
		CatchUpAfterSleep: false,
		LogLevel:          "debug",
	}
	if err := SaveSettingsFile(path, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := LoadSettingsFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv(EnvSound, "false")
	t.Setenv(EnvLogLevel, "debug")
	settings, err := LoadSettingsFile(filepath.Join(t.TempDir(), "settings.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if settings.SoundEnabled || settings.LogLevel != "debug" {
		t.Fatalf("env overrides not applied: %+v", settings)
	}
}
