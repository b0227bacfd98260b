package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"holdfast/internal/ui/preferences"

	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

// Environment overrides applied after the settings file.
const (
	EnvSound    = "HOLDFAST_SOUND"
	EnvLogLevel = "HOLDFAST_LOG_LEVEL"
)

type yamlSettings struct {
	SoundEnabled      *bool  `yaml:"sound_enabled"`
	KeepAwake         *bool  `yaml:"keep_awake"`
	Fullscreen        *bool  `yaml:"fullscreen"`
	CatchUpAfterSleep *bool  `yaml:"catch_up_after_sleep"`
	LogLevel          string `yaml:"log_level,omitempty"`
}

// LoadSettings reads user preferences from YAML.
// If the config file does not exist, default settings are returned.
func LoadSettings(appName string) (preferences.Settings, error) {
	configPath, err := resolveConfigPath(appName)
	if err != nil {
		settings := preferences.DefaultSettings()
		applyEnvOverrides(&settings)
		return settings, err
	}
	return LoadSettingsFile(configPath)
}

// LoadSettingsFile reads preferences from path, then applies environment overrides.
func LoadSettingsFile(configPath string) (preferences.Settings, error) {
	settings, err := readSettingsFile(configPath)
	applyEnvOverrides(&settings)
	return settings, err
}

func readSettingsFile(configPath string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettings writes user preferences to YAML.
func SaveSettings(appName string, settings preferences.Settings) error {
	configPath, err := resolveConfigPath(appName)
	if err != nil {
		return err
	}
	return SaveSettingsFile(configPath, settings)
}

// SaveSettingsFile writes preferences to path, creating its directory.
func SaveSettingsFile(configPath string, settings preferences.Settings) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	fileData := yamlSettings{
		SoundEnabled:      boolPtr(settings.SoundEnabled),
		KeepAwake:         boolPtr(settings.KeepAwake),
		Fullscreen:        boolPtr(settings.Fullscreen),
		CatchUpAfterSleep: boolPtr(settings.CatchUpAfterSleep),
		LogLevel:          settings.LogLevel,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(configPath, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

func resolveConfigPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if fileData.SoundEnabled != nil {
		settings.SoundEnabled = *fileData.SoundEnabled
	}
	if fileData.KeepAwake != nil {
		settings.KeepAwake = *fileData.KeepAwake
	}
	if fileData.Fullscreen != nil {
		settings.Fullscreen = *fileData.Fullscreen
	}
	if fileData.CatchUpAfterSleep != nil {
		settings.CatchUpAfterSleep = *fileData.CatchUpAfterSleep
	}
	if isLogLevel(fileData.LogLevel) {
		settings.LogLevel = fileData.LogLevel
	}
}

func applyEnvOverrides(settings *preferences.Settings) {
	if value := os.Getenv(EnvSound); value != "" {
		if enabled, err := strconv.ParseBool(value); err == nil {
			settings.SoundEnabled = enabled
		}
	}
	if value := os.Getenv(EnvLogLevel); isLogLevel(value) {
		settings.LogLevel = value
	}
}

func isLogLevel(value string) bool {
	switch value {
	case "debug", "info", "warn", "warning", "error":
		return true
	default:
		return false
	}
}

func boolPtr(value bool) *bool {
	return &value
}
