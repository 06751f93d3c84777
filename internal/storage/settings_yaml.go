package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"midnightclock/internal/logger"
	"midnightclock/internal/ui/preferences"
)

const settingsFileName = "settings.yaml"

// maxTimerSeconds matches the 23:59:59 ceiling of the timer editor.
const maxTimerSeconds = 24*60*60 - 1

type yamlSettings struct {
	LogLevel         string `yaml:"log_level"`
	PinnedConfig     string `yaml:"pinned_config"`
	SoundFile        string `yaml:"sound_file"`
	IconFile         string `yaml:"icon_file"`
	TimerSeconds     int    `yaml:"timer_seconds"`
	BackgroundNotice *bool  `yaml:"background_notice"`
}

// SettingsFile reads and writes user preferences as YAML.
type SettingsFile struct {
	fs   afero.Fs
	path string
}

// NewSettingsFile creates a SettingsFile at path on fs.
func NewSettingsFile(fs afero.Fs, path string) *SettingsFile {
	return &SettingsFile{fs: fs, path: filepath.Clean(path)}
}

// DefaultSettingsPath returns the settings location in the user config dir.
func DefaultSettingsPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

// Path returns the file location.
func (file *SettingsFile) Path() string {
	return file.path
}

// Load reads user preferences from YAML.
// If the file does not exist, default settings are returned.
func (file *SettingsFile) Load() (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := afero.ReadFile(file.fs, file.path)
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

// Save writes user preferences to YAML.
func (file *SettingsFile) Save(settings preferences.Settings) error {
	if err := file.fs.MkdirAll(filepath.Dir(file.path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	notice := settings.BackgroundNotice
	fileData := yamlSettings{
		LogLevel:         settings.LogLevel,
		PinnedConfig:     settings.PinnedConfig,
		SoundFile:        settings.SoundFile,
		IconFile:         settings.IconFile,
		TimerSeconds:     int(settings.TimerDuration / time.Second),
		BackgroundNotice: &notice,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := afero.WriteFile(file.fs, file.path, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if _, ok := logger.ParseLogLevel(fileData.LogLevel); ok && fileData.LogLevel != "" {
		settings.LogLevel = fileData.LogLevel
	}
	if fileData.PinnedConfig != "" {
		settings.PinnedConfig = fileData.PinnedConfig
	}
	if fileData.SoundFile != "" {
		settings.SoundFile = fileData.SoundFile
	}
	if fileData.IconFile != "" {
		settings.IconFile = fileData.IconFile
	}
	if fileData.TimerSeconds > 0 && fileData.TimerSeconds <= maxTimerSeconds {
		settings.TimerDuration = time.Duration(fileData.TimerSeconds) * time.Second
	}
	if fileData.BackgroundNotice != nil {
		settings.BackgroundNotice = *fileData.BackgroundNotice
	}
}
