package preferences

import (
	"time"

	"midnightclock/internal/core/model"
)

// Settings defines editable user preferences.
type Settings struct {
	LogLevel      string
	PinnedConfig  string
	SoundFile     string
	IconFile      string
	TimerDuration time.Duration

	// BackgroundNotice shows a tray notification when the window is hidden.
	BackgroundNotice bool
}

// DefaultSettings returns default settings for Midnight Clock.
func DefaultSettings() Settings {
	return Settings{
		LogLevel:         "info",
		PinnedConfig:     "midnight_clock_config.json",
		SoundFile:        "alarm.wav",
		IconFile:         "icon.png",
		TimerDuration:    10 * time.Minute,
		BackgroundNotice: true,
	}
}

// KeeperConfig converts settings to a Keeper configuration.
func (settings Settings) KeeperConfig() model.KeeperConfig {
	config := model.DefaultKeeperConfig()
	config.TimerDuration = settings.TimerDuration
	return config
}
