package model

import "time"

// TickConfig defines how often each tick source fires.
type TickConfig struct {
	Clock      time.Duration
	WorldClock time.Duration
	AlarmCheck time.Duration
	Countdown  time.Duration
	Stopwatch  time.Duration
}

// KeeperConfig contains runtime settings for the Keeper.
type KeeperConfig struct {
	Ticks TickConfig

	// TimerDuration is the countdown length before the user edits it.
	TimerDuration time.Duration
}

// DefaultKeeperConfig returns the standard tick rates and a ten minute timer.
func DefaultKeeperConfig() KeeperConfig {
	return KeeperConfig{
		Ticks: TickConfig{
			Clock:      500 * time.Millisecond,
			WorldClock: time.Second,
			AlarmCheck: time.Second,
			Countdown:  time.Second,
			Stopwatch:  10 * time.Millisecond,
		},
		TimerDuration: 10 * time.Minute,
	}
}

// DefaultPinnedTimezones is used when no readable config exists.
func DefaultPinnedTimezones() []string {
	return []string{"Europe/London", "America/New_York", "Asia/Tokyo"}
}
