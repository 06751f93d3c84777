package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	fyneapp "fyne.io/fyne/v2/app"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"midnightclock/internal/logger"
	"midnightclock/internal/platform"
	"midnightclock/internal/storage"
	"midnightclock/internal/version"
)

const (
	appName = "MidnightClock"
	appID   = "com.midnightclock.app"
)

var (
	pinnedPath   string
	settingsPath string
	logLevel     string

	rootCmd = &cobra.Command{
		Use:   "midnightclock",
		Short: "Desktop clock with world clocks, alarms, a countdown timer and a stopwatch.",
		Long: `Midnight Clock shows the local time and a list of pinned world clocks,
fires one-shot alarms, runs a countdown timer and a stopwatch.

Closing the window hides it to the system tray; alarms and timers keep
running until Quit is chosen from the tray menu.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()
			return run(ctx)
		},
	}
)

func main() {
	version.AttachCommand(rootCmd)

	err := rootCmd.ExecuteContext(context.Background())
	logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // cobra flags are registered at package init
func init() {
	rootCmd.Flags().StringVarP(&pinnedPath, "config", "c", "", "path to the pinned timezones JSON file")
	rootCmd.Flags().StringVar(&settingsPath, "settings", "", "path to the settings YAML file")
	rootCmd.Flags().StringVarP(&logLevel, "log-level", "l", "", "log level: debug, info, warn or error")
}

func run(ctx context.Context) error {
	if logLevel != "" {
		if _, ok := logger.ParseLogLevel(logLevel); !ok {
			return fmt.Errorf("invalid log level %q", logLevel)
		}
	}

	fs := afero.NewOsFs()
	settingsFile, err := openSettings(fs)
	if err != nil {
		return err
	}
	settings, err := settingsFile.Load()
	if err != nil {
		logger.WarnKV(ctx, "settings not loaded, using defaults", "path", settingsFile.Path(), "error", err)
	}
	if pinnedPath != "" {
		settings.PinnedConfig = pinnedPath
	}
	if logLevel != "" {
		settings.LogLevel = logLevel
	}
	applyLogLevel(settings.LogLevel)

	activate := make(chan struct{}, 1)
	guard, err := platform.AcquireSingleInstance(ctx, appName, func() {
		select {
		case activate <- struct{}{}:
		default:
		}
	})
	if errors.Is(err, platform.ErrAlreadyRunning) {
		if activateErr := platform.ActivateRunning(appName); activateErr != nil {
			logger.WarnKV(ctx, "running instance did not answer", "error", activateErr)
		}
		logger.InfoKV(ctx, "another instance is already running")
		return nil
	}
	if err != nil {
		return err
	}
	defer func() {
		_ = guard.Release()
	}()

	logger.InfoKV(ctx, "starting",
		"version", version.Short(),
		"settings", settingsFile.Path(),
		"pinned", settings.PinnedConfig,
	)

	ui, err := newShell(ctx, fyneapp.NewWithID(appID), fs, settingsFile, settings)
	if err != nil {
		return err
	}
	return ui.run(ctx, activate)
}

func openSettings(fs afero.Fs) (*storage.SettingsFile, error) {
	path := settingsPath
	if path == "" {
		defaultPath, err := storage.DefaultSettingsPath(appName)
		if err != nil {
			return nil, err
		}
		path = defaultPath
	}
	return storage.NewSettingsFile(fs, path), nil
}

func applyLogLevel(value string) {
	if level, ok := logger.ParseLogLevel(value); ok {
		logger.SetLevel(level)
	}
}
