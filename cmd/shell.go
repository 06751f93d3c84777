package main

import (
	"context"
	"errors"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/spf13/afero"

	"midnightclock/internal/app"
	"midnightclock/internal/audio"
	"midnightclock/internal/core/clock"
	"midnightclock/internal/core/schedule"
	"midnightclock/internal/core/worldclock"
	"midnightclock/internal/logger"
	"midnightclock/internal/storage"
	"midnightclock/internal/ui/mainwindow"
	"midnightclock/internal/ui/notify"
	"midnightclock/internal/ui/preferences"
	"midnightclock/internal/ui/tray"
	"midnightclock/resources"
)

var errTrayUnsupported = errors.New("system tray unsupported on this platform")

// shell wires the core App to fyne windows, the tray and the notifier.
type shell struct {
	ctx          context.Context
	fyneApp      fyne.App
	fs           afero.Fs
	settingsFile *storage.SettingsFile
	settings     preferences.Settings

	scheduler *schedule.Ticker
	core      *app.App
	main      *mainwindow.Window
	notifier  *notify.Dialogs
	prefs     *preferences.Window
	tray      *tray.Manager

	quitOnce sync.Once
}

func newShell(ctx context.Context, fyneApp fyne.App, fs afero.Fs, settingsFile *storage.SettingsFile, settings preferences.Settings) (*shell, error) {
	desktopApp, ok := fyneApp.(desktop.App)
	if !ok {
		return nil, errTrayUnsupported
	}

	icon, fromDisk := resources.Icon(fs, settings.IconFile)
	if !fromDisk {
		logger.DebugKV(ctx, "icon file not found, using embedded icon", "path", settings.IconFile)
	}
	fyneApp.SetIcon(icon)

	scheduler := schedule.NewTicker(fyne.Do)
	core := app.New(ctx, app.Options{
		Settings:  settings,
		Fs:        fs,
		Scheduler: scheduler,
		Source:    clock.NewSystem(),
		Player:    audio.Load(ctx, fs, settings.SoundFile),
	})

	s := &shell{
		ctx:          ctx,
		fyneApp:      fyneApp,
		fs:           fs,
		settingsFile: settingsFile,
		settings:     settings,
		scheduler:    scheduler,
		core:         core,
	}

	s.main = mainwindow.New(ctx, fyneApp, mainwindow.Options{
		App:      core,
		Zones:    worldclock.Catalogue(fs),
		OnHidden: s.hidden,
	})
	s.notifier = notify.New(fyneApp, s.main.Window())
	s.prefs = preferences.New(fyneApp, settings, s.applySettings)
	s.tray = tray.New(desktopApp, tray.Callbacks{
		OnShow:        s.main.Show,
		OnPreferences: s.prefs.Show,
		OnQuit:        s.quit,
	})
	desktopApp.SetSystemTrayIcon(icon)
	desktopApp.SetSystemTrayWindow(s.main.Window())

	core.OnClock(func(now time.Time) {
		s.main.SetClock(now)
		s.tray.SetStatus(core.Status())
	})
	core.OnWorldClocks(s.main.SetWorldClocks)
	return s, nil
}

// run blocks in the fyne event loop until Quit.
func (s *shell) run(ctx context.Context, activate <-chan struct{}) error {
	s.core.Start()
	go s.pumpEvents()

	stopped := make(chan struct{})
	go func() {
		for {
			select {
			case <-activate:
				fyne.Do(s.main.Show)
			case <-ctx.Done():
				logger.InfoKV(s.ctx, "shutdown requested", "cause", context.Cause(ctx))
				fyne.Do(s.quit)
				return
			case <-stopped:
				return
			}
		}
	}()

	s.main.Show()
	s.fyneApp.Run()
	close(stopped)

	s.shutdown()
	logger.InfoKV(s.ctx, "stopped")
	return nil
}

func (s *shell) pumpEvents() {
	for event := range s.core.Events() {
		event := event
		fyne.Do(func() {
			s.main.HandleEvent(event)
			s.core.Dispatch(s.ctx, event, s.notifier)
		})
	}
}

func (s *shell) hidden() {
	logger.DebugKV(s.ctx, "window hidden to tray")
	if s.settings.BackgroundNotice {
		s.notifier.Background()
	}
}

func (s *shell) applySettings(updated preferences.Settings) {
	if err := s.settingsFile.Save(updated); err != nil {
		logger.ErrorKV(s.ctx, "settings not saved", "path", s.settingsFile.Path(), "error", err)
		dialog.ShowError(err, s.main.Window())
	}

	applyLogLevel(updated.LogLevel)
	if updated.SoundFile != s.settings.SoundFile {
		s.core.SetPlayer(audio.Load(s.ctx, s.fs, updated.SoundFile))
	}
	if updated.TimerDuration != s.settings.TimerDuration && !s.core.Keeper().ConfigureTimer(updated.TimerDuration) {
		logger.InfoKV(s.ctx, "timer is running, new default applies on the next edit")
	}

	s.settings = updated
	logger.DebugKV(s.ctx, "settings applied", "log_level", updated.LogLevel, "timer", updated.TimerDuration)
}

func (s *shell) shutdown() {
	s.quitOnce.Do(func() {
		s.core.Stop()
		s.scheduler.Stop()
	})
}

func (s *shell) quit() {
	s.shutdown()
	s.fyneApp.Quit()
}
