// Package app is the composition root of the timekeeping core. It owns the
// keeper, the pinned zone store and the world clock board, and holds no
// reference to any window or tray.
package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/spf13/afero"

	"midnightclock/internal/audio"
	"midnightclock/internal/core/clock"
	"midnightclock/internal/core/model"
	"midnightclock/internal/core/schedule"
	"midnightclock/internal/core/timekeeper"
	"midnightclock/internal/core/worldclock"
	"midnightclock/internal/logger"
	"midnightclock/internal/storage"
	"midnightclock/internal/ui/preferences"
)

const eventBuffer = 64

// Notifier presents alarm and timer events to the user.
type Notifier interface {
	Alarm(message string)
	TimerExpired(message string)
}

// Options wires the App to its environment.
type Options struct {
	Settings  preferences.Settings
	Fs        afero.Fs
	Scheduler schedule.Scheduler
	Source    clock.Source
	Player    audio.Player
}

// App is the application state shared by the desktop shell.
type App struct {
	mu        sync.Mutex
	ticks     model.TickConfig
	scheduler schedule.Scheduler
	source    clock.Source
	player    audio.Player

	keeper *timekeeper.Keeper
	events <-chan timekeeper.Event
	pinned *storage.PinnedFile
	store  *worldclock.Store
	board  *worldclock.Board

	started      bool
	clockHandle  schedule.Handle
	worldHandle  schedule.Handle
	onClock      func(now time.Time)
	onWorldClock func(rows []worldclock.Row)
}

// New loads the pinned zones and builds the core components.
func New(ctx context.Context, options Options) *App {
	if options.Player == nil {
		options.Player = audio.Nop{}
	}
	config := options.Settings.KeeperConfig()
	keeper := timekeeper.New(config, options.Scheduler, options.Source)

	pinned := storage.NewPinnedFile(options.Fs, options.Settings.PinnedConfig)
	store := worldclock.NewStore(pinned.Load(ctx), pinned)
	board := worldclock.NewBoard()
	board.Sync(store.Zones())
	board.Refresh(options.Source)

	return &App{
		ticks:     config.Ticks,
		scheduler: options.Scheduler,
		source:    options.Source,
		player:    options.Player,
		keeper:    keeper,
		events:    keeper.Subscribe(eventBuffer),
		pinned:    pinned,
		store:     store,
		board:     board,
	}
}

// Keeper returns the alarm, countdown and stopwatch owner.
func (a *App) Keeper() *timekeeper.Keeper {
	return a.keeper
}

// Events returns the keeper event stream. It closes on Stop.
func (a *App) Events() <-chan timekeeper.Event {
	return a.events
}

// OnClock registers the clock tick observer.
func (a *App) OnClock(handler func(now time.Time)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onClock = handler
}

// OnWorldClocks registers the world clock observer. It also runs after
// every pin and unpin.
func (a *App) OnWorldClocks(handler func(rows []worldclock.Row)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onWorldClock = handler
}

// SetPlayer replaces the alarm sound player.
func (a *App) SetPlayer(player audio.Player) {
	if player == nil {
		player = audio.Nop{}
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.player = player
}

// Start registers every tick source.
func (a *App) Start() {
	a.mu.Lock()
	if a.started {
		a.mu.Unlock()
		return
	}
	a.started = true
	a.clockHandle = a.scheduler.Every(a.ticks.Clock, a.tickClock)
	a.worldHandle = a.scheduler.Every(a.ticks.WorldClock, a.tickWorldClocks)
	a.mu.Unlock()

	a.keeper.Start()
	a.tickClock()
	a.tickWorldClocks()
}

// Stop cancels every tick source and closes the event stream.
func (a *App) Stop() {
	a.mu.Lock()
	if !a.started {
		a.mu.Unlock()
		return
	}
	a.started = false
	a.scheduler.Cancel(a.clockHandle)
	a.scheduler.Cancel(a.worldHandle)
	a.mu.Unlock()

	a.keeper.Stop()
}

// Now returns the current local time.
func (a *App) Now() time.Time {
	return a.source.Now()
}

// PinnedZones returns the pinned identifiers in pin order.
func (a *App) PinnedZones() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.store.Zones()
}

// IsPinned reports whether zone is pinned.
func (a *App) IsPinned(zone string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.store.Contains(zone)
}

// WorldClocks returns the current render state of every pinned zone.
func (a *App) WorldClocks() []worldclock.Row {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.board.Rows()
}

// Pin adds zone to the world clock and persists the list.
func (a *App) Pin(ctx context.Context, zone string) error {
	return a.mutatePinned(ctx, zone, a.store.Pin)
}

// Unpin removes zone from the world clock and persists the list.
func (a *App) Unpin(ctx context.Context, zone string) error {
	return a.mutatePinned(ctx, zone, a.store.Unpin)
}

// Dispatch reacts to a keeper event: alarms and timer expiry play the sound
// and are handed to notifier.
func (a *App) Dispatch(ctx context.Context, event timekeeper.Event, notifier Notifier) {
	switch event.Type {
	case timekeeper.EventAlarmFired:
		logger.InfoKV(ctx, "alarm fired", "id", event.AlarmID, "message", event.Message)
		a.playSound()
		if notifier != nil {
			notifier.Alarm(event.Message)
		}
	case timekeeper.EventTimerExpired:
		logger.InfoKV(ctx, "timer expired")
		a.playSound()
		if notifier != nil {
			notifier.TimerExpired(event.Message)
		}
	}
}

// Status summarizes the countdown and the next alarm for the tray.
func (a *App) Status() string {
	timer := a.keeper.Timer()
	status := "Timer " + timer.Display
	switch timer.State {
	case timekeeper.CountdownRunning:
		status += " (running)"
	case timekeeper.CountdownPaused:
		status += " (paused)"
	}
	if next, ok := a.keeper.NextAlarm(); ok {
		status += fmt.Sprintf(", next alarm %s", next.At)
	}
	return status
}

func (a *App) mutatePinned(ctx context.Context, zone string, mutate func(context.Context, string) (bool, error)) error {
	a.mu.Lock()
	changed, err := mutate(ctx, zone)
	if err != nil {
		a.mu.Unlock()
		logger.ErrorKV(ctx, "pinned config not saved", "zone", zone, "path", a.pinned.Path(), "error", err)
		return err
	}
	if !changed {
		a.mu.Unlock()
		return nil
	}
	a.board.Sync(a.store.Zones())
	a.board.Refresh(a.source)
	rows := a.board.Rows()
	handler := a.onWorldClock
	a.mu.Unlock()

	logger.DebugKV(ctx, "pinned zones changed", "zone", zone, "count", len(rows))
	if handler != nil {
		handler(rows)
	}
	return nil
}

func (a *App) tickClock() {
	a.mu.Lock()
	handler := a.onClock
	a.mu.Unlock()
	if handler != nil {
		handler(a.source.Now())
	}
}

func (a *App) tickWorldClocks() {
	a.mu.Lock()
	a.board.Refresh(a.source)
	rows := a.board.Rows()
	handler := a.onWorldClock
	a.mu.Unlock()
	if handler != nil {
		handler(rows)
	}
}

func (a *App) playSound() {
	a.mu.Lock()
	player := a.player
	a.mu.Unlock()
	player.Play()
}
