package mainwindow

import (
	"context"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"midnightclock/internal/app"
	"midnightclock/internal/core/clock"
	"midnightclock/internal/core/schedule"
	"midnightclock/internal/core/timekeeper"
	"midnightclock/internal/ui/preferences"
)

type fixture struct {
	main      *Window
	app       *app.App
	scheduler *schedule.Manual
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctx := context.Background()
	fyneApp := test.NewTempApp(t)
	scheduler := schedule.NewManual()
	core := app.New(ctx, app.Options{
		Settings:  preferences.DefaultSettings(),
		Fs:        afero.NewMemMapFs(),
		Scheduler: scheduler,
		Source:    clock.NewFixed(time.Date(2026, time.October, 15, 9, 0, 0, 0, time.UTC)),
	})
	main := New(ctx, fyneApp, Options{
		App:   core,
		Zones: []string{"America/New_York", "Asia/Kolkata", "Asia/Tokyo", "Europe/London"},
	})
	core.OnWorldClocks(main.SetWorldClocks)
	return &fixture{main: main, app: core, scheduler: scheduler}
}

func TestClockPage(t *testing.T) {
	f := newFixture(t)

	f.main.SetClock(time.Date(2026, time.October, 15, 21, 4, 5, 0, time.UTC))
	require.Equal(t, "21:04:05", f.main.clock.time.Text)
	require.Equal(t, "Thursday, October 15, 2026", f.main.clock.date.Text)
}

func TestAlarmPageAddsAlarms(t *testing.T) {
	f := newFixture(t)
	page := f.main.alarm

	test.Type(page.at, "07:30")
	test.Type(page.message, "Stand up")
	test.Tap(page.set)

	require.Len(t, page.alarms, 1)
	require.Equal(t, "07:30 - Stand up", page.alarms[0].Label())
	require.Empty(t, page.message.Text)

	page.at.SetText("7:5")
	test.Tap(page.set)
	require.Len(t, f.app.Keeper().Alarms(), 1)
	require.NotNil(t, f.main.window.Canvas().Overlays().Top())

	f.main.HandleEvent(timekeeper.Event{Type: timekeeper.EventAlarmFired})
	require.Len(t, page.alarms, 1)
}

func TestTimerPageLocksDurationWhileRunning(t *testing.T) {
	f := newFixture(t)
	page := f.main.timer
	require.Equal(t, "00:10:00", page.display.Text)

	page.duration.SetText("00:00:03")
	test.Tap(page.apply)
	require.Equal(t, 3, f.app.Keeper().Timer().Duration)

	test.Tap(page.start)
	f.main.HandleEvent(timekeeper.Event{Type: timekeeper.EventTimerState})
	require.True(t, page.duration.Disabled())
	require.True(t, page.apply.Disabled())
	require.False(t, page.pause.Disabled())

	f.scheduler.Advance(time.Second)
	test.Tap(page.pause)
	f.main.HandleEvent(timekeeper.Event{Type: timekeeper.EventTimerState})
	require.Equal(t, "00:00:02", page.display.Text)
	require.Equal(t, "Resume", page.start.Text)
	require.False(t, page.duration.Disabled())
}

func TestStopwatchPageRecordsLaps(t *testing.T) {
	f := newFixture(t)
	page := f.main.stopwatch
	require.True(t, page.lap.Disabled())

	test.Tap(page.start)
	f.scheduler.Advance(120 * time.Millisecond)
	test.Tap(page.lap)
	f.main.HandleEvent(timekeeper.Event{Type: timekeeper.EventStopwatchState})

	require.Equal(t, "00:00.120", page.display.Text)
	require.Equal(t, []string{"Lap 1: 00:00.120"}, page.laps)
	require.True(t, page.start.Disabled())

	test.Tap(page.reset)
	f.main.HandleEvent(timekeeper.Event{Type: timekeeper.EventStopwatchState})
	require.Equal(t, "00:00.000", page.display.Text)
	require.Empty(t, page.laps)
}

func TestWorldPagePinAndUnpin(t *testing.T) {
	f := newFixture(t)
	page := f.main.world
	require.Len(t, page.rows.Objects, 3)
	require.Equal(t, "10:00:00", page.times["Europe/London"].Text)

	page.filter("kolk")
	require.Equal(t, []string{"Asia/Kolkata"}, page.filtered)
	require.True(t, page.pin.Disabled())

	page.results.Select(0)
	test.Tap(page.pin)
	require.True(t, f.app.IsPinned("Asia/Kolkata"))
	require.Len(t, page.rows.Objects, 4)
	require.Equal(t, "14:30:00", page.times["Asia/Kolkata"].Text)

	page.unpin("Asia/Kolkata")
	require.False(t, f.app.IsPinned("Asia/Kolkata"))
	require.Len(t, page.rows.Objects, 3)
}

func TestTimerPageFollowsReconfiguredDuration(t *testing.T) {
	f := newFixture(t)
	page := f.main.timer

	require.True(t, f.app.Keeper().ConfigureTimer(25*time.Minute))
	f.main.HandleEvent(timekeeper.Event{Type: timekeeper.EventTimerState})
	require.Equal(t, "00:25:00", page.duration.Text)
	require.Equal(t, "00:25:00", page.display.Text)

	test.Tap(page.apply)
	require.Equal(t, 25*60, f.app.Keeper().Timer().Duration)
}
