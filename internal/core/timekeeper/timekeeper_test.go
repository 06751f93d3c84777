package timekeeper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"midnightclock/internal/core/clock"
	"midnightclock/internal/core/model"
	"midnightclock/internal/core/schedule"
)

type fixture struct {
	keeper    *Keeper
	scheduler *schedule.Manual
	source    *clock.Fixed
	events    <-chan Event
}

func newFixture(t *testing.T, timer time.Duration) *fixture {
	t.Helper()

	config := model.DefaultKeeperConfig()
	config.TimerDuration = timer

	scheduler := schedule.NewManual()
	source := clock.NewFixed(time.Date(2026, time.October, 15, 7, 29, 58, 0, time.Local))
	keeper := New(config, scheduler, source)
	events := keeper.Subscribe(4096)
	keeper.Start()
	t.Cleanup(keeper.Stop)

	return &fixture{keeper: keeper, scheduler: scheduler, source: source, events: events}
}

// advance moves the fake wall clock together with the scheduler.
func (f *fixture) advance(d time.Duration, step time.Duration) {
	for elapsed := time.Duration(0); elapsed < d; elapsed += step {
		f.source.Add(step)
		f.scheduler.Advance(step)
	}
}

func drain(events <-chan Event, eventType EventType) []Event {
	var matched []Event
	for {
		select {
		case event, ok := <-events:
			if !ok {
				return matched
			}
			if event.Type == eventType {
				matched = append(matched, event)
			}
		default:
			return matched
		}
	}
}

func TestKeeperAlarmFiresOnceThroughScheduler(t *testing.T) {
	t.Parallel()

	f := newFixture(t, time.Minute)
	id, err := f.keeper.AddAlarm(TimeOfDay{Hour: 7, Minute: 30}, "coffee")
	require.NoError(t, err)

	f.advance(3*time.Minute, time.Second)

	fired := drain(f.events, EventAlarmFired)
	require.Len(t, fired, 1)
	require.Equal(t, id, fired[0].AlarmID)
	require.Equal(t, "coffee", fired[0].Message)
	require.Equal(t, 7, fired[0].At.Hour())
	require.Equal(t, 30, fired[0].At.Minute())
	require.False(t, f.keeper.Alarms()[0].Active)
}

func TestKeeperAlarmMissedWhenMinuteSkipped(t *testing.T) {
	t.Parallel()

	f := newFixture(t, time.Minute)
	_, err := f.keeper.AddAlarm(TimeOfDay{Hour: 7, Minute: 30}, "")
	require.NoError(t, err)

	// Host suspended across the whole matching minute.
	f.source.Add(2 * time.Minute)
	f.scheduler.Advance(time.Second)

	require.Empty(t, drain(f.events, EventAlarmFired))
	require.True(t, f.keeper.Alarms()[0].Active)
}

func TestKeeperCountdownExpiresOnce(t *testing.T) {
	t.Parallel()

	f := newFixture(t, 3*time.Second)
	require.True(t, f.keeper.StartTimer())

	f.scheduler.Advance(10 * time.Second)

	expired := drain(f.events, EventTimerExpired)
	require.Len(t, expired, 1)
	require.Equal(t, CountdownExpired, expired[0].Timer)

	snapshot := f.keeper.Timer()
	require.Equal(t, CountdownIdle, snapshot.State)
	require.Zero(t, snapshot.Remaining)
	require.Equal(t, "00:00:00", snapshot.Display)

	// Only the alarm check interval stays registered.
	require.Equal(t, 1, f.scheduler.Active())
}

func TestKeeperCountdownPauseCancelsTicks(t *testing.T) {
	t.Parallel()

	f := newFixture(t, 10*time.Second)
	require.True(t, f.keeper.StartTimer())
	f.scheduler.Advance(4 * time.Second)
	require.True(t, f.keeper.PauseTimer())

	f.scheduler.Advance(time.Minute)
	require.Equal(t, 6, f.keeper.Timer().Remaining)
	require.Equal(t, CountdownPaused, f.keeper.Timer().State)

	require.True(t, f.keeper.StartTimer())
	f.scheduler.Advance(6 * time.Second)
	require.Len(t, drain(f.events, EventTimerExpired), 1)
}

func TestKeeperConfigureTimerWhileRunningIsIgnored(t *testing.T) {
	t.Parallel()

	f := newFixture(t, 10*time.Second)
	require.True(t, f.keeper.StartTimer())
	f.scheduler.Advance(2 * time.Second)

	require.False(t, f.keeper.ConfigureTimer(time.Hour))
	require.Equal(t, 8, f.keeper.Timer().Remaining)

	f.keeper.ResetTimer()
	require.Equal(t, 10, f.keeper.Timer().Remaining)
	require.True(t, f.keeper.ConfigureTimer(90*time.Second))
	require.Equal(t, "00:01:30", f.keeper.Timer().Display)
}

func TestKeeperStopwatchLapsAndReset(t *testing.T) {
	t.Parallel()

	f := newFixture(t, time.Minute)
	_, ok := f.keeper.Lap()
	require.False(t, ok)

	require.True(t, f.keeper.StartStopwatch())
	f.scheduler.Advance(1250 * time.Millisecond)
	lap, ok := f.keeper.Lap()
	require.True(t, ok)
	require.Equal(t, "Lap 1: 00:01.250", lap)

	require.True(t, f.keeper.StopStopwatch())
	f.scheduler.Advance(time.Second)
	require.EqualValues(t, 1250, f.keeper.Stopwatch().ElapsedMS)

	f.keeper.ResetStopwatch()
	snapshot := f.keeper.Stopwatch()
	require.False(t, snapshot.Running)
	require.Zero(t, snapshot.ElapsedMS)
	require.Empty(t, snapshot.Laps)
	require.Equal(t, "00:00.000", snapshot.Display)
}

func TestKeeperStopClosesSubscribers(t *testing.T) {
	t.Parallel()

	scheduler := schedule.NewManual()
	keeper := New(model.DefaultKeeperConfig(), scheduler, clock.NewFixed(time.Now()))
	events := keeper.Subscribe(1)
	keeper.Start()
	require.True(t, keeper.StartStopwatch())
	require.Equal(t, 2, scheduler.Active())

	keeper.Stop()
	require.Zero(t, scheduler.Active())

	for range events {
	}
	_, open := <-events
	require.False(t, open)
}

func TestKeeperNextAlarm(t *testing.T) {
	t.Parallel()

	f := newFixture(t, time.Minute)
	_, ok := f.keeper.NextAlarm()
	require.False(t, ok)

	_, err := f.keeper.AddAlarm(TimeOfDay{Hour: 9, Minute: 0}, "standup")
	require.NoError(t, err)
	next, ok := f.keeper.NextAlarm()
	require.True(t, ok)
	require.Equal(t, "standup", next.Message)
}

func TestKeeperAlarmSurvivesFullSubscriber(t *testing.T) {
	t.Parallel()

	scheduler := schedule.NewManual()
	keeper := New(model.DefaultKeeperConfig(), scheduler,
		clock.NewFixed(time.Date(2026, time.October, 15, 7, 30, 0, 0, time.Local)))
	events := keeper.Subscribe(4)
	keeper.Start()
	t.Cleanup(keeper.Stop)

	id, err := keeper.AddAlarm(TimeOfDay{Hour: 7, Minute: 30}, "Stand up")
	require.NoError(t, err)
	require.True(t, keeper.StartStopwatch())

	var fired []Event
	for i := 0; i < 3; i++ {
		scheduler.Advance(time.Second)
		fired = append(fired, drain(events, EventAlarmFired)...)
	}

	require.Len(t, fired, 1)
	require.Equal(t, id, fired[0].AlarmID)
	require.Equal(t, "Stand up", fired[0].Message)
	require.False(t, keeper.Alarms()[0].Active)
}

func TestKeeperTimerExpirySurvivesFullSubscriber(t *testing.T) {
	t.Parallel()

	config := model.DefaultKeeperConfig()
	config.TimerDuration = time.Second
	scheduler := schedule.NewManual()
	keeper := New(config, scheduler, clock.NewFixed(time.Date(2026, time.October, 15, 12, 0, 0, 0, time.Local)))
	events := keeper.Subscribe(2)
	keeper.Start()
	t.Cleanup(keeper.Stop)

	require.True(t, keeper.StartTimer())
	require.True(t, keeper.StartStopwatch())

	scheduler.Advance(time.Second)
	expired := drain(events, EventTimerExpired)
	require.Empty(t, expired)

	scheduler.Advance(time.Second)
	expired = append(expired, drain(events, EventTimerExpired)...)
	require.Len(t, expired, 1)
	require.Equal(t, "Time's up!", expired[0].Message)
}

func TestKeeperStopwatchHonoursShorterTick(t *testing.T) {
	t.Parallel()

	config := model.DefaultKeeperConfig()
	config.Ticks.Stopwatch = 5 * time.Millisecond
	scheduler := schedule.NewManual()
	keeper := New(config, scheduler, clock.NewFixed(time.Now()))
	t.Cleanup(keeper.Stop)

	require.True(t, keeper.StartStopwatch())
	scheduler.Advance(time.Second)

	snapshot := keeper.Stopwatch()
	require.EqualValues(t, 1000, snapshot.ElapsedMS)
	require.Equal(t, "00:01.000", snapshot.Display)
}
