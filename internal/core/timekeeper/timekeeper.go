package timekeeper

import (
	"sync"
	"time"

	"midnightclock/internal/core/clock"
	"midnightclock/internal/core/model"
	"midnightclock/internal/core/schedule"
)

// Keeper owns the alarm registry, countdown and stopwatch and drives them
// from scheduler intervals. Tick sources only run while their component
// needs them.
type Keeper struct {
	mu        sync.Mutex
	config    model.KeeperConfig
	scheduler schedule.Scheduler
	source    clock.Source

	alarms    *AlarmRegistry
	countdown *Countdown
	stopwatch *Stopwatch
	events    hub

	running         bool
	alarmHandle     schedule.Handle
	countdownHandle schedule.Handle
	stopwatchHandle schedule.Handle
}

// TimerSnapshot is a copy of the countdown state.
type TimerSnapshot struct {
	State     CountdownState
	Remaining int
	Duration  int
	Display   string
}

// StopwatchSnapshot is a copy of the stopwatch state.
type StopwatchSnapshot struct {
	Running   bool
	ElapsedMS int64
	Display   string
	Laps      []string
}

// New creates a Keeper with the provided configuration.
func New(config model.KeeperConfig, scheduler schedule.Scheduler, source clock.Source) *Keeper {
	defaults := model.DefaultKeeperConfig()
	if config.Ticks.AlarmCheck <= 0 {
		config.Ticks.AlarmCheck = defaults.Ticks.AlarmCheck
	}
	if config.Ticks.Countdown <= 0 {
		config.Ticks.Countdown = defaults.Ticks.Countdown
	}
	if config.Ticks.Stopwatch <= 0 || config.Ticks.Stopwatch > StopwatchTick {
		config.Ticks.Stopwatch = StopwatchTick
	}
	if config.TimerDuration < 0 {
		config.TimerDuration = 0
	}

	return &Keeper{
		config:    config,
		scheduler: scheduler,
		source:    source,
		alarms:    NewAlarmRegistry(),
		countdown: NewCountdown(int(config.TimerDuration / time.Second)),
		stopwatch: NewStopwatchWithStep(config.Ticks.Stopwatch),
	}
}

// Subscribe registers a new observer channel.
func (keeper *Keeper) Subscribe(buffer int) <-chan Event {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.events.subscribe(buffer)
}

// Start launches the alarm check loop.
func (keeper *Keeper) Start() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.running {
		return
	}
	keeper.running = true
	keeper.alarmHandle = keeper.scheduler.Every(keeper.config.Ticks.AlarmCheck, keeper.CheckAlarms)
}

// Stop cancels every tick source and closes observers.
func (keeper *Keeper) Stop() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if !keeper.running {
		return
	}
	keeper.running = false
	keeper.cancelLocked(&keeper.alarmHandle)
	keeper.cancelLocked(&keeper.countdownHandle)
	keeper.cancelLocked(&keeper.stopwatchHandle)
	keeper.events.close()
}

// AddAlarm registers a new alarm.
func (keeper *Keeper) AddAlarm(at TimeOfDay, message string) (AlarmID, error) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.alarms.Add(at, message)
}

// Alarms returns every alarm in insertion order.
func (keeper *Keeper) Alarms() []Alarm {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.alarms.List()
}

// NextAlarm returns the next active alarm relative to the current time.
func (keeper *Keeper) NextAlarm() (Alarm, bool) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.alarms.NextActive(TimeOfDayOf(keeper.source.Now()))
}

// CheckAlarms matches alarms against the current minute. It is the alarm
// tick body and may also be called directly. Each call also retries
// delivery of queued alarm and expiry events.
func (keeper *Keeper) CheckAlarms() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()

	keeper.events.flush()

	now := keeper.source.Now()
	for _, fired := range keeper.alarms.Tick(TimeOfDayOf(now)) {
		keeper.events.publish(Event{
			Type:    EventAlarmFired,
			AlarmID: fired.ID,
			Message: fired.Message,
			At:      now,
		})
	}
}

// ConfigureTimer sets the countdown length. It is ignored while running.
func (keeper *Keeper) ConfigureTimer(duration time.Duration) bool {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if !keeper.countdown.Configure(int(duration / time.Second)) {
		return false
	}
	keeper.publishTimerLocked(EventTimerState)
	return true
}

// StartTimer starts or resumes the countdown.
func (keeper *Keeper) StartTimer() bool {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if !keeper.countdown.Start() {
		return false
	}
	keeper.countdownHandle = keeper.scheduler.Every(keeper.config.Ticks.Countdown, keeper.tickTimer)
	keeper.publishTimerLocked(EventTimerState)
	return true
}

// PauseTimer freezes the countdown.
func (keeper *Keeper) PauseTimer() bool {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if !keeper.countdown.Pause() {
		return false
	}
	keeper.cancelLocked(&keeper.countdownHandle)
	keeper.publishTimerLocked(EventTimerState)
	return true
}

// ResetTimer stops the countdown and restores the configured duration.
func (keeper *Keeper) ResetTimer() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.countdown.Reset()
	keeper.cancelLocked(&keeper.countdownHandle)
	keeper.publishTimerLocked(EventTimerState)
}

// Timer returns a copy of the countdown state.
func (keeper *Keeper) Timer() TimerSnapshot {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.timerSnapshotLocked()
}

// StartStopwatch begins stopwatch ticking.
func (keeper *Keeper) StartStopwatch() bool {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if !keeper.stopwatch.Start() {
		return false
	}
	keeper.stopwatchHandle = keeper.scheduler.Every(keeper.config.Ticks.Stopwatch, keeper.tickStopwatch)
	keeper.publishStopwatchLocked(EventStopwatchState)
	return true
}

// StopStopwatch halts stopwatch ticking.
func (keeper *Keeper) StopStopwatch() bool {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if !keeper.stopwatch.Stop() {
		return false
	}
	keeper.cancelLocked(&keeper.stopwatchHandle)
	keeper.publishStopwatchLocked(EventStopwatchState)
	return true
}

// ResetStopwatch stops the stopwatch and clears it.
func (keeper *Keeper) ResetStopwatch() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.stopwatch.Reset()
	keeper.cancelLocked(&keeper.stopwatchHandle)
	keeper.publishStopwatchLocked(EventStopwatchState)
}

// Lap records a lap while the stopwatch runs.
func (keeper *Keeper) Lap() (string, bool) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	lap, ok := keeper.stopwatch.Lap()
	if ok {
		keeper.publishStopwatchLocked(EventStopwatchState)
	}
	return lap, ok
}

// Stopwatch returns a copy of the stopwatch state.
func (keeper *Keeper) Stopwatch() StopwatchSnapshot {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return StopwatchSnapshot{
		Running:   keeper.stopwatch.Running(),
		ElapsedMS: keeper.stopwatch.ElapsedMS(),
		Display:   keeper.stopwatch.Display(),
		Laps:      keeper.stopwatch.Laps(),
	}
}

func (keeper *Keeper) tickTimer() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()

	if !keeper.countdown.Tick() {
		keeper.publishTimerLocked(EventTimerTick)
		return
	}

	keeper.cancelLocked(&keeper.countdownHandle)
	keeper.events.publish(Event{
		Type:      EventTimerExpired,
		Timer:     CountdownExpired,
		Remaining: 0,
		Display:   keeper.countdown.Display(),
		Message:   "Time's up!",
		At:        keeper.source.Now(),
	})
}

func (keeper *Keeper) tickStopwatch() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if !keeper.stopwatch.Running() {
		return
	}
	keeper.stopwatch.Tick()
	keeper.publishStopwatchLocked(EventStopwatchTick)
}

func (keeper *Keeper) cancelLocked(handle *schedule.Handle) {
	if *handle == 0 {
		return
	}
	keeper.scheduler.Cancel(*handle)
	*handle = 0
}

func (keeper *Keeper) timerSnapshotLocked() TimerSnapshot {
	return TimerSnapshot{
		State:     keeper.countdown.State(),
		Remaining: keeper.countdown.Remaining(),
		Duration:  keeper.countdown.Duration(),
		Display:   keeper.countdown.Display(),
	}
}

func (keeper *Keeper) publishTimerLocked(eventType EventType) {
	snapshot := keeper.timerSnapshotLocked()
	keeper.events.publish(Event{
		Type:      eventType,
		Timer:     snapshot.State,
		Remaining: snapshot.Remaining,
		Display:   snapshot.Display,
		At:        keeper.source.Now(),
	})
}

func (keeper *Keeper) publishStopwatchLocked(eventType EventType) {
	keeper.events.publish(Event{
		Type:    eventType,
		Display: keeper.stopwatch.Display(),
		At:      keeper.source.Now(),
	})
}
