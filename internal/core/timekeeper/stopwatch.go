package timekeeper

import (
	"fmt"
	"time"
)

// StopwatchTick is the default and coarsest stopwatch tick.
const StopwatchTick = 10 * time.Millisecond

// Stopwatch accumulates elapsed time in fixed ticks.
// It is not safe for concurrent use.
type Stopwatch struct {
	step     time.Duration
	elapsed  time.Duration
	running  bool
	laps     []string
	lapCount int
}

// NewStopwatch creates a stopped stopwatch at zero ticking StopwatchTick.
func NewStopwatch() *Stopwatch {
	return NewStopwatchWithStep(StopwatchTick)
}

// NewStopwatchWithStep creates a stopwatch whose Tick adds step. Steps
// outside (0, StopwatchTick] fall back to StopwatchTick.
func NewStopwatchWithStep(step time.Duration) *Stopwatch {
	if step <= 0 || step > StopwatchTick {
		step = StopwatchTick
	}
	return &Stopwatch{step: step}
}

// Step returns the time added per tick.
func (stopwatch *Stopwatch) Step() time.Duration {
	return stopwatch.step
}

// Start begins ticking.
func (stopwatch *Stopwatch) Start() bool {
	if stopwatch.running {
		return false
	}
	stopwatch.running = true
	return true
}

// Stop halts ticking and keeps the elapsed time.
func (stopwatch *Stopwatch) Stop() bool {
	if !stopwatch.running {
		return false
	}
	stopwatch.running = false
	return true
}

// Reset stops the stopwatch and clears elapsed time and laps.
func (stopwatch *Stopwatch) Reset() {
	stopwatch.running = false
	stopwatch.elapsed = 0
	stopwatch.lapCount = 0
	stopwatch.laps = nil
}

// Lap records the current display, newest first. Only valid while running.
func (stopwatch *Stopwatch) Lap() (string, bool) {
	if !stopwatch.running {
		return "", false
	}
	stopwatch.lapCount++
	lap := fmt.Sprintf("Lap %d: %s", stopwatch.lapCount, stopwatch.Display())
	stopwatch.laps = append([]string{lap}, stopwatch.laps...)
	return lap, true
}

// Tick adds one step while running.
func (stopwatch *Stopwatch) Tick() {
	if !stopwatch.running {
		return
	}
	stopwatch.elapsed += stopwatch.step
}

// Running reports whether the stopwatch is ticking.
func (stopwatch *Stopwatch) Running() bool {
	return stopwatch.running
}

// ElapsedMS returns the accumulated milliseconds.
func (stopwatch *Stopwatch) ElapsedMS() int64 {
	return stopwatch.elapsed.Milliseconds()
}

// Laps returns recorded laps, newest first.
func (stopwatch *Stopwatch) Laps() []string {
	return append([]string(nil), stopwatch.laps...)
}

// Display renders the elapsed time as MM:SS.mmm.
func (stopwatch *Stopwatch) Display() string {
	return FormatStopwatch(stopwatch.ElapsedMS())
}

// FormatStopwatch renders milliseconds as MM:SS.mmm. Minutes widen past 99.
func FormatStopwatch(elapsedMS int64) string {
	if elapsedMS < 0 {
		elapsedMS = 0
	}
	return fmt.Sprintf("%02d:%02d.%03d", elapsedMS/60000, elapsedMS%60000/1000, elapsedMS%1000)
}
