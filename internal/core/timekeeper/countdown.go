package timekeeper

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidDuration indicates a countdown value that is not HH:MM:SS.
var ErrInvalidDuration = errors.New("invalid countdown duration")

// CountdownState represents the countdown mode.
type CountdownState string

const (
	CountdownIdle    CountdownState = "idle"
	CountdownRunning CountdownState = "running"
	CountdownPaused  CountdownState = "paused"
	// CountdownExpired is only reported in the EventTimerExpired event;
	// the countdown itself is Idle again by the time observers see it.
	CountdownExpired CountdownState = "expired"
)

// Countdown counts whole seconds down to zero.
// It is not safe for concurrent use.
type Countdown struct {
	duration  int
	remaining int
	state     CountdownState
}

// NewCountdown creates an idle countdown configured for seconds.
func NewCountdown(seconds int) *Countdown {
	countdown := &Countdown{state: CountdownIdle}
	countdown.Configure(seconds)
	return countdown
}

// Configure sets the duration and remaining time. Edits while running are
// ignored.
func (countdown *Countdown) Configure(seconds int) bool {
	if countdown.state == CountdownRunning {
		return false
	}
	if seconds < 0 {
		seconds = 0
	}
	countdown.duration = seconds
	countdown.remaining = seconds
	return true
}

// Start runs the countdown from Idle or Paused if time remains.
func (countdown *Countdown) Start() bool {
	if countdown.state == CountdownRunning || countdown.remaining <= 0 {
		return false
	}
	countdown.state = CountdownRunning
	return true
}

// Pause freezes a running countdown.
func (countdown *Countdown) Pause() bool {
	if countdown.state != CountdownRunning {
		return false
	}
	countdown.state = CountdownPaused
	return true
}

// Reset returns to Idle with the configured duration remaining.
func (countdown *Countdown) Reset() {
	countdown.state = CountdownIdle
	countdown.remaining = countdown.duration
}

// Tick removes one second while running. It reports true exactly once,
// on the tick that reaches zero, and leaves the countdown Idle.
func (countdown *Countdown) Tick() bool {
	if countdown.state != CountdownRunning || countdown.remaining <= 0 {
		return false
	}
	countdown.remaining--
	if countdown.remaining > 0 {
		return false
	}
	countdown.state = CountdownIdle
	return true
}

// State returns the current mode.
func (countdown *Countdown) State() CountdownState {
	return countdown.state
}

// Remaining returns the seconds left.
func (countdown *Countdown) Remaining() int {
	return countdown.remaining
}

// Duration returns the configured seconds.
func (countdown *Countdown) Duration() int {
	return countdown.duration
}

// Display renders the remaining time as HH:MM:SS.
func (countdown *Countdown) Display() string {
	return FormatCountdown(countdown.remaining)
}

// FormatCountdown renders seconds as HH:MM:SS. Hours widen past 99.
func FormatCountdown(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, seconds%3600/60, seconds%60)
}

// ParseCountdown parses an HH:MM:SS duration editor value. Hours are
// limited to 0-23 like the editor itself.
func ParseCountdown(value string) (time.Duration, error) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("parse %q: %w", value, ErrInvalidDuration)
	}
	limits := [3]int{23, 59, 59}
	var fields [3]int
	for index, part := range parts {
		number, err := strconv.Atoi(part)
		if err != nil || len(part) == 0 || len(part) > 2 || number < 0 || number > limits[index] {
			return 0, fmt.Errorf("parse %q: %w", value, ErrInvalidDuration)
		}
		fields[index] = number
	}
	return time.Duration(fields[0])*time.Hour +
		time.Duration(fields[1])*time.Minute +
		time.Duration(fields[2])*time.Second, nil
}
