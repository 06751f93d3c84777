package timekeeper

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidTimeOfDay indicates an hour outside [0,23] or a minute outside [0,59].
var ErrInvalidTimeOfDay = errors.New("invalid time of day")

const defaultAlarmMessage = "Alarm"

// TimeOfDay is a wall-clock minute.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// NewTimeOfDay validates hour and minute.
func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return TimeOfDay{}, fmt.Errorf("%02d:%02d: %w", hour, minute, ErrInvalidTimeOfDay)
	}
	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

// ParseTimeOfDay parses "H:MM" or "HH:MM".
func ParseTimeOfDay(value string) (TimeOfDay, error) {
	hourText, minuteText, ok := strings.Cut(strings.TrimSpace(value), ":")
	if !ok {
		return TimeOfDay{}, fmt.Errorf("parse %q: %w", value, ErrInvalidTimeOfDay)
	}
	if !isDigits(hourText, 1, 2) {
		return TimeOfDay{}, fmt.Errorf("parse hour %q: %w", hourText, ErrInvalidTimeOfDay)
	}
	if !isDigits(minuteText, 2, 2) {
		return TimeOfDay{}, fmt.Errorf("parse minute %q: %w", minuteText, ErrInvalidTimeOfDay)
	}
	hour, _ := strconv.Atoi(hourText)
	minute, _ := strconv.Atoi(minuteText)
	return NewTimeOfDay(hour, minute)
}

// isDigits reports whether value is between minLen and maxLen ASCII digits.
func isDigits(value string, minLen, maxLen int) bool {
	if len(value) < minLen || len(value) > maxLen {
		return false
	}
	for i := 0; i < len(value); i++ {
		if value[i] < '0' || value[i] > '9' {
			return false
		}
	}
	return true
}

// TimeOfDayOf truncates t to its hour and minute.
func TimeOfDayOf(t time.Time) TimeOfDay {
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}
}

// String renders HH:MM.
func (at TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", at.Hour, at.Minute)
}

func (at TimeOfDay) minutes() int {
	return at.Hour*60 + at.Minute
}

// AlarmID identifies an alarm within a registry.
type AlarmID int

// Alarm is a one-shot wall-clock alarm.
type Alarm struct {
	ID      AlarmID
	At      TimeOfDay
	Message string
	Active  bool
}

// Label renders the alarm list entry.
func (alarm Alarm) Label() string {
	label := alarm.At.String() + " - " + alarm.Message
	if !alarm.Active {
		label += " (Triggered)"
	}
	return label
}

// AlarmFired is reported once per alarm, on the tick that deactivates it.
type AlarmFired struct {
	ID      AlarmID
	Message string
}

// AlarmRegistry holds alarms in insertion order. Alarms are never removed.
// It is not safe for concurrent use.
type AlarmRegistry struct {
	alarms []Alarm
	nextID AlarmID
}

// NewAlarmRegistry creates an empty registry.
func NewAlarmRegistry() *AlarmRegistry {
	return &AlarmRegistry{}
}

// Add appends an active alarm. An empty message becomes "Alarm".
func (registry *AlarmRegistry) Add(at TimeOfDay, message string) (AlarmID, error) {
	at, err := NewTimeOfDay(at.Hour, at.Minute)
	if err != nil {
		return 0, err
	}
	if message == "" {
		message = defaultAlarmMessage
	}
	registry.nextID++
	registry.alarms = append(registry.alarms, Alarm{
		ID:      registry.nextID,
		At:      at,
		Message: message,
		Active:  true,
	})
	return registry.nextID, nil
}

// Tick deactivates and reports every active alarm set for now's minute.
// A minute that is never ticked is never matched.
func (registry *AlarmRegistry) Tick(now TimeOfDay) []AlarmFired {
	var fired []AlarmFired
	for index := range registry.alarms {
		alarm := &registry.alarms[index]
		if !alarm.Active || alarm.At != now {
			continue
		}
		alarm.Active = false
		fired = append(fired, AlarmFired{ID: alarm.ID, Message: alarm.Message})
	}
	return fired
}

// List returns a snapshot of every alarm in insertion order.
func (registry *AlarmRegistry) List() []Alarm {
	return append([]Alarm(nil), registry.alarms...)
}

// NextActive returns the active alarm that fires soonest after now,
// wrapping past midnight. An alarm set for now's minute counts as soonest.
func (registry *AlarmRegistry) NextActive(now TimeOfDay) (Alarm, bool) {
	var (
		best     Alarm
		bestWait = -1
	)
	for _, alarm := range registry.alarms {
		if !alarm.Active {
			continue
		}
		wait := (alarm.At.minutes() - now.minutes() + 24*60) % (24 * 60)
		if bestWait < 0 || wait < bestWait {
			best = alarm
			bestWait = wait
		}
	}
	return best, bestWait >= 0
}
