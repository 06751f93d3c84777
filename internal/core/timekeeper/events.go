package timekeeper

import "time"

// EventType defines the type of Keeper event.
type EventType string

const (
	EventAlarmFired     EventType = "alarm_fired"
	EventTimerTick      EventType = "timer_tick"
	EventTimerExpired   EventType = "timer_expired"
	EventTimerState     EventType = "timer_state"
	EventStopwatchTick  EventType = "stopwatch_tick"
	EventStopwatchState EventType = "stopwatch_state"
)

// Event represents a Keeper update for observers.
type Event struct {
	Type      EventType
	AlarmID   AlarmID
	Message   string
	Timer     CountdownState
	Remaining int
	Display   string
	At        time.Time
}

// oneShot reports whether the event happens once and cannot be re-derived
// from keeper state by an observer that missed it.
func (eventType EventType) oneShot() bool {
	return eventType == EventAlarmFired || eventType == EventTimerExpired
}

type subscriber struct {
	ch      chan Event
	pending []Event
}

// flush moves queued one-shot events into the channel while it has room.
func (sub *subscriber) flush() {
	for len(sub.pending) > 0 {
		select {
		case sub.ch <- sub.pending[0]:
			sub.pending = sub.pending[1:]
		default:
			return
		}
	}
}

type hub struct {
	subscribers []*subscriber
}

func (events *hub) subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	sub := &subscriber{ch: make(chan Event, buffer)}
	events.subscribers = append(events.subscribers, sub)
	return sub.ch
}

// publish never blocks. Tick and state events are dropped for a full
// subscriber, which re-reads keeper state on the next one. One-shot events
// queue behind the channel and are delivered in order by later publishes
// and flushes.
func (events *hub) publish(event Event) {
	for _, sub := range events.subscribers {
		sub.flush()
		if len(sub.pending) > 0 {
			if event.Type.oneShot() {
				sub.pending = append(sub.pending, event)
			}
			continue
		}
		select {
		case sub.ch <- event:
		default:
			if event.Type.oneShot() {
				sub.pending = append(sub.pending, event)
			}
		}
	}
}

func (events *hub) flush() {
	for _, sub := range events.subscribers {
		sub.flush()
	}
}

func (events *hub) close() {
	for _, sub := range events.subscribers {
		close(sub.ch)
	}
	events.subscribers = nil
}
