package schedule

import "time"

// Manual is a Scheduler driven by Advance instead of the wall clock.
// It is not safe for concurrent use.
type Manual struct {
	now     time.Duration
	next    Handle
	entries map[Handle]*manualEntry
}

type manualEntry struct {
	period time.Duration
	due    time.Duration
	fn     func()
}

// NewManual creates a Manual scheduler at virtual time zero.
func NewManual() *Manual {
	return &Manual{entries: make(map[Handle]*manualEntry)}
}

// Every implements Scheduler.
func (scheduler *Manual) Every(period time.Duration, fn func()) Handle {
	if period <= 0 {
		period = time.Millisecond
	}
	scheduler.next++
	scheduler.entries[scheduler.next] = &manualEntry{
		period: period,
		due:    scheduler.now + period,
		fn:     fn,
	}
	return scheduler.next
}

// Cancel implements Scheduler.
func (scheduler *Manual) Cancel(handle Handle) {
	delete(scheduler.entries, handle)
}

// Advance moves virtual time forward by d, firing every callback that falls
// due in deadline order. Callbacks due at the same instant fire in
// registration order.
func (scheduler *Manual) Advance(d time.Duration) {
	target := scheduler.now + d
	for {
		_, entry := scheduler.nextDue(target)
		if entry == nil {
			break
		}
		scheduler.now = entry.due
		entry.due += entry.period
		entry.fn()
	}
	scheduler.now = target
}

// Active reports how many intervals are registered.
func (scheduler *Manual) Active() int {
	return len(scheduler.entries)
}

// Elapsed returns the virtual time since creation.
func (scheduler *Manual) Elapsed() time.Duration {
	return scheduler.now
}

func (scheduler *Manual) nextDue(target time.Duration) (Handle, *manualEntry) {
	var (
		bestHandle Handle
		best       *manualEntry
	)
	for handle, entry := range scheduler.entries {
		if entry.due > target {
			continue
		}
		if best == nil || entry.due < best.due || (entry.due == best.due && handle < bestHandle) {
			bestHandle = handle
			best = entry
		}
	}
	return bestHandle, best
}
