package schedule

import (
	"sync"
	"sync/atomic"
	"time"
)

// Ticker is a Scheduler backed by time.Ticker.
type Ticker struct {
	mu       sync.Mutex
	callMu   sync.Mutex
	next     Handle
	entries  map[Handle]*tickerEntry
	dispatch Dispatcher
}

type tickerEntry struct {
	stopCh    chan struct{}
	cancelled atomic.Bool
}

// NewTicker creates a Ticker. A nil dispatch serializes callbacks with an
// internal mutex and runs them on the ticking goroutine.
func NewTicker(dispatch Dispatcher) *Ticker {
	scheduler := &Ticker{
		entries: make(map[Handle]*tickerEntry),
	}
	if dispatch == nil {
		dispatch = scheduler.serialize
	}
	scheduler.dispatch = dispatch
	return scheduler
}

// Every implements Scheduler.
func (scheduler *Ticker) Every(period time.Duration, fn func()) Handle {
	if period <= 0 {
		period = time.Millisecond
	}

	entry := &tickerEntry{stopCh: make(chan struct{})}

	scheduler.mu.Lock()
	scheduler.next++
	handle := scheduler.next
	scheduler.entries[handle] = entry
	scheduler.mu.Unlock()

	go scheduler.run(entry, period, fn)
	return handle
}

// Cancel implements Scheduler.
func (scheduler *Ticker) Cancel(handle Handle) {
	scheduler.mu.Lock()
	entry, ok := scheduler.entries[handle]
	delete(scheduler.entries, handle)
	scheduler.mu.Unlock()

	if !ok {
		return
	}
	entry.cancelled.Store(true)
	close(entry.stopCh)
}

// Stop cancels every registered interval.
func (scheduler *Ticker) Stop() {
	scheduler.mu.Lock()
	entries := scheduler.entries
	scheduler.entries = make(map[Handle]*tickerEntry)
	scheduler.mu.Unlock()

	for _, entry := range entries {
		entry.cancelled.Store(true)
		close(entry.stopCh)
	}
}

func (scheduler *Ticker) run(entry *tickerEntry, period time.Duration, fn func()) {
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-entry.stopCh:
			return
		case <-ticker.C:
			scheduler.dispatch(func() {
				// A queued dispatch may land after Cancel.
				if entry.cancelled.Load() {
					return
				}
				fn()
			})
		}
	}
}

func (scheduler *Ticker) serialize(fn func()) {
	scheduler.callMu.Lock()
	defer scheduler.callMu.Unlock()
	fn()
}
