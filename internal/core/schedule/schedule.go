// Package schedule registers periodic callbacks. Every implementation runs
// callbacks one at a time, so the state they touch has a single logical owner.
package schedule

import "time"

// Handle identifies a registered interval.
type Handle uint64

// Scheduler registers and cancels periodic callbacks.
type Scheduler interface {
	// Every calls fn once per period until the returned handle is cancelled.
	Every(period time.Duration, fn func()) Handle
	// Cancel stops the interval. No callback for the handle runs after
	// Cancel returns when both are called from the dispatch thread.
	Cancel(handle Handle)
}

// Dispatcher runs fn on the thread that owns callback state.
type Dispatcher func(fn func())
