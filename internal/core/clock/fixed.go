package clock

import (
	"sync"
	"time"
)

// Fixed is a settable Source for tests and previews.
type Fixed struct {
	mu  sync.Mutex
	now time.Time
}

// NewFixed creates a Fixed source reporting now.
func NewFixed(now time.Time) *Fixed {
	return &Fixed{now: now}
}

// Set replaces the reported time.
func (source *Fixed) Set(now time.Time) {
	source.mu.Lock()
	defer source.mu.Unlock()
	source.now = now
}

// Add moves the reported time forward.
func (source *Fixed) Add(delta time.Duration) {
	source.mu.Lock()
	defer source.mu.Unlock()
	source.now = source.now.Add(delta)
}

// Now implements Source.
func (source *Fixed) Now() time.Time {
	source.mu.Lock()
	defer source.mu.Unlock()
	return source.now
}

// NowIn implements Source.
func (source *Fixed) NowIn(zone string) (time.Time, error) {
	location, err := LoadLocation(zone)
	if err != nil {
		return time.Time{}, err
	}
	return source.Now().In(location), nil
}
