//go:build integration

package mock

import (
	"sync"
	"time"
)

// Time is a settable clock. After Set it keeps ticking from the new instant.
type Time struct {
	mu      sync.Mutex
	current time.Time
	setAt   time.Time
}

// NewTime returns a clock that follows the wall clock.
func NewTime() *Time {
	now := time.Now()
	return &Time{current: now, setAt: now}
}

// Set moves the clock to currentTime.
func (t *Time) Set(currentTime time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.current = currentTime
	t.setAt = time.Now()
}

// Now returns the mocked instant plus the real time elapsed since Set.
func (t *Time) Now() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current.Add(time.Since(t.setAt))
}
