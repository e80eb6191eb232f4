package clock

import (
	"sync"
	"time"
)

// Clock supplies the current instant used for every audit stamp. The record
// engine observes the clock at most once per write operation and reuses the
// value for every field it stamps.
type Clock interface {
	Now() time.Time
}

type wallClock struct{}

// NewWallClock returns the production clock. All instants are UTC.
func NewWallClock() Clock {
	return wallClock{}
}

func (wallClock) Now() time.Time {
	return time.Now().UTC()
}

// FixedClock is a test clock pinned to an instant so tests can assert exact
// audit-stamp values. Safe for concurrent use.
type FixedClock struct {
	mu  sync.RWMutex
	now time.Time
}

// NewFixedClock returns a clock frozen at t.
func NewFixedClock(t time.Time) *FixedClock {
	return &FixedClock{now: t.UTC()}
}

func (c *FixedClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now
}

// SetTime moves the clock to t.
func (c *FixedClock) SetTime(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t.UTC()
}

// Advance moves the clock forward by d.
func (c *FixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
