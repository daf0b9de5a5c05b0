package engine

import (
	"sync"
	"time"
)

// Clock supplies the current time to the simulation.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock; its readings carry Go's monotonic component.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time {
	return time.Now()
}

// PausableClock wraps a clock and stops time while paused, so gravity, lock
// delay and sprint timing never see the paused interval.
type PausableClock struct {
	base     Clock
	paused   bool
	pausedAt time.Time
	offset   time.Duration
}

// NewPausableClock starts running.
func NewPausableClock(base Clock) *PausableClock {
	return &PausableClock{base: base}
}

// Now returns the base time minus all paused intervals.
func (c *PausableClock) Now() time.Time {
	if c.paused {
		return c.pausedAt.Add(-c.offset)
	}
	return c.base.Now().Add(-c.offset)
}

// Pause freezes the clock. No-op when already paused.
func (c *PausableClock) Pause() {
	if c.paused {
		return
	}
	c.paused = true
	c.pausedAt = c.base.Now()
}

// Resume continues from the frozen reading. No-op when running.
func (c *PausableClock) Resume() {
	if !c.paused {
		return
	}
	c.offset += c.base.Now().Sub(c.pausedAt)
	c.paused = false
}

// Paused reports whether the clock is frozen.
func (c *PausableClock) Paused() bool {
	return c.paused
}

// ManualClock is advanced explicitly. Useful for tests and headless runs.
type ManualClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewManualClock starts at t.
func NewManualClock(t time.Time) *ManualClock {
	return &ManualClock{now: t}
}

// Now returns the current reading.
func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
