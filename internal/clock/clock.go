// Package clock supplies session timestamps. Tests swap in a fixed clock.
package clock

import "time"

// Clock reports the current time.
type Clock interface {
	Now() time.Time
}

// RealClock reads the system clock, truncated to seconds so that stored
// session timestamps stay readable.
type RealClock struct{}

// Now returns the current system time.
func (c *RealClock) Now() time.Time {
	return time.Now().Truncate(time.Second)
}

// FakeClock returns a preset time until moved.
type FakeClock struct {
	current time.Time
}

// NewFakeClock creates a FakeClock stopped at t.
func NewFakeClock(t time.Time) *FakeClock {
	return &FakeClock{current: t}
}

// Now returns the preset time.
func (c *FakeClock) Now() time.Time {
	return c.current
}

// Advance moves the clock forward by d.
func (c *FakeClock) Advance(d time.Duration) {
	c.current = c.current.Add(d)
}
