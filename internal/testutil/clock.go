// Package testutil provides deterministic stand-ins for the injected
// time and id sources, so tests produce identical documents on every
// run.
package testutil

import "time"

// ManualClock is a Clock whose current time only moves when the test
// advances it.
type ManualClock struct {
	now time.Time
}

// NewManualClock creates a clock frozen at the given instant.
func NewManualClock(at time.Time) *ManualClock {
	return &ManualClock{now: at}
}

// Now returns the clock's current instant.
func (c *ManualClock) Now() time.Time {
	return c.now
}

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

// Set jumps the clock to an exact instant.
func (c *ManualClock) Set(at time.Time) {
	c.now = at
}
