// Package clock provides the time source injected into every component
// that stamps or compares timestamps.
//
// All domain logic (session expiry, lockout windows, past-date checks,
// backup rotation) reads time through this interface so tests can drive
// it deterministically instead of sleeping.
package clock

import "time"

// Clock supplies the current wall-clock time.
type Clock interface {
	Now() time.Time
}

// System is a Clock backed by time.Now.
type System struct{}

// NewSystem creates a system clock.
func NewSystem() System {
	return System{}
}

// Now returns the current time.
func (System) Now() time.Time {
	return time.Now()
}
