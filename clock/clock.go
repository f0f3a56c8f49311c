// Package clock provides the time source used by countdown timers.
package clock

import "time"

// Clock supplies the current time. Timers and the scheduler read time only
// through this interface, so tests can substitute a Mock for deterministic
// expiry.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// System returns a Clock backed by time.Now.
func System() Clock {
	return systemClock{}
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }
