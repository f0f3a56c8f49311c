package countdown

import (
	"errors"
	"fmt"
)

// ErrInvalidState is the root of all state-machine errors. Use errors.Is
// against this to detect any illegal transition, or against one of the
// specific errors below for the exact cause.
var ErrInvalidState = errors.New("invalid timer state")

var (
	// ErrAlreadyRunning is returned by Start on a running timer.
	ErrAlreadyRunning = fmt.Errorf("%w: timer is already running", ErrInvalidState)

	// ErrNoCountdown is returned by Start when no countdown time has been
	// set. Use SetCountdownTime first.
	ErrNoCountdown = fmt.Errorf("%w: no countdown time set", ErrInvalidState)

	// ErrNotRunning is returned by Stop and Reset on an idle timer.
	ErrNotRunning = fmt.Errorf("%w: timer is not running", ErrInvalidState)
)

// ErrSchedulerStopped is returned by Start when the owning scheduler has been
// permanently stopped. A stopped scheduler never reaps timers, so starting
// new ones is refused.
var ErrSchedulerStopped = errors.New("scheduler is stopped")
