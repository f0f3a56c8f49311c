package countdown

import "time"

// Hooks provides optional callbacks for observability events.
// All hooks are invoked synchronously - keep implementations fast. Hooks
// fired by the scheduler run on the scheduler goroutine and delay
// reconciliation of other timers while they execute.
type Hooks struct {
	// OnTimerStarted is called when a timer is started.
	OnTimerStarted func(TimerStartedEvent)

	// OnTimerStopped is called when a timer is stopped, either explicitly
	// by a caller or by the scheduler on expiry.
	OnTimerStopped func(TimerStoppedEvent)

	// OnTimerReset is called when a running timer's countdown is restarted.
	OnTimerReset func(TimerResetEvent)

	// OnCallbackPanic is called when a completion callback panics during a
	// reconciliation pass and callback isolation is enabled.
	OnCallbackPanic func(CallbackPanicEvent)

	// OnReconcilePass is called after each reconciliation pass over the
	// active set.
	OnReconcilePass func(ReconcilePassEvent)

	// OnSchedulerStopped is called once when the scheduler shuts down.
	OnSchedulerStopped func(SchedulerStoppedEvent)
}

// Clone returns a shallow copy of the hooks.
func (h *Hooks) Clone() *Hooks {
	if h == nil {
		return nil
	}
	clone := *h
	return &clone
}

// TimerStartedEvent contains information about a started timer.
type TimerStartedEvent struct {
	Timer     *Timer
	Countdown time.Duration
	StartedAt time.Time
}

// TimerStoppedEvent contains information about a stopped timer.
type TimerStoppedEvent struct {
	Timer *Timer
	// Expired is true when the scheduler stopped the timer on expiry,
	// false for an explicit caller Stop.
	Expired   bool
	StoppedAt time.Time
}

// TimerResetEvent contains information about a reset countdown.
type TimerResetEvent struct {
	Timer     *Timer
	Countdown time.Duration
	ResetAt   time.Time
}

// CallbackPanicEvent contains information about a recovered callback panic.
type CallbackPanicEvent struct {
	Timer *Timer
	Value interface{}
	Stack []byte
	At    time.Time
}

// ReconcilePassEvent contains information about one sweep of the active set.
type ReconcilePassEvent struct {
	// Checked is the number of timers in the snapshot for this pass.
	Checked int
	// Expired is the number of timers this pass stopped.
	Expired int
	At      time.Time
}

// SchedulerStoppedEvent contains information about scheduler shutdown.
type SchedulerStoppedEvent struct {
	// ActiveTimers is the number of timers still registered at shutdown.
	// They are never reaped; their callbacks will not fire.
	ActiveTimers int
	StoppedAt    time.Time
}
