// Package countdown implements one-shot countdown timers reaped by a shared
// background scheduler. Callers configure a duration and an optional
// completion callback, start the timer, and either stop it themselves or let
// the scheduler detect expiry and invoke the callback. Resolution is coarse
// and poll-based; timers fire at most once per start.
package countdown

import "sync"

var (
	defaultMu        sync.Mutex
	defaultScheduler *Scheduler
)

// Default returns the process-wide scheduler, creating and starting it on
// first use. It is permanently halted by StopScheduler.
func Default() *Scheduler {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultScheduler == nil {
		// The default config cannot fail validation.
		s, err := NewScheduler()
		if err != nil {
			panic(err)
		}
		s.Start()
		defaultScheduler = s
	}
	return defaultScheduler
}

// NewTimer creates an idle timer owned by the process-wide scheduler.
func NewTimer() *Timer {
	return Default().NewTimer()
}

// StopScheduler permanently halts the process-wide scheduler, for clean
// shutdown. Timers still running are never reaped, and timers started
// afterwards fail with ErrSchedulerStopped. No-op if the default scheduler
// was never used.
func StopScheduler() {
	defaultMu.Lock()
	s := defaultScheduler
	defaultMu.Unlock()
	if s != nil {
		s.Stop()
	}
}
