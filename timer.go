package countdown

import (
	"sync/atomic"
	"time"

	"github.com/rs/xid"
)

const (
	notRunning  = int64(-1) // startNano sentinel: timer is idle
	noCountdown = int64(-1) // countdownNano sentinel: duration never set
)

// NoRemaining is returned by RemainingTime when the timer is not running.
const NoRemaining = int64(-1)

// Timer is a one-shot countdown. Configure a duration and optionally a
// callback, then Start. The owning Scheduler detects expiry and stops the
// timer, invoking the callback exactly once per start/stop cycle. A stopped
// timer may be reconfigured and started again.
//
// All state lives in independently-atomic scalars; there is no per-timer
// lock. Each field is individually consistent but reads across fields are
// not: a caller can observe IsRunning()==true and then RemainingTime
// returning NoRemaining if a concurrent stop interleaves. That window is
// part of the contract.
type Timer struct {
	id    xid.ID
	sched *Scheduler

	// startNano is the start timestamp in unix nanos, or notRunning.
	// This field is the running/idle discriminator.
	startNano atomic.Int64

	// countdownNano is the configured duration in nanos, or noCountdown.
	// Remaining-time computation re-reads it on every call, so changing it
	// while running changes the remaining time immediately.
	countdownNano atomic.Int64

	callback atomic.Pointer[func()]

	// stopping guards re-entrant Stop calls, including Stop called from
	// within the completion callback.
	stopping atomic.Bool

	// done receives one signal per stop/expiry. Buffered; sends never block.
	done chan struct{}
}

// ID returns the timer's unique identifier, used for log and hook
// correlation.
func (t *Timer) ID() string {
	return t.id.String()
}

// SetCountdownTime sets the duration the timer counts down from.
// The value is read on every remaining-time computation, so setting it on a
// running timer moves the expiry immediately. Returns the timer for
// chaining.
func (t *Timer) SetCountdownTime(d time.Duration) *Timer {
	t.countdownNano.Store(int64(d))
	return t
}

// SetCallback sets or replaces the completion callback. It may be called
// before or after Start; the value loaded at stop time is the one invoked.
// Returns the timer for chaining.
func (t *Timer) SetCallback(fn func()) *Timer {
	if fn == nil {
		t.callback.Store(nil)
		return t
	}
	t.callback.Store(&fn)
	return t
}

// Start begins the countdown and registers the timer with its scheduler.
// Fails with ErrAlreadyRunning if the timer is running, ErrNoCountdown if no
// duration has been set, and ErrSchedulerStopped if the scheduler has been
// permanently stopped. Returns the timer for chaining.
func (t *Timer) Start() (*Timer, error) {
	if t.sched.isStopped() {
		return t, ErrSchedulerStopped
	}
	if t.IsRunning() {
		return t, ErrAlreadyRunning
	}
	if t.countdownNano.Load() == noCountdown {
		return t, ErrNoCountdown
	}

	startedAt := t.sched.now()
	t.startNano.Store(startedAt.UnixNano())
	t.sched.register(t, startedAt)
	return t, nil
}

// Stop halts a running timer, invokes the callback if one is set, and
// removes the timer from the scheduler's active set. Fails with
// ErrNotRunning on an idle timer. A Stop that races with another in-progress
// Stop, including one issued from inside the callback, returns silently
// without side effects.
//
// The callback runs synchronously on the calling goroutine and observes the
// timer already idle. Panics from the callback are not caught here; they
// propagate to the caller. Registry removal still happens on the panic path.
// Returns the timer for chaining.
func (t *Timer) Stop() (*Timer, error) {
	return t, t.stop(false)
}

// stop is the single stop path. fromScheduler is true only when called by
// the scheduler's reconciliation pass, in which case registry removal is
// deferred into the pending buffer instead of performed directly, so the
// pass never mutates the set it is iterating.
func (t *Timer) stop(fromScheduler bool) error {
	// The stopping guard is checked before the running check: the callback
	// observes the timer as idle, so a recursive Stop must short-circuit
	// here rather than surface ErrNotRunning.
	if t.stopping.Load() {
		return nil
	}
	if !t.IsRunning() {
		return ErrNotRunning
	}
	if !t.stopping.CompareAndSwap(false, true) {
		// Lost the race to a concurrent Stop.
		return nil
	}

	stoppedAt := t.sched.now()
	t.startNano.Store(notRunning)

	defer func() {
		if fromScheduler {
			t.sched.deferRemoval(t)
		} else {
			t.sched.unregister(t)
		}
		t.signal()
		t.sched.notifyStopped(t, fromScheduler, stoppedAt)
		t.stopping.Store(false)
	}()

	if cb := t.callback.Load(); cb != nil {
		(*cb)()
	}
	return nil
}

// Reset restarts the countdown in place: the start timestamp is refreshed
// while duration, callback, and registry membership are preserved. Fails
// with ErrNotRunning on an idle timer. Returns the timer for chaining.
func (t *Timer) Reset() (*Timer, error) {
	if !t.IsRunning() {
		return t, ErrNotRunning
	}
	resetAt := t.sched.now()
	t.startNano.Store(resetAt.UnixNano())
	t.sched.notifyReset(t, resetAt)
	return t, nil
}

// IsRunning reports whether the timer is currently counting down.
func (t *Timer) IsRunning() bool {
	return t.startNano.Load() != notRunning
}

// IsStopping reports whether a Stop is currently in progress.
func (t *Timer) IsStopping() bool {
	return t.stopping.Load()
}

// IsDone reports whether a running timer's countdown has elapsed. It is
// false, not an error, on an idle timer. A done timer stays in the active
// set until the scheduler's next reconciliation pass reaps it.
func (t *Timer) IsDone() bool {
	rem, ok := t.remaining()
	return ok && rem <= 0
}

// RemainingTime returns the remaining time expressed in whole units,
// truncated toward zero, or NoRemaining if the timer is not running. The
// value can be zero or negative once the countdown has elapsed but the timer
// has not yet been reaped.
func (t *Timer) RemainingTime(unit time.Duration) int64 {
	rem, ok := t.remaining()
	if !ok {
		return NoRemaining
	}
	if unit <= 0 {
		unit = time.Millisecond
	}
	return int64(rem / unit)
}

// Remaining returns the remaining time as a Duration and whether the timer
// is running.
func (t *Timer) Remaining() (time.Duration, bool) {
	return t.remaining()
}

// C returns a channel that receives one value per stop or expiry. The
// channel is buffered and sends are non-blocking, so an unread signal is
// coalesced with the next one.
func (t *Timer) C() <-chan struct{} {
	return t.done
}

func (t *Timer) remaining() (time.Duration, bool) {
	start := t.startNano.Load()
	if start == notRunning {
		return 0, false
	}
	elapsed := t.sched.now().UnixNano() - start
	return time.Duration(t.countdownNano.Load() - elapsed), true
}

func (t *Timer) signal() {
	select {
	case t.done <- struct{}{}:
	default:
	}
}
