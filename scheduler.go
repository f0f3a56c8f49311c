package countdown

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/xid"
	"go.uber.org/zap"

	"github.com/edgedlt/countdown/clock"
)

// Scheduler owns the active-timer set and the background checker that reaps
// expired timers. One long-lived goroutine sweeps all registered timers
// every PollInterval, stops the expired ones, and invokes their callbacks on
// its own goroutine. A slow callback therefore delays every other timer's
// reconciliation; that trade-off is inherent to the design.
//
// Construct with NewScheduler, call Start once, and Stop at shutdown. A
// stopped scheduler cannot be restarted. Most applications can use the
// package-level Default scheduler instead of constructing their own.
type Scheduler struct {
	cfg       SchedulerConfig
	reg       *registry
	snapshots *SlicePool[*Timer]
	clock     clock.Clock
	hooks     *Hooks
	logger    *zap.Logger

	// pending is the removal buffer for timers stopped during a
	// reconciliation pass. Touched only on the scheduler goroutine; drained
	// into registry removals after each pass completes.
	pending []*Timer

	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	started atomic.Bool
	stopped atomic.Bool

	// Stats
	passes atomic.Uint64
	reaped atomic.Uint64
	panics atomic.Uint64
}

// NewScheduler creates a Scheduler from the default configuration and the
// given options. The checker loop does not run until Start is called.
func NewScheduler(opts ...SchedulerOption) (*Scheduler, error) {
	cfg := DefaultSchedulerConfig()
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return NewSchedulerFromConfig(cfg)
}

// NewSchedulerFromConfig creates a Scheduler from a fully-built config, for
// callers using the preset configurations directly.
func NewSchedulerFromConfig(cfg SchedulerConfig) (*Scheduler, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.LogWarnings()

	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cfg:       cfg,
		reg:       newRegistry(),
		snapshots: NewSlicePool[*Timer](cfg.SnapshotCapacity),
		clock:     cfg.Clock,
		hooks:     cfg.Hooks,
		logger:    cfg.Logger,
		ctx:       ctx,
		cancel:    cancel,
	}, nil
}

// NewTimer creates an idle timer owned by this scheduler. The timer is not
// registered until Start is called on it.
func (s *Scheduler) NewTimer() *Timer {
	t := &Timer{
		id:    xid.New(),
		sched: s,
		done:  make(chan struct{}, 1),
	}
	t.startNano.Store(notRunning)
	t.countdownNano.Store(noCountdown)
	return t
}

// Start launches the checker loop. Subsequent calls are no-ops.
func (s *Scheduler) Start() {
	if s.stopped.Load() || !s.started.CompareAndSwap(false, true) {
		return
	}

	s.logger.Info("scheduler starting",
		zap.Duration("poll_interval", s.cfg.PollInterval),
		zap.Bool("isolate_callbacks", s.cfg.IsolateCallbacks))

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		// A panic escaping the loop (callback isolation disabled) kills
		// only the checker goroutine, not the process. The scheduler stays
		// permanently dead either way.
		defer RecoverPanic(RecoveryConfig{Logger: s.logger})
		s.run(s.ctx)
	}()
}

// Stop permanently halts the checker loop and waits for it to exit. Timers
// still registered are never reaped and their callbacks will not fire.
// There is no restart path; subsequent calls are no-ops.
func (s *Scheduler) Stop() {
	if !s.stopped.CompareAndSwap(false, true) {
		return
	}
	s.cancel()
	s.wg.Wait()

	active := s.reg.len()
	if s.hooks != nil && s.hooks.OnSchedulerStopped != nil {
		s.hooks.OnSchedulerStopped(SchedulerStoppedEvent{
			ActiveTimers: active,
			StoppedAt:    s.clock.Now(),
		})
	}
	s.logger.Info("scheduler stopped", zap.Int("active_timers", active))
}

// ActiveTimers returns the number of currently registered timers.
func (s *Scheduler) ActiveTimers() int {
	return s.reg.len()
}

// IsActive reports whether the timer is currently in the active set.
func (s *Scheduler) IsActive(t *Timer) bool {
	return s.reg.contains(t)
}

// SchedulerStats contains scheduler counters.
type SchedulerStats struct {
	ActiveTimers    int
	ReconcilePasses uint64
	TimersExpired   uint64
	CallbackPanics  uint64
}

// Stats returns current scheduler statistics.
func (s *Scheduler) Stats() SchedulerStats {
	return SchedulerStats{
		ActiveTimers:    s.reg.len(),
		ReconcilePasses: s.passes.Load(),
		TimersExpired:   s.reaped.Load(),
		CallbackPanics:  s.panics.Load(),
	}
}

// run is the checker loop. A blocking ticker between passes keeps firing
// latency bounded by PollInterval without spinning.
func (s *Scheduler) run(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.reconcile()
		}
	}
}

// reconcile performs one sweep: stop every expired timer in a stable
// snapshot of the registry, then drain the pending-removal buffer.
func (s *Scheduler) reconcile() {
	snap := s.snapshots.Get()
	defer s.snapshots.Put(snap)
	s.reg.appendAll(snap)

	expired := 0
	for _, t := range *snap {
		if !t.IsDone() {
			continue
		}
		expired++
		s.stopExpired(t)
	}

	for _, t := range s.pending {
		// A timer restarted between its buffered stop and this drain is
		// running again under the same registration; removing it would
		// orphan it.
		if t.IsRunning() {
			continue
		}
		s.reg.remove(t)
	}
	s.pending = s.pending[:0]

	s.passes.Add(1)
	s.reaped.Add(uint64(expired))

	if s.hooks != nil && s.hooks.OnReconcilePass != nil {
		s.hooks.OnReconcilePass(ReconcilePassEvent{
			Checked: len(*snap),
			Expired: expired,
			At:      s.clock.Now(),
		})
	}
}

// stopExpired stops one expired timer on the scheduler goroutine. With
// isolation enabled a panicking callback is recovered, logged, and reported;
// otherwise it propagates and terminates the loop.
func (s *Scheduler) stopExpired(t *Timer) {
	if s.cfg.IsolateCallbacks {
		defer RecoverPanic(RecoveryConfig{
			Logger: s.logger.With(zap.String("timer", t.ID())),
			Handler: func(panicVal interface{}, stack []byte) {
				s.panics.Add(1)
				if s.hooks != nil && s.hooks.OnCallbackPanic != nil {
					s.hooks.OnCallbackPanic(CallbackPanicEvent{
						Timer: t,
						Value: panicVal,
						Stack: stack,
						At:    s.clock.Now(),
					})
				}
			},
		})
	}

	if err := t.stop(true); err != nil {
		// A caller stopped it between snapshot and here.
		s.logger.Debug("expired timer already stopped",
			zap.String("timer", t.ID()), zap.Error(err))
	}
}

func (s *Scheduler) now() time.Time {
	return s.clock.Now()
}

func (s *Scheduler) isStopped() bool {
	return s.stopped.Load()
}

// register is the Start path into the active set.
func (s *Scheduler) register(t *Timer, startedAt time.Time) {
	s.reg.add(t)
	s.logger.Debug("timer started",
		zap.String("timer", t.ID()),
		zap.Duration("countdown", time.Duration(t.countdownNano.Load())))
	if s.hooks != nil && s.hooks.OnTimerStarted != nil {
		s.hooks.OnTimerStarted(TimerStartedEvent{
			Timer:     t,
			Countdown: time.Duration(t.countdownNano.Load()),
			StartedAt: startedAt,
		})
	}
}

// unregister is the direct removal path used by caller-context stops.
func (s *Scheduler) unregister(t *Timer) {
	s.reg.remove(t)
}

// deferRemoval buffers a removal issued during a reconciliation pass so the
// pass never mutates the registry it is iterating. Scheduler goroutine only.
func (s *Scheduler) deferRemoval(t *Timer) {
	s.pending = append(s.pending, t)
}

func (s *Scheduler) notifyStopped(t *Timer, expired bool, stoppedAt time.Time) {
	s.logger.Debug("timer stopped",
		zap.String("timer", t.ID()),
		zap.Bool("expired", expired))
	if s.hooks != nil && s.hooks.OnTimerStopped != nil {
		s.hooks.OnTimerStopped(TimerStoppedEvent{
			Timer:     t,
			Expired:   expired,
			StoppedAt: stoppedAt,
		})
	}
}

func (s *Scheduler) notifyReset(t *Timer, resetAt time.Time) {
	if s.hooks != nil && s.hooks.OnTimerReset != nil {
		s.hooks.OnTimerReset(TimerResetEvent{
			Timer:     t,
			Countdown: time.Duration(t.countdownNano.Load()),
			ResetAt:   resetAt,
		})
	}
}
