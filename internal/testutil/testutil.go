// Package testutil provides test helpers for the countdown library.
package testutil

import (
	"sync"

	"github.com/edgedlt/countdown"
)

// Recorder collects hook events so tests can assert on them without racing
// the scheduler goroutine.
type Recorder struct {
	mu             sync.Mutex
	started        []countdown.TimerStartedEvent
	stopped        []countdown.TimerStoppedEvent
	resets         []countdown.TimerResetEvent
	panics         []countdown.CallbackPanicEvent
	passes         []countdown.ReconcilePassEvent
	schedulerStops []countdown.SchedulerStoppedEvent
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Hooks returns a Hooks struct that records every event into the Recorder.
func (r *Recorder) Hooks() *countdown.Hooks {
	return &countdown.Hooks{
		OnTimerStarted: func(e countdown.TimerStartedEvent) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.started = append(r.started, e)
		},
		OnTimerStopped: func(e countdown.TimerStoppedEvent) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.stopped = append(r.stopped, e)
		},
		OnTimerReset: func(e countdown.TimerResetEvent) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.resets = append(r.resets, e)
		},
		OnCallbackPanic: func(e countdown.CallbackPanicEvent) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.panics = append(r.panics, e)
		},
		OnReconcilePass: func(e countdown.ReconcilePassEvent) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.passes = append(r.passes, e)
		},
		OnSchedulerStopped: func(e countdown.SchedulerStoppedEvent) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.schedulerStops = append(r.schedulerStops, e)
		},
	}
}

// Started returns a copy of the recorded start events.
func (r *Recorder) Started() []countdown.TimerStartedEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]countdown.TimerStartedEvent(nil), r.started...)
}

// Stopped returns a copy of the recorded stop events.
func (r *Recorder) Stopped() []countdown.TimerStoppedEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]countdown.TimerStoppedEvent(nil), r.stopped...)
}

// Resets returns a copy of the recorded reset events.
func (r *Recorder) Resets() []countdown.TimerResetEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]countdown.TimerResetEvent(nil), r.resets...)
}

// Panics returns a copy of the recorded callback-panic events.
func (r *Recorder) Panics() []countdown.CallbackPanicEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]countdown.CallbackPanicEvent(nil), r.panics...)
}

// Passes returns a copy of the recorded reconciliation-pass events.
func (r *Recorder) Passes() []countdown.ReconcilePassEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]countdown.ReconcilePassEvent(nil), r.passes...)
}

// SchedulerStops returns a copy of the recorded shutdown events.
func (r *Recorder) SchedulerStops() []countdown.SchedulerStoppedEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]countdown.SchedulerStoppedEvent(nil), r.schedulerStops...)
}
