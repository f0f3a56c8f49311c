package countdown

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/edgedlt/countdown/clock"
)

// SchedulerConfig holds the configuration for a Scheduler.
// Use NewScheduler with functional options to create a configured instance.
type SchedulerConfig struct {
	// PollInterval is how often the scheduler sweeps the active set for
	// expired timers. It bounds callback-invocation latency: a timer fires
	// up to roughly one interval after its countdown elapses.
	// Default: 10ms
	PollInterval time.Duration

	// Clock is the time source for timers and reconciliation passes.
	// Default: clock.System()
	Clock clock.Clock

	// Logger for structured logging.
	// Defaults to a no-op logger if not provided.
	Logger *zap.Logger

	// Hooks provides callbacks for observability events.
	// All hooks are optional - nil hooks are ignored.
	Hooks *Hooks

	// IsolateCallbacks controls whether a panic from a completion callback
	// invoked by the scheduler is recovered per-timer. When false, a single
	// panicking callback permanently terminates the scheduler goroutine.
	// Default: true
	IsolateCallbacks bool

	// SnapshotCapacity is the initial capacity of the pooled slices used
	// for per-pass registry snapshots.
	// Default: 64
	SnapshotCapacity int
}

// SchedulerOption is a functional option for configuring a Scheduler.
// Options are applied in order, so later options override earlier ones.
type SchedulerOption func(*SchedulerConfig) error

// DefaultSchedulerConfig returns sensible defaults: a 10ms sweep interval
// with callback isolation enabled.
func DefaultSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		PollInterval:     10 * time.Millisecond,
		Clock:            clock.System(),
		Logger:           zap.NewNop(),
		IsolateCallbacks: true,
		SnapshotCapacity: 64,
	}
}

// HighResolutionConfig returns a configuration for latency-sensitive
// workloads. Sweeps every millisecond at the cost of more wakeups.
func HighResolutionConfig() SchedulerConfig {
	cfg := DefaultSchedulerConfig()
	cfg.PollInterval = time.Millisecond
	return cfg
}

// LowPowerConfig returns a configuration for coarse timers where wakeup
// frequency matters more than firing latency.
func LowPowerConfig() SchedulerConfig {
	cfg := DefaultSchedulerConfig()
	cfg.PollInterval = 100 * time.Millisecond
	return cfg
}

// validate checks that all required fields are set and values are valid.
func (c *SchedulerConfig) validate() error {
	if c.PollInterval <= 0 {
		return fmt.Errorf("poll interval must be positive, got %v", c.PollInterval)
	}
	if c.Clock == nil {
		return fmt.Errorf("clock is required")
	}
	if c.Logger == nil {
		return fmt.Errorf("logger is required")
	}
	if c.SnapshotCapacity < 1 {
		return fmt.Errorf("snapshot capacity must be at least 1, got %d", c.SnapshotCapacity)
	}
	return nil
}

// ConfigWarning represents a warning about potentially suboptimal
// configuration.
type ConfigWarning struct {
	// Field is the name of the config field that triggered the warning.
	Field string
	// Message describes the potential issue.
	Message string
	// Suggestion provides a recommended action or value.
	Suggestion string
}

// String returns a human-readable warning message.
func (w ConfigWarning) String() string {
	return fmt.Sprintf("%s: %s (suggestion: %s)", w.Field, w.Message, w.Suggestion)
}

// Warnings returns warnings for suboptimal configuration choices.
func (c *SchedulerConfig) Warnings() []ConfigWarning {
	var warnings []ConfigWarning

	if c.PollInterval < time.Millisecond {
		warnings = append(warnings, ConfigWarning{
			Field:      "PollInterval",
			Message:    fmt.Sprintf("poll interval %v is very short, increasing CPU wakeups", c.PollInterval),
			Suggestion: "use PollInterval >= 1ms unless sub-millisecond firing latency is required",
		})
	}
	if c.PollInterval > time.Second {
		warnings = append(warnings, ConfigWarning{
			Field:      "PollInterval",
			Message:    fmt.Sprintf("poll interval %v delays callback invocation by up to that much", c.PollInterval),
			Suggestion: "use PollInterval <= 100ms for responsive expiry",
		})
	}
	if !c.IsolateCallbacks {
		warnings = append(warnings, ConfigWarning{
			Field:      "IsolateCallbacks",
			Message:    "callback isolation disabled; one panicking callback permanently terminates the scheduler",
			Suggestion: "leave IsolateCallbacks enabled unless reproducing fail-fast semantics",
		})
	}

	return warnings
}

// LogWarnings logs all configuration warnings.
func (c *SchedulerConfig) LogWarnings() {
	for _, w := range c.Warnings() {
		c.Logger.Warn("suboptimal configuration",
			zap.String("field", w.Field),
			zap.String("message", w.Message),
			zap.String("suggestion", w.Suggestion),
		)
	}
}

// WithPollInterval sets how often the scheduler sweeps for expired timers.
// Default: 10ms
func WithPollInterval(interval time.Duration) SchedulerOption {
	return func(c *SchedulerConfig) error {
		if interval <= 0 {
			return fmt.Errorf("poll interval must be positive, got %v", interval)
		}
		c.PollInterval = interval
		return nil
	}
}

// WithClock sets the time source.
// Default: clock.System()
func WithClock(clk clock.Clock) SchedulerOption {
	return func(c *SchedulerConfig) error {
		if clk == nil {
			return fmt.Errorf("clock cannot be nil")
		}
		c.Clock = clk
		return nil
	}
}

// WithLogger sets the structured logger.
// If not provided, a no-op logger is used.
func WithLogger(logger *zap.Logger) SchedulerOption {
	return func(c *SchedulerConfig) error {
		if logger == nil {
			return fmt.Errorf("logger cannot be nil")
		}
		c.Logger = logger
		return nil
	}
}

// WithHooks sets the observability hooks.
// All hooks are optional - nil hooks are ignored.
func WithHooks(hooks *Hooks) SchedulerOption {
	return func(c *SchedulerConfig) error {
		c.Hooks = hooks
		return nil
	}
}

// WithCallbackIsolation controls per-timer panic recovery during
// reconciliation passes.
// Default: true
func WithCallbackIsolation(isolate bool) SchedulerOption {
	return func(c *SchedulerConfig) error {
		c.IsolateCallbacks = isolate
		return nil
	}
}

// WithSnapshotCapacity sets the initial capacity of pooled snapshot slices.
// Size it to the expected number of concurrently running timers.
// Default: 64
func WithSnapshotCapacity(capacity int) SchedulerOption {
	return func(c *SchedulerConfig) error {
		if capacity < 1 {
			return fmt.Errorf("snapshot capacity must be at least 1, got %d", capacity)
		}
		c.SnapshotCapacity = capacity
		return nil
	}
}
