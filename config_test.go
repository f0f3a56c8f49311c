package countdown_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/edgedlt/countdown"
	"github.com/edgedlt/countdown/clock"
)

func TestDefaultSchedulerConfig(t *testing.T) {
	cfg := countdown.DefaultSchedulerConfig()

	assert.Equal(t, 10*time.Millisecond, cfg.PollInterval)
	assert.NotNil(t, cfg.Clock)
	assert.NotNil(t, cfg.Logger)
	assert.True(t, cfg.IsolateCallbacks)
	assert.Equal(t, 64, cfg.SnapshotCapacity)
	assert.Empty(t, cfg.Warnings())
}

func TestPresetConfigs(t *testing.T) {
	assert.Equal(t, time.Millisecond, countdown.HighResolutionConfig().PollInterval)
	assert.Equal(t, 100*time.Millisecond, countdown.LowPowerConfig().PollInterval)

	for _, cfg := range []countdown.SchedulerConfig{
		countdown.HighResolutionConfig(),
		countdown.LowPowerConfig(),
	} {
		s, err := countdown.NewSchedulerFromConfig(cfg)
		require.NoError(t, err)
		require.NotNil(t, s)
	}
}

func TestNewSchedulerFromConfig_Invalid(t *testing.T) {
	// Zero value misses required fields.
	_, err := countdown.NewSchedulerFromConfig(countdown.SchedulerConfig{})
	assert.Error(t, err)

	cfg := countdown.DefaultSchedulerConfig()
	cfg.Clock = nil
	_, err = countdown.NewSchedulerFromConfig(cfg)
	assert.Error(t, err)
}

func TestConfigOptions(t *testing.T) {
	mock := clock.NewMock(time.Unix(0, 0))
	logger := zap.NewNop()
	hooks := &countdown.Hooks{}

	s, err := countdown.NewScheduler(
		countdown.WithPollInterval(25*time.Millisecond),
		countdown.WithClock(mock),
		countdown.WithLogger(logger),
		countdown.WithHooks(hooks),
		countdown.WithCallbackIsolation(false),
		countdown.WithSnapshotCapacity(8),
	)
	require.NoError(t, err)
	require.NotNil(t, s)
}

func TestConfigWarnings(t *testing.T) {
	cfg := countdown.DefaultSchedulerConfig()
	cfg.PollInterval = 100 * time.Microsecond
	cfg.IsolateCallbacks = false

	warnings := cfg.Warnings()
	require.Len(t, warnings, 2)

	fields := []string{warnings[0].Field, warnings[1].Field}
	assert.Contains(t, fields, "PollInterval")
	assert.Contains(t, fields, "IsolateCallbacks")
	assert.Contains(t, warnings[0].String(), "suggestion")

	cfg = countdown.DefaultSchedulerConfig()
	cfg.PollInterval = 2 * time.Second
	warnings = cfg.Warnings()
	require.Len(t, warnings, 1)
	assert.Equal(t, "PollInterval", warnings[0].Field)
}

func TestHooksClone(t *testing.T) {
	var h *countdown.Hooks
	assert.Nil(t, h.Clone())

	called := false
	h = &countdown.Hooks{OnTimerStarted: func(countdown.TimerStartedEvent) { called = true }}
	clone := h.Clone()
	require.NotNil(t, clone)

	clone.OnTimerStarted(countdown.TimerStartedEvent{})
	assert.True(t, called)

	// Mutating the clone leaves the original alone.
	clone.OnTimerStarted = nil
	assert.NotNil(t, h.OnTimerStarted)
}
