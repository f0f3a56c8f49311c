package countdown_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgedlt/countdown"
)

// TestDefaultScheduler exercises the process-wide facade start to finish in
// one test: StopScheduler is irreversible, so ordering matters and no other
// test may use the default scheduler.
func TestDefaultScheduler(t *testing.T) {
	assert.Same(t, countdown.Default(), countdown.Default())

	var fired atomic.Bool
	timer, err := countdown.NewTimer().
		SetCountdownTime(50 * time.Millisecond).
		SetCallback(func() { fired.Store(true) }).
		Start()
	require.NoError(t, err)

	assert.Eventually(t, fired.Load, time.Second, 5*time.Millisecond)
	assert.Eventually(t, func() bool { return !timer.IsRunning() },
		time.Second, 5*time.Millisecond)

	countdown.StopScheduler()
	// Idempotent.
	countdown.StopScheduler()

	_, err = countdown.NewTimer().SetCountdownTime(time.Second).Start()
	assert.ErrorIs(t, err, countdown.ErrSchedulerStopped)
}
