package countdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_MembershipSemantics(t *testing.T) {
	s, err := NewScheduler()
	require.NoError(t, err)

	r := newRegistry()
	a := s.NewTimer()
	b := s.NewTimer()

	r.add(a)
	r.add(a) // duplicate add is a no-op
	r.add(b)

	assert.Equal(t, 2, r.len())
	assert.True(t, r.contains(a))
	assert.True(t, r.contains(b))

	r.remove(a)
	assert.Equal(t, 1, r.len())
	assert.False(t, r.contains(a))

	// Removing an absent timer is harmless.
	r.remove(a)
	assert.Equal(t, 1, r.len())
}

func TestRegistry_Snapshot(t *testing.T) {
	s, err := NewScheduler()
	require.NoError(t, err)

	r := newRegistry()
	timers := map[*Timer]struct{}{}
	for i := 0; i < 5; i++ {
		tm := s.NewTimer()
		timers[tm] = struct{}{}
		r.add(tm)
	}

	pool := NewSlicePool[*Timer](4)
	snap := pool.Get()
	r.appendAll(snap)

	require.Len(t, *snap, 5)
	for _, tm := range *snap {
		_, ok := timers[tm]
		assert.True(t, ok)
	}

	// Pooled slices come back reset.
	pool.Put(snap)
	reused := pool.Get()
	assert.Empty(t, *reused)
}
