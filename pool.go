package countdown

import "sync"

// SlicePool provides reusable slices. The scheduler draws its per-pass
// registry snapshots from one of these so steady-state reconciliation does
// not allocate.
type SlicePool[T any] struct {
	pool    sync.Pool
	initCap int
}

// NewSlicePool creates a pool whose slices start with the given capacity.
func NewSlicePool[T any](initCap int) *SlicePool[T] {
	return &SlicePool[T]{
		initCap: initCap,
		pool: sync.Pool{
			New: func() interface{} {
				s := make([]T, 0, initCap)
				return &s
			},
		},
	}
}

// Get retrieves a slice from the pool, reset to zero length.
func (p *SlicePool[T]) Get() *[]T {
	s := p.pool.Get().(*[]T)
	*s = (*s)[:0]
	return s
}

// Put returns a slice to the pool. Undersized slices are discarded.
func (p *SlicePool[T]) Put(s *[]T) {
	if cap(*s) >= p.initCap {
		p.pool.Put(s)
	}
}
