package countdown

import "sync"

// registry is the shared set of running timers. It is mutated from arbitrary
// caller goroutines and from the scheduler, so every operation takes the
// lock. A timer is present iff it is running and has not yet been handed to
// the scheduler's pending-removal buffer.
type registry struct {
	mu     sync.Mutex
	timers map[*Timer]struct{}
}

func newRegistry() *registry {
	return &registry{timers: make(map[*Timer]struct{})}
}

func (r *registry) add(t *Timer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.timers[t] = struct{}{}
}

func (r *registry) remove(t *Timer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.timers, t)
}

func (r *registry) contains(t *Timer) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.timers[t]
	return ok
}

func (r *registry) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.timers)
}

// appendAll appends every registered timer to dst. The scheduler iterates
// this stable snapshot instead of the live set, so removals during the pass
// never touch a map under iteration.
func (r *registry) appendAll(dst *[]*Timer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for t := range r.timers {
		*dst = append(*dst, t)
	}
}
