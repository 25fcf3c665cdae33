package runloop

import "sync"

// Queue is a Dispatcher backed by a FIFO of pending functions. The owner
// either blocks in Run or pumps it with Drain.
type Queue struct {
	mu      sync.Mutex
	cond    *sync.Cond
	pending []func()
	stopped bool
}

// NewQueue returns an empty queue.
func NewQueue() *Queue {
	q := &Queue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Post appends fn. Functions posted after Stop are dropped.
func (q *Queue) Post(fn func()) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.stopped {
		return
	}
	q.pending = append(q.pending, fn)
	q.cond.Signal()
}

// Run executes posted functions until Stop is called.
func (q *Queue) Run() {
	for {
		q.mu.Lock()
		for len(q.pending) == 0 && !q.stopped {
			q.cond.Wait()
		}
		if q.stopped {
			q.mu.Unlock()
			return
		}
		fns := q.pending
		q.pending = nil
		q.mu.Unlock()

		for _, fn := range fns {
			fn()
		}
	}
}

// Drain executes everything queued so far without blocking and returns the
// number of functions run.
func (q *Queue) Drain() int {
	q.mu.Lock()
	fns := q.pending
	q.pending = nil
	q.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
	return len(fns)
}

// Stop makes Run return and discards pending functions.
func (q *Queue) Stop() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.stopped = true
	q.pending = nil
	q.cond.Broadcast()
}

// Stopped reports whether Stop has been called.
func (q *Queue) Stopped() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.stopped
}
