package dock

import (
	"context"
	"errors"
	"sync"
)

// DefaultQueueSize bounds the number of pending tasks.
const DefaultQueueSize = 64

var (
	// ErrQueueStopped is returned by Do once the queue has stopped.
	ErrQueueStopped = errors.New("dock queue stopped")
	// ErrQueueFull is returned by Do when no task slot is free.
	ErrQueueFull = errors.New("dock queue full")
)

type task struct {
	key string
	fn  func()
}

// Queue runs tasks one at a time on a single goroutine. Keyed submissions
// coalesce: while a task with a given key is pending, further submissions
// with that key are dropped. A key is released when its task starts, so a
// trigger that arrives mid-run schedules one more pass.
type Queue struct {
	tasks   chan task
	stopped chan struct{}

	mu      sync.Mutex
	pending map[string]bool
}

// NewQueue returns a queue with room for size pending tasks.
func NewQueue(size int) *Queue {
	if size <= 0 {
		size = DefaultQueueSize
	}
	return &Queue{
		tasks:   make(chan task, size),
		stopped: make(chan struct{}),
		pending: make(map[string]bool),
	}
}

// Run executes tasks until ctx is cancelled. It must be called once.
func (q *Queue) Run(ctx context.Context) {
	defer close(q.stopped)

	for {
		select {
		case <-ctx.Done():
			return
		case t := <-q.tasks:
			if t.key != "" {
				q.mu.Lock()
				delete(q.pending, t.key)
				q.mu.Unlock()
			}
			// Cancellation wins over queued work.
			if ctx.Err() != nil {
				return
			}
			t.fn()
		}
	}
}

// Submit enqueues fn without blocking. It reports false when the task was
// coalesced with a pending one or the queue is full.
func (q *Queue) Submit(key string, fn func()) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if key != "" && q.pending[key] {
		return false
	}
	select {
	case q.tasks <- task{key: key, fn: fn}:
		if key != "" {
			q.pending[key] = true
		}
		return true
	default:
		return false
	}
}

// Do runs fn on the queue goroutine and waits for it to finish.
func (q *Queue) Do(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	if !q.Submit("", func() {
		defer close(done)
		fn()
	}) {
		return ErrQueueFull
	}
	select {
	case <-done:
		return nil
	case <-q.stopped:
		// fn may have completed just before the queue stopped.
		select {
		case <-done:
			return nil
		default:
			return ErrQueueStopped
		}
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stopped is closed when Run returns.
func (q *Queue) Stopped() <-chan struct{} {
	return q.stopped
}
