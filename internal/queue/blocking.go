package queue

import (
	"context"
	"sync"
)

// Blocking is an unbounded thread-safe queue with a blocking receive.
//
// Receive removes the most recently sent value (LIFO). Consumers that only
// care about the latest update, like phase watchers, are not affected by
// the order; consumers needing arrival order must not rely on it.
type Blocking[T any] struct {
	// items holds pending values, newest last.
	items []T
	// mu protects items.
	mu sync.Mutex
	// cond is signaled when a value is appended to items.
	cond *sync.Cond
}

// NewBlocking creates an empty queue.
func NewBlocking[T any]() *Blocking[T] {
	q := new(Blocking[T])
	q.cond = sync.NewCond(&q.mu)

	return q
}

// Send appends value and wakes one blocked receiver, if any.
func (q *Blocking[T]) Send(value T) {
	q.mu.Lock()
	q.items = append(q.items, value)
	q.mu.Unlock()

	q.cond.Signal()
}

// Receive blocks until the queue is not empty, then removes and returns
// the most recently sent value.
func (q *Blocking[T]) Receive() T {
	q.mu.Lock()
	defer q.mu.Unlock()

	// Loop guards against spurious wakeups.
	for len(q.items) == 0 {
		q.cond.Wait()
	}

	return q.pop()
}

// ReceiveContext behaves like Receive but gives up when ctx is done.
// A value already available is returned even if ctx has ended.
func (q *Blocking[T]) ReceiveContext(ctx context.Context) (T, error) {
	var zero T

	// Broadcast under the lock so a waiter cannot miss the wakeup between
	// its ctx check and cond.Wait.
	stop := context.AfterFunc(ctx, func() {
		q.mu.Lock()
		defer q.mu.Unlock()

		q.cond.Broadcast()
	})
	defer stop()

	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.items) == 0 {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		q.cond.Wait()
	}

	return q.pop(), nil
}

// Len returns the number of pending values.
func (q *Blocking[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return len(q.items)
}

// pop removes the newest value. The caller must hold q.mu and ensure items is not empty.
func (q *Blocking[T]) pop() T {
	var zero T

	last := len(q.items) - 1
	value := q.items[last]

	// Drop the reference so the backing array does not keep it alive.
	q.items[last] = zero
	q.items = q.items[:last]

	return value
}
