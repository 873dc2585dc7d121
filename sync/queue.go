/*
Package sync provides synchronization primitives that complement the
sync package of Go's standard library. So far, this package only
provides a FIFO queue whose mutating operations are serialized by a
per-queue lock. For other synchronization primitives, such as
condition variables, object pools, or atomic memory primitives, please
use the standard library.
*/
package sync

import (
	"errors"
	"sync"
	"unsafe"
)

// ErrEmptyQueue is returned by Pop when the queue has no elements.
var ErrEmptyQueue = errors.New("pop from empty queue")

/*
A Queue is a first-in, first-out queue that can be mutated
concurrently. Push, Pop, Swap, Emplace, and Drain are each atomic with
respect to each other: every operation runs as a single critical
section guarded by the queue's own lock, so elements are popped in the
order in which their pushes were serialized. Contending goroutines are
not served in any particular order.

The underlying storage is private; there is no way to iterate over a
Queue or inspect it without holding its lock.

The zero Queue is empty and ready for use. A Queue must not be copied
after first use.
*/
type Queue[T any] struct {
	mu    sync.Mutex
	items []T
	head  int
}

// NewQueue returns a queue that contains the given values, with the
// first value at the head.
func NewQueue[T any](values ...T) *Queue[T] {
	return &Queue[T]{items: append([]T(nil), values...)}
}

func (q *Queue[T]) pushBack(v T) {
	q.items = append(q.items, v)
}

// Push inserts v at the tail of the queue.
func (q *Queue[T]) Push(v T) {
	q.mu.Lock()
	q.pushBack(v)
	q.mu.Unlock()
}

/*
Emplace calls construct while holding the queue's lock and inserts the
result at the tail of the queue. construct must not access q.
*/
func (q *Queue[T]) Emplace(construct func() T) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pushBack(construct())
}

/*
Pop removes and returns the element at the head of the queue. It
returns ErrEmptyQueue if the queue is empty.

Checking Len or Empty before calling Pop is not sufficient when other
goroutines pop concurrently; handle ErrEmptyQueue instead.
*/
func (q *Queue[T]) Pop() (v T, err error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.head == len(q.items) {
		err = ErrEmptyQueue
		return
	}
	var zero T
	v = q.items[q.head]
	q.items[q.head] = zero
	q.head++
	switch {
	case q.head == len(q.items):
		q.items = q.items[:0]
		q.head = 0
	case q.head > len(q.items)/2:
		n := copy(q.items, q.items[q.head:])
		clear(q.items[n:])
		q.items = q.items[:n]
		q.head = 0
	}
	return
}

/*
Swap exchanges the contents of q and other, atomically with respect to
both queues.

Both locks are acquired in the order of the queues' addresses, so
concurrent calls of a.Swap(b) and b.Swap(a) cannot deadlock. q.Swap(q)
has no effect.
*/
func (q *Queue[T]) Swap(other *Queue[T]) {
	if q == other {
		return
	}
	first, second := q, other
	if uintptr(unsafe.Pointer(second)) < uintptr(unsafe.Pointer(first)) {
		first, second = second, first
	}
	first.mu.Lock()
	defer first.mu.Unlock()
	second.mu.Lock()
	defer second.mu.Unlock()
	q.items, other.items = other.items, q.items
	q.head, other.head = other.head, q.head
}

// Drain removes and returns all elements of the queue, head first.
func (q *Queue[T]) Drain() []T {
	q.mu.Lock()
	defer q.mu.Unlock()
	result := append([]T(nil), q.items[q.head:]...)
	q.items = nil
	q.head = 0
	return result
}

// Len returns the number of elements in the queue.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items) - q.head
}

// Empty reports whether the queue has no elements.
func (q *Queue[T]) Empty() bool {
	return q.Len() == 0
}
