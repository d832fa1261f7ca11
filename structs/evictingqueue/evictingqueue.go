package evictingqueue

import "sync"

// EvictingQueue is a thread-safe queue structure that automatically maintains the desired maximum
// size by evicting its oldest element if a new element is being added when at capacity. It is
// modeled after the EvictingQueue class from the Google Guava library for Java.
type EvictingQueue[T any] struct {
	mu    sync.Mutex
	size  int
	queue []T
}

// New instantiates a new evicting queue with the specified maximum size. Sizes below one are
// raised to one.
func New[T any](maxSize int) *EvictingQueue[T] {
	if maxSize < 1 {
		maxSize = 1
	}

	return &EvictingQueue[T]{
		size:  maxSize,
		queue: make([]T, 0, maxSize),
	}
}

// Add appends the provided element to the evicting queue and evicts the oldest element if necessary
// to maintain its maximum size.
func (o *EvictingQueue[T]) Add(e T) {
	o.mu.Lock()
	defer o.mu.Unlock()

	//
	// Remove the oldest element from the tail of the queue if we are currently at capacity.
	//
	if len(o.queue) == o.size {
		var zero T

		o.queue[0] = zero
		o.queue = o.queue[1:]
	}

	//
	// Append the new element to head of the queue.
	//
	o.queue = append(o.queue, e)
}

// Get returns the element that exists at the specified index of the queue (0 being the oldest) and
// a true sentinel, or the zero value and a false sentinel if the index is out-of-range.
func (o *EvictingQueue[T]) Get(index int) (T, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if index < 0 || index >= len(o.queue) {
		var zero T
		return zero, false
	}

	return o.queue[index], true
}

// Last returns the most recently added element and a true sentinel, or the zero value and a false
// sentinel if the queue is empty.
func (o *EvictingQueue[T]) Last() (T, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if len(o.queue) == 0 {
		var zero T
		return zero, false
	}

	return o.queue[len(o.queue)-1], true
}

// Slice returns a copy of the queue's elements from oldest to newest.
func (o *EvictingQueue[T]) Slice() []T {
	o.mu.Lock()
	defer o.mu.Unlock()

	ret := make([]T, len(o.queue))
	copy(ret, o.queue)

	return ret
}

// Len returns the current length of the queue.
func (o *EvictingQueue[T]) Len() int {
	o.mu.Lock()
	defer o.mu.Unlock()

	return len(o.queue)
}
