// Package ring provides a bounded lock-free single-producer/single-consumer
// queue. One goroutine may push while another pops without locks; neither
// side allocates after construction.
package ring

import (
	"fmt"
	"sync/atomic"

	"github.com/cwbudde/algo-ugen/dsp/core"
)

// Ring is a fixed-capacity SPSC FIFO. The zero value is not usable.
type Ring[T any] struct {
	slots []T
	mask  uint64

	// head is advanced by the consumer, tail by the producer.
	head atomic.Uint64
	_    [56]byte
	tail atomic.Uint64
}

// New returns a ring holding up to capacity elements. capacity is rounded
// up to the next power of two.
func New[T any](capacity int) (*Ring[T], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("ring capacity must be > 0: %d", capacity)
	}

	size := core.NextPowerOfTwo(capacity)

	return &Ring[T]{
		slots: make([]T, size),
		mask:  uint64(size - 1),
	}, nil
}

// Cap returns the number of slots.
func (r *Ring[T]) Cap() int {
	return len(r.slots)
}

// Len returns the number of queued elements as seen by the caller.
func (r *Ring[T]) Len() int {
	return int(r.tail.Load() - r.head.Load())
}

// Push appends v. It returns false without blocking when the ring is full.
// Only one goroutine may call Push.
func (r *Ring[T]) Push(v T) bool {
	tail := r.tail.Load()
	if tail-r.head.Load() == uint64(len(r.slots)) {
		return false
	}

	r.slots[tail&r.mask] = v
	r.tail.Store(tail + 1)

	return true
}

// Pop removes the oldest element. It returns false when the ring is empty.
// Only one goroutine may call Pop.
func (r *Ring[T]) Pop() (T, bool) {
	var zero T

	head := r.head.Load()
	if head == r.tail.Load() {
		return zero, false
	}

	idx := head & r.mask
	v := r.slots[idx]
	r.slots[idx] = zero
	r.head.Store(head + 1)

	return v, true
}
