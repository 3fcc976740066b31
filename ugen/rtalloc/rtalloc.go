// Package rtalloc is a bounded-time allocator for buffers requested on the
// audio path.
//
// Memory is reserved up front as one slab per power-of-two size class.
// Alloc and Free are O(1) (plus zero-filling the returned buffer) and never
// touch the Go heap after New. An Allocator is owned by a single goroutine;
// only Stats may be read from elsewhere.
package rtalloc

import (
	"errors"
	"fmt"
	"math/bits"
	"sync/atomic"
	"unsafe"
)

// Config sizes an Allocator. Sizes are counted in float64 samples.
type Config struct {
	MinSize  int `yaml:"min_size"`
	MaxSize  int `yaml:"max_size"`
	PerClass int `yaml:"per_class"`
}

// DefaultConfig covers payloads from 16 to 8192 samples.
func DefaultConfig() Config {
	return Config{MinSize: 16, MaxSize: 8192, PerClass: 32}
}

// ErrConfig is returned for an unusable Config.
var ErrConfig = errors.New("rtalloc: invalid config")

// Stats are cumulative allocator counters.
type Stats struct {
	Allocs   uint64
	Frees    uint64
	Failures uint64
	InUse    int64
}

type class struct {
	size int
	slab []float64
	free []int32
	used []bool
}

// Allocator hands out fixed-capacity buffers from preallocated slabs.
type Allocator struct {
	minShift int
	maxSize  int
	classes  []class

	allocs   atomic.Uint64
	frees    atomic.Uint64
	failures atomic.Uint64
	inUse    atomic.Int64
}

// New reserves every slab described by cfg.
func New(cfg Config) (*Allocator, error) {
	if cfg.MinSize <= 0 || cfg.MaxSize < cfg.MinSize || cfg.PerClass <= 0 {
		return nil, fmt.Errorf("%w: %+v", ErrConfig, cfg)
	}

	minSize := ceilPow2(cfg.MinSize)
	maxSize := ceilPow2(cfg.MaxSize)

	a := &Allocator{
		minShift: bits.TrailingZeros(uint(minSize)),
		maxSize:  maxSize,
	}

	for size := minSize; size <= maxSize; size <<= 1 {
		c := class{
			size: size,
			slab: make([]float64, size*cfg.PerClass),
			free: make([]int32, cfg.PerClass),
			used: make([]bool, cfg.PerClass),
		}

		// Pop from the end so slot 0 is handed out first.
		for i := range c.free {
			c.free[i] = int32(cfg.PerClass - 1 - i)
		}

		a.classes = append(a.classes, c)
	}

	return a, nil
}

func ceilPow2(n int) int {
	if n <= 1 {
		return 1
	}

	return 1 << bits.Len(uint(n-1))
}

func (a *Allocator) classFor(n int) int {
	shift := bits.Len(uint(n - 1))

	return max(shift-a.minShift, 0)
}

// MaxSize returns the largest request Alloc can satisfy.
func (a *Allocator) MaxSize() int { return a.maxSize }

// Alloc returns a zeroed buffer of length n, or nil when n is out of range
// or its size class is exhausted.
func (a *Allocator) Alloc(n int) []float64 {
	if n <= 0 || n > a.maxSize {
		a.failures.Add(1)

		return nil
	}

	c := &a.classes[a.classFor(n)]

	top := len(c.free) - 1
	if top < 0 {
		a.failures.Add(1)

		return nil
	}

	slot := int(c.free[top])
	c.free = c.free[:top]
	c.used[slot] = true

	off := slot * c.size
	buf := c.slab[off : off+n : off+c.size]
	clear(buf)

	a.allocs.Add(1)
	a.inUse.Add(1)

	return buf
}

// Free returns buf to its size class. It reports false, and does nothing,
// for a buffer this allocator did not hand out or that is already free.
func (a *Allocator) Free(buf []float64) bool {
	if cap(buf) == 0 {
		return false
	}

	addr := uintptr(unsafe.Pointer(unsafe.SliceData(buf)))

	for i := range a.classes {
		c := &a.classes[i]
		if cap(buf) != c.size {
			continue
		}

		base := uintptr(unsafe.Pointer(unsafe.SliceData(c.slab)))
		span := uintptr(len(c.slab)) * unsafe.Sizeof(c.slab[0])

		if addr < base || addr >= base+span {
			return false
		}

		stride := uintptr(c.size) * unsafe.Sizeof(c.slab[0])
		if (addr-base)%stride != 0 {
			return false
		}

		slot := int((addr - base) / stride)
		if !c.used[slot] {
			return false
		}

		c.used[slot] = false
		c.free = append(c.free, int32(slot))

		a.frees.Add(1)
		a.inUse.Add(-1)

		return true
	}

	return false
}

// Stats returns a snapshot of the counters. It is safe to call from any
// goroutine.
func (a *Allocator) Stats() Stats {
	return Stats{
		Allocs:   a.allocs.Load(),
		Frees:    a.frees.Load(),
		Failures: a.failures.Load(),
		InUse:    a.inUse.Load(),
	}
}
