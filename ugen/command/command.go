// Package command moves deferred work between the real-time and
// non-real-time contexts.
//
// A Channel holds two lock-free single-producer/single-consumer queues.
// The real-time context is the only producer of host commands and the only
// consumer of world commands; the non-real-time context is the reverse.
// The real-time side never blocks or allocates once the Channel exists.
// World commands that find their queue full wait in a non-real-time
// overflow list and are retried on the next host pass, so payload frees
// are delayed but never lost.
package command

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/cwbudde/algo-ugen/internal/ring"
	"github.com/cwbudde/algo-ugen/ugen"
)

// DefaultPollInterval bounds how long RunHost sleeps when no wake-up
// arrives.
const DefaultPollInterval = 10 * time.Millisecond

// Stats are cumulative counters for both directions.
type Stats struct {
	HostPerformed  uint64
	HostExecuted   uint64
	HostDropped    uint64
	WorldPerformed uint64
	WorldExecuted  uint64
	WorldDropped   uint64
	WorldDeferred  uint64
}

// Option configures a Channel.
type Option func(*Channel)

// WithPollInterval sets the fallback wake-up period of RunHost.
func WithPollInterval(d time.Duration) Option {
	return func(c *Channel) {
		if d > 0 {
			c.poll = d
		}
	}
}

// Channel is a bidirectional deferred command queue.
type Channel struct {
	host  *ring.Ring[ugen.Command]
	world *ring.Ring[ugen.WorldCommand]
	wake  chan struct{}
	poll  time.Duration

	// overflow is owned by the non-real-time side; deferred mirrors its
	// length for Pending.
	overflow []ugen.WorldCommand
	deferred atomic.Int64

	hostPerformed  atomic.Uint64
	hostExecuted   atomic.Uint64
	hostDropped    atomic.Uint64
	worldPerformed atomic.Uint64
	worldExecuted  atomic.Uint64
	worldDropped   atomic.Uint64
	worldDeferred  atomic.Uint64
}

// New returns a Channel whose queues each hold at least capacity commands.
func New(capacity int, opts ...Option) (*Channel, error) {
	host, err := ring.New[ugen.Command](capacity)
	if err != nil {
		return nil, fmt.Errorf("command: host queue: %w", err)
	}

	world, err := ring.New[ugen.WorldCommand](capacity)
	if err != nil {
		return nil, fmt.Errorf("command: world queue: %w", err)
	}

	c := &Channel{
		host:  host,
		world: world,
		wake:  make(chan struct{}, 1),
		poll:  DefaultPollInterval,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	return c, nil
}

// Perform queues cmd for the non-real-time context. Real-time side only.
// It reports false, and counts a drop, when the queue is full.
func (c *Channel) Perform(cmd ugen.Command) bool {
	if cmd.Fn == nil || !c.host.Push(cmd) {
		c.hostDropped.Add(1)

		return false
	}

	c.hostPerformed.Add(1)

	return true
}

// Wake nudges RunHost to drain without waiting for its poll interval.
func (c *Channel) Wake() {
	select {
	case c.wake <- struct{}{}:
	default:
	}
}

// PerformWorld queues cmd for the real-time context. Non-real-time side
// only. When the world queue is full cmd is deferred to the next host
// pass and counted; only a nil Fn is dropped.
func (c *Channel) PerformWorld(cmd ugen.WorldCommand) bool {
	if cmd.Fn == nil {
		c.worldDropped.Add(1)

		return false
	}

	c.retryWorld()

	if len(c.overflow) == 0 && c.world.Push(cmd) {
		c.worldPerformed.Add(1)

		return true
	}

	c.overflow = append(c.overflow, cmd)
	c.deferred.Store(int64(len(c.overflow)))
	c.worldDeferred.Add(1)

	return true
}

// retryWorld moves deferred world commands into the queue in order until
// it fills up again.
func (c *Channel) retryWorld() {
	i := 0
	for i < len(c.overflow) && c.world.Push(c.overflow[i]) {
		c.worldPerformed.Add(1)
		i++
	}

	if i == 0 {
		return
	}

	n := copy(c.overflow, c.overflow[i:])
	clear(c.overflow[n:])
	c.overflow = c.overflow[:n]
	c.deferred.Store(int64(n))
}

// DrainHost retries deferred world commands, then runs every queued host
// command in FIFO order and returns how many ran. It must not be called
// while RunHost is active.
func (c *Channel) DrainHost(h ugen.Host) int {
	c.retryWorld()

	n := 0

	for {
		cmd, ok := c.host.Pop()
		if !ok {
			return n
		}

		cmd.Fn(h, cmd.Payload)
		c.hostExecuted.Add(1)
		n++
	}
}

// DrainWorld runs every queued world command in FIFO order and returns how
// many ran. Real-time side only.
func (c *Channel) DrainWorld(w ugen.World) int {
	n := 0

	for {
		cmd, ok := c.world.Pop()
		if !ok {
			return n
		}

		cmd.Fn(w, cmd.Payload)
		c.worldExecuted.Add(1)
		n++
	}
}

// RunHost executes host commands as they arrive until ctx is done, then
// drains what is left and returns nil.
func (c *Channel) RunHost(ctx context.Context, h ugen.Host) error {
	ticker := time.NewTicker(c.poll)
	defer ticker.Stop()

	for {
		c.DrainHost(h)

		select {
		case <-ctx.Done():
			c.DrainHost(h)

			return nil
		case <-c.wake:
		case <-ticker.C:
		}
	}
}

// Pending returns the number of queued host commands and of queued or
// deferred world commands.
func (c *Channel) Pending() (host, world int) {
	return c.host.Len(), c.world.Len() + int(c.deferred.Load())
}

// Stats returns a snapshot of the counters. Safe from any goroutine.
func (c *Channel) Stats() Stats {
	return Stats{
		HostPerformed:  c.hostPerformed.Load(),
		HostExecuted:   c.hostExecuted.Load(),
		HostDropped:    c.hostDropped.Load(),
		WorldPerformed: c.worldPerformed.Load(),
		WorldExecuted:  c.worldExecuted.Load(),
		WorldDropped:   c.worldDropped.Load(),
		WorldDeferred:  c.worldDeferred.Load(),
	}
}
