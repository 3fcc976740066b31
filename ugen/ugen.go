// Package ugen defines the contract between a host engine and the unit
// generators it runs.
//
// A unit type is described by a [Def]. The host configures options from an
// argument stream, enumerates ports, constructs a [Unit], binds a buffer to
// every port with Connect, calls Process once per audio block and finally
// calls Destroy if the unit implements [Destroyer].
//
// Process runs on the real-time context. It must not block, allocate from
// the Go heap or take locks shared with other goroutines. Work that cannot
// meet those rules is handed to the non-real-time context as a [Command]
// through [World.Perform]; buffers for such commands come from
// [World.Alloc] and go back through [World.Free] on the real-time context.
package ugen

import (
	"errors"

	"github.com/cwbudde/algo-ugen/ugen/args"
)

// ErrInvalidOptions is wrapped by Configure and Construct for arguments
// that are well-typed but out of range.
var ErrInvalidOptions = errors.New("ugen: invalid options")

// Options is the unit-specific result of Configure. It is immutable once
// returned.
type Options any

// World is the per-block context a real-time host passes to units.
type World interface {
	SampleRate() float64
	BlockSize() int
	// Alloc returns a zeroed buffer of n samples, or nil when the
	// real-time allocator cannot serve the request.
	Alloc(n int) []float64
	// MaxAlloc is the largest n Alloc can ever serve. Construct rejects
	// options whose payloads would exceed it.
	MaxAlloc() int
	// Free returns a buffer obtained from Alloc.
	Free(buf []float64) bool
	// Perform queues cmd for the non-real-time context. It reports false
	// when the queue is full; the command will not run.
	Perform(cmd Command) bool
}

// Host is the context deferred commands run in.
type Host interface {
	// Notify hands a message to the host's notification transport.
	Notify(n Notification) error
	// PerformWorld queues cmd to run on the real-time context before the
	// next block. A full queue defers cmd rather than dropping it; false
	// means cmd was rejected.
	PerformWorld(cmd WorldCommand) bool
}

// HostFunc runs on the non-real-time context.
type HostFunc func(h Host, payload []float64)

// WorldFunc runs on the real-time context between blocks.
type WorldFunc func(w World, payload []float64)

// Command is work deferred from the real-time to the non-real-time context.
// Payload belongs to the command until Fn runs; Fn is responsible for
// getting it freed.
type Command struct {
	Fn      HostFunc
	Payload []float64
}

// WorldCommand is work sent back to the real-time context, typically to
// free a payload.
type WorldCommand struct {
	Fn      WorldFunc
	Payload []float64
}

// Notification is an addressed list of values sent to the host transport.
// Values belongs to the notification; transports that retain it must copy.
type Notification struct {
	Address string
	Values  []float64
}

// Unit is a constructed unit instance.
type Unit interface {
	// Connect binds buf to the port at index. It may be called again to
	// rebind; the previous buffer is no longer touched afterwards.
	Connect(index int, buf []float64)
	// Process renders frames samples.
	Process(w World, frames int)
}

// Destroyer is implemented by units that hold resources beyond Go memory.
// Destroy is called exactly once, after the last Process.
type Destroyer interface {
	Destroy(w World)
}

// Def describes a unit type.
type Def struct {
	Name    string
	Summary string
	// Configure parses instantiation arguments. A nil Configure means the
	// unit takes none and receives nil Options.
	Configure func(a *args.Stream) (Options, error)
	// Port describes the ports for the configured options.
	Port PortFunc
	// Construct builds an instance. It may allocate.
	Construct func(w World, opts Options) (Unit, error)
}

// WorldFree is a WorldFunc that returns its payload to the real-time
// allocator.
func WorldFree(w World, payload []float64) {
	w.Free(payload)
}

// FreeInWorld schedules payload to be freed on the real-time context. A
// full world queue only delays the free; false means the host rejected
// the command and has reported it.
func FreeInWorld(h Host, payload []float64) bool {
	return h.PerformWorld(WorldCommand{Fn: WorldFree, Payload: payload})
}

// Notifier returns a HostFunc that copies its payload into a notification
// for address, sends it and schedules the payload free. Building the
// closure allocates, so units create it in Construct.
func Notifier(address string) HostFunc {
	return func(h Host, payload []float64) {
		values := append([]float64(nil), payload...)
		_ = FreeInWorld(h, payload)

		_ = h.Notify(Notification{Address: address, Values: values})
	}
}
