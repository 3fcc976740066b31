package engine

import (
	"sync/atomic"

	"github.com/rs/xid"

	"github.com/cwbudde/algo-ugen/ugen"
)

// State is a position in the synth lifecycle.
type State int32

const (
	// Configured synths have parsed options but no instance yet.
	Configured State = iota
	// Constructed synths exist but have unbound ports.
	Constructed
	// Ready synths are processed every block.
	Ready
	// Destroyed synths are never touched again.
	Destroyed
)

func (s State) String() string {
	switch s {
	case Configured:
		return "configured"
	case Constructed:
		return "constructed"
	case Ready:
		return "ready"
	case Destroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// Synth is a unit instance owned by an Engine.
type Synth struct {
	id    xid.ID
	name  string
	unit  ugen.Unit
	ports []ugen.Port
	bound []bool

	unbound int
	state   atomic.Int32
}

// ID identifies the synth in logs.
func (s *Synth) ID() string { return s.id.String() }

// Name is the unit type name.
func (s *Synth) Name() string { return s.name }

// Ports returns a copy of the enumerated ports.
func (s *Synth) Ports() []ugen.Port {
	return append([]ugen.Port(nil), s.ports...)
}

// State returns the current lifecycle state. Safe from any goroutine.
func (s *Synth) State() State { return State(s.state.Load()) }

func (s *Synth) setState(st State) { s.state.Store(int32(st)) }

func (s *Synth) String() string {
	return s.name + "#" + s.id.String()
}
