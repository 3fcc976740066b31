package ugen

import (
	"errors"
	"fmt"
)

// PortKind distinguishes per-block signal buffers from scalar controls.
type PortKind int

const (
	// ControlPort carries one scalar per block in element 0.
	ControlPort PortKind = iota
	// AudioPort carries one sample per frame.
	AudioPort
)

func (k PortKind) String() string {
	switch k {
	case ControlPort:
		return "control"
	case AudioPort:
		return "audio"
	default:
		return fmt.Sprintf("PortKind(%d)", int(k))
	}
}

// Direction says whether the unit reads or writes a port.
type Direction int

const (
	Input Direction = iota
	Output
)

func (d Direction) String() string {
	switch d {
	case Input:
		return "in"
	case Output:
		return "out"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Port describes one bindable buffer of a unit.
type Port struct {
	Index     int
	Kind      PortKind
	Direction Direction
}

func (p Port) String() string {
	return fmt.Sprintf("%d:%s-%s", p.Index, p.Kind, p.Direction)
}

// MinLen returns the shortest buffer the port accepts at blockSize.
func (p Port) MinLen(blockSize int) int {
	if p.Kind == AudioPort {
		return blockSize
	}

	return 1
}

// Shorthand port templates for Fixed. Index is assigned by position.
var (
	ControlIn = Port{Kind: ControlPort, Direction: Input}
	AudioIn   = Port{Kind: AudioPort, Direction: Input}
	AudioOut  = Port{Kind: AudioPort, Direction: Output}
)

// PortFunc describes the port at index for the given options, reporting
// false past the last port. It must be pure.
type PortFunc func(opts Options, index int) (Port, bool)

// Fixed returns a PortFunc for a unit whose ports do not depend on options.
func Fixed(ports ...Port) PortFunc {
	table := make([]Port, len(ports))
	for i, p := range ports {
		p.Index = i
		table[i] = p
	}

	return func(_ Options, index int) (Port, bool) {
		if index < 0 || index >= len(table) {
			return Port{}, false
		}

		return table[index], true
	}
}

// MaxPorts bounds port enumeration so a descriptor that never reports the
// end is rejected rather than looping forever.
const MaxPorts = 4096

// ErrInvalidPorts is returned when a port descriptor is not dense,
// zero-based and repeatable.
var ErrInvalidPorts = errors.New("ugen: invalid port description")

// Ports enumerates the ports of def under opts and checks that the
// description is dense, well-formed and stable across two passes.
func Ports(def Def, opts Options) ([]Port, error) {
	if def.Port == nil {
		return nil, fmt.Errorf("%w: %s has no port descriptor", ErrInvalidPorts, def.Name)
	}

	first, err := enumerate(def, opts)
	if err != nil {
		return nil, err
	}

	second, err := enumerate(def, opts)
	if err != nil {
		return nil, err
	}

	if len(first) != len(second) {
		return nil, fmt.Errorf("%w: %s reports %d then %d ports", ErrInvalidPorts, def.Name, len(first), len(second))
	}

	for i := range first {
		if first[i] != second[i] {
			return nil, fmt.Errorf("%w: %s port %d changed from %v to %v", ErrInvalidPorts, def.Name, i, first[i], second[i])
		}
	}

	return first, nil
}

func enumerate(def Def, opts Options) ([]Port, error) {
	var ports []Port

	for i := 0; ; i++ {
		if i == MaxPorts {
			return nil, fmt.Errorf("%w: %s declares more than %d ports", ErrInvalidPorts, def.Name, MaxPorts)
		}

		p, ok := def.Port(opts, i)
		if !ok {
			return ports, nil
		}

		if p.Index != i {
			return nil, fmt.Errorf("%w: %s port %d reports index %d", ErrInvalidPorts, def.Name, i, p.Index)
		}

		if p.Kind != ControlPort && p.Kind != AudioPort {
			return nil, fmt.Errorf("%w: %s port %d has kind %v", ErrInvalidPorts, def.Name, i, p.Kind)
		}

		if p.Direction != Input && p.Direction != Output {
			return nil, fmt.Errorf("%w: %s port %d has direction %v", ErrInvalidPorts, def.Name, i, p.Direction)
		}

		ports = append(ports, p)
	}
}
