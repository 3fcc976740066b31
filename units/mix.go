package units

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-ugen/ugen"
	"github.com/cwbudde/algo-ugen/ugen/args"
)

// MixOptions configure the mix unit.
type MixOptions struct {
	// Controls is the number of gain ports. Input j is scaled by gain j,
	// or by 1 when j >= Controls.
	Controls int
	// Inputs is the number of audio inputs.
	Inputs int
}

// Output returns the index of the output port.
func (o MixOptions) Output() int {
	return o.Controls + o.Inputs
}

// Mix sums gain-weighted audio inputs into one output.
var Mix = ugen.Def{
	Name:    "mix",
	Summary: "gain-weighted sum of k controls and a inputs",
	Configure: func(a *args.Stream) (ugen.Options, error) {
		k, err := a.Int32()
		if err != nil {
			return nil, fmt.Errorf("mix: controls: %w", err)
		}

		n := k
		if !a.AtEnd() {
			if n, err = a.Int32(); err != nil {
				return nil, fmt.Errorf("mix: inputs: %w", err)
			}
		}

		o := MixOptions{Controls: int(k), Inputs: int(n)}
		if o.Controls < 0 || o.Inputs < 1 || o.Output() >= ugen.MaxPorts {
			return nil, fmt.Errorf("mix: %w: %d controls, %d inputs", ugen.ErrInvalidOptions, k, n)
		}

		return o, nil
	},
	Port: func(opts ugen.Options, index int) (ugen.Port, bool) {
		o, ok := opts.(MixOptions)
		if !ok || index < 0 {
			return ugen.Port{}, false
		}

		p := ugen.Port{Index: index}

		switch {
		case index < o.Controls:
			p.Kind, p.Direction = ugen.ControlPort, ugen.Input
		case index < o.Output():
			p.Kind, p.Direction = ugen.AudioPort, ugen.Input
		case index == o.Output():
			p.Kind, p.Direction = ugen.AudioPort, ugen.Output
		default:
			return ugen.Port{}, false
		}

		return p, true
	},
	Construct: func(w ugen.World, opts ugen.Options) (ugen.Unit, error) {
		o, ok := opts.(MixOptions)
		if !ok {
			return nil, fmt.Errorf("mix: %w: %T", ugen.ErrInvalidOptions, opts)
		}

		return &mixUnit{
			ports:   newPorts(o.Output() + 1),
			opts:    o,
			scratch: make([]float64, w.BlockSize()),
		}, nil
	},
}

type mixUnit struct {
	ports

	opts    MixOptions
	scratch []float64
}

func (u *mixUnit) gain(j int) float64 {
	if j < u.opts.Controls {
		return u.control(j)
	}

	return 1
}

func (u *mixUnit) Process(_ ugen.World, frames int) {
	out := u.audio(u.opts.Output(), frames)
	tmp := u.scratch[:frames]

	vecmath.ScaleBlock(out, u.audio(u.opts.Controls, frames), u.gain(0))

	for j := 1; j < u.opts.Inputs; j++ {
		vecmath.ScaleBlock(tmp, u.audio(u.opts.Controls+j, frames), u.gain(j))
		vecmath.AddBlockInPlace(out, tmp)
	}
}
