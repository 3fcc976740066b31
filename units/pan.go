package units

import (
	"fmt"

	"github.com/cwbudde/algo-ugen/dsp/pan"
	"github.com/cwbudde/algo-ugen/ugen"
	"github.com/cwbudde/algo-ugen/ugen/args"
)

const (
	pan2Pos = iota
	pan2Amp
	pan2In
	pan2OutL
	pan2OutR
	pan2Ports
)

// Pan2Options configure the pan2 unit.
type Pan2Options struct {
	// Level is the amplitude the first block ramps from.
	Level float64
}

// Pan2 is an equal-power stereo panner. Amplitude changes are ramped over
// one block.
var Pan2 = ugen.Def{
	Name:    "pan2",
	Summary: "equal-power stereo panner (pos -1..1, amp)",
	Configure: func(a *args.Stream) (ugen.Options, error) {
		if a.AtEnd() {
			return Pan2Options{Level: 1}, nil
		}

		level, err := a.Number()
		if err != nil {
			return nil, fmt.Errorf("pan2: initial level: %w", err)
		}

		return Pan2Options{Level: level}, nil
	},
	Port: ugen.Fixed(ugen.ControlIn, ugen.ControlIn, ugen.AudioIn, ugen.AudioOut, ugen.AudioOut),
	Construct: func(w ugen.World, opts ugen.Options) (ugen.Unit, error) {
		o, ok := opts.(Pan2Options)
		if !ok {
			return nil, fmt.Errorf("pan2: %w: %T", ugen.ErrInvalidOptions, opts)
		}

		return &pan2Unit{ports: newPorts(pan2Ports), pan: pan.New(o.Level, w.BlockSize())}, nil
	},
}

type pan2Unit struct {
	ports

	pan *pan.Pan2
}

func (u *pan2Unit) Process(_ ugen.World, frames int) {
	u.pan.Process(
		u.audio(pan2OutL, frames),
		u.audio(pan2OutR, frames),
		u.audio(pan2In, frames),
		u.control(pan2Pos),
		u.control(pan2Amp),
	)
}
