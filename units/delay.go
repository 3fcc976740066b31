package units

import (
	"fmt"

	"github.com/cwbudde/algo-ugen/dsp/delay"
	"github.com/cwbudde/algo-ugen/ugen"
	"github.com/cwbudde/algo-ugen/ugen/args"
)

const (
	delayTime = iota
	delayFeedback
	delayIn
	delayOut
	delayPorts
)

// DelayOptions configure the delay unit.
type DelayOptions struct {
	MaxSeconds float64
}

// Delay is a fractional delay line with feedback. Delay time is in seconds
// and clamped to the configured maximum.
var Delay = ugen.Def{
	Name:    "delay",
	Summary: "fractional delay line with feedback",
	Configure: func(a *args.Stream) (ugen.Options, error) {
		maxSeconds, err := a.Number()
		if err != nil {
			return nil, fmt.Errorf("delay: max seconds: %w", err)
		}

		if !(maxSeconds > 0) {
			return nil, fmt.Errorf("delay: %w: max seconds %v", ugen.ErrInvalidOptions, maxSeconds)
		}

		return DelayOptions{MaxSeconds: maxSeconds}, nil
	},
	Port: ugen.Fixed(ugen.ControlIn, ugen.ControlIn, ugen.AudioIn, ugen.AudioOut),
	Construct: func(w ugen.World, opts ugen.Options) (ugen.Unit, error) {
		o, ok := opts.(DelayOptions)
		if !ok {
			return nil, fmt.Errorf("delay: %w: %T", ugen.ErrInvalidOptions, opts)
		}

		line, err := delay.NewSeconds(o.MaxSeconds, w.SampleRate())
		if err != nil {
			return nil, err
		}

		return &delayUnit{ports: newPorts(delayPorts), line: line, sampleRate: w.SampleRate()}, nil
	},
}

type delayUnit struct {
	ports

	line       *delay.Line
	sampleRate float64
}

func (u *delayUnit) Process(_ ugen.World, frames int) {
	u.line.Process(
		u.audio(delayOut, frames),
		u.audio(delayIn, frames),
		u.control(delayTime)*u.sampleRate,
		u.control(delayFeedback),
	)
}

func (u *delayUnit) Destroy(ugen.World) {
	u.line = nil
}
