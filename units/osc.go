package units

import (
	"github.com/cwbudde/algo-ugen/dsp/osc"
	"github.com/cwbudde/algo-ugen/ugen"
)

const (
	oscFreq = iota
	oscAmp
	oscAdd
	oscOut
	oscPorts
)

const (
	pulseFreq = iota
	pulseWidth
	pulseAmp
	pulseAdd
	pulseOut
	pulsePorts
)

// oscillator is the shape shared by the fixed-waveform oscillators.
type oscillator interface {
	Process(dst []float64, freq, amp, add float64)
}

// Sine is a wavetable sine oscillator.
var Sine = oscDef("sine", "wavetable sine oscillator", func(sampleRate float64) (oscillator, error) {
	s, err := osc.NewSine(sampleRate, osc.DefaultTableSize)
	if err != nil {
		return nil, err
	}

	return s, nil
})

// Saw is a naive sawtooth in [-1, 1).
var Saw = oscDef("saw", "naive sawtooth oscillator", func(sampleRate float64) (oscillator, error) {
	return osc.NewSaw(sampleRate), nil
})

// Triangle is a naive triangle in [-1, 1].
var Triangle = oscDef("tri", "naive triangle oscillator", func(sampleRate float64) (oscillator, error) {
	return osc.NewTriangle(sampleRate), nil
})

func oscDef(name, summary string, build func(sampleRate float64) (oscillator, error)) ugen.Def {
	return ugen.Def{
		Name:    name,
		Summary: summary,
		Port:    ugen.Fixed(ugen.ControlIn, ugen.ControlIn, ugen.ControlIn, ugen.AudioOut),
		Construct: func(w ugen.World, _ ugen.Options) (ugen.Unit, error) {
			o, err := build(w.SampleRate())
			if err != nil {
				return nil, err
			}

			return &oscUnit{ports: newPorts(oscPorts), osc: o}, nil
		},
	}
}

type oscUnit struct {
	ports

	osc oscillator
}

func (u *oscUnit) Process(_ ugen.World, frames int) {
	u.osc.Process(u.audio(oscOut, frames), u.control(oscFreq), u.control(oscAmp), u.control(oscAdd))
}

// Pulse is a unipolar pulse wave with variable width.
var Pulse = ugen.Def{
	Name:    "pulse",
	Summary: "naive pulse oscillator (freq, width)",
	Port:    ugen.Fixed(ugen.ControlIn, ugen.ControlIn, ugen.ControlIn, ugen.ControlIn, ugen.AudioOut),
	Construct: func(w ugen.World, _ ugen.Options) (ugen.Unit, error) {
		return &pulseUnit{ports: newPorts(pulsePorts), osc: osc.NewPulse(w.SampleRate())}, nil
	},
}

type pulseUnit struct {
	ports

	osc *osc.Pulse
}

func (u *pulseUnit) Process(_ ugen.World, frames int) {
	u.osc.Process(
		u.audio(pulseOut, frames),
		u.control(pulseFreq),
		u.control(pulseWidth),
		u.control(pulseAmp),
		u.control(pulseAdd),
	)
}
