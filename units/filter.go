package units

import (
	"github.com/cwbudde/algo-ugen/dsp/filter/biquad"
	"github.com/cwbudde/algo-ugen/ugen"
)

const (
	filterFreq = iota
	filterParam
	filterIn
	filterOut
	filterPorts
)

// Lowpass is a resonant second-order low-pass; res is the filter Q.
var Lowpass = filterDef("lpf", "resonant low-pass (freq, res)", biquad.Lowpass)

// Highpass is a resonant second-order high-pass; res is the filter Q.
var Highpass = filterDef("hpf", "resonant high-pass (freq, res)", biquad.Highpass)

// Bandpass is a constant-peak band-pass; bw is the bandwidth in Hz. A bw of
// zero or less produces non-finite output.
var Bandpass = filterDef("bpf", "band-pass (freq, bw)", biquad.Bandpass)

type designFunc func(freq, param, sampleRate float64) biquad.Coefficients

func filterDef(name, summary string, design designFunc) ugen.Def {
	return ugen.Def{
		Name:    name,
		Summary: summary,
		Port:    ugen.Fixed(ugen.ControlIn, ugen.ControlIn, ugen.AudioIn, ugen.AudioOut),
		Construct: func(w ugen.World, _ ugen.Options) (ugen.Unit, error) {
			return &filterUnit{
				ports:      newPorts(filterPorts),
				design:     design,
				sampleRate: w.SampleRate(),
			}, nil
		},
	}
}

type filterUnit struct {
	ports

	design      designFunc
	sampleRate  float64
	section     biquad.Section
	freq, param float64
	designed    bool
}

func (u *filterUnit) Process(_ ugen.World, frames int) {
	freq, param := u.control(filterFreq), u.control(filterParam)
	if !u.designed || freq != u.freq || param != u.param {
		u.section.Coefficients = u.design(freq, param, u.sampleRate)
		u.freq, u.param, u.designed = freq, param, true
	}

	u.section.ProcessBlock(u.audio(filterOut, frames), u.audio(filterIn, frames))
}
