// Package units is the catalog of unit generators shipped with algo-ugen.
//
// Port layouts, in index order (C = control input, A = audio):
//
//	delay       C time(s), C feedback, A in, A out          args: max delay seconds (i or f)
//	fft         A in, A out                                 args: i:N (power of two), notifies /fft
//	ampfol      A in, A out                                 notifies /amplitude every block
//	audioin     C amp, C add, A in, A out
//	lpf, hpf    C freq, C res, A in, A out
//	bpf         C freq, C bw, A in, A out
//	whitenoise  C amp, C add, A out
//	brownnoise  C amp, C add, A out
//	pinknoise   C amp, C add, A out
//	sine        C freq, C amp, C add, A out
//	saw         C freq, C amp, C add, A out
//	tri         C freq, C amp, C add, A out
//	pulse       C freq, C width, C amp, C add, A out
//	pan2        C pos, C amp, A in, A out L, A out R        args: [f:initial level]
//	mix         C gain x k, A in x a, A out                 args: i:k [i:a]
//	reverb      C room, C damp, C wet, C dry, A in L, A in R, A out L, A out R
package units

import (
	"sync/atomic"

	"github.com/cwbudde/algo-ugen/ugen"
)

// DefaultRegistry returns a registry holding every unit in the catalog.
func DefaultRegistry() *ugen.Registry {
	r := ugen.NewRegistry()

	for _, def := range Defs() {
		r.MustRegister(def)
	}

	return r
}

// Defs returns the catalog definitions.
func Defs() []ugen.Def {
	return []ugen.Def{
		Delay,
		FFT,
		AmpFollower,
		AudioIn,
		Lowpass,
		Highpass,
		Bandpass,
		WhiteNoise,
		BrownNoise,
		PinkNoise,
		Sine,
		Saw,
		Triangle,
		Pulse,
		Pan2,
		Mix,
		Reverb,
	}
}

// ports is the bound buffer table shared by the fixed-layout units.
type ports struct {
	bufs [][]float64
}

func newPorts(n int) ports {
	return ports{bufs: make([][]float64, n)}
}

// Connect implements ugen.Unit.
func (p *ports) Connect(index int, buf []float64) {
	p.bufs[index] = buf
}

func (p *ports) control(i int) float64 {
	return p.bufs[i][0]
}

func (p *ports) audio(i, frames int) []float64 {
	return p.bufs[i][:frames]
}

// seeds hands each noise instance a distinct, reproducible seed.
var seeds atomic.Uint64
