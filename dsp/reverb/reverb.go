// Package reverb implements a stereo Schroeder/Freeverb-style reverb.
//
// Eight parallel damped combs feed four series allpasses per channel. The
// right channel's delay lengths are offset by a fixed stereo spread so the
// two tails decorrelate.
package reverb

import "github.com/cwbudde/algo-ugen/dsp/core"

const (
	numCombs     = 8
	numAllpasses = 4

	fixedGain    = 0.015
	scaleWet     = 3
	scaleDry     = 2
	scaleDamp    = 0.4
	scaleRoom    = 0.28
	offsetRoom   = 0.7
	stereoSpread = 23

	// tuningRate is the sample rate the delay lengths are specified at.
	tuningRate = 44100.0

	DefaultRoom = 0.5
	DefaultDamp = 0.5
	DefaultWet  = 1.0 / scaleWet
	DefaultDry  = 0.0
)

var (
	combTuning    = [numCombs]int{1116, 1188, 1277, 1356, 1422, 1491, 1557, 1617}
	allpassTuning = [numAllpasses]int{556, 441, 341, 225}
)

type allpass struct {
	buffer []float64
	index  int
}

func (a *allpass) process(input float64) float64 {
	bufOut := a.buffer[a.index]
	a.buffer[a.index] = input + bufOut*0.5

	a.index++
	if a.index >= len(a.buffer) {
		a.index = 0
	}

	return bufOut - input
}

type comb struct {
	feedback    float64
	filterStore float64
	dampA       float64
	dampB       float64
	buffer      []float64
	index       int
}

func (c *comb) process(input float64) float64 {
	output := c.buffer[c.index]

	c.filterStore = core.FlushDenormals(output*c.dampB + c.filterStore*c.dampA)

	c.buffer[c.index] = input + c.filterStore*c.feedback

	c.index++
	if c.index >= len(c.buffer) {
		c.index = 0
	}

	return output
}

type channel struct {
	combs     [numCombs]comb
	allpasses [numAllpasses]allpass
}

func newChannel(scale float64, spread int) channel {
	var ch channel

	for i, n := range combTuning {
		ch.combs[i].buffer = make([]float64, max(1, int(float64(n+spread)*scale)))
	}

	for i, n := range allpassTuning {
		ch.allpasses[i].buffer = make([]float64, max(1, int(float64(n+spread)*scale)))
	}

	return ch
}

func (ch *channel) tune(feedback, damp float64) {
	for i := range ch.combs {
		ch.combs[i].feedback = feedback
		ch.combs[i].dampA = damp
		ch.combs[i].dampB = 1 - damp
	}
}

func (ch *channel) process(x float64) float64 {
	var acc float64
	for i := range ch.combs {
		acc += ch.combs[i].process(x)
	}

	for i := range ch.allpasses {
		acc = ch.allpasses[i].process(acc)
	}

	return acc
}

func (ch *channel) reset() {
	for i := range ch.combs {
		clear(ch.combs[i].buffer)
		ch.combs[i].index = 0
		ch.combs[i].filterStore = 0
	}

	for i := range ch.allpasses {
		clear(ch.allpasses[i].buffer)
		ch.allpasses[i].index = 0
	}
}

// Params are the user-facing controls, each nominally in [0, 1].
type Params struct {
	Room float64
	Damp float64
	Wet  float64
	Dry  float64
}

// DefaultParams returns the reverb's starting controls.
func DefaultParams() Params {
	return Params{Room: DefaultRoom, Damp: DefaultDamp, Wet: DefaultWet, Dry: DefaultDry}
}

// Stereo is a two-in, two-out reverb.
type Stereo struct {
	params Params
	wet    float64
	dry    float64

	left, right channel
}

// New returns a reverb with delay lengths scaled to sampleRate.
func New(sampleRate float64) *Stereo {
	scale := 1.0
	if sampleRate > 0 {
		scale = sampleRate / tuningRate
	}

	r := &Stereo{
		left:  newChannel(scale, 0),
		right: newChannel(scale, stereoSpread),
	}
	r.apply(DefaultParams())

	return r
}

// Params returns the current controls.
func (r *Stereo) Params() Params { return r.params }

// SetParams updates the controls. Setting unchanged values is cheap, so it
// may be called every block.
func (r *Stereo) SetParams(p Params) {
	if p != r.params {
		r.apply(p)
	}
}

func (r *Stereo) apply(p Params) {
	r.params = p
	r.wet = p.Wet * scaleWet
	r.dry = p.Dry * scaleDry

	feedback := p.Room*scaleRoom + offsetRoom
	damp := p.Damp * scaleDamp

	r.left.tune(feedback, damp)
	r.right.tune(feedback, damp)
}

// Process reverberates inL/inR into outL/outR. Outputs may alias inputs.
func (r *Stereo) Process(outL, outR, inL, inR []float64) {
	n := min(len(outL), len(outR), len(inL), len(inR))

	for i := range n {
		l, rr := inL[i], inR[i]
		x := (l + rr) * fixedGain

		outL[i] = r.left.process(x)*r.wet + l*r.dry
		outR[i] = r.right.process(x)*r.wet + rr*r.dry
	}
}

// Reset clears all delay and filter state.
func (r *Stereo) Reset() {
	r.left.reset()
	r.right.reset()
}
