// Package osc provides naive and table-lookup oscillators. Phase state is
// carried across calls so consecutive blocks join without discontinuity.
package osc

import (
	"fmt"
	"math"
)

// DefaultTableSize is the sine table length used by NewSine.
const DefaultTableSize = 1024

// SineTable returns one sine period of length samples followed by two guard
// samples so interpolating readers never wrap.
func SineTable(length int) []float64 {
	table := make([]float64, length+2)
	step := 2 * math.Pi / float64(length)

	for i := range table {
		table[i] = math.Sin(step * float64(i))
	}

	return table
}

// Sine is a linearly interpolated wavetable sine oscillator.
type Sine struct {
	table []float64
	size  float64
	scale float64
	phase float64
}

// NewSine returns a sine oscillator for sampleRate using a table of
// tableSize samples.
func NewSine(sampleRate float64, tableSize int) (*Sine, error) {
	if !(sampleRate > 0) {
		return nil, fmt.Errorf("osc: sample rate must be > 0: %v", sampleRate)
	}

	if tableSize < 2 {
		return nil, fmt.Errorf("osc: table size must be >= 2: %d", tableSize)
	}

	return &Sine{
		table: SineTable(tableSize),
		size:  float64(tableSize),
		scale: float64(tableSize) / sampleRate,
	}, nil
}

// Process writes amp*sin + add at freq Hz into dst.
func (s *Sine) Process(dst []float64, freq, amp, add float64) {
	inc := freq * s.scale
	phase := s.phase

	for i := range dst {
		idx := int(phase)
		frac := phase - float64(idx)
		a := s.table[idx]
		dst[i] = amp*(a+frac*(s.table[idx+1]-a)) + add

		phase += inc
		if phase >= s.size || phase < 0 {
			phase -= s.size * math.Floor(phase/s.size)
		}
	}

	s.phase = phase
}

// Reset rewinds the phase to zero.
func (s *Sine) Reset() { s.phase = 0 }

// Saw is a naive rising sawtooth in [-1, 1).
type Saw struct {
	freqMul float64
	phase   float64
}

// NewSaw returns a sawtooth oscillator starting at phase 0.
func NewSaw(sampleRate float64) *Saw {
	return &Saw{freqMul: 2 / sampleRate}
}

// Process writes amp*saw + add at freq Hz into dst.
func (s *Saw) Process(dst []float64, freq, amp, add float64) {
	inc := freq * s.freqMul
	phase := s.phase

	for i := range dst {
		dst[i] = amp*phase + add

		phase += inc
		if phase >= 1 {
			phase -= 2
		} else if phase < -1 {
			phase += 2
		}
	}

	s.phase = phase
}

// Reset rewinds the phase to zero.
func (s *Saw) Reset() { s.phase = 0 }

// Triangle is a naive triangle in [-1, 1]. Its phase runs over [-1, 3) and
// folds at 1.
type Triangle struct {
	freqMul float64
	phase   float64
}

// NewTriangle returns a triangle oscillator starting at phase 0.
func NewTriangle(sampleRate float64) *Triangle {
	return &Triangle{freqMul: 4 / sampleRate}
}

// Process writes amp*tri + add at freq Hz into dst.
func (t *Triangle) Process(dst []float64, freq, amp, add float64) {
	inc := freq * t.freqMul
	phase := t.phase

	for i := range dst {
		z := phase
		if phase > 1 {
			z = 2 - phase
		}

		dst[i] = amp*z + add

		phase += inc
		if phase >= 3 {
			phase -= 4
		}
	}

	t.phase = phase
}

// Reset rewinds the phase to zero.
func (t *Triangle) Reset() { t.phase = 0 }

// Pulse is a naive unipolar pulse wave with variable width in [0, 1].
type Pulse struct {
	freqMul float64
	phase   float64
}

// NewPulse returns a pulse oscillator starting at phase 0.
func NewPulse(sampleRate float64) *Pulse {
	return &Pulse{freqMul: 1 / sampleRate}
}

// Process writes amp*pulse + add at freq Hz into dst. The output is 1 for
// the first width fraction of each period and 0 after.
func (p *Pulse) Process(dst []float64, freq, width, amp, add float64) {
	inc := freq * p.freqMul
	phase := p.phase

	for i := range dst {
		var sig float64

		if phase >= 1 {
			phase -= 1
			if width < 0.5 {
				sig = 1
			}
		} else if phase < width {
			sig = 1
		}

		dst[i] = sig*amp + add
		phase += inc
	}

	p.phase = phase
}

// Reset rewinds the phase to zero.
func (p *Pulse) Reset() { p.phase = 0 }
