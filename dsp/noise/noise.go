// Package noise provides deterministic white, brown and pink noise
// generators. Each generator owns its random source, so generators never
// contend on shared state and do not allocate while running.
package noise

import "math/rand/v2"

// Generator fills a block with noise scaled by amp and offset by add.
type Generator interface {
	Process(dst []float64, amp, add float64)
}

func newSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// White is Gaussian white noise with unit variance.
type White struct {
	rng *rand.Rand
}

// NewWhite returns a white noise generator seeded with seed.
func NewWhite(seed uint64) *White {
	return &White{rng: newSource(seed)}
}

// Process implements Generator.
func (w *White) Process(dst []float64, amp, add float64) {
	for i := range dst {
		dst[i] = w.rng.NormFloat64()*amp + add
	}
}

// brownStep scales each Gaussian increment of the random walk.
const brownStep = 0.125

// Brown is a Gaussian random walk reflected at +-1.
type Brown struct {
	rng   *rand.Rand
	level float64
}

// NewBrown returns a brown noise generator seeded with seed.
func NewBrown(seed uint64) *Brown {
	return &Brown{rng: newSource(seed)}
}

// Process implements Generator.
func (b *Brown) Process(dst []float64, amp, add float64) {
	level := b.level

	for i := range dst {
		level += b.rng.NormFloat64() * brownStep
		if level > 1 {
			level = 2 - level
		} else if level < -1 {
			level = -2 - level
		}

		dst[i] = level*amp + add
	}

	b.level = level
}

// Pink approximates 1/f noise by filtering white noise through a bank of
// first-order lowpass stages (Paul Kellet's refined method).
type Pink struct {
	rng                        *rand.Rand
	b0, b1, b2, b3, b4, b5, b6 float64
}

// pinkGain brings the filtered output back to roughly unit peak for
// uniform white input in [-1, 1].
const pinkGain = 0.11

// NewPink returns a pink noise generator seeded with seed.
func NewPink(seed uint64) *Pink {
	return &Pink{rng: newSource(seed)}
}

// Process implements Generator.
func (p *Pink) Process(dst []float64, amp, add float64) {
	for i := range dst {
		white := p.rng.Float64()*2 - 1

		p.b0 = 0.99886*p.b0 + white*0.0555179
		p.b1 = 0.99332*p.b1 + white*0.0750759
		p.b2 = 0.96900*p.b2 + white*0.1538520
		p.b3 = 0.86650*p.b3 + white*0.3104856
		p.b4 = 0.55000*p.b4 + white*0.5329522
		p.b5 = -0.7616*p.b5 - white*0.0168980
		pink := p.b0 + p.b1 + p.b2 + p.b3 + p.b4 + p.b5 + p.b6 + white*0.5362
		p.b6 = white * 0.115926

		dst[i] = pink*pinkGain*amp + add
	}
}
