package units

import (
	"github.com/cwbudde/algo-ugen/dsp/noise"
	"github.com/cwbudde/algo-ugen/ugen"
)

const (
	noiseAmp = iota
	noiseAdd
	noiseOut
	noisePorts
)

// WhiteNoise is Gaussian white noise: out = n*amp + add.
var WhiteNoise = noiseDef("whitenoise", "gaussian white noise", func(seed uint64) noise.Generator {
	return noise.NewWhite(seed)
})

// BrownNoise is a reflected random walk in [-1, 1].
var BrownNoise = noiseDef("brownnoise", "brown noise", func(seed uint64) noise.Generator {
	return noise.NewBrown(seed)
})

// PinkNoise is 1/f noise.
var PinkNoise = noiseDef("pinknoise", "pink noise", func(seed uint64) noise.Generator {
	return noise.NewPink(seed)
})

func noiseDef(name, summary string, gen func(seed uint64) noise.Generator) ugen.Def {
	return ugen.Def{
		Name:    name,
		Summary: summary,
		Port:    ugen.Fixed(ugen.ControlIn, ugen.ControlIn, ugen.AudioOut),
		Construct: func(ugen.World, ugen.Options) (ugen.Unit, error) {
			return &noiseUnit{ports: newPorts(noisePorts), gen: gen(seeds.Add(1))}, nil
		},
	}
}

type noiseUnit struct {
	ports

	gen noise.Generator
}

func (u *noiseUnit) Process(_ ugen.World, frames int) {
	u.gen.Process(u.audio(noiseOut, frames), u.control(noiseAmp), u.control(noiseAdd))
}
