package units

import (
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-ugen/ugen"
)

const (
	audioInAmp = iota
	audioInAdd
	audioInIn
	audioInOut
	audioInPorts
)

// AudioIn scales and offsets a host input: out = in*amp + add.
var AudioIn = ugen.Def{
	Name:    "audioin",
	Summary: "scaled and offset input",
	Port:    ugen.Fixed(ugen.ControlIn, ugen.ControlIn, ugen.AudioIn, ugen.AudioOut),
	Construct: func(ugen.World, ugen.Options) (ugen.Unit, error) {
		return &audioInUnit{ports: newPorts(audioInPorts)}, nil
	},
}

type audioInUnit struct {
	ports
}

func (u *audioInUnit) Process(_ ugen.World, frames int) {
	out := u.audio(audioInOut, frames)
	vecmath.ScaleBlock(out, u.audio(audioInIn, frames), u.control(audioInAmp))
	offset(out, u.control(audioInAdd))
}

func offset(buf []float64, add float64) {
	if add == 0 {
		return
	}

	for i := range buf {
		buf[i] += add
	}
}
