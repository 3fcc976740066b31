package units

import (
	"github.com/cwbudde/algo-ugen/dsp/reverb"
	"github.com/cwbudde/algo-ugen/ugen"
)

const (
	reverbRoom = iota
	reverbDamp
	reverbWet
	reverbDry
	reverbInL
	reverbInR
	reverbOutL
	reverbOutR
	reverbPorts
)

// Reverb is a stereo Freeverb-style reverb. Controls are nominally in
// [0, 1].
var Reverb = ugen.Def{
	Name:    "reverb",
	Summary: "stereo reverb (room, damp, wet, dry)",
	Port: ugen.Fixed(
		ugen.ControlIn, ugen.ControlIn, ugen.ControlIn, ugen.ControlIn,
		ugen.AudioIn, ugen.AudioIn, ugen.AudioOut, ugen.AudioOut,
	),
	Construct: func(w ugen.World, _ ugen.Options) (ugen.Unit, error) {
		return &reverbUnit{ports: newPorts(reverbPorts), model: reverb.New(w.SampleRate())}, nil
	},
}

type reverbUnit struct {
	ports

	model *reverb.Stereo
}

func (u *reverbUnit) Process(_ ugen.World, frames int) {
	u.model.SetParams(reverb.Params{
		Room: u.control(reverbRoom),
		Damp: u.control(reverbDamp),
		Wet:  u.control(reverbWet),
		Dry:  u.control(reverbDry),
	})

	u.model.Process(
		u.audio(reverbOutL, frames),
		u.audio(reverbOutR, frames),
		u.audio(reverbInL, frames),
		u.audio(reverbInR, frames),
	)
}

func (u *reverbUnit) Destroy(ugen.World) {
	u.model = nil
}
