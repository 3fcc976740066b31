package units

import (
	"math"

	"github.com/cwbudde/algo-ugen/dsp/core"
	"github.com/cwbudde/algo-ugen/ugen"
)

// AmplitudeAddress is the notification address of the ampfol unit.
const AmplitudeAddress = "/amplitude"

const (
	ampfolIn = iota
	ampfolOut
	ampfolPorts
)

// AmpFollower passes its input through and publishes the block RMS,
// clipped to [0, 1], once per block.
var AmpFollower = ugen.Def{
	Name:    "ampfol",
	Summary: "block RMS follower, notifies " + AmplitudeAddress,
	Port:    ugen.Fixed(ugen.AudioIn, ugen.AudioOut),
	Construct: func(ugen.World, ugen.Options) (ugen.Unit, error) {
		return &ampfolUnit{ports: newPorts(ampfolPorts), notify: ugen.Notifier(AmplitudeAddress)}, nil
	},
}

type ampfolUnit struct {
	ports

	notify ugen.HostFunc
}

func (u *ampfolUnit) Process(w ugen.World, frames int) {
	in := u.audio(ampfolIn, frames)
	copy(u.audio(ampfolOut, frames), in)

	sum := 0.0
	for _, x := range in {
		sum += x * x
	}

	payload := w.Alloc(1)
	if payload == nil {
		return
	}

	payload[0] = core.Clamp(math.Sqrt(sum/float64(frames)), 0, 1)

	if !w.Perform(ugen.Command{Fn: u.notify, Payload: payload}) {
		w.Free(payload)
	}
}
