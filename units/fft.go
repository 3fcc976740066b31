package units

import (
	"fmt"

	"github.com/cwbudde/algo-ugen/dsp/spectrum"
	"github.com/cwbudde/algo-ugen/ugen"
	"github.com/cwbudde/algo-ugen/ugen/args"
)

// FFTAddress is the notification address of the fft unit.
const FFTAddress = "/fft"

const (
	fftIn = iota
	fftOut
	fftPorts
)

// FFTOptions configure the fft unit.
type FFTOptions struct {
	// Size is the analysis window length; Size/2 magnitudes are published.
	Size int
}

// FFT passes its input through and publishes a magnitude spectrum each
// time Size samples have accumulated.
var FFT = ugen.Def{
	Name:    "fft",
	Summary: "magnitude spectrum tap, notifies " + FFTAddress,
	Configure: func(a *args.Stream) (ugen.Options, error) {
		size, err := a.Int32()
		if err != nil {
			return nil, fmt.Errorf("fft: size: %w", err)
		}

		if size < 2 || size&(size-1) != 0 {
			return nil, fmt.Errorf("fft: %w: size %d is not a power of two >= 2", ugen.ErrInvalidOptions, size)
		}

		return FFTOptions{Size: int(size)}, nil
	},
	Port: ugen.Fixed(ugen.AudioIn, ugen.AudioOut),
	Construct: func(w ugen.World, opts ugen.Options) (ugen.Unit, error) {
		o, ok := opts.(FFTOptions)
		if !ok {
			return nil, fmt.Errorf("fft: %w: %T", ugen.ErrInvalidOptions, opts)
		}

		// Each spectrum is one allocation; larger ones could never be sent.
		if bins := o.Size / 2; bins > w.MaxAlloc() {
			return nil, fmt.Errorf("fft: %w: %d bins exceed allocator limit %d", ugen.ErrInvalidOptions, bins, w.MaxAlloc())
		}

		a, err := spectrum.NewAnalyzer(o.Size, w.BlockSize())
		if err != nil {
			return nil, err
		}

		return &fftUnit{ports: newPorts(fftPorts), analyzer: a, notify: ugen.Notifier(FFTAddress)}, nil
	},
}

type fftUnit struct {
	ports

	analyzer *spectrum.Analyzer
	notify   ugen.HostFunc
}

func (u *fftUnit) Process(w ugen.World, frames int) {
	in := u.audio(fftIn, frames)
	copy(u.audio(fftOut, frames), in)

	if !u.analyzer.Write(in) {
		return
	}

	payload := w.Alloc(u.analyzer.Bins())
	if payload == nil {
		u.analyzer.Reset()

		return
	}

	if err := u.analyzer.Magnitudes(payload); err != nil {
		w.Free(payload)

		return
	}

	if !w.Perform(ugen.Command{Fn: u.notify, Payload: payload}) {
		w.Free(payload)
	}
}
