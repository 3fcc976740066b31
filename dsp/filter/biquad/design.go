package biquad

import "math"

// Lowpass returns a resonant second-order low-pass with cutoff freq and
// quality q. q <= 0 or freq outside (0, sampleRate/2) yields non-finite
// coefficients; callers own that hazard.
func Lowpass(freq, q, sampleRate float64) Coefficients {
	w := math.Tan(math.Pi * freq / sampleRate)
	w2 := w * w
	n := 1 / (w2 + w/q + 1)

	return Coefficients{
		B0: n * w2,
		B1: 2 * n * w2,
		B2: n * w2,
		A1: 2 * n * (w2 - 1),
		A2: n * (w2 - w/q + 1),
	}
}

// Highpass returns a resonant second-order high-pass with cutoff freq and
// quality q.
func Highpass(freq, q, sampleRate float64) Coefficients {
	w := math.Tan(math.Pi * freq / sampleRate)
	w2 := w * w
	n := 1 / (w2 + w/q + 1)

	return Coefficients{
		B0: n,
		B1: -2 * n,
		B2: n,
		A1: 2 * n * (w2 - 1),
		A2: n * (w2 - w/q + 1),
	}
}

// Bandpass returns a constant-peak band-pass centred on freq with bandwidth
// bw in Hz. Peak gain is 1. bw <= 0 yields non-finite coefficients.
func Bandpass(freq, bw, sampleRate float64) Coefficients {
	w := 1 / math.Tan(math.Pi*bw/sampleRate)
	n := 2 * math.Cos(2*math.Pi*freq/sampleRate)
	a0 := 1 / (1 + w)

	return Coefficients{
		B0: a0,
		B1: 0,
		B2: -a0,
		A1: -w * n * a0,
		A2: a0 * (w - 1),
	}
}
