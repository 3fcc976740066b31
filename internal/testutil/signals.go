package testutil

import (
	"math"
	"math/rand"
)

// Sine generates a deterministic sine wave starting at phase 0.
func Sine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// BinSine generates a sine whose frequency falls exactly on bin k of an
// fftSize-point transform: f = k * sampleRate / fftSize.
func BinSine(k, fftSize int, sampleRate, amplitude float64, length int) []float64 {
	return Sine(float64(k)*sampleRate/float64(fftSize), sampleRate, amplitude, length)
}

// Noise generates white noise in [-amplitude, amplitude] with a fixed seed.
func Noise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Impulse generates a unit impulse at the given position.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// Ramp returns [start, start+1, ..., start+length-1].
func Ramp(start float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = start + float64(i)
	}
	return out
}

// Blocks splits signal into consecutive blocks of blockSize samples. The
// final block is zero-padded.
func Blocks(signal []float64, blockSize int) [][]float64 {
	var blocks [][]float64
	for off := 0; off < len(signal); off += blockSize {
		b := make([]float64, blockSize)
		copy(b, signal[off:])
		blocks = append(blocks, b)
	}
	return blocks
}
