// Package biquad provides second-order IIR sections and the resonant
// low-pass, high-pass and band-pass designs used by the filter units.
//
// A [Section] runs Direct Form II Transposed over [Coefficients]. The
// design functions derive coefficients from a cutoff or centre frequency
// and are cheap enough to call once per block when parameters move.
package biquad
