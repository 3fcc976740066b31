// Package window generates tapering tables for spectral analysis.
package window

import (
	"fmt"
	"math"
	"strings"
)

// Type identifies a window function.
type Type int

const (
	TypeRectangular Type = iota
	TypeHann
	TypeHamming
	TypeBlackman
	TypeBlackmanHarris
)

var typeNames = map[Type]string{
	TypeRectangular:    "rectangular",
	TypeHann:           "hann",
	TypeHamming:        "hamming",
	TypeBlackman:       "blackman",
	TypeBlackmanHarris: "blackman-harris",
}

// Cosine-sum coefficients a0, a1, a2, ... for w(x) = sum (-1)^k a_k cos(2 pi k x).
var (
	hannCoeffs           = []float64{0.5, 0.5}
	hammingCoeffs        = []float64{0.54, 0.46}
	blackmanCoeffs       = []float64{0.42, 0.5, 0.08}
	blackmanHarrisCoeffs = []float64{0.35875, 0.48829, 0.14128, 0.01168}
)

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}

	return fmt.Sprintf("Type(%d)", int(t))
}

// ParseType maps a case-insensitive window name to its Type.
func ParseType(name string) (Type, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for t, n := range typeNames {
		if n == name {
			return t, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownType, name)
}

// Option configures window generation.
type Option func(*config)

type config struct {
	periodic bool
}

// WithPeriodic selects the periodic form used for FFT framing. The default
// is the symmetric form.
func WithPeriodic() Option {
	return func(c *config) {
		c.periodic = true
	}
}

// Generate returns a window of the given length.
func Generate(t Type, length int, opts ...Option) ([]float64, error) {
	if err := validateLength(length); err != nil {
		return nil, err
	}

	out := make([]float64, length)
	if err := Fill(out, t, opts...); err != nil {
		return nil, err
	}

	return out, nil
}

// Fill writes window coefficients into dst, using len(dst) as the length.
func Fill(dst []float64, t Type, opts ...Option) error {
	if err := validateLength(len(dst)); err != nil {
		return err
	}

	var coeffs []float64

	switch t {
	case TypeRectangular:
		for i := range dst {
			dst[i] = 1
		}

		return nil
	case TypeHann:
		coeffs = hannCoeffs
	case TypeHamming:
		coeffs = hammingCoeffs
	case TypeBlackman:
		coeffs = blackmanCoeffs
	case TypeBlackmanHarris:
		coeffs = blackmanHarrisCoeffs
	default:
		return fmt.Errorf("%w: %v", ErrUnknownType, t)
	}

	var cfg config

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	n := len(dst)
	for i := range dst {
		dst[i] = cosineSum(position(i, n, cfg.periodic), coeffs)
	}

	return nil
}

// Sum returns the sum of the coefficients, the DC gain of the window.
func Sum(coeffs []float64) float64 {
	s := 0.0
	for _, c := range coeffs {
		s += c
	}

	return s
}

// EquivalentNoiseBandwidth returns the ENBW of a window in bins.
func EquivalentNoiseBandwidth(coeffs []float64) (float64, error) {
	if len(coeffs) == 0 {
		return 0, errEmptyCoeffs
	}

	sum := 0.0
	sumSquares := 0.0

	for _, c := range coeffs {
		sum += c
		sumSquares += c * c
	}

	if sum == 0 {
		return 0, errZeroCoherentGain
	}

	return float64(len(coeffs)) * sumSquares / (sum * sum), nil
}

// position maps index i of n to x in [0, 1].
func position(i, n int, periodic bool) float64 {
	if periodic {
		return float64(i) / float64(n)
	}

	if n == 1 {
		return 0.5
	}

	return float64(i) / float64(n-1)
}

func cosineSum(x float64, coeffs []float64) float64 {
	w := 0.0
	sign := 1.0

	for k, a := range coeffs {
		w += sign * a * math.Cos(2*math.Pi*float64(k)*x)
		sign = -sign
	}

	return w
}
