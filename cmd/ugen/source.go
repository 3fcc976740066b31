package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-ugen/dsp/noise"
	"github.com/cwbudde/algo-ugen/dsp/osc"
)

// source fills audio input blocks.
type source interface {
	fill(dst []float64)
}

type sineSource struct {
	osc  *osc.Sine
	freq float64
}

func (s *sineSource) fill(dst []float64) { s.osc.Process(dst, s.freq, 1, 0) }

type noiseSource struct{ gen noise.Generator }

func (s noiseSource) fill(dst []float64) { s.gen.Process(dst, 1, 0) }

type impulseSource struct{ fired bool }

func (s *impulseSource) fill(dst []float64) {
	clear(dst)

	if !s.fired && len(dst) > 0 {
		dst[0] = 1
		s.fired = true
	}
}

type silenceSource struct{}

func (silenceSource) fill(dst []float64) { clear(dst) }

// parseSource understands "sine:<hz>", "noise", "impulse" and "silence".
func parseSource(input string, sampleRate float64) (source, error) {
	kind, param, _ := strings.Cut(strings.ToLower(strings.TrimSpace(input)), ":")

	switch kind {
	case "sine":
		freq := 440.0

		if param != "" {
			f, err := strconv.ParseFloat(param, 64)
			if err != nil {
				return nil, fmt.Errorf("input %q: %w", input, err)
			}

			freq = f
		}

		s, err := osc.NewSine(sampleRate, osc.DefaultTableSize)
		if err != nil {
			return nil, err
		}

		return &sineSource{osc: s, freq: freq}, nil
	case "noise":
		return noiseSource{gen: noise.NewWhite(1)}, nil
	case "impulse":
		return &impulseSource{}, nil
	case "silence":
		return silenceSource{}, nil
	default:
		return nil, fmt.Errorf("unknown input %q (sine:<hz>, noise, impulse, silence)", input)
	}
}
