// Package delay implements a fractional circular delay line with feedback.
package delay

import (
	"errors"
	"fmt"
	"math"
)

// ErrSpan is returned when a delay line would wrap on fewer than one sample.
var ErrSpan = errors.New("delay: span must be >= 1 sample")

// Line is a circular delay line read with linear interpolation.
//
// The buffer is allocated with ceil(maxSeconds*sampleRate) samples but the
// write position wraps on span = floor(maxSeconds*sampleRate). A requested
// delay of zero therefore reads the sample written exactly span samples ago.
type Line struct {
	buf  []float64
	span int
	wp   int
}

// New returns a delay line that wraps on span samples.
func New(span int) (*Line, error) {
	if span < 1 {
		return nil, fmt.Errorf("%w: %d", ErrSpan, span)
	}

	return &Line{buf: make([]float64, span), span: span}, nil
}

// NewSeconds returns a delay line able to hold maxSeconds of audio at
// sampleRate.
func NewSeconds(maxSeconds, sampleRate float64) (*Line, error) {
	if !(maxSeconds > 0) || math.IsInf(maxSeconds, 0) {
		return nil, fmt.Errorf("delay: max seconds must be > 0 and finite: %v", maxSeconds)
	}

	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("delay: sample rate must be > 0 and finite: %v", sampleRate)
	}

	total := maxSeconds * sampleRate

	span := int(math.Floor(total))
	if span < 1 {
		return nil, fmt.Errorf("%w: %v seconds at %v Hz", ErrSpan, maxSeconds, sampleRate)
	}

	return &Line{buf: make([]float64, int(math.Ceil(total))), span: span}, nil
}

// Len returns the allocated buffer length.
func (l *Line) Len() int {
	return len(l.buf)
}

// Span returns the wrap length, which is also the longest available delay.
func (l *Line) Span() int {
	return l.span
}

// WritePos returns the index the next sample is written to.
func (l *Line) WritePos() int {
	return l.wp
}

// ProcessSample reads the line delaySamples behind the write position,
// writes in + out*feedback and advances. delaySamples is clamped to
// [0, Span()]; NaN counts as zero.
//
// Feedback is not limited. |feedback| >= 1 makes the line unstable.
func (l *Line) ProcessSample(in, delaySamples, feedback float64) float64 {
	span := float64(l.span)

	vdt := delaySamples
	switch {
	case !(vdt > 0):
		vdt = 0
	case vdt > span:
		vdt = span
	}

	rp := float64(l.wp) - vdt
	if rp < 0 {
		rp += span
	}

	rpi := int(rp)
	frac := rp - float64(rpi)

	if rpi >= l.span {
		rpi -= l.span
	}

	next := rpi + 1
	if next >= l.span {
		next = 0
	}

	a := l.buf[rpi]
	out := a + frac*(l.buf[next]-a)

	l.buf[l.wp] = in + out*feedback

	l.wp++
	if l.wp >= l.span {
		l.wp = 0
	}

	return out
}

// Process runs ProcessSample over in, writing len(in) samples to out with a
// constant delay and feedback. out and in may alias.
func (l *Line) Process(out, in []float64, delaySamples, feedback float64) {
	for i, x := range in[:min(len(in), len(out))] {
		out[i] = l.ProcessSample(x, delaySamples, feedback)
	}
}

// Reset clears the buffer and rewinds the write position.
func (l *Line) Reset() {
	clear(l.buf)
	l.wp = 0
}
