// Package render writes rendered audio to WAV files.
package render

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/cwbudde/algo-ugen/dsp/core"
)

const pcmFormat = 1

// ErrFormat is returned for unsupported WAV parameters or mismatched
// channel blocks.
var ErrFormat = errors.New("render: invalid format")

// Writer streams planar float64 blocks into an integer PCM WAV file.
type Writer struct {
	enc      *wav.Encoder
	channels int
	scale    float64
	buf      audio.IntBuffer
}

// NewWriter starts a WAV stream on w. bitDepth must be 16, 24 or 32.
func NewWriter(w io.WriteSeeker, sampleRate, bitDepth, channels int) (*Writer, error) {
	switch bitDepth {
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: bit depth %d", ErrFormat, bitDepth)
	}

	if sampleRate <= 0 || channels <= 0 {
		return nil, fmt.Errorf("%w: %d Hz, %d channels", ErrFormat, sampleRate, channels)
	}

	return &Writer{
		enc:      wav.NewEncoder(w, sampleRate, bitDepth, channels, pcmFormat),
		channels: channels,
		scale:    math.Exp2(float64(bitDepth-1)) - 1,
		buf: audio.IntBuffer{
			Format:         &audio.Format{NumChannels: channels, SampleRate: sampleRate},
			SourceBitDepth: bitDepth,
		},
	}, nil
}

// Write appends one block. Every channel must have the same length.
// Samples are clipped to [-1, 1].
func (w *Writer) Write(block ...[]float64) error {
	if len(block) != w.channels {
		return fmt.Errorf("%w: got %d channels, want %d", ErrFormat, len(block), w.channels)
	}

	frames := len(block[0])
	for _, ch := range block[1:] {
		if len(ch) != frames {
			return fmt.Errorf("%w: ragged block", ErrFormat)
		}
	}

	if cap(w.buf.Data) < frames*w.channels {
		w.buf.Data = make([]int, frames*w.channels)
	}

	w.buf.Data = w.buf.Data[:frames*w.channels]

	for c, ch := range block {
		for i, x := range ch {
			if math.IsNaN(x) {
				x = 0
			}

			w.buf.Data[i*w.channels+c] = int(math.Round(core.Clamp(x, -1, 1) * w.scale))
		}
	}

	if err := w.enc.Write(&w.buf); err != nil {
		return fmt.Errorf("render: write: %w", err)
	}

	return nil
}

// Close finalizes the WAV header. It does not close the underlying
// writer.
func (w *Writer) Close() error {
	if err := w.enc.Close(); err != nil {
		return fmt.Errorf("render: close: %w", err)
	}

	return nil
}

// WriteFile writes planar channels to a new WAV file at path.
func WriteFile(path string, sampleRate, bitDepth int, channels ...[]float64) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("render: %w", cerr)
		}
	}()

	w, err := NewWriter(f, sampleRate, bitDepth, len(channels))
	if err != nil {
		return err
	}

	if err := w.Write(channels...); err != nil {
		return err
	}

	return w.Close()
}
