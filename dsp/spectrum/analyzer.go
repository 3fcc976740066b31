package spectrum

import (
	"errors"
	"fmt"

	algofft "github.com/cwbudde/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-ugen/dsp/core"
	"github.com/cwbudde/algo-ugen/dsp/window"
)

var (
	// ErrSize is returned for an analysis size that is not a power of two >= 2.
	ErrSize = errors.New("spectrum: size must be a power of two >= 2")
	// ErrBlockSize is returned for a non-positive block size.
	ErrBlockSize = errors.New("spectrum: block size must be > 0")
	// ErrShortDst is returned when the magnitude destination holds fewer than Bins values.
	ErrShortDst = errors.New("spectrum: destination shorter than bin count")
)

// AnalyzerOption configures an Analyzer.
type AnalyzerOption func(*analyzerConfig)

type analyzerConfig struct {
	window window.Type
}

// WithWindow selects the tapering window. The periodic form is always used.
func WithWindow(t window.Type) AnalyzerOption {
	return func(c *analyzerConfig) {
		c.window = t
	}
}

// Analyzer accumulates windowed blocks into an analysis frame of Size
// samples and computes Size/2 magnitude bins once the frame is full.
//
// With a block size B the frame completes every ceil(Size/B) blocks. When
// Size is smaller than B only the first Size samples of each block are used
// and every block completes a frame.
type Analyzer struct {
	size      int
	blockSize int
	cycles    int
	cycle     int

	win  []float64
	sig  []float64
	norm float64

	plan   *algofft.Plan[complex128]
	freqIn []complex128
	freq   []complex128
	re, im []float64
}

// NewAnalyzer returns an analyzer for frames of size samples fed in blocks of
// blockSize samples.
func NewAnalyzer(size, blockSize int, opts ...AnalyzerOption) (*Analyzer, error) {
	if size < 2 || !core.IsPowerOfTwo(size) {
		return nil, fmt.Errorf("%w: %d", ErrSize, size)
	}

	if blockSize <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrBlockSize, blockSize)
	}

	cfg := analyzerConfig{window: window.TypeHann}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	win, err := window.Generate(cfg.window, size, window.WithPeriodic())
	if err != nil {
		return nil, fmt.Errorf("spectrum: %w", err)
	}

	gain := window.Sum(win)
	if gain == 0 {
		return nil, fmt.Errorf("spectrum: window %v has zero gain", cfg.window)
	}

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("spectrum: fft plan: %w", err)
	}

	bins := size / 2

	return &Analyzer{
		size:      size,
		blockSize: blockSize,
		cycles:    core.CeilDiv(size, blockSize),
		win:       win,
		sig:       make([]float64, size),
		norm:      2 / gain,
		plan:      plan,
		freqIn:    make([]complex128, size),
		freq:      make([]complex128, size),
		re:        make([]float64, bins),
		im:        make([]float64, bins),
	}, nil
}

// Size returns the analysis frame length.
func (a *Analyzer) Size() int { return a.size }

// Bins returns the number of magnitude values produced per frame.
func (a *Analyzer) Bins() int { return a.size / 2 }

// Cycles returns how many blocks make up one frame.
func (a *Analyzer) Cycles() int { return a.cycles }

// Cycle returns how many blocks have contributed to the current frame.
func (a *Analyzer) Cycle() int { return a.cycle }

// Write windows block into the frame at the current cycle's offset and
// reports whether the frame is complete. A block shorter than the block
// size leaves the rest of its slot at zero.
//
// Writing after a completed frame without calling Magnitudes starts a new
// frame.
func (a *Analyzer) Write(block []float64) bool {
	if a.cycle >= a.cycles {
		a.cycle = 0
	}

	off := a.cycle * a.blockSize
	slot := min(a.blockSize, a.size-off)
	n := min(slot, len(block))

	vecmath.MulBlock(a.sig[off:off+n], block[:n], a.win[off:off+n])
	clear(a.sig[off+n : off+slot])

	a.cycle++

	return a.cycle == a.cycles
}

// Magnitudes transforms the current frame and writes Bins() normalized
// magnitudes to dst. A bin-centred sinusoid of amplitude A reads as A.
// The accumulation pass restarts afterwards.
func (a *Analyzer) Magnitudes(dst []float64) error {
	bins := a.Bins()
	if len(dst) < bins {
		return fmt.Errorf("%w: %d < %d", ErrShortDst, len(dst), bins)
	}

	for i, v := range a.sig {
		a.freqIn[i] = complex(v, 0)
	}

	a.cycle = 0

	if err := a.plan.Forward(a.freq, a.freqIn); err != nil {
		return fmt.Errorf("spectrum: forward transform: %w", err)
	}

	for k := range bins {
		a.re[k] = real(a.freq[k])
		a.im[k] = imag(a.freq[k])
	}

	out := dst[:bins]
	vecmath.Magnitude(out, a.re, a.im)
	vecmath.ScaleBlock(out, out, a.norm)

	return nil
}

// Reset discards the partial frame.
func (a *Analyzer) Reset() {
	a.cycle = 0
	clear(a.sig)
}
