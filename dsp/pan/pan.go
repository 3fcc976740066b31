// Package pan implements an equal-power stereo panner with a per-block
// level ramp.
package pan

import "math"

const (
	tableSize = 8192
	// quarter is the table index of the first sine peak; positions map onto
	// [0, quarter].
	quarter = tableSize / 4
	center  = quarter / 2
)

// gainTable holds the first quarter period of an 8192-point sine table,
// endpoints included.
var gainTable = func() []float64 {
	t := make([]float64, quarter+1)
	for i := range t {
		t[i] = math.Sin(2 * math.Pi * float64(i) / tableSize)
	}

	return t
}()

// Pan2 spreads a mono input across two outputs. Position -1 is hard left,
// 0 is centre and 1 is hard right; left and right gains satisfy
// l^2 + r^2 = level^2.
//
// Level changes are ramped linearly over one block so amplitude steps do
// not click.
type Pan2 struct {
	level       float64
	slopeFactor float64
}

// New returns a panner that starts at level and ramps level changes over
// blockSize frames.
func New(level float64, blockSize int) *Pan2 {
	return &Pan2{level: level, slopeFactor: 1 / float64(max(blockSize, 1))}
}

// Level returns the level reached at the end of the last block.
func (p *Pan2) Level() float64 { return p.level }

// Gains returns the left and right table gains for pos at unit level.
func Gains(pos float64) (left, right float64) {
	idx := index(pos)

	return gainTable[quarter-idx], gainTable[idx]
}

func index(pos float64) int {
	// NaN positions fall through both comparisons and land at centre.
	x := float64(center)*pos + float64(center) + 0.5
	switch {
	case x <= 0:
		return 0
	case x >= quarter:
		return quarter
	case x > 0:
		return int(x)
	default:
		return center
	}
}

// Process pans in into outL and outR at pos, moving the level towards
// target across the block.
func (p *Pan2) Process(outL, outR, in []float64, pos, target float64) {
	idx := index(pos)
	gl, gr := gainTable[quarter-idx], gainTable[idx]

	n := min(len(in), len(outL), len(outR))
	amp := p.level

	if amp == target {
		l, r := amp*gl, amp*gr
		for i, x := range in[:n] {
			outL[i] = x * l
			outR[i] = x * r
		}

		return
	}

	slope := (target - amp) * p.slopeFactor
	for i, x := range in[:n] {
		outL[i] = x * amp * gl
		outR[i] = x * amp * gr
		amp += slope
	}

	p.level = amp
}
