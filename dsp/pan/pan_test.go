package pan

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-ugen/internal/testutil"
)

func TestGainsEqualPower(t *testing.T) {
	t.Parallel()

	for _, pos := range []float64{-1, -0.5, 0, 0.25, 0.9, 1} {
		l, r := Gains(pos)
		if p := l*l + r*r; math.Abs(p-1) > 1e-6 {
			t.Fatalf("pos %v: l^2+r^2 = %v, want 1", pos, p)
		}
	}

	l, r := Gains(-1)
	if l != 1 || math.Abs(r) > 1e-15 {
		t.Fatalf("hard left = (%v, %v)", l, r)
	}

	l, r = Gains(1)
	if math.Abs(l) > 1e-15 || r != 1 {
		t.Fatalf("hard right = (%v, %v)", l, r)
	}

	l, r = Gains(0)
	if math.Abs(l-r) > 1e-15 {
		t.Fatalf("centre = (%v, %v), want equal", l, r)
	}
}

func TestGainsClampAndNaN(t *testing.T) {
	t.Parallel()

	l, r := Gains(5)
	if l2, r2 := Gains(1); l != l2 || r != r2 {
		t.Fatal("pos beyond 1 not clamped")
	}

	l, r = Gains(math.NaN())
	if lc, rc := Gains(0); l != lc || r != rc {
		t.Fatalf("NaN pos = (%v, %v), want centre", l, r)
	}
}

func TestProcessSteadyLevel(t *testing.T) {
	t.Parallel()

	p := New(0.5, 4)
	in := []float64{1, 2, 3, 4}
	outL := make([]float64, 4)
	outR := make([]float64, 4)

	p.Process(outL, outR, in, -1, 0.5)

	testutil.RequireSliceNearlyEqual(t, outL, []float64{0.5, 1, 1.5, 2}, 0)
	testutil.RequireSliceNearlyEqual(t, outR, []float64{0, 0, 0, 0}, 1e-15)
}

func TestProcessRampsLevel(t *testing.T) {
	t.Parallel()

	p := New(0, 4)
	in := []float64{1, 1, 1, 1}
	outL := make([]float64, 4)
	outR := make([]float64, 4)

	p.Process(outL, outR, in, 1, 1)

	testutil.RequireSliceNearlyEqual(t, outR, []float64{0, 0.25, 0.5, 0.75}, 1e-12)

	if math.Abs(p.Level()-1) > 1e-12 {
		t.Fatalf("Level = %v, want 1", p.Level())
	}

	p.Process(outL, outR, in, 1, 1)
	testutil.RequireSliceNearlyEqual(t, outR, []float64{1, 1, 1, 1}, 1e-12)
}
