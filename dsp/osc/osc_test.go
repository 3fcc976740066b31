package osc

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-ugen/internal/testutil"
)

func TestSineTableGuards(t *testing.T) {
	t.Parallel()

	table := SineTable(16)
	if len(table) != 18 {
		t.Fatalf("len = %d, want 18", len(table))
	}

	if math.Abs(table[16]-table[0]) > 1e-12 || math.Abs(table[17]-table[1]) > 1e-12 {
		t.Fatal("guard samples do not repeat the start of the period")
	}
}

func TestSineMatchesReference(t *testing.T) {
	t.Parallel()

	const sr = 48000.0

	s, err := NewSine(sr, 8192)
	if err != nil {
		t.Fatal(err)
	}

	got := make([]float64, 1000)
	s.Process(got[:500], 440, 0.5, 0.1)
	s.Process(got[500:], 440, 0.5, 0.1)

	want := testutil.Sine(440, sr, 0.5, 1000)
	for i := range want {
		want[i] += 0.1
	}

	testutil.RequireSliceNearlyEqual(t, got, want, 1e-6)
}

func TestSineNegativeFrequencyStaysInTable(t *testing.T) {
	t.Parallel()

	s, err := NewSine(48000, 64)
	if err != nil {
		t.Fatal(err)
	}

	buf := make([]float64, 4096)
	s.Process(buf, -1234, 1, 0)
	testutil.RequireFinite(t, buf)

	if _, err := NewSine(0, 64); err == nil {
		t.Fatal("expected error for zero sample rate")
	}

	if _, err := NewSine(48000, 1); err == nil {
		t.Fatal("expected error for tiny table")
	}
}

func TestSawRangeAndPeriod(t *testing.T) {
	t.Parallel()

	s := NewSaw(100)
	buf := make([]float64, 100)
	s.Process(buf, 10, 1, 0)

	for i, v := range buf {
		if v < -1 || v >= 1 {
			t.Fatalf("buf[%d] = %v out of [-1, 1)", i, v)
		}
	}

	// Period is 10 samples: phase steps by 0.2 from 0.
	if math.Abs(buf[0]) > 1e-12 || math.Abs(buf[10]-buf[0]) > 1e-9 {
		t.Fatalf("buf[0] = %v, buf[10] = %v", buf[0], buf[10])
	}

	if math.Abs(buf[1]-0.2) > 1e-12 {
		t.Fatalf("buf[1] = %v, want 0.2", buf[1])
	}
}

func TestTriangleShape(t *testing.T) {
	t.Parallel()

	tri := NewTriangle(8)
	buf := make([]float64, 8)
	tri.Process(buf, 1, 2, 0.5)

	// 4/8 per sample: 0, 0.5, 1, 0.5, 0, -0.5, -1, -0.5 scaled by 2 plus 0.5.
	want := []float64{0.5, 1.5, 2.5, 1.5, 0.5, -0.5, -1.5, -0.5}
	testutil.RequireSliceNearlyEqual(t, buf, want, 1e-12)
}

func TestPulseDuty(t *testing.T) {
	t.Parallel()

	p := NewPulse(1000)
	buf := make([]float64, 1000)
	p.Process(buf, 10, 0.25, 1, 0)

	high := 0
	for _, v := range buf {
		if v == 1 {
			high++
		} else if v != 0 {
			t.Fatalf("unexpected pulse value %v", v)
		}
	}

	if high < 240 || high > 260 {
		t.Fatalf("high samples = %d, want about 250", high)
	}
}

func TestResetRewinds(t *testing.T) {
	t.Parallel()

	s := NewSaw(48000)
	a := make([]float64, 16)
	b := make([]float64, 16)

	s.Process(a, 1000, 1, 0)
	s.Reset()
	s.Process(b, 1000, 1, 0)

	testutil.RequireSliceNearlyEqual(t, a, b, 0)
}
