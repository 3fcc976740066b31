package delay

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-ugen/internal/testutil"
)

func TestNewValidation(t *testing.T) {
	t.Parallel()

	if _, err := New(0); !errors.Is(err, ErrSpan) {
		t.Fatalf("New(0) err = %v, want ErrSpan", err)
	}

	if _, err := NewSeconds(0.00001, 48000); !errors.Is(err, ErrSpan) {
		t.Fatalf("NewSeconds(tiny) err = %v, want ErrSpan", err)
	}

	for _, tc := range []struct {
		name    string
		sec, sr float64
	}{
		{"zero seconds", 0, 48000},
		{"nan seconds", math.NaN(), 48000},
		{"inf seconds", math.Inf(1), 48000},
		{"negative rate", 1, -1},
	} {
		if _, err := NewSeconds(tc.sec, tc.sr); err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
	}
}

func TestNewSecondsCeilAndFloor(t *testing.T) {
	t.Parallel()

	l, err := NewSeconds(0.5, 101)
	if err != nil {
		t.Fatal(err)
	}

	if l.Len() != 51 {
		t.Fatalf("Len = %d, want 51", l.Len())
	}

	if l.Span() != 50 {
		t.Fatalf("Span = %d, want 50", l.Span())
	}
}

func TestZeroDelayIsFullCycle(t *testing.T) {
	t.Parallel()

	const span = 37

	l, err := New(span)
	if err != nil {
		t.Fatal(err)
	}

	in := testutil.Noise(7, 1, 4*span)
	out := make([]float64, len(in))
	l.Process(out, in, 0, 0)

	for i := range out {
		want := 0.0
		if i >= span {
			want = in[i-span]
		}

		if out[i] != want {
			t.Fatalf("out[%d] = %v, want %v", i, out[i], want)
		}
	}

	if l.WritePos() != 0 {
		t.Fatalf("WritePos = %d, want 0", l.WritePos())
	}
}

func TestTruncationLaw(t *testing.T) {
	t.Parallel()

	in := testutil.Noise(3, 1, 500)

	run := func(delay float64) []float64 {
		l, err := NewSeconds(0.01, 4800)
		if err != nil {
			t.Fatal(err)
		}

		out := make([]float64, len(in))
		l.Process(out, in, delay, 0.3)

		return out
	}

	atMax := run(48)
	for _, beyond := range []float64{48.5, 100, math.Inf(1)} {
		got := run(beyond)
		for i := range got {
			if got[i] != atMax[i] {
				t.Fatalf("delay %v: out[%d] = %v, want %v", beyond, i, got[i], atMax[i])
			}
		}
	}
}

func TestImpulseReproducedOnce(t *testing.T) {
	t.Parallel()

	for _, delay := range []int{1, 5, 63} {
		l, err := New(64)
		if err != nil {
			t.Fatal(err)
		}

		in := testutil.Impulse(256, 0)
		out := make([]float64, len(in))
		l.Process(out, in, float64(delay), 0)

		for i, v := range out {
			want := 0.0
			if i == delay {
				want = 1
			}

			if v != want {
				t.Fatalf("delay %d: out[%d] = %v, want %v", delay, i, v, want)
			}
		}
	}
}

func TestFractionalDelayInterpolates(t *testing.T) {
	t.Parallel()

	l, err := New(16)
	if err != nil {
		t.Fatal(err)
	}

	in := testutil.Impulse(8, 0)
	out := make([]float64, len(in))
	l.Process(out, in, 2.25, 0)

	want := []float64{0, 0, 0.75, 0.25, 0, 0, 0, 0}
	testutil.RequireSliceNearlyEqual(t, out, want, 1e-12)
}

func TestFeedbackRecirculates(t *testing.T) {
	t.Parallel()

	l, err := New(32)
	if err != nil {
		t.Fatal(err)
	}

	in := testutil.Impulse(40, 0)
	out := make([]float64, len(in))
	l.Process(out, in, 10, 0.5)

	for _, tc := range []struct {
		idx  int
		want float64
	}{{10, 1}, {20, 0.5}, {30, 0.25}} {
		if math.Abs(out[tc.idx]-tc.want) > 1e-12 {
			t.Fatalf("out[%d] = %v, want %v", tc.idx, out[tc.idx], tc.want)
		}
	}
}

func TestNaNDelayMapsToZero(t *testing.T) {
	t.Parallel()

	a, _ := New(8)
	b, _ := New(8)
	in := testutil.Ramp(1, 24)

	outA := make([]float64, len(in))
	outB := make([]float64, len(in))
	a.Process(outA, in, math.NaN(), 0)
	b.Process(outB, in, 0, 0)

	testutil.RequireSliceNearlyEqual(t, outA, outB, 0)
	testutil.RequireFinite(t, outA)
}

func TestReset(t *testing.T) {
	t.Parallel()

	l, _ := New(4)
	l.Process(make([]float64, 3), []float64{1, 2, 3}, 0, 0)
	l.Reset()

	if l.WritePos() != 0 {
		t.Fatalf("WritePos = %d, want 0", l.WritePos())
	}

	out := make([]float64, 4)
	l.Process(out, []float64{1, 1, 1, 1}, 0, 0)

	for i, v := range out {
		if v != 0 {
			t.Fatalf("out[%d] = %v after Reset, want 0", i, v)
		}
	}
}
