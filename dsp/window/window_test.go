package window

import (
	"errors"
	"math"
	"testing"
)

func TestGenerateRejectsBadInput(t *testing.T) {
	t.Parallel()

	if _, err := Generate(TypeHann, 0); err == nil {
		t.Fatal("expected error for zero length")
	}

	if _, err := Generate(Type(99), 8); !errors.Is(err, ErrUnknownType) {
		t.Fatalf("err = %v, want ErrUnknownType", err)
	}
}

func TestHannForms(t *testing.T) {
	t.Parallel()

	sym, err := Generate(TypeHann, 9)
	if err != nil {
		t.Fatal(err)
	}

	if math.Abs(sym[0]) > 1e-15 || math.Abs(sym[8]) > 1e-15 {
		t.Fatalf("symmetric Hann edges = %v, %v, want 0", sym[0], sym[8])
	}

	if math.Abs(sym[4]-1) > 1e-15 {
		t.Fatalf("symmetric Hann centre = %v, want 1", sym[4])
	}

	per, err := Generate(TypeHann, 8, WithPeriodic())
	if err != nil {
		t.Fatal(err)
	}

	if math.Abs(per[4]-1) > 1e-15 {
		t.Fatalf("periodic Hann centre = %v, want 1", per[4])
	}

	// A periodic Hann of length N sums to exactly N/2.
	if got := Sum(per); math.Abs(got-4) > 1e-12 {
		t.Fatalf("Sum(periodic Hann) = %v, want 4", got)
	}
}

func TestSymmetry(t *testing.T) {
	t.Parallel()

	for _, typ := range []Type{TypeHann, TypeHamming, TypeBlackman, TypeBlackmanHarris} {
		w, err := Generate(typ, 33)
		if err != nil {
			t.Fatal(err)
		}

		for i := range w {
			if math.Abs(w[i]-w[len(w)-1-i]) > 1e-12 {
				t.Fatalf("%v: w[%d]=%v, w[%d]=%v", typ, i, w[i], len(w)-1-i, w[len(w)-1-i])
			}
		}

		if w[16] < 0.999 || w[16] > 1.0001 {
			t.Fatalf("%v: peak = %v, want about 1", typ, w[16])
		}
	}
}

func TestRectangularAndFill(t *testing.T) {
	t.Parallel()

	dst := make([]float64, 5)
	if err := Fill(dst, TypeRectangular); err != nil {
		t.Fatal(err)
	}

	if Sum(dst) != 5 {
		t.Fatalf("Sum = %v, want 5", Sum(dst))
	}

	enbw, err := EquivalentNoiseBandwidth(dst)
	if err != nil {
		t.Fatal(err)
	}

	if enbw != 1 {
		t.Fatalf("ENBW = %v, want 1", enbw)
	}
}

func TestHannENBW(t *testing.T) {
	t.Parallel()

	w, _ := Generate(TypeHann, 1024, WithPeriodic())

	enbw, err := EquivalentNoiseBandwidth(w)
	if err != nil {
		t.Fatal(err)
	}

	if math.Abs(enbw-1.5) > 1e-9 {
		t.Fatalf("ENBW = %v, want 1.5", enbw)
	}

	if _, err := EquivalentNoiseBandwidth(nil); err == nil {
		t.Fatal("expected error for empty coefficients")
	}

	if _, err := EquivalentNoiseBandwidth([]float64{1, -1}); err == nil {
		t.Fatal("expected error for zero coherent gain")
	}
}

func TestParseType(t *testing.T) {
	t.Parallel()

	for typ, name := range typeNames {
		got, err := ParseType(" " + name + " ")
		if err != nil || got != typ {
			t.Fatalf("ParseType(%q) = %v, %v", name, got, err)
		}

		if typ.String() != name {
			t.Fatalf("String() = %q, want %q", typ.String(), name)
		}
	}

	if _, err := ParseType("kaiser"); !errors.Is(err, ErrUnknownType) {
		t.Fatalf("err = %v, want ErrUnknownType", err)
	}

	if Type(42).String() != "Type(42)" {
		t.Fatalf("String() = %q", Type(42).String())
	}
}
