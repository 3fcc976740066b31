package core

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		lo       float64
		hi       float64
		expected float64
	}{
		{name: "inside", value: 0.5, lo: 0, hi: 1, expected: 0.5},
		{name: "below", value: -1, lo: 0, hi: 1, expected: 0},
		{name: "above", value: 2, lo: 0, hi: 1, expected: 1},
		{name: "swapped", value: 2, lo: 1, hi: 0, expected: 1},
		{name: "nan", value: math.NaN(), lo: 0, hi: 1, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clamp(tt.value, tt.lo, tt.hi)
			if got != tt.expected {
				t.Fatalf("Clamp() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestFlushDenormals(t *testing.T) {
	if got := FlushDenormals(1e-35); got != 0 {
		t.Fatalf("FlushDenormals(1e-35) = %v, want 0", got)
	}

	if got := FlushDenormals(0.25); got != 0.25 {
		t.Fatalf("FlushDenormals(0.25) = %v, want 0.25", got)
	}
}

func TestPowerOfTwoHelpers(t *testing.T) {
	for _, n := range []int{1, 2, 64, 1024} {
		if !IsPowerOfTwo(n) {
			t.Fatalf("IsPowerOfTwo(%d) = false", n)
		}
	}

	for _, n := range []int{0, -4, 3, 96} {
		if IsPowerOfTwo(n) {
			t.Fatalf("IsPowerOfTwo(%d) = true", n)
		}
	}

	if got := NextPowerOfTwo(96); got != 128 {
		t.Fatalf("NextPowerOfTwo(96) = %d, want 128", got)
	}

	if got := NextPowerOfTwo(0); got != 1 {
		t.Fatalf("NextPowerOfTwo(0) = %d, want 1", got)
	}
}

func TestCeilDiv(t *testing.T) {
	if got := CeilDiv(512, 128); got != 4 {
		t.Fatalf("CeilDiv(512, 128) = %d, want 4", got)
	}

	if got := CeilDiv(512, 96); got != 6 {
		t.Fatalf("CeilDiv(512, 96) = %d, want 6", got)
	}
}

func TestApplyProcessorOptions(t *testing.T) {
	cfg := ApplyProcessorOptions(WithSampleRate(96000), WithBlockSize(256))
	if cfg.SampleRate != 96000 {
		t.Fatalf("sample rate = %v, want 96000", cfg.SampleRate)
	}

	if cfg.BlockSize != 256 {
		t.Fatalf("block size = %d, want 256", cfg.BlockSize)
	}
}

func TestInvalidOptionsIgnored(t *testing.T) {
	cfg := ApplyProcessorOptions(WithSampleRate(0), WithSampleRate(math.Inf(1)), WithBlockSize(-1))
	if def := DefaultProcessorConfig(); cfg != def {
		t.Fatalf("cfg = %#v, want %#v", cfg, def)
	}
}

func TestValidate(t *testing.T) {
	if err := DefaultProcessorConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	if err := (ProcessorConfig{SampleRate: 48000}).Validate(); err == nil {
		t.Fatal("expected error for zero block size")
	}

	if err := (ProcessorConfig{BlockSize: 64}).Validate(); err == nil {
		t.Fatal("expected error for zero sample rate")
	}
}
