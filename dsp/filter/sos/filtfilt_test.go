package sos

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-analytics/internal/testutil"
)

func TestFiltFiltConstantPassthrough(t *testing.T) {
	f := New(unityLowpass(), unityLowpass())
	for _, c := range []float64{1, -2.5, 1e3} {
		out, err := FiltFilt(testutil.DC(c, 200), f)
		if err != nil {
			t.Fatal(err)
		}
		for i, v := range out {
			if math.Abs(v-c) > 1e-12*math.Abs(c) {
				t.Fatalf("c=%v index %d: %v", c, i, v)
			}
		}
	}
}

func TestFiltFiltZeroStateShowsEdges(t *testing.T) {
	f := New(unityLowpass())
	out, err := FiltFilt(testutil.DC(1, 64), f, WithZeroState())
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(out[0]-1) < 1e-3 {
		t.Fatalf("zero-state edge %v should deviate from the constant", out[0])
	}
	// The interior settles.
	if math.Abs(out[32]-1) > 1e-9 {
		t.Fatalf("interior sample %v, want 1", out[32])
	}
}

func TestFiltFiltZeroPhase(t *testing.T) {
	const fs = 1000.0
	f := New(unityLowpass())
	x := testutil.DeterministicSine(20, fs, 1, 1000)

	out, err := FiltFilt(x, f)
	if err != nil {
		t.Fatal(err)
	}

	// Two passes square the magnitude and cancel the phase.
	gain := f.Stage(0).MagnitudeSquared(20, fs)
	for i := 100; i < 900; i++ {
		if math.Abs(out[i]-gain*x[i]) > 1e-9 {
			t.Fatalf("index %d: %v, want %v", i, out[i], gain*x[i])
		}
	}
}

func TestFiltFiltPreservesInputAndState(t *testing.T) {
	f := testFilter()
	f.Process(0.3)
	before := f.State()

	x := testutil.DeterministicNoise(4, 1, 50)
	orig := append([]float64(nil), x...)

	if _, err := FiltFilt(x, f); err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, x, orig, 0)

	after := f.State()
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("stage %d state changed", i)
		}
	}
}

func TestFiltFiltErrors(t *testing.T) {
	if _, err := FiltFilt([]float64{1, 2}, &Filter{}); !errors.Is(err, ErrEmptyFilter) {
		t.Fatalf("empty filter err = %v", err)
	}
	if _, err := FiltFilt([]float64{1, 2}, nil); !errors.Is(err, ErrEmptyFilter) {
		t.Fatalf("nil filter err = %v", err)
	}
	if _, err := FiltFilt(nil, testFilter()); !errors.Is(err, ErrInvalidLength) {
		t.Fatalf("empty input err = %v", err)
	}
}
