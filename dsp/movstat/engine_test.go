package movstat

import (
	"errors"
	"math"
	"sync"
	"testing"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func requireSlice(t *testing.T, name string, got, want []float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s: len=%d, want %d", name, len(got), len(want))
	}
	for i := range want {
		if !almostEqual(got[i], want[i], 1e-12) {
			t.Fatalf("%s: [%d]=%v, want %v (got %v)", name, i, got[i], want[i], got)
		}
	}
}

var sample = []float64{1, 5, 2, 8, 3}

func TestOddWidthEdgeModes(t *testing.T) {
	e := NewEngine()
	type statFn func([]float64, int, EdgeMode) ([]float64, error)

	tests := []struct {
		name string
		fn   statFn
		mode EdgeMode
		want []float64
	}{
		{"max value", e.Maxima, ValuePad, []float64{5, 5, 8, 8, 8}},
		{"min value", e.Minima, ValuePad, []float64{1, 1, 2, 2, 3}},
		{"median value", e.Median, ValuePad, []float64{1, 2, 5, 3, 3}},
		{"mean value", e.Mean, ValuePad, []float64{7.0 / 3, 8.0 / 3, 5, 13.0 / 3, 14.0 / 3}},
		{"mad value", e.MAD, ValuePad, []float64{0, 1, 3, 1, 0}},
		{"min zero", e.Minima, ZeroPad, []float64{0, 1, 2, 2, 0}},
		{"mean zero", e.Mean, ZeroPad, []float64{2, 8.0 / 3, 5, 13.0 / 3, 11.0 / 3}},
		{"median truncate", e.Median, Truncate, []float64{3, 2, 5, 3, 5.5}},
		{"mean truncate", e.Mean, Truncate, []float64{3, 8.0 / 3, 5, 13.0 / 3, 5.5}},
	}
	for _, tc := range tests {
		got, err := tc.fn(sample, 3, tc.mode)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		requireSlice(t, tc.name, got, tc.want)
	}
}

func TestEvenWidthLeansToPast(t *testing.T) {
	e := NewEngine()
	got, err := e.Median(sample, 4, Truncate)
	if err != nil {
		t.Fatal(err)
	}
	requireSlice(t, "median w4", got, []float64{3, 2, 3.5, 4, 3})
}

func TestWidthOneIsIdentity(t *testing.T) {
	e := NewEngine()
	for _, mode := range []EdgeMode{ValuePad, ZeroPad, Truncate} {
		got, err := e.Median(sample, 1, mode)
		if err != nil {
			t.Fatal(err)
		}
		requireSlice(t, mode.String(), got, sample)
	}
}

func TestWidthWiderThanInput(t *testing.T) {
	e := NewEngine()
	got, err := e.Maxima([]float64{2, -1}, 9, ZeroPad)
	if err != nil {
		t.Fatal(err)
	}
	requireSlice(t, "wide max", got, []float64{2, 2})

	got, err = e.Minima([]float64{2, -1}, 9, Truncate)
	if err != nil {
		t.Fatal(err)
	}
	requireSlice(t, "wide min", got, []float64{-1, -1})
}

func TestInputNotModified(t *testing.T) {
	e := NewEngine()
	x := []float64{4, 1, 3, 2}
	orig := append([]float64(nil), x...)
	if _, err := e.MAD(x, 3, ValuePad); err != nil {
		t.Fatal(err)
	}
	requireSlice(t, "input", x, orig)
}

func TestErrors(t *testing.T) {
	e := NewEngine()
	if _, err := e.Mean(sample, 0, ValuePad); !errors.Is(err, ErrInvalidWidth) {
		t.Fatalf("width 0: err=%v", err)
	}
	if _, err := e.Mean(nil, 3, ValuePad); !errors.Is(err, ErrInvalidLength) {
		t.Fatalf("empty: err=%v", err)
	}
	if _, err := e.Mean(sample, 3, EdgeMode(9)); !errors.Is(err, ErrInvalidEdgeMode) {
		t.Fatalf("mode: err=%v", err)
	}

	limited := NewEngine(WithMaxWidth(8))
	if _, err := limited.Mean(sample, 9, ValuePad); !errors.Is(err, ErrResourceExhausted) {
		t.Fatalf("limit: err=%v", err)
	}
	if len(limited.Widths()) != 0 {
		t.Fatalf("failed request left widths %v", limited.Widths())
	}
}

func TestWorkspacePerWidth(t *testing.T) {
	e := NewEngine()
	for _, w := range []int{5, 3, 5, 3, 7} {
		if _, err := e.Median(sample, w, ValuePad); err != nil {
			t.Fatal(err)
		}
	}
	got := e.Widths()
	if len(got) != 3 || got[0] != 3 || got[1] != 5 || got[2] != 7 {
		t.Fatalf("widths=%v, want [3 5 7]", got)
	}

	e.Teardown()
	if len(e.Widths()) != 0 {
		t.Fatal("teardown left workspaces")
	}
	if _, err := e.Median(sample, 3, ValuePad); err != nil {
		t.Fatalf("after teardown: %v", err)
	}
}

func TestConcurrentSameWidth(t *testing.T) {
	e := NewEngine()
	x := make([]float64, 256)
	for i := range x {
		x[i] = float64(i % 17)
	}
	want, _ := e.Median(x, 9, ValuePad)

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := e.Median(x, 9, ValuePad)
			if err != nil {
				errs <- err
				return
			}
			for i := range got {
				if got[i] != want[i] {
					errs <- errors.New("result differs")
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatal(err)
	}
}

func TestParseEdgeMode(t *testing.T) {
	for in, want := range map[string]EdgeMode{"": ValuePad, "value": ValuePad, "Zero": ZeroPad, "truncate": Truncate} {
		got, err := ParseEdgeMode(in)
		if err != nil || got != want {
			t.Fatalf("ParseEdgeMode(%q)=%v,%v want %v", in, got, err, want)
		}
	}
	if _, err := ParseEdgeMode("mirror"); err == nil {
		t.Fatal("expected error")
	}
}
