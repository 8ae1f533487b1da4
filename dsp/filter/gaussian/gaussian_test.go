package gaussian

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-analytics/internal/testutil"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestKernelSizeRules(t *testing.T) {
	tests := []struct{ in, want int }{
		{0, DefaultKernelSize},
		{-4, DefaultKernelSize},
		{1, 1},
		{4, 5},
		{61, 61},
	}
	for _, tc := range tests {
		f := New(WithKernelSize(tc.in))
		if f.KernelSize() != tc.want {
			t.Fatalf("size %d: got %d, want %d", tc.in, f.KernelSize(), tc.want)
		}
		if len(f.Kernel()) != tc.want {
			t.Fatalf("size %d: kernel len %d", tc.in, len(f.Kernel()))
		}
	}
}

func TestAlphaIgnoresInvalid(t *testing.T) {
	f := New(WithAlpha(3))
	f.SetAlpha(0)
	f.SetAlpha(-1)
	f.SetAlpha(math.NaN())
	if f.Alpha() != 3 {
		t.Fatalf("alpha=%v, want 3", f.Alpha())
	}
	if New().Alpha() != DefaultAlpha {
		t.Fatalf("default alpha=%v", New().Alpha())
	}
}

func TestKernelNormalisedAndSymmetric(t *testing.T) {
	for _, alpha := range []float64{0.5, 1, 3} {
		g := Kernel(61, alpha)
		sum := 0.0
		for _, v := range g {
			sum += v
		}
		if !almostEqual(sum, 1, 1e-12) {
			t.Fatalf("alpha %v: sum=%v", alpha, sum)
		}
		testutil.RequireSymmetric(t, g, 1e-15)
		if testutil.LocalMaxima(g)[0] != 30 {
			t.Fatalf("alpha %v: peak not centred", alpha)
		}
	}

	// Edge-to-centre ratio is exp(-alpha^2/2).
	g := Kernel(21, 2)
	if !almostEqual(g[0]/g[10], math.Exp(-2), 1e-12) {
		t.Fatalf("edge ratio=%v, want %v", g[0]/g[10], math.Exp(-2))
	}
}

func TestApplyPreservesConstant(t *testing.T) {
	x := make([]float64, 100)
	for i := range x {
		x[i] = -2.5
	}
	y, err := New(WithKernelSize(61), WithAlpha(3)).Apply(x)
	if err != nil {
		t.Fatal(err)
	}
	if len(y) != len(x) {
		t.Fatalf("len=%d, want %d", len(y), len(x))
	}
	for i, v := range y {
		if !almostEqual(v, -2.5, 1e-12) {
			t.Fatalf("y[%d]=%v", i, v)
		}
	}
}

func TestApplyShortSignalUsesValuePadding(t *testing.T) {
	// Kernel much wider than the signal: every output is a weighted mix of
	// the two values, so stays inside their range.
	y, err := New(WithKernelSize(51)).Apply([]float64{1, 3})
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range y {
		if v < 1 || v > 3 {
			t.Fatalf("y[%d]=%v outside [1, 3]", i, v)
		}
	}
	if !(y[0] < y[1]) {
		t.Fatalf("order lost: %v", y)
	}
}

func TestApplySmoothsImpulse(t *testing.T) {
	x := testutil.Impulse(64, 32)
	f := New(WithKernelSize(9), WithAlpha(2))
	y, err := f.Apply(x)
	if err != nil {
		t.Fatal(err)
	}
	g := f.Kernel()
	for k, want := range g {
		if got := y[32-4+k]; !almostEqual(got, want, 1e-12) {
			t.Fatalf("y[%d]=%v, want %v", 32-4+k, got, want)
		}
	}
	if math.Abs(y[20]) > 1e-12 {
		t.Fatalf("y[20]=%v, want 0", y[20])
	}
}

func TestApplyEmpty(t *testing.T) {
	if _, err := New().Apply(nil); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("err=%v", err)
	}
}
