package testutil

import (
	"fmt"
	"math"
	"testing"
)

// RequireSliceNearlyEqual fails t if got and want differ in length or if
// any element pair exceeds eps (absolute tolerance).
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		diff := math.Abs(got[i] - want[i])
		if diff > eps {
			t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], diff, eps)
		}
	}
}

// RequireFinite fails t if any element is NaN or Inf.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// RequireSymmetric fails t unless data[k] and data[len-1-k] agree within eps.
func RequireSymmetric(t *testing.T, data []float64, eps float64) {
	t.Helper()
	n := len(data)
	for k := 0; k < n/2; k++ {
		if d := math.Abs(data[k] - data[n-1-k]); d > eps {
			t.Fatalf("index %d vs %d: %v != %v (diff %v)", k, n-1-k, data[k], data[n-1-k], d)
		}
	}
}

// MaxAbsDiff returns the maximum absolute difference between two slices.
// Returns an error if the slices differ in length.
func MaxAbsDiff(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("length mismatch: %d vs %d", len(a), len(b))
	}
	maxDiff := 0.0
	for i := range a {
		maxDiff = math.Max(maxDiff, math.Abs(a[i]-b[i]))
	}
	return maxDiff, nil
}

// LocalMaxima returns the indices i in [1, len-2] with data[i-1] < data[i]
// and data[i] >= data[i+1].
func LocalMaxima(data []float64) []int {
	var idx []int
	for i := 1; i+1 < len(data); i++ {
		if data[i] > data[i-1] && data[i] >= data[i+1] {
			idx = append(idx, i)
		}
	}
	return idx
}
