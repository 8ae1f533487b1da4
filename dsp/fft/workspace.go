package fft

import (
	"fmt"
	"sync"

	"gonum.org/v1/gonum/dsp/fourier"
)

// Workspace is a real forward transform bound to one sequence length.
// Transforms on the same workspace are serialised internally.
type Workspace struct {
	mu       sync.Mutex
	n        int
	plan     *fourier.FFT
	coeffs   []complex128
	released bool
}

// NewWorkspace builds the transform tables for length n.
func NewWorkspace(n int) (*Workspace, error) {
	if n < MinLength {
		return nil, fmt.Errorf("fft: length %d: %w", n, ErrInvalidLength)
	}

	return &Workspace{
		n:      n,
		plan:   fourier.NewFFT(n),
		coeffs: make([]complex128, n/2+1),
	}, nil
}

// Len returns the sequence length the workspace is bound to.
func (w *Workspace) Len() int { return w.n }

// Transform replaces buf with its forward transform in half-complex packed
// order. The transform is unnormalised.
func (w *Workspace) Transform(buf []float64) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.check(len(buf)); err != nil {
		return err
	}

	w.plan.Coefficients(w.coeffs, buf)
	pack(buf, w.coeffs)

	return nil
}

// Coefficients computes the n/2+1 complex bins of seq into dst. dst may be
// nil, in which case a new slice is allocated.
func (w *Workspace) Coefficients(dst []complex128, seq []float64) ([]complex128, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.check(len(seq)); err != nil {
		return nil, err
	}
	if dst == nil {
		dst = make([]complex128, w.n/2+1)
	} else if len(dst) != w.n/2+1 {
		return nil, fmt.Errorf("fft: destination length %d, want %d: %w", len(dst), w.n/2+1, ErrInvalidLength)
	}

	return w.plan.Coefficients(dst, seq), nil
}

// Release drops the transform tables. Later calls return ErrReleased.
func (w *Workspace) Release() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.released = true
	w.plan = nil
	w.coeffs = nil
}

func (w *Workspace) check(n int) error {
	if w.released {
		return ErrReleased
	}
	if n != w.n {
		return fmt.Errorf("fft: buffer length %d, workspace length %d: %w", n, w.n, ErrInvalidLength)
	}
	return nil
}

// pack writes the n/2+1 complex bins in half-complex order. len(dst) is the
// sequence length.
func pack(dst []float64, coeffs []complex128) {
	n := len(dst)
	dst[0] = real(coeffs[0])
	for k := 1; 2*k < n; k++ {
		dst[2*k-1] = real(coeffs[k])
		dst[2*k] = imag(coeffs[k])
	}
	if n%2 == 0 {
		dst[n-1] = real(coeffs[n/2])
	}
}
