// Package gaussian implements a Gaussian smoothing filter with value-padded
// edges.
package gaussian

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-analytics/dsp/conv"
	"gonum.org/v1/gonum/floats"
)

const (
	// DefaultKernelSize is used when a kernel size below 1 is requested.
	DefaultKernelSize = 51
	// DefaultAlpha is the default width parameter.
	DefaultAlpha = 0.5
)

// ErrEmptyInput is returned by Apply for an empty signal.
var ErrEmptyInput = errors.New("gaussian: empty input")

// Option configures a Filter.
type Option func(*Filter)

// WithKernelSize sets the kernel size. Even sizes are rounded up to the
// next odd size; sizes below 1 select DefaultKernelSize.
func WithKernelSize(k int) Option {
	return func(f *Filter) { f.SetKernelSize(k) }
}

// WithAlpha sets the width parameter. Non-positive values are ignored.
func WithAlpha(alpha float64) Option {
	return func(f *Filter) { f.SetAlpha(alpha) }
}

// WithConvolver shares a convolver and its plan cache with the filter.
func WithConvolver(c *conv.Convolver) Option {
	return func(f *Filter) {
		if c != nil {
			f.conv = c
		}
	}
}

// Filter smooths a signal with the normalised kernel
//
//	g[k] = exp(-0.5 * (alpha*k/H)^2),  k = -H..H,  H = (K-1)/2
//
// Larger alpha narrows the bell relative to the kernel size.
type Filter struct {
	kernelSize int
	alpha      float64
	conv       *conv.Convolver
}

// New returns a filter with DefaultKernelSize and DefaultAlpha unless
// overridden.
func New(opts ...Option) *Filter {
	f := &Filter{
		kernelSize: DefaultKernelSize,
		alpha:      DefaultAlpha,
	}
	for _, o := range opts {
		o(f)
	}
	if f.conv == nil {
		f.conv = conv.NewConvolver()
	}
	return f
}

// SetKernelSize sets the kernel size, forcing it odd.
func (f *Filter) SetKernelSize(k int) {
	switch {
	case k < 1:
		f.kernelSize = DefaultKernelSize
	case k%2 == 0:
		f.kernelSize = k + 1
	default:
		f.kernelSize = k
	}
}

// KernelSize returns the (odd) kernel size.
func (f *Filter) KernelSize() int { return f.kernelSize }

// SetAlpha sets the width parameter. Non-positive or non-finite values are
// ignored.
func (f *Filter) SetAlpha(alpha float64) {
	if alpha <= 0 || math.IsNaN(alpha) || math.IsInf(alpha, 0) {
		return
	}
	f.alpha = alpha
}

// Alpha returns the width parameter.
func (f *Filter) Alpha() float64 { return f.alpha }

// Kernel returns the normalised kernel taps.
func (f *Filter) Kernel() []float64 {
	return Kernel(f.kernelSize, f.alpha)
}

// Apply returns the smoothed signal, of the same length as x. Samples
// beyond either end are taken to equal the nearest edge sample.
func (f *Filter) Apply(x []float64) ([]float64, error) {
	if len(x) == 0 {
		return nil, ErrEmptyInput
	}

	h := f.kernelSize / 2
	padded := make([]float64, len(x)+2*h)
	for i := range padded {
		padded[i] = x[min(max(i-h, 0), len(x)-1)]
	}

	out, err := f.conv.ConvolveMode(padded, f.Kernel(), conv.ModeValid)
	if err != nil {
		return nil, fmt.Errorf("gaussian: %w", err)
	}
	return out, nil
}

// Kernel computes the normalised Gaussian kernel of size k (forced odd, at
// least 1) and width parameter alpha.
func Kernel(k int, alpha float64) []float64 {
	if k < 1 {
		k = 1
	}
	if k%2 == 0 {
		k++
	}
	h := k / 2
	g := make([]float64, k)
	if h == 0 {
		g[0] = 1
		return g
	}

	for i := range g {
		r := alpha * float64(i-h) / float64(h)
		g[i] = math.Exp(-0.5 * r * r)
	}
	floats.Scale(1/floats.Sum(g), g)
	return g
}
