package analytics

import (
	"github.com/cwbudde/algo-analytics/dsp/buffer"
	"github.com/cwbudde/algo-analytics/dsp/conv"
	"github.com/cwbudde/algo-analytics/dsp/filter/gaussian"
)

const (
	// DefaultSmoothKernel is the Gaussian kernel size used by Smooth.
	DefaultSmoothKernel = 61
	// DefaultSmoothAlpha is the Gaussian width parameter used by Smooth.
	DefaultSmoothAlpha = 3.0
)

// Smooth returns b convolved with a normalised Gaussian kernel, with
// value-padded edges. The kernel is DefaultSmoothKernel taps with
// DefaultSmoothAlpha unless changed with WithSmoothing or opts.
func (e *Engine) Smooth(b *buffer.Buffer, opts ...gaussian.Option) (*buffer.Buffer, error) {
	done, err := e.begin()
	if err != nil {
		return nil, err
	}
	defer done()

	base := []gaussian.Option{
		gaussian.WithKernelSize(e.smoothKernel),
		gaussian.WithAlpha(e.smoothAlpha),
		gaussian.WithConvolver(e.conv),
	}
	out, err := gaussian.New(append(base, opts...)...).Apply(samples(b))
	if err != nil {
		return nil, err
	}
	return buffer.FromSlice(out), nil
}

// Convolve returns the linear convolution of a and kernel trimmed to mode.
func (e *Engine) Convolve(a, kernel *buffer.Buffer, mode conv.Mode) (*buffer.Buffer, error) {
	done, err := e.begin()
	if err != nil {
		return nil, err
	}
	defer done()

	out, err := e.conv.ConvolveMode(samples(a), samples(kernel), mode)
	if err != nil {
		return nil, err
	}
	return buffer.FromSlice(out), nil
}
