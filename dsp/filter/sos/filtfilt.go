package sos

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
)

var (
	// ErrEmptyFilter is returned when zero-phase filtering is asked of a
	// filter without stages.
	ErrEmptyFilter = errors.New("sos: empty filter")

	// ErrInvalidLength is returned for an empty input buffer.
	ErrInvalidLength = errors.New("sos: invalid buffer length")

	// ErrStateMismatch is returned by SetState for a snapshot whose length
	// differs from the stage count.
	ErrStateMismatch = errors.New("sos: state length does not match stage count")
)

type filtFiltConfig struct {
	zeroState bool
}

// FiltFiltOption configures FiltFilt.
type FiltFiltOption func(*filtFiltConfig)

// WithZeroState starts both passes from zero state instead of the steady
// state for the first sample. Edges then show the filter's step response.
func WithZeroState() FiltFiltOption {
	return func(c *filtFiltConfig) { c.zeroState = true }
}

// FiltFilt returns x filtered forward, reversed, filtered again and
// reversed back, which cancels the phase response of f and squares its
// magnitude response.
//
// By default each pass starts from the steady state for its first sample,
// so a constant input through a unity-DC-gain filter comes back unchanged.
// The state of f is restored before returning and x is not modified.
func FiltFilt(x []float64, f *Filter, opts ...FiltFiltOption) ([]float64, error) {
	if f == nil || f.Empty() {
		return nil, ErrEmptyFilter
	}
	if len(x) == 0 {
		return nil, fmt.Errorf("sos: filtfilt of %d samples: %w", len(x), ErrInvalidLength)
	}

	var cfg filtFiltConfig
	for _, o := range opts {
		if o != nil {
			o(&cfg)
		}
	}

	saved := f.State()
	defer f.SetState(saved)

	out := make([]float64, len(x))
	copy(out, x)

	pass := func() {
		if cfg.zeroState {
			f.Reset()
		} else {
			f.InitSteadyState(out[0])
		}
		f.ProcessBlock(out)
	}

	pass()
	floats.Reverse(out)
	pass()
	floats.Reverse(out)

	return out, nil
}
