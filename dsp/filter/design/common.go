package design

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-analytics/dsp/core"
	"github.com/cwbudde/algo-analytics/dsp/filter/sos"
)

// ErrInvalidParameter is returned by the computed designers for a cutoff
// outside (0, sampleRate/2), a non-positive sample rate or an unsupported
// order.
var ErrInvalidParameter = errors.New("design: invalid parameter")

// prewarp returns tan(pi*freq/sampleRate), the bilinear frequency warping
// factor.
func prewarp(freq, sampleRate float64, order, maxOrder int) (float64, error) {
	if !core.ValidSampleRate(sampleRate) {
		return 0, fmt.Errorf("design: sample rate %v: %w", sampleRate, ErrInvalidParameter)
	}
	if !(freq > 0 && freq < sampleRate/2) {
		return 0, fmt.Errorf("design: cutoff %v outside (0, %v): %w", freq, sampleRate/2, ErrInvalidParameter)
	}
	if order <= 0 || (maxOrder > 0 && order > maxOrder) {
		return 0, fmt.Errorf("design: order %d: %w", order, ErrInvalidParameter)
	}
	return math.Tan(math.Pi * freq / sampleRate), nil
}

// firstOrderLP maps the analog pole s = -p (p already scaled by the
// prewarped cutoff) to a unity-DC-gain digital section.
func firstOrderLP(p float64) sos.Coefficients {
	norm := 1 / (1 + p)
	return sos.Coefficients{
		B0: p * norm,
		B1: p * norm,
		A1: (p - 1) * norm,
	}
}

// secondOrderLP maps the analog pole pair -a ± jb (scaled by the prewarped
// cutoff) through s = (z-1)/(z+1), normalised to unity DC gain.
func secondOrderLP(a, b float64) sos.Coefficients {
	p2 := a*a + b*b
	a0 := 1 + 2*a + p2
	return sos.Coefficients{
		B0: p2 / a0,
		B1: 2 * p2 / a0,
		B2: p2 / a0,
		A1: (-2 + 2*p2) / a0,
		A2: (1 - 2*a + p2) / a0,
	}
}
