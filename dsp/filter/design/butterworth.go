package design

import (
	"math"

	"github.com/cwbudde/algo-analytics/dsp/filter/sos"
)

// ButterworthLP designs a low-pass Butterworth cascade of the given order
// with its -3 dB point at cutoff. Odd orders end with a first-order stage
// (B2 = A2 = 0).
func ButterworthLP(cutoff float64, order int, sampleRate float64) (*sos.Filter, error) {
	wc, err := prewarp(cutoff, sampleRate, order, 0)
	if err != nil {
		return nil, err
	}

	f := &sos.Filter{}
	for i := order/2 - 1; i >= 0; i-- {
		// Analog pole pair on the unit circle at angle theta from the
		// imaginary axis.
		theta := math.Pi * float64(2*i+1) / (2 * float64(order))
		f.Append(secondOrderLP(wc*math.Sin(theta), wc*math.Cos(theta)))
	}
	if order%2 != 0 {
		f.Append(firstOrderLP(wc))
	}
	return f, nil
}
