package sos

import (
	"math"
	"math/cmplx"
)

// Response computes the complex frequency response of the cascade as the
// product of the stage responses. An empty filter has response 1.
func (f *Filter) Response(freqHz, sampleRate float64) complex128 {
	h := complex(1, 0)
	for i := range f.stages {
		h *= f.stages[i].Response(freqHz, sampleRate)
	}
	return h
}

// MagnitudeDB returns the cascaded magnitude response in dB.
func (f *Filter) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return 20 * math.Log10(cmplx.Abs(f.Response(freqHz, sampleRate)))
}

// DCGain returns the product of the stage DC gains.
func (f *Filter) DCGain() float64 {
	g := 1.0
	for i := range f.stages {
		g *= f.stages[i].DCGain()
	}
	return g
}

// Stable reports whether every stage is stable.
func (f *Filter) Stable() bool {
	for i := range f.stages {
		if !f.stages[i].Stable() {
			return false
		}
	}
	return true
}

// CutoffFrequency returns the lowest frequency in (0, sampleRate/2] where
// the magnitude response first drops below dropDB relative to DC, found by
// bisection after a coarse scan. It returns 0 if the response never drops
// that far.
func (f *Filter) CutoffFrequency(sampleRate, dropDB float64) float64 {
	ref := f.MagnitudeDB(0, sampleRate) - math.Abs(dropDB)
	nyq := sampleRate / 2

	const steps = 2048
	lo := 0.0
	for i := 1; i <= steps; i++ {
		hi := nyq * float64(i) / steps
		if f.MagnitudeDB(hi, sampleRate) < ref {
			for range 60 {
				mid := (lo + hi) / 2
				if f.MagnitudeDB(mid, sampleRate) < ref {
					hi = mid
				} else {
					lo = mid
				}
			}
			return (lo + hi) / 2
		}
		lo = hi
	}
	return 0
}

// ImpulseResponse computes n samples of the cascade impulse response.
// The filter state is saved and restored.
func (f *Filter) ImpulseResponse(n int) []float64 {
	if n <= 0 {
		return nil
	}
	saved := f.State()
	f.Reset()
	ir := make([]float64, n)
	ir[0] = f.Process(1)
	for i := 1; i < n; i++ {
		ir[i] = f.Process(0)
	}
	f.SetState(saved)
	return ir
}
