// Package testutil holds deterministic signals and tolerance assertions
// shared by the analytics tests.
package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates amplitude*sin(2*pi*freqHz*n/sampleRate).
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates uniform white noise with a fixed seed.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Impulse generates a unit impulse at the given position.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// CenteredPulse returns a length-n signal that is 1 on the first head
// samples and the last tail samples and 0 elsewhere: a rectangular pulse
// centred on sample 0 of the periodic extension.
func CenteredPulse(n, head, tail int) []float64 {
	out := make([]float64, n)
	for i := 0; i < head && i < n; i++ {
		out[i] = 1
	}
	for i := n - tail; i < n; i++ {
		if i >= 0 {
			out[i] = 1
		}
	}
	return out
}

// Step returns a signal that is lo before index at and hi from at onwards.
func Step(length, at int, lo, hi float64) []float64 {
	out := make([]float64, length)
	for i := range out {
		if i < at {
			out[i] = lo
		} else {
			out[i] = hi
		}
	}
	return out
}
