package frequency

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-analytics/dsp/core"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ErrLengthMismatch is returned when a spectrum and its frequency axis have
// different lengths.
var ErrLengthMismatch = errors.New("frequency: spectrum and axis lengths differ")

// Stats holds statistics of a one-sided, linear-scale spectrum.
type Stats struct {
	BinCount int
	DC       float64 // first bin
	Sum      float64
	Max      float64
	MaxBin   int
	MaxFreq  float64
	Min      float64
	MinBin   int
	Average  float64
	Energy   float64 // sum of squared values

	// Decibel forms, 20*log10 of the linear value.
	DCdB      float64
	MaxdB     float64
	AveragedB float64

	Centroid  float64 // Hz
	Spread    float64 // Hz
	Flatness  float64 // 0..1
	Rolloff   float64 // Hz, 85 % of energy
	Bandwidth float64 // Hz, -3 dB around the peak
}

// Axis returns the bin frequencies of a raw one-sided spectrum with n bins
// taken from a transform of length 2*(n-1).
func Axis(n int, sampleRate float64) []float64 {
	if n <= 0 {
		return nil
	}
	f := make([]float64, n)
	if n == 1 {
		return f
	}
	for i := range f {
		f[i] = float64(i) * sampleRate / float64(2*(n-1))
	}
	return f
}

// Calculate computes all statistics of spectrum over the frequency axis
// freqs. An empty spectrum yields a zero Stats with -Inf decibel fields.
func Calculate(spectrum, freqs []float64) (Stats, error) {
	if len(spectrum) != len(freqs) {
		return Stats{}, fmt.Errorf("frequency: %d bins, %d frequencies: %w", len(spectrum), len(freqs), ErrLengthMismatch)
	}

	n := len(spectrum)
	if n == 0 {
		return Stats{
			DCdB:      math.Inf(-1),
			MaxdB:     math.Inf(-1),
			AveragedB: math.Inf(-1),
		}, nil
	}

	var s Stats
	s.BinCount = n
	s.DC = spectrum[0]
	s.Sum = floats.Sum(spectrum)
	s.MaxBin = floats.MaxIdx(spectrum)
	s.Max = spectrum[s.MaxBin]
	s.MaxFreq = freqs[s.MaxBin]
	s.MinBin = floats.MinIdx(spectrum)
	s.Min = spectrum[s.MinBin]
	s.Average = s.Sum / float64(n)
	s.Energy = floats.Dot(spectrum, spectrum)

	s.DCdB = core.LinearToDB(s.DC)
	s.MaxdB = core.LinearToDB(s.Max)
	s.AveragedB = core.LinearToDB(s.Average)

	s.Centroid, s.Spread = centroidSpread(spectrum, freqs, s.Sum)
	s.Flatness = Flatness(spectrum)
	s.Rolloff = rolloff(spectrum, freqs, 0.85, s.Energy)
	s.Bandwidth = bandwidth(spectrum, freqs, s.MaxBin)

	return s, nil
}

// Centroid returns the spectral centroid, the value-weighted mean frequency.
func Centroid(spectrum, freqs []float64) float64 {
	if len(spectrum) != len(freqs) || len(spectrum) == 0 {
		return 0
	}
	c, _ := centroidSpread(spectrum, freqs, floats.Sum(spectrum))
	return c
}

func centroidSpread(spectrum, freqs []float64, sum float64) (float64, float64) {
	if sum <= 0 {
		return 0, 0
	}
	return stat.PopMeanStdDev(freqs, spectrum)
}

// Flatness returns the spectral flatness (Wiener entropy) in 0..1, the ratio
// of geometric to arithmetic mean. The first (DC) bin is excluded. Any zero
// bin gives 0.
func Flatness(spectrum []float64) float64 {
	if len(spectrum) < 2 {
		return 0
	}
	bins := spectrum[1:]
	mean := stat.Mean(bins, nil)
	if mean <= 0 || floats.Min(bins) <= 0 {
		return 0
	}
	return stat.GeometricMean(bins, nil) / mean
}

// Rolloff returns the lowest frequency at which the cumulative energy
// reaches fraction of the total.
func Rolloff(spectrum, freqs []float64, fraction float64) float64 {
	if len(spectrum) != len(freqs) || len(spectrum) == 0 {
		return 0
	}
	return rolloff(spectrum, freqs, fraction, floats.Dot(spectrum, spectrum))
}

func rolloff(spectrum, freqs []float64, fraction, energy float64) float64 {
	if energy == 0 {
		return 0
	}
	cum := make([]float64, len(spectrum))
	copy(cum, spectrum)
	floats.Mul(cum, spectrum)
	floats.CumSum(cum, cum)

	threshold := fraction * energy
	for i, v := range cum {
		if v >= threshold {
			return freqs[i]
		}
	}
	return freqs[len(freqs)-1]
}

// Bandwidth returns the width of the region around the peak where the
// spectrum stays above peak/sqrt(2), interpolating the crossings linearly.
func Bandwidth(spectrum, freqs []float64) float64 {
	if len(spectrum) != len(freqs) || len(spectrum) == 0 {
		return 0
	}
	return bandwidth(spectrum, freqs, floats.MaxIdx(spectrum))
}

func bandwidth(spectrum, freqs []float64, peak int) float64 {
	n := len(spectrum)
	if n < 2 || spectrum[peak] <= 0 {
		return 0
	}
	threshold := spectrum[peak] / math.Sqrt2

	lower := freqs[0]
	for i := peak; i >= 1; i-- {
		if spectrum[i-1] <= threshold {
			lower = interp(freqs[i-1], freqs[i], spectrum[i-1], spectrum[i], threshold)
			break
		}
	}

	upper := freqs[n-1]
	for i := peak; i < n-1; i++ {
		if spectrum[i+1] <= threshold {
			upper = interp(freqs[i], freqs[i+1], spectrum[i], spectrum[i+1], threshold)
			break
		}
	}

	return max(upper-lower, 0)
}

// interp finds where the line through (f0, m0) and (f1, m1) crosses level.
func interp(f0, f1, m0, m1, level float64) float64 {
	d := m1 - m0
	if d == 0 {
		return (f0 + f1) / 2
	}
	return f0 + (level-m0)/d*(f1-f0)
}
