package frequency

import (
	"fmt"
	"slices"
)

// Peak is a local maximum of a spectrum.
type Peak struct {
	Bin   int
	Value float64
	// Frequency is refined by parabolic interpolation over the neighbouring
	// bins for interior peaks.
	Frequency float64
}

// PeakOptions filters the result of DetectPeaks. The zero value keeps every
// local maximum.
type PeakOptions struct {
	// MinValue drops peaks below this level.
	MinValue float64
	// MinDistance is the minimum bin separation between reported peaks.
	// Larger peaks win.
	MinDistance int
	// MaxPeaks caps the number of peaks returned. 0 means no cap.
	MaxPeaks int
}

// DetectPeaks returns the local maxima of spectrum, largest first. A bin is
// a peak when it is strictly above its left neighbour and not below its
// right one; the end bins need only exceed their single neighbour.
func DetectPeaks(spectrum, freqs []float64, opts PeakOptions) ([]Peak, error) {
	if len(spectrum) != len(freqs) {
		return nil, fmt.Errorf("frequency: %d bins, %d frequencies: %w", len(spectrum), len(freqs), ErrLengthMismatch)
	}

	n := len(spectrum)
	var cands []Peak
	for i := range n {
		v := spectrum[i]
		if v < opts.MinValue {
			continue
		}
		left := i == 0 || v > spectrum[i-1]
		right := i == n-1 || v >= spectrum[i+1]
		if !left || !right {
			continue
		}
		cands = append(cands, Peak{Bin: i, Value: v, Frequency: refine(spectrum, freqs, i)})
	}

	slices.SortStableFunc(cands, func(a, b Peak) int {
		switch {
		case a.Value > b.Value:
			return -1
		case a.Value < b.Value:
			return 1
		default:
			return 0
		}
	})

	peaks := cands[:0]
	for _, c := range cands {
		if opts.MaxPeaks > 0 && len(peaks) == opts.MaxPeaks {
			break
		}
		if opts.MinDistance > 0 && slices.ContainsFunc(peaks, func(p Peak) bool {
			return abs(p.Bin-c.Bin) < opts.MinDistance
		}) {
			continue
		}
		peaks = append(peaks, c)
	}
	return peaks, nil
}

// refine fits a parabola through bins i-1, i and i+1.
func refine(spectrum, freqs []float64, i int) float64 {
	if i == 0 || i == len(spectrum)-1 {
		return freqs[i]
	}
	a, b, c := spectrum[i-1], spectrum[i], spectrum[i+1]
	den := a - 2*b + c
	if den == 0 {
		return freqs[i]
	}
	p := 0.5 * (a - c) / den
	return freqs[i] + p*(freqs[i+1]-freqs[i-1])/2
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
