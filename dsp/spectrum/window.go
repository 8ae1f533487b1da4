package spectrum

import (
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-analytics/dsp/core"
	"github.com/mjibson/go-dsp/window"
	"gonum.org/v1/gonum/floats"
)

// Window selects the analysis window applied before the transform.
type Window int

const (
	// Rectangular applies no taper.
	Rectangular Window = iota
	Hann
	Hamming
	Blackman
	Bartlett
	FlatTop
)

var windowNames = map[Window]string{
	Rectangular: "rectangular",
	Hann:        "hann",
	Hamming:     "hamming",
	Blackman:    "blackman",
	Bartlett:    "bartlett",
	FlatTop:     "flattop",
}

func (w Window) String() string {
	if name, ok := windowNames[w]; ok {
		return name
	}
	return fmt.Sprintf("Window(%d)", int(w))
}

// ParseWindow resolves a case-insensitive window name.
func ParseWindow(name string) (Window, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" || key == "none" {
		return Rectangular, nil
	}
	for w, n := range windowNames {
		if n == key {
			return w, nil
		}
	}
	return Rectangular, fmt.Errorf("spectrum: unknown window %q", name)
}

// coefficients returns the window taper of length n, or nil for
// Rectangular.
func (w Window) coefficients(n int) []float64 {
	switch w {
	case Hann:
		return window.Hann(n)
	case Hamming:
		return window.Hamming(n)
	case Blackman:
		return window.Blackman(n)
	case Bartlett:
		return window.Bartlett(n)
	case FlatTop:
		return window.FlatTop(n)
	default:
		return nil
	}
}

// Windows returns every supported window in declaration order.
func Windows() []Window {
	return []Window{Rectangular, Hann, Hamming, Blackman, Bartlett, FlatTop}
}

// Coefficients returns the taper of length n. Rectangular gives all ones.
func (w Window) Coefficients(n int) []float64 {
	if c := w.coefficients(n); c != nil {
		return c
	}
	ones := make([]float64, n)
	for i := range ones {
		ones[i] = 1
	}
	return ones
}

// WindowInfo summarises the spectral cost of a window.
type WindowInfo struct {
	Window       Window
	Size         int
	CoherentGain float64 // mean of the taper
	PowerGain    float64 // mean of the squared taper
	ENBW         float64 // equivalent noise bandwidth in bins
	ScallopdB    float64 // amplitude loss for a tone half a bin off centre
}

// Analyze computes WindowInfo for w at length n (n >= 2).
func Analyze(w Window, n int) (WindowInfo, error) {
	if n < 2 {
		return WindowInfo{}, fmt.Errorf("spectrum: window length %d: %w", n, ErrInvalidLength)
	}
	c := w.Coefficients(n)
	sum := floats.Sum(c)
	sq := floats.Dot(c, c)

	// Response at half a bin relative to DC.
	var re, im float64
	for i, v := range c {
		phi := math.Pi * float64(i) / float64(n)
		re += v * math.Cos(phi)
		im -= v * math.Sin(phi)
	}

	return WindowInfo{
		Window:       w,
		Size:         n,
		CoherentGain: sum / float64(n),
		PowerGain:    sq / float64(n),
		ENBW:         float64(n) * sq / (sum * sum),
		ScallopdB:    core.LinearToDB(math.Hypot(re, im) / sum),
	}, nil
}
