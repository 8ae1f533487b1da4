package spectrum

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-analytics/dsp/core"
)

// ErrInvalidFrequency is returned for target frequencies outside
// [0, fs/2].
var ErrInvalidFrequency = errors.New("spectrum: frequency must lie in [0, fs/2]")

// Goertzel tracks one DFT term across the samples written to it. After
// Write of a block of N samples, Power equals |X[k]|^2 of the N-point DFT
// when the target frequency is k*fs/N.
type Goertzel struct {
	frequency float64
	coeff     float64
	s0, s1    float64
	count     int
}

// NewGoertzel returns a tracker for frequency at sample rate fs.
func NewGoertzel(frequency, fs float64) (*Goertzel, error) {
	if !core.ValidSampleRate(fs) {
		return nil, fmt.Errorf("goertzel: %v: %w", fs, ErrInvalidSampleRate)
	}
	if !(frequency >= 0 && frequency <= fs/2) {
		return nil, fmt.Errorf("goertzel: %v Hz: %w", frequency, ErrInvalidFrequency)
	}
	return &Goertzel{
		frequency: frequency,
		coeff:     2 * math.Cos(2*math.Pi*frequency/fs),
	}, nil
}

// Reset clears the accumulated state.
func (g *Goertzel) Reset() {
	g.s0, g.s1, g.count = 0, 0, 0
}

// Write feeds a block of samples.
func (g *Goertzel) Write(block []float64) {
	s0, s1, c := g.s0, g.s1, g.coeff
	for _, x := range block {
		s0, s1 = x+c*s0-s1, s0
	}
	g.s0, g.s1 = s0, s1
	g.count += len(block)
}

// Power returns the squared magnitude of the tracked term.
func (g *Goertzel) Power() float64 {
	return math.Max(g.s0*g.s0+g.s1*g.s1-g.coeff*g.s0*g.s1, 0)
}

// Amplitude returns sqrt(Power) scaled by 2/N over the samples written
// since the last Reset, matching Analyzer.Magnitude. It is 0 before any
// sample is written.
func (g *Goertzel) Amplitude() float64 {
	if g.count == 0 {
		return 0
	}
	return 2 / float64(g.count) * math.Sqrt(g.Power())
}

// Frequency returns the target frequency.
func (g *Goertzel) Frequency() float64 { return g.frequency }

// ToneAmplitude returns the amplitude of frequency in input with the 2/N
// scaling of Analyzer.Magnitude.
func ToneAmplitude(input []float64, frequency, fs float64) (float64, error) {
	if len(input) < 2 {
		return 0, fmt.Errorf("goertzel: length %d: %w", len(input), ErrInvalidLength)
	}
	g, err := NewGoertzel(frequency, fs)
	if err != nil {
		return 0, err
	}
	g.Write(input)
	return g.Amplitude(), nil
}
