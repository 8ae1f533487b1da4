package analytics

import (
	"github.com/cwbudde/algo-analytics/dsp/buffer"
	"github.com/cwbudde/algo-analytics/dsp/spectrum"
	"github.com/cwbudde/algo-analytics/stats/frequency"
)

// SpectrumFrequencies returns n*fs/(2N) for every position of b.
func (e *Engine) SpectrumFrequencies(b *buffer.Buffer, fs float64) (*buffer.Buffer, error) {
	done, err := e.begin()
	if err != nil {
		return nil, err
	}
	defer done()

	out, err := e.analyzer.Frequencies(samples(b), fs)
	if err != nil {
		return nil, err
	}
	return buffer.FromSlice(out), nil
}

// SpectrumMagnitude returns the mirrored amplitude spectrum of b.
func (e *Engine) SpectrumMagnitude(b *buffer.Buffer, fs float64) (*buffer.Buffer, error) {
	done, err := e.begin()
	if err != nil {
		return nil, err
	}
	defer done()

	out, err := e.analyzer.Magnitude(samples(b), fs)
	if err != nil {
		return nil, err
	}
	return buffer.FromSlice(out), nil
}

// PowerSpectralDensity returns the one-sided density of b, aggregated to
// resolution df (0 keeps the raw resolution fs/N).
func (e *Engine) PowerSpectralDensity(b *buffer.Buffer, fs, df float64) (*buffer.Buffer, error) {
	done, err := e.begin()
	if err != nil {
		return nil, err
	}
	defer done()

	out, err := e.analyzer.PowerSpectralDensity(samples(b), fs, df)
	if err != nil {
		return nil, err
	}
	return buffer.FromSlice(out), nil
}

// PSDFrequencies returns the centre frequencies matching
// PowerSpectralDensity for a buffer of length n.
func (e *Engine) PSDFrequencies(n int, fs, df float64) (*buffer.Buffer, error) {
	done, err := e.begin()
	if err != nil {
		return nil, err
	}
	defer done()

	out, err := spectrum.PSDFrequencies(n, fs, df)
	if err != nil {
		return nil, err
	}
	return buffer.FromSlice(out), nil
}

// ToneAmplitude measures the amplitude of a single frequency in b with the
// Goertzel algorithm.
func (e *Engine) ToneAmplitude(b *buffer.Buffer, freq, fs float64) (float64, error) {
	done, err := e.begin()
	if err != nil {
		return 0, err
	}
	defer done()

	return spectrum.ToneAmplitude(samples(b), freq, fs)
}

// SpectralSummary computes the PSD of b and its descriptors.
func (e *Engine) SpectralSummary(b *buffer.Buffer, fs, df float64) (frequency.Stats, error) {
	psd, freqs, err := e.psdWithAxis(b, fs, df)
	if err != nil {
		return frequency.Stats{}, err
	}
	return frequency.Calculate(psd, freqs)
}

// SpectralPeaks returns the PSD peaks of b, largest first.
func (e *Engine) SpectralPeaks(b *buffer.Buffer, fs, df float64, opts frequency.PeakOptions) ([]frequency.Peak, error) {
	psd, freqs, err := e.psdWithAxis(b, fs, df)
	if err != nil {
		return nil, err
	}
	return frequency.DetectPeaks(psd, freqs, opts)
}

func (e *Engine) psdWithAxis(b *buffer.Buffer, fs, df float64) ([]float64, []float64, error) {
	psd, err := e.PowerSpectralDensity(b, fs, df)
	if err != nil {
		return nil, nil, err
	}
	freqs, err := spectrum.PSDFrequencies(len(samples(b)), fs, df)
	if err != nil {
		return nil, nil, err
	}
	return psd.Samples(), freqs, nil
}
