package spectrum

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/cwbudde/algo-analytics/dsp/buffer"
	"github.com/cwbudde/algo-analytics/dsp/core"
	"github.com/cwbudde/algo-analytics/dsp/fft"
	"github.com/cwbudde/algo-analytics/logging"
	"github.com/mjibson/go-dsp/window"
	"gonum.org/v1/gonum/floats"
)

var (
	// ErrInvalidLength is returned for buffers shorter than two samples.
	ErrInvalidLength = fft.ErrInvalidLength

	// ErrInvalidSampleRate is returned for non-positive or non-finite rates.
	ErrInvalidSampleRate = errors.New("spectrum: sample rate must be positive and finite")

	// ErrInvalidResolution is returned for a negative or non-finite df.
	ErrInvalidResolution = errors.New("spectrum: resolution must be non-negative and finite")
)

// Analyzer computes magnitude spectra and power spectral densities using
// workspaces from a shared fft.Cache. It is safe for concurrent use.
type Analyzer struct {
	cache  *fft.Cache
	window Window
	log    logging.Logger

	scratch *buffer.Pool

	tapersMu sync.Mutex
	tapers   map[int][]float64
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithWindow applies w to a copy of every input before the transform.
// Magnitudes are corrected by the window's coherent gain and densities by
// its power gain, so a full-scale sinusoid keeps its amplitude.
func WithWindow(w Window) Option {
	return func(a *Analyzer) { a.window = w }
}

// WithLogger sets the analyzer logger.
func WithLogger(l logging.Logger) Option {
	return func(a *Analyzer) { a.log = l }
}

// NewAnalyzer returns an Analyzer borrowing workspaces from cache. A nil
// cache gives the analyzer a private one.
func NewAnalyzer(cache *fft.Cache, opts ...Option) *Analyzer {
	a := &Analyzer{
		cache:   cache,
		scratch: buffer.NewPool(),
		tapers:  make(map[int][]float64),
	}
	for _, o := range opts {
		if o != nil {
			o(a)
		}
	}
	a.log = logging.OrNoOp(a.log)
	if a.cache == nil {
		a.cache = fft.NewCache(fft.WithLogger(a.log))
	}
	return a
}

// Cache returns the workspace cache the analyzer draws from.
func (a *Analyzer) Cache() *fft.Cache { return a.cache }

// Window returns the configured analysis window.
func (a *Analyzer) Window() Window { return a.window }

// Frequencies returns bin[n] = n*fs/(2N) for n in [0, N). It needs no
// workspace.
func Frequencies(n int, fs float64) ([]float64, error) {
	if err := validate(n, fs); err != nil {
		return nil, err
	}
	out := make([]float64, n)
	step := fs / (2 * float64(n))
	for i := range out {
		out[i] = float64(i) * step
	}
	return out, nil
}

// Frequencies is the method form of the package-level Frequencies for the
// length of x.
func (a *Analyzer) Frequencies(x []float64, fs float64) ([]float64, error) {
	return Frequencies(len(x), fs)
}

// Magnitude returns the mirrored amplitude spectrum of x, scaled by 2/N.
// Position k and N-1-k both hold the amplitude of bin k. Positions 0 and
// N-1 hold the squared DC term scaled by 2/N, (2/N)*X[0]^2. x is not
// modified.
func (a *Analyzer) Magnitude(x []float64, fs float64) ([]float64, error) {
	n := len(x)
	if err := validate(n, fs); err != nil {
		return nil, err
	}

	scratch, err := a.squaredSpectrum(x, false)
	if err != nil {
		return nil, err
	}
	defer a.scratch.Put(scratch)
	p := scratch.Samples()

	out := make([]float64, n)
	scale := 2 / float64(n)

	dc := scale * p[0]
	out[0], out[n-1] = dc, dc

	// The Nyquist term of an even length has no free mirror slot and is
	// not emitted.
	for k := 1; 2*k <= n-1; k++ {
		m := scale * math.Sqrt(p[2*k-1]+p[2*k])
		out[k] = m
		out[n-1-k] = m
	}

	return out, nil
}

// PowerSpectralDensity returns the one-sided density of x. At full
// resolution (df == 0 or df equal to the raw bin width fs/N) the result has
// N/2+1 entries, one per bin from DC to Nyquist. A larger df averages
// groups of round(df/(fs/N)) adjacent raw bins; the last group may be
// partial.
func (a *Analyzer) PowerSpectralDensity(x []float64, fs, df float64) ([]float64, error) {
	n := len(x)
	if err := validate(n, fs); err != nil {
		return nil, err
	}
	group, err := groupSize(n, fs, df)
	if err != nil {
		return nil, err
	}

	scratch, err := a.squaredSpectrum(x, true)
	if err != nil {
		return nil, err
	}
	defer a.scratch.Put(scratch)
	p := scratch.Samples()

	scale := 2 / float64(n)
	raw := make([]float64, n/2+1)
	raw[0] = scale * p[0]
	for k := 1; 2*k <= n-1; k++ {
		raw[k] = scale * math.Abs(p[2*k-1]+p[2*k])
	}
	if n%2 == 0 {
		raw[n/2] = scale * p[n-1]
	}

	return aggregate(raw, group), nil
}

// PSDFrequencies returns the centre frequency of every entry produced by
// PowerSpectralDensity for a length-n buffer with the same fs and df.
func PSDFrequencies(n int, fs, df float64) ([]float64, error) {
	if err := validate(n, fs); err != nil {
		return nil, err
	}
	group, err := groupSize(n, fs, df)
	if err != nil {
		return nil, err
	}

	raw := make([]float64, n/2+1)
	for k := range raw {
		raw[k] = float64(k) * fs / float64(n)
	}
	return aggregate(raw, group), nil
}

// squaredSpectrum returns a pooled buffer holding the squared packed
// transform of the (optionally windowed) input.
func (a *Analyzer) squaredSpectrum(x []float64, density bool) (*buffer.Buffer, error) {
	ws, err := a.cache.GetOrCreate(len(x))
	if err != nil {
		return nil, err
	}

	scratch := a.scratch.GetCopy(x)
	if taper := a.taper(len(x)); taper != nil {
		samples := scratch.Samples()
		window.Apply(samples, func(int) []float64 { return taper })
		floats.Scale(1/windowGain(taper, density), samples)
	}

	if err := ws.Transform(scratch.Samples()); err != nil {
		a.scratch.Put(scratch)
		return nil, fmt.Errorf("spectrum: %w", err)
	}
	scratch.Square()

	return scratch, nil
}

func (a *Analyzer) taper(n int) []float64 {
	if a.window == Rectangular {
		return nil
	}

	a.tapersMu.Lock()
	defer a.tapersMu.Unlock()

	w, ok := a.tapers[n]
	if !ok {
		w = a.window.coefficients(n)
		a.tapers[n] = w
	}
	return w
}

// windowGain is the mean of the taper for amplitude estimates and the RMS of
// the taper for density estimates.
func windowGain(taper []float64, density bool) float64 {
	n := float64(len(taper))
	if density {
		return math.Sqrt(floats.Dot(taper, taper) / n)
	}
	return floats.Sum(taper) / n
}

func groupSize(n int, fs, df float64) (int, error) {
	if df < 0 || !core.IsFinite(df) {
		return 0, fmt.Errorf("spectrum: df %v: %w", df, ErrInvalidResolution)
	}
	if df == 0 {
		return 1, nil
	}
	g := int(math.Round(df / (fs / float64(n))))
	return max(g, 1), nil
}

func aggregate(raw []float64, group int) []float64 {
	if group <= 1 {
		return raw
	}
	out := make([]float64, 0, (len(raw)+group-1)/group)
	for start := 0; start < len(raw); start += group {
		end := min(start+group, len(raw))
		out = append(out, floats.Sum(raw[start:end])/float64(end-start))
	}
	return out
}

func validate(n int, fs float64) error {
	if n < fft.MinLength {
		return fmt.Errorf("spectrum: length %d: %w", n, ErrInvalidLength)
	}
	if !core.ValidSampleRate(fs) {
		return fmt.Errorf("spectrum: %v: %w", fs, ErrInvalidSampleRate)
	}
	return nil
}
