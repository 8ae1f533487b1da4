package analytics

import (
	"errors"
	"sync"

	"github.com/cwbudde/algo-analytics/dsp/buffer"
	"github.com/cwbudde/algo-analytics/dsp/conv"
	"github.com/cwbudde/algo-analytics/dsp/fft"
	"github.com/cwbudde/algo-analytics/dsp/filter/design"
	"github.com/cwbudde/algo-analytics/dsp/filter/sos"
	"github.com/cwbudde/algo-analytics/dsp/movstat"
	"github.com/cwbudde/algo-analytics/dsp/spectrum"
	"github.com/cwbudde/algo-analytics/logging"
)

// ErrClosed is returned after Close by every Engine method that returns an
// error. BuildFilter and BuildCustomFilter hold no cache and keep working.
var ErrClosed = errors.New("analytics: engine closed")

type config struct {
	logger       logging.Logger
	window       spectrum.Window
	maxLength    int
	maxLengths   int
	maxWidth     int
	maxConvSize  int
	smoothKernel int
	smoothAlpha  float64
}

// Option configures an Engine.
type Option func(*config)

// WithLogger routes cache lifecycle messages through l.
func WithLogger(l logging.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithWindow selects the analysis window for magnitude and PSD.
func WithWindow(w spectrum.Window) Option {
	return func(c *config) { c.window = w }
}

// WithMaxTransformLength rejects transform lengths above n.
func WithMaxTransformLength(n int) Option {
	return func(c *config) { c.maxLength = n }
}

// WithMaxCachedLengths limits how many distinct transform lengths may be
// cached at once.
func WithMaxCachedLengths(n int) Option {
	return func(c *config) { c.maxLengths = n }
}

// WithMaxWindowWidth rejects moving-statistics widths above n.
func WithMaxWindowWidth(n int) Option {
	return func(c *config) { c.maxWidth = n }
}

// WithMaxConvolutionSize rejects FFT convolution sizes above n.
func WithMaxConvolutionSize(n int) Option {
	return func(c *config) { c.maxConvSize = n }
}

// WithSmoothing overrides the Gaussian kernel size and alpha used by Smooth.
func WithSmoothing(kernelSize int, alpha float64) Option {
	return func(c *config) {
		c.smoothKernel = kernelSize
		c.smoothAlpha = alpha
	}
}

// Engine bundles the analysis components around explicitly owned caches.
type Engine struct {
	log      logging.Logger
	fft      *fft.Cache
	analyzer *spectrum.Analyzer
	movstat  *movstat.Engine
	conv     *conv.Convolver

	smoothKernel int
	smoothAlpha  float64

	mu     sync.RWMutex
	closed bool
}

// New returns an Engine with empty caches.
func New(opts ...Option) *Engine {
	cfg := config{
		smoothKernel: DefaultSmoothKernel,
		smoothAlpha:  DefaultSmoothAlpha,
	}
	for _, o := range opts {
		if o != nil {
			o(&cfg)
		}
	}
	log := logging.OrNoOp(cfg.logger)

	cache := fft.NewCache(
		fft.WithLogger(log),
		fft.WithMaxLength(cfg.maxLength),
		fft.WithMaxEntries(cfg.maxLengths),
	)

	return &Engine{
		log:      log,
		fft:      cache,
		analyzer: spectrum.NewAnalyzer(cache, spectrum.WithWindow(cfg.window), spectrum.WithLogger(log)),
		movstat: movstat.NewEngine(
			movstat.WithLogger(log),
			movstat.WithMaxWidth(cfg.maxWidth),
		),
		conv: conv.NewConvolver(
			conv.WithLogger(log),
			conv.WithMaxSize(cfg.maxConvSize),
		),
		smoothKernel: cfg.smoothKernel,
		smoothAlpha:  cfg.smoothAlpha,
	}
}

// TransformCache exposes the engine's transform workspace cache.
func (e *Engine) TransformCache() *fft.Cache { return e.fft }

// Close tears down every cache. Further calls fail with ErrClosed.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil
	}
	e.closed = true

	e.fft.Teardown()
	e.movstat.Teardown()
	e.conv.Teardown()
	e.log.Debug("engine closed")
	return nil
}

// begin holds the read lock for the duration of one operation so Close
// cannot tear caches down underneath it.
func (e *Engine) begin() (func(), error) {
	e.mu.RLock()
	if e.closed {
		e.mu.RUnlock()
		return nil, ErrClosed
	}
	return e.mu.RUnlock, nil
}

// BuildFilter returns a fresh tabulated filter. It is usable after Close. Unknown (kind, ratio) pairs
// yield an empty filter; check Filter.Empty.
func (e *Engine) BuildFilter(kind design.Kind, ratio design.Ratio) *sos.Filter {
	f := design.Build(kind, ratio)
	if f.Empty() {
		e.log.Warn("no tabulated design", logging.Fields{"kind": kind.String(), "ratio": ratio.String()})
	}
	return f
}

// BuildCustomFilter returns a filter with the given {b0, b1, b2, a1, a2}
// stages in processing order. It is usable after Close.
func (e *Engine) BuildCustomFilter(stages [][5]float64) *sos.Filter {
	return design.FromStages(stages)
}

// FiltFilt applies f forward and backward for zero phase. The state of f
// and the input buffer are left unchanged.
func (e *Engine) FiltFilt(b *buffer.Buffer, f *sos.Filter, opts ...sos.FiltFiltOption) (*buffer.Buffer, error) {
	done, err := e.begin()
	if err != nil {
		return nil, err
	}
	defer done()

	out, err := sos.FiltFilt(samples(b), f, opts...)
	if err != nil {
		return nil, err
	}
	return buffer.FromSlice(out), nil
}

func samples(b *buffer.Buffer) []float64 {
	if b == nil {
		return nil
	}
	return b.Samples()
}
