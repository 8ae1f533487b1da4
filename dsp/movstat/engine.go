package movstat

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
	"sync"

	"github.com/cwbudde/algo-analytics/internal/workspace"
	"github.com/cwbudde/algo-analytics/logging"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var (
	// ErrInvalidWidth is returned for a window width below 1.
	ErrInvalidWidth = errors.New("movstat: invalid window width")
	// ErrInvalidLength is returned for an empty input.
	ErrInvalidLength = errors.New("movstat: invalid length")
	// ErrInvalidEdgeMode is returned for an EdgeMode outside the defined set.
	ErrInvalidEdgeMode = errors.New("movstat: invalid edge mode")
	// ErrResourceExhausted is returned when the engine's width limits are hit.
	ErrResourceExhausted = workspace.ErrResourceExhausted
)

// EdgeMode selects how windows that extend past either end are filled.
type EdgeMode int

const (
	// ValuePad repeats the first and last sample.
	ValuePad EdgeMode = iota
	// ZeroPad fills missing samples with zero.
	ZeroPad
	// Truncate shrinks the window to the samples that exist.
	Truncate
)

// DefaultEdgeMode is used when no mode is specified.
const DefaultEdgeMode = ValuePad

func (m EdgeMode) String() string {
	switch m {
	case ValuePad:
		return "value"
	case ZeroPad:
		return "zero"
	case Truncate:
		return "truncate"
	default:
		return fmt.Sprintf("EdgeMode(%d)", int(m))
	}
}

// ParseEdgeMode resolves "value", "zero" or "truncate". The empty string
// gives DefaultEdgeMode.
func ParseEdgeMode(s string) (EdgeMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "value", "valuepad", "value-pad":
		return ValuePad, nil
	case "zero", "zeropad", "zero-pad":
		return ZeroPad, nil
	case "truncate":
		return Truncate, nil
	default:
		return 0, fmt.Errorf("movstat: unknown edge mode %q", s)
	}
}

// window is the per-width scratch space.
type window struct {
	mu     sync.Mutex
	width  int
	vals   []float64
	sorted []float64
}

func newWindow(width int) (*window, error) {
	if width < 1 {
		return nil, fmt.Errorf("movstat: width %d: %w", width, ErrInvalidWidth)
	}
	return &window{
		width:  width,
		vals:   make([]float64, 0, width),
		sorted: make([]float64, width),
	}, nil
}

// Option configures an Engine.
type Option = workspace.Option

// WithLogger logs workspace creation and teardown through l.
func WithLogger(l logging.Logger) Option { return workspace.WithLogger(l) }

// WithMaxWidth rejects window widths above n.
func WithMaxWidth(n int) Option { return workspace.WithMaxKey(n) }

// WithMaxEntries limits how many distinct widths may be cached at once.
func WithMaxEntries(n int) Option { return workspace.WithMaxEntries(n) }

// Engine evaluates moving statistics. It is safe for concurrent use; calls
// sharing a width are serialised on that width's workspace.
type Engine struct {
	cache *workspace.Cache[*window]
}

// NewEngine returns an engine with an empty workspace cache.
func NewEngine(opts ...Option) *Engine {
	opts = append([]Option{workspace.WithName("movstat")}, opts...)
	return &Engine{cache: workspace.New(newWindow, nil, opts...)}
}

// Widths returns the cached window widths in ascending order.
func (e *Engine) Widths() []int { return e.cache.Keys() }

// Teardown drops every cached workspace.
func (e *Engine) Teardown() { e.cache.Teardown() }

// Maxima returns the moving maximum.
func (e *Engine) Maxima(x []float64, width int, mode EdgeMode) ([]float64, error) {
	return e.apply(x, width, mode, func(w *window) float64 { return floats.Max(w.vals) })
}

// Minima returns the moving minimum.
func (e *Engine) Minima(x []float64, width int, mode EdgeMode) ([]float64, error) {
	return e.apply(x, width, mode, func(w *window) float64 { return floats.Min(w.vals) })
}

// Mean returns the moving arithmetic mean.
func (e *Engine) Mean(x []float64, width int, mode EdgeMode) ([]float64, error) {
	return e.apply(x, width, mode, func(w *window) float64 { return stat.Mean(w.vals, nil) })
}

// Median returns the moving median. Windows with an even number of samples
// average the two middle values.
func (e *Engine) Median(x []float64, width int, mode EdgeMode) ([]float64, error) {
	return e.apply(x, width, mode, (*window).median)
}

// MAD returns the moving median absolute deviation about each window's
// median. The result is unscaled.
func (e *Engine) MAD(x []float64, width int, mode EdgeMode) ([]float64, error) {
	return e.apply(x, width, mode, func(w *window) float64 {
		m := w.median()
		for i, v := range w.vals {
			w.vals[i] = math.Abs(v - m)
		}
		return w.median()
	})
}

func (e *Engine) apply(x []float64, width int, mode EdgeMode, fn func(*window) float64) ([]float64, error) {
	if width < 1 {
		return nil, fmt.Errorf("movstat: width %d: %w", width, ErrInvalidWidth)
	}
	if len(x) == 0 {
		return nil, fmt.Errorf("movstat: empty input: %w", ErrInvalidLength)
	}
	if mode < ValuePad || mode > Truncate {
		return nil, fmt.Errorf("movstat: edge mode %d: %w", int(mode), ErrInvalidEdgeMode)
	}

	w, err := e.cache.Get(width)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	n := len(x)
	h := width / 2
	j := width - 1 - h
	out := make([]float64, n)
	for i := range out {
		w.vals = w.vals[:0]
		for k := i - h; k <= i+j; k++ {
			switch {
			case k >= 0 && k < n:
				w.vals = append(w.vals, x[k])
			case mode == ZeroPad:
				w.vals = append(w.vals, 0)
			case mode == ValuePad && k < 0:
				w.vals = append(w.vals, x[0])
			case mode == ValuePad:
				w.vals = append(w.vals, x[n-1])
			}
		}
		out[i] = fn(w)
	}
	return out, nil
}

func (w *window) median() float64 {
	s := w.sorted[:len(w.vals)]
	copy(s, w.vals)
	slices.Sort(s)

	m := len(s) / 2
	if len(s)%2 == 1 {
		return s[m]
	}
	return (s[m-1] + s[m]) / 2
}
