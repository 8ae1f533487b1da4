package conv

import (
	"fmt"
	"sync"

	algofft "github.com/cwbudde/algo-fft"

	"github.com/cwbudde/algo-analytics/internal/workspace"
	"github.com/cwbudde/algo-analytics/logging"
)

// DefaultDirectThreshold is the kernel length at or below which Convolve
// uses direct convolution.
const DefaultDirectThreshold = 64

// ErrResourceExhausted is returned when a plan size exceeds the configured
// limits.
var ErrResourceExhausted = workspace.ErrResourceExhausted

// plan is a complex transform of one power-of-two size with its scratch
// buffers.
type plan struct {
	mu   sync.Mutex
	size int
	fft  *algofft.Plan[complex128]
	x    []complex128
	y    []complex128
}

func newPlan(size int) (*plan, error) {
	p, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("conv: failed to create FFT plan of size %d: %w", size, err)
	}
	return &plan{
		size: size,
		fft:  p,
		x:    make([]complex128, size),
		y:    make([]complex128, size),
	}, nil
}

type config struct {
	directThreshold int
	cacheOpts       []workspace.Option
}

// Option configures a Convolver.
type Option func(*config)

// WithDirectThreshold sets the longest kernel convolved directly.
// n < 0 forces the FFT path for every kernel.
func WithDirectThreshold(n int) Option {
	return func(c *config) { c.directThreshold = n }
}

// WithLogger logs plan creation and teardown through l.
func WithLogger(l logging.Logger) Option {
	return func(c *config) { c.cacheOpts = append(c.cacheOpts, workspace.WithLogger(l)) }
}

// WithMaxSize rejects FFT sizes above n with ErrResourceExhausted.
func WithMaxSize(n int) Option {
	return func(c *config) { c.cacheOpts = append(c.cacheOpts, workspace.WithMaxKey(n)) }
}

// Convolver performs linear convolution, reusing FFT plans across calls.
// It is safe for concurrent use.
type Convolver struct {
	plans           *workspace.Cache[*plan]
	directThreshold int
}

// NewConvolver returns a convolver with an empty plan cache.
func NewConvolver(opts ...Option) *Convolver {
	cfg := config{
		directThreshold: DefaultDirectThreshold,
		cacheOpts:       []workspace.Option{workspace.WithName("conv")},
	}
	for _, o := range opts {
		if o != nil {
			o(&cfg)
		}
	}
	return &Convolver{
		plans:           workspace.New(newPlan, nil, cfg.cacheOpts...),
		directThreshold: cfg.directThreshold,
	}
}

// Convolve returns the full linear convolution of a and b, choosing the
// direct or FFT path by the shorter input's length.
func (c *Convolver) Convolve(a, b []float64) ([]float64, error) {
	if err := checkInputs(a, b); err != nil {
		return nil, err
	}
	if min(len(a), len(b)) <= c.directThreshold {
		return Direct(a, b)
	}
	return c.FFT(a, b)
}

// ConvolveMode convolves a and b and trims the result to mode.
func (c *Convolver) ConvolveMode(a, b []float64, mode Mode) ([]float64, error) {
	if mode < ModeFull || mode > ModeValid {
		return nil, fmt.Errorf("conv: mode %d: %w", int(mode), ErrInvalidMode)
	}
	full, err := c.Convolve(a, b)
	if err != nil {
		return nil, err
	}
	return Trim(full, len(a), len(b), mode)
}

// FFT returns the full linear convolution of a and b computed with a
// zero-padded transform of the next power-of-two size.
func (c *Convolver) FFT(a, b []float64) ([]float64, error) {
	if err := checkInputs(a, b); err != nil {
		return nil, err
	}

	n := len(a) + len(b) - 1
	p, err := c.plans.Get(nextPowerOf2(n))
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	load(p.x, a)
	load(p.y, b)
	if err := p.fft.Forward(p.x, p.x); err != nil {
		return nil, fmt.Errorf("conv: forward FFT failed: %w", err)
	}
	if err := p.fft.Forward(p.y, p.y); err != nil {
		return nil, fmt.Errorf("conv: forward FFT failed: %w", err)
	}
	for i := range p.x {
		p.x[i] *= p.y[i]
	}
	if err := p.fft.Inverse(p.x, p.x); err != nil {
		return nil, fmt.Errorf("conv: inverse FFT failed: %w", err)
	}

	out := make([]float64, n)
	for i := range out {
		out[i] = real(p.x[i])
	}
	return out, nil
}

// Sizes returns the cached FFT sizes in ascending order.
func (c *Convolver) Sizes() []int { return c.plans.Keys() }

// Teardown drops every cached plan.
func (c *Convolver) Teardown() { c.plans.Teardown() }

// Convolve is a one-shot Convolver.Convolve without plan reuse.
func Convolve(a, b []float64) ([]float64, error) {
	return NewConvolver().Convolve(a, b)
}

// ConvolveMode is a one-shot Convolver.ConvolveMode without plan reuse.
func ConvolveMode(a, b []float64, mode Mode) ([]float64, error) {
	return NewConvolver().ConvolveMode(a, b, mode)
}

func load(dst []complex128, src []float64) {
	clear(dst)
	for i, v := range src {
		dst[i] = complex(v, 0)
	}
}
