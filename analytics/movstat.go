package analytics

import (
	"github.com/cwbudde/algo-analytics/dsp/buffer"
	"github.com/cwbudde/algo-analytics/dsp/movstat"
)

type movingFn func(x []float64, width int, mode movstat.EdgeMode) ([]float64, error)

// MovingMaxima returns the moving maximum of b over width samples.
func (e *Engine) MovingMaxima(b *buffer.Buffer, width int, mode movstat.EdgeMode) (*buffer.Buffer, error) {
	return e.moving(e.movstat.Maxima, b, width, mode)
}

// MovingMinima returns the moving minimum of b over width samples.
func (e *Engine) MovingMinima(b *buffer.Buffer, width int, mode movstat.EdgeMode) (*buffer.Buffer, error) {
	return e.moving(e.movstat.Minima, b, width, mode)
}

// MovingMedian returns the moving median of b over width samples.
func (e *Engine) MovingMedian(b *buffer.Buffer, width int, mode movstat.EdgeMode) (*buffer.Buffer, error) {
	return e.moving(e.movstat.Median, b, width, mode)
}

// MovingMean returns the moving mean of b over width samples.
func (e *Engine) MovingMean(b *buffer.Buffer, width int, mode movstat.EdgeMode) (*buffer.Buffer, error) {
	return e.moving(e.movstat.Mean, b, width, mode)
}

// MovingMAD returns the moving median absolute deviation of b over width
// samples.
func (e *Engine) MovingMAD(b *buffer.Buffer, width int, mode movstat.EdgeMode) (*buffer.Buffer, error) {
	return e.moving(e.movstat.MAD, b, width, mode)
}

func (e *Engine) moving(fn movingFn, b *buffer.Buffer, width int, mode movstat.EdgeMode) (*buffer.Buffer, error) {
	done, err := e.begin()
	if err != nil {
		return nil, err
	}
	defer done()

	out, err := fn(samples(b), width, mode)
	if err != nil {
		return nil, err
	}
	return buffer.FromSlice(out), nil
}
