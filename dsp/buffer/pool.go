package buffer

import (
	"sync"

	"github.com/cwbudde/algo-analytics/dsp/core"
)

// Pool provides sync.Pool-based reuse of scratch Buffers so repeated
// analyses of equal-length signals do not allocate a copy per call.
type Pool struct {
	pool sync.Pool
}

// NewPool returns a Pool ready for use.
func NewPool() *Pool {
	return &Pool{
		pool: sync.Pool{
			New: func() any {
				return &Buffer{}
			},
		},
	}
}

// Get returns a zeroed Buffer of the requested length.
// Callers must return it via Put when done.
func (p *Pool) Get(length int) *Buffer {
	b := p.pool.Get().(*Buffer)
	b.resize(length)
	clear(b.samples)
	return b
}

// GetCopy returns a pooled Buffer holding a copy of src.
func (p *Pool) GetCopy(src []float64) *Buffer {
	b := p.pool.Get().(*Buffer)
	b.resize(len(src))
	copy(b.samples, src)
	return b
}

// Put returns a Buffer to the pool for reuse.
// The caller must not use the buffer after calling Put.
func (p *Pool) Put(b *Buffer) {
	if b == nil {
		return
	}
	p.pool.Put(b)
}

// resize is only used on pooled scratch buffers, which the pool owns.
func (b *Buffer) resize(n int) {
	b.samples = core.EnsureLen(b.samples, n)
}
