package buffer

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"
)

var (
	// ErrDimensionMismatch is returned for arithmetic between buffers of
	// unequal length.
	ErrDimensionMismatch = errors.New("buffer: dimension mismatch")

	// ErrOutOfRange is returned for slice bounds outside the buffer.
	ErrOutOfRange = errors.New("buffer: range out of bounds")
)

// Buffer is a fixed-length sequence of real samples.
type Buffer struct {
	samples []float64
}

// New returns a zero-filled Buffer of the given length.
func New(length int) *Buffer {
	if length < 0 {
		length = 0
	}
	return &Buffer{samples: make([]float64, length)}
}

// FromSlice wraps an existing slice without copying.
// Mutations to the slice are visible through the Buffer and vice versa.
func FromSlice(s []float64) *Buffer {
	return &Buffer{samples: s}
}

// Samples returns the underlying slice in the raw layout the transforms use.
func (b *Buffer) Samples() []float64 {
	return b.samples
}

// Len returns the number of samples.
func (b *Buffer) Len() int {
	return len(b.samples)
}

// At returns sample i. It panics if i is out of range, like a slice index.
func (b *Buffer) At(i int) float64 {
	return b.samples[i]
}

// Set stores v at index i.
func (b *Buffer) Set(i int, v float64) {
	b.samples[i] = v
}

// Fill sets every sample to v.
func (b *Buffer) Fill(v float64) {
	for i := range b.samples {
		b.samples[i] = v
	}
}

// Reset sets all samples to 0.
func (b *Buffer) Reset() {
	clear(b.samples)
}

// Slice returns a copy of samples [start, end) as a new Buffer.
func (b *Buffer) Slice(start, end int) (*Buffer, error) {
	if start < 0 || end > len(b.samples) || start > end {
		return nil, fmt.Errorf("buffer: slice [%d:%d] of length %d: %w", start, end, len(b.samples), ErrOutOfRange)
	}
	s := make([]float64, end-start)
	copy(s, b.samples[start:end])
	return &Buffer{samples: s}, nil
}

// Copy returns a deep copy of the buffer.
func (b *Buffer) Copy() *Buffer {
	s := make([]float64, len(b.samples))
	copy(s, b.samples)
	return &Buffer{samples: s}
}

// CopyFrom overwrites b with the contents of src.
func (b *Buffer) CopyFrom(src *Buffer) error {
	if err := b.sameLen(src); err != nil {
		return err
	}
	copy(b.samples, src.samples)
	return nil
}

// Mul multiplies b element-wise by other in place.
func (b *Buffer) Mul(other *Buffer) error {
	if err := b.sameLen(other); err != nil {
		return err
	}
	if len(b.samples) > 0 {
		vecmath.MulBlockInPlace(b.samples, other.samples)
	}
	return nil
}

// Add adds other to b element-wise in place.
func (b *Buffer) Add(other *Buffer) error {
	if err := b.sameLen(other); err != nil {
		return err
	}
	if len(b.samples) > 0 {
		vecmath.AddBlockInPlace(b.samples, other.samples)
	}
	return nil
}

// Sub subtracts other from b element-wise in place.
func (b *Buffer) Sub(other *Buffer) error {
	if err := b.sameLen(other); err != nil {
		return err
	}
	floats.Sub(b.samples, other.samples)
	return nil
}

// Scale multiplies every sample by s.
func (b *Buffer) Scale(s float64) {
	if len(b.samples) > 0 {
		vecmath.ScaleBlockInPlace(b.samples, s)
	}
}

// Square replaces every sample by its square.
func (b *Buffer) Square() {
	if len(b.samples) > 0 {
		vecmath.MulBlockInPlace(b.samples, b.samples)
	}
}

// Reverse reverses the sample order in place.
func (b *Buffer) Reverse() {
	floats.Reverse(b.samples)
}

// Sum returns the sum of all samples.
func (b *Buffer) Sum() float64 {
	if len(b.samples) == 0 {
		return 0
	}
	return vecmath.Sum(b.samples)
}

// MaxAbs returns the largest absolute sample value, 0 for an empty buffer.
func (b *Buffer) MaxAbs() float64 {
	if len(b.samples) == 0 {
		return 0
	}
	return vecmath.MaxAbs(b.samples)
}

func (b *Buffer) sameLen(other *Buffer) error {
	if other == nil || len(other.samples) != len(b.samples) {
		n := 0
		if other != nil {
			n = len(other.samples)
		}
		return fmt.Errorf("buffer: lengths %d and %d: %w", len(b.samples), n, ErrDimensionMismatch)
	}
	return nil
}
