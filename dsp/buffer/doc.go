// Package buffer provides the fixed-length sample buffer the analytics
// packages borrow from their callers, plus a pool of scratch buffers for
// transforms that must not touch caller data.
//
// A Buffer never changes length after construction. Element-wise arithmetic
// between buffers of different lengths fails with ErrDimensionMismatch
// instead of truncating or zero-extending. All analysis functions accept raw
// []float64; Samples and FromSlice convert in both directions without
// copying.
package buffer
