package fft

import (
	"errors"

	"github.com/cwbudde/algo-analytics/internal/workspace"
)

var (
	// ErrInvalidLength is returned for lengths below 2 and for buffers whose
	// length differs from the workspace length.
	ErrInvalidLength = errors.New("fft: invalid transform length")

	// ErrReleased is returned when a workspace is used after cache teardown.
	ErrReleased = errors.New("fft: workspace released")

	// ErrResourceExhausted is returned when a cache limit would be exceeded.
	ErrResourceExhausted = workspace.ErrResourceExhausted
)

// MinLength is the shortest sequence a workspace accepts.
const MinLength = 2
