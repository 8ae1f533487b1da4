package conv

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cwbudde/algo-vecmath"
)

// Errors returned by convolution functions.
var (
	ErrEmptyInput     = errors.New("conv: empty input")
	ErrEmptyKernel    = errors.New("conv: empty kernel")
	ErrLengthMismatch = errors.New("conv: buffer length mismatch")
	ErrInvalidMode    = errors.New("conv: invalid mode")
)

// Mode specifies the output mode of a convolution.
type Mode int

const (
	// ModeFull returns the full convolution result with length len(a)+len(b)-1.
	ModeFull Mode = iota

	// ModeSame returns output with the same length as a, centred on the
	// kernel.
	ModeSame

	// ModeValid returns only the portion where the inputs fully overlap,
	// with length max(len(a), len(b)) - min(len(a), len(b)) + 1.
	ModeValid
)

func (m Mode) String() string {
	switch m {
	case ModeFull:
		return "full"
	case ModeSame:
		return "same"
	case ModeValid:
		return "valid"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode resolves "full", "same" or "valid".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "full", "":
		return ModeFull, nil
	case "same":
		return ModeSame, nil
	case "valid":
		return ModeValid, nil
	default:
		return 0, fmt.Errorf("conv: mode %q: %w", s, ErrInvalidMode)
	}
}

// Direct performs time-domain linear convolution of a and b.
// Returns a new slice of length len(a) + len(b) - 1.
func Direct(a, b []float64) ([]float64, error) {
	if err := checkInputs(a, b); err != nil {
		return nil, err
	}

	result := make([]float64, len(a)+len(b)-1)
	if err := DirectTo(result, a, b); err != nil {
		return nil, err
	}
	return result, nil
}

// DirectTo performs direct convolution into dst, which must have length
// len(a) + len(b) - 1.
func DirectTo(dst, a, b []float64) error {
	if err := checkInputs(a, b); err != nil {
		return err
	}
	if want := len(a) + len(b) - 1; len(dst) != want {
		return fmt.Errorf("conv: dst length %d, want %d: %w", len(dst), want, ErrLengthMismatch)
	}

	clear(dst)

	// Scale the kernel by each input sample and accumulate it at the
	// sample's offset.
	m := len(b)
	temp := make([]float64, m)
	for i, v := range a {
		vecmath.ScaleBlock(temp, b, v)
		vecmath.AddBlockInPlace(dst[i:i+m], temp)
	}
	return nil
}

// Trim extracts the part of a full convolution result selected by mode.
// lenA and lenB are the lengths of the two inputs.
func Trim(full []float64, lenA, lenB int, mode Mode) ([]float64, error) {
	if len(full) != lenA+lenB-1 {
		return nil, fmt.Errorf("conv: full length %d for inputs %d and %d: %w", len(full), lenA, lenB, ErrLengthMismatch)
	}

	switch mode {
	case ModeFull:
		return full, nil
	case ModeSame:
		start := (lenB - 1) / 2
		return full[start : start+lenA], nil
	case ModeValid:
		if lenA >= lenB {
			return full[lenB-1 : lenA], nil
		}
		return full[lenA-1 : lenB], nil
	default:
		return nil, fmt.Errorf("conv: mode %d: %w", int(mode), ErrInvalidMode)
	}
}

func checkInputs(a, b []float64) error {
	if len(a) == 0 {
		return ErrEmptyInput
	}
	if len(b) == 0 {
		return ErrEmptyKernel
	}
	return nil
}

// nextPowerOf2 returns the next power of 2 >= n.
func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p *= 2
	}
	return p
}
