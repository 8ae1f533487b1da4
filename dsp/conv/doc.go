// Package conv provides linear convolution of real sequences.
//
// Two strategies are available:
//
//   - Direct: O(N*M) time-domain convolution, best for short kernels
//   - FFT: zero-padded transform multiplication, best for long kernels
//
// A Convolver caches one transform plan per power-of-two size and picks the
// strategy by kernel length:
//
//	c := conv.NewConvolver()
//	y, err := c.ConvolveMode(signal, kernel, conv.ModeSame)
//
// ModeSame keeps the length of the first input and centres the kernel on
// each output sample, the usual choice for smoothing a signal in place.
package conv
