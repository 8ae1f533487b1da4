// Package fft provides length-bound real transform workspaces and the cache
// that hands them out.
//
// A Workspace precomputes the factorisation tables for exactly one sequence
// length and writes its forward transform in the FFTPACK half-complex
// layout:
//
//	p[0]              DC term
//	p[2k-1], p[2k]    real and imaginary part of bin k
//	p[N-1]            Nyquist term (real only, even N)
//
// Workspaces are expensive to build and cheap to reuse, so callers obtain
// them from a Cache keyed by length instead of constructing them per call.
package fft
