// Package analytics is the caller-facing surface of the toolkit. An Engine
// owns the transform, convolution and moving-statistics caches and exposes
// spectral analysis, SOS filtering and windowed statistics over sample
// buffers.
//
//	e := analytics.New()
//	defer e.Close()
//
//	mag, err := e.SpectrumMagnitude(buf, 256)
//	f := e.BuildFilter(design.Bessel, design.Ratio10)
//	smooth, err := e.FiltFilt(buf, f)
//
// Engines are safe for concurrent use. Filters are not: give each goroutine
// its own.
package analytics
