// Package spectrum turns fixed-length real sample buffers into one-sided
// spectral estimates.
//
// An Analyzer borrows a length-bound transform workspace from an fft.Cache,
// runs the forward real transform on a scratch copy of the input, squares
// the half-complex packed output in place and decodes it into either a
// mirrored magnitude array (length N) or a power spectral density (length
// N/2+1, optionally aggregated to a coarser resolution). Frequencies returns
// the matching frequency axis without touching a workspace.
//
// Goertzel evaluates single DFT bins and serves as an independent check of
// the packed decoder.
package spectrum
