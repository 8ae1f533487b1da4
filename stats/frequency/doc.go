// Package frequency summarises one-sided spectra: level statistics, spectral
// shape descriptors and peak detection.
//
// Every function takes the spectrum together with its frequency axis, so it
// works equally on raw FFT bins and on resolution-aggregated PSD bins. Axis
// builds the axis for a raw one-sided spectrum.
package frequency
