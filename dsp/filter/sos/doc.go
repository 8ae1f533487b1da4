// Package sos implements cascaded second-order-section (biquad) IIR
// filters in transposed direct form II.
//
// A Filter is an ordered list of Stages; every sample passes through the
// stages in insertion order, the output of one feeding the next. Filters
// are built from coefficient sets (see package design for tabulated
// low-pass designs) or stage by stage with AddStage.
//
// FiltFilt runs a complete buffer forward and then backward through a
// filter to cancel its phase response. It is non-causal and needs the whole
// buffer in memory; there is no streaming form.
//
// Stage and Filter hold per-instance state and are not safe for concurrent
// use. Independent instances may be used in parallel.
package sos
