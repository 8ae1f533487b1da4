// Package movstat computes moving-window statistics over a sample sequence.
//
// The output has the same length as the input. Output i summarises the
// window [i-H, i+J] with H = width/2 and J = width-1-H, so odd widths are
// centred and even widths lean one sample towards the past. Samples outside
// the input are handled by an EdgeMode.
//
// An Engine caches one scratch workspace per window width.
package movstat
