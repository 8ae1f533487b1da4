// Package design produces low-pass SOS cascades.
//
// Two routes are offered. Build and Lookup return fixed, tabulated designs
// selected by a closed (Kind, Ratio) pair; adding a design means adding a
// table entry. ButterworthLP and BesselLP compute a cascade for an arbitrary
// cutoff and order with the bilinear transform.
//
// An unrecognised (Kind, Ratio) pair yields an empty filter. Callers must
// check Filter.Empty rather than treat the pass-through as a design;
// BuildStrict turns that case into ErrUnsupportedDesign.
package design
