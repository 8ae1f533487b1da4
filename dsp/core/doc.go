// Package core holds small numeric helpers shared by the analysis packages:
// decibel conversion, tolerance comparison, parameter validation and
// scratch-slice sizing.
package core
