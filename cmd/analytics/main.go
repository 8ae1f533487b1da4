// Command analytics runs spectral analysis, filtering and moving statistics
// on signals read from WAV or text files and prints the results as tab
// separated columns.
//
// Usage:
//
//	analytics [--config file] [--sample-rate hz] <command> [flags] <input>
//
// Examples:
//
//	analytics spectrum tone.wav
//	analytics psd --resolution 10 -s 1000 signal.txt
//	analytics filter --kind bessel --ratio 10% signal.txt
//	analytics movstat --stat median --width 9 signal.txt
//	analytics smooth --kernel 61 --alpha 3 signal.txt
//	analytics windows --size 4096 hann blackman
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
