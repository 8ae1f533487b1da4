package analytics_test

import (
	"fmt"

	"github.com/cwbudde/algo-analytics/analytics"
	"github.com/cwbudde/algo-analytics/dsp/buffer"
	"github.com/cwbudde/algo-analytics/dsp/filter/design"
)

func ExampleEngine_FiltFilt() {
	e := analytics.New()
	defer e.Close()

	x := buffer.New(64)
	x.Fill(2)

	f := e.BuildFilter(design.Butterworth, design.Ratio10)
	y, err := e.FiltFilt(x, f)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("stages=%d first=%.6f last=%.6f\n", f.NumStages(), y.At(0), y.At(y.Len()-1))
	// Output:
	// stages=6 first=2.000000 last=2.000000
}

func ExampleEngine_SpectrumFrequencies() {
	e := analytics.New()
	defer e.Close()

	f, _ := e.SpectrumFrequencies(buffer.New(4), 8)
	fmt.Println(f.Samples())
	// Output:
	// [0 1 2 3]
}
