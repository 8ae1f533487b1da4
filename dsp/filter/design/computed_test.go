package design

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-analytics/dsp/filter/sos"
)

type designer func(cutoff float64, order int, sampleRate float64) (*sos.Filter, error)

func TestComputedSectionCount(t *testing.T) {
	for name, d := range map[string]designer{"butterworth": ButterworthLP, "bessel": BesselLP} {
		for order := 1; order <= 8; order++ {
			f, err := d(1000, order, 48000)
			if err != nil {
				t.Fatalf("%s order %d: %v", name, order, err)
			}
			if want := (order + 1) / 2; f.NumStages() != want {
				t.Fatalf("%s order %d: stages=%d, want %d", name, order, f.NumStages(), want)
			}
			if f.Order() != order {
				t.Fatalf("%s order %d: Order()=%d", name, order, f.Order())
			}
		}
	}
}

func TestComputedMinus3dBAtCutoff(t *testing.T) {
	const sr = 48000.0
	for name, d := range map[string]designer{"butterworth": ButterworthLP, "bessel": BesselLP} {
		for _, order := range []int{1, 2, 3, 4, 5, 6, 8} {
			for _, fc := range []float64{200, 1000, 5000} {
				f, err := d(fc, order, sr)
				if err != nil {
					t.Fatal(err)
				}
				if !almostEqual(f.DCGain(), 1, 1e-9) {
					t.Fatalf("%s order %d: dc=%v", name, order, f.DCGain())
				}
				if got := f.MagnitudeDB(fc, sr); !almostEqual(got, -3.0103, 0.1) {
					t.Fatalf("%s order %d fc %v: %.4f dB at cutoff", name, order, fc, got)
				}
				if !f.Stable() {
					t.Fatalf("%s order %d: unstable", name, order)
				}
			}
		}
	}
}

func TestButterworthSteeperWithOrder(t *testing.T) {
	prev := 0.0
	for _, order := range []int{1, 2, 4, 6, 8} {
		f, _ := ButterworthLP(1000, order, 48000)
		atten := -f.MagnitudeDB(4000, 48000)
		if atten <= prev {
			t.Fatalf("order %d: attenuation %.2f dB not above %.2f dB", order, atten, prev)
		}
		prev = atten
	}
}

func TestButterworthMaximallyFlat(t *testing.T) {
	f, _ := ButterworthLP(1000, 4, 48000)
	for _, freq := range []float64{10, 100, 300} {
		if got := f.MagnitudeDB(freq, 48000); math.Abs(got) > 0.01 {
			t.Fatalf("%.0f Hz: %.4f dB passband ripple", freq, got)
		}
	}
}

func TestComputedInvalidInputs(t *testing.T) {
	tests := []struct {
		name  string
		d     designer
		fc    float64
		order int
		sr    float64
	}{
		{"zero order", ButterworthLP, 1000, 0, 48000},
		{"negative cutoff", ButterworthLP, -1, 2, 48000},
		{"at nyquist", ButterworthLP, 24000, 2, 48000},
		{"zero rate", BesselLP, 1000, 2, 0},
		{"bessel order", BesselLP, 1000, maxBesselOrder + 1, 48000},
		{"nan cutoff", BesselLP, math.NaN(), 2, 48000},
	}
	for _, tc := range tests {
		if _, err := tc.d(tc.fc, tc.order, tc.sr); !errors.Is(err, ErrInvalidParameter) {
			t.Fatalf("%s: err=%v, want ErrInvalidParameter", tc.name, err)
		}
	}
}

func TestBesselScaleFactorsOrdered(t *testing.T) {
	for i := 2; i <= maxBesselOrder; i++ {
		if besselScaleFactors[i] <= besselScaleFactors[i-1] {
			t.Fatalf("scale factor %d not increasing", i)
		}
		if got, want := len(besselDelayPoles[i]), (i+1)/2; got != want {
			t.Fatalf("order %d: %d poles, want %d", i, got, want)
		}
	}
}
