package analytics

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/cwbudde/algo-analytics/dsp/buffer"
	"github.com/cwbudde/algo-analytics/dsp/conv"
	"github.com/cwbudde/algo-analytics/dsp/fft"
	"github.com/cwbudde/algo-analytics/dsp/filter/design"
	"github.com/cwbudde/algo-analytics/dsp/movstat"
	"github.com/cwbudde/algo-analytics/dsp/spectrum"
	"github.com/cwbudde/algo-analytics/internal/testutil"
	"github.com/cwbudde/algo-analytics/logging"
	"github.com/cwbudde/algo-analytics/stats/frequency"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestSpectrumFrequencies(t *testing.T) {
	e := New()
	defer e.Close()

	f, err := e.SpectrumFrequencies(buffer.New(8), 16)
	if err != nil {
		t.Fatal(err)
	}
	for i := range f.Len() {
		if f.At(i) != float64(i) {
			t.Fatalf("f[%d]=%v, want %d", i, f.At(i), i)
		}
	}
}

func TestCenteredPulseScenario(t *testing.T) {
	e := New()
	defer e.Close()

	x := buffer.FromSlice(testutil.CenteredPulse(128, 11, 10))
	mag, err := e.SpectrumMagnitude(x, 256)
	if err != nil {
		t.Fatal(err)
	}
	m := mag.Samples()

	if want := 2.0 / 128 * 21 * 21; !almostEqual(m[0], want, 1e-9) {
		t.Fatalf("dc=%v, want %v", m[0], want)
	}
	for k := 1; k < len(m); k++ {
		if m[k] > m[0] {
			t.Fatalf("m[%d]=%v above dc", k, m[k])
		}
	}
	// Main lobe falls off monotonically, then the sidelobe peaks decay.
	for k := 1; k <= 6; k++ {
		if m[k] >= m[k-1] {
			t.Fatalf("main lobe not decreasing at %d", k)
		}
	}
	peaks := testutil.LocalMaxima(m[:43])
	for i := 1; i < len(peaks); i++ {
		if m[peaks[i]] >= m[peaks[i-1]] {
			t.Fatalf("sidelobe %d (%v) not below %d (%v)", peaks[i], m[peaks[i]], peaks[i-1], m[peaks[i-1]])
		}
	}
}

func TestPSDResolutionAndSummary(t *testing.T) {
	e := New()
	defer e.Close()

	x := buffer.FromSlice(testutil.DeterministicSine(125, 1000, 1, 1000))
	raw, err := e.PowerSpectralDensity(x, 1000, 0)
	if err != nil {
		t.Fatal(err)
	}
	coarse, err := e.PowerSpectralDensity(x, 1000, 10)
	if err != nil {
		t.Fatal(err)
	}
	if raw.Len() != 501 || coarse.Len() != 51 {
		t.Fatalf("lengths %d and %d, want 501 and 51", raw.Len(), coarse.Len())
	}
	freqs, err := e.PSDFrequencies(x.Len(), 1000, 10)
	if err != nil {
		t.Fatal(err)
	}
	if freqs.Len() != coarse.Len() {
		t.Fatalf("axis len %d, psd len %d", freqs.Len(), coarse.Len())
	}

	s, err := e.SpectralSummary(x, 1000, 0)
	if err != nil {
		t.Fatal(err)
	}
	if s.MaxFreq != 125 {
		t.Fatalf("peak at %v Hz, want 125", s.MaxFreq)
	}

	peaks, err := e.SpectralPeaks(x, 1000, 0, frequency.PeakOptions{MaxPeaks: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(peaks) != 1 || peaks[0].Bin != 125 {
		t.Fatalf("peaks=%+v", peaks)
	}

	amp, err := e.ToneAmplitude(x, 125, 1000)
	if err != nil {
		t.Fatal(err)
	}
	if !almostEqual(amp, 1, 1e-9) {
		t.Fatalf("tone amplitude=%v", amp)
	}
}

func TestFiltFiltThroughEngine(t *testing.T) {
	e := New()
	defer e.Close()

	f := e.BuildFilter(design.Bessel, design.Ratio10)
	if f.Empty() {
		t.Fatal("bessel 10% should be tabulated")
	}
	x := buffer.FromSlice(testutil.DC(0.75, 300))
	y, err := e.FiltFilt(x, f)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range y.Samples() {
		if !almostEqual(v, 0.75, 1e-9) {
			t.Fatalf("y[%d]=%v", i, v)
		}
	}

	custom := e.BuildCustomFilter([][5]float64{{0.21, 0.42, 0.21, -0.2, 0.04}})
	if custom.NumStages() != 1 {
		t.Fatalf("stages=%d", custom.NumStages())
	}
}

func TestBuildFilterUnsupportedLogsWarning(t *testing.T) {
	var info, errs bytes.Buffer
	e := New(WithLogger(logging.NewWriterLogger(&info, &errs, 0)))
	defer e.Close()

	f := e.BuildFilter(design.Butterworth, design.Ratio08)
	if !f.Empty() {
		t.Fatal("expected empty filter")
	}
	if !strings.Contains(info.String()+errs.String(), "no tabulated design") {
		t.Fatalf("missing warning, got %q %q", info.String(), errs.String())
	}

	if _, err := e.FiltFilt(buffer.New(4), f); err == nil {
		t.Fatal("filtfilt on an empty filter should fail")
	}
}

func TestMovingStatistics(t *testing.T) {
	e := New()
	defer e.Close()

	x := buffer.FromSlice([]float64{1, 5, 2, 8, 3})
	med, err := e.MovingMedian(x, 3, movstat.ValuePad)
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{1, 2, 5, 3, 3}
	for i, v := range med.Samples() {
		if v != want[i] {
			t.Fatalf("median[%d]=%v, want %v", i, v, want[i])
		}
	}

	for name, fn := range map[string]func(*buffer.Buffer, int, movstat.EdgeMode) (*buffer.Buffer, error){
		"max":  e.MovingMaxima,
		"min":  e.MovingMinima,
		"mean": e.MovingMean,
		"mad":  e.MovingMAD,
	} {
		out, err := fn(x, 3, movstat.Truncate)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if out.Len() != x.Len() {
			t.Fatalf("%s: len=%d", name, out.Len())
		}
	}

	if _, err := e.MovingMean(x, 0, movstat.ValuePad); !errors.Is(err, movstat.ErrInvalidWidth) {
		t.Fatalf("err=%v", err)
	}
}

func TestSmoothAndConvolve(t *testing.T) {
	e := New()
	defer e.Close()

	x := buffer.FromSlice(testutil.DC(4, 90))
	y, err := e.Smooth(x)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range y.Samples() {
		if !almostEqual(v, 4, 1e-12) {
			t.Fatalf("smooth[%d]=%v", i, v)
		}
	}

	c, err := e.Convolve(buffer.FromSlice([]float64{1, 2, 3}), buffer.FromSlice([]float64{1, 1}), conv.ModeFull)
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{1, 3, 5, 3}
	for i, v := range c.Samples() {
		if !almostEqual(v, want[i], 1e-12) {
			t.Fatalf("conv[%d]=%v", i, v)
		}
	}
}

func TestEngineCachesAndClose(t *testing.T) {
	e := New(WithWindow(spectrum.Hann), WithMaxTransformLength(512))
	x := buffer.FromSlice(testutil.DeterministicNoise(1, 1, 256))

	if _, err := e.SpectrumMagnitude(x, 100); err != nil {
		t.Fatal(err)
	}
	if _, err := e.PowerSpectralDensity(x, 100, 0); err != nil {
		t.Fatal(err)
	}
	if got := e.TransformCache().Lengths(); len(got) != 1 || got[0] != 256 {
		t.Fatalf("lengths=%v, want [256]", got)
	}

	big := buffer.New(1024)
	if _, err := e.SpectrumMagnitude(big, 100); !errors.Is(err, fft.ErrResourceExhausted) {
		t.Fatalf("err=%v, want ErrResourceExhausted", err)
	}

	if err := e.Close(); err != nil {
		t.Fatal(err)
	}
	if e.TransformCache().Len() != 0 {
		t.Fatal("close left workspaces")
	}
	if _, err := e.SpectrumMagnitude(x, 100); !errors.Is(err, ErrClosed) {
		t.Fatalf("err=%v, want ErrClosed", err)
	}
	if err := e.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
}

func TestClosedEngineRejectsErrorReturningCalls(t *testing.T) {
	e := New()
	if err := e.Close(); err != nil {
		t.Fatal(err)
	}
	x := buffer.FromSlice(testutil.DeterministicSine(10, 100, 1, 100))
	f := e.BuildFilter(design.Bessel, design.Ratio10)
	if f.Empty() {
		t.Fatal("filter construction should work after close")
	}

	calls := map[string]func() error{
		"frequencies": func() error { _, err := e.SpectrumFrequencies(x, 100); return err },
		"magnitude":   func() error { _, err := e.SpectrumMagnitude(x, 100); return err },
		"psd":         func() error { _, err := e.PowerSpectralDensity(x, 100, 0); return err },
		"psd axis":    func() error { _, err := e.PSDFrequencies(x.Len(), 100, 0); return err },
		"tone":        func() error { _, err := e.ToneAmplitude(x, 10, 100); return err },
		"summary":     func() error { _, err := e.SpectralSummary(x, 100, 0); return err },
		"peaks":       func() error { _, err := e.SpectralPeaks(x, 100, 0, frequency.PeakOptions{}); return err },
		"filtfilt":    func() error { _, err := e.FiltFilt(x, f); return err },
		"median":      func() error { _, err := e.MovingMedian(x, 3, movstat.ValuePad); return err },
		"smooth":      func() error { _, err := e.Smooth(x); return err },
		"convolve":    func() error { _, err := e.Convolve(x, x, conv.ModeFull); return err },
	}
	for name, call := range calls {
		if err := call(); !errors.Is(err, ErrClosed) {
			t.Fatalf("%s: err=%v, want ErrClosed", name, err)
		}
	}
}
