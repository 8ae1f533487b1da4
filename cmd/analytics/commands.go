package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-analytics/dsp/buffer"
	"github.com/cwbudde/algo-analytics/dsp/conv"
	"github.com/cwbudde/algo-analytics/dsp/filter/design"
	"github.com/cwbudde/algo-analytics/dsp/filter/gaussian"
	"github.com/cwbudde/algo-analytics/dsp/filter/sos"
	"github.com/cwbudde/algo-analytics/dsp/movstat"
	"github.com/cwbudde/algo-analytics/internal/signalio"
	"github.com/cwbudde/algo-analytics/stats/frequency"
)

func newSpectrumCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "spectrum <input>",
		Short: "Print the mirrored magnitude spectrum",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, fs, err := a.input(cmd, args[0])
			if err != nil {
				return err
			}
			freqs, err := a.engine.SpectrumFrequencies(b, fs)
			if err != nil {
				return err
			}
			mag, err := a.engine.SpectrumMagnitude(b, fs)
			if err != nil {
				return err
			}
			return signalio.WriteTSV(a.out, []string{"frequency", "magnitude"}, freqs.Samples(), mag.Samples())
		},
	}
}

func newPSDCmd(a *app) *cobra.Command {
	var resolution float64
	cmd := &cobra.Command{
		Use:   "psd <input>",
		Short: "Print the one-sided power spectral density",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, fs, err := a.input(cmd, args[0])
			if err != nil {
				return err
			}
			df := a.cfg.Spectrum.Resolution
			if cmd.Flags().Changed("resolution") {
				df = resolution
			}
			psd, err := a.engine.PowerSpectralDensity(b, fs, df)
			if err != nil {
				return err
			}
			freqs, err := a.engine.PSDFrequencies(b.Len(), fs, df)
			if err != nil {
				return err
			}
			return signalio.WriteTSV(a.out, []string{"frequency", "psd"}, freqs.Samples(), psd.Samples())
		},
	}
	cmd.Flags().Float64VarP(&resolution, "resolution", "r", 0, "Frequency resolution in Hz, 0 for raw bins")
	return cmd
}

func newSummaryCmd(a *app) *cobra.Command {
	var (
		resolution float64
		maxPeaks   int
		minDist    int
	)
	cmd := &cobra.Command{
		Use:   "summary <input>",
		Short: "Print spectral descriptors and the strongest PSD peaks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, fs, err := a.input(cmd, args[0])
			if err != nil {
				return err
			}
			df := a.cfg.Spectrum.Resolution
			if cmd.Flags().Changed("resolution") {
				df = resolution
			}
			st, err := a.engine.SpectralSummary(b, fs, df)
			if err != nil {
				return err
			}
			peaks, err := a.engine.SpectralPeaks(b, fs, df, frequency.PeakOptions{
				MinDistance: minDist,
				MaxPeaks:    maxPeaks,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(a.out, "bins\t%d\n", st.BinCount)
			fmt.Fprintf(a.out, "max\t%g\t%g Hz\n", st.Max, st.MaxFreq)
			fmt.Fprintf(a.out, "average\t%g\n", st.Average)
			fmt.Fprintf(a.out, "centroid\t%g Hz\n", st.Centroid)
			fmt.Fprintf(a.out, "spread\t%g Hz\n", st.Spread)
			fmt.Fprintf(a.out, "flatness\t%g\n", st.Flatness)
			fmt.Fprintf(a.out, "rolloff\t%g Hz\n", st.Rolloff)
			fmt.Fprintf(a.out, "bandwidth\t%g Hz\n", st.Bandwidth)
			for i, p := range peaks {
				fmt.Fprintf(a.out, "peak%d\t%g\t%g Hz\n", i+1, p.Value, p.Frequency)
			}
			return nil
		},
	}
	cmd.Flags().Float64VarP(&resolution, "resolution", "r", 0, "Frequency resolution in Hz, 0 for raw bins")
	cmd.Flags().IntVar(&maxPeaks, "peaks", 5, "Number of peaks to report")
	cmd.Flags().IntVar(&minDist, "min-distance", 1, "Minimum distance between peaks in bins")
	return cmd
}

func newToneCmd(a *app) *cobra.Command {
	var freq float64
	cmd := &cobra.Command{
		Use:   "tone <input>",
		Short: "Print the amplitude of a single frequency",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, fs, err := a.input(cmd, args[0])
			if err != nil {
				return err
			}
			amp, err := a.engine.ToneAmplitude(b, freq, fs)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "%g\t%g\n", freq, amp)
			return nil
		},
	}
	cmd.Flags().Float64VarP(&freq, "frequency", "f", 0, "Frequency in Hz")
	_ = cmd.MarkFlagRequired("frequency")
	return cmd
}

func newFilterCmd(a *app) *cobra.Command {
	var (
		kind, ratio string
		forward     bool
		zeroState   bool
	)
	cmd := &cobra.Command{
		Use:   "filter <input>",
		Short: "Apply a tabulated low-pass SOS design",
		Long: "Apply a tabulated Butterworth or Bessel low-pass cascade. By default the\n" +
			"signal is filtered forward and backward for zero phase. Supported designs:\n  " +
			supportedDesigns(),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, _, err := a.input(cmd, args[0])
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("kind") {
				a.cfg.Filter.Kind = kind
			}
			if cmd.Flags().Changed("ratio") {
				a.cfg.Filter.Ratio = ratio
			}
			if cmd.Flags().Changed("forward") {
				a.cfg.Filter.ZeroPhase = !forward
			}
			if err := a.cfg.Validate(); err != nil {
				return err
			}

			k, r := a.cfg.Design()
			f := a.engine.BuildFilter(k, r)
			if f.Empty() {
				return fmt.Errorf("%w: %s %s", design.ErrUnsupportedDesign, k, r)
			}

			var out []float64
			if a.cfg.Filter.ZeroPhase {
				var opts []sos.FiltFiltOption
				if zeroState {
					opts = append(opts, sos.WithZeroState())
				}
				res, err := a.engine.FiltFilt(b, f, opts...)
				if err != nil {
					return err
				}
				out = res.Samples()
			} else {
				out = b.Copy().Samples()
				f.ProcessBlock(out)
			}
			return signalio.WriteTSV(a.out, []string{"index", "value"}, index(len(out)), out)
		},
	}
	cmd.Flags().StringVarP(&kind, "kind", "k", "", "Design kind: butterworth or bessel")
	cmd.Flags().StringVarP(&ratio, "ratio", "r", "", "Cutoff ratio: 5%, 8% or 10%")
	cmd.Flags().BoolVar(&forward, "forward", false, "Single forward pass instead of zero-phase filtering")
	cmd.Flags().BoolVar(&zeroState, "zero-state", false, "Start zero-phase filtering from a zero state")
	return cmd
}

func supportedDesigns() string {
	var names []string
	for _, d := range design.Supported() {
		names = append(names, d.Kind.String()+" "+d.Ratio.String())
	}
	return strings.Join(names, ", ")
}

func newMovstatCmd(a *app) *cobra.Command {
	var (
		stat  string
		width int
		edge  string
	)
	cmd := &cobra.Command{
		Use:   "movstat <input>",
		Short: "Apply a moving statistic: max, min, mean, median or mad",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, _, err := a.input(cmd, args[0])
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("width") {
				a.cfg.Moving.Width = width
			}
			if cmd.Flags().Changed("edge") {
				a.cfg.Moving.Edge = edge
			}
			if err := a.cfg.Validate(); err != nil {
				return err
			}
			w, mode := a.cfg.Moving.Width, a.cfg.EdgeMode()

			fn := map[string]func() (*buffer.Buffer, error){
				"max":    func() (*buffer.Buffer, error) { return a.engine.MovingMaxima(b, w, mode) },
				"min":    func() (*buffer.Buffer, error) { return a.engine.MovingMinima(b, w, mode) },
				"mean":   func() (*buffer.Buffer, error) { return a.engine.MovingMean(b, w, mode) },
				"median": func() (*buffer.Buffer, error) { return a.engine.MovingMedian(b, w, mode) },
				"mad":    func() (*buffer.Buffer, error) { return a.engine.MovingMAD(b, w, mode) },
			}[strings.ToLower(stat)]
			if fn == nil {
				return fmt.Errorf("unknown statistic %q", stat)
			}
			res, err := fn()
			if err != nil {
				return err
			}
			return signalio.WriteTSV(a.out, []string{"index", stat}, index(res.Len()), res.Samples())
		},
	}
	cmd.Flags().StringVar(&stat, "stat", "median", "Statistic: max, min, mean, median or mad")
	cmd.Flags().IntVar(&width, "width", 5, "Window width in samples")
	cmd.Flags().StringVar(&edge, "edge", movstat.DefaultEdgeMode.String(), "Edge handling: value, zero or truncate")
	return cmd
}

func newSmoothCmd(a *app) *cobra.Command {
	var (
		kernel int
		alpha  float64
		kfile  string
		mode   string
	)
	cmd := &cobra.Command{
		Use:   "smooth <input>",
		Short: "Smooth with a Gaussian kernel or convolve with a kernel file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, _, err := a.input(cmd, args[0])
			if err != nil {
				return err
			}

			var res *buffer.Buffer
			if kfile != "" {
				m, err := conv.ParseMode(mode)
				if err != nil {
					return err
				}
				k, err := signalio.ReadFile(kfile)
				if err != nil {
					return err
				}
				res, err = a.engine.Convolve(b, buffer.FromSlice(k.Samples), m)
				if err != nil {
					return err
				}
			} else {
				var opts []gaussian.Option
				if cmd.Flags().Changed("kernel") {
					opts = append(opts, gaussian.WithKernelSize(kernel))
				}
				if cmd.Flags().Changed("alpha") {
					opts = append(opts, gaussian.WithAlpha(alpha))
				}
				res, err = a.engine.Smooth(b, opts...)
				if err != nil {
					return err
				}
			}
			return signalio.WriteTSV(a.out, []string{"index", "value"}, index(res.Len()), res.Samples())
		},
	}
	cmd.Flags().IntVar(&kernel, "kernel", 0, "Gaussian kernel size (odd)")
	cmd.Flags().Float64Var(&alpha, "alpha", 0, "Gaussian width parameter")
	cmd.Flags().StringVar(&kfile, "kernel-file", "", "Convolve with the samples of this file instead")
	cmd.Flags().StringVar(&mode, "mode", conv.ModeSame.String(), "Convolution output: full, same or valid")
	return cmd
}
