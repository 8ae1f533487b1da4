package main

import (
	"fmt"
	"io"
	"log"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-analytics/analytics"
	"github.com/cwbudde/algo-analytics/dsp/buffer"
	"github.com/cwbudde/algo-analytics/internal/config"
	"github.com/cwbudde/algo-analytics/internal/signalio"
	"github.com/cwbudde/algo-analytics/logging"
)

// app carries the state shared by every subcommand of one invocation.
type app struct {
	out    io.Writer
	errOut io.Writer

	configPath string
	sampleRate float64
	logLevel   string
	window     string

	cfg    *config.Config
	log    logging.Logger
	engine *analytics.Engine
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut}

	rootCmd := &cobra.Command{
		Use:           "analytics",
		Short:         "Signal analytics: spectra, SOS filtering, moving statistics and smoothing",
		SilenceErrors: true,
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd:   true,
			DisableDescriptions: true,
			DisableNoDescFlag:   true,
			HiddenDefaultCmd:    true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			if a.engine == nil {
				return nil
			}
			return a.engine.Close()
		},
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "",
		"YAML configuration file (default: "+config.DefaultPath+" if present)")
	rootCmd.PersistentFlags().Float64VarP(&a.sampleRate, "sample-rate", "s", 0,
		"Sample rate in Hz, overrides the configuration and WAV headers")
	rootCmd.PersistentFlags().StringVarP(&a.logLevel, "log-level", "l", "",
		"Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().StringVarP(&a.window, "window", "w", "",
		"Analysis window: rectangular, hann, hamming, blackman, bartlett or flattop")

	rootCmd.AddCommand(
		newSpectrumCmd(a),
		newPSDCmd(a),
		newSummaryCmd(a),
		newToneCmd(a),
		newFilterCmd(a),
		newMovstatCmd(a),
		newSmoothCmd(a),
		newWindowsCmd(a),
	)
	return rootCmd
}

// setup resolves the configuration (file, environment, flags) and builds
// the engine.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.LoadConfig(a.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("sample-rate") {
		cfg.SampleRate = a.sampleRate
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if flags.Changed("window") {
		cfg.Spectrum.Window = a.window
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	level, _ := logging.ParseLevel(cfg.LogLevel)
	logger := logging.NewWriterLogger(a.errOut, a.errOut, log.LstdFlags)
	logger.SetLevel(level)

	a.cfg = cfg
	a.log = logger
	a.engine = analytics.New(cfg.EngineOptions(logger)...)
	return nil
}

// input reads path and resolves its sample rate. A rate given on the
// command line wins over the WAV header, which wins over the configuration.
func (a *app) input(cmd *cobra.Command, path string) (*buffer.Buffer, float64, error) {
	sig, err := signalio.ReadFile(path)
	if err != nil {
		return nil, 0, err
	}
	fs := a.cfg.SampleRate
	if sig.SampleRate > 0 && !cmd.Flags().Changed("sample-rate") {
		fs = sig.SampleRate
	}
	a.log.Debug("input loaded", logging.Fields{
		"path":        path,
		"samples":     len(sig.Samples),
		"sample_rate": fs,
	})
	return buffer.FromSlice(sig.Samples), fs, nil
}

// index returns 0..n-1 as float64 for the sample column.
func index(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i)
	}
	return out
}
