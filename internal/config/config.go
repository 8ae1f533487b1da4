// Package config loads the YAML configuration of the analytics command line
// tool. Values are resolved in order: built-in defaults, the YAML file,
// ANALYTICS_* environment variables, then command line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-analytics/analytics"
	"github.com/cwbudde/algo-analytics/dsp/core"
	"github.com/cwbudde/algo-analytics/dsp/filter/design"
	"github.com/cwbudde/algo-analytics/dsp/movstat"
	"github.com/cwbudde/algo-analytics/dsp/spectrum"
	"github.com/cwbudde/algo-analytics/logging"
)

// DefaultPath is searched when LoadConfig is given an empty path.
const DefaultPath = "analytics.yaml"

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid configuration")

// Config is the tool configuration.
type Config struct {
	LogLevel   string          `yaml:"log_level"`   // "debug", "info", "warn" or "error".
	SampleRate float64         `yaml:"sample_rate"` // Hz, used when the input carries none.
	Spectrum   SpectrumConfig  `yaml:"spectrum"`
	Filter     FilterConfig    `yaml:"filter"`
	Moving     MovingConfig    `yaml:"moving"`
	Smoothing  SmoothingConfig `yaml:"smoothing"`
	Limits     LimitsConfig    `yaml:"limits"`
}

// SpectrumConfig holds spectral analysis settings.
type SpectrumConfig struct {
	Window     string  `yaml:"window"`     // Analysis window name, "rectangular" for none.
	Resolution float64 `yaml:"resolution"` // PSD resolution in Hz, 0 for raw bins.
}

// FilterConfig selects the tabulated SOS design.
type FilterConfig struct {
	Kind      string `yaml:"kind"`       // "butterworth" or "bessel".
	Ratio     string `yaml:"ratio"`      // "5%", "8%" or "10%".
	ZeroPhase bool   `yaml:"zero_phase"` // Use filtfilt instead of a single forward pass.
}

// MovingConfig holds moving-statistics settings.
type MovingConfig struct {
	Width int    `yaml:"width"`
	Edge  string `yaml:"edge"` // "value", "zero" or "truncate".
}

// SmoothingConfig holds Gaussian smoothing settings.
type SmoothingConfig struct {
	KernelSize int     `yaml:"kernel_size"`
	Alpha      float64 `yaml:"alpha"`
}

// LimitsConfig bounds the engine caches. Zero means unlimited.
type LimitsConfig struct {
	MaxTransformLength int `yaml:"max_transform_length"`
	MaxCachedLengths   int `yaml:"max_cached_lengths"`
	MaxWindowWidth     int `yaml:"max_window_width"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		LogLevel:   "info",
		SampleRate: 1000,
		Spectrum: SpectrumConfig{
			Window: "rectangular",
		},
		Filter: FilterConfig{
			Kind:      "bessel",
			Ratio:     "10%",
			ZeroPhase: true,
		},
		Moving: MovingConfig{
			Width: 5,
			Edge:  "value",
		},
		Smoothing: SmoothingConfig{
			KernelSize: analytics.DefaultSmoothKernel,
			Alpha:      analytics.DefaultSmoothAlpha,
		},
	}
}

// LoadConfig loads the configuration at path. An empty path tries
// DefaultPath and falls back to the defaults if it does not exist.
func LoadConfig(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		if _, err := os.Stat(DefaultPath); err != nil {
			cfg.applyEnvOverrides()
			if err := cfg.Validate(); err != nil {
				return nil, fmt.Errorf("invalid default configuration: %w", err)
			}
			return cfg, nil
		}
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks every field that has a closed set of values or a range.
func (c *Config) Validate() error {
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if !core.ValidSampleRate(c.SampleRate) {
		return fmt.Errorf("%w: sample_rate %v must be positive", ErrInvalid, c.SampleRate)
	}
	if _, err := spectrum.ParseWindow(c.Spectrum.Window); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.Spectrum.Resolution < 0 || !core.IsFinite(c.Spectrum.Resolution) {
		return fmt.Errorf("%w: spectrum.resolution %v must be >= 0", ErrInvalid, c.Spectrum.Resolution)
	}
	if _, err := design.ParseKind(c.Filter.Kind); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if _, err := design.ParseRatio(c.Filter.Ratio); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.Moving.Width < 1 {
		return fmt.Errorf("%w: moving.width %d must be >= 1", ErrInvalid, c.Moving.Width)
	}
	if _, err := movstat.ParseEdgeMode(c.Moving.Edge); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.Smoothing.Alpha <= 0 {
		return fmt.Errorf("%w: smoothing.alpha %v must be positive", ErrInvalid, c.Smoothing.Alpha)
	}
	if c.Limits.MaxTransformLength < 0 || c.Limits.MaxCachedLengths < 0 || c.Limits.MaxWindowWidth < 0 {
		return fmt.Errorf("%w: limits must not be negative", ErrInvalid)
	}
	return nil
}

// EngineOptions translates the configuration into analytics options.
// The configuration must have passed Validate.
func (c *Config) EngineOptions(log logging.Logger) []analytics.Option {
	w, _ := spectrum.ParseWindow(c.Spectrum.Window)
	return []analytics.Option{
		analytics.WithLogger(log),
		analytics.WithWindow(w),
		analytics.WithMaxTransformLength(c.Limits.MaxTransformLength),
		analytics.WithMaxCachedLengths(c.Limits.MaxCachedLengths),
		analytics.WithMaxWindowWidth(c.Limits.MaxWindowWidth),
		analytics.WithSmoothing(c.Smoothing.KernelSize, c.Smoothing.Alpha),
	}
}

// Design returns the configured filter design. The configuration must have
// passed Validate.
func (c *Config) Design() (design.Kind, design.Ratio) {
	k, _ := design.ParseKind(c.Filter.Kind)
	r, _ := design.ParseRatio(c.Filter.Ratio)
	return k, r
}

// EdgeMode returns the configured moving-statistics edge mode.
func (c *Config) EdgeMode() movstat.EdgeMode {
	m, _ := movstat.ParseEdgeMode(c.Moving.Edge)
	return m
}

// applyEnvOverrides applies ANALYTICS_LOG_LEVEL, ANALYTICS_SAMPLE_RATE and
// ANALYTICS_WINDOW. Unparsable numbers are ignored.
func (c *Config) applyEnvOverrides() {
	if val, ok := os.LookupEnv("ANALYTICS_LOG_LEVEL"); ok {
		c.LogLevel = val
	}
	if val, ok := os.LookupEnv("ANALYTICS_SAMPLE_RATE"); ok {
		if fs, err := strconv.ParseFloat(val, 64); err == nil {
			c.SampleRate = fs
		}
	}
	if val, ok := os.LookupEnv("ANALYTICS_WINDOW"); ok {
		c.Spectrum.Window = val
	}
}
