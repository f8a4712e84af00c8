// Package config provides configuration loading for planesgen.
// It supports loading from YAML files and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/elektrokombinacija/planes-gen/internal/core"
	"github.com/elektrokombinacija/planes-gen/internal/gen"
	"github.com/elektrokombinacija/planes-gen/internal/logging"
)

// DefaultFile is read from the working directory when no file is given.
const DefaultFile = "planesgen.yaml"

// Config contains all planesgen settings.
type Config struct {
	Generation GenerationConfig `json:"generation" yaml:"generation"`
	Plane      PlaneConfig      `json:"plane" yaml:"plane"`
	Sampling   SamplingConfig   `json:"sampling" yaml:"sampling"`
	Histogram  HistogramConfig  `json:"histogram" yaml:"histogram"`
	Logging    LoggingConfig    `json:"logging" yaml:"logging"`
	Output     OutputConfig     `json:"output" yaml:"output"`
	Metrics    MetricsConfig    `json:"metrics" yaml:"metrics"`
	Catalog    CatalogConfig    `json:"catalog" yaml:"catalog"`
}

// GenerationConfig sizes the generated problem.
type GenerationConfig struct {
	// Duration is the time horizon in seconds.
	Duration int64 `json:"duration" yaml:"duration"`

	// Width and Height bound the area in metres.
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`

	Planes   int `json:"planes" yaml:"planes"`
	Tasks    int `json:"tasks" yaml:"tasks"`
	Stations int `json:"stations" yaml:"stations"`

	// Crises is the number of Gaussian bursts in the task arrival model.
	Crises int `json:"crises" yaml:"crises"`

	// Seed is the master seed every random stream derives from.
	Seed int64 `json:"seed" yaml:"seed"`
}

// PlaneConfig sets the attributes shared by every plane.
type PlaneConfig struct {
	SpeedKmh float64 `json:"speed_kmh" yaml:"speed_kmh"`

	// Battery is the capacity in simulation seconds.
	Battery float64 `json:"battery" yaml:"battery"`
}

// SamplingConfig bounds rejection sampling of task times.
type SamplingConfig struct {
	MaxRejections int `json:"max_rejections" yaml:"max_rejections"`

	// OnExhausted is "error" or "clamp".
	OnExhausted string `json:"on_exhausted" yaml:"on_exhausted"`
}

// HistogramConfig controls the diagnostic histogram on stderr.
type HistogramConfig struct {
	Enabled bool    `json:"enabled" yaml:"enabled"`
	Bins    int     `json:"bins" yaml:"bins"`
	Divisor float64 `json:"divisor" yaml:"divisor"`
}

// LoggingConfig configures the stderr logger.
type LoggingConfig struct {
	// Level is "trace", "debug", "info" (default), "warn" or "error".
	Level string `json:"level" yaml:"level"`

	// Format is "text" (default) or "json".
	Format string `json:"format" yaml:"format"`
}

// OutputConfig selects where the problem is written.
type OutputConfig struct {
	// Path is a file path, or "-" / empty for stdout.
	Path string `json:"path" yaml:"path"`

	// Indent pretty-prints the JSON when non-empty.
	Indent string `json:"indent,omitempty" yaml:"indent,omitempty"`
}

// MetricsConfig enables the prometheus textfile.
type MetricsConfig struct {
	Textfile string `json:"textfile,omitempty" yaml:"textfile,omitempty"`
}

// CatalogConfig enables the SQLite run catalog.
type CatalogConfig struct {
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

// Default returns a Config with the reference benchmark settings.
func Default() *Config {
	p := gen.DefaultParams()
	return &Config{
		Generation: GenerationConfig{
			Duration: p.Duration,
			Width:    p.Width,
			Height:   p.Height,
			Planes:   p.Planes,
			Tasks:    p.Tasks,
			Stations: p.Stations,
			Crises:   p.Crises,
			Seed:     p.Seed,
		},
		Plane: PlaneConfig{
			SpeedKmh: core.DefaultSpeedKmh,
			Battery:  core.DefaultBattery,
		},
		Sampling: SamplingConfig{
			MaxRejections: gen.DefaultMaxRejections,
			OnExhausted:   string(gen.ExhaustError),
		},
		Histogram: HistogramConfig{
			Enabled: true,
			Bins:    gen.DefaultBins,
			Divisor: gen.DefaultDivisor,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Output: OutputConfig{
			Path: "-",
		},
	}
}

// Load loads configuration from path, or from DefaultFile when path is
// empty and the file exists, then applies environment overrides.
// Order: defaults -> file -> environment variables.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			path = DefaultFile
		}
	}
	if path != "" {
		fileConfig, err := LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromFile loads configuration from a YAML file on top of the defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error
	if err := c.Params().Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Histogram.Bins <= 0 {
		errs = append(errs, fmt.Errorf("histogram bins must be positive, got %d", c.Histogram.Bins))
	}
	if c.Histogram.Divisor <= 0 {
		errs = append(errs, fmt.Errorf("histogram divisor must be positive, got %g", c.Histogram.Divisor))
	}
	if !logging.ValidLevel(c.Logging.Level) {
		errs = append(errs, fmt.Errorf("invalid log level: %s (valid: trace, debug, info, warn, error)", c.Logging.Level))
	}
	if c.Logging.Format != "" && c.Logging.Format != "text" && c.Logging.Format != "json" {
		errs = append(errs, fmt.Errorf("invalid log format: %s (valid: text, json)", c.Logging.Format))
	}
	return errors.Join(errs...)
}

// Params converts the generation settings to generator parameters.
func (c *Config) Params() gen.Params {
	return gen.Params{
		Duration:      c.Generation.Duration,
		Width:         c.Generation.Width,
		Height:        c.Generation.Height,
		Planes:        c.Generation.Planes,
		Tasks:         c.Generation.Tasks,
		Stations:      c.Generation.Stations,
		Crises:        c.Generation.Crises,
		Seed:          c.Generation.Seed,
		SpeedKmh:      c.Plane.SpeedKmh,
		Battery:       c.Plane.Battery,
		MaxRejections: c.Sampling.MaxRejections,
		OnExhausted:   gen.ExhaustPolicy(c.Sampling.OnExhausted),
	}
}

// applyEnvOverrides applies PLANESGEN_* environment variables.
func applyEnvOverrides(cfg *Config) error {
	ints := []struct {
		env string
		dst *int
	}{
		{"PLANESGEN_WIDTH", &cfg.Generation.Width},
		{"PLANESGEN_HEIGHT", &cfg.Generation.Height},
		{"PLANESGEN_PLANES", &cfg.Generation.Planes},
		{"PLANESGEN_TASKS", &cfg.Generation.Tasks},
		{"PLANESGEN_STATIONS", &cfg.Generation.Stations},
		{"PLANESGEN_CRISES", &cfg.Generation.Crises},
		{"PLANESGEN_MAX_REJECTIONS", &cfg.Sampling.MaxRejections},
	}
	for _, o := range ints {
		if v := os.Getenv(o.env); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%s: %w", o.env, err)
			}
			*o.dst = n
		}
	}

	int64s := []struct {
		env string
		dst *int64
	}{
		{"PLANESGEN_DURATION", &cfg.Generation.Duration},
		{"PLANESGEN_SEED", &cfg.Generation.Seed},
	}
	for _, o := range int64s {
		if v := os.Getenv(o.env); v != "" {
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return fmt.Errorf("%s: %w", o.env, err)
			}
			*o.dst = n
		}
	}

	if v := os.Getenv("PLANESGEN_ON_EXHAUSTED"); v != "" {
		cfg.Sampling.OnExhausted = v
	}
	if v := os.Getenv("PLANESGEN_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("PLANESGEN_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("PLANESGEN_CATALOG"); v != "" {
		cfg.Catalog.Path = v
	}
	if v := os.Getenv("PLANESGEN_METRICS_TEXTFILE"); v != "" {
		cfg.Metrics.Textfile = v
	}
	return nil
}
