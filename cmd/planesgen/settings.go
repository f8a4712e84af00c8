package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/elektrokombinacija/planes-gen/internal/config"
	"github.com/elektrokombinacija/planes-gen/internal/logging"
)

// addGenerationFlags registers the per-run overrides shared by generate and suite.
// Flags left unset keep the file and environment values.
func addGenerationFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Int64("duration", 0, "Time horizon in seconds")
	f.Int("width", 0, "Area width in metres")
	f.Int("height", 0, "Area height in metres")
	f.Int("planes", 0, "Number of planes")
	f.Int("stations", 0, "Number of stations")
	f.Float64("speed", 0, "Plane speed in km/h")
	f.Float64("battery", 0, "Plane battery capacity in seconds")
	f.Int("max-rejections", 0, "Redraws allowed per task time before the exhaust policy applies")
	f.String("on-exhausted", "", "Exhaust policy: error or clamp")
	f.String("metrics-textfile", "", "Write prometheus metrics to this file")
	f.String("catalog", "", "Record runs in this SQLite database")
}

// loadConfig resolves defaults, config file, environment and flags, in that
// order, and validates the result.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if err := applyFlags(cmd, cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// applyFlags copies explicitly set flags into cfg. A flag only overrides when
// its type matches, so suite can reuse names like --crises for lists.
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	f := cmd.Flags()
	changed := func(name, typ string) bool {
		fl := f.Lookup(name)
		return fl != nil && fl.Changed && fl.Value.Type() == typ
	}

	strs := []struct {
		name string
		dst  *string
	}{
		{"log-level", &cfg.Logging.Level},
		{"log-format", &cfg.Logging.Format},
		{"on-exhausted", &cfg.Sampling.OnExhausted},
		{"metrics-textfile", &cfg.Metrics.Textfile},
		{"catalog", &cfg.Catalog.Path},
		{"output", &cfg.Output.Path},
		{"indent", &cfg.Output.Indent},
	}
	for _, s := range strs {
		if changed(s.name, "string") {
			v, err := f.GetString(s.name)
			if err != nil {
				return err
			}
			*s.dst = v
		}
	}

	ints := []struct {
		name string
		dst  *int
	}{
		{"width", &cfg.Generation.Width},
		{"height", &cfg.Generation.Height},
		{"planes", &cfg.Generation.Planes},
		{"tasks", &cfg.Generation.Tasks},
		{"stations", &cfg.Generation.Stations},
		{"crises", &cfg.Generation.Crises},
		{"max-rejections", &cfg.Sampling.MaxRejections},
		{"bins", &cfg.Histogram.Bins},
	}
	for _, i := range ints {
		if changed(i.name, "int") {
			v, err := f.GetInt(i.name)
			if err != nil {
				return err
			}
			*i.dst = v
		}
	}

	int64s := []struct {
		name string
		dst  *int64
	}{
		{"duration", &cfg.Generation.Duration},
		{"seed", &cfg.Generation.Seed},
	}
	for _, i := range int64s {
		if changed(i.name, "int64") {
			v, err := f.GetInt64(i.name)
			if err != nil {
				return err
			}
			*i.dst = v
		}
	}

	floats := []struct {
		name string
		dst  *float64
	}{
		{"speed", &cfg.Plane.SpeedKmh},
		{"battery", &cfg.Plane.Battery},
		{"divisor", &cfg.Histogram.Divisor},
	}
	for _, x := range floats {
		if changed(x.name, "float64") {
			v, err := f.GetFloat64(x.name)
			if err != nil {
				return err
			}
			*x.dst = v
		}
	}

	if changed("no-histogram", "bool") {
		off, err := f.GetBool("no-histogram")
		if err != nil {
			return err
		}
		cfg.Histogram.Enabled = !off
	}
	return nil
}

func newLogger(cmd *cobra.Command, cfg *config.Config) *slog.Logger {
	return logging.NewLogger(cfg.Logging.Level, cfg.Logging.Format, cmd.ErrOrStderr())
}
