package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/elektrokombinacija/planes-gen/internal/gen"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Generation.Duration != 2592000 {
		t.Errorf("Duration = %d, want 2592000", cfg.Generation.Duration)
	}
	if cfg.Generation.Tasks != 43200 {
		t.Errorf("Tasks = %d, want 43200", cfg.Generation.Tasks)
	}
	if cfg.Generation.Crises != 4 {
		t.Errorf("Crises = %d, want 4", cfg.Generation.Crises)
	}
	if cfg.Plane.Battery != 5000 {
		t.Errorf("Battery = %v, want 5000", cfg.Plane.Battery)
	}
	if !cfg.Histogram.Enabled || cfg.Histogram.Bins != 100 {
		t.Errorf("Histogram = %+v, want enabled with 100 bins", cfg.Histogram)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "planesgen.yaml")
	content := `generation:
  duration: 3600
  tasks: 50
  crises: 0
  seed: -7
plane:
  battery: 10800
sampling:
  on_exhausted: clamp
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}

	if cfg.Generation.Duration != 3600 || cfg.Generation.Tasks != 50 || cfg.Generation.Seed != -7 {
		t.Errorf("Generation = %+v", cfg.Generation)
	}
	if cfg.Plane.Battery != 10800 {
		t.Errorf("Battery = %v, want 10800", cfg.Plane.Battery)
	}
	// Unset fields keep their defaults.
	if cfg.Generation.Width != 10000 || cfg.Plane.SpeedKmh != 50 {
		t.Errorf("defaults lost: width=%d speed=%v", cfg.Generation.Width, cfg.Plane.SpeedKmh)
	}
	if cfg.Params().OnExhausted != gen.ExhaustClamp {
		t.Errorf("OnExhausted = %q, want clamp", cfg.Params().OnExhausted)
	}
}

func TestLoadFromFileErrors(t *testing.T) {
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file loaded")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("generation: [1, 2"), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	if _, err := LoadFromFile(path); err == nil {
		t.Error("malformed YAML loaded")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PLANESGEN_SEED", "1234")
	t.Setenv("PLANESGEN_TASKS", "77")
	t.Setenv("PLANESGEN_LOG_LEVEL", "trace")
	t.Setenv("PLANESGEN_CATALOG", "/tmp/runs.db")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Generation.Seed != 1234 || cfg.Generation.Tasks != 77 {
		t.Errorf("Generation = %+v", cfg.Generation)
	}
	if cfg.Logging.Level != "trace" || cfg.Catalog.Path != "/tmp/runs.db" {
		t.Errorf("Logging = %+v, Catalog = %+v", cfg.Logging, cfg.Catalog)
	}
}

func TestLoadEnvOverrideRejectsGarbage(t *testing.T) {
	t.Setenv("PLANESGEN_DURATION", "a month")
	if _, err := Load(""); err == nil || !strings.Contains(err.Error(), "PLANESGEN_DURATION") {
		t.Errorf("Load = %v, want PLANESGEN_DURATION error", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"negative tasks", func(c *Config) { c.Generation.Tasks = -1 }, "tasks"},
		{"zero height", func(c *Config) { c.Generation.Height = 0 }, "height"},
		{"zero battery", func(c *Config) { c.Plane.Battery = 0 }, "battery"},
		{"bad policy", func(c *Config) { c.Sampling.OnExhausted = "forever" }, "exhaust policy"},
		{"zero bins", func(c *Config) { c.Histogram.Bins = 0 }, "bins"},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }, "log level"},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }, "log format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}
