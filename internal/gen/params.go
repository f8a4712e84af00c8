package gen

import (
	"errors"
	"fmt"

	"github.com/elektrokombinacija/planes-gen/internal/core"
)

// Params defines one generation run.
type Params struct {
	Duration int64 // Horizon (seconds)
	Width    int   // Area width (metres)
	Height   int   // Area height (metres)
	Planes   int
	Tasks    int
	Stations int
	Crises   int // Gaussian burst components
	Seed     int64

	SpeedKmh float64 // Plane cruise speed
	Battery  float64 // Plane battery capacity (seconds)

	MaxRejections int
	OnExhausted   ExhaustPolicy
}

// DefaultParams returns the reference benchmark: a 30 day horizon over a
// 10 km square, one task per simulated minute and four crises.
func DefaultParams() Params {
	return Params{
		Duration:      3600 * 24 * 30,
		Width:         10000,
		Height:        10000,
		Planes:        10,
		Tasks:         60 * 24 * 30,
		Stations:      1,
		Crises:        4,
		Seed:          42,
		SpeedKmh:      core.DefaultSpeedKmh,
		Battery:       core.DefaultBattery,
		MaxRejections: DefaultMaxRejections,
		OnExhausted:   ExhaustError,
	}
}

// Validate reports every invalid field.
func (p Params) Validate() error {
	var errs []error
	if p.Duration <= 0 {
		errs = append(errs, fmt.Errorf("duration must be positive, got %d", p.Duration))
	}
	if p.Width <= 0 {
		errs = append(errs, fmt.Errorf("width must be positive, got %d", p.Width))
	}
	if p.Height <= 0 {
		errs = append(errs, fmt.Errorf("height must be positive, got %d", p.Height))
	}
	counts := []struct {
		name string
		n    int
	}{
		{"planes", p.Planes},
		{"tasks", p.Tasks},
		{"stations", p.Stations},
		{"crises", p.Crises},
	}
	for _, c := range counts {
		if c.n < 0 {
			errs = append(errs, fmt.Errorf("%s must be non-negative, got %d", c.name, c.n))
		}
	}
	if p.SpeedKmh <= 0 {
		errs = append(errs, fmt.Errorf("plane speed must be positive, got %g", p.SpeedKmh))
	}
	if p.Battery <= 0 {
		errs = append(errs, fmt.Errorf("plane battery must be positive, got %g", p.Battery))
	}
	if p.MaxRejections < 0 {
		errs = append(errs, fmt.Errorf("max rejections must be non-negative, got %d", p.MaxRejections))
	}
	if _, err := ParseExhaustPolicy(string(p.OnExhausted)); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
