package gen

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/elektrokombinacija/planes-gen/internal/core"
	"github.com/elektrokombinacija/planes-gen/internal/logging"
)

// Assembler builds one Problem from Params.
type Assembler struct {
	params   Params
	sampler  *SpatialSampler
	logger   *slog.Logger
	observer SamplingObserver

	// Histogram side channel; nil disables it.
	diag    io.Writer
	bins    int
	divisor float64

	components []Component
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(a *Assembler) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithObserver forwards sampling events of the arrival model.
func WithObserver(o SamplingObserver) Option {
	return func(a *Assembler) {
		a.observer = o
	}
}

// WithHistogram renders the task time histogram to w after times are assigned.
// Non-positive bins or divisor select the defaults.
func WithHistogram(w io.Writer, bins int, divisor float64) Option {
	return func(a *Assembler) {
		a.diag = w
		if bins > 0 {
			a.bins = bins
		}
		if divisor > 0 {
			a.divisor = divisor
		}
	}
}

// NewAssembler validates params; no sampling happens before it succeeds.
func NewAssembler(params Params, opts ...Option) (*Assembler, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid generation parameters: %w", err)
	}
	sampler, err := NewSpatialSampler(params.Width, params.Height)
	if err != nil {
		return nil, err
	}

	a := &Assembler{
		params:  params,
		sampler: sampler,
		logger:  logging.Discard(),
		bins:    DefaultBins,
		divisor: DefaultDivisor,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Assemble generates the problem. It returns either a complete problem that
// passes Validate or an error.
func (a *Assembler) Assemble() (*core.Problem, error) {
	p := a.params

	// Derivation order is fixed; changing it changes every generated problem.
	streams := NewStreams(p.Seed)
	planeRNG := streams.Next()
	taskRNG := streams.Next()
	setupRNG := streams.Next()
	selectorRNG := streams.Next()
	stationRNG := streams.Next()

	problem := core.NewProblem(p.Duration, p.Width, p.Height)

	speed := core.KmhToMps(p.SpeedKmh)
	for i := 0; i < p.Planes; i++ {
		pos := a.sampler.Sample(planeRNG)
		a.trace("plane placed", i, pos)
		problem.Planes = append(problem.Planes, core.NewPlane(pos, speed, p.Battery))
	}

	for i := 0; i < p.Tasks; i++ {
		problem.Tasks = append(problem.Tasks, core.NewTask(a.sampler.Sample(taskRNG)))
	}

	mixture, err := NewMixture(p.Duration, p.Crises, setupRNG, MixtureOptions{
		MaxRejections: p.MaxRejections,
		OnExhausted:   p.OnExhausted,
		Observer:      a.observer,
	})
	if err != nil {
		return nil, err
	}
	a.components = mixture.Components()
	for _, c := range a.components {
		a.logger.Debug("mixture component",
			"index", c.Index, "kind", c.Kind.String(), "mean", c.Mean, "std", c.StdDev)
	}

	if err := mixture.Assign(problem.Tasks, selectorRNG); err != nil {
		return nil, fmt.Errorf("assigning task times: %w", err)
	}

	a.renderHistogram(problem)

	for i := 0; i < p.Stations; i++ {
		pos := a.sampler.Sample(stationRNG)
		a.trace("station placed", i, pos)
		problem.Stations = append(problem.Stations, core.NewStation(pos))
	}

	if err := problem.Validate(); err != nil {
		return nil, fmt.Errorf("generated problem is invalid: %w", err)
	}

	a.logger.Info("problem assembled",
		"seed", p.Seed,
		"planes", len(problem.Planes),
		"tasks", len(problem.Tasks),
		"stations", len(problem.Stations),
		"crises", p.Crises)
	return problem, nil
}

func (a *Assembler) trace(msg string, i int, pos core.Position) {
	a.logger.Log(context.Background(), logging.LevelTrace, msg, "index", i, "x", pos.X, "y", pos.Y)
}

// renderHistogram never fails the run.
func (a *Assembler) renderHistogram(problem *core.Problem) {
	if a.diag == nil {
		return
	}
	h, err := NewHistogram(core.TaskTimes(problem.Tasks), problem.Duration, a.bins)
	if err != nil {
		a.logger.Warn("histogram skipped", "err", err)
		return
	}
	if err := h.Render(a.diag, a.divisor); err != nil {
		a.logger.Warn("histogram rendering failed", "err", err)
	}
}

// Components returns the mixture components of the last Assemble call.
func (a *Assembler) Components() []Component {
	return a.components
}
