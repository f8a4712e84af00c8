package gen

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/elektrokombinacija/planes-gen/internal/core"
)

const (
	// DefaultMaxRejections bounds the redraws of one task's time.
	DefaultMaxRejections = 10000

	// CrisisSpread is the crisis standard deviation as a fraction of the
	// mean spacing between crises (duration / crises).
	CrisisSpread = 0.05
)

// ComponentKind classifies mixture components.
type ComponentKind int

const (
	Background ComponentKind = iota // Uniform over the horizon
	Crisis                          // Gaussian burst
)

func (k ComponentKind) String() string {
	return [...]string{"background", "crisis"}[k]
}

// Component describes one mixture component.
type Component struct {
	Index  int
	Kind   ComponentKind
	Mean   float64
	StdDev float64
}

// ExhaustPolicy selects what happens when a task's time cannot be drawn
// inside the horizon within the rejection cap.
type ExhaustPolicy string

const (
	ExhaustError ExhaustPolicy = "error" // Fail the run
	ExhaustClamp ExhaustPolicy = "clamp" // Clamp the last draw into range
)

// ParseExhaustPolicy maps a policy name to an ExhaustPolicy.
// The empty string selects ExhaustError.
func ParseExhaustPolicy(s string) (ExhaustPolicy, error) {
	switch ExhaustPolicy(s) {
	case "", ExhaustError:
		return ExhaustError, nil
	case ExhaustClamp:
		return ExhaustClamp, nil
	default:
		return "", fmt.Errorf("invalid exhaust policy %q (valid: error, clamp)", s)
	}
}

// SamplingObserver receives per-component sampling events.
type SamplingObserver interface {
	Accepted(component int)
	Rejected(component int)
	Clamped(component int)
}

type noopObserver struct{}

func (noopObserver) Accepted(int) {}
func (noopObserver) Rejected(int) {}
func (noopObserver) Clamped(int)  {}

// MixtureOptions tunes rejection sampling.
type MixtureOptions struct {
	MaxRejections int           // <= 0 selects DefaultMaxRejections
	OnExhausted   ExhaustPolicy // "" selects ExhaustError
	Observer      SamplingObserver
}

// RejectionError reports a component that kept drawing outside the horizon.
type RejectionError struct {
	Component  Component
	Duration   int64
	Rejections int
	Last       int64
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("%s component %d (mean %.1f, std %.1f) rejected %d draws outside [0, %d], last %d",
		e.Component.Kind, e.Component.Index, e.Component.Mean, e.Component.StdDev,
		e.Rejections, e.Duration, e.Last)
}

type distribution interface {
	Rand() float64
}

// Mixture is the task arrival model: one uniform background component and
// one Gaussian component per crisis, each with its own random source.
type Mixture struct {
	duration   int64
	components []Component
	dists      []distribution
	opts       MixtureOptions
}

// NewMixture builds the components. Seeds and crisis means are drawn from
// setup in component order: background seed, then mean and seed per crisis.
func NewMixture(duration int64, crises int, setup *rand.Rand, opts MixtureOptions) (*Mixture, error) {
	if duration <= 0 {
		return nil, fmt.Errorf("duration must be positive, got %d", duration)
	}
	if crises < 0 {
		return nil, fmt.Errorf("crises must be non-negative, got %d", crises)
	}
	policy, err := ParseExhaustPolicy(string(opts.OnExhausted))
	if err != nil {
		return nil, err
	}
	opts.OnExhausted = policy
	if opts.MaxRejections <= 0 {
		opts.MaxRejections = DefaultMaxRejections
	}
	if opts.Observer == nil {
		opts.Observer = noopObserver{}
	}

	m := &Mixture{
		duration:   duration,
		components: make([]Component, 0, crises+1),
		dists:      make([]distribution, 0, crises+1),
		opts:       opts,
	}

	span := float64(duration)
	background := distuv.Uniform{Min: 0, Max: span, Src: rand.NewSource(setup.Uint64())}
	m.add(Background, background.Mean(), background.StdDev(), background)

	if crises > 0 {
		std := (span / float64(crises)) * CrisisSpread
		for i := 1; i <= crises; i++ {
			mean := setup.Float64() * span
			burst := distuv.Normal{Mu: mean, Sigma: std, Src: rand.NewSource(setup.Uint64())}
			m.add(Crisis, mean, std, burst)
		}
	}

	return m, nil
}

func (m *Mixture) add(kind ComponentKind, mean, std float64, d distribution) {
	m.components = append(m.components, Component{
		Index:  len(m.components),
		Kind:   kind,
		Mean:   mean,
		StdDev: std,
	})
	m.dists = append(m.dists, d)
}

// Components returns the component descriptors in index order.
func (m *Mixture) Components() []Component {
	out := make([]Component, len(m.components))
	copy(out, m.components)
	return out
}

// Duration returns the horizon.
func (m *Mixture) Duration() int64 {
	return m.duration
}

// Sample picks a component uniformly with selector and draws a time from it.
func (m *Mixture) Sample(selector *rand.Rand) (int64, int, error) {
	i := selector.Intn(len(m.dists))
	t, err := m.draw(i)
	return t, i, err
}

// draw samples component i until the value, truncated to whole seconds,
// lies in [0, duration].
func (m *Mixture) draw(i int) (int64, error) {
	dist := m.dists[i]
	candidate := int64(dist.Rand())
	rejections := 0
	for !m.inRange(candidate) {
		m.opts.Observer.Rejected(i)
		rejections++
		if rejections > m.opts.MaxRejections {
			return m.exhausted(i, candidate, rejections)
		}
		candidate = int64(dist.Rand())
	}
	m.opts.Observer.Accepted(i)
	return candidate, nil
}

func (m *Mixture) exhausted(i int, last int64, rejections int) (int64, error) {
	if m.opts.OnExhausted == ExhaustClamp {
		m.opts.Observer.Clamped(i)
		if last < 0 {
			return 0, nil
		}
		return m.duration, nil
	}
	return 0, &RejectionError{
		Component:  m.components[i],
		Duration:   m.duration,
		Rejections: rejections,
		Last:       last,
	}
}

func (m *Mixture) inRange(t int64) bool {
	return t >= 0 && t <= m.duration
}

// Assign sets the time of every task, in order.
func (m *Mixture) Assign(tasks []*core.Task, selector *rand.Rand) error {
	for idx, task := range tasks {
		t, _, err := m.Sample(selector)
		if err != nil {
			return fmt.Errorf("task %d: %w", idx, err)
		}
		task.Time = t
	}
	return nil
}
