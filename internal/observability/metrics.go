// Package observability exposes Prometheus metrics for generation runs.
package observability

import (
	"fmt"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/elektrokombinacija/planes-gen/internal/core"
)

// GenerationCollector bundles the generator metrics. It satisfies
// gen.SamplingObserver so the arrival model can drive the counters directly.
type GenerationCollector struct {
	gatherer prometheus.Gatherer

	TasksSampled *prometheus.CounterVec
	Rejections   *prometheus.CounterVec
	Clamps       *prometheus.CounterVec
	Entities     *prometheus.GaugeVec
	Duration     prometheus.Histogram
}

// NewGenerationCollector registers the generator metrics against reg,
// defaulting to the global registry when nil.
func NewGenerationCollector(reg prometheus.Registerer) (*GenerationCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	sampled, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "planesgen_tasks_sampled_total",
		Help: "Task times accepted, labeled by mixture component.",
	}, []string{"component"}), "planesgen_tasks_sampled_total")
	if err != nil {
		return nil, err
	}
	rejections, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "planesgen_rejections_total",
		Help: "Task time draws rejected for falling outside the horizon, labeled by mixture component.",
	}, []string{"component"}), "planesgen_rejections_total")
	if err != nil {
		return nil, err
	}
	clamped, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "planesgen_clamped_total",
		Help: "Task times clamped after the rejection cap was hit, labeled by mixture component.",
	}, []string{"component"}), "planesgen_clamped_total")
	if err != nil {
		return nil, err
	}
	entities, err := registerGaugeVec(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "planesgen_entities",
		Help: "Entities in the last generated problem, labeled by kind.",
	}, []string{"kind"}), "planesgen_entities")
	if err != nil {
		return nil, err
	}
	duration, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "planesgen_generation_seconds",
		Help:    "Wall time spent assembling one problem.",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
	}), "planesgen_generation_seconds")
	if err != nil {
		return nil, err
	}

	return &GenerationCollector{
		gatherer:     gatherer,
		TasksSampled: sampled,
		Rejections:   rejections,
		Clamps:       clamped,
		Entities:     entities,
		Duration:     duration,
	}, nil
}

func (c *GenerationCollector) Accepted(component int) {
	c.TasksSampled.WithLabelValues(strconv.Itoa(component)).Inc()
}

func (c *GenerationCollector) Rejected(component int) {
	c.Rejections.WithLabelValues(strconv.Itoa(component)).Inc()
}

func (c *GenerationCollector) Clamped(component int) {
	c.Clamps.WithLabelValues(strconv.Itoa(component)).Inc()
}

// SetEntities records the entity counts of p.
func (c *GenerationCollector) SetEntities(p *core.Problem) {
	if c == nil || p == nil {
		return
	}
	for _, kind := range core.AllKinds() {
		c.Entities.WithLabelValues(kind.String()).Set(float64(p.Count(kind)))
	}
}

// ObserveGeneration records one assembly wall time.
func (c *GenerationCollector) ObserveGeneration(seconds float64) {
	if c == nil {
		return
	}
	c.Duration.Observe(seconds)
}

// WriteTextfile writes every gathered metric to path in the text exposition
// format, for the node exporter textfile collector.
func (c *GenerationCollector) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, c.gatherer); err != nil {
		return fmt.Errorf("writing metrics textfile: %w", err)
	}
	return nil
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerGaugeVec(reg prometheus.Registerer, vec *prometheus.GaugeVec, name string) (*prometheus.GaugeVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.GaugeVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogram(reg prometheus.Registerer, h prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(h); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return h, nil
}
