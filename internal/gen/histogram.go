package gen

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const (
	// DefaultBins is the number of histogram bins over the horizon.
	DefaultBins = 100

	// DefaultDivisor is the number of tasks represented by one '#'.
	DefaultDivisor = 10.0
)

// Histogram counts task times in equal-width bins over [0, Duration].
// The last bin is closed so a time equal to Duration is counted.
type Histogram struct {
	Duration int64
	Counts   []float64
	Dividers []float64
}

// Peak is a maximal run of consecutive bins above a threshold.
type Peak struct {
	Start, End int     // Bin range, inclusive
	Max        float64 // Highest count in the run
	MaxBin     int
}

// NewHistogram bins times into bins equal-width bins.
func NewHistogram(times []int64, duration int64, bins int) (*Histogram, error) {
	if duration <= 0 {
		return nil, fmt.Errorf("duration must be positive, got %d", duration)
	}
	if bins <= 0 {
		return nil, fmt.Errorf("bins must be positive, got %d", bins)
	}

	x := make([]float64, len(times))
	for i, t := range times {
		if t < 0 || t > duration {
			return nil, fmt.Errorf("time %d at index %d outside [0, %d]", t, i, duration)
		}
		x[i] = float64(t)
	}
	sort.Float64s(x)

	dividers := floats.Span(make([]float64, bins+1), 0, float64(duration))
	dividers[bins] = math.Nextafter(float64(duration), math.Inf(1))

	counts := make([]float64, bins)
	if len(x) > 0 {
		stat.Histogram(counts, dividers, x, nil)
	}

	return &Histogram{
		Duration: duration,
		Counts:   counts,
		Dividers: dividers,
	}, nil
}

// BinWidth returns the width of one bin in seconds.
func (h *Histogram) BinWidth() float64 {
	return float64(h.Duration) / float64(len(h.Counts))
}

// Total returns the number of binned times.
func (h *Histogram) Total() float64 {
	return floats.Sum(h.Counts)
}

// Max returns the highest bin count.
func (h *Histogram) Max() float64 {
	if len(h.Counts) == 0 {
		return 0
	}
	return floats.Max(h.Counts)
}

// Render writes one line per bin with round(count/divisor) '#' characters.
func (h *Histogram) Render(w io.Writer, divisor float64) error {
	if divisor <= 0 {
		return fmt.Errorf("divisor must be positive, got %g", divisor)
	}
	bw := bufio.NewWriter(w)
	for _, c := range h.Counts {
		n := int(math.Round(c / divisor))
		if _, err := bw.WriteString(strings.Repeat("#", n) + "\n"); err != nil {
			return fmt.Errorf("writing histogram: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing histogram: %w", err)
	}
	return nil
}

// Peaks returns the runs of bins whose count exceeds threshold.
func (h *Histogram) Peaks(threshold float64) []Peak {
	var peaks []Peak
	var cur *Peak
	for i, c := range h.Counts {
		if c <= threshold {
			cur = nil
			continue
		}
		if cur == nil {
			peaks = append(peaks, Peak{Start: i, End: i, Max: c, MaxBin: i})
			cur = &peaks[len(peaks)-1]
			continue
		}
		cur.End = i
		if c > cur.Max {
			cur.Max = c
			cur.MaxBin = i
		}
	}
	return peaks
}
