package gen

import (
	"errors"
	"math"
	"sort"
	"testing"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/elektrokombinacija/planes-gen/internal/core"
)

const month = 3600 * 24 * 30

type countingObserver struct {
	accepted map[int]int
	rejected map[int]int
	clamped  map[int]int
}

func newCountingObserver() *countingObserver {
	return &countingObserver{
		accepted: make(map[int]int),
		rejected: make(map[int]int),
		clamped:  make(map[int]int),
	}
}

func (o *countingObserver) Accepted(c int) { o.accepted[c]++ }
func (o *countingObserver) Rejected(c int) { o.rejected[c]++ }
func (o *countingObserver) Clamped(c int)  { o.clamped[c]++ }

type constDist float64

func (d constDist) Rand() float64 { return float64(d) }

func newTestMixture(t *testing.T, duration int64, crises int, seed uint64) *Mixture {
	t.Helper()
	m, err := NewMixture(duration, crises, rand.New(rand.NewSource(seed)), MixtureOptions{})
	if err != nil {
		t.Fatalf("NewMixture: %v", err)
	}
	return m
}

func TestNewMixtureComponents(t *testing.T) {
	m := newTestMixture(t, 1000, 4, 1)
	comps := m.Components()
	if len(comps) != 5 {
		t.Fatalf("len(Components()) = %d, want 5", len(comps))
	}
	if comps[0].Kind != Background || comps[0].Mean != 500 {
		t.Errorf("component 0 = %+v, want uniform background with mean 500", comps[0])
	}
	for _, c := range comps[1:] {
		if c.Kind != Crisis {
			t.Errorf("component %d kind = %v, want crisis", c.Index, c.Kind)
		}
		if c.StdDev != 12.5 {
			t.Errorf("component %d std = %v, want 12.5", c.Index, c.StdDev)
		}
		if c.Mean < 0 || c.Mean > 1000 {
			t.Errorf("component %d mean %v outside horizon", c.Index, c.Mean)
		}
	}
}

func TestNewMixtureErrors(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	tests := []struct {
		name     string
		duration int64
		crises   int
		opts     MixtureOptions
	}{
		{"zero duration", 0, 1, MixtureOptions{}},
		{"negative crises", 10, -1, MixtureOptions{}},
		{"unknown policy", 10, 1, MixtureOptions{OnExhausted: "retry"}},
	}
	for _, tt := range tests {
		if _, err := NewMixture(tt.duration, tt.crises, r, tt.opts); err == nil {
			t.Errorf("%s: NewMixture succeeded, want error", tt.name)
		}
	}
}

func TestMixtureDeterministic(t *testing.T) {
	a := newTestMixture(t, month, 4, 99)
	b := newTestMixture(t, month, 4, 99)
	sa := rand.New(rand.NewSource(5))
	sb := rand.New(rand.NewSource(5))

	for i := 0; i < 1000; i++ {
		ta, ca, err := a.Sample(sa)
		if err != nil {
			t.Fatalf("Sample: %v", err)
		}
		tb, cb, _ := b.Sample(sb)
		if ta != tb || ca != cb {
			t.Fatalf("draw %d: (%d, %d) != (%d, %d)", i, ta, ca, tb, cb)
		}
	}
}

func TestMixtureTimesInRange(t *testing.T) {
	// Short horizon with crises near the edges forces rejections.
	for seed := uint64(0); seed < 20; seed++ {
		m := newTestMixture(t, 100, 2, seed)
		selector := rand.New(rand.NewSource(seed))
		for i := 0; i < 500; i++ {
			tm, _, err := m.Sample(selector)
			if err != nil {
				t.Fatalf("seed %d: Sample: %v", seed, err)
			}
			if tm < 0 || tm > 100 {
				t.Fatalf("seed %d: time %d outside [0, 100]", seed, tm)
			}
		}
	}
}

func TestMixtureComponentChoiceUniform(t *testing.T) {
	const crises = 4
	obs := make([]float64, crises+1)
	n := 0
	for seed := uint64(0); seed < 20; seed++ {
		m := newTestMixture(t, month, crises, seed)
		selector := rand.New(rand.NewSource(seed + 1000))
		for i := 0; i < 2000; i++ {
			_, c, err := m.Sample(selector)
			if err != nil {
				t.Fatalf("Sample: %v", err)
			}
			obs[c]++
			n++
		}
	}

	exp := make([]float64, crises+1)
	for i := range exp {
		exp[i] = float64(n) / float64(crises+1)
	}
	chi2 := stat.ChiSquare(obs, exp)
	critical := distuv.ChiSquared{K: crises}.Quantile(0.999)
	if chi2 > critical {
		t.Errorf("component counts %v: chi-square %.2f exceeds %.2f", obs, chi2, critical)
	}
}

func TestMixtureWithoutCrisesIsUniform(t *testing.T) {
	const n = 5000
	m := newTestMixture(t, month, 0, 3)
	if len(m.Components()) != 1 {
		t.Fatalf("len(Components()) = %d, want 1", len(m.Components()))
	}
	selector := rand.New(rand.NewSource(4))

	x := make([]float64, n)
	for i := range x {
		tm, c, err := m.Sample(selector)
		if err != nil {
			t.Fatalf("Sample: %v", err)
		}
		if c != 0 {
			t.Fatalf("component = %d, want 0", c)
		}
		x[i] = float64(tm)
	}
	sort.Float64s(x)

	// One-sample Kolmogorov-Smirnov statistic against Uniform(0, month).
	u := distuv.Uniform{Min: 0, Max: month}
	d := 0.0
	for i, v := range x {
		f := u.CDF(v)
		d = math.Max(d, math.Max(float64(i+1)/n-f, f-float64(i)/n))
	}
	critical := 1.63 / math.Sqrt(n) // alpha = 0.01
	if d > critical {
		t.Errorf("KS statistic %.4f exceeds %.4f", d, critical)
	}
}

func TestMixtureCrisisPeaks(t *testing.T) {
	const (
		crises = 4
		tasks  = 10000
		bins   = 100
	)
	m := newTestMixture(t, month, crises, 11)
	selector := rand.New(rand.NewSource(12))

	ts := make([]*core.Task, tasks)
	for i := range ts {
		ts[i] = &core.Task{}
	}
	if err := m.Assign(ts, selector); err != nil {
		t.Fatalf("Assign: %v", err)
	}
	h, err := NewHistogram(core.TaskTimes(ts), month, bins)
	if err != nil {
		t.Fatalf("NewHistogram: %v", err)
	}

	// Background alone puts about tasks/(crises+1)/bins = 20 tasks per bin.
	threshold := 5 * float64(tasks) / float64(crises+1) / bins

	var meanBins []int
	for _, c := range m.Components()[1:] {
		bin := int(c.Mean / h.BinWidth())
		if bin == bins {
			bin--
		}
		if h.Counts[bin] <= threshold {
			t.Errorf("crisis %d: bin %d holds %.0f tasks, want > %.0f", c.Index, bin, h.Counts[bin], threshold)
		}
		meanBins = append(meanBins, bin)
	}
	sort.Ints(meanBins)

	// Crises more than 8 bins apart cannot share a run above threshold.
	separated := 1
	for i := 1; i < len(meanBins); i++ {
		if meanBins[i]-meanBins[i-1] > 8 {
			separated++
		}
	}

	peaks := h.Peaks(threshold)
	if len(peaks) < separated || len(peaks) > crises {
		t.Errorf("found %d peaks, want between %d and %d", len(peaks), separated, crises)
	}
}

func TestMixtureRejectionCap(t *testing.T) {
	stuck := func(d distribution, policy ExhaustPolicy, obs SamplingObserver) *Mixture {
		return &Mixture{
			duration:   10,
			components: []Component{{Index: 0, Kind: Crisis, Mean: -1000, StdDev: 1}},
			dists:      []distribution{d},
			opts:       MixtureOptions{MaxRejections: 3, OnExhausted: policy, Observer: obs},
		}
	}
	selector := rand.New(rand.NewSource(1))

	t.Run("error", func(t *testing.T) {
		obs := newCountingObserver()
		_, _, err := stuck(constDist(-5), ExhaustError, obs).Sample(selector)
		var rej *RejectionError
		if !errors.As(err, &rej) {
			t.Fatalf("Sample error = %v, want *RejectionError", err)
		}
		if rej.Rejections != 4 || rej.Last != -5 || rej.Component.Mean != -1000 {
			t.Errorf("RejectionError = %+v", rej)
		}
		if obs.rejected[0] != 4 || obs.accepted[0] != 0 {
			t.Errorf("observer rejected=%d accepted=%d", obs.rejected[0], obs.accepted[0])
		}
	})

	t.Run("clamp low", func(t *testing.T) {
		obs := newCountingObserver()
		tm, _, err := stuck(constDist(-5), ExhaustClamp, obs).Sample(selector)
		if err != nil || tm != 0 {
			t.Fatalf("Sample = (%d, %v), want (0, nil)", tm, err)
		}
		if obs.clamped[0] != 1 {
			t.Errorf("clamped = %d, want 1", obs.clamped[0])
		}
	})

	t.Run("clamp high", func(t *testing.T) {
		tm, _, err := stuck(constDist(50), ExhaustClamp, newCountingObserver()).Sample(selector)
		if err != nil || tm != 10 {
			t.Fatalf("Sample = (%d, %v), want (10, nil)", tm, err)
		}
	})

	t.Run("assign wraps task index", func(t *testing.T) {
		tasks := []*core.Task{{}, {}}
		err := stuck(constDist(-5), ExhaustError, newCountingObserver()).Assign(tasks, selector)
		var rej *RejectionError
		if !errors.As(err, &rej) {
			t.Fatalf("Assign error = %v, want *RejectionError", err)
		}
	})
}

func TestMixtureTruncatesTowardZero(t *testing.T) {
	m := &Mixture{
		duration:   10,
		components: []Component{{Index: 0}},
		dists:      []distribution{constDist(-0.7)},
		opts:       MixtureOptions{MaxRejections: 1, OnExhausted: ExhaustError, Observer: noopObserver{}},
	}
	tm, _, err := m.Sample(rand.New(rand.NewSource(1)))
	if err != nil || tm != 0 {
		t.Errorf("Sample = (%d, %v), want (0, nil)", tm, err)
	}
}

func TestParseExhaustPolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    ExhaustPolicy
		wantErr bool
	}{
		{"", ExhaustError, false},
		{"error", ExhaustError, false},
		{"clamp", ExhaustClamp, false},
		{"loop", "", true},
	}
	for _, tt := range tests {
		got, err := ParseExhaustPolicy(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseExhaustPolicy(%q) = (%q, %v)", tt.in, got, err)
		}
	}
}
