// Package state manages the viewer state for one generated problem.
package state

import (
	"fmt"
	"math"
	"sort"

	"github.com/elektrokombinacija/planes-gen/internal/core"
	"github.com/elektrokombinacija/planes-gen/internal/gen"
)

// State holds all viewer state.
type State struct {
	Problem   *core.Problem
	Histogram *gen.Histogram
	Playback  *PlaybackState
	Selection *Selection

	// Tasks by arrival time; ties keep file order.
	arrivals []*core.Task
	// arrivalIndex maps a task to its index in Problem.Tasks.
	arrivalIndex map[*core.Task]int
}

// NewState validates p and prepares playback over its horizon.
func NewState(p *core.Problem, bins int) (*State, error) {
	if p == nil {
		return nil, fmt.Errorf("no problem loaded")
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid problem: %w", err)
	}
	h, err := gen.NewHistogram(core.TaskTimes(p.Tasks), p.Duration, bins)
	if err != nil {
		return nil, err
	}

	arrivals := make([]*core.Task, len(p.Tasks))
	copy(arrivals, p.Tasks)
	sort.SliceStable(arrivals, func(i, j int) bool {
		return arrivals[i].Time < arrivals[j].Time
	})
	index := make(map[*core.Task]int, len(p.Tasks))
	for i, t := range p.Tasks {
		index[t] = i
	}

	return &State{
		Problem:      p,
		Histogram:    h,
		Playback:     NewPlaybackState(float64(p.Duration)),
		Selection:    &Selection{},
		arrivals:     arrivals,
		arrivalIndex: index,
	}, nil
}

// Appeared returns how many tasks have appeared by the playback time.
func (s *State) Appeared() int {
	at := s.Playback.CurrentTime
	return sort.Search(len(s.arrivals), func(i int) bool {
		return !s.arrivals[i].AppearedBy(at)
	})
}

// VisibleTasks returns the tasks that have appeared, oldest first.
func (s *State) VisibleTasks() []*core.Task {
	return s.arrivals[:s.Appeared()]
}

// Newest returns up to n most recently appeared tasks, newest first.
func (s *State) Newest(n int) []*core.Task {
	visible := s.VisibleTasks()
	if n > len(visible) {
		n = len(visible)
	}
	out := make([]*core.Task, 0, n)
	for i := len(visible) - 1; i >= len(visible)-n; i-- {
		out = append(out, visible[i])
	}
	return out
}

// CurrentBin returns the histogram bin holding the playback time.
func (s *State) CurrentBin() int {
	bins := len(s.Histogram.Counts)
	if bins == 0 {
		return 0
	}
	b := int(s.Playback.CurrentTime / s.Histogram.BinWidth())
	if b >= bins {
		b = bins - 1
	}
	if b < 0 {
		b = 0
	}
	return b
}

// EntityAt returns the entity nearest to the world point (x, y) within radius
// metres. Tasks that have not yet appeared are ignored.
func (s *State) EntityAt(x, y, radius float64) (core.EntityKind, int, bool) {
	best := radius
	var (
		kind  core.EntityKind
		index int
		found bool
	)
	consider := func(k core.EntityKind, i int, pos core.Position) {
		d := math.Hypot(float64(pos.X)-x, float64(pos.Y)-y)
		if d <= best {
			best, kind, index, found = d, k, i, true
		}
	}

	for _, t := range s.VisibleTasks() {
		consider(core.KindTask, s.arrivalIndex[t], t.Position)
	}
	for i, st := range s.Problem.Stations {
		consider(core.KindStation, i, st.Position)
	}
	for i, pl := range s.Problem.Planes {
		consider(core.KindPlane, i, pl.Position)
	}
	return kind, index, found
}

// Describe returns a one-line summary of the selected entity, or "" when
// nothing is selected.
func (s *State) Describe() string {
	sel := s.Selection
	if !sel.Active {
		return ""
	}
	switch sel.Kind {
	case core.KindPlane:
		if sel.Index < len(s.Problem.Planes) {
			pl := s.Problem.Planes[sel.Index]
			return fmt.Sprintf("plane %d at (%d, %d)  %.1f m/s  battery %.0f s  range %.0f m",
				sel.Index, pl.X, pl.Y, pl.Speed, pl.Battery, pl.Range())
		}
	case core.KindTask:
		if sel.Index < len(s.Problem.Tasks) {
			t := s.Problem.Tasks[sel.Index]
			return fmt.Sprintf("task %d at (%d, %d)  appears %s", sel.Index, t.X, t.Y, FormatTime(float64(t.Time)))
		}
	case core.KindStation:
		if sel.Index < len(s.Problem.Stations) {
			st := s.Problem.Stations[sel.Index]
			return fmt.Sprintf("station %d at (%d, %d)", sel.Index, st.X, st.Y)
		}
	}
	return ""
}

// FormatTime renders simulated seconds as days, hours and minutes.
func FormatTime(seconds float64) string {
	total := int64(seconds)
	days := total / 86400
	hours := total % 86400 / 3600
	minutes := total % 3600 / 60
	if days > 0 {
		return fmt.Sprintf("%dd %02dh %02dm", days, hours, minutes)
	}
	return fmt.Sprintf("%02dh %02dm %02ds", hours, minutes, total%60)
}
