package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Problem is a generated benchmark instance.
type Problem struct {
	Duration int64      `json:"duration"` // Time horizon (seconds)
	Width    int        `json:"width"`    // Area width (metres)
	Height   int        `json:"height"`   // Area height (metres)
	Planes   []*Plane   `json:"planes"`
	Tasks    []*Task    `json:"tasks"`
	Stations []*Station `json:"stations"`
}

// NewProblem creates an empty problem over the given horizon and area.
func NewProblem(duration int64, width, height int) *Problem {
	return &Problem{
		Duration: duration,
		Width:    width,
		Height:   height,
		Planes:   []*Plane{},
		Tasks:    []*Task{},
		Stations: []*Station{},
	}
}

// Validate checks that every entity lies in the area and every task time
// lies in [0, Duration]. Only the first violation per entity kind is reported.
func (p *Problem) Validate() error {
	var errs []error
	if p.Duration <= 0 {
		errs = append(errs, fmt.Errorf("duration must be positive, got %d", p.Duration))
	}
	if p.Width <= 0 || p.Height <= 0 {
		errs = append(errs, fmt.Errorf("area must be positive, got %dx%d", p.Width, p.Height))
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	for i, pl := range p.Planes {
		if pl == nil {
			errs = append(errs, fmt.Errorf("plane %d: missing", i))
			break
		}
		if !pl.Within(p.Width, p.Height) {
			errs = append(errs, p.outside(KindPlane, i, pl.Position))
			break
		}
	}
	for i, t := range p.Tasks {
		if t == nil {
			errs = append(errs, fmt.Errorf("task %d: missing", i))
			break
		}
		if !t.Within(p.Width, p.Height) {
			errs = append(errs, p.outside(KindTask, i, t.Position))
			break
		}
	}
	for i, t := range p.Tasks {
		if t != nil && (t.Time < 0 || t.Time > p.Duration) {
			errs = append(errs, fmt.Errorf("task %d: time %d outside [0, %d]", i, t.Time, p.Duration))
			break
		}
	}
	for i, st := range p.Stations {
		if st == nil {
			errs = append(errs, fmt.Errorf("station %d: missing", i))
			break
		}
		if !st.Within(p.Width, p.Height) {
			errs = append(errs, p.outside(KindStation, i, st.Position))
			break
		}
	}
	return errors.Join(errs...)
}

func (p *Problem) outside(kind EntityKind, i int, pos Position) error {
	return fmt.Errorf("%s %d: (%d, %d) outside %dx%d area", kind, i, pos.X, pos.Y, p.Width, p.Height)
}

// Count returns the number of entities of a kind.
func (p *Problem) Count(kind EntityKind) int {
	switch kind {
	case KindPlane:
		return len(p.Planes)
	case KindTask:
		return len(p.Tasks)
	case KindStation:
		return len(p.Stations)
	default:
		return 0
	}
}

// Encode writes the problem as JSON. An empty indent writes compact JSON.
func (p *Problem) Encode(w io.Writer, indent string) error {
	enc := json.NewEncoder(w)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("encoding problem: %w", err)
	}
	return nil
}

// DecodeProblem reads a JSON problem. It does not validate it.
func DecodeProblem(r io.Reader) (*Problem, error) {
	var p Problem
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return nil, fmt.Errorf("decoding problem: %w", err)
	}
	return &p, nil
}
