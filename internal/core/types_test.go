package core

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"
)

func TestPositionWithin(t *testing.T) {
	tests := []struct {
		pos  Position
		want bool
	}{
		{Position{0, 0}, true},
		{Position{9, 9}, true},
		{Position{10, 0}, false},
		{Position{0, 10}, false},
		{Position{-1, 3}, false},
		{Position{3, -1}, false},
	}

	for _, tt := range tests {
		got := tt.pos.Within(10, 10)
		if got != tt.want {
			t.Errorf("%+v.Within(10, 10) = %v, want %v", tt.pos, got, tt.want)
		}
	}
}

func TestKmhToMps(t *testing.T) {
	got := KmhToMps(DefaultSpeedKmh)
	want := 50 / 3.6
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("KmhToMps(50) = %v, want %v", got, want)
	}
}

// The source generator assigned the battery twice (3600*3, then 5000).
// Which value was intended is an open question; 5000 is kept because it was
// the value actually emitted.
func TestDefaultBatteryIsFinalAssignment(t *testing.T) {
	if DefaultBattery != 5000 {
		t.Errorf("DefaultBattery = %v, want 5000", DefaultBattery)
	}
	if DefaultBattery == 3600*3 {
		t.Errorf("DefaultBattery uses the overwritten value")
	}
}

func TestPlaneRange(t *testing.T) {
	p := NewPlane(Position{}, 10, 100)
	if got := p.Range(); got != 1000 {
		t.Errorf("Range() = %v, want 1000", got)
	}
}

func TestProblemValidate(t *testing.T) {
	valid := func() *Problem {
		p := NewProblem(100, 10, 10)
		p.Planes = append(p.Planes, NewPlane(Position{1, 2}, 1, 1))
		p.Tasks = append(p.Tasks, &Task{Position: Position{9, 9}, Time: 100})
		p.Stations = append(p.Stations, NewStation(Position{0, 0}))
		return p
	}

	tests := []struct {
		name    string
		mutate  func(p *Problem)
		wantErr string
	}{
		{"valid", func(p *Problem) {}, ""},
		{"zero duration", func(p *Problem) { p.Duration = 0 }, "duration must be positive"},
		{"zero width", func(p *Problem) { p.Width = 0 }, "area must be positive"},
		{"plane outside", func(p *Problem) { p.Planes[0].X = 10 }, "plane 0"},
		{"task outside", func(p *Problem) { p.Tasks[0].Y = -1 }, "task 0"},
		{"task late", func(p *Problem) { p.Tasks[0].Time = 101 }, "time 101 outside"},
		{"task early", func(p *Problem) { p.Tasks[0].Time = -1 }, "time -1 outside"},
		{"station outside", func(p *Problem) { p.Stations[0].X = 11 }, "station 0"},
		{"nil station", func(p *Problem) { p.Stations[0] = nil }, "station 0: missing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid()
			tt.mutate(p)
			err := p.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestProblemJSONFields(t *testing.T) {
	p := NewProblem(60, 5, 5)
	p.Planes = append(p.Planes, NewPlane(Position{1, 1}, 2, 3))
	p.Tasks = append(p.Tasks, &Task{Position: Position{2, 2}, Time: 30})
	p.Stations = append(p.Stations, NewStation(Position{3, 3}))

	var buf bytes.Buffer
	if err := p.Encode(&buf, ""); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(buf.Bytes(), &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"duration", "width", "height", "planes", "tasks", "stations"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("missing top-level field %q", key)
		}
	}

	plane := raw["planes"].([]any)[0].(map[string]any)
	for _, key := range []string{"x", "y", "speed", "battery"} {
		if _, ok := plane[key]; !ok {
			t.Errorf("plane missing field %q", key)
		}
	}
	task := raw["tasks"].([]any)[0].(map[string]any)
	if task["time"].(float64) != 30 {
		t.Errorf("task time = %v, want 30", task["time"])
	}

	decoded, err := DecodeProblem(&buf)
	if err != nil {
		t.Fatalf("DecodeProblem: %v", err)
	}
	if decoded.Count(KindTask) != 1 || decoded.Tasks[0].X != 2 {
		t.Errorf("decoded tasks = %+v", decoded.Tasks)
	}
}

func TestTaskAppearedBy(t *testing.T) {
	task := &Task{Time: 10}
	if task.AppearedBy(9.9) {
		t.Error("task should not appear before its time")
	}
	if !task.AppearedBy(10) {
		t.Error("task should appear at its time")
	}
}
