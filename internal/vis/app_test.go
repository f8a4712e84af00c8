package vis

import (
	"testing"

	"gioui.org/io/key"

	"github.com/elektrokombinacija/planes-gen/internal/core"
)

func testProblem() *core.Problem {
	p := core.NewProblem(1000, 100, 100)
	p.Planes = append(p.Planes, core.NewPlane(core.Position{X: 10, Y: 20}, 13.9, 5000))
	p.Tasks = append(p.Tasks, &core.Task{Position: core.Position{X: 5, Y: 5}, Time: 400})
	return p
}

func TestNewAppRejectsInvalidProblem(t *testing.T) {
	if _, err := NewApp(nil, 100); err == nil {
		t.Error("NewApp(nil) succeeded")
	}
	p := testProblem()
	p.Tasks[0].Time = 5000
	if _, err := NewApp(p, 100); err == nil {
		t.Error("NewApp accepted a task after the horizon")
	}
}

func TestHandleKey(t *testing.T) {
	a, err := NewApp(testProblem(), 10)
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	pb := a.state.Playback

	a.handleKey(key.NameSpace)
	if !pb.Playing {
		t.Error("space did not start playback")
	}
	a.handleKey(key.NameRightArrow)
	if pb.Playing || pb.CurrentTime != 10 {
		t.Errorf("after step: playing=%v time=%v, want paused at 10", pb.Playing, pb.CurrentTime)
	}
	a.handleKey(key.NameLeftArrow)
	if pb.CurrentTime != 0 {
		t.Errorf("after step back: time=%v, want 0", pb.CurrentTime)
	}

	a.handleKey("+")
	if pb.Speed != 1.5 {
		t.Errorf("Speed = %v, want 1.5", pb.Speed)
	}

	pb.SetTime(700)
	a.handleKey(key.NameHome)
	if pb.CurrentTime != 0 {
		t.Errorf("Home left time at %v", pb.CurrentTime)
	}

	a.state.Selection.Select(core.KindPlane, 0)
	a.handleKey(key.NameEscape)
	if a.state.Selection.Active {
		t.Error("Escape did not clear the selection")
	}
}
