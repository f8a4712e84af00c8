package interact

import (
	"math"
	"testing"

	"gioui.org/f32"
	"gioui.org/io/pointer"
)

func near(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestWorldScreenRoundTrip(t *testing.T) {
	c := NewCamera()
	c.Zoom = 0.25
	c.Pan(40, -10)

	sx, sy := c.WorldToScreen(1000, 2000)
	if sx != 290 || sy != 490 {
		t.Errorf("WorldToScreen = (%v, %v), want (290, 490)", sx, sy)
	}
	wx, wy := c.ScreenToWorld(sx, sy)
	if !near(wx, 1000, 1e-3) || !near(wy, 2000, 1e-3) {
		t.Errorf("ScreenToWorld = (%v, %v), want (1000, 2000)", wx, wy)
	}
	if got := c.Scale(40); got != 10 {
		t.Errorf("Scale(40) = %v, want 10", got)
	}
}

func TestFitAreaLargeProblem(t *testing.T) {
	c := NewCamera()
	c.FitArea(10000, 10000, 1200, 800, 50)

	// Height is the tighter axis: 700 px for 10 km.
	if !near(float64(c.Zoom), 0.07, 1e-6) {
		t.Errorf("Zoom = %v, want 0.07", c.Zoom)
	}
	sx, sy := c.WorldToScreen(5000, 5000)
	if !near(float64(sx), 600, 1e-3) || !near(float64(sy), 400, 1e-3) {
		t.Errorf("area centre on screen at (%v, %v), want (600, 400)", sx, sy)
	}
	if !c.Fitted() {
		t.Error("Fitted() = false after FitArea")
	}

	c.ZoomBy(3, 0, 0)
	c.Pan(100, 100)
	c.Refit(1200, 800)
	if !near(float64(c.Zoom), 0.07, 1e-6) {
		t.Errorf("Zoom after Refit = %v, want 0.07", c.Zoom)
	}
}

func TestFitBoundsIgnoresDegenerateInput(t *testing.T) {
	c := NewCamera()
	c.FitBounds(0, 0, 0, 100, 800, 600, 10)
	c.FitBounds(0, 0, 100, 100, 10, 10, 10)
	if c.Zoom != 1 || c.OffsetX != 0 || c.OffsetY != 0 {
		t.Errorf("camera changed: %+v", c)
	}
	c.Refit(800, 600)
	if c.Zoom != 1 {
		t.Error("Refit without a fitted area changed the zoom")
	}
}

func TestZoomByKeepsAnchorAndClamps(t *testing.T) {
	c := NewCamera()
	wx, wy := c.ScreenToWorld(300, 200)
	c.ZoomBy(2, 300, 200)
	ax, ay := c.ScreenToWorld(300, 200)
	if !near(ax, wx, 1e-3) || !near(ay, wy, 1e-3) {
		t.Errorf("anchor moved from (%v, %v) to (%v, %v)", wx, wy, ax, ay)
	}

	c.ZoomBy(1e6, 0, 0)
	if c.Zoom != DefaultMaxZoom {
		t.Errorf("Zoom = %v, want %v", c.Zoom, float32(DefaultMaxZoom))
	}
	c.ZoomBy(1e-12, 0, 0)
	if c.Zoom != DefaultMinZoom {
		t.Errorf("Zoom = %v, want %v", c.Zoom, float32(DefaultMinZoom))
	}
}

func TestHandleEventPanAndScroll(t *testing.T) {
	c := NewCamera()

	c.HandleEvent(pointer.Event{Kind: pointer.Press, Buttons: pointer.ButtonSecondary, Position: f32.Pt(10, 10)})
	if !c.HandleEvent(pointer.Event{Kind: pointer.Drag, Buttons: pointer.ButtonSecondary, Position: f32.Pt(30, 5)}) {
		t.Error("secondary drag did not pan")
	}
	if c.OffsetX != 20 || c.OffsetY != -5 {
		t.Errorf("offset = (%v, %v), want (20, -5)", c.OffsetX, c.OffsetY)
	}
	c.HandleEvent(pointer.Event{Kind: pointer.Release, Position: f32.Pt(30, 5)})

	// Primary drag is reserved for picking.
	c.HandleEvent(pointer.Event{Kind: pointer.Press, Buttons: pointer.ButtonPrimary, Position: f32.Pt(0, 0)})
	if c.HandleEvent(pointer.Event{Kind: pointer.Drag, Buttons: pointer.ButtonPrimary, Position: f32.Pt(50, 50)}) {
		t.Error("primary drag panned")
	}

	before := c.Zoom
	c.HandleEvent(pointer.Event{Kind: pointer.Scroll, Scroll: f32.Pt(0, -1), Position: f32.Pt(100, 100)})
	if c.Zoom <= before {
		t.Errorf("scroll up did not zoom in: %v -> %v", before, c.Zoom)
	}
}
