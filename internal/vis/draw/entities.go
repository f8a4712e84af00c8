// Package draw provides rendering functions for the problem viewer.
package draw

import (
	"image"
	"image/color"
	"math"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"

	"github.com/elektrokombinacija/planes-gen/internal/core"
	"github.com/elektrokombinacija/planes-gen/internal/vis/interact"
)

// Entity colors
var (
	ColorPlane      = color.NRGBA{R: 100, G: 200, B: 255, A: 255} // Cyan
	ColorStation    = color.NRGBA{R: 80, G: 180, B: 100, A: 255}  // Green
	ColorTask       = color.NRGBA{R: 255, G: 150, B: 100, A: 160} // Orange, translucent
	ColorTaskNewest = color.NRGBA{R: 255, G: 230, B: 120, A: 255}
	ColorSelected   = color.NRGBA{R: 255, G: 255, B: 100, A: 255}
)

// Glyph sizes in screen pixels; they do not scale with zoom.
const (
	PlaneSize   = 14
	StationSize = 12
	TaskSize    = 3
	NewestSize  = 9
)

// DrawPlanes draws every plane as a triangle pointing up.
func DrawPlanes(gtx layout.Context, planes []*core.Plane, camera *interact.Camera, selected func(i int) bool) {
	for i, pl := range planes {
		x, y := camera.WorldToScreen(float64(pl.X), float64(pl.Y))
		col := ColorPlane
		if selected(i) {
			col = ColorSelected
		}
		drawTriangle(gtx, x, y, PlaneSize, col)
	}
}

// DrawStations draws every station as a square with an outline.
func DrawStations(gtx layout.Context, stations []*core.Station, camera *interact.Camera, selected func(i int) bool) {
	for i, st := range stations {
		x, y := camera.WorldToScreen(float64(st.X), float64(st.Y))
		col := ColorStation
		if selected(i) {
			col = ColorSelected
		}
		drawSquare(gtx, x, y, StationSize, col)
		drawCircleOutline(gtx, x, y, StationSize, col, 1.5)
	}
}

// DrawTasks draws tasks as small squares. Tasks off screen are skipped.
func DrawTasks(gtx layout.Context, tasks []*core.Task, camera *interact.Camera) {
	bounds := gtx.Constraints.Max
	half := TaskSize / 2
	for _, t := range tasks {
		x, y := camera.WorldToScreen(float64(t.X), float64(t.Y))
		ix, iy := int(x), int(y)
		if ix < -TaskSize || iy < -TaskSize || ix > bounds.X+TaskSize || iy > bounds.Y+TaskSize {
			continue
		}
		rect := image.Rect(ix-half, iy-half, ix-half+TaskSize, iy-half+TaskSize)
		paint.FillShape(gtx.Ops, ColorTask, clip.Rect(rect).Op())
	}
}

// DrawNewestTasks highlights recently appeared tasks, fading with age rank.
func DrawNewestTasks(gtx layout.Context, newest []*core.Task, camera *interact.Camera) {
	for rank := len(newest) - 1; rank >= 0; rank-- {
		t := newest[rank]
		x, y := camera.WorldToScreen(float64(t.X), float64(t.Y))
		col := ColorTaskNewest
		col.A = uint8(255 - 200*rank/len(newest))
		drawFilledCircle(gtx, x, y, NewestSize/2, col)
	}
}

// DrawSelection rings the selected entity.
func DrawSelection(gtx layout.Context, pos core.Position, camera *interact.Camera) {
	x, y := camera.WorldToScreen(float64(pos.X), float64(pos.Y))
	drawCircleOutline(gtx, x, y, PlaneSize, ColorSelected, 2)
}

func drawSquare(gtx layout.Context, cx, cy, size float32, col color.NRGBA) {
	halfSize := size / 2
	var path clip.Path
	path.Begin(gtx.Ops)
	path.MoveTo(f32.Pt(cx-halfSize, cy-halfSize))
	path.LineTo(f32.Pt(cx+halfSize, cy-halfSize))
	path.LineTo(f32.Pt(cx+halfSize, cy+halfSize))
	path.LineTo(f32.Pt(cx-halfSize, cy+halfSize))
	path.Close()

	paint.FillShape(gtx.Ops, col, clip.Outline{Path: path.End()}.Op())
}

func drawTriangle(gtx layout.Context, cx, cy, size float32, col color.NRGBA) {
	h := size * float32(math.Sqrt(3)) / 2
	var path clip.Path
	path.Begin(gtx.Ops)
	path.MoveTo(f32.Pt(cx, cy-2*h/3))
	path.LineTo(f32.Pt(cx+size/2, cy+h/3))
	path.LineTo(f32.Pt(cx-size/2, cy+h/3))
	path.Close()

	paint.FillShape(gtx.Ops, col, clip.Outline{Path: path.End()}.Op())
}

func drawFilledCircle(gtx layout.Context, cx, cy, radius float32, col color.NRGBA) {
	paint.FillShape(gtx.Ops, col, clip.Outline{Path: circlePath(gtx, cx, cy, radius, 12)}.Op())
}

func drawCircleOutline(gtx layout.Context, cx, cy, radius float32, col color.NRGBA, width float32) {
	paint.FillShape(gtx.Ops, col, clip.Stroke{Path: circlePath(gtx, cx, cy, radius, 24), Width: width}.Op())
}

func circlePath(gtx layout.Context, cx, cy, radius float32, segments int) clip.PathSpec {
	var path clip.Path
	path.Begin(gtx.Ops)
	path.MoveTo(f32.Pt(cx+radius, cy))
	for i := 1; i <= segments; i++ {
		angle := float64(i) * 2 * math.Pi / float64(segments)
		path.LineTo(f32.Pt(cx+radius*float32(math.Cos(angle)), cy+radius*float32(math.Sin(angle))))
	}
	path.Close()
	return path.End()
}
