package draw

import (
	"image"
	"image/color"
	"math"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"

	"github.com/elektrokombinacija/planes-gen/internal/vis/interact"
)

var (
	ColorArea       = color.NRGBA{R: 32, G: 36, B: 42, A: 255}
	ColorAreaBorder = color.NRGBA{R: 100, G: 120, B: 140, A: 255}
	ColorGrid       = color.NRGBA{R: 44, G: 49, B: 56, A: 255}
)

// GridSpacing returns a power-of-ten spacing in metres that keeps grid
// lines at least minPixels apart.
func GridSpacing(zoom, minPixels float32) float64 {
	if zoom <= 0 || minPixels <= 0 {
		return 0
	}
	return math.Pow(10, math.Ceil(math.Log10(float64(minPixels/zoom))))
}

// DrawArea fills the problem area and outlines its border.
func DrawArea(gtx layout.Context, width, height int, camera *interact.Camera) {
	x0, y0 := camera.WorldToScreen(0, 0)
	x1, y1 := camera.WorldToScreen(float64(width), float64(height))
	rect := image.Rect(int(x0), int(y0), int(x1), int(y1))
	paint.FillShape(gtx.Ops, ColorArea, clip.Rect(rect).Op())

	var path clip.Path
	path.Begin(gtx.Ops)
	path.MoveTo(f32.Pt(x0, y0))
	path.LineTo(f32.Pt(x1, y0))
	path.LineTo(f32.Pt(x1, y1))
	path.LineTo(f32.Pt(x0, y1))
	path.Close()
	paint.FillShape(gtx.Ops, ColorAreaBorder, clip.Stroke{Path: path.End(), Width: 1.5}.Op())
}

// DrawGrid draws grid lines every gridSize metres inside the problem area.
func DrawGrid(gtx layout.Context, width, height int, camera *interact.Camera, gridSize float64) {
	if gridSize <= 0 {
		return
	}
	bounds := gtx.Constraints.Max
	_, top := camera.WorldToScreen(0, 0)
	_, bottom := camera.WorldToScreen(0, float64(height))
	left, _ := camera.WorldToScreen(0, 0)
	right, _ := camera.WorldToScreen(float64(width), 0)

	for x := gridSize; x < float64(width); x += gridSize {
		sx, _ := camera.WorldToScreen(x, 0)
		if sx >= 0 && sx <= float32(bounds.X) {
			rect := image.Rect(int(sx), int(top), int(sx)+1, int(bottom))
			paint.FillShape(gtx.Ops, ColorGrid, clip.Rect(rect).Op())
		}
	}
	for y := gridSize; y < float64(height); y += gridSize {
		_, sy := camera.WorldToScreen(0, y)
		if sy >= 0 && sy <= float32(bounds.Y) {
			rect := image.Rect(int(left), int(sy), int(right), int(sy)+1)
			paint.FillShape(gtx.Ops, ColorGrid, clip.Rect(rect).Op())
		}
	}
}
