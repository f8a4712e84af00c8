// Package widgets provides Gio UI widgets for the problem viewer.
package widgets

import (
	"image"
	"image/color"

	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/widget/material"

	"github.com/elektrokombinacija/planes-gen/internal/core"
	"github.com/elektrokombinacija/planes-gen/internal/vis/draw"
	"github.com/elektrokombinacija/planes-gen/internal/vis/interact"
	"github.com/elektrokombinacija/planes-gen/internal/vis/state"
)

const (
	// NewestHighlighted is how many of the latest tasks are highlighted.
	NewestHighlighted = 20

	fitMargin   = 24
	gridPixels  = 40
	pickPixels  = 10
	clickSlopPx = 4
)

// Workspace is the main 2D view of the problem area.
type Workspace struct {
	state  *state.State
	camera *interact.Camera

	refit   bool
	size    image.Point
	primary bool
	pressX  float32
	pressY  float32
}

// NewWorkspace creates a new workspace widget.
func NewWorkspace(st *state.State, camera *interact.Camera) *Workspace {
	return &Workspace{
		state:  st,
		camera: camera,
	}
}

// Refit fits the whole area on the next frame.
func (w *Workspace) Refit() {
	w.refit = true
}

// Layout renders the workspace.
func (w *Workspace) Layout(gtx layout.Context, th *material.Theme) layout.Dimensions {
	bounds := gtx.Constraints.Max
	defer clip.Rect(image.Rect(0, 0, bounds.X, bounds.Y)).Push(gtx.Ops).Pop()

	paint.Fill(gtx.Ops, color.NRGBA{R: 25, G: 28, B: 32, A: 255})

	p := w.state.Problem
	sw, sh := float32(bounds.X), float32(bounds.Y)
	switch {
	case !w.camera.Fitted():
		w.camera.FitArea(float64(p.Width), float64(p.Height), sw, sh, fitMargin)
	case w.refit || (bounds != w.size && w.size.X > 0):
		w.camera.Refit(sw, sh)
	}
	w.refit = false
	w.size = bounds

	w.handlePointerEvents(gtx)

	draw.DrawArea(gtx, p.Width, p.Height, w.camera)
	draw.DrawGrid(gtx, p.Width, p.Height, w.camera, draw.GridSpacing(w.camera.Zoom, gridPixels))

	sel := w.state.Selection
	draw.DrawTasks(gtx, w.state.VisibleTasks(), w.camera)
	draw.DrawNewestTasks(gtx, w.state.Newest(NewestHighlighted), w.camera)
	draw.DrawStations(gtx, p.Stations, w.camera, func(i int) bool { return sel.Is(core.KindStation, i) })
	draw.DrawPlanes(gtx, p.Planes, w.camera, func(i int) bool { return sel.Is(core.KindPlane, i) })

	if pos, ok := w.selectedPosition(); ok {
		draw.DrawSelection(gtx, pos, w.camera)
	}

	return layout.Dimensions{Size: bounds}
}

func (w *Workspace) selectedPosition() (core.Position, bool) {
	sel := w.state.Selection
	if !sel.Active {
		return core.Position{}, false
	}
	p := w.state.Problem
	switch sel.Kind {
	case core.KindPlane:
		return p.Planes[sel.Index].Position, true
	case core.KindStation:
		return p.Stations[sel.Index].Position, true
	case core.KindTask:
		return p.Tasks[sel.Index].Position, true
	}
	return core.Position{}, false
}

func (w *Workspace) handlePointerEvents(gtx layout.Context) {
	area := clip.Rect(image.Rect(0, 0, gtx.Constraints.Max.X, gtx.Constraints.Max.Y)).Push(gtx.Ops)
	event.Op(gtx.Ops, w)
	area.Pop()

	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target:  w,
			Kinds:   pointer.Press | pointer.Drag | pointer.Release | pointer.Scroll,
			ScrollY: pointer.ScrollRange{Min: -10, Max: 10},
		})
		if !ok {
			break
		}
		if pe, ok := ev.(pointer.Event); ok {
			w.handlePointerEvent(pe)
		}
	}
}

func (w *Workspace) handlePointerEvent(ev pointer.Event) {
	w.camera.HandleEvent(ev)

	switch ev.Kind {
	case pointer.Press:
		w.primary = ev.Buttons.Contain(pointer.ButtonPrimary)
		w.pressX, w.pressY = ev.Position.X, ev.Position.Y
	case pointer.Release:
		// A primary release close to its press is a click.
		if !w.primary {
			return
		}
		w.primary = false
		dx, dy := ev.Position.X-w.pressX, ev.Position.Y-w.pressY
		if dx*dx+dy*dy <= clickSlopPx*clickSlopPx {
			w.pick(ev.Position.X, ev.Position.Y)
		}
	}
}

func (w *Workspace) pick(screenX, screenY float32) {
	wx, wy := w.camera.ScreenToWorld(screenX, screenY)
	radius := float64(pickPixels / w.camera.Zoom)
	if kind, i, ok := w.state.EntityAt(wx, wy, radius); ok {
		w.state.Selection.Select(kind, i)
		return
	}
	w.state.Selection.Clear()
}
