package widgets

import (
	"fmt"
	"image"
	"image/color"

	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget/material"

	"github.com/elektrokombinacija/planes-gen/internal/vis/state"
)

const (
	timelineHeight = 110
	timelineMargin = 20
	barsTop        = 24
	barsHeight     = 56
	trackHeight    = 6
)

var (
	colorBar        = color.NRGBA{R: 90, G: 110, B: 130, A: 255}
	colorBarPlayed  = color.NRGBA{R: 255, G: 150, B: 100, A: 255}
	colorBarCurrent = color.NRGBA{R: 255, G: 230, B: 120, A: 255}
)

// Timeline shows the arrival histogram above a time scrubber.
type Timeline struct {
	state    *state.State
	dragging bool
}

// NewTimeline creates a new timeline widget.
func NewTimeline(st *state.State) *Timeline {
	return &Timeline{
		state: st,
	}
}

// Layout renders the timeline.
func (t *Timeline) Layout(gtx layout.Context, th *material.Theme) layout.Dimensions {
	width := gtx.Constraints.Max.X
	rect := image.Rect(0, 0, width, timelineHeight)
	paint.FillShape(gtx.Ops, color.NRGBA{R: 35, G: 38, B: 42, A: 255}, clip.Rect(rect).Op())

	trackWidth := width - 2*timelineMargin
	t.handlePointerEvents(gtx, trackWidth)

	t.drawBars(gtx, trackWidth)

	trackY := barsTop + barsHeight + 10
	trackRect := image.Rect(timelineMargin, trackY-trackHeight/2, timelineMargin+trackWidth, trackY+trackHeight/2)
	paint.FillShape(gtx.Ops, color.NRGBA{R: 60, G: 65, B: 70, A: 255}, clip.Rect(trackRect).Op())

	fillWidth := int(float64(trackWidth) * t.state.Playback.Progress())
	if fillWidth > 0 {
		fillRect := image.Rect(timelineMargin, trackY-trackHeight/2, timelineMargin+fillWidth, trackY+trackHeight/2)
		paint.FillShape(gtx.Ops, color.NRGBA{R: 100, G: 180, B: 255, A: 255}, clip.Rect(fillRect).Op())
	}

	playheadX := timelineMargin + fillWidth
	const playheadSize = 12
	playheadRect := image.Rect(playheadX-playheadSize/2, trackY-playheadSize/2, playheadX+playheadSize/2, trackY+playheadSize/2)
	paint.FillShape(gtx.Ops, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, clip.Rect(playheadRect).Op())

	t.drawLabels(gtx, th)

	return layout.Dimensions{Size: image.Point{X: width, Y: timelineHeight}}
}

// drawBars draws one bar per histogram bin, scaled to the fullest bin.
func (t *Timeline) drawBars(gtx layout.Context, trackWidth int) {
	h := t.state.Histogram
	peak := h.Max()
	if peak <= 0 || trackWidth <= 0 {
		return
	}
	current := t.state.CurrentBin()
	n := len(h.Counts)
	bottom := barsTop + barsHeight
	for i, c := range h.Counts {
		x0 := timelineMargin + i*trackWidth/n
		x1 := timelineMargin + (i+1)*trackWidth/n
		if x1-x0 > 2 {
			x1--
		}
		top := bottom - int(float64(barsHeight)*c/peak)
		if c > 0 && top == bottom {
			top--
		}
		col := colorBar
		switch {
		case i == current:
			col = colorBarCurrent
		case i < current:
			col = colorBarPlayed
		}
		paint.FillShape(gtx.Ops, col, clip.Rect(image.Rect(x0, top, x1, bottom)).Op())
	}
}

func (t *Timeline) drawLabels(gtx layout.Context, th *material.Theme) {
	pb := t.state.Playback

	current := material.Label(th, 12, state.FormatTime(pb.CurrentTime))
	current.Color = color.NRGBA{R: 200, G: 200, B: 200, A: 255}

	tasks := material.Label(th, 12, fmt.Sprintf("%d/%d tasks  %.1fx", t.state.Appeared(), len(t.state.Problem.Tasks), pb.Speed))
	tasks.Color = color.NRGBA{R: 150, G: 180, B: 200, A: 255}

	total := material.Label(th, 12, state.FormatTime(pb.MaxTime))
	total.Color = color.NRGBA{R: 150, G: 150, B: 150, A: 255}

	layout.Inset{Top: unit.Dp(4), Left: unit.Dp(timelineMargin), Right: unit.Dp(timelineMargin)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Horizontal, Spacing: layout.SpaceBetween}.Layout(gtx,
			layout.Rigid(current.Layout),
			layout.Rigid(tasks.Layout),
			layout.Rigid(total.Layout),
		)
	})
}

func (t *Timeline) handlePointerEvents(gtx layout.Context, trackWidth int) {
	area := clip.Rect(image.Rect(0, barsTop, gtx.Constraints.Max.X, timelineHeight)).Push(gtx.Ops)
	event.Op(gtx.Ops, t)
	area.Pop()

	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: t,
			Kinds:  pointer.Press | pointer.Drag | pointer.Release | pointer.Cancel,
		})
		if !ok {
			break
		}
		pe, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		switch pe.Kind {
		case pointer.Press:
			t.dragging = true
			t.seek(pe.Position.X, trackWidth)
		case pointer.Drag:
			if t.dragging {
				t.seek(pe.Position.X, trackWidth)
			}
		case pointer.Release, pointer.Cancel:
			t.dragging = false
		}
	}
}

// seek moves playback to the time under screenX.
func (t *Timeline) seek(screenX float32, trackWidth int) {
	if trackWidth <= 0 {
		return
	}
	progress := (float64(screenX) - timelineMargin) / float64(trackWidth)
	t.state.Playback.Pause()
	t.state.Playback.SetTime(progress * t.state.Playback.MaxTime)
}
