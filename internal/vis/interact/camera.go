// Package interact handles pan, zoom and picking in the problem area.
package interact

import (
	"gioui.org/io/pointer"
)

// Default zoom bounds in screen pixels per metre.
const (
	DefaultMinZoom = 1e-4
	DefaultMaxZoom = 50
)

// Camera maps world metres to screen pixels.
type Camera struct {
	OffsetX float32 // Pan offset in screen pixels
	OffsetY float32
	Zoom    float32 // Screen pixels per metre

	MinZoom float32
	MaxZoom float32

	// Last fitted area, for Refit.
	fitW, fitH float64
	fitMargin  float32
	fitted     bool

	dragging bool
	lastX    float32
	lastY    float32
}

// NewCamera creates a camera at the origin with unit zoom.
func NewCamera() *Camera {
	return &Camera{
		Zoom:    1,
		MinZoom: DefaultMinZoom,
		MaxZoom: DefaultMaxZoom,
	}
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(worldX, worldY float64) (screenX, screenY float32) {
	screenX = float32(worldX)*c.Zoom + c.OffsetX
	screenY = float32(worldY)*c.Zoom + c.OffsetY
	return
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(screenX, screenY float32) (worldX, worldY float64) {
	worldX = float64((screenX - c.OffsetX) / c.Zoom)
	worldY = float64((screenY - c.OffsetY) / c.Zoom)
	return
}

// Scale converts a world length to screen pixels.
func (c *Camera) Scale(metres float64) float32 {
	return float32(metres) * c.Zoom
}

// HandleEvent pans on secondary or middle drag and zooms on scroll around
// the pointer. It reports whether the view changed.
func (c *Camera) HandleEvent(ev pointer.Event) bool {
	switch ev.Kind {
	case pointer.Press:
		c.dragging = ev.Buttons.Contain(pointer.ButtonSecondary) || ev.Buttons.Contain(pointer.ButtonTertiary)
		c.lastX, c.lastY = ev.Position.X, ev.Position.Y

	case pointer.Drag:
		moved := false
		if c.dragging {
			c.Pan(ev.Position.X-c.lastX, ev.Position.Y-c.lastY)
			moved = true
		}
		c.lastX, c.lastY = ev.Position.X, ev.Position.Y
		return moved

	case pointer.Release, pointer.Cancel:
		c.dragging = false

	case pointer.Scroll:
		if ev.Scroll.Y == 0 {
			return false
		}
		factor := float32(1.1)
		if ev.Scroll.Y > 0 {
			factor = 1 / factor
		}
		c.ZoomBy(factor, ev.Position.X, ev.Position.Y)
		return true
	}
	return false
}

// Pan pans the camera by the given screen delta.
func (c *Camera) Pan(dx, dy float32) {
	c.OffsetX += dx
	c.OffsetY += dy
}

// ZoomBy zooms by factor, keeping the world point under (centerX, centerY) fixed.
func (c *Camera) ZoomBy(factor float32, centerX, centerY float32) {
	worldX, worldY := c.ScreenToWorld(centerX, centerY)

	c.Zoom = c.clamp(c.Zoom * factor)

	newScreenX, newScreenY := c.WorldToScreen(worldX, worldY)
	c.OffsetX += centerX - newScreenX
	c.OffsetY += centerY - newScreenY
}

// CenterOn centers the camera on a world position.
func (c *Camera) CenterOn(worldX, worldY float64, screenWidth, screenHeight float32) {
	c.OffsetX = screenWidth/2 - float32(worldX)*c.Zoom
	c.OffsetY = screenHeight/2 - float32(worldY)*c.Zoom
}

// FitBounds adjusts the camera so the world rectangle fills the screen less margin.
func (c *Camera) FitBounds(minX, minY, maxX, maxY float64, screenWidth, screenHeight float32, margin float32) {
	worldW := maxX - minX
	worldH := maxY - minY
	if worldW <= 0 || worldH <= 0 {
		return
	}

	availW := screenWidth - 2*margin
	availH := screenHeight - 2*margin
	if availW <= 0 || availH <= 0 {
		return
	}

	zoom := availW / float32(worldW)
	if zy := availH / float32(worldH); zy < zoom {
		zoom = zy
	}
	c.Zoom = c.clamp(zoom)

	c.CenterOn((minX+maxX)/2, (minY+maxY)/2, screenWidth, screenHeight)
}

// FitArea fits the problem area [0,width) x [0,height) and remembers it for Refit.
func (c *Camera) FitArea(width, height float64, screenWidth, screenHeight, margin float32) {
	c.fitW, c.fitH, c.fitMargin, c.fitted = width, height, margin, true
	c.FitBounds(0, 0, width, height, screenWidth, screenHeight, margin)
}

// Refit fits the last area again for a new screen size.
func (c *Camera) Refit(screenWidth, screenHeight float32) {
	if !c.fitted {
		return
	}
	c.FitBounds(0, 0, c.fitW, c.fitH, screenWidth, screenHeight, c.fitMargin)
}

// Fitted reports whether FitArea has been called.
func (c *Camera) Fitted() bool {
	return c.fitted
}

func (c *Camera) clamp(zoom float32) float32 {
	if zoom < c.MinZoom {
		return c.MinZoom
	}
	if zoom > c.MaxZoom {
		return c.MaxZoom
	}
	return zoom
}
