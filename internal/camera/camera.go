// Package camera owns the world view window uploaded to the sprite pass as
// its camera uniform.
package camera

import (
	"github.com/paulmach/orb"

	"spriteview/internal/shading"
)

const (
	// World-unit limits for the visible window width.
	MinWorldWidth = 64
	MaxWorldWidth = 16384

	zoomStep = 1.25
)

// Camera is the host-side view window. X and Y locate the window's
// bottom-left corner in world space (that corner, not the center, is what
// the shading program's screen_pos field anchors); Width and Height are the
// window extent in world units.
type Camera struct {
	X float64
	Y float64

	Width  float64
	Height float64

	// Viewport dimensions in pixels, for cursor conversions.
	ViewportWidth  int
	ViewportHeight int

	isDragging bool
	lastDragX  float64
	lastDragY  float64
}

// NewCamera creates a camera showing the world window with bottom-left
// corner (x, y) and the given extent.
func NewCamera(x, y, width, height float64, viewportWidth, viewportHeight int) *Camera {
	return &Camera{
		X:              x,
		Y:              y,
		Width:          width,
		Height:         height,
		ViewportWidth:  viewportWidth,
		ViewportHeight: viewportHeight,
	}
}

// SetViewport updates the viewport pixel dimensions.
func (c *Camera) SetViewport(width, height int) {
	c.ViewportWidth = width
	c.ViewportHeight = height
}

// GPU returns the uniform record for the current window.
func (c *Camera) GPU() shading.Camera {
	return shading.Camera{
		ScreenPos:  [2]float32{float32(c.X), float32(c.Y)},
		ScreenSize: [2]float32{float32(c.Width), float32(c.Height)},
	}
}

// VisibleBound returns the world-space window [X, X+Width] x [Y, Y+Height].
func (c *Camera) VisibleBound() orb.Bound {
	return orb.Bound{
		Min: orb.Point{c.X, c.Y},
		Max: orb.Point{c.X + c.Width, c.Y + c.Height},
	}
}

// worldPerPixel converts one pixel to world units at the current zoom.
func (c *Camera) worldPerPixel() (wx, wy float64) {
	if c.ViewportWidth == 0 || c.ViewportHeight == 0 {
		return 1, 1
	}
	return c.Width / float64(c.ViewportWidth), c.Height / float64(c.ViewportHeight)
}

// Pan moves the window by the given cursor pixel delta. Dragging right
// (positive deltaX) moves the window left so the content follows the
// cursor; cursor Y grows downward, world Y upward.
func (c *Camera) Pan(deltaX, deltaY float64) {
	wx, wy := c.worldPerPixel()
	c.X -= deltaX * wx
	c.Y += deltaY * wy
}

// ScreenToWorld converts a cursor position to world coordinates.
func (c *Camera) ScreenToWorld(screenX, screenY float64) (x, y float64) {
	wx, wy := c.worldPerPixel()
	x = c.X + screenX*wx
	y = c.Y + (float64(c.ViewportHeight)-screenY)*wy
	return x, y
}

// ZoomAtPoint zooms in (positive delta) or out, keeping the world point
// under the cursor fixed.
func (c *Camera) ZoomAtPoint(delta int, screenX, screenY float64) {
	factor := zoomStep
	if delta > 0 {
		factor = 1 / zoomStep
	}

	newWidth := c.Width * factor
	if newWidth < MinWorldWidth || newWidth > MaxWorldWidth {
		return
	}

	anchorX, anchorY := c.ScreenToWorld(screenX, screenY)

	c.Width *= factor
	c.Height *= factor

	// Re-anchor so the cursor still points at the same world position.
	newAnchorX, newAnchorY := c.ScreenToWorld(screenX, screenY)
	c.X += anchorX - newAnchorX
	c.Y += anchorY - newAnchorY
}

// ZoomIn zooms about the window center.
func (c *Camera) ZoomIn() {
	c.ZoomAtPoint(1, float64(c.ViewportWidth)/2, float64(c.ViewportHeight)/2)
}

// ZoomOut zooms out about the window center.
func (c *Camera) ZoomOut() {
	c.ZoomAtPoint(-1, float64(c.ViewportWidth)/2, float64(c.ViewportHeight)/2)
}

// StartDrag begins a drag operation.
func (c *Camera) StartDrag(x, y float64) {
	c.isDragging = true
	c.lastDragX = x
	c.lastDragY = y
}

// Drag continues a drag operation.
func (c *Camera) Drag(x, y float64) {
	if !c.isDragging {
		return
	}
	c.Pan(x-c.lastDragX, y-c.lastDragY)
	c.lastDragX = x
	c.lastDragY = y
}

// EndDrag ends a drag operation.
func (c *Camera) EndDrag() {
	c.isDragging = false
}

// IsDragging returns whether a drag is in progress.
func (c *Camera) IsDragging() bool {
	return c.isDragging
}
