// Package camera maps the stage's ground plane to screen pixels.
package camera

// Camera is a top-down view of the bounded stage.
// World X maps to screen x and world Z maps to screen y.
type Camera struct {
	// Position is the camera center in world coordinates
	X, Z float32

	// Zoom is screen pixels per world unit
	Zoom float32

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	// StageSize is the side of the square stage, which spans [0, StageSize]
	StageSize float32

	// Zoom constraints
	MinZoom, MaxZoom float32
}

// New creates a camera centered on the stage, zoomed so the whole stage fits.
func New(viewportW, viewportH, stageSize float32) *Camera {
	c := &Camera{
		ViewportW: viewportW,
		ViewportH: viewportH,
		StageSize: stageSize,
	}
	c.updateLimits()
	c.Reset()
	return c
}

// WorldToScreen converts a ground-plane point to screen coordinates.
func (c *Camera) WorldToScreen(wx, wz float32) (sx, sy float32) {
	sx = c.ViewportW/2 + (wx-c.X)*c.Zoom
	sy = c.ViewportH/2 + (wz-c.Z)*c.Zoom
	return sx, sy
}

// ScreenToWorld converts screen coordinates to a ground-plane point.
// The result may lie outside the stage; see OnStage.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wz float32) {
	wx = c.X + (sx-c.ViewportW/2)/c.Zoom
	wz = c.Z + (sy-c.ViewportH/2)/c.Zoom
	return wx, wz
}

// OnStage reports whether a ground-plane point lies inside the stage.
func (c *Camera) OnStage(wx, wz float32) bool {
	return wx >= 0 && wx <= c.StageSize && wz >= 0 && wz <= c.StageSize
}

// IsVisible returns true if a circle at (wx, wz) with given radius
// could be visible on screen (conservative check for culling).
func (c *Camera) IsVisible(wx, wz, radius float32) bool {
	halfW := c.ViewportW/(2*c.Zoom) + radius
	halfH := c.ViewportH/(2*c.Zoom) + radius
	return absf(wx-c.X) <= halfW && absf(wz-c.Z) <= halfH
}

// Resize updates viewport dimensions and recalculates zoom constraints.
func (c *Camera) Resize(viewportW, viewportH float32) {
	if viewportW == c.ViewportW && viewportH == c.ViewportH {
		return
	}
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	c.updateLimits()
	c.SetZoom(c.Zoom)
}

// Pan moves the camera by the given delta in screen pixels.
// The center stays on the stage.
func (c *Camera) Pan(dx, dy float32) {
	c.X = clamp(c.X+dx/c.Zoom, 0, c.StageSize)
	c.Z = clamp(c.Z+dy/c.Zoom, 0, c.StageSize)
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float32) {
	c.SetZoom(c.Zoom * factor)
}

// Reset centers the camera and fits the stage to the viewport.
func (c *Camera) Reset() {
	c.X = c.StageSize / 2
	c.Z = c.StageSize / 2
	c.Zoom = c.fitZoom()
}

// VisibleWorldBounds returns the ground-plane bounds of the visible area.
func (c *Camera) VisibleWorldBounds() (minX, minZ, maxX, maxZ float32) {
	halfW := c.ViewportW / (2 * c.Zoom)
	halfH := c.ViewportH / (2 * c.Zoom)
	return c.X - halfW, c.Z - halfH, c.X + halfW, c.Z + halfH
}

// fitZoom is the zoom at which the whole stage fits the viewport.
func (c *Camera) fitZoom() float32 {
	return min(c.ViewportW, c.ViewportH) / c.StageSize
}

func (c *Camera) updateLimits() {
	fit := c.fitZoom()
	c.MinZoom = fit / 2
	c.MaxZoom = fit * 8
}

// absf returns the absolute value of a float32.
func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// clamp restricts a value to a range.
func clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
