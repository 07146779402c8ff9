// Package camera provides a top-down camera over the square ground.
package camera

// Camera maps the ground plane (x, z) onto the screen.
// The ground spans [-Half, Half] on both axes; the camera center stays on it.
type Camera struct {
	// Position is the camera center in ground coordinates
	X, Z float32

	// Zoom is screen pixels per ground unit
	Zoom float32

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	// Half is the ground half-extent
	Half float32

	// Zoom constraints
	MinZoom, MaxZoom float32
}

// New creates a camera centered on the ground, zoomed so all of it fits.
func New(viewportW, viewportH, half float32) *Camera {
	c := &Camera{
		ViewportW: viewportW,
		ViewportH: viewportH,
		Half:      half,
	}
	c.fitZoomLimits()
	c.Zoom = c.MinZoom
	return c
}

// fitZoomLimits sets MinZoom to the zoom at which the whole ground fits.
func (c *Camera) fitZoomLimits() {
	size := 2 * c.Half
	c.MinZoom = c.ViewportW / size
	if z := c.ViewportH / size; z < c.MinZoom {
		c.MinZoom = z
	}
	c.MaxZoom = c.MinZoom * 8
}

// WorldToScreen converts ground coordinates to screen coordinates.
// Ground +z maps to screen down.
func (c *Camera) WorldToScreen(wx, wz float32) (sx, sy float32) {
	sx = c.ViewportW/2 + (wx-c.X)*c.Zoom
	sy = c.ViewportH/2 + (wz-c.Z)*c.Zoom
	return sx, sy
}

// ScreenToWorld converts screen coordinates to ground coordinates.
// The result may lie off the ground.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wz float32) {
	wx = c.X + (sx-c.ViewportW/2)/c.Zoom
	wz = c.Z + (sy-c.ViewportH/2)/c.Zoom
	return wx, wz
}

// OnGround reports whether a ground point lies within the ground square.
func (c *Camera) OnGround(wx, wz float32) bool {
	return absf(wx) <= c.Half && absf(wz) <= c.Half
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
	c.fitZoomLimits()
	c.Zoom = clamp(c.Zoom, c.MinZoom, c.MaxZoom)
}

// Pan moves the camera by the given delta in screen pixels.
// The center is clamped to the ground.
func (c *Camera) Pan(dx, dy float32) {
	c.X = clamp(c.X+dx/c.Zoom, -c.Half, c.Half)
	c.Z = clamp(c.Z+dy/c.Zoom, -c.Half, c.Half)
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float32) {
	c.SetZoom(c.Zoom * factor)
}

// Reset centers the camera and fits the whole ground.
func (c *Camera) Reset() {
	c.X, c.Z = 0, 0
	c.Zoom = c.MinZoom
}

// VisibleWorldBounds returns the ground-coordinate bounds of the visible area
// as (minX, minZ, maxX, maxZ).
func (c *Camera) VisibleWorldBounds() (minX, minZ, maxX, maxZ float32) {
	halfW := c.ViewportW / (2 * c.Zoom)
	halfH := c.ViewportH / (2 * c.Zoom)
	return c.X - halfW, c.Z - halfH, c.X + halfW, c.Z + halfH
}

// absf returns the absolute value of a float32.
func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// clamp restricts a value to a range.
func clamp(x, min, max float32) float32 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
