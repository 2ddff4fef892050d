// Package camera maps the unit-square torus the animals live on onto the
// window, with pan and zoom.
package camera

import "math"

// Camera controls the viewport into the simulation world.
// World coordinates wrap at 1 on both axes.
type Camera struct {
	// Position is the camera center in world coordinates
	X, Y float32

	// Zoom level (1.0 = whole world fits the shorter window side)
	Zoom float32

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	// Zoom constraints
	MinZoom, MaxZoom float32
}

// New creates a camera centered on the world with the whole world visible.
func New(viewportW, viewportH float32) *Camera {
	return &Camera{
		X:         0.5,
		Y:         0.5,
		Zoom:      1.0,
		ViewportW: viewportW,
		ViewportH: viewportH,
		MinZoom:   1.0,
		MaxZoom:   8.0,
	}
}

// Scale returns screen pixels per world unit.
func (c *Camera) Scale() float32 {
	return min(c.ViewportW, c.ViewportH) * c.Zoom
}

// WorldToScreen converts world coordinates to screen coordinates along the
// shortest toroidal path from the camera center.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	scale := c.Scale()
	sx = c.ViewportW/2 + toroidalDelta(wx, c.X)*scale
	sy = c.ViewportH/2 + toroidalDelta(wy, c.Y)*scale
	return sx, sy
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	scale := c.Scale()
	wx = wrap(c.X + (sx-c.ViewportW/2)/scale)
	wy = wrap(c.Y + (sy-c.ViewportH/2)/scale)
	return wx, wy
}

// IsVisible reports whether a circle at (wx, wy) with the given world
// radius could be on screen.
func (c *Camera) IsVisible(wx, wy, radius float32) bool {
	scale := c.Scale()
	halfW := c.ViewportW/(2*scale) + radius
	halfH := c.ViewportH/(2*scale) + radius
	return absf(toroidalDelta(wx, c.X)) <= halfW && absf(toroidalDelta(wy, c.Y)) <= halfH
}

// Resize updates viewport dimensions.
func (c *Camera) Resize(viewportW, viewportH float32) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
}

// Pan moves the camera by the given delta in screen pixels.
func (c *Camera) Pan(dx, dy float32) {
	scale := c.Scale()
	c.X = wrap(c.X + dx/scale)
	c.Y = wrap(c.Y + dy/scale)
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = min(max(zoom, c.MinZoom), c.MaxZoom)
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float32) {
	c.SetZoom(c.Zoom * factor)
}

// Reset returns the camera to the default position and zoom.
func (c *Camera) Reset() {
	c.X = 0.5
	c.Y = 0.5
	c.Zoom = 1.0
}

// toroidalDelta computes the shortest signed distance from 'from' to 'to'
// on a circle of circumference 1.
func toroidalDelta(to, from float32) float32 {
	d := to - from
	if d > 0.5 {
		d -= 1
	} else if d < -0.5 {
		d += 1
	}
	return d
}

// wrap maps x into [0, 1).
func wrap(x float32) float32 {
	r := x - float32(math.Floor(float64(x)))
	if r >= 1 {
		r = 0
	}
	return r
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
