package render

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Camera is the viewport onto local (pre-camera) space. It never applies the
// isometric projection; the renderer hands it already projected positions.
type Camera struct {
	X, Y    float64 // camera centre in local space
	Zoom    float64 // zoom level (1.0 = default)
	MinZoom float64
	MaxZoom float64
	ScreenW int     // viewport width in pixels
	ScreenH int     // viewport height in pixels
	Speed   float64 // pan speed (pixels per second)
}

// NewCamera creates a camera centred on the local origin
func NewCamera(screenW, screenH int) *Camera {
	return &Camera{
		Zoom:    1.0,
		MinZoom: 0.25,
		MaxZoom: 4.0,
		ScreenW: screenW,
		ScreenH: screenH,
		Speed:   300,
	}
}

// Resize sets the viewport size; returns false when nothing changed
func (c *Camera) Resize(w, h int) bool {
	if w == c.ScreenW && h == c.ScreenH {
		return false
	}
	c.ScreenW = w
	c.ScreenH = h
	return true
}

// Pan moves the camera by a screen-pixel delta
func (c *Camera) Pan(dx, dy float64) {
	c.X += dx / c.Zoom
	c.Y += dy / c.Zoom
}

// SetZoom sets zoom level with clamping
func (c *Camera) SetZoom(z float64) {
	c.Zoom = math.Max(c.MinZoom, math.Min(c.MaxZoom, z))
}

// ZoomAt zooms toward a screen point, keeping that point stationary
func (c *Camera) ZoomAt(delta float64, screenX, screenY int) {
	lx, ly := c.ScreenToLocal(screenX, screenY)
	c.SetZoom(c.Zoom + delta)
	lx2, ly2 := c.ScreenToLocal(screenX, screenY)
	c.X += lx - lx2
	c.Y += ly - ly2
}

// GeoM returns the local-to-screen transform: the camera position lands on
// the viewport centre, scaled by zoom
func (c *Camera) GeoM() ebiten.GeoM {
	var m ebiten.GeoM
	m.Translate(-c.X, -c.Y)
	m.Scale(c.Zoom, c.Zoom)
	m.Translate(float64(c.ScreenW)/2, float64(c.ScreenH)/2)
	return m
}

// LocalToScreen converts a local position to screen pixels
func (c *Camera) LocalToScreen(lx, ly float64) (float64, float64) {
	sx := (lx-c.X)*c.Zoom + float64(c.ScreenW)/2
	sy := (ly-c.Y)*c.Zoom + float64(c.ScreenH)/2
	return sx, sy
}

// ScreenToLocal converts a screen pixel to local space
func (c *Camera) ScreenToLocal(sx, sy int) (float64, float64) {
	lx := (float64(sx)-float64(c.ScreenW)/2)/c.Zoom + c.X
	ly := (float64(sy)-float64(c.ScreenH)/2)/c.Zoom + c.Y
	return lx, ly
}
