// Package view maps between world coordinates (meters, y up) and screen
// coordinates (pixels, y down) under pan and zoom.
package view

import (
	"math"

	"github.com/alexiusacademia/goframe/internal/geom"
)

// Transform places the world on screen. Scale is in pixels per meter.
type Transform struct {
	CenterX float64 `json:"centerX"` // world point shown at the viewport center
	CenterY float64 `json:"centerY"`
	Scale   float64 `json:"scale"`
}

// Viewport is the size of the rendering surface in pixels
type Viewport struct {
	Width  float64
	Height float64
}

// ScreenToWorld converts a pixel position into world coordinates.
func (t Transform) ScreenToWorld(vp Viewport, p geom.Point) geom.Point {
	return geom.Point{
		X: t.CenterX + (p.X-vp.Width/2)/t.Scale,
		Y: t.CenterY - (p.Y-vp.Height/2)/t.Scale,
	}
}

// WorldToScreen converts a world position into pixels.
func (t Transform) WorldToScreen(vp Viewport, p geom.Point) geom.Point {
	return geom.Point{
		X: vp.Width/2 + (p.X-t.CenterX)*t.Scale,
		Y: vp.Height/2 - (p.Y-t.CenterY)*t.Scale,
	}
}

// Clamp limits scale to [minScale, maxScale].
func Clamp(scale, minScale, maxScale float64) float64 {
	return math.Min(math.Max(scale, minScale), maxScale)
}

// ZoomToPoint scales the view by multiplier while keeping worldPoint at the
// same screen position. At the scale bounds the input is returned unchanged.
func ZoomToPoint(current Transform, worldPoint geom.Point, multiplier, minScale, maxScale float64) Transform {
	newScale := Clamp(current.Scale*multiplier, minScale, maxScale)
	if newScale == current.Scale {
		return current
	}

	ratio := current.Scale / newScale
	offsetX := (worldPoint.X - current.CenterX) * ratio
	offsetY := (worldPoint.Y - current.CenterY) * ratio

	return Transform{
		CenterX: worldPoint.X - offsetX,
		CenterY: worldPoint.Y - offsetY,
		Scale:   newScale,
	}
}

// Pan moves the view by a pointer drag of (dx, dy) pixels so the content
// follows the pointer.
func Pan(current Transform, dx, dy float64) Transform {
	return Transform{
		CenterX: current.CenterX - dx/current.Scale,
		CenterY: current.CenterY + dy/current.Scale,
		Scale:   current.Scale,
	}
}

// FitBounds centers b in the viewport at the largest scale that leaves
// padding pixels on every side, clamped to [minScale, maxScale]. A box with no
// extent keeps maxScale.
func FitBounds(b geom.Bounds, vp Viewport, padding, minScale, maxScale float64) Transform {
	c := b.Center()
	availW := vp.Width - 2*padding
	availH := vp.Height - 2*padding

	scale := maxScale
	if b.Width() > 0 && availW > 0 {
		scale = math.Min(scale, availW/b.Width())
	}
	if b.Height() > 0 && availH > 0 {
		scale = math.Min(scale, availH/b.Height())
	}

	return Transform{CenterX: c.X, CenterY: c.Y, Scale: Clamp(scale, minScale, maxScale)}
}
