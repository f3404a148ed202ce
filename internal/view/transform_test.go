package view

import (
	"testing"

	"github.com/alexiusacademia/goframe/internal/geom"
	"github.com/stretchr/testify/assert"
)

var vp = Viewport{Width: 800, Height: 600}

func TestScreenWorldRoundTrip(t *testing.T) {
	transforms := []Transform{
		{CenterX: 0, CenterY: 0, Scale: 50},
		{CenterX: 12.5, CenterY: -3, Scale: 0.75},
		{CenterX: -100, CenterY: 40, Scale: 1234},
	}
	points := []geom.Point{{X: 0, Y: 0}, {X: 3.2, Y: -7.1}, {X: 1e3, Y: 2e3}}

	for _, tr := range transforms {
		for _, p := range points {
			s := tr.WorldToScreen(vp, p)
			again := tr.WorldToScreen(vp, tr.ScreenToWorld(vp, s))
			assert.InDelta(t, s.X, again.X, 1e-6)
			assert.InDelta(t, s.Y, again.Y, 1e-6)
		}
	}
}

func TestWorldToScreenAxes(t *testing.T) {
	tr := Transform{Scale: 10}
	center := tr.WorldToScreen(vp, geom.Pt(0, 0))
	assert.Equal(t, geom.Pt(400, 300), center)

	// world y up is screen y down
	up := tr.WorldToScreen(vp, geom.Pt(1, 1))
	assert.Equal(t, geom.Pt(410, 290), up)
}

func TestZoomIdentity(t *testing.T) {
	tr := Transform{CenterX: 2, CenterY: 3, Scale: 40}
	got := ZoomToPoint(tr, geom.Pt(10, -4), 1, 1, 1000)
	assert.Equal(t, tr, got)
}

func TestZoomKeepsPointUnderCursor(t *testing.T) {
	tr := Transform{CenterX: 2, CenterY: 3, Scale: 40}
	p := geom.Pt(5, 1)
	before := tr.WorldToScreen(vp, p)

	zoomed := ZoomToPoint(tr, p, 1.5, 1, 1000)
	assert.InDelta(t, 60.0, zoomed.Scale, 1e-12)

	after := zoomed.WorldToScreen(vp, p)
	assert.InDelta(t, before.X, after.X, 1e-9)
	assert.InDelta(t, before.Y, after.Y, 1e-9)
}

func TestZoomFixedPointAtMax(t *testing.T) {
	tr := Transform{CenterX: 0, CenterY: 0, Scale: 10}
	p := geom.Pt(3, 4)
	for i := 0; i < 50; i++ {
		tr = ZoomToPoint(tr, p, 1.2, 1, 200)
	}
	assert.Equal(t, 200.0, tr.Scale)

	again := ZoomToPoint(tr, p, 1.2, 1, 200)
	assert.Equal(t, tr, again)
}

func TestZoomClampsToMin(t *testing.T) {
	tr := Transform{Scale: 2}
	got := ZoomToPoint(tr, geom.Pt(1, 1), 0.1, 1, 100)
	assert.Equal(t, 1.0, got.Scale)
}

func TestPan(t *testing.T) {
	tr := Transform{CenterX: 0, CenterY: 0, Scale: 20}
	p := geom.Pt(1, 2)
	before := tr.WorldToScreen(vp, p)

	panned := Pan(tr, 30, -10)
	after := panned.WorldToScreen(vp, p)
	assert.InDelta(t, before.X+30, after.X, 1e-9)
	assert.InDelta(t, before.Y-10, after.Y, 1e-9)
}

func TestFitBounds(t *testing.T) {
	b := geom.NewBounds(0, 0, 10, 4)
	tr := FitBounds(b, vp, 50, 1, 1000)
	assert.Equal(t, 5.0, tr.CenterX)
	assert.Equal(t, 2.0, tr.CenterY)
	assert.Equal(t, 70.0, tr.Scale) // (800-100)/10 beats (600-100)/4

	point := FitBounds(geom.NewBounds(1, 1, 1, 1), vp, 50, 1, 300)
	assert.Equal(t, 300.0, point.Scale)
}
