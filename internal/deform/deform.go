// Package deform turns nodal displacements and local deflections into the
// deformed shape of each element.
package deform

import (
	"math"

	"github.com/alexiusacademia/goframe/internal/geom"
	"github.com/alexiusacademia/goframe/internal/model"
	"github.com/alexiusacademia/goframe/internal/results"
)

const (
	mmToM = 1.0 / 1000

	// deformed elements shorter than this are drawn as their two end points
	minLength = 1e-10
)

// Input holds everything needed to draw one deformed element
type Input struct {
	NodeI, NodeJ geom.Point               // original coordinates (m)
	DispI, DispJ results.NodeDisplacement // mm

	// Local deflection samples along the element (mm)
	Axial      []float64
	Transverse []float64

	// Display magnification of the local deflection
	Scale float64
}

// FlipsTransverse reports whether the local transverse axis of an element
// from i to j points opposite to the global left-hand normal. The comparison
// is inclusive at exactly +-90 degrees.
func FlipsTransverse(i, j geom.Point) bool {
	angle := math.Atan2(j.Y-i.Y, j.X-i.X)
	return angle >= math.Pi/2 || angle <= -math.Pi/2
}

// Shape returns the deformed element as len(in.Transverse) ordered points.
// With fewer than two samples, or a collapsed deformed element, only the two
// deformed end points are returned.
func Shape(in Input) []geom.Point {
	sign := 1.0
	if FlipsTransverse(in.NodeI, in.NodeJ) {
		sign = -1
	}

	di := geom.Point{X: in.NodeI.X + in.DispI.DX*mmToM, Y: in.NodeI.Y + in.DispI.DY*mmToM}
	dj := geom.Point{X: in.NodeJ.X + in.DispJ.DX*mmToM, Y: in.NodeJ.Y + in.DispJ.DY*mmToM}

	length := geom.Dist(di, dj)
	n := len(in.Transverse)
	if length < minLength || n < 2 {
		return []geom.Point{di, dj}
	}

	ux := (dj.X - di.X) / length
	uy := (dj.Y - di.Y) / length
	vx, vy := -uy, ux

	pts := make([]geom.Point, n)
	for k := 0; k < n; k++ {
		t := float64(k) / float64(n-1)
		base := geom.Lerp(di, dj, t)

		var axial float64
		if k < len(in.Axial) {
			axial = in.Axial[k]
		}
		a := axial * mmToM * in.Scale
		tr := sign * in.Transverse[k] * mmToM * in.Scale

		pts[k] = geom.Point{
			X: base.X + a*ux + tr*vx,
			Y: base.Y + a*uy + tr*vy,
		}
	}
	return pts
}

// ElementShape gathers the inputs of e from m and r and returns its deformed shape.
func ElementShape(m *model.Model, e model.Element, r *results.AnalysisResult, scale float64) ([]geom.Point, error) {
	ni, nj, err := m.Endpoints(e)
	if err != nil {
		return nil, err
	}

	f, _ := r.Forces(e.Name)
	return Shape(Input{
		NodeI:      ni.Pos(),
		NodeJ:      nj.Pos(),
		DispI:      r.Displacement(ni.Name),
		DispJ:      r.Displacement(nj.Name),
		Axial:      f.LocalDx,
		Transverse: f.LocalDy,
		Scale:      scale,
	}), nil
}

// ModelShapes returns the deformed shape of every element keyed by name.
func ModelShapes(m *model.Model, r *results.AnalysisResult, scale float64) (map[string][]geom.Point, error) {
	shapes := make(map[string][]geom.Point, len(m.Elements))
	for _, e := range m.Elements {
		pts, err := ElementShape(m, e, r, scale)
		if err != nil {
			return nil, err
		}
		shapes[e.Name] = pts
	}
	return shapes, nil
}
