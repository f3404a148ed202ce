package diagram

import (
	"math"

	"github.com/alexiusacademia/goframe/internal/geom"
	"github.com/alexiusacademia/goframe/internal/results"
)

// Path is a force diagram offset from its element axis
type Path struct {
	Points []geom.Point

	// Signed extremes of the raw sample values
	Min float64
	Max float64
}

// MaxDiagramValue returns the largest absolute sample of quantity q over every
// element. One scale derived from it keeps all diagrams of a model comparable.
func MaxDiagramValue(diagrams map[string]results.ElementForces, q results.Quantity) float64 {
	var maxValue float64
	for _, f := range diagrams {
		for _, v := range f.Values(q) {
			maxValue = math.Max(maxValue, math.Abs(v))
		}
	}
	return maxValue
}

// DiagramToPath places the samples at evenly spaced stations from (x1,y1) to
// (x2,y2) and offsets each one along the element's left-hand normal by
// value*scale, or the opposite way when flip is set.
func DiagramToPath(x1, y1, x2, y2 float64, values []float64, scale float64, flip bool) Path {
	path := Path{Points: make([]geom.Point, len(values))}
	if len(values) == 0 {
		return path
	}

	dx, dy := x2-x1, y2-y1
	var nx, ny float64 // unit normal, zero for a collapsed element
	if length := math.Hypot(dx, dy); length > 0 {
		nx, ny = -dy/length, dx/length
	}

	sign := 1.0
	if flip {
		sign = -1
	}

	start, end := geom.Pt(x1, y1), geom.Pt(x2, y2)
	path.Min, path.Max = values[0], values[0]
	for i, v := range values {
		var t float64
		if len(values) > 1 {
			t = float64(i) / float64(len(values)-1)
		}
		base := geom.Lerp(start, end, t)
		offset := v * scale * sign
		path.Points[i] = geom.Point{X: base.X + nx*offset, Y: base.Y + ny*offset}

		path.Min = math.Min(path.Min, v)
		path.Max = math.Max(path.Max, v)
	}
	return path
}

// DiagramToFilledPath closes the offset path through the element axis so it
// can be filled: start, offset points, end, start.
func DiagramToFilledPath(x1, y1, x2, y2 float64, values []float64, scale float64, flip bool) Path {
	path := DiagramToPath(x1, y1, x2, y2, values, scale, flip)

	start, end := geom.Pt(x1, y1), geom.Pt(x2, y2)
	closed := make([]geom.Point, 0, len(path.Points)+3)
	closed = append(closed, start)
	closed = append(closed, path.Points...)
	closed = append(closed, end, start)

	path.Points = closed
	return path
}

// CalculateDiagramScale returns the factor that draws maxValue targetPixels
// away from the axis at viewScale, or 0 when there is nothing to draw.
func CalculateDiagramScale(maxValue, viewScale, targetPixels float64) float64 {
	if maxValue == 0 {
		return 0
	}
	return targetPixels * viewScale / maxValue
}
