// Package geom holds the 2D point and bounds types shared by the editor engines.
//
// Both are thin layers over gonum's r2 types; Point adds JSON field names and
// Bounds adds the width/height accessors the view code reads.
package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Point represents a 2D coordinate. World points are in meters, screen points in pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Vec returns p as an r2 vector.
func (p Point) Vec() r2.Vec {
	return r2.Vec(p)
}

// FromVec converts an r2 vector to a Point.
func FromVec(v r2.Vec) Point {
	return Point(v)
}

// Add returns p + q.
func (p Point) Add(q Point) Point {
	return Point(r2.Add(p.Vec(), q.Vec()))
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point(r2.Sub(p.Vec(), q.Vec()))
}

// Scale returns p * s.
func (p Point) Scale(s float64) Point {
	return Point(r2.Scale(s, p.Vec()))
}

// Len returns the euclidean length of p treated as a vector.
func (p Point) Len() float64 {
	return r2.Norm(p.Vec())
}

// Dist returns the distance between p and q.
func Dist(p, q Point) float64 {
	return r2.Norm(r2.Sub(q.Vec(), p.Vec()))
}

// Lerp interpolates between a (t=0) and b (t=1). Both ends are reproduced exactly.
func Lerp(a, b Point, t float64) Point {
	return Point(r2.Add(r2.Scale(1-t, a.Vec()), r2.Scale(t, b.Vec())))
}

// Bounds is an axis-aligned bounding box.
type Bounds r2.Box

// NewBounds returns the box spanned by two corners given in any order.
func NewBounds(x0, y0, x1, y1 float64) Bounds {
	return Bounds(r2.NewBox(x0, y0, x1, y1))
}

// BoundsOf returns the bounding box of pts and false when pts is empty.
func BoundsOf(pts []Point) (Bounds, bool) {
	if len(pts) == 0 {
		return Bounds{}, false
	}
	b := Bounds{Min: pts[0].Vec(), Max: pts[0].Vec()}
	for _, p := range pts[1:] {
		b.Min = r2.Vec{X: math.Min(b.Min.X, p.X), Y: math.Min(b.Min.Y, p.Y)}
		b.Max = r2.Vec{X: math.Max(b.Max.X, p.X), Y: math.Max(b.Max.Y, p.Y)}
	}
	return b, true
}

// Width of the box.
func (b Bounds) Width() float64 { return r2.Box(b).Size().X }

// Height of the box.
func (b Bounds) Height() float64 { return r2.Box(b).Size().Y }

// Center of the box.
func (b Bounds) Center() Point {
	return Point(r2.Box(b).Center())
}
