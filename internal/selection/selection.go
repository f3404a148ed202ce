// Package selection implements box selection of nodes and elements.
//
// Window mode selects an element only when both of its nodes are inside the
// rectangle. Crossing mode also selects elements that merely touch or pass
// through it, so anything window mode selects crossing mode selects as well.
package selection

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/alexiusacademia/goframe/internal/geom"
	"github.com/alexiusacademia/goframe/internal/model"
)

// Mode selects the element inclusion rule
type Mode string

const (
	Window   Mode = "window"
	Crossing Mode = "crossing"
)

// parallelEpsilon is the denominator below which two segments are treated as parallel
const parallelEpsilon = 1e-10

// Rect is a selection rectangle given by two opposite corners in any order
type Rect struct {
	X1, Y1 float64
	X2, Y2 float64
}

// RectFromPoints builds a Rect from two drag points.
func RectFromPoints(a, b geom.Point) Rect {
	return Rect{X1: a.X, Y1: a.Y, X2: b.X, Y2: b.Y}
}

// Normalize returns the rectangle with X1<=X2 and Y1<=Y2.
func (r Rect) Normalize() Rect {
	return Rect{
		X1: math.Min(r.X1, r.X2),
		Y1: math.Min(r.Y1, r.Y2),
		X2: math.Max(r.X1, r.X2),
		Y2: math.Max(r.Y1, r.Y2),
	}
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p geom.Point) bool {
	n := r.Normalize()
	return p.X >= n.X1 && p.X <= n.X2 && p.Y >= n.Y1 && p.Y <= n.Y2
}

// edges returns the four sides of r as segments
func (r Rect) edges() [4][2]geom.Point {
	n := r.Normalize()
	bl := geom.Point{X: n.X1, Y: n.Y1}
	br := geom.Point{X: n.X2, Y: n.Y1}
	tr := geom.Point{X: n.X2, Y: n.Y2}
	tl := geom.Point{X: n.X1, Y: n.Y2}
	return [4][2]geom.Point{{bl, br}, {br, tr}, {tr, tl}, {tl, bl}}
}

// ModeFromDrag picks window for a left-to-right drag and crossing otherwise.
func ModeFromDrag(start, end geom.Point) Mode {
	if end.X >= start.X {
		return Window
	}
	return Crossing
}

// IsNodeInRect reports whether the node lies inside rect.
func IsNodeInRect(n model.Node, rect Rect) bool {
	return rect.Contains(n.Pos())
}

// IsElementInRect applies the inclusion rule of mode to the element spanning nodeI-nodeJ.
func IsElementInRect(nodeI, nodeJ model.Node, rect Rect, mode Mode) bool {
	inI := IsNodeInRect(nodeI, rect)
	inJ := IsNodeInRect(nodeJ, rect)

	if mode == Window {
		return inI && inJ
	}

	if inI || inJ {
		return true
	}
	a, b := nodeI.Pos(), nodeJ.Pos()
	for _, edge := range rect.edges() {
		if SegmentsIntersect(a, b, edge[0], edge[1]) {
			return true
		}
	}
	return false
}

// SegmentsIntersect solves p1 + s(p2-p1) = p3 + t(p4-p3) and reports whether
// both s and t lie in [0,1]. Parallel segments never intersect.
func SegmentsIntersect(p1, p2, p3, p4 geom.Point) bool {
	d1 := r2.Sub(p2.Vec(), p1.Vec())
	d2 := r2.Sub(p4.Vec(), p3.Vec())

	denom := r2.Cross(d1, d2)
	if math.Abs(denom) < parallelEpsilon {
		return false
	}

	e := r2.Sub(p3.Vec(), p1.Vec())
	s := r2.Cross(e, d2) / denom
	t := r2.Cross(e, d1) / denom

	return s >= 0 && s <= 1 && t >= 0 && t <= 1
}

// FindNodesInRect returns the names of the nodes inside rect, in model order.
func FindNodesInRect(nodes []model.Node, rect Rect) []string {
	var names []string
	for _, n := range nodes {
		if IsNodeInRect(n, rect) {
			names = append(names, n.Name)
		}
	}
	return names
}

// FindElementsInRect returns the names of the elements selected by rect under mode.
func FindElementsInRect(nodes []model.Node, elements []model.Element, rect Rect, mode Mode) []string {
	index := model.NodeMap(nodes)

	var names []string
	for _, e := range elements {
		ni, okI := index[e.NodeI]
		nj, okJ := index[e.NodeJ]
		if !okI || !okJ {
			continue
		}
		if IsElementInRect(ni, nj, rect, mode) {
			names = append(names, e.Name)
		}
	}
	return names
}
