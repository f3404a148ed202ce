// Package snap finds the node or element under the pointer.
package snap

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/alexiusacademia/goframe/internal/geom"
	"github.com/alexiusacademia/goframe/internal/model"
)

// FindNearestNode returns the node closest to p that lies strictly within
// tolerance. On ties the first node wins.
func FindNearestNode(nodes []model.Node, p geom.Point, tolerance float64) (model.Node, bool) {
	var nearest model.Node
	found := false
	minDist := tolerance

	for _, n := range nodes {
		d := geom.Dist(p, n.Pos())
		if d < minDist {
			minDist = d
			nearest = n
			found = true
		}
	}

	return nearest, found
}

// FindNearestElement returns the element whose segment passes closest to p,
// strictly within tolerance. Elements with missing nodes are skipped.
func FindNearestElement(nodes []model.Node, elements []model.Element, p geom.Point, tolerance float64) (model.Element, bool) {
	index := model.NodeMap(nodes)

	var nearest model.Element
	found := false
	minDist := tolerance

	for _, e := range elements {
		ni, okI := index[e.NodeI]
		nj, okJ := index[e.NodeJ]
		if !okI || !okJ {
			continue
		}
		d := PointSegmentDistance(p, ni.Pos(), nj.Pos())
		if d < minDist {
			minDist = d
			nearest = e
			found = true
		}
	}

	return nearest, found
}

// PointSegmentDistance is the distance from p to the segment a-b.
// A zero-length segment reduces to the distance from p to a.
func PointSegmentDistance(p, a, b geom.Point) float64 {
	d := r2.Sub(b.Vec(), a.Vec())
	lenSq := r2.Norm2(d)
	if lenSq == 0 {
		return geom.Dist(p, a)
	}

	t := r2.Dot(r2.Sub(p.Vec(), a.Vec()), d) / lenSq
	t = math.Max(0, math.Min(1, t))

	return geom.Dist(p, geom.FromVec(r2.Add(a.Vec(), r2.Scale(t, d))))
}

// SnappedPosition returns the stored coordinates of the hovered node so new
// geometry lands exactly on it. With no hovered node, or an unknown name, the
// cursor position is returned unchanged.
func SnappedPosition(worldPos geom.Point, hoveredNode string, nodes []model.Node) geom.Point {
	if hoveredNode == "" {
		return worldPos
	}
	for _, n := range nodes {
		if n.Name == hoveredNode {
			return n.Pos()
		}
	}
	return worldPos
}

// SnapToGrid rounds p to the nearest grid intersection.
func SnapToGrid(p geom.Point, spacing float64) geom.Point {
	if spacing <= 0 {
		return p
	}
	return geom.Point{
		X: math.Round(p.X/spacing) * spacing,
		Y: math.Round(p.Y/spacing) * spacing,
	}
}

// PixelTolerance converts a hit radius in pixels to meters at viewScale.
func PixelTolerance(pixels, viewScale float64) float64 {
	if viewScale <= 0 {
		return 0
	}
	return pixels / viewScale
}
