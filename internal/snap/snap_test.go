package snap

import (
	"testing"

	"github.com/alexiusacademia/goframe/internal/geom"
	"github.com/alexiusacademia/goframe/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var nodes = []model.Node{
	{Name: "N1", X: 0, Y: 0},
	{Name: "N2", X: 4, Y: 0},
	{Name: "N3", X: 4, Y: 3},
}

var elements = []model.Element{
	{Name: "E1", NodeI: "N1", NodeJ: "N2"},
	{Name: "E2", NodeI: "N2", NodeJ: "N3"},
}

func TestFindNearestNode(t *testing.T) {
	n, ok := FindNearestNode(nodes, geom.Pt(3.9, 0.1), 0.5)
	require.True(t, ok)
	assert.Equal(t, "N2", n.Name)

	_, ok = FindNearestNode(nodes, geom.Pt(2, 2), 0.5)
	assert.False(t, ok)
}

func TestFindNearestNodeBoundaryAndTies(t *testing.T) {
	// exactly at tolerance is outside
	_, ok := FindNearestNode(nodes, geom.Pt(0.5, 0), 0.5)
	assert.False(t, ok)

	twins := []model.Node{
		{Name: "A", X: -1, Y: 0},
		{Name: "B", X: 1, Y: 0},
	}
	n, ok := FindNearestNode(twins, geom.Pt(0, 0), 2)
	require.True(t, ok)
	assert.Equal(t, "A", n.Name)
}

func TestFindNearestElement(t *testing.T) {
	e, ok := FindNearestElement(nodes, elements, geom.Pt(2, 0.2), 0.3)
	require.True(t, ok)
	assert.Equal(t, "E1", e.Name)

	e, ok = FindNearestElement(nodes, elements, geom.Pt(4.1, 1.5), 0.3)
	require.True(t, ok)
	assert.Equal(t, "E2", e.Name)

	// beyond the end of E1 the clamped projection measures to N2
	_, ok = FindNearestElement(nodes, elements[:1], geom.Pt(5, 0), 0.3)
	assert.False(t, ok)
}

func TestFindNearestElementSkipsBrokenAndDegenerate(t *testing.T) {
	elems := []model.Element{
		{Name: "Broken", NodeI: "N1", NodeJ: "Missing"},
		{Name: "Zero", NodeI: "N3", NodeJ: "N3"},
	}
	e, ok := FindNearestElement(nodes, elems, geom.Pt(4, 3.1), 0.5)
	require.True(t, ok)
	assert.Equal(t, "Zero", e.Name)
}

func TestPointSegmentDistance(t *testing.T) {
	a, b := geom.Pt(0, 0), geom.Pt(10, 0)
	assert.InDelta(t, 3.0, PointSegmentDistance(geom.Pt(5, 3), a, b), 1e-12)
	assert.InDelta(t, 5.0, PointSegmentDistance(geom.Pt(-3, 4), a, b), 1e-12)
	assert.InDelta(t, 5.0, PointSegmentDistance(geom.Pt(3, 4), a, a), 1e-12)
}

func TestSnappedPosition(t *testing.T) {
	cursor := geom.Pt(3.97, 2.91)
	assert.Equal(t, geom.Pt(4, 3), SnappedPosition(cursor, "N3", nodes))
	assert.Equal(t, cursor, SnappedPosition(cursor, "", nodes))
	assert.Equal(t, cursor, SnappedPosition(cursor, "Nope", nodes))
}

func TestSnapToGrid(t *testing.T) {
	assert.Equal(t, geom.Pt(1.5, -0.5), SnapToGrid(geom.Pt(1.6, -0.4), 0.5))
	assert.Equal(t, geom.Pt(1.6, -0.4), SnapToGrid(geom.Pt(1.6, -0.4), 0))
}

func TestPixelTolerance(t *testing.T) {
	assert.Equal(t, 0.2, PixelTolerance(10, 50))
	assert.Equal(t, 0.0, PixelTolerance(10, 0))
}
