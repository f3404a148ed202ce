package diagram

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alexiusacademia/goframe/internal/model"
	"github.com/alexiusacademia/goframe/internal/results"
	"github.com/alexiusacademia/goframe/internal/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"
)

func cantileverModel() *model.Model {
	return &model.Model{
		Name: "cantilever",
		Nodes: []model.Node{
			{Name: "N1", X: 0, Y: 0, Support: model.SupportFixed},
			{Name: "N2", X: 4, Y: 0, Support: model.SupportFree},
		},
		Elements: []model.Element{
			{Name: "E1", NodeI: "N1", NodeJ: "N2", E: 210, I: 1e-4, A: 1e-3},
		},
		Loads: []model.Load{{Kind: model.LoadNodal, Target: "N2", Fy: -10}},
	}
}

func cantileverResult() *results.AnalysisResult {
	return &results.AnalysisResult{
		Nodes: map[string]results.NodeDisplacement{
			"N2": {DY: -10},
		},
		Elements: cantilever,
	}
}

func frameOptions() FrameOptions {
	return FrameOptions{
		Title:            "Cantilever",
		Quantity:         results.Moment,
		TargetPixels:     50,
		ShowDeformed:     true,
		DeformationScale: 1,
		Viewport:         view.Viewport{Width: 500, Height: 500},
		Padding:          50,
		MinScale:         1,
		MaxScale:         1000,
	}
}

func TestNewFrameData(t *testing.T) {
	data, err := NewFrameData(cantileverModel(), cantileverResult(), frameOptions())
	require.NoError(t, err)

	require.Len(t, data.Members, 1)
	assert.Equal(t, 40.0, data.MaxValue)
	assert.Equal(t, 1.25, data.Scale)
	require.Contains(t, data.Deformed, "E1")

	require.Len(t, data.Diagrams, 1)
	pts := data.Diagrams[0].Path.Points
	require.Len(t, pts, 8)

	// fit scale is (500-100)/4 = 100 px/m, so 50 px is 0.5 m above the fixed end
	assert.InDelta(t, 0.0, pts[1].X, 1e-9)
	assert.InDelta(t, 0.5, pts[1].Y, 1e-9)
	assert.InDelta(t, 0.0, pts[5].Y, 1e-9)
}

func TestNewFrameDataWithoutResult(t *testing.T) {
	data, err := NewFrameData(cantileverModel(), nil, frameOptions())
	require.NoError(t, err)
	assert.Len(t, data.Members, 1)
	assert.Empty(t, data.Diagrams)
	assert.Nil(t, data.Deformed)
}

func TestNewFrameDataZeroQuantity(t *testing.T) {
	opts := frameOptions()
	opts.Quantity = results.Axial
	data, err := NewFrameData(cantileverModel(), cantileverResult(), opts)
	require.NoError(t, err)
	assert.Equal(t, 0.0, data.Scale)
	assert.Empty(t, data.Diagrams)
}

func TestExportFrame(t *testing.T) {
	data, err := NewFrameData(cantileverModel(), cantileverResult(), frameOptions())
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "plots", "frame.svg")
	require.NoError(t, ExportFrame(data, out, 4*vg.Inch, 4*vg.Inch))

	content, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(content), "<svg"))
}

func TestExtremes(t *testing.T) {
	ex := Extremes(cantileverResult(), results.Moment)
	require.Len(t, ex, 1)
	assert.Equal(t, Extreme{Element: "E1", Min: 0, MinAt: 1, Max: 40, MaxAt: 0}, ex[0])
}

func TestDrawSummaryBox(t *testing.T) {
	box := DrawSummaryBox("MOMENT", []string{"E1  max 40.00", "φ"})
	lines := strings.Split(strings.TrimRight(box, "\n"), "\n")
	require.Len(t, lines, 6)
	for _, l := range lines[1:] {
		assert.Equal(t, len([]rune(lines[0])), len([]rune(l)))
	}
}

func TestDrawASCIIDiagram(t *testing.T) {
	out := DrawASCIIDiagram("E1 MOMENT", []float64{40, -20, 0}, 20)
	assert.Contains(t, out, strings.Repeat("█", 10))
	assert.Contains(t, out, "40.000")
	assert.Equal(t, 9, strings.Count(out, "│"))
}
