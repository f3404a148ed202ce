package diagram

import (
	"fmt"

	"github.com/alexiusacademia/goframe/internal/deform"
	"github.com/alexiusacademia/goframe/internal/geom"
	"github.com/alexiusacademia/goframe/internal/model"
	"github.com/alexiusacademia/goframe/internal/results"
	"github.com/alexiusacademia/goframe/internal/view"
)

// Member is one undeformed element of the drawing
type Member struct {
	Name string
	I, J geom.Point
}

// ElementDiagram is the filled force diagram of one element, in world coordinates
type ElementDiagram struct {
	Element string
	Path    Path
}

// FrameData holds everything drawn for one model and one result
type FrameData struct {
	Title    string
	Quantity results.Quantity // empty when no force diagram is drawn

	Nodes    []model.Node
	Members  []Member
	Deformed map[string][]geom.Point
	Diagrams []ElementDiagram

	// Diagram scale actually used and the model-wide max |value|
	Scale    float64
	MaxValue float64
}

// FrameOptions controls how a result is turned into drawable geometry
type FrameOptions struct {
	Title string

	Quantity     results.Quantity // empty to skip force diagrams
	TargetPixels float64          // offset of the largest diagram value
	Flip         bool             // draw diagrams on the opposite side

	ShowDeformed     bool
	DeformationScale float64

	// Rendering surface used to convert the pixel target into meters
	Viewport view.Viewport
	Padding  float64
	MinScale float64
	MaxScale float64
}

// NewFrameData builds the drawable geometry for m under r.
func NewFrameData(m *model.Model, r *results.AnalysisResult, opts FrameOptions) (FrameData, error) {
	data := FrameData{
		Title:    opts.Title,
		Quantity: opts.Quantity,
		Nodes:    m.Nodes,
	}

	for _, e := range m.Elements {
		ni, nj, err := m.Endpoints(e)
		if err != nil {
			return data, err
		}
		data.Members = append(data.Members, Member{Name: e.Name, I: ni.Pos(), J: nj.Pos()})
	}

	if r == nil {
		return data, nil
	}

	if opts.ShowDeformed {
		shapes, err := deform.ModelShapes(m, r, opts.DeformationScale)
		if err != nil {
			return data, fmt.Errorf("deformed shape: %w", err)
		}
		data.Deformed = shapes
	}

	if opts.Quantity == "" {
		return data, nil
	}

	bounds, ok := m.Bounds()
	if !ok {
		return data, nil
	}
	vt := view.FitBounds(bounds, opts.Viewport, opts.Padding, opts.MinScale, opts.MaxScale)

	// Diagrams are laid out in pixels so the largest value sits exactly
	// TargetPixels from its member, then mapped back to meters.
	data.MaxValue = MaxDiagramValue(r.Elements, opts.Quantity)
	data.Scale = CalculateDiagramScale(data.MaxValue, 1, opts.TargetPixels)
	if data.Scale == 0 {
		return data, nil
	}

	for _, mem := range data.Members {
		f, ok := r.Forces(mem.Name)
		if !ok {
			continue
		}
		si := vt.WorldToScreen(opts.Viewport, mem.I)
		sj := vt.WorldToScreen(opts.Viewport, mem.J)

		// screen y points down, so a screen-space left normal is the world right
		// normal; invert flip to keep the world convention
		path := DiagramToFilledPath(si.X, si.Y, sj.X, sj.Y, f.Values(opts.Quantity), data.Scale, !opts.Flip)
		for i, p := range path.Points {
			path.Points[i] = vt.ScreenToWorld(opts.Viewport, p)
		}
		data.Diagrams = append(data.Diagrams, ElementDiagram{Element: mem.Name, Path: path})
	}

	return data, nil
}
