package diagram

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"github.com/alexiusacademia/goframe/internal/geom"
	"github.com/alexiusacademia/goframe/internal/model"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var (
	memberColor   = color.Black
	deformedColor = color.RGBA{R: 0, G: 0, B: 139, A: 255}
	supportColor  = color.RGBA{R: 139, G: 69, B: 19, A: 255}
	fillColors    = map[bool]color.RGBA{
		true:  {R: 100, G: 149, B: 237, A: 150}, // positive
		false: {R: 237, G: 100, B: 100, A: 150}, // negative
	}
)

// ExportFrame exports the frame, its deformed shape and force diagrams to an image file
func ExportFrame(data FrameData, filename string, width, height vg.Length) error {
	p := plot.New()
	p.Title.Text = data.Title
	p.X.Label.Text = "X (m)"
	p.Y.Label.Text = "Y (m)"

	var all []geom.Point

	// Filled diagrams go first so members stay visible on top
	for _, d := range data.Diagrams {
		if len(d.Path.Points) < 3 {
			continue
		}
		poly, err := plotter.NewPolygon(toXYs(d.Path.Points))
		if err != nil {
			return err
		}
		poly.Color = fillColors[math.Abs(d.Path.Max) >= math.Abs(d.Path.Min)]
		poly.LineStyle.Color = deformedColor
		poly.LineStyle.Width = vg.Points(0.5)
		p.Add(poly)
		all = append(all, d.Path.Points...)

		if err := addExtremeLabel(p, d); err != nil {
			return err
		}
	}

	for _, m := range data.Members {
		line, err := plotter.NewLine(plotter.XYs{{X: m.I.X, Y: m.I.Y}, {X: m.J.X, Y: m.J.Y}})
		if err != nil {
			return err
		}
		line.LineStyle.Width = vg.Points(2)
		line.LineStyle.Color = memberColor
		p.Add(line)
		all = append(all, m.I, m.J)
	}

	for _, name := range sortedKeys(data.Deformed) {
		pts := data.Deformed[name]
		line, err := plotter.NewLine(toXYs(pts))
		if err != nil {
			return err
		}
		line.LineStyle.Width = vg.Points(1.5)
		line.LineStyle.Color = deformedColor
		line.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
		p.Add(line)
		all = append(all, pts...)
	}

	if err := addSupports(p, data.Nodes); err != nil {
		return err
	}

	setEqualAxes(p, all)

	// Create directory if needed
	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	switch filepath.Ext(filename) {
	case ".png", ".svg", ".pdf", ".jpg", ".jpeg", ".eps", ".tif", ".tiff":
		return p.Save(width, height, filename)
	default:
		return p.Save(width, height, filename+".png")
	}
}

// addSupports marks supported nodes with a triangle and free nodes with a dot
func addSupports(p *plot.Plot, nodes []model.Node) error {
	var supported, free plotter.XYs
	for _, n := range nodes {
		xy := plotter.XY{X: n.X, Y: n.Y}
		if n.Support == "" || n.Support == model.SupportFree {
			free = append(free, xy)
		} else {
			supported = append(supported, xy)
		}
	}

	if len(supported) > 0 {
		s, err := plotter.NewScatter(supported)
		if err != nil {
			return err
		}
		s.GlyphStyle.Color = supportColor
		s.GlyphStyle.Radius = vg.Points(6)
		s.GlyphStyle.Shape = draw.TriangleGlyph{}
		p.Add(s)
	}
	if len(free) > 0 {
		s, err := plotter.NewScatter(free)
		if err != nil {
			return err
		}
		s.GlyphStyle.Color = memberColor
		s.GlyphStyle.Radius = vg.Points(3)
		s.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(s)
	}
	return nil
}

// addExtremeLabel writes the larger absolute extreme next to its station
func addExtremeLabel(p *plot.Plot, d ElementDiagram) error {
	value := d.Path.Max
	if math.Abs(d.Path.Min) > math.Abs(d.Path.Max) {
		value = d.Path.Min
	}
	if value == 0 {
		return nil
	}

	// filled points are start, offsets..., end, start; label the offset point
	// farthest from the chord midpoint
	pts := d.Path.Points[1 : len(d.Path.Points)-2]
	start, end := d.Path.Points[0], d.Path.Points[len(d.Path.Points)-2]
	best, bestDist := pts[0], -1.0
	for _, pt := range pts {
		if dist := geom.Dist(pt, geom.Lerp(start, end, 0.5)); dist > bestDist {
			best, bestDist = pt, dist
		}
	}

	l, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    []plotter.XY{{X: best.X, Y: best.Y}},
		Labels: []string{fmt.Sprintf("%.2f", value)},
	})
	if err != nil {
		return err
	}
	p.Add(l)
	return nil
}

// setEqualAxes pads the data range into a square so members are not distorted
func setEqualAxes(p *plot.Plot, pts []geom.Point) {
	b, ok := geom.BoundsOf(pts)
	if !ok {
		return
	}
	span := math.Max(b.Width(), b.Height())
	if span == 0 {
		span = 1
	}
	half := span/2 + span*0.1
	c := b.Center()
	p.X.Min, p.X.Max = c.X-half, c.X+half
	p.Y.Min, p.Y.Max = c.Y-half, c.Y+half
}

func toXYs(pts []geom.Point) plotter.XYs {
	xys := make(plotter.XYs, len(pts))
	for i, pt := range pts {
		xys[i] = plotter.XY{X: pt.X, Y: pt.Y}
	}
	return xys
}
