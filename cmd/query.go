package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/alexiusacademia/goframe/internal/geom"
	"github.com/alexiusacademia/goframe/internal/model"
	"github.com/alexiusacademia/goframe/internal/selection"
	"github.com/alexiusacademia/goframe/internal/snap"
	"github.com/alexiusacademia/goframe/internal/view"
	"github.com/spf13/cobra"
)

var (
	queryModel     string
	queryViewScale float64

	snapX, snapY float64
	snapGrid     bool

	selX1, selY1, selX2, selY2 float64
	selMode                    string

	fitWidth, fitHeight float64
	zoomAtX, zoomAtY    float64
	zoomSteps           int
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Run editor hit-testing against a model",
	Long: `Answer the questions the editor asks on every mouse event:
what is under the cursor, what a drag rectangle selects, and where
the viewport goes when fitting or zooming.

Coordinates are world coordinates in meters, Y up.`,
}

var querySnapCmd = &cobra.Command{
	Use:   "snap",
	Short: "Find the node or element under a point",
	Long: `Find the node or element under a world point.

Hit radii come from the configuration in pixels and are converted
to meters with --view-scale. Nodes take priority over elements.

Examples:
  goframe query snap --model portal.json --x 0.05 --y 2.98
  goframe query snap --model portal.json --x 1.12 --y 0.4 --grid`,
	RunE: runQuerySnap,
}

var querySelectCmd = &cobra.Command{
	Use:   "select",
	Short: "Select nodes and elements inside a rectangle",
	Long: `Select nodes and elements with a drag rectangle.

In window mode an element must lie fully inside the rectangle; in
crossing mode touching it is enough. With --mode auto the mode follows
the drag direction: left-to-right is window, right-to-left is crossing.

Examples:
  goframe query select --model portal.json --x1 -1 --y1 -1 --x2 5 --y2 4
  goframe query select --model portal.json --x1 3 --y1 1 --x2 1 --y2 3`,
	RunE: runQuerySelect,
}

var queryFitCmd = &cobra.Command{
	Use:   "fit",
	Short: "Compute the view transform that fits the model",
	Long: `Compute the view transform that fits the whole model in a viewport,
optionally followed by zoom steps about a world point.

Examples:
  goframe query fit --model portal.json --width 1280 --height 720
  goframe query fit --model portal.json --zoom-x 4 --zoom-y 3 --steps 5`,
	RunE: runQueryFit,
}

func init() {
	rootCmd.AddCommand(queryCmd)
	queryCmd.AddCommand(querySnapCmd, querySelectCmd, queryFitCmd)

	queryCmd.PersistentFlags().StringVarP(&queryModel, "model", "m", "", "Model JSON file [required]")
	queryCmd.PersistentFlags().Float64Var(&queryViewScale, "view-scale", 50, "Current zoom (pixels per meter)")
	queryCmd.MarkPersistentFlagRequired("model")

	querySnapCmd.Flags().Float64Var(&snapX, "x", 0, "World X (m)")
	querySnapCmd.Flags().Float64Var(&snapY, "y", 0, "World Y (m)")
	querySnapCmd.Flags().BoolVar(&snapGrid, "grid", false, "Fall back to the drawing grid when nothing is hit")

	querySelectCmd.Flags().Float64Var(&selX1, "x1", 0, "Drag start X (m)")
	querySelectCmd.Flags().Float64Var(&selY1, "y1", 0, "Drag start Y (m)")
	querySelectCmd.Flags().Float64Var(&selX2, "x2", 0, "Drag end X (m)")
	querySelectCmd.Flags().Float64Var(&selY2, "y2", 0, "Drag end Y (m)")
	querySelectCmd.Flags().StringVar(&selMode, "mode", "auto", "Selection mode: auto, window or crossing")

	queryFitCmd.Flags().Float64Var(&fitWidth, "width", 800, "Viewport width (px)")
	queryFitCmd.Flags().Float64Var(&fitHeight, "height", 600, "Viewport height (px)")
	queryFitCmd.Flags().Float64Var(&zoomAtX, "zoom-x", 0, "World X to zoom about (m)")
	queryFitCmd.Flags().Float64Var(&zoomAtY, "zoom-y", 0, "World Y to zoom about (m)")
	queryFitCmd.Flags().IntVar(&zoomSteps, "steps", 0, "Zoom steps, negative to zoom out")
}

func runQuerySnap(cmd *cobra.Command, args []string) error {
	m, err := model.LoadFromFile(queryModel)
	if err != nil {
		return err
	}

	p := geom.Pt(snapX, snapY)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()

	nodeTol := snap.PixelTolerance(cfg.Snap.NodePixels, queryViewScale)
	if n, ok := snap.FindNearestNode(m.Nodes, p, nodeTol); ok {
		pos := snap.SnappedPosition(p, n.Name, m.Nodes)
		fmt.Fprintf(w, "Hit:\tnode %s\n", n.Name)
		fmt.Fprintf(w, "Snapped:\t(%.4f, %.4f)\n", pos.X, pos.Y)
		fmt.Fprintf(w, "Distance:\t%.4f m\n", geom.Dist(p, n.Pos()))
		return nil
	}

	elemTol := snap.PixelTolerance(cfg.Snap.ElementPixels, queryViewScale)
	if e, ok := snap.FindNearestElement(m.Nodes, m.Elements, p, elemTol); ok {
		ni, nj, err := m.Endpoints(e)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Hit:\telement %s (%s → %s)\n", e.Name, e.NodeI, e.NodeJ)
		fmt.Fprintf(w, "Distance:\t%.4f m\n", snap.PointSegmentDistance(p, ni.Pos(), nj.Pos()))
		return nil
	}

	fmt.Fprintf(w, "Hit:\tnothing\n")
	if snapGrid {
		g := snap.SnapToGrid(p, cfg.Snap.Grid)
		fmt.Fprintf(w, "Grid:\t(%.4f, %.4f)\n", g.X, g.Y)
	}
	return nil
}

func runQuerySelect(cmd *cobra.Command, args []string) error {
	m, err := model.LoadFromFile(queryModel)
	if err != nil {
		return err
	}

	start, end := geom.Pt(selX1, selY1), geom.Pt(selX2, selY2)
	var mode selection.Mode
	switch selMode {
	case "auto":
		mode = selection.ModeFromDrag(start, end)
	case string(selection.Window), string(selection.Crossing):
		mode = selection.Mode(selMode)
	default:
		return fmt.Errorf("unknown selection mode %q", selMode)
	}

	rect := selection.RectFromPoints(start, end)
	nodes := selection.FindNodesInRect(m.Nodes, rect)
	elements := selection.FindElementsInRect(m.Nodes, m.Elements, rect, mode)
	logger.Debug("selection", "mode", mode, "rect", rect, "nodes", len(nodes), "elements", len(elements))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Mode:\t%s\n", mode)
	fmt.Fprintf(w, "Nodes:\t%s\n", joinOrNone(nodes))
	fmt.Fprintf(w, "Elements:\t%s\n", joinOrNone(elements))
	return w.Flush()
}

func runQueryFit(cmd *cobra.Command, args []string) error {
	m, err := model.LoadFromFile(queryModel)
	if err != nil {
		return err
	}
	b, _ := m.Bounds()

	vp := view.Viewport{Width: fitWidth, Height: fitHeight}
	t := view.FitBounds(b, vp, cfg.Render.Padding, cfg.View.MinScale, cfg.View.MaxScale)

	if zoomSteps != 0 {
		multiplier := cfg.View.ZoomStep
		steps := zoomSteps
		if steps < 0 {
			multiplier, steps = 1/multiplier, -steps
		}
		at := geom.Pt(zoomAtX, zoomAtY)
		for range steps {
			t = view.ZoomToPoint(t, at, multiplier, cfg.View.MinScale, cfg.View.MaxScale)
		}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Center:\t(%.4f, %.4f)\n", t.CenterX, t.CenterY)
	fmt.Fprintf(w, "Scale:\t%.4f px/m\n", t.Scale)
	for _, n := range m.Nodes {
		s := t.WorldToScreen(vp, n.Pos())
		fmt.Fprintf(w, "  %s\t(%.1f, %.1f) px\n", n.Name, s.X, s.Y)
	}
	return w.Flush()
}

func joinOrNone(names []string) string {
	if len(names) == 0 {
		return "(none)"
	}
	return strings.Join(names, ", ")
}
