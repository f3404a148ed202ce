package cmd

import (
	"fmt"

	"github.com/alexiusacademia/goframe/internal/diagram"
	"github.com/alexiusacademia/goframe/internal/model"
	"github.com/alexiusacademia/goframe/internal/results"
	"github.com/alexiusacademia/goframe/internal/view"
	"github.com/spf13/cobra"
	"gonum.org/v1/plot/vg"
)

var (
	renderModel    string
	renderResults  string
	renderQuantity string
	renderOutput   string
	renderTitle    string
	renderDeformed bool
	renderScale    float64
	renderTarget   float64
	renderFlip     bool
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Export the frame with a force diagram or deformed shape",
	Long: `Draw the model and an analysis result to an image file.

The largest diagram value is drawn --target pixels away from its member.
The deformed shape exaggerates element deflection by --scale; nodal
displacements are drawn at true size.

Output format follows the file extension: png, svg, pdf, jpg, eps or tiff.

Examples:
  # Bending moment diagram
  goframe render --model portal.json --results simple.json --quantity moment -o moment.png

  # Deformed shape only, deflections magnified 50 times
  goframe render --model portal.json --results simple.json --quantity "" --deformed --scale 50 -o deformed.svg`,
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringVarP(&renderModel, "model", "m", "", "Model JSON file [required]")
	renderCmd.Flags().StringVarP(&renderResults, "results", "r", "", "Analysis result JSON file")
	renderCmd.Flags().StringVarP(&renderQuantity, "quantity", "q", "moment", "Diagram to draw: moment, shear, axial or empty for none")
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "frame.png", "Output image file")
	renderCmd.Flags().StringVar(&renderTitle, "title", "", "Plot title (defaults to the model name)")
	renderCmd.Flags().BoolVarP(&renderDeformed, "deformed", "d", false, "Draw the deformed shape")
	renderCmd.Flags().Float64Var(&renderScale, "scale", 0, "Deflection magnification (default from config)")
	renderCmd.Flags().Float64Var(&renderTarget, "target", 0, "Pixel size of the largest diagram value (default from config)")
	renderCmd.Flags().BoolVar(&renderFlip, "flip", false, "Draw diagrams on the other side of the members")

	renderCmd.MarkFlagRequired("model")
}

func runRender(cmd *cobra.Command, args []string) error {
	m, r, err := loadModelAndResults(renderModel, renderResults)
	if err != nil {
		return err
	}

	var q results.Quantity
	if renderQuantity != "" {
		if q, err = results.ParseQuantity(renderQuantity); err != nil {
			return err
		}
	}

	opts := frameOptions(m)
	opts.Quantity = q
	opts.ShowDeformed = renderDeformed
	if renderTitle != "" {
		opts.Title = renderTitle
	}
	if cmd.Flags().Changed("scale") {
		opts.DeformationScale = renderScale
	}
	if cmd.Flags().Changed("target") {
		opts.TargetPixels = renderTarget
	}
	if cmd.Flags().Changed("flip") {
		opts.Flip = renderFlip
	}

	data, err := diagram.NewFrameData(m, r, opts)
	if err != nil {
		return err
	}

	width := vg.Length(cfg.Render.WidthPixels/cfg.Render.DPI) * vg.Inch
	height := vg.Length(cfg.Render.HeightPixels/cfg.Render.DPI) * vg.Inch
	if err := diagram.ExportFrame(data, renderOutput, width, height); err != nil {
		return err
	}

	logger.Info("frame exported", "file", renderOutput, "quantity", q, "scale", data.Scale, "max", data.MaxValue)
	done("Frame exported to: %s", renderOutput)
	if q != "" {
		fmt.Printf("  max |%s| = %.3f\n", q, data.MaxValue)
	}
	return nil
}

// frameOptions fills FrameOptions from the loaded configuration
func frameOptions(m *model.Model) diagram.FrameOptions {
	return diagram.FrameOptions{
		Title:            m.Name,
		TargetPixels:     cfg.Diagram.TargetPixels,
		Flip:             cfg.Diagram.Flip,
		DeformationScale: cfg.Deformation.Scale,
		Viewport:         view.Viewport{Width: cfg.Render.WidthPixels, Height: cfg.Render.HeightPixels},
		Padding:          cfg.Render.Padding,
		MinScale:         cfg.View.MinScale,
		MaxScale:         cfg.View.MaxScale,
	}
}

// loadModelAndResults reads the model and, when resultsPath is set, the result
func loadModelAndResults(modelPath, resultsPath string) (*model.Model, *results.AnalysisResult, error) {
	m, err := model.LoadFromFile(modelPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load model: %w", err)
	}
	if resultsPath == "" {
		return m, nil, nil
	}
	r, err := loadResults(resultsPath)
	if err != nil {
		return nil, nil, err
	}
	return m, r, nil
}
