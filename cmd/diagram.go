package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/alexiusacademia/goframe/internal/diagram"
	"github.com/alexiusacademia/goframe/internal/results"
	"github.com/spf13/cobra"
)

var (
	diagramResults  string
	diagramQuantity string
	diagramElement  string
	diagramWidth    int
)

var diagramCmd = &cobra.Command{
	Use:   "diagram",
	Short: "Print force extremes and text diagrams of a result",
	Long: `Summarize one force quantity of an analysis result in the terminal.

For every element the minimum and maximum value and their station
(0 at nodeI, 1 at nodeJ) are listed, followed by a bar diagram.

Examples:
  goframe diagram --results simple.json --quantity moment
  goframe diagram --results simple.json --quantity shear --element B1`,
	RunE: runDiagram,
}

func init() {
	rootCmd.AddCommand(diagramCmd)

	diagramCmd.Flags().StringVarP(&diagramResults, "results", "r", "", "Analysis result JSON file [required]")
	diagramCmd.Flags().StringVarP(&diagramQuantity, "quantity", "q", "moment", "Quantity: moment, shear or axial")
	diagramCmd.Flags().StringVarP(&diagramElement, "element", "e", "", "Only this element")
	diagramCmd.Flags().IntVarP(&diagramWidth, "width", "w", 30, "Bar width in characters")

	diagramCmd.MarkFlagRequired("results")
}

func runDiagram(cmd *cobra.Command, args []string) error {
	r, err := loadResults(diagramResults)
	if err != nil {
		return err
	}
	q, err := results.ParseQuantity(diagramQuantity)
	if err != nil {
		return err
	}

	extremes := diagram.Extremes(r, q)
	if diagramElement != "" {
		var only []diagram.Extreme
		for _, x := range extremes {
			if x.Element == diagramElement {
				only = append(only, x)
			}
		}
		if len(only) == 0 {
			return fmt.Errorf("element %q not in result", diagramElement)
		}
		extremes = only
	}

	fmt.Println()
	fmt.Print(diagram.DrawSummaryBox(fmt.Sprintf("%s extremes", q), []string{
		fmt.Sprintf("Elements: %d", len(extremes)),
		fmt.Sprintf("Samples per element: %d", r.SampleCount()),
		fmt.Sprintf("Model max |%s|: %.3f", q, diagram.MaxDiagramValue(r.Elements, q)),
	}))
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Element\tMin\tat\tMax\tat\n")
	fmt.Fprintf(w, "  ───────\t───\t──\t───\t──\n")
	for _, x := range extremes {
		fmt.Fprintf(w, "  %s\t%.3f\t%.2f\t%.3f\t%.2f\n", x.Element, x.Min, x.MinAt, x.Max, x.MaxAt)
	}
	w.Flush()
	fmt.Println()

	for _, x := range extremes {
		f, _ := r.Forces(x.Element)
		fmt.Print(diagram.DrawASCIIDiagram(x.Element, f.Values(q), diagramWidth))
		fmt.Println()
	}
	return nil
}
