package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/alexiusacademia/goframe/internal/bridge"
	"github.com/alexiusacademia/goframe/internal/model"
	"github.com/alexiusacademia/goframe/internal/nscp"
	"github.com/alexiusacademia/goframe/internal/results"
	"github.com/spf13/cobra"
)

var (
	combosModel      string
	combosWrite      string
	combosResults    string
	combosQuantity   string
	combosSimplified bool
	combosValues     map[string]string
)

var combosCmd = &cobra.Command{
	Use:   "combos",
	Short: "Generate NSCP load combinations for a model",
	Long: `Map the NSCP 2015 strength design load combinations onto the load
cases of a model.

Load case tags are classified by name:
  D  - Dead load         (D, DL, dead)
  L  - Live load         (L, LL, live)
  Lr - Roof live load    (Lr, roof)
  W  - Wind load         (W, WL, wind)
  E  - Earthquake load   (E, EQ, earthquake, seismic)
  R  - Rain load         (R, rain)

Combinations that reduce to an earlier one for the model's cases are
skipped. With --write the model is saved with the combinations added.
With --results the governing combination is found from a directory of
per-combination results as written by 'goframe solve --all'.

With --values no model is needed: unfactored values of one quantity,
keyed by load case tag, are combined directly and the governing
combination is reported.

Examples:
  # List combinations for the model's load cases
  goframe combos --model portal.json

  # Gravity only, saved into a new model file
  goframe combos --model portal.json --simplified --write portal-combos.json

  # Governing moment after solving everything
  goframe combos --model portal.json --results results/combinations

  # Factored moment from hand-computed unfactored moments (kN-m)
  goframe combos --values D=50,L=30,W=-12`,
	RunE: runCombos,
}

func init() {
	rootCmd.AddCommand(combosCmd)

	combosCmd.Flags().StringVarP(&combosModel, "model", "m", "", "Model JSON file (required unless --values is given)")
	combosCmd.Flags().StringVarP(&combosWrite, "write", "w", "", "Save the model with the combinations to this file")
	combosCmd.Flags().StringVarP(&combosResults, "results", "r", "", "Directory of <combination>.json results")
	combosCmd.Flags().StringVarP(&combosQuantity, "quantity", "q", "moment", "Quantity to find the governing value of")
	combosCmd.Flags().BoolVarP(&combosSimplified, "simplified", "s", false, "Use simplified combinations (gravity only: 1.4D and 1.2D+1.6L)")
	combosCmd.Flags().StringToStringVar(&combosValues, "values", nil, "Unfactored values by load case, e.g. D=50,L=30")

	combosCmd.MarkFlagsMutuallyExclusive("values", "model")
}

func runCombos(cmd *cobra.Command, args []string) error {
	source := nscp.LoadCombinations
	if combosSimplified {
		source = nscp.SimplifiedCombinations
	}

	if len(combosValues) > 0 {
		values, err := parseLoadValues(combosValues)
		if err != nil {
			return err
		}
		return printFactored(values, source)
	}
	if combosModel == "" {
		return fmt.Errorf("either --model or --values is required")
	}

	m, err := model.LoadFromFile(combosModel)
	if err != nil {
		return err
	}

	cases := m.Cases()
	if len(cases) == 0 {
		return fmt.Errorf("model has no load cases; tag loads with \"case\"")
	}

	combos := nscp.Applicable(cases, source)
	if len(combos) == 0 {
		notice("No NSCP combination applies to cases %s", strings.Join(cases, ", "))
		return nil
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("          NSCP 2015 LOAD COMBINATIONS")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	fmt.Println(heading("LOAD CASES:"))
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, c := range cases {
		t, ok := nscp.TypeOf(c)
		if !ok {
			fmt.Fprintf(w, "  %s\t(unclassified, not combined)\n", c)
			continue
		}
		fmt.Fprintf(w, "  %s\t%s\n", c, t)
	}
	w.Flush()
	fmt.Println()

	fmt.Println(heading("COMBINATIONS (NSCP 2015 Section 203.3):"))
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Name\tFactors\n")
	fmt.Fprintf(w, "  ────\t───────\n")
	for _, c := range combos {
		fmt.Fprintf(w, "  %s\t%s\n", c.Name, formatFactors(c.Factors))
	}
	w.Flush()
	fmt.Println()

	if combosWrite != "" {
		m.Combinations = mergeCombinations(m.Combinations, combos)
		if err := m.Validate(); err != nil {
			return err
		}
		data, err := m.Serialize()
		if err != nil {
			return err
		}
		if err := os.WriteFile(combosWrite, []byte(data), 0644); err != nil {
			return err
		}
		done("Model with %d combinations saved to: %s", len(m.Combinations), combosWrite)
		fmt.Println()
	}

	if combosResults != "" {
		return printGoverning(combos)
	}
	return nil
}

func printGoverning(combos []model.Combination) error {
	q, err := results.ParseQuantity(combosQuantity)
	if err != nil {
		return err
	}

	byCombo := map[string]*results.AnalysisResult{}
	for _, c := range combos {
		path := filepath.Join(combosResults, bridge.FileName(c.Name))
		r, err := loadResults(path)
		if err != nil {
			logger.Warn("combination result missing", "combination", c.Name, "error", err)
			continue
		}
		byCombo[c.Name] = r
	}

	g, ok := nscp.FindGoverning(byCombo, q)
	if !ok {
		return fmt.Errorf("no combination results found in %s", combosResults)
	}

	fmt.Println(heading("RESULT:"))
	fmt.Println("───────────────────────────────────────────────────────────────")
	fmt.Printf("  Governing Combination: %s (element %s)\n", g.Combination, g.Element)
	fmt.Println()
	fmt.Printf("  ╔═══════════════════════════════════╗\n")
	fmt.Printf("  ║  GOVERNING %s = %.3f  \n", strings.ToUpper(string(q)), g.Value)
	fmt.Printf("  ╚═══════════════════════════════════╝\n")
	fmt.Println()
	return nil
}

// parseLoadValues classifies the keys of --values and parses the numbers.
// Two tags of the same type are added together.
func parseLoadValues(raw map[string]string) (map[nscp.LoadType]float64, error) {
	values := map[nscp.LoadType]float64{}
	for tag, s := range raw {
		t, ok := nscp.TypeOf(tag)
		if !ok {
			return nil, fmt.Errorf("unknown load type %q", tag)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil, fmt.Errorf("value for %s: %w", tag, err)
		}
		values[t] += v
	}
	return values, nil
}

func printFactored(values map[nscp.LoadType]float64, combos []nscp.LoadCombination) error {
	best, governing, ok := nscp.GoverningFactored(values, combos)
	if !ok {
		return fmt.Errorf("no load combinations to evaluate")
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("          NSCP 2015 FACTORED VALUE CALCULATION")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	fmt.Println(heading("UNFACTORED VALUES:"))
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, t := range []nscp.LoadType{nscp.Dead, nscp.Live, nscp.Roof, nscp.Wind, nscp.Earthquake, nscp.Rain} {
		if v, ok := values[t]; ok {
			fmt.Fprintf(w, "  %s:\t%.2f\n", t, v)
		}
	}
	w.Flush()
	fmt.Println()

	fmt.Println(heading("LOAD COMBINATIONS (NSCP 2015 Section 203.3):"))
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  #\tCombination\tFactored\n")
	fmt.Fprintf(w, "  ─\t───────────\t────────\n")
	for _, lc := range combos {
		marker := ""
		if lc.ID == governing.ID {
			marker = " ← GOVERNS"
		}
		fmt.Fprintf(w, "  %s\t%s\t%.2f%s\n", lc.ID, lc.Description, lc.Factored(values), marker)
	}
	w.Flush()
	fmt.Println()

	fmt.Println(heading("RESULT:"))
	fmt.Println("───────────────────────────────────────────────────────────────")
	fmt.Printf("  Governing Combination: U%s (%s)\n", governing.ID, governing.Description)
	fmt.Println()
	fmt.Printf("  ╔═══════════════════════════════════╗\n")
	fmt.Printf("  ║  FACTORED VALUE = %.2f  \n", best)
	fmt.Printf("  ╚═══════════════════════════════════╝\n")
	fmt.Println()
	return nil
}

// mergeCombinations adds generated combinations, replacing existing ones of the same name
func mergeCombinations(existing, generated []model.Combination) []model.Combination {
	index := map[string]int{}
	out := append([]model.Combination(nil), existing...)
	for i, c := range out {
		index[c.Name] = i
	}
	for _, c := range generated {
		if i, ok := index[c.Name]; ok {
			out[i] = c
			continue
		}
		index[c.Name] = len(out)
		out = append(out, c)
	}
	return out
}

func formatFactors(factors map[string]float64) string {
	names := make([]string, 0, len(factors))
	for name := range factors {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%.1f%s", factors[name], name)
	}
	return strings.Join(parts, " + ")
}
