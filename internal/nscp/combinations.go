package nscp

import (
	"maps"
	"math"
	"sort"
	"strings"

	"github.com/alexiusacademia/goframe/internal/model"
	"github.com/alexiusacademia/goframe/internal/results"
)

// LoadType is the NSCP classification of a load case
type LoadType string

const (
	Dead       LoadType = "D"
	Live       LoadType = "L"
	Roof       LoadType = "Lr"
	Wind       LoadType = "W"
	Earthquake LoadType = "E"
	Rain       LoadType = "R"
)

var aliases = map[string]LoadType{
	"d": Dead, "dl": Dead, "dead": Dead,
	"l": Live, "ll": Live, "live": Live,
	"lr": Roof, "roof": Roof,
	"w": Wind, "wl": Wind, "wind": Wind,
	"e": Earthquake, "eq": Earthquake, "earthquake": Earthquake, "seismic": Earthquake,
	"r": Rain, "rain": Rain,
}

// TypeOf classifies a load case tag such as "D", "LL" or "wind".
func TypeOf(tag string) (LoadType, bool) {
	t, ok := aliases[strings.ToLower(strings.TrimSpace(tag))]
	return t, ok
}

// LoadCombination represents an NSCP load combination
// Based on NSCP 2015 Section 203.3 - Load Combinations Using Strength Design
type LoadCombination struct {
	ID          string
	Description string
	Factors     map[LoadType]float64
}

// NSCP 2015 Section 203.3.1 - Basic Load Combinations
var LoadCombinations = []LoadCombination{
	{ID: "1", Description: "1.4D", Factors: map[LoadType]float64{Dead: 1.4}},
	{ID: "2", Description: "1.2D + 1.6L + 0.5(Lr or R)", Factors: map[LoadType]float64{Dead: 1.2, Live: 1.6, Roof: 0.5, Rain: 0.5}},
	{ID: "3", Description: "1.2D + 1.6(Lr or R) + (1.0L or 0.5W)", Factors: map[LoadType]float64{Dead: 1.2, Live: 1.0, Roof: 1.6, Rain: 1.6, Wind: 0.5}},
	{ID: "4", Description: "1.2D + 1.0W + 1.0L + 0.5(Lr or R)", Factors: map[LoadType]float64{Dead: 1.2, Live: 1.0, Wind: 1.0, Roof: 0.5, Rain: 0.5}},
	{ID: "5", Description: "1.2D + 1.0E + 1.0L", Factors: map[LoadType]float64{Dead: 1.2, Live: 1.0, Earthquake: 1.0}},
	{ID: "6", Description: "0.9D + 1.0W", Factors: map[LoadType]float64{Dead: 0.9, Wind: 1.0}},
	{ID: "7", Description: "0.9D + 1.0E", Factors: map[LoadType]float64{Dead: 0.9, Earthquake: 1.0}},
}

// SimplifiedCombinations covers gravity-only frames
var SimplifiedCombinations = []LoadCombination{
	{ID: "1", Description: "1.4D", Factors: map[LoadType]float64{Dead: 1.4}},
	{ID: "2", Description: "1.2D + 1.6L", Factors: map[LoadType]float64{Dead: 1.2, Live: 1.6}},
}

// Factored sums the unfactored values of each load type with the
// combination's factors.
func (lc LoadCombination) Factored(values map[LoadType]float64) float64 {
	var total float64
	for t, v := range values {
		total += lc.Factors[t] * v
	}
	return total
}

// GoverningFactored returns the combination with the largest factored value
// in magnitude. Ties go to the earlier combination.
func GoverningFactored(values map[LoadType]float64, combos []LoadCombination) (float64, LoadCombination, bool) {
	var best float64
	var governing LoadCombination
	found := false
	for _, lc := range combos {
		v := lc.Factored(values)
		if !found || math.Abs(v) > math.Abs(best) {
			best, governing, found = v, lc, true
		}
	}
	return best, governing, found
}

// ForCases maps the combination onto a model's load case tags. Cases of an
// unknown type, or of a type the combination does not use, are left out.
// It reports false when no case receives a factor.
func (lc LoadCombination) ForCases(cases []string) (model.Combination, bool) {
	c := model.Combination{Name: "U" + lc.ID, Factors: map[string]float64{}}
	for _, tag := range cases {
		t, ok := TypeOf(tag)
		if !ok {
			continue
		}
		if f := lc.Factors[t]; f != 0 {
			c.Factors[tag] = f
		}
	}
	return c, len(c.Factors) > 0
}

// Applicable returns the combinations that apply to the given cases, in
// order, skipping any whose factors repeat an earlier one.
func Applicable(cases []string, combos []LoadCombination) []model.Combination {
	var out []model.Combination
next:
	for _, lc := range combos {
		c, ok := lc.ForCases(cases)
		if !ok {
			continue
		}
		for _, prev := range out {
			if maps.Equal(prev.Factors, c.Factors) {
				continue next
			}
		}
		out = append(out, c)
	}
	return out
}

// Governing is the largest magnitude of a quantity over a set of analyses
type Governing struct {
	Combination string
	Element     string
	Value       float64
}

// FindGoverning searches every element of every analysis for the sample with
// the largest magnitude of q. Ties go to the first in name order.
func FindGoverning(byCombination map[string]*results.AnalysisResult, q results.Quantity) (Governing, bool) {
	names := make([]string, 0, len(byCombination))
	for name := range byCombination {
		names = append(names, name)
	}
	sort.Strings(names)

	var g Governing
	found := false
	for _, name := range names {
		r := byCombination[name]
		if r == nil {
			continue
		}
		for _, el := range r.ElementNames() {
			for _, v := range r.Elements[el].Values(q) {
				if !found || math.Abs(v) > math.Abs(g.Value) {
					g = Governing{Combination: name, Element: el, Value: v}
					found = true
				}
			}
		}
	}
	return g, found
}
