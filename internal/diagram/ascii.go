package diagram

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/alexiusacademia/goframe/internal/results"
)

// Extreme is the signed min and max of one element's diagram
type Extreme struct {
	Element string
	Min     float64
	MinAt   float64 // station of Min as a fraction of the element length
	Max     float64
	MaxAt   float64
}

// Extremes returns per-element extremes of quantity q, sorted by element name.
func Extremes(r *results.AnalysisResult, q results.Quantity) []Extreme {
	var out []Extreme
	for _, name := range r.ElementNames() {
		values := r.Elements[name].Values(q)
		if len(values) == 0 {
			continue
		}
		ex := Extreme{Element: name, Min: values[0], Max: values[0]}
		for i, v := range values {
			if v < ex.Min {
				ex.Min, ex.MinAt = v, station(i, len(values))
			}
			if v > ex.Max {
				ex.Max, ex.MaxAt = v, station(i, len(values))
			}
		}
		out = append(out, ex)
	}
	return out
}

func station(i, n int) float64 {
	if n < 2 {
		return 0
	}
	return float64(i) / float64(n-1)
}

// DrawASCIIDiagram draws one element's samples as horizontal bars, one row per station
func DrawASCIIDiagram(title string, values []float64, width int) string {
	var sb strings.Builder

	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  %s\n", title))
	sb.WriteString(fmt.Sprintf("  %s\n\n", strings.Repeat("─", len([]rune(title)))))

	maxAbs := 0.0
	for _, v := range values {
		maxAbs = math.Max(maxAbs, math.Abs(v))
	}
	half := width / 2
	scale := 0.0
	if maxAbs > 0 {
		scale = float64(half) / maxAbs
	}

	for i, v := range values {
		bar := int(math.Round(math.Abs(v) * scale))
		left, right := strings.Repeat(" ", half), strings.Repeat(" ", half)
		if v < 0 {
			left = strings.Repeat(" ", half-bar) + strings.Repeat("█", bar)
		} else {
			right = strings.Repeat("█", bar) + strings.Repeat(" ", half-bar)
		}
		sb.WriteString(fmt.Sprintf("  %4.2f │%s│%s│ %10.3f\n", station(i, len(values)), left, right, v))
	}

	return sb.String()
}

// DrawSummaryBox creates a summary box for results
func DrawSummaryBox(title string, lines []string) string {
	var sb strings.Builder

	width := len([]rune(title))
	for _, line := range lines {
		width = max(width, len([]rune(line)))
	}
	width += 4

	border := strings.Repeat("═", width)
	sb.WriteString(fmt.Sprintf("  ╔%s╗\n", border))
	sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", pad(title, width-4)))
	sb.WriteString(fmt.Sprintf("  ╠%s╣\n", border))
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", pad(line, width-4)))
	}
	sb.WriteString(fmt.Sprintf("  ╚%s╝\n", border))

	return sb.String()
}

// pad right-pads s to n runes; %-*s counts bytes and misaligns ² or φ
func pad(s string, n int) string {
	if k := n - len([]rune(s)); k > 0 {
		return s + strings.Repeat(" ", k)
	}
	return s
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
