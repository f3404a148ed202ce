package nscp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/goframe/internal/results"
)

func TestTypeOf(t *testing.T) {
	for tag, want := range map[string]LoadType{"D": Dead, "LL": Live, "Wind": Wind, " eq ": Earthquake, "Lr": Roof} {
		got, ok := TypeOf(tag)
		require.True(t, ok, tag)
		assert.Equal(t, want, got, tag)
	}
	_, ok := TypeOf("snow")
	assert.False(t, ok)
}

func TestFactored(t *testing.T) {
	// 1.2(50) + 1.6(30) = 108
	mu := LoadCombinations[1].Factored(map[LoadType]float64{Dead: 50, Live: 30})
	assert.InDelta(t, 108.0, mu, 1e-9)
}

func TestGoverningFactored(t *testing.T) {
	tests := []struct {
		name   string
		values map[LoadType]float64
		combos []LoadCombination
		want   float64
		id     string
	}{
		// 1.4(50) = 70 < 1.2(50) + 1.6(30) = 108
		{"dead and live", map[LoadType]float64{Dead: 50, Live: 30}, LoadCombinations, 108, "2"},
		// 1.4(100) = 140 > 1.2(100) + 1.6(5) = 128
		{"dead governs", map[LoadType]float64{Dead: 100, Live: 5}, SimplifiedCombinations, 140, "1"},
		// uplift: 0.9(10) + 1.0(-60) = -51 beats 1.2(10) + 0.5(-60) = -18
		{"wind uplift", map[LoadType]float64{Dead: 10, Wind: -60}, []LoadCombination{LoadCombinations[2], LoadCombinations[5]}, -51, "6"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, lc, ok := GoverningFactored(tt.values, tt.combos)
			require.True(t, ok)
			assert.InDelta(t, tt.want, v, 1e-9)
			assert.Equal(t, tt.id, lc.ID)
		})
	}

	_, _, ok := GoverningFactored(map[LoadType]float64{Dead: 1}, nil)
	assert.False(t, ok)
}

func TestForCases(t *testing.T) {
	c, ok := LoadCombinations[1].ForCases([]string{"DL", "LL", "snow"})
	require.True(t, ok)
	assert.Equal(t, "U2", c.Name)
	assert.Equal(t, map[string]float64{"DL": 1.2, "LL": 1.6}, c.Factors)

	_, ok = LoadCombinations[4].ForCases([]string{"W"})
	assert.False(t, ok)
}

func TestApplicableSkipsRepeats(t *testing.T) {
	// with only D and L several combinations reduce to 1.2D + 1.0L or 0.9D
	combos := Applicable([]string{"D", "L"}, LoadCombinations)

	var names []string
	for _, c := range combos {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"U1", "U2", "U3", "U6"}, names)
	assert.Equal(t, map[string]float64{"D": 0.9}, combos[3].Factors)
}

func TestFindGoverning(t *testing.T) {
	byCombo := map[string]*results.AnalysisResult{
		"U1": {Elements: map[string]results.ElementForces{
			"B1": {Moments: []float64{-30, 10, 20}},
		}},
		"U2": {Elements: map[string]results.ElementForces{
			"B1": {Moments: []float64{-42, 12, 25}},
			"C1": {Moments: []float64{5, 0, -5}},
		}},
		"U3": nil,
	}

	g, ok := FindGoverning(byCombo, results.Moment)
	require.True(t, ok)
	assert.Equal(t, Governing{Combination: "U2", Element: "B1", Value: -42}, g)

	_, ok = FindGoverning(nil, results.Moment)
	assert.False(t, ok)
}
