package results

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeFillsMissingArrays(t *testing.T) {
	r, err := Decode([]byte(`{
		"nodes": {"N2": {"DY": -3.5}},
		"elements": {
			"E1": {"moments": [1, 2, 3]},
			"E2": {"shears": [4, 5, 6], "axials": []}
		}
	}`))
	require.NoError(t, err)

	assert.Equal(t, []float64{0, 0, 0}, r.Elements["E1"].Shears)
	assert.Equal(t, []float64{0, 0, 0}, r.Elements["E2"].Axials)
	assert.Equal(t, 3, r.SampleCount())
	assert.Equal(t, -3.5, r.Displacement("N2").DY)
	assert.Equal(t, NodeDisplacement{}, r.Displacement("N9"))
	assert.Equal(t, []string{"E1", "E2"}, r.ElementNames())
}

func TestDecodeRejectsMismatchedSamples(t *testing.T) {
	_, err := Decode([]byte(`{"elements": {"E1": {"moments": [1, 2, 3], "shears": [1, 2]}}}`))
	assert.ErrorContains(t, err, "element E1 shears")

	_, err = Decode([]byte(`{"elements": {"E1": {"moments": [1, 2], "localDx": [0, 0]}}}`))
	assert.ErrorContains(t, err, "localDy")

	_, err = Decode([]byte(`[1, 2]`))
	assert.Error(t, err)
}

func TestDecodeEmpty(t *testing.T) {
	r, err := Decode([]byte(`{}`))
	require.NoError(t, err)
	assert.NotNil(t, r.Nodes)
	assert.NotNil(t, r.Elements)
	assert.Equal(t, 0, r.SampleCount())

	_, ok := r.Forces("E1")
	assert.False(t, ok)
}

func TestNilResult(t *testing.T) {
	var r *AnalysisResult
	assert.Equal(t, NodeDisplacement{}, r.Displacement("N1"))
	_, ok := r.Forces("E1")
	assert.False(t, ok)
}

func TestParseQuantity(t *testing.T) {
	q, err := ParseQuantity("shear")
	require.NoError(t, err)
	assert.Equal(t, Shear, q)

	_, err = ParseQuantity("torsion")
	assert.Error(t, err)

	f := ElementForces{Moments: []float64{1}, Shears: []float64{2}, Axials: []float64{3}}
	assert.Equal(t, []float64{3}, f.Values(Axial))
	assert.Nil(t, f.Values("torsion"))
}
