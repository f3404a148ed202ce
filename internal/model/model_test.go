package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const portalFrame = `{
	"name": "portal",
	"nodes": [
		{"name": "N1", "x": 0, "y": 0, "support": "fixed"},
		{"name": "N2", "x": 0, "y": 3},
		{"name": "N3", "x": 4, "y": 3},
		{"name": "N4", "x": 4, "y": 0, "support": "pinned"}
	],
	"elements": [
		{"name": "C1", "nodeI": "N1", "nodeJ": "N2", "E": 200e6, "I": 1e-4, "A": 0.01},
		{"name": "B1", "nodeI": "N2", "nodeJ": "N3", "E": 200e6, "I": 2e-4, "A": 0.01},
		{"name": "C2", "nodeI": "N4", "nodeJ": "N3", "E": 200e6, "I": 1e-4, "A": 0.01}
	],
	"loads": [
		{"kind": "distributed", "target": "B1", "w": -10, "case": "D"},
		{"kind": "distributed", "target": "B1", "w": -5, "case": "L"},
		{"kind": "nodal", "target": "N2", "fx": 8, "case": "W"},
		{"kind": "elementPoint", "target": "B1", "p": -12, "a": 2, "case": "L"}
	],
	"combinations": [
		{"name": "U2", "factors": {"D": 1.2, "L": 1.6}}
	]
}`

func TestParse(t *testing.T) {
	m, err := Parse([]byte(portalFrame))
	require.NoError(t, err)

	assert.Len(t, m.Nodes, 4)
	assert.Equal(t, []string{"D", "L", "W"}, m.Cases())

	n, ok := m.Node("N4")
	require.True(t, ok)
	assert.Equal(t, SupportPinned, n.Support)

	e, ok := m.Element("C2")
	require.True(t, ok)
	ni, nj, err := m.Endpoints(e)
	require.NoError(t, err)
	assert.Equal(t, "N4", ni.Name)
	assert.Equal(t, "N3", nj.Name)

	b, ok := m.Bounds()
	require.True(t, ok)
	assert.Equal(t, 4.0, b.Width())
	assert.Equal(t, 3.0, b.Height())
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portal.json")
	require.NoError(t, os.WriteFile(path, []byte(portalFrame), 0644))

	m, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "portal", m.Name)

	_, err = LoadFromFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestSerializeRoundTrip(t *testing.T) {
	m, err := Parse([]byte(portalFrame))
	require.NoError(t, err)

	s, err := m.Serialize()
	require.NoError(t, err)

	again, err := Parse([]byte(s))
	require.NoError(t, err)
	assert.Equal(t, m, again)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		json string
		want string
	}{
		{"no nodes", `{"nodes": []}`, "at least one node"},
		{"unnamed node", `{"nodes": [{"x": 1}]}`, "node 1 has no name"},
		{"duplicate node", `{"nodes": [{"name": "A"}, {"name": "A"}]}`, "duplicate node"},
		{"bad support", `{"nodes": [{"name": "A", "support": "glued"}]}`, "unknown support"},
		{"missing node", `{"nodes": [{"name": "A"}], "elements": [{"name": "E", "nodeI": "A", "nodeJ": "B"}]}`, "missing node"},
		{"duplicate element", `{"nodes": [{"name": "A"}, {"name": "B"}], "elements": [{"name": "E", "nodeI": "A", "nodeJ": "B"}, {"name": "E", "nodeI": "B", "nodeJ": "A"}]}`, "duplicate element"},
		{"nodal load target", `{"nodes": [{"name": "A"}], "loads": [{"kind": "nodal", "target": "Z"}]}`, "node \"Z\" not found"},
		{"element load target", `{"nodes": [{"name": "A"}], "loads": [{"kind": "distributed", "target": "A"}]}`, "element \"A\" not found"},
		{"load kind", `{"nodes": [{"name": "A"}], "loads": [{"kind": "thermal", "target": "A"}]}`, "unknown kind"},
		{"combination case", `{"nodes": [{"name": "A"}], "combinations": [{"name": "U1", "factors": {"D": 1.4}}]}`, "unknown load case"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.json))
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Contains(t, ve.Error(), tt.want)
		})
	}
}

func TestEndpointsMissingNode(t *testing.T) {
	m := &Model{Nodes: []Node{{Name: "A"}}}
	_, _, err := m.Endpoints(Element{Name: "E", NodeI: "A", NodeJ: "B"})
	assert.ErrorContains(t, err, `node "B" not found`)
}
