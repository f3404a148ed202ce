package model

import (
	"fmt"

	"github.com/alexiusacademia/goframe/internal/geom"
)

// Support is the boundary condition of a node
type Support string

const (
	SupportFree    Support = "free"
	SupportFixed   Support = "fixed"
	SupportPinned  Support = "pinned"
	SupportRollerX Support = "roller-x" // free to slide along X
	SupportRollerY Support = "roller-y" // free to slide along Y
)

// Valid reports whether s is a known support condition. Empty means free.
func (s Support) Valid() bool {
	switch s {
	case "", SupportFree, SupportFixed, SupportPinned, SupportRollerX, SupportRollerY:
		return true
	}
	return false
}

// Node is a joint of the frame
type Node struct {
	Name    string  `json:"name"`
	X       float64 `json:"x"` // m
	Y       float64 `json:"y"` // m
	Support Support `json:"support,omitempty"`
}

// Pos returns the node coordinates as a point.
func (n Node) Pos() geom.Point {
	return geom.Point{X: n.X, Y: n.Y}
}

// Element is a prismatic frame member between two nodes
type Element struct {
	Name  string `json:"name"`
	NodeI string `json:"nodeI"`
	NodeJ string `json:"nodeJ"`

	// Stiffness properties, units as expected by the solver
	E float64 `json:"E"`
	I float64 `json:"I"`
	A float64 `json:"A"`
}

// LoadKind selects which magnitude fields of a Load apply
type LoadKind string

const (
	LoadNodal        LoadKind = "nodal"
	LoadDistributed  LoadKind = "distributed"
	LoadElementPoint LoadKind = "elementPoint"
)

// Load is a nodal, distributed or element point load
type Load struct {
	Kind   LoadKind `json:"kind"`
	Target string   `json:"target"` // node name for nodal loads, element name otherwise

	// Nodal load components
	Fx float64 `json:"fx,omitempty"`
	Fy float64 `json:"fy,omitempty"`
	Mz float64 `json:"mz,omitempty"`

	// Distributed intensity at nodeI and nodeJ. WJ == nil means uniform.
	W  float64  `json:"w,omitempty"`
	WJ *float64 `json:"wJ,omitempty"`

	// Element point load and its distance from nodeI (m)
	P float64 `json:"p,omitempty"`
	A float64 `json:"a,omitempty"`

	// Load case tag, e.g. "D" or "L". Empty loads belong to every analysis.
	Case string `json:"case,omitempty"`
}

// Combination is a named set of factors applied to load cases
type Combination struct {
	Name    string             `json:"name"`
	Factors map[string]float64 `json:"factors"`
}

// Model is the complete frame definition sent to the solver
type Model struct {
	Name         string        `json:"name,omitempty"`
	Nodes        []Node        `json:"nodes"`
	Elements     []Element     `json:"elements"`
	Loads        []Load        `json:"loads,omitempty"`
	Combinations []Combination `json:"combinations,omitempty"`
}

// NodeMap indexes nodes by name. Later duplicates win.
func NodeMap(nodes []Node) map[string]Node {
	m := make(map[string]Node, len(nodes))
	for _, n := range nodes {
		m[n.Name] = n
	}
	return m
}

// Node looks up a node by name
func (m *Model) Node(name string) (Node, bool) {
	for _, n := range m.Nodes {
		if n.Name == name {
			return n, true
		}
	}
	return Node{}, false
}

// Element looks up an element by name
func (m *Model) Element(name string) (Element, bool) {
	for _, e := range m.Elements {
		if e.Name == name {
			return e, true
		}
	}
	return Element{}, false
}

// Endpoints returns the nodes referenced by e.
func (m *Model) Endpoints(e Element) (Node, Node, error) {
	ni, ok := m.Node(e.NodeI)
	if !ok {
		return Node{}, Node{}, fmt.Errorf("element %s: node %q not found", e.Name, e.NodeI)
	}
	nj, ok := m.Node(e.NodeJ)
	if !ok {
		return Node{}, Node{}, fmt.Errorf("element %s: node %q not found", e.Name, e.NodeJ)
	}
	return ni, nj, nil
}

// Cases returns the distinct load case tags in order of first use.
func (m *Model) Cases() []string {
	seen := map[string]bool{}
	var cases []string
	for _, l := range m.Loads {
		if l.Case == "" || seen[l.Case] {
			continue
		}
		seen[l.Case] = true
		cases = append(cases, l.Case)
	}
	return cases
}

// Bounds returns the bounding box of all nodes.
func (m *Model) Bounds() (geom.Bounds, bool) {
	pts := make([]geom.Point, len(m.Nodes))
	for i, n := range m.Nodes {
		pts[i] = n.Pos()
	}
	return geom.BoundsOf(pts)
}
