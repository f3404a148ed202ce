// Package results defines the analysis result schema returned by the solver.
//
// A result is decoded and validated once when it crosses the solver boundary.
// Fields the solver omits decode to zero; after Decode every element carries
// force arrays of one common length.
package results

import (
	"encoding/json"
	"fmt"
	"sort"
)

// NodeDisplacement holds the displacement of one node
type NodeDisplacement struct {
	DX float64 `json:"DX"` // mm
	DY float64 `json:"DY"` // mm
	RZ float64 `json:"RZ"` // rad
}

// ElementForces holds force quantities sampled at evenly spaced stations
type ElementForces struct {
	Moments []float64 `json:"moments"`
	Shears  []float64 `json:"shears"`
	Axials  []float64 `json:"axials"`

	// Local deflection relative to the deformed chord (mm), optional
	LocalDx []float64 `json:"localDx,omitempty"`
	LocalDy []float64 `json:"localDy,omitempty"`
}

// Quantity selects one force array of ElementForces
type Quantity string

const (
	Moment Quantity = "moment"
	Shear  Quantity = "shear"
	Axial  Quantity = "axial"
)

// ParseQuantity converts a CLI or protocol string into a Quantity.
func ParseQuantity(s string) (Quantity, error) {
	switch q := Quantity(s); q {
	case Moment, Shear, Axial:
		return q, nil
	}
	return "", fmt.Errorf("unknown diagram quantity %q (want moment, shear or axial)", s)
}

// Values returns the samples for q.
func (f ElementForces) Values(q Quantity) []float64 {
	switch q {
	case Moment:
		return f.Moments
	case Shear:
		return f.Shears
	case Axial:
		return f.Axials
	}
	return nil
}

// AnalysisResult is the immutable output of one solve
type AnalysisResult struct {
	Nodes    map[string]NodeDisplacement `json:"nodes"`
	Elements map[string]ElementForces    `json:"elements"`
}

// Displacement returns the displacement of a node, zero when absent.
func (r *AnalysisResult) Displacement(node string) NodeDisplacement {
	if r == nil {
		return NodeDisplacement{}
	}
	return r.Nodes[node]
}

// Forces returns the forces of an element and whether the result has them.
func (r *AnalysisResult) Forces(element string) (ElementForces, bool) {
	if r == nil {
		return ElementForces{}, false
	}
	f, ok := r.Elements[element]
	return f, ok
}

// SampleCount returns the common length of the element force arrays.
func (r *AnalysisResult) SampleCount() int {
	if r == nil {
		return 0
	}
	for _, f := range r.Elements {
		return len(f.Moments)
	}
	return 0
}

// ElementNames returns element names in sorted order.
func (r *AnalysisResult) ElementNames() []string {
	names := make([]string, 0, len(r.Elements))
	for name := range r.Elements {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Decode parses a serialized result and validates it
func Decode(data []byte) (*AnalysisResult, error) {
	var r AnalysisResult
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("decode analysis result: %w", err)
	}
	if err := r.Normalize(); err != nil {
		return nil, err
	}
	return &r, nil
}

// Normalize fills missing arrays with zeros and checks that every element
// carries the same number of samples.
func (r *AnalysisResult) Normalize() error {
	if r.Nodes == nil {
		r.Nodes = map[string]NodeDisplacement{}
	}
	if r.Elements == nil {
		r.Elements = map[string]ElementForces{}
	}

	n := 0
	for _, f := range r.Elements {
		n = max(n, len(f.Moments), len(f.Shears), len(f.Axials))
	}

	for _, name := range r.ElementNames() {
		f := r.Elements[name]
		var err error
		if f.Moments, err = fill(f.Moments, n); err != nil {
			return fmt.Errorf("element %s moments: %w", name, err)
		}
		if f.Shears, err = fill(f.Shears, n); err != nil {
			return fmt.Errorf("element %s shears: %w", name, err)
		}
		if f.Axials, err = fill(f.Axials, n); err != nil {
			return fmt.Errorf("element %s axials: %w", name, err)
		}
		if len(f.LocalDx) != len(f.LocalDy) {
			return fmt.Errorf("element %s: localDx has %d samples, localDy has %d", name, len(f.LocalDx), len(f.LocalDy))
		}
		r.Elements[name] = f
	}
	return nil
}

// fill returns a zero array of length n for a missing array and rejects
// arrays of any other length.
func fill(v []float64, n int) ([]float64, error) {
	if len(v) == n {
		return v, nil
	}
	if len(v) == 0 {
		return make([]float64, n), nil
	}
	return nil, fmt.Errorf("has %d samples, expected %d", len(v), n)
}
