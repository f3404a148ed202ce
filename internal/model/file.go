package model

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadFromFile loads a model definition from a JSON file
func LoadFromFile(filepath string) (*Model, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes and validates a JSON model
func Parse(data []byte) (*Model, error) {
	var m Model
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}

	return &m, nil
}

// Serialize returns the string form embedded in solve requests
func (m *Model) Serialize() (string, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("serialize model: %w", err)
	}
	return string(data), nil
}

// Validate checks if the model definition is consistent
func (m *Model) Validate() error {
	if len(m.Nodes) == 0 {
		return &ValidationError{"model must have at least one node"}
	}

	nodes := map[string]bool{}
	for i, n := range m.Nodes {
		if n.Name == "" {
			return &ValidationError{fmt.Sprintf("node %d has no name", i+1)}
		}
		if nodes[n.Name] {
			return &ValidationError{fmt.Sprintf("duplicate node name %q", n.Name)}
		}
		if !n.Support.Valid() {
			return &ValidationError{fmt.Sprintf("node %s: unknown support %q", n.Name, n.Support)}
		}
		nodes[n.Name] = true
	}

	elements := map[string]bool{}
	for i, e := range m.Elements {
		if e.Name == "" {
			return &ValidationError{fmt.Sprintf("element %d has no name", i+1)}
		}
		if elements[e.Name] {
			return &ValidationError{fmt.Sprintf("duplicate element name %q", e.Name)}
		}
		if !nodes[e.NodeI] || !nodes[e.NodeJ] {
			return &ValidationError{fmt.Sprintf("element %s references a missing node", e.Name)}
		}
		elements[e.Name] = true
	}

	cases := map[string]bool{}
	for i, l := range m.Loads {
		switch l.Kind {
		case LoadNodal:
			if !nodes[l.Target] {
				return &ValidationError{fmt.Sprintf("load %d: node %q not found", i+1, l.Target)}
			}
		case LoadDistributed, LoadElementPoint:
			if !elements[l.Target] {
				return &ValidationError{fmt.Sprintf("load %d: element %q not found", i+1, l.Target)}
			}
		default:
			return &ValidationError{fmt.Sprintf("load %d: unknown kind %q", i+1, l.Kind)}
		}
		if l.Case != "" {
			cases[l.Case] = true
		}
	}

	for _, c := range m.Combinations {
		if c.Name == "" {
			return &ValidationError{"combination has no name"}
		}
		for name := range c.Factors {
			if !cases[name] {
				return &ValidationError{fmt.Sprintf("combination %s: unknown load case %q", c.Name, name)}
			}
		}
	}

	return nil
}

// ValidationError represents a model validation error
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}
