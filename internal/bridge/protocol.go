// Package bridge implements the message protocol between the editor and the
// structural solver.
//
// The solver runs in its own execution context and is reached only through
// JSON messages correlated by id. Every inbound message (init, analyze, ping)
// is answered by exactly one outbound message (ready, results, pong, error)
// carrying the same id. The solver context handles requests one at a time,
// but callers must not rely on response order: a response is matched to its
// request by id alone.
package bridge

import (
	"encoding/json"
	"fmt"
)

// Kind is the type tag of a message
type Kind string

// Inbound kinds, sent to the solver
const (
	KindInit    Kind = "init"
	KindAnalyze Kind = "analyze"
	KindPing    Kind = "ping"
)

// Outbound kinds, sent by the solver
const (
	KindReady   Kind = "ready"
	KindResults Kind = "results"
	KindPong    Kind = "pong"
	KindError   Kind = "error"
)

// AnalysisType selects the solver entry point
type AnalysisType string

const (
	AnalysisSimple      AnalysisType = "simple"      // full combined model
	AnalysisLoadCase    AnalysisType = "loadCase"    // one named load case
	AnalysisCombination AnalysisType = "combination" // one named combination
)

// ParseAnalysisType converts a CLI string into an AnalysisType.
func ParseAnalysisType(s string) (AnalysisType, error) {
	switch a := AnalysisType(s); a {
	case AnalysisSimple, AnalysisLoadCase, AnalysisCombination:
		return a, nil
	}
	return "", fmt.Errorf("unknown analysis type %q (want simple, loadCase or combination)", s)
}

// Phase tells setup failures apart from per-request failures
type Phase string

const (
	PhaseInitialization Phase = "initialization"
	PhaseAnalysis       Phase = "analysis"
)

// Message is the envelope of every request and response
type Message struct {
	ID      string          `json:"id"`
	Type    Kind            `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// AnalyzeRequest is the payload of an analyze message
type AnalyzeRequest struct {
	Model        string       `json:"model"` // serialized model
	AnalysisType AnalysisType `json:"analysisType"`
	Target       string       `json:"target,omitempty"` // load case or combination name
}

// Validate checks that the request names a target when its type needs one.
func (r AnalyzeRequest) Validate() error {
	if r.Model == "" {
		return fmt.Errorf("analyze request has no model")
	}
	switch r.AnalysisType {
	case AnalysisSimple:
		return nil
	case AnalysisLoadCase, AnalysisCombination:
		if r.Target == "" {
			return fmt.Errorf("%s analysis needs a target name", r.AnalysisType)
		}
		return nil
	}
	return fmt.Errorf("unknown analysis type %q", r.AnalysisType)
}

// PongPayload answers a ping
type PongPayload struct {
	Initialized bool `json:"initialized"`
}

// ErrorPayload describes a solver or protocol failure
type ErrorPayload struct {
	Message string `json:"message"`
	Stack   string `json:"stack,omitempty"`
	Phase   Phase  `json:"phase"`
}

// NewMessage builds a message, encoding payload when it is not nil.
func NewMessage(id string, kind Kind, payload any) (Message, error) {
	msg := Message{ID: id, Type: kind}
	if payload == nil {
		return msg, nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return msg, fmt.Errorf("encode %s payload: %w", kind, err)
	}
	msg.Payload = data
	return msg, nil
}

// DecodePayload unmarshals the payload into v.
func (m Message) DecodePayload(v any) error {
	if len(m.Payload) == 0 {
		return fmt.Errorf("%s message %s has no payload", m.Type, m.ID)
	}
	if err := json.Unmarshal(m.Payload, v); err != nil {
		return fmt.Errorf("decode %s payload: %w", m.Type, err)
	}
	return nil
}

// Encode returns the wire form of m.
func Encode(m Message) ([]byte, error) {
	return json.Marshal(m)
}

// Decode parses the wire form of a message.
func Decode(data []byte) (Message, error) {
	var m Message
	if err := json.Unmarshal(data, &m); err != nil {
		return m, fmt.Errorf("decode message: %w", err)
	}
	if m.ID == "" {
		return m, fmt.Errorf("message has no id")
	}
	return m, nil
}
