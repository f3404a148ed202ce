package bridge

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrClosed is returned once the connection to the solver is gone.
	ErrClosed = errors.New("bridge: connection closed")

	// ErrNotReady is reported when analyze arrives before the solver is ready.
	ErrNotReady = errors.New("solver is not initialized")

	// ErrDuplicateID is returned when a call reuses the id of a pending request.
	ErrDuplicateID = errors.New("bridge: message id already pending")
)

// SolverError is an error message returned by the solver context
type SolverError struct {
	Message string
	Stack   string
	Phase   Phase
}

func (e *SolverError) Error() string {
	return fmt.Sprintf("solver %s error: %s", e.Phase, e.Message)
}

// Unwrap returns ErrNotReady when the solver rejected an analysis because it
// was not initialized, so errors.Is works across the message boundary.
func (e *SolverError) Unwrap() error {
	if e.Phase == PhaseAnalysis && strings.HasPrefix(e.Message, ErrNotReady.Error()) {
		return ErrNotReady
	}
	return nil
}

func newSolverError(p ErrorPayload) *SolverError {
	return &SolverError{Message: p.Message, Stack: p.Stack, Phase: p.Phase}
}
