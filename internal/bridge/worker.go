package bridge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"github.com/alexiusacademia/goframe/internal/results"
)

// Solver is the external analysis capability. Each analysis takes a
// serialized model and returns a serialized AnalysisResult.
type Solver interface {
	Init(ctx context.Context) error
	AnalyzeModel(ctx context.Context, model string) (string, error)
	AnalyzeLoadCase(ctx context.Context, model, loadCase string) (string, error)
	AnalyzeCombination(ctx context.Context, model, combination string) (string, error)
}

// Worker is the solver execution context. It answers every inbound message
// with exactly one outbound message and runs requests strictly one at a time.
type Worker struct {
	solver Solver
	logger *slog.Logger

	mu    sync.Mutex // serializes Handle
	state atomic.Int32
}

// NewWorker wraps solver. A nil logger uses slog.Default().
func NewWorker(solver Solver, logger *slog.Logger) *Worker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Worker{solver: solver, logger: logger}
}

// State returns the current readiness state.
func (w *Worker) State() State {
	return State(w.state.Load())
}

func (w *Worker) setState(s State) {
	w.state.Store(int32(s))
	w.logger.Debug("solver state", "state", s)
}

// Serve reads requests from conn until it closes or ctx is done, both of
// which end Serve without error.
func (w *Worker) Serve(ctx context.Context, conn Conn) error {
	for {
		data, err := conn.Recv(ctx)
		if errors.Is(err, ErrClosed) || ctx.Err() != nil {
			return nil
		}
		if err != nil {
			return err
		}

		msg, err := Decode(data)
		if err != nil {
			// no id to answer to
			w.logger.Warn("dropping malformed message", "error", err)
			continue
		}

		resp := w.Handle(ctx, msg)
		out, err := Encode(resp)
		if err != nil {
			return fmt.Errorf("encode %s response: %w", resp.Type, err)
		}
		if err := conn.Send(ctx, out); err != nil {
			if errors.Is(err, ErrClosed) {
				return nil
			}
			return err
		}
	}
}

// Handle processes one request and returns its response. Concurrent calls
// are run one after another.
func (w *Worker) Handle(ctx context.Context, msg Message) Message {
	w.mu.Lock()
	defer w.mu.Unlock()

	log := w.logger.With("id", msg.ID, "type", msg.Type)
	log.Debug("request")

	switch msg.Type {
	case KindInit:
		return w.handleInit(ctx, msg, log)
	case KindAnalyze:
		return w.handleAnalyze(ctx, msg, log)
	case KindPing:
		return w.reply(msg.ID, KindPong, PongPayload{Initialized: w.State() == Ready})
	default:
		log.Warn("unknown message type")
		return w.fail(msg.ID, PhaseAnalysis, fmt.Sprintf("unknown message type: %q", msg.Type), "")
	}
}

func (w *Worker) handleInit(ctx context.Context, msg Message, log *slog.Logger) Message {
	if w.State() == Ready {
		return w.reply(msg.ID, KindReady, nil)
	}

	w.setState(Initializing)
	stack, err := protect(func() error { return w.solver.Init(ctx) })
	if err != nil {
		w.setState(Faulted)
		log.Error("solver initialization failed", "error", err)
		return w.fail(msg.ID, PhaseInitialization, err.Error(), stack)
	}

	w.setState(Ready)
	log.Info("solver ready")
	return w.reply(msg.ID, KindReady, nil)
}

func (w *Worker) handleAnalyze(ctx context.Context, msg Message, log *slog.Logger) Message {
	if s := w.State(); s != Ready {
		return w.fail(msg.ID, PhaseAnalysis, fmt.Sprintf("%v (state %s)", ErrNotReady, s), "")
	}

	var req AnalyzeRequest
	if err := msg.DecodePayload(&req); err != nil {
		return w.fail(msg.ID, PhaseAnalysis, err.Error(), "")
	}
	if err := req.Validate(); err != nil {
		return w.fail(msg.ID, PhaseAnalysis, err.Error(), "")
	}

	var out string
	stack, err := protect(func() error {
		var err error
		switch req.AnalysisType {
		case AnalysisLoadCase:
			out, err = w.solver.AnalyzeLoadCase(ctx, req.Model, req.Target)
		case AnalysisCombination:
			out, err = w.solver.AnalyzeCombination(ctx, req.Model, req.Target)
		default:
			out, err = w.solver.AnalyzeModel(ctx, req.Model)
		}
		return err
	})
	if err != nil {
		log.Error("analysis failed", "analysis", req.AnalysisType, "target", req.Target, "error", err)
		return w.fail(msg.ID, PhaseAnalysis, err.Error(), stack)
	}

	result, err := results.Decode([]byte(out))
	if err != nil {
		return w.fail(msg.ID, PhaseAnalysis, err.Error(), "")
	}

	log.Info("analysis complete", "analysis", req.AnalysisType, "target", req.Target, "elements", len(result.Elements))
	return w.reply(msg.ID, KindResults, result)
}

func (w *Worker) reply(id string, kind Kind, payload any) Message {
	msg, err := NewMessage(id, kind, payload)
	if err != nil {
		return w.fail(id, PhaseAnalysis, err.Error(), "")
	}
	return msg
}

func (w *Worker) fail(id string, phase Phase, message, stack string) Message {
	msg, err := NewMessage(id, KindError, ErrorPayload{Message: message, Stack: stack, Phase: phase})
	if err != nil {
		// ErrorPayload holds only strings
		panic(err)
	}
	return msg
}

// protect runs fn and turns a panic into an error plus the panicking stack.
func protect(fn func() error) (stack string, err error) {
	defer func() {
		if r := recover(); r != nil {
			stack = string(debug.Stack())
			err = fmt.Errorf("solver panic: %v", r)
		}
	}()
	return "", fn()
}
