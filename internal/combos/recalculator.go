package combos

import (
	"context"
	"sync"
)

// Outcome is what a submitted run resolves to. Superseded runs resolve with
// the canceled context's error.
type Outcome struct {
	Result *Result
	Err    error
}

type inflight struct {
	cancel context.CancelFunc
}

// Recalculator serializes recalculation per session: submitting a new run
// cancels the in-flight one, mirroring a user changing selections faster
// than the engine can price them.
type Recalculator struct {
	engine *Engine

	mu   sync.Mutex
	runs map[string]*inflight
}

func NewRecalculator(engine *Engine) *Recalculator {
	return &Recalculator{
		engine: engine,
		runs:   make(map[string]*inflight),
	}
}

// Submit starts a run for the session, canceling any run the same session
// still has in flight. The returned channel receives exactly one Outcome.
func (r *Recalculator) Submit(ctx context.Context, sessionID string, req Request) <-chan Outcome {
	runCtx, cancel := context.WithCancel(ctx)
	run := &inflight{cancel: cancel}

	r.mu.Lock()
	if prev, ok := r.runs[sessionID]; ok {
		prev.cancel()
	}
	r.runs[sessionID] = run
	r.mu.Unlock()

	out := make(chan Outcome, 1)
	go func() {
		defer func() {
			r.mu.Lock()
			if r.runs[sessionID] == run {
				delete(r.runs, sessionID)
			}
			r.mu.Unlock()
			cancel()
		}()

		result, err := r.engine.Run(runCtx, req)
		out <- Outcome{Result: result, Err: err}
	}()
	return out
}

// Run prices synchronously with the same supersede semantics as Submit.
func (r *Recalculator) Run(ctx context.Context, sessionID string, req Request) (*Result, error) {
	outcome := <-r.Submit(ctx, sessionID, req)
	return outcome.Result, outcome.Err
}

// CancelSession cancels whatever run the session has in flight.
func (r *Recalculator) CancelSession(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if run, ok := r.runs[sessionID]; ok {
		run.cancel()
		delete(r.runs, sessionID)
	}
}
