// Package workflow answers questions about a table by planning, generating
// code, executing it in a sandbox and retrying with the observed error
// until the code runs or the attempt budget is spent.
//
// A session is strictly sequential:
//
//	planning -> synthesizing -> executing -> formatting -> done
//	                 ^               |
//	                 +--- retry -----+--> aborted
//
// Only execution errors are recovered. A failed model call during planning,
// synthesis or formatting ends the session with an error.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jonwraymond/tableqa/catalog"
	"github.com/jonwraymond/tableqa/code"
	"github.com/jonwraymond/tableqa/frame"
	"github.com/jonwraymond/tableqa/llm"
	"github.com/jonwraymond/tableqa/schema"
)

const (
	// DefaultMaxAttempts is the total number of code syntheses per session.
	DefaultMaxAttempts = 3

	// DefaultConcurrency bounds RunBatch.
	DefaultConcurrency = 4
)

var (
	ErrPlan      = errors.New("plan synthesis failed")
	ErrSynthesis = errors.New("code synthesis failed")
	ErrFormat    = errors.New("result formatting failed")
)

// Config holds the configuration for a Workflow.
type Config struct {
	Logger   *slog.Logger
	LLM      llm.Client
	Dataset  *frame.Frame
	Executor code.Executor
	Catalog  *catalog.Catalog
	Prompts  *Prompts
	Metrics  *Metrics

	MaxAttempts int           // Total synthesis calls per session (default 3)
	PreviewRows int           // Rows shown in the schema preview (default 2)
	ExecTimeout time.Duration // Per-execution limit; zero uses the executor default
	Concurrency int           // RunBatch parallelism (default 4)

	OnProgress ProgressCallback
}

// Progress is reported at every stage transition.
type Progress struct {
	SessionID string
	Stage     Stage
	Iteration int
	Error     error // Set when the session failed
}

// ProgressCallback is called at each stage of a session.
type ProgressCallback func(Progress)

// Workflow runs sessions against one dataset. It is safe for concurrent
// use; every Run owns its State.
type Workflow struct {
	cfg    Config
	log    *slog.Logger
	schema string
}

// New creates a new Workflow.
func New(cfg Config) (*Workflow, error) {
	if cfg.LLM == nil {
		return nil, fmt.Errorf("LLM client is required")
	}
	if cfg.Dataset == nil {
		return nil, fmt.Errorf("dataset is required")
	}
	if cfg.Executor == nil {
		return nil, fmt.Errorf("executor is required")
	}
	if cfg.Catalog == nil {
		return nil, fmt.Errorf("catalog is required")
	}
	if cfg.MaxAttempts < 0 {
		return nil, fmt.Errorf("max attempts must be positive, got %d", cfg.MaxAttempts)
	}
	if cfg.Prompts == nil {
		p, err := LoadPrompts()
		if err != nil {
			return nil, err
		}
		cfg.Prompts = p
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Metrics == nil {
		cfg.Metrics = NewMetrics(nil)
	}
	if cfg.MaxAttempts == 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	if cfg.PreviewRows == 0 {
		cfg.PreviewRows = schema.DefaultPreviewRows
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = DefaultConcurrency
	}

	return &Workflow{
		cfg:    cfg,
		log:    cfg.Logger,
		schema: schema.Describe(cfg.Dataset, schema.WithPreviewRows(cfg.PreviewRows)).String(),
	}, nil
}

// MaxAttempts returns the synthesis budget per session.
func (w *Workflow) MaxAttempts() int { return w.cfg.MaxAttempts }

// Run answers question. The returned State is never nil.
//
// Exhausting the attempt budget is not an error: the state comes back with
// Stage == StageAborted, no Output and no Answer. Use State.Err to turn
// that into ErrNoAnswer.
func (w *Workflow) Run(ctx context.Context, question string) (*State, error) {
	st := NewState(question)
	log := w.log.With("session", st.ID)
	start := time.Now()
	log.Info("workflow: session started", "question", question)

	w.transition(st, StagePlanning)
	if err := w.Plan(ctx, st); err != nil {
		return w.fail(log, st, err)
	}

	for {
		w.transition(st, StageSynthesizing)
		if err := w.Synthesize(ctx, st); err != nil {
			return w.fail(log, st, err)
		}

		w.transition(st, StageExecuting)
		w.Execute(ctx, st)
		if err := ctx.Err(); err != nil {
			return w.fail(log, st, err)
		}

		decision := Decide(st.Error, st.Iterations, w.cfg.MaxAttempts)
		log.Debug("workflow: governor decided", "decision", decision, "attempt", st.Iterations)
		if decision == Retry {
			log.Info("workflow: retrying failed execution", "attempt", st.Iterations, "error", st.Error)
			continue
		}
		if decision == Abort {
			st.Output = nil
			w.transition(st, StageAborted)
			w.cfg.Metrics.observeRun(outcomeAborted, st.Iterations)
			log.Info("workflow: giving up", "attempts", st.Iterations, "error", st.Error, "duration", time.Since(start))
			return st, nil
		}
		break
	}

	w.transition(st, StageFormatting)
	if err := w.Format(ctx, st); err != nil {
		return w.fail(log, st, err)
	}
	w.transition(st, StageDone)
	w.cfg.Metrics.observeRun(outcomeAnswered, st.Iterations)
	log.Info("workflow: session answered", "attempts", st.Iterations, "duration", time.Since(start))
	return st, nil
}

func (w *Workflow) transition(st *State, stage Stage) {
	st.Stage = stage
	w.notify(Progress{SessionID: st.ID, Stage: stage, Iteration: st.Iterations})
}

func (w *Workflow) fail(log *slog.Logger, st *State, err error) (*State, error) {
	log.Error("workflow: session failed", "stage", st.Stage, "attempt", st.Iterations, "error", err)
	w.cfg.Metrics.observeRun(outcomeError, st.Iterations)
	w.notify(Progress{SessionID: st.ID, Stage: st.Stage, Iteration: st.Iterations, Error: err})
	return st, fmt.Errorf("workflow %s: %w", st.Stage, err)
}

func (w *Workflow) notify(p Progress) {
	if w.cfg.OnProgress != nil {
		w.cfg.OnProgress(p)
	}
}
