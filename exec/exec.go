package exec

import (
	"context"
	"fmt"
	"time"

	"github.com/jonwraymond/tableqa/catalog"
	"github.com/jonwraymond/tableqa/code"
	"github.com/jonwraymond/tableqa/runtime/yaegi"
	"github.com/jonwraymond/tableqa/workflow"
)

// Exec is the facade for asking questions about one dataset.
// It wires the sandbox, the package catalog and the workflow together.
type Exec struct {
	opts     Options
	executor *code.DefaultExecutor
	workflow *workflow.Workflow
}

// New creates a new Exec instance with the given options.
func New(opts Options) (*Exec, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	opts.applyDefaults()
	if opts.Engine == nil {
		opts.Engine = yaegi.New(yaegi.Config{})
	}

	executor, err := code.NewDefaultExecutor(code.Config{
		Engine:         opts.Engine,
		Dataset:        opts.Dataset,
		AllowList:      opts.Catalog.Packages(),
		DefaultTimeout: opts.DefaultTimeout,
		Logger:         code.SlogLogger(opts.Logger),
	})
	if err != nil {
		return nil, fmt.Errorf("exec: %w", err)
	}

	wf, err := workflow.New(workflow.Config{
		Logger:      opts.Logger,
		LLM:         opts.LLM,
		Dataset:     opts.Dataset,
		Executor:    executor,
		Catalog:     opts.Catalog,
		Metrics:     workflow.NewMetrics(opts.Registerer),
		MaxAttempts: opts.MaxAttempts,
		PreviewRows: opts.PreviewRows,
		Concurrency: opts.Concurrency,
		OnProgress:  opts.OnProgress,
	})
	if err != nil {
		return nil, fmt.Errorf("exec: %w", err)
	}

	return &Exec{opts: opts, executor: executor, workflow: wf}, nil
}

// Ask answers a single question. The returned error mirrors Result.Error.
func (e *Exec) Ask(ctx context.Context, question string) (Result, error) {
	start := time.Now()
	st, err := e.workflow.Run(ctx, question)
	res := newResult(st, err, time.Since(start))
	return res, res.Error
}

// AskBatch answers independent questions concurrently. Results keep the
// order of questions; per-question failures are reported in each Result.
func (e *Exec) AskBatch(ctx context.Context, questions []string) ([]Result, error) {
	start := time.Now()
	batch, err := e.workflow.RunBatch(ctx, questions)
	if err != nil {
		return nil, err
	}
	d := time.Since(start)
	out := make([]Result, len(batch))
	for i, b := range batch {
		out[i] = newResult(b.State, b.Err, d)
	}
	return out, nil
}

// RunCode executes a snippet against the dataset in the sandbox, outside
// any session. It is useful for checking code by hand.
func (e *Exec) RunCode(ctx context.Context, src string, timeout time.Duration) (CodeResult, error) {
	res, err := e.executor.ExecuteCode(ctx, code.ExecuteParams{Code: src, Timeout: timeout})
	out := CodeResult{
		Value:    res.Value,
		Duration: time.Duration(res.DurationMs) * time.Millisecond,
		Stdout:   res.Stdout,
		Stderr:   res.Stderr,
		Error:    err,
	}
	return out, err
}

// SearchPackages finds allow-listed packages matching a query.
func (e *Exec) SearchPackages(ctx context.Context, query string, limit int) ([]catalog.Entry, error) {
	return e.opts.Catalog.Search(ctx, query, limit)
}

// Catalog returns the package allow-list.
func (e *Exec) Catalog() *catalog.Catalog {
	return e.opts.Catalog
}

// Workflow returns the underlying workflow.
func (e *Exec) Workflow() *workflow.Workflow {
	return e.workflow
}
