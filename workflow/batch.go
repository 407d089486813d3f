package workflow

import (
	"context"
	"fmt"

	"github.com/alitto/pond/v2"
)

// BatchResult is the outcome of one question in a batch.
type BatchResult struct {
	State *State
	Err   error
}

// RunBatch answers independent questions concurrently, at most
// Config.Concurrency at a time. Each question gets its own session; the
// dataset is shared read-only. Results are in input order. A failed
// session is reported in its BatchResult and does not stop the others.
func (w *Workflow) RunBatch(ctx context.Context, questions []string) ([]BatchResult, error) {
	if len(questions) == 0 {
		return nil, nil
	}
	pool := pond.NewResultPool[BatchResult](w.cfg.Concurrency)
	defer pool.StopAndWait()

	group := pool.NewGroupContext(ctx)
	for _, q := range questions {
		group.Submit(func() BatchResult {
			st, err := w.Run(ctx, q)
			return BatchResult{State: st, Err: err}
		})
	}

	results, err := group.Wait()
	if err != nil {
		return nil, fmt.Errorf("failed to run batch: %w", err)
	}
	w.log.Info("workflow: batch finished", "questions", len(questions))
	return results, nil
}
