package workflow

import (
	"context"
	"errors"

	"github.com/jonwraymond/tableqa/code"
)

// Execute runs st.Code in the sandbox. On success it clears Error and
// sets Output; on any failure it records the error text and clears
// Output. Code and Iterations are never changed.
func (w *Workflow) Execute(ctx context.Context, st *State) {
	res, err := w.cfg.Executor.ExecuteCode(ctx, code.ExecuteParams{
		Code:    st.Code,
		Timeout: w.cfg.ExecTimeout,
	})
	w.cfg.Metrics.observeExecution(err)
	if err != nil {
		st.Error = err.Error()
		st.Output = nil
		w.log.Info("workflow: execution failed", "session", st.ID, "attempt", st.Iterations, "durationMs", res.DurationMs, "error", err)
		return
	}
	st.Error = ""
	st.Output = res.Value
	w.log.Info("workflow: execution succeeded", "session", st.ID, "attempt", st.Iterations, "durationMs", res.DurationMs)
	if res.Stdout != "" {
		w.log.Debug("workflow: execution stdout", "session", st.ID, "stdout", res.Stdout)
	}
}

func executionResult(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, code.ErrMissingOutput):
		return "missing_output"
	case errors.Is(err, code.ErrLimitExceeded):
		return "timeout"
	case errors.Is(err, code.ErrForbiddenImport):
		return "forbidden_import"
	}
	return "error"
}
