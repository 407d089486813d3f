package workflow

import (
	"context"
	"fmt"
	"strings"
)

// Plan asks the model for a task plan and stores it on st. It runs once
// per session.
func (w *Workflow) Plan(ctx context.Context, st *State) error {
	if st.TaskPlan != "" {
		return fmt.Errorf("%w: task plan already set", ErrPlan)
	}

	var b strings.Builder
	b.WriteString(w.schema)
	fmt.Fprintf(&b, "\n\n### User question\n\n%s\n\n", st.UserQuery)
	b.WriteString("Give a task plan that answers the question.")

	plan, err := w.cfg.LLM.Complete(ctx, w.cfg.Prompts.Plan, b.String())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPlan, err)
	}
	plan = strings.TrimSpace(plan)
	if plan == "" {
		return fmt.Errorf("%w: empty plan", ErrPlan)
	}
	st.TaskPlan = plan
	w.log.Debug("workflow: plan ready", "session", st.ID, "planLen", len(plan))
	return nil
}
