package workflow

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Format turns st.Output into a natural-language answer. It is only
// called after a successful execution.
func (w *Workflow) Format(ctx context.Context, st *State) error {
	if !st.HasOutput() || st.HasError() {
		return fmt.Errorf("%w: no result to format", ErrFormat)
	}
	result, err := json.MarshalIndent(st.Output, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode result: %w", ErrFormat, err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "### User question\n\n%s\n\n", st.UserQuery)
	fmt.Fprintf(&b, "### Result\n\n```json\n%s\n```\n\n", result)
	b.WriteString("Formatted response:")

	answer, err := w.cfg.LLM.Complete(ctx, w.cfg.Prompts.Format, b.String())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFormat, err)
	}
	st.Answer = strings.TrimSpace(answer)
	return nil
}
