package workflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonwraymond/tableqa/llm"
)

const (
	codeResultName        = "code_result"
	codeResultDescription = "The final, runnable Go code that assigns its result to output_dict."
)

// CodeResult is the structured output of code synthesis.
type CodeResult struct {
	FinalCode string `json:"final_code" jsonschema:"complete Go statements to run; no prose or markdown fences"`
}

// Synthesize produces new code for st. With no prior error it generates
// from the schema, the available packages and the plan; otherwise it
// repairs the previous code using the error text. Either way it
// overwrites Code and increments Iterations by one, and leaves Error and
// TaskPlan alone.
func (w *Workflow) Synthesize(ctx context.Context, st *State) error {
	st.Iterations++
	var system, user, mode string
	if st.HasError() {
		mode = "repair"
		system, user = w.cfg.Prompts.Repair, w.repairPrompt(st)
	} else {
		mode = "fresh"
		section, err := w.cfg.Catalog.Describe(ctx, st.UserQuery+"\n"+st.TaskPlan, 0)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrSynthesis, err)
		}
		system, user = w.cfg.Prompts.Generate, w.generatePrompt(st, section)
	}

	w.log.Info("workflow: synthesizing code", "session", st.ID, "mode", mode, "attempt", st.Iterations)

	res, err := llm.Structured[CodeResult](ctx, w.cfg.LLM, system, user, codeResultName, codeResultDescription)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSynthesis, err)
	}
	if strings.TrimSpace(res.FinalCode) == "" {
		return fmt.Errorf("%w: empty final_code", ErrSynthesis)
	}
	st.Code = res.FinalCode
	return nil
}

func (w *Workflow) generatePrompt(st *State, packages string) string {
	var b strings.Builder
	b.WriteString(w.schema)
	fmt.Fprintf(&b, "\n\n### Available packages\n\n%s\n", strings.TrimSpace(packages))
	fmt.Fprintf(&b, "\n### Execution plan\n\n%s\n", st.TaskPlan)
	fmt.Fprintf(&b, "\n### User question\n\n%s\n\n", st.UserQuery)
	b.WriteString("Write the Go code that carries out the plan.")
	return b.String()
}

func (w *Workflow) repairPrompt(st *State) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You have been given the error:\n\n%s\n\n", st.Error)
	fmt.Fprintf(&b, "It was raised by this Go code:\n\n```go\n%s\n```\n\n", st.Code)
	fmt.Fprintf(&b, "The code follows this task plan:\n\n%s\n\n", st.TaskPlan)
	fmt.Fprintf(&b, "Packages you may import: %s.\n\n", strings.Join(w.cfg.Catalog.Packages(), ", "))
	b.WriteString("Fix the error and return corrected code that performs the task plan. ")
	b.WriteString("Do not change the task plan or the column names. Use the existing df and strictly follow the plan.")
	return b.String()
}
