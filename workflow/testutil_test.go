package workflow

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jonwraymond/tableqa/catalog"
	"github.com/jonwraymond/tableqa/code"
	"github.com/jonwraymond/tableqa/frame"
	"github.com/jonwraymond/tableqa/llm"
)

var testPrompts = &Prompts{
	Plan:     "PLAN",
	Generate: "GENERATE",
	Repair:   "REPAIR",
	Format:   "FORMAT",
}

type llmCall struct {
	System string
	User   string
}

// fakeLLM answers plan and format calls with fixed text and returns codes
// in order for structured calls, repeating the last one.
type fakeLLM struct {
	mu sync.Mutex

	plan      string
	planErr   error
	codes     []string
	codeFn    func(user string) string
	synthErr  error
	answer    string
	formatErr error

	calls []llmCall
}

func (f *fakeLLM) Complete(_ context.Context, system, user string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, llmCall{System: system, User: user})
	switch system {
	case testPrompts.Plan:
		return f.plan, f.planErr
	case testPrompts.Format:
		return f.answer, f.formatErr
	}
	return "", fmt.Errorf("unexpected system prompt %q", system)
}

func (f *fakeLLM) CompleteStructured(_ context.Context, system, user string, schema llm.Schema) (json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := f.structuredLocked()
	f.calls = append(f.calls, llmCall{System: system, User: user})
	if schema.Name != codeResultName {
		return nil, fmt.Errorf("unexpected schema %q", schema.Name)
	}
	if f.synthErr != nil {
		return nil, f.synthErr
	}
	var c string
	switch {
	case f.codeFn != nil:
		c = f.codeFn(user)
	case n < len(f.codes):
		c = f.codes[n]
	case len(f.codes) > 0:
		c = f.codes[len(f.codes)-1]
	}
	return json.Marshal(CodeResult{FinalCode: c})
}

func (f *fakeLLM) structuredLocked() int {
	n := 0
	for _, c := range f.calls {
		if c.System == testPrompts.Generate || c.System == testPrompts.Repair {
			n++
		}
	}
	return n
}

func (f *fakeLLM) callsFor(system string) []llmCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []llmCall
	for _, c := range f.calls {
		if c.System == system {
			out = append(out, c)
		}
	}
	return out
}

// scriptedExecutor fails code starting with "fail:" using the rest of the
// line as the error text and succeeds otherwise.
type scriptedExecutor struct {
	mu    sync.Mutex
	codes []string
}

func (e *scriptedExecutor) ExecuteCode(_ context.Context, params code.ExecuteParams) (code.ExecuteResult, error) {
	e.mu.Lock()
	e.codes = append(e.codes, params.Code)
	e.mu.Unlock()
	if msg, ok := strings.CutPrefix(params.Code, "fail:"); ok {
		return code.ExecuteResult{}, &code.CodeError{Message: msg}
	}
	if params.Code == "missing" {
		return code.ExecuteResult{}, &code.CodeError{Message: "missing output_dict", Err: code.ErrMissingOutput}
	}
	return code.ExecuteResult{Value: map[string]any{"code": params.Code}, DurationMs: 1}, nil
}

func (e *scriptedExecutor) calls() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.codes)
}

func testDataset() *frame.Frame {
	return frame.MustNew(
		frame.Strings("region", []string{"north", "south", "north", "east"}),
		frame.Ints("units", []int64{3, 5, 2, 7}),
		frame.Floats("price", []float64{1.5, 2, 2.5, 1}),
	)
}

func newTestWorkflow(t *testing.T, fake *fakeLLM, exec code.Executor, mutate ...func(*Config)) *Workflow {
	t.Helper()
	cfg := Config{
		LLM:      fake,
		Dataset:  testDataset(),
		Executor: exec,
		Catalog:  catalog.Default(),
		Prompts:  testPrompts,
	}
	for _, m := range mutate {
		m(&cfg)
	}
	w, err := New(cfg)
	require.NoError(t, err)
	return w
}
