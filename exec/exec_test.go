package exec

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/jonwraymond/tableqa/code"
	"github.com/jonwraymond/tableqa/frame"
	"github.com/jonwraymond/tableqa/llm"
	"github.com/jonwraymond/tableqa/workflow"
)

// scriptedLLM plans and formats with fixed text and hands out codes in
// order, repeating the last one.
type scriptedLLM struct {
	mu     sync.Mutex
	codes  []string
	answer string
	n      int
}

func (s *scriptedLLM) Complete(_ context.Context, _, user string) (string, error) {
	if strings.Contains(user, "Give a task plan") {
		return "1. sum the units column", nil
	}
	return s.answer, nil
}

func (s *scriptedLLM) CompleteStructured(_ context.Context, _, _ string, _ llm.Schema) (json.RawMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.codes[min(s.n, len(s.codes)-1)]
	s.n++
	return json.Marshal(workflow.CodeResult{FinalCode: c})
}

func testDataset() *frame.Frame {
	return frame.MustNew(
		frame.Strings("region", []string{"north", "south", "north"}),
		frame.Ints("units", []int64{3, 5, 2}),
	)
}

const sumUnits = `s, err := df.Col("units")
if err != nil {
	panic(err)
}
total, _ := s.Sum()
output_dict := map[string]any{"total": total}`

func TestNew_MissingDataset(t *testing.T) {
	_, err := New(Options{LLM: &scriptedLLM{}})
	if !errors.Is(err, ErrDatasetRequired) {
		t.Errorf("New() error = %v, want %v", err, ErrDatasetRequired)
	}
}

func TestNew_MissingLLM(t *testing.T) {
	_, err := New(Options{Dataset: testDataset()})
	if !errors.Is(err, ErrLLMRequired) {
		t.Errorf("New() error = %v, want %v", err, ErrLLMRequired)
	}
}

func TestNew_DefaultsApplied(t *testing.T) {
	ex, err := New(Options{Dataset: testDataset(), LLM: &scriptedLLM{}})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if ex.opts.MaxAttempts != DefaultMaxAttempts {
		t.Errorf("MaxAttempts = %d, want %d", ex.opts.MaxAttempts, DefaultMaxAttempts)
	}
	if ex.opts.DefaultTimeout != DefaultTimeout {
		t.Errorf("DefaultTimeout = %v, want %v", ex.opts.DefaultTimeout, DefaultTimeout)
	}
	if ex.Catalog() == nil || !ex.Catalog().Allowed("tableqa/frame") {
		t.Error("Catalog() should default to the full catalog")
	}
	if ex.Workflow().MaxAttempts() != DefaultMaxAttempts {
		t.Errorf("Workflow().MaxAttempts() = %d", ex.Workflow().MaxAttempts())
	}
}

func TestExec_Ask(t *testing.T) {
	fake := &scriptedLLM{codes: []string{"var output_dict map[string]any", sumUnits}, answer: "10 units."}
	ex, err := New(Options{Dataset: testDataset(), LLM: fake})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	res, err := ex.Ask(context.Background(), "How many units?")
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if !res.OK() {
		t.Error("OK() = false")
	}
	if res.Answer != "10 units." {
		t.Errorf("Answer = %q", res.Answer)
	}
	if res.Attempts != 2 {
		t.Errorf("Attempts = %d, want 2", res.Attempts)
	}
	if res.Plan != "1. sum the units column" {
		t.Errorf("Plan = %q", res.Plan)
	}
	m, ok := res.Value.(map[string]any)
	if !ok || m["total"] != 10.0 {
		t.Errorf("Value = %#v", res.Value)
	}
}

func TestExec_AskExhausted(t *testing.T) {
	fake := &scriptedLLM{codes: []string{`x := 1`}}
	ex, err := New(Options{Dataset: testDataset(), LLM: fake, MaxAttempts: 2})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	res, err := ex.Ask(context.Background(), "q")
	if !errors.Is(err, workflow.ErrNoAnswer) {
		t.Fatalf("Ask() error = %v, want ErrNoAnswer", err)
	}
	if res.Attempts != 2 {
		t.Errorf("Attempts = %d, want 2", res.Attempts)
	}
	if res.Answer != "" || res.Value != nil {
		t.Errorf("exhausted result carries answer %q value %v", res.Answer, res.Value)
	}
	if !strings.Contains(res.LastError, "missing output_dict") {
		t.Errorf("LastError = %q", res.LastError)
	}
}

func TestExec_AskBatch(t *testing.T) {
	fake := &scriptedLLM{codes: []string{sumUnits}, answer: "ok"}
	ex, err := New(Options{Dataset: testDataset(), LLM: fake, Concurrency: 2})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	qs := []string{"a", "b", "c"}
	results, err := ex.AskBatch(context.Background(), qs)
	if err != nil {
		t.Fatalf("AskBatch() error = %v", err)
	}
	for i, r := range results {
		if r.Question != qs[i] {
			t.Errorf("results[%d].Question = %q, want %q", i, r.Question, qs[i])
		}
		if !r.OK() {
			t.Errorf("results[%d].Error = %v", i, r.Error)
		}
	}
}

func TestExec_RunCode(t *testing.T) {
	ex, err := New(Options{Dataset: testDataset(), LLM: &scriptedLLM{}})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	res, err := ex.RunCode(context.Background(), `fmt.Println("rows", df.Len())
output_dict := map[string]any{"rows": df.Len()}`, 0)
	if err != nil {
		t.Fatalf("RunCode() error = %v", err)
	}
	if res.Stdout != "rows 3\n" {
		t.Errorf("Stdout = %q", res.Stdout)
	}

	_, err = ex.RunCode(context.Background(), `import "os"
output_dict := map[string]any{"pid": os.Getpid()}`, 0)
	if !errors.Is(err, code.ErrForbiddenImport) {
		t.Errorf("RunCode(os) error = %v, want ErrForbiddenImport", err)
	}
}

func TestExec_SearchPackages(t *testing.T) {
	ex, err := New(Options{Dataset: testDataset(), LLM: &scriptedLLM{}})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	got, err := ex.SearchPackages(context.Background(), "bar chart", 1)
	if err != nil {
		t.Fatalf("SearchPackages() error = %v", err)
	}
	if len(got) != 1 || got[0].Name != "plot" {
		t.Errorf("SearchPackages() = %+v, want plot", got)
	}
}
