package exec

import (
	"time"

	"github.com/jonwraymond/tableqa/workflow"
)

// Result is the outcome of one question.
type Result struct {
	// Question is the question as asked.
	Question string

	// Answer is the formatted answer. Empty when Attempts ran out.
	Answer string

	// Value is the raw output_dict of the successful execution.
	Value any

	// Plan is the task plan the code followed.
	Plan string

	// Code is the last generated program.
	Code string

	// Attempts is the number of code syntheses made.
	Attempts int

	// LastError is the error text of the last failed execution, if any.
	LastError string

	// Duration is the wall time of the session.
	Duration time.Duration

	// Error is non-nil if the session failed or produced no answer.
	// Exhausted attempts yield workflow.ErrNoAnswer.
	Error error
}

// OK returns true if the question was answered.
func (r Result) OK() bool {
	return r.Error == nil
}

func newResult(st *workflow.State, err error, d time.Duration) Result {
	if err == nil {
		err = st.Err()
	}
	return Result{
		Question:  st.UserQuery,
		Answer:    st.Answer,
		Value:     st.Output,
		Plan:      st.TaskPlan,
		Code:      st.Code,
		Attempts:  st.Iterations,
		LastError: st.Error,
		Duration:  d,
		Error:     err,
	}
}

// CodeResult is the outcome of running a snippet directly.
type CodeResult struct {
	// Value is the plain form of output_dict.
	Value any

	// Duration is the execution time.
	Duration time.Duration

	// Stdout contains captured standard output.
	Stdout string

	// Stderr contains captured standard error.
	Stderr string

	// Error is non-nil if execution failed.
	Error error
}

// OK returns true if code execution succeeded.
func (c CodeResult) OK() bool {
	return c.Error == nil
}
