package code

import "time"

// ExecuteParams specifies the parameters for executing a code snippet.
type ExecuteParams struct {
	// Code is the source code to execute.
	Code string `json:"code"`

	// Timeout specifies the maximum wall-clock duration for execution.
	// If zero, the executor's default timeout is used.
	Timeout time.Duration `json:"timeout"`
}

// ExecuteResult contains the outcome of executing a code snippet.
type ExecuteResult struct {
	// Value is the final result of the code execution, read from the
	// result variable (output_dict by default) and converted to plain
	// maps, slices and scalars.
	Value any `json:"value,omitempty"`

	// Stdout contains any output written to the namespace Stdout.
	Stdout string `json:"stdout,omitempty"`

	// Stderr contains any error output from the execution.
	Stderr string `json:"stderr,omitempty"`

	// DurationMs is the total execution time in milliseconds.
	DurationMs int64 `json:"durationMs"`
}
