package code

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"time"
)

// Executor is the main entry point for executing code snippets.
// It applies defaults, enforces the time limit and the result variable
// convention, and collects output.
//
// Contract:
//   - Concurrency: implementations must be safe for concurrent use.
//   - Context: must honor cancellation/deadlines; deadline exceeded is wrapped with ErrLimitExceeded.
//   - Errors: configuration failures return ErrConfiguration; a snippet that leaves the
//     result variable unset fails with ErrMissingOutput; other execution failures propagate.
//   - Ownership: params are read-only; returned ExecuteResult is caller-owned.
type Executor interface {
	// ExecuteCode runs a code snippet with the given parameters.
	ExecuteCode(ctx context.Context, params ExecuteParams) (ExecuteResult, error)
}

// DefaultExecutor is the standard implementation of Executor.
type DefaultExecutor struct {
	cfg Config
}

// NewDefaultExecutor creates a new DefaultExecutor with the given configuration.
// Returns ErrConfiguration if any required field is missing.
func NewDefaultExecutor(cfg Config) (*DefaultExecutor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	cfg.AllowList = append([]string(nil), cfg.AllowList...)
	return &DefaultExecutor{cfg: cfg}, nil
}

// ResultVar returns the variable snippets must assign.
func (e *DefaultExecutor) ResultVar() string { return e.cfg.ResultVar }

// ExecuteCode runs a code snippet with the given parameters.
func (e *DefaultExecutor) ExecuteCode(ctx context.Context, params ExecuteParams) (ExecuteResult, error) {
	if params.Timeout == 0 {
		params.Timeout = e.cfg.DefaultTimeout
	}

	ns := newNamespace(&e.cfg)

	ctx, cancel := context.WithTimeout(ctx, params.Timeout)
	defer cancel()

	start := time.Now()
	result, err := e.execute(ctx, params, ns)
	duration := time.Since(start).Milliseconds()

	result.Stdout = ns.GetStdout() + result.Stdout
	result.DurationMs = duration

	if e.cfg.Logger != nil {
		e.cfg.Logger.Logf("executed snippet in %dms (err=%v)", duration, err)
	}

	switch {
	case err != nil && (errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded)):
		result.Value = nil
		return result, fmt.Errorf("%w: timeout after %v", ErrLimitExceeded, params.Timeout)
	case err != nil:
		result.Value = nil
		return result, err
	case isNil(result.Value):
		result.Value = nil
		return result, missingOutput(e.cfg.ResultVar)
	}
	return result, nil
}

// execute runs the engine and converts its result to plain values, turning
// a panic from either step into a CodeError.
func (e *DefaultExecutor) execute(ctx context.Context, params ExecuteParams, ns Namespace) (result ExecuteResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = ExecuteResult{}
			err = &CodeError{Message: fmt.Sprintf("panic: %v", r)}
		}
	}()
	result, err = e.cfg.Engine.Execute(ctx, params, ns)
	if err == nil && !isNil(result.Value) {
		result.Value = plainValue(result.Value)
	}
	return result, err
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
