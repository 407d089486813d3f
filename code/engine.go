package code

import "context"

// Engine is the pluggable code execution engine that runs code snippets
// inside a restricted Namespace. Implementations are responsible for
// parsing and executing the code.
//
// The Engine should:
//   - Expose only the dataset handle and the allow-listed packages of ns
//   - Start from a fresh environment on every call
//   - Return the value of the result variable in ExecuteResult.Value, or
//     nil when the snippet never assigned it
//   - Write captured output to ns.Stdout()
//   - Wrap execution errors in CodeError with line/column info when available
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: must honor cancellation/deadlines and return ctx.Err() when canceled.
// - Errors: execution failures should return CodeError where possible; callers use errors.Is.
// - Ownership: params and ns are read-only; returned ExecuteResult is caller-owned.
type Engine interface {
	// Execute runs a code snippet inside ns.
	Execute(ctx context.Context, params ExecuteParams, ns Namespace) (ExecuteResult, error)
}
