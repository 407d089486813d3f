// Package code is the execution sandbox contract: it runs one generated
// analysis snippet against the dataset and reports either a result value
// or an error, never both.
//
// # Architecture
//
// The package defines three main interfaces:
//
//   - [Namespace]: what a snippet can see. The dataset bound as df, the
//     allow-listed packages, the result variable name and a captured
//     stdout. Host state, credentials and previous attempts are not in it.
//
//   - [Engine]: the pluggable interpreter that runs a snippet inside a
//     Namespace. See runtime/yaegi.
//
//   - [Executor]: the entry point that applies defaults, enforces the
//     wall-clock limit, recovers panics and checks the result convention.
//
// # Result Convention
//
// Snippets assign their final result to the `output_dict` variable
// (configurable through [Config].ResultVar):
//
//	g, _ := df.GroupBy("region")
//	totals, _ := g.Agg("sales", frame.Sum)
//	output_dict := map[string]any{"totals": totals.Rows()}
//
// A snippet that finishes without assigning it, or assigns nil, fails
// with [ErrMissingOutput]; an empty success is never reported. The value
// is converted to plain maps, slices and scalars before it is returned.
//
// # Execution Limits
//
// Every execution runs under a context deadline ([Config].DefaultTimeout
// unless [ExecuteParams].Timeout is set). Exceeding it returns
// [ErrLimitExceeded].
package code
