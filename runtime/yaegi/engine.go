// Package yaegi provides a code.Engine that interprets Go snippets with
// github.com/traefik/yaegi.
//
// Every execution gets a fresh interpreter that can load only the symbol
// tables of the namespace's allow-listed packages. Those packages are
// imported up front and the dataset is bound as df, so a snippet is a list
// of top-level statements ending with an assignment to the result
// variable:
//
//	g, _ := df.GroupBy("region")
//	totals, _ := g.Agg("sales", frame.Sum)
//	output_dict := map[string]any{"totals": totals.Rows()}
package yaegi

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"

	"github.com/jonwraymond/tableqa/code"
)

// bindingPath is the hidden package carrying the dataset into the
// interpreter.
const bindingPath = "tableqa/binding"

// Config configures an Engine.
type Config struct {
	// Symbols are additional symbol tables, keyed "path/name" as produced
	// by yaegi extract. They are merged over the standard library and
	// AnalysisSymbols.
	Symbols interp.Exports
}

// Engine implements code.Engine on the yaegi interpreter.
//
// Contract:
//   - Concurrency: safe for concurrent use; no interpreter is shared between calls.
//   - Context: cancellation stops the snippet at its next loop or call boundary
//     and Execute returns ctx.Err().
//   - Errors: compile and runtime failures are *code.CodeError; imports outside
//     the allow-list match code.ErrForbiddenImport.
type Engine struct {
	symbols interp.Exports
}

// New creates an Engine with the standard library and analysis symbols.
func New(cfg Config) *Engine {
	symbols := make(interp.Exports, len(stdlib.Symbols)+len(AnalysisSymbols)+len(cfg.Symbols))
	for _, src := range []interp.Exports{stdlib.Symbols, AnalysisSymbols, cfg.Symbols} {
		for k, v := range src {
			symbols[k] = v
		}
	}
	return &Engine{symbols: symbols}
}

// Execute implements code.Engine.
func (e *Engine) Execute(ctx context.Context, params code.ExecuteParams, ns code.Namespace) (code.ExecuteResult, error) {
	if err := ctx.Err(); err != nil {
		return code.ExecuteResult{}, err
	}

	paths, body := splitImports(Clean(params.Code))
	for _, p := range paths {
		if !ns.Allowed(p) {
			return code.ExecuteResult{}, &code.CodeError{
				Message: fmt.Sprintf("import %q is not allowed; available packages: %s", p, strings.Join(ns.AllowList(), ", ")),
				Err:     code.ErrForbiddenImport,
			}
		}
	}

	var stderr bytes.Buffer
	i := interp.New(interp.Options{
		Stdout: ns.Stdout(),
		Stderr: &stderr,
	})
	prelude, err := e.load(i, ns)
	if err != nil {
		return code.ExecuteResult{}, err
	}
	if _, err := i.Eval(prelude); err != nil {
		return code.ExecuteResult{}, fmt.Errorf("%w: prelude: %v", code.ErrConfiguration, err)
	}

	if strings.TrimSpace(body) != "" {
		if _, err := i.EvalWithContext(ctx, body); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return code.ExecuteResult{Stderr: stderr.String()}, ctxErr
			}
			return code.ExecuteResult{Stderr: stderr.String()}, toCodeError(err)
		}
	}

	result := code.ExecuteResult{Stderr: stderr.String()}
	v, err := i.Eval(ns.ResultVar())
	if err != nil || !v.IsValid() || !v.CanInterface() {
		// Unset result variable; the executor reports it as missing output.
		return result, nil
	}
	result.Value = v.Interface()
	return result, nil
}

// load registers the allow-listed symbol tables and the dataset binding,
// returning the source that imports them and declares df.
func (e *Engine) load(i *interp.Interpreter, ns code.Namespace) (string, error) {
	df := ns.Dataset()
	use := interp.Exports{
		symbolKey(bindingPath): {"DF": reflect.ValueOf(&df).Elem()},
	}
	var prelude strings.Builder
	prelude.WriteString("import (\n")
	for _, p := range ns.AllowList() {
		key := symbolKey(p)
		table, ok := e.symbols[key]
		if !ok {
			return "", fmt.Errorf("%w: no symbols for allow-listed package %q", code.ErrConfiguration, p)
		}
		use[key] = table
		fmt.Fprintf(&prelude, "\t%q\n", p)
	}
	fmt.Fprintf(&prelude, "\t__binding %q\n)\n\nvar df = __binding.DF\n", bindingPath)

	if err := i.Use(use); err != nil {
		return "", fmt.Errorf("%w: load symbols: %v", code.ErrConfiguration, err)
	}
	return prelude.String(), nil
}

var (
	fenceRe   = regexp.MustCompile("(?s)^\\s*```[a-zA-Z]*\\s*\\n(.*?)\\n?\\s*```\\s*$")
	packageRe = regexp.MustCompile(`(?m)^\s*package\s+\w+\s*$`)
	importRe  = regexp.MustCompile(`(?ms)^\s*import\b\s*(\([^)]*\)|[^\n]*)`)
	pathRe    = regexp.MustCompile(`"([^"]+)"`)
	posRe     = regexp.MustCompile(`(\d+):(\d+): (.*)`)
)

// Clean strips a surrounding markdown fence and any package clause, which
// models add despite instructions.
func Clean(src string) string {
	if m := fenceRe.FindStringSubmatch(src); m != nil {
		src = m[1]
	}
	return packageRe.ReplaceAllString(src, "")
}

// splitImports removes import declarations from src and returns the paths
// they name. Every allowed package is imported by the prelude already.
func splitImports(src string) ([]string, string) {
	seen := make(map[string]bool)
	var paths []string
	body := importRe.ReplaceAllStringFunc(src, func(decl string) string {
		for _, m := range pathRe.FindAllStringSubmatch(decl, -1) {
			if !seen[m[1]] {
				seen[m[1]] = true
				paths = append(paths, m[1])
			}
		}
		// Keep line numbers stable for error positions.
		return strings.Repeat("\n", strings.Count(decl, "\n"))
	})
	sort.Strings(paths)
	return paths, body
}

// toCodeError converts an interpreter error into a CodeError, extracting
// the line and column when yaegi reports them.
func toCodeError(err error) error {
	var p interp.Panic
	if errors.As(err, &p) {
		return &code.CodeError{Message: fmt.Sprintf("panic: %v", p.Value), Err: err}
	}
	msg := err.Error()
	ce := &code.CodeError{Message: msg, Err: err}
	if m := posRe.FindStringSubmatch(msg); m != nil {
		ce.Line, _ = strconv.Atoi(m[1])
		ce.Column, _ = strconv.Atoi(m[2])
		ce.Message = m[3]
	}
	return ce
}
