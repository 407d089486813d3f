package code

import (
	"fmt"
	"io"
	"math"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jonwraymond/tableqa/frame"
)

// Namespace is everything an Engine may expose to a snippet: the dataset
// bound as df, the allow-listed packages, the name of the result variable
// and a captured stdout. Nothing else from the host is reachable.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Ownership: the dataset is shared read-only; AllowList returns a copy.
type Namespace interface {
	// Dataset returns the frame bound as df.
	Dataset() *frame.Frame

	// AllowList returns the importable package paths, sorted.
	AllowList() []string

	// Allowed reports whether path may be imported.
	Allowed(path string) bool

	// ResultVar returns the name of the result variable.
	ResultVar() string

	// Stdout returns the writer capturing snippet output.
	Stdout() io.Writer
}

// namespaceImpl is the per-execution Namespace. A new one is created for
// every ExecuteCode call so no output leaks between attempts.
type namespaceImpl struct {
	dataset   *frame.Frame
	allowed   map[string]bool
	resultVar string

	mu     sync.Mutex
	stdout strings.Builder
}

func newNamespace(cfg *Config) *namespaceImpl {
	ns := &namespaceImpl{
		dataset:   cfg.Dataset,
		allowed:   make(map[string]bool, len(cfg.AllowList)),
		resultVar: cfg.ResultVar,
	}
	for _, p := range cfg.AllowList {
		ns.allowed[p] = true
	}
	return ns
}

func (n *namespaceImpl) Dataset() *frame.Frame { return n.dataset }

func (n *namespaceImpl) AllowList() []string {
	out := make([]string, 0, len(n.allowed))
	for p := range n.allowed {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

func (n *namespaceImpl) Allowed(path string) bool { return n.allowed[path] }

func (n *namespaceImpl) ResultVar() string { return n.resultVar }

func (n *namespaceImpl) Stdout() io.Writer { return (*lockedWriter)(n) }

// GetStdout returns everything written so far.
func (n *namespaceImpl) GetStdout() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.stdout.String()
}

type lockedWriter namespaceImpl

func (w *lockedWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stdout.Write(p)
}

// plainValue converts a snippet result into maps, slices and scalars that
// encode to JSON. Frames become row maps, series become value lists and
// figures become their Map form. NaN floats become nil and infinities
// become the strings "Inf" and "-Inf".
func plainValue(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case *frame.Frame:
		if val == nil {
			return nil
		}
		return plainValue(val.Rows())
	case frame.Series:
		return plainValue(val.Values())
	case interface{ Map() map[string]any }:
		if isNil(val) {
			return nil
		}
		return plainValue(val.Map())
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, x := range val {
			out[k] = plainValue(x)
		}
		return out
	case []map[string]any:
		out := make([]any, len(val))
		for i, x := range val {
			out[i] = plainValue(x)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, x := range val {
			out[i] = plainValue(x)
		}
		return out
	case float64:
		return plainFloat(val)
	case float32:
		return plainFloat(float64(val))
	case time.Time:
		return frame.FormatValue(val)
	case string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return val
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil
		}
		return plainValue(rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return nil
		}
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = plainValue(rv.Index(i).Interface())
		}
		return out
	case reflect.Map:
		if rv.IsNil() {
			return nil
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[fmt.Sprint(iter.Key().Interface())] = plainValue(iter.Value().Interface())
		}
		return out
	}
	return v
}

func plainFloat(f float64) any {
	switch {
	case math.IsNaN(f):
		return nil
	case math.IsInf(f, 1):
		return "Inf"
	case math.IsInf(f, -1):
		return "-Inf"
	}
	return f
}
