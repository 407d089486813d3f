// Package plot builds declarative figure specifications from frames.
// Nothing is rendered here; a Figure is data that analysis code can return
// as part of its result and a front end can draw later.
package plot

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jonwraymond/tableqa/frame"
	"github.com/jonwraymond/tableqa/stats"
)

// Kind is the chart type of a Figure.
type Kind string

const (
	KindBar       Kind = "bar"
	KindLine      Kind = "line"
	KindScatter   Kind = "scatter"
	KindHistogram Kind = "histogram"
	KindPie       Kind = "pie"
)

// DefaultBins is used by Histogram when bins <= 0.
const DefaultBins = 10

// ErrNoData is returned when a figure would have no plottable points.
var ErrNoData = errors.New("plot: no data")

// Trace is one series of points.
type Trace struct {
	Name string
	X    []any
	Y    []float64
}

// Figure is a chart specification.
type Figure struct {
	Kind   Kind
	Title  string
	XLabel string
	YLabel string
	Traces []Trace
}

// Option adjusts a Figure after its defaults are filled in.
type Option func(*Figure)

// WithTitle sets the figure title.
func WithTitle(title string) Option {
	return func(f *Figure) { f.Title = title }
}

// WithXLabel overrides the x axis label.
func WithXLabel(label string) Option {
	return func(f *Figure) { f.XLabel = label }
}

// WithYLabel overrides the y axis label.
func WithYLabel(label string) Option {
	return func(f *Figure) { f.YLabel = label }
}

var titler = cases.Title(language.English)

// Label turns a column name such as "unit_price" into "Unit Price".
func Label(column string) string {
	s := strings.NewReplacer("_", " ", "-", " ").Replace(column)
	return titler.String(strings.TrimSpace(s))
}

// Bar plots y against the categories in x.
func Bar(df *frame.Frame, x, y string, opts ...Option) (*Figure, error) {
	return xy(KindBar, df, x, y, opts)
}

// Line plots y against x in row order.
func Line(df *frame.Frame, x, y string, opts ...Option) (*Figure, error) {
	return xy(KindLine, df, x, y, opts)
}

// Scatter plots numeric y against numeric x.
func Scatter(df *frame.Frame, x, y string, opts ...Option) (*Figure, error) {
	xs, err := df.Col(x)
	if err != nil {
		return nil, err
	}
	if !xs.IsNumeric() {
		return nil, fmt.Errorf("scatter x: %w: column %q is %s", frame.ErrTypeMismatch, x, xs.DType())
	}
	return xy(KindScatter, df, x, y, opts)
}

func xy(kind Kind, df *frame.Frame, x, y string, opts []Option) (*Figure, error) {
	xs, err := df.Col(x)
	if err != nil {
		return nil, err
	}
	ys, err := df.Col(y)
	if err != nil {
		return nil, err
	}
	vals, err := ys.Floats()
	if err != nil {
		return nil, err
	}
	if len(vals) == 0 {
		return nil, ErrNoData
	}
	fig := &Figure{
		Kind:   kind,
		Title:  Label(y) + " by " + Label(x),
		XLabel: Label(x),
		YLabel: Label(y),
		Traces: []Trace{{Name: y, X: xs.Values(), Y: vals}},
	}
	return fig.apply(opts), nil
}

// Histogram counts the values of a numeric column into equal-width bins.
// NaN values are ignored. Each point's X is the lower edge of its bin.
func Histogram(df *frame.Frame, column string, bins int, opts ...Option) (*Figure, error) {
	c, err := df.Col(column)
	if err != nil {
		return nil, err
	}
	raw, err := c.Floats()
	if err != nil {
		return nil, err
	}
	lo, err := stats.Min(raw)
	if err != nil {
		return nil, ErrNoData
	}
	hi, _ := stats.Max(raw)
	if bins <= 0 {
		bins = DefaultBins
	}
	width := (hi - lo) / float64(bins)
	counts := make([]float64, bins)
	for _, v := range raw {
		if math.IsNaN(v) {
			continue
		}
		i := bins - 1
		if width > 0 {
			i = int((v - lo) / width)
			if i >= bins {
				i = bins - 1
			}
		}
		counts[i]++
	}
	edges := make([]any, bins)
	for i := range edges {
		edges[i] = lo + float64(i)*width
	}
	fig := &Figure{
		Kind:   KindHistogram,
		Title:  "Distribution of " + Label(column),
		XLabel: Label(column),
		YLabel: "Count",
		Traces: []Trace{{Name: column, X: edges, Y: counts}},
	}
	return fig.apply(opts), nil
}

// Pie shows the share of each label in values. Labels are formatted as
// strings; negative and NaN values are rejected.
func Pie(df *frame.Frame, labels, values string, opts ...Option) (*Figure, error) {
	ls, err := df.Col(labels)
	if err != nil {
		return nil, err
	}
	vs, err := df.Col(values)
	if err != nil {
		return nil, err
	}
	ys, err := vs.Floats()
	if err != nil {
		return nil, err
	}
	if len(ys) == 0 {
		return nil, ErrNoData
	}
	for i, v := range ys {
		if math.IsNaN(v) || v < 0 {
			return nil, fmt.Errorf("pie: value %v at row %d is not a non-negative number", v, i)
		}
	}
	names := ls.Strings()
	xs := make([]any, len(names))
	for i, n := range names {
		xs[i] = n
	}
	fig := &Figure{
		Kind:   KindPie,
		Title:  Label(values) + " by " + Label(labels),
		Traces: []Trace{{Name: values, X: xs, Y: ys}},
	}
	return fig.apply(opts), nil
}

func (f *Figure) apply(opts []Option) *Figure {
	for _, o := range opts {
		o(f)
	}
	return f
}

// Map returns the figure as JSON-ready nested maps. A nil figure maps to nil.
func (f *Figure) Map() map[string]any {
	if f == nil {
		return nil
	}
	traces := make([]any, len(f.Traces))
	for i, t := range f.Traces {
		xs := make([]any, len(t.X))
		for j, x := range t.X {
			xs[j] = jsonSafe(x)
		}
		ys := make([]any, len(t.Y))
		for j, y := range t.Y {
			ys[j] = jsonSafe(y)
		}
		traces[i] = map[string]any{"name": t.Name, "x": xs, "y": ys}
	}
	m := map[string]any{
		"kind":   string(f.Kind),
		"title":  f.Title,
		"traces": traces,
	}
	if f.XLabel != "" {
		m["x_label"] = f.XLabel
	}
	if f.YLabel != "" {
		m["y_label"] = f.YLabel
	}
	return m
}

// jsonSafe maps NaN to nil, which encoding/json cannot represent otherwise.
func jsonSafe(v any) any {
	f, ok := v.(float64)
	switch {
	case !ok:
		return v
	case math.IsNaN(f):
		return nil
	case math.IsInf(f, 1):
		return "Inf"
	case math.IsInf(f, -1):
		return "-Inf"
	}
	return f
}
