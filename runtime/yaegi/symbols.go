package yaegi

import (
	"reflect"

	"github.com/traefik/yaegi/interp"

	"github.com/jonwraymond/tableqa/catalog"
	"github.com/jonwraymond/tableqa/frame"
	"github.com/jonwraymond/tableqa/plot"
	"github.com/jonwraymond/tableqa/stats"
)

// AnalysisSymbols exposes the frame, stats and plot packages to the
// interpreter under their sandbox import paths. Types are registered as
// typed nil pointers and variables by address, the layout yaegi extract
// produces.
var AnalysisSymbols = interp.Exports{
	symbolKey(catalog.FramePath): {
		// types
		"AggFunc":    reflect.ValueOf((*frame.AggFunc)(nil)),
		"ColumnType": reflect.ValueOf((*frame.ColumnType)(nil)),
		"DType":      reflect.ValueOf((*frame.DType)(nil)),
		"Frame":      reflect.ValueOf((*frame.Frame)(nil)),
		"Grouped":    reflect.ValueOf((*frame.Grouped)(nil)),
		"Row":        reflect.ValueOf((*frame.Row)(nil)),
		"Series":     reflect.ValueOf((*frame.Series)(nil)),

		// constants
		"Bool":     reflect.ValueOf(frame.Bool),
		"Datetime": reflect.ValueOf(frame.Datetime),
		"Float64":  reflect.ValueOf(frame.Float64),
		"Int64":    reflect.ValueOf(frame.Int64),
		"String":   reflect.ValueOf(frame.String),
		"Count":    reflect.ValueOf(frame.Count),
		"Max":      reflect.ValueOf(frame.Max),
		"Mean":     reflect.ValueOf(frame.Mean),
		"Median":   reflect.ValueOf(frame.Median),
		"Min":      reflect.ValueOf(frame.Min),
		"Sum":      reflect.ValueOf(frame.Sum),

		// functions
		"Bools":       reflect.ValueOf(frame.Bools),
		"Floats":      reflect.ValueOf(frame.Floats),
		"FormatValue": reflect.ValueOf(frame.FormatValue),
		"FromRecords": reflect.ValueOf(frame.FromRecords),
		"Ints":        reflect.ValueOf(frame.Ints),
		"MustNew":     reflect.ValueOf(frame.MustNew),
		"New":         reflect.ValueOf(frame.New),
		"Strings":     reflect.ValueOf(frame.Strings),
		"Times":       reflect.ValueOf(frame.Times),

		// variables
		"ErrColumnNotFound":  reflect.ValueOf(&frame.ErrColumnNotFound).Elem(),
		"ErrDuplicateColumn": reflect.ValueOf(&frame.ErrDuplicateColumn).Elem(),
		"ErrLengthMismatch":  reflect.ValueOf(&frame.ErrLengthMismatch).Elem(),
		"ErrTypeMismatch":    reflect.ValueOf(&frame.ErrTypeMismatch).Elem(),
		"ErrUnknownAgg":      reflect.ValueOf(&frame.ErrUnknownAgg).Elem(),
		"ErrUnknownOp":       reflect.ValueOf(&frame.ErrUnknownOp).Elem(),
	},
	symbolKey(catalog.StatsPath): {
		"Corr":      reflect.ValueOf(stats.Corr),
		"Count":     reflect.ValueOf(stats.Count),
		"Max":       reflect.ValueOf(stats.Max),
		"Mean":      reflect.ValueOf(stats.Mean),
		"Median":    reflect.ValueOf(stats.Median),
		"Min":       reflect.ValueOf(stats.Min),
		"PctChange": reflect.ValueOf(stats.PctChange),
		"Quantile":  reflect.ValueOf(stats.Quantile),
		"Round":     reflect.ValueOf(stats.Round),
		"Std":       reflect.ValueOf(stats.Std),
		"Sum":       reflect.ValueOf(stats.Sum),
		"Var":       reflect.ValueOf(stats.Var),

		"ErrEmpty":            reflect.ValueOf(&stats.ErrEmpty).Elem(),
		"ErrInsufficientData": reflect.ValueOf(&stats.ErrInsufficientData).Elem(),
		"ErrLengthMismatch":   reflect.ValueOf(&stats.ErrLengthMismatch).Elem(),
		"ErrQuantileRange":    reflect.ValueOf(&stats.ErrQuantileRange).Elem(),
	},
	symbolKey(catalog.PlotPath): {
		"Figure": reflect.ValueOf((*plot.Figure)(nil)),
		"Kind":   reflect.ValueOf((*plot.Kind)(nil)),
		"Option": reflect.ValueOf((*plot.Option)(nil)),
		"Trace":  reflect.ValueOf((*plot.Trace)(nil)),

		"DefaultBins":   reflect.ValueOf(plot.DefaultBins),
		"KindBar":       reflect.ValueOf(plot.KindBar),
		"KindHistogram": reflect.ValueOf(plot.KindHistogram),
		"KindLine":      reflect.ValueOf(plot.KindLine),
		"KindPie":       reflect.ValueOf(plot.KindPie),
		"KindScatter":   reflect.ValueOf(plot.KindScatter),

		"Bar":        reflect.ValueOf(plot.Bar),
		"Histogram":  reflect.ValueOf(plot.Histogram),
		"Label":      reflect.ValueOf(plot.Label),
		"Line":       reflect.ValueOf(plot.Line),
		"Pie":        reflect.ValueOf(plot.Pie),
		"Scatter":    reflect.ValueOf(plot.Scatter),
		"WithTitle":  reflect.ValueOf(plot.WithTitle),
		"WithXLabel": reflect.ValueOf(plot.WithXLabel),
		"WithYLabel": reflect.ValueOf(plot.WithYLabel),
		"ErrNoData":  reflect.ValueOf(&plot.ErrNoData).Elem(),
	},
}

// symbolKey returns the interp.Exports key for an import path: the path
// followed by the package name, e.g. "strings/strings".
func symbolKey(path string) string {
	name := path
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			name = path[i+1:]
			break
		}
	}
	return path + "/" + name
}
