package catalog

// Import paths of the analysis packages as seen by generated code.
const (
	FramePath = "tableqa/frame"
	StatsPath = "tableqa/stats"
	PlotPath  = "tableqa/plot"
)

// DefaultEntries is the standard allow-list: the dataset, numeric and
// plotting packages plus a small set of pure standard library packages.
func DefaultEntries() []Entry {
	return []Entry{
		{
			Path:    FramePath,
			Name:    "frame",
			Summary: "Immutable tables. `df` is a *frame.Frame holding the dataset.",
			Notes: "Every method returns a new frame. Columns: df.Columns(), df.Col(name) returns (Series, error). " +
				"Rows: df.Filter(func(r frame.Row) bool), df.Where(col, op, value) with ops == != < <= > >= contains, " +
				"df.SortBy(col, ascending), df.Head(n), df.Select(cols...), df.Rows() as []map[string]any. " +
				"Grouping: g, err := df.GroupBy(col); g.Agg(col, frame.Sum|frame.Mean|frame.Median|frame.Count|frame.Min|frame.Max). " +
				"Series: s.Sum(), s.Mean(), s.Max(), s.Floats(), s.Unique(), s.ValueCounts().",
			Tags: []string{"table", "dataframe", "filter", "group", "sort", "column", "rows", "count", "total", "average"},
			Examples: []Example{
				{
					Title: "Total per group, largest first",
					Code: `g, err := df.GroupBy("region")
if err != nil {
	panic(err)
}
totals, err := g.Agg("sales", frame.Sum)
if err != nil {
	panic(err)
}
top, _ := totals.SortBy("sales", false)
output_dict := map[string]any{"totals": top.Head(5).Rows()}`,
				},
				{
					Title: "Filter rows",
					Code: `big, err := df.Where("amount", ">", 100)
if err != nil {
	panic(err)
}
output_dict := map[string]any{"count": big.Len()}`,
				},
			},
		},
		{
			Path:    StatsPath,
			Name:    "stats",
			Summary: "Numeric helpers over []float64: Sum, Mean, Median, Std, Var, Min, Max, Quantile, Corr, Round, PctChange.",
			Notes:   "NaN values are ignored. Empty input returns stats.ErrEmpty. Get values with s.Floats() on a Series.",
			Tags:    []string{"statistics", "mean", "median", "correlation", "quantile", "percentile", "deviation", "round"},
			Examples: []Example{
				{
					Title: "Correlation between two columns",
					Code: `x, _ := df.Col("price")
y, _ := df.Col("units")
xs, _ := x.Floats()
ys, _ := y.Floats()
r, err := stats.Corr(xs, ys)
if err != nil {
	panic(err)
}
output_dict := map[string]any{"correlation": stats.Round(r, 3)}`,
				},
			},
		},
		{
			Path:    PlotPath,
			Name:    "plot",
			Summary: "Chart specifications: Bar, Line, Scatter, Histogram, Pie. fig.Map() is safe to put in output_dict.",
			Notes:   "Options: plot.WithTitle, plot.WithXLabel, plot.WithYLabel. Nothing is rendered.",
			Tags:    []string{"chart", "plot", "graph", "visualize", "histogram", "distribution", "trend"},
			Examples: []Example{
				{
					Title: "Bar chart of totals",
					Code: `fig, err := plot.Bar(df, "region", "sales", plot.WithTitle("Sales by region"))
if err != nil {
	panic(err)
}
output_dict := map[string]any{"chart": fig.Map()}`,
				},
			},
		},
		{Path: "fmt", Name: "fmt", Summary: "Formatting with Sprintf and friends.", Tags: []string{"format", "print"}},
		{Path: "math", Name: "math", Summary: "Floating point functions and constants such as math.NaN and math.Abs.", Tags: []string{"arithmetic", "abs", "sqrt"}},
		{Path: "regexp", Name: "regexp", Summary: "Regular expressions for matching text columns.", Tags: []string{"pattern", "match", "text"}},
		{Path: "sort", Name: "sort", Summary: "Sorting slices.", Tags: []string{"order", "rank"}},
		{Path: "strconv", Name: "strconv", Summary: "Conversions between strings and numbers.", Tags: []string{"parse", "convert"}},
		{Path: "strings", Name: "strings", Summary: "String manipulation: Contains, ToLower, Split, TrimSpace.", Tags: []string{"text", "lowercase", "split"}},
		{Path: "time", Name: "time", Summary: "Dates and times from datetime columns: Year, Month, Sub, Format.", Tags: []string{"date", "month", "year", "duration"}},
	}
}

// Default returns a catalog of DefaultEntries.
func Default() *Catalog {
	c, err := New(DefaultEntries()...)
	if err != nil {
		panic("catalog: default entries: " + err.Error())
	}
	return c
}
