// Package frame provides the immutable in-memory table that questions are
// answered against.
//
// A [Frame] is created once per process (usually by [duck.Load]) and then
// shared read-only: the schema descriptor reads its preview and dtypes, and
// every sandboxed execution sees the same value bound as df. No method
// mutates a frame; selections, filters, sorts and aggregations all return a
// new one.
//
// Generated analysis code uses the package directly:
//
//	byRegion, err := df.GroupBy("region")
//	if err != nil {
//		panic(err)
//	}
//	totals, _ := byRegion.Agg("sales", frame.Sum)
//	top, _ := totals.SortBy("sales", false)
//	output_dict := map[string]any{"top_regions": top.Head(3).Rows()}
package frame
