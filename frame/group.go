package frame

import (
	"fmt"

	"github.com/jonwraymond/tableqa/stats"
)

// AggFunc names an aggregation applied per group.
type AggFunc string

const (
	Sum    AggFunc = "sum"
	Mean   AggFunc = "mean"
	Median AggFunc = "median"
	Count  AggFunc = "count"
	Min    AggFunc = "min"
	Max    AggFunc = "max"
)

// Grouped is a frame partitioned by the values of one key column. Groups
// keep the order in which their key first appears.
type Grouped struct {
	f      *Frame
	key    Series
	groups [][]int
	firsts []int
}

// GroupBy partitions the frame by a key column.
func (f *Frame) GroupBy(key string) (*Grouped, error) {
	k, err := f.Col(key)
	if err != nil {
		return nil, err
	}
	g := &Grouped{f: f, key: k}
	pos := make(map[any]int)
	for i := 0; i < k.Len(); i++ {
		kv := k.key(i)
		j, ok := pos[kv]
		if !ok {
			j = len(g.groups)
			pos[kv] = j
			g.groups = append(g.groups, nil)
			g.firsts = append(g.firsts, i)
		}
		g.groups[j] = append(g.groups[j], i)
	}
	return g, nil
}

// Len returns the number of groups.
func (g *Grouped) Len() int { return len(g.groups) }

// Keys returns the distinct key values in group order.
func (g *Grouped) Keys() []any {
	return g.key.take(g.firsts).Values()
}

// Count returns a frame of (key, "count").
func (g *Grouped) Count() *Frame {
	counts := make([]int64, len(g.groups))
	for i, rows := range g.groups {
		counts[i] = int64(len(rows))
	}
	return &Frame{cols: []Series{g.key.take(g.firsts), Ints("count", counts)}}
}

// Agg aggregates a numeric column per group, returning a frame of
// (key, column). Count works on any dtype; counting the key column itself
// names the result "count".
func (g *Grouped) Agg(column string, fn AggFunc) (*Frame, error) {
	c, err := g.f.Col(column)
	if err != nil {
		return nil, err
	}
	if fn == Count {
		counts := g.Count()
		if column == g.key.name {
			return counts, nil
		}
		return counts.renameLast(column), nil
	}
	xs, err := c.Floats()
	if err != nil {
		return nil, fmt.Errorf("aggregate %s: %w", fn, err)
	}
	out := make([]float64, len(g.groups))
	for i, rows := range g.groups {
		vals := make([]float64, len(rows))
		for j, r := range rows {
			vals[j] = xs[r]
		}
		v, err := aggregate(fn, vals)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return &Frame{cols: []Series{g.key.take(g.firsts), Floats(column, out)}}, nil
}

func (f *Frame) renameLast(name string) *Frame {
	cols := append([]Series(nil), f.cols...)
	cols[len(cols)-1] = cols[len(cols)-1].Rename(name)
	return &Frame{cols: cols}
}

func aggregate(fn AggFunc, vals []float64) (float64, error) {
	switch fn {
	case Sum:
		return stats.Sum(vals), nil
	case Mean:
		v, _ := stats.Mean(vals)
		return v, nil
	case Median:
		v, _ := stats.Median(vals)
		return v, nil
	case Min:
		v, _ := stats.Min(vals)
		return v, nil
	case Max:
		v, _ := stats.Max(vals)
		return v, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAgg, fn)
}
