package frame

import (
	"fmt"
	"math"
	"time"

	"github.com/jonwraymond/tableqa/stats"
)

// DType names the element type of a column.
type DType string

const (
	Int64    DType = "int64"
	Float64  DType = "float64"
	String   DType = "string"
	Bool     DType = "bool"
	Datetime DType = "datetime"
)

// Series is an immutable, named, typed column. The zero value is not usable;
// build one with Ints, Floats, Strings, Bools or Times.
type Series struct {
	name   string
	dtype  DType
	ints   []int64
	floats []float64
	strs   []string
	bools  []bool
	times  []time.Time
}

// Ints builds an int64 column. The values are copied.
func Ints(name string, values []int64) Series {
	return Series{name: name, dtype: Int64, ints: append([]int64(nil), values...)}
}

// Floats builds a float64 column. NaN marks a missing value.
func Floats(name string, values []float64) Series {
	return Series{name: name, dtype: Float64, floats: append([]float64(nil), values...)}
}

// Strings builds a string column.
func Strings(name string, values []string) Series {
	return Series{name: name, dtype: String, strs: append([]string(nil), values...)}
}

// Bools builds a bool column.
func Bools(name string, values []bool) Series {
	return Series{name: name, dtype: Bool, bools: append([]bool(nil), values...)}
}

// Times builds a datetime column.
func Times(name string, values []time.Time) Series {
	return Series{name: name, dtype: Datetime, times: append([]time.Time(nil), values...)}
}

// Name returns the column name.
func (s Series) Name() string { return s.name }

// DType returns the column element type.
func (s Series) DType() DType { return s.dtype }

// Len returns the number of values.
func (s Series) Len() int {
	switch s.dtype {
	case Int64:
		return len(s.ints)
	case Float64:
		return len(s.floats)
	case String:
		return len(s.strs)
	case Bool:
		return len(s.bools)
	case Datetime:
		return len(s.times)
	}
	return 0
}

// Rename returns a copy of s with a different name.
func (s Series) Rename(name string) Series {
	s.name = name
	return s
}

// Value returns the i-th value boxed as any.
func (s Series) Value(i int) any {
	switch s.dtype {
	case Int64:
		return s.ints[i]
	case Float64:
		return s.floats[i]
	case String:
		return s.strs[i]
	case Bool:
		return s.bools[i]
	case Datetime:
		return s.times[i]
	}
	return nil
}

// Values returns a copy of all values boxed as any.
func (s Series) Values() []any {
	out := make([]any, s.Len())
	for i := range out {
		out[i] = s.Value(i)
	}
	return out
}

// IsNumeric reports whether the column can be converted with Floats.
func (s Series) IsNumeric() bool {
	return s.dtype == Int64 || s.dtype == Float64 || s.dtype == Bool
}

// Floats returns the column as float64 values. Bools convert to 0 and 1.
func (s Series) Floats() ([]float64, error) {
	out := make([]float64, s.Len())
	switch s.dtype {
	case Int64:
		for i, v := range s.ints {
			out[i] = float64(v)
		}
	case Float64:
		copy(out, s.floats)
	case Bool:
		for i, v := range s.bools {
			if v {
				out[i] = 1
			}
		}
	default:
		return nil, fmt.Errorf("%w: column %q is %s, not numeric", ErrTypeMismatch, s.name, s.dtype)
	}
	return out, nil
}

// Strings returns every value formatted as a string.
func (s Series) Strings() []string {
	if s.dtype == String {
		return append([]string(nil), s.strs...)
	}
	out := make([]string, s.Len())
	for i := range out {
		out[i] = formatValue(s.Value(i))
	}
	return out
}

// Times returns the column as time values.
func (s Series) Times() ([]time.Time, error) {
	if s.dtype != Datetime {
		return nil, fmt.Errorf("%w: column %q is %s, not datetime", ErrTypeMismatch, s.name, s.dtype)
	}
	return append([]time.Time(nil), s.times...), nil
}

// Sum returns the sum of a numeric column.
func (s Series) Sum() (float64, error) {
	xs, err := s.Floats()
	if err != nil {
		return math.NaN(), err
	}
	return stats.Sum(xs), nil
}

// Mean returns the mean of a numeric column.
func (s Series) Mean() (float64, error) {
	xs, err := s.Floats()
	if err != nil {
		return math.NaN(), err
	}
	return stats.Mean(xs)
}

// Median returns the median of a numeric column.
func (s Series) Median() (float64, error) {
	xs, err := s.Floats()
	if err != nil {
		return math.NaN(), err
	}
	return stats.Median(xs)
}

// Min returns the minimum of a numeric column.
func (s Series) Min() (float64, error) {
	xs, err := s.Floats()
	if err != nil {
		return math.NaN(), err
	}
	return stats.Min(xs)
}

// Max returns the maximum of a numeric column.
func (s Series) Max() (float64, error) {
	xs, err := s.Floats()
	if err != nil {
		return math.NaN(), err
	}
	return stats.Max(xs)
}

// Unique returns distinct values in order of first appearance.
func (s Series) Unique() []any {
	seen := make(map[any]bool)
	var out []any
	for i := 0; i < s.Len(); i++ {
		k := s.key(i)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, s.Value(i))
	}
	return out
}

// ValueCounts returns a two-column frame (value, "count") sorted by count
// descending; ties keep first-appearance order.
func (s Series) ValueCounts() *Frame {
	idx := make(map[any]int)
	var firsts []int
	var counts []int64
	for i := 0; i < s.Len(); i++ {
		k := s.key(i)
		if j, ok := idx[k]; ok {
			counts[j]++
			continue
		}
		idx[k] = len(firsts)
		firsts = append(firsts, i)
		counts = append(counts, 1)
	}
	f := &Frame{cols: []Series{s.take(firsts), Ints("count", counts)}}
	sorted, _ := f.SortBy("count", false)
	return sorted
}

// key returns a comparable grouping key for the i-th value.
func (s Series) key(i int) any {
	if s.dtype == Datetime {
		return s.times[i].UnixNano()
	}
	if s.dtype == Float64 && math.IsNaN(s.floats[i]) {
		return "NaN"
	}
	return s.Value(i)
}

// take returns the rows at idx, in that order.
func (s Series) take(idx []int) Series {
	out := Series{name: s.name, dtype: s.dtype}
	switch s.dtype {
	case Int64:
		out.ints = make([]int64, len(idx))
		for j, i := range idx {
			out.ints[j] = s.ints[i]
		}
	case Float64:
		out.floats = make([]float64, len(idx))
		for j, i := range idx {
			out.floats[j] = s.floats[i]
		}
	case String:
		out.strs = make([]string, len(idx))
		for j, i := range idx {
			out.strs[j] = s.strs[i]
		}
	case Bool:
		out.bools = make([]bool, len(idx))
		for j, i := range idx {
			out.bools[j] = s.bools[i]
		}
	case Datetime:
		out.times = make([]time.Time, len(idx))
		for j, i := range idx {
			out.times[j] = s.times[i]
		}
	}
	return out
}

func (s Series) isNaN(i int) bool {
	return s.dtype == Float64 && math.IsNaN(s.floats[i])
}

// less reports whether value i sorts before value j.
func (s Series) less(i, j int) bool {
	switch s.dtype {
	case Int64:
		return s.ints[i] < s.ints[j]
	case Float64:
		return s.floats[i] < s.floats[j]
	case String:
		return s.strs[i] < s.strs[j]
	case Bool:
		return !s.bools[i] && s.bools[j]
	case Datetime:
		return s.times[i].Before(s.times[j])
	}
	return false
}

func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case time.Time:
		if val.IsZero() {
			return ""
		}
		if val.Hour() == 0 && val.Minute() == 0 && val.Second() == 0 && val.Nanosecond() == 0 {
			return val.Format("2006-01-02")
		}
		return val.Format(time.RFC3339)
	case float64:
		if math.IsNaN(val) {
			return "NaN"
		}
		return fmt.Sprintf("%g", val)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// FormatValue renders a cell the way previews and string conversion do.
func FormatValue(v any) string {
	return formatValue(v)
}
