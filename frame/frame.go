package frame

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
)

// Frame is an immutable table of equally long, uniquely named columns.
// Every operation returns a new Frame; the receiver is never modified, so a
// single Frame may be read from any number of goroutines.
type Frame struct {
	cols []Series
}

// ColumnType pairs a column name with its dtype.
type ColumnType struct {
	Name  string
	DType DType
}

// New builds a frame from columns. Columns must have equal length and
// distinct names.
func New(cols ...Series) (*Frame, error) {
	seen := make(map[string]bool, len(cols))
	for i, c := range cols {
		if seen[c.name] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, c.name)
		}
		seen[c.name] = true
		if i > 0 && c.Len() != cols[0].Len() {
			return nil, fmt.Errorf("%w: %q has %d rows, %q has %d",
				ErrLengthMismatch, c.name, c.Len(), cols[0].name, cols[0].Len())
		}
	}
	return &Frame{cols: append([]Series(nil), cols...)}, nil
}

// MustNew is like New but panics on error. Intended for fixtures.
func MustNew(cols ...Series) *Frame {
	f, err := New(cols...)
	if err != nil {
		panic(err)
	}
	return f
}

// Len returns the number of rows.
func (f *Frame) Len() int {
	if len(f.cols) == 0 {
		return 0
	}
	return f.cols[0].Len()
}

// Width returns the number of columns.
func (f *Frame) Width() int { return len(f.cols) }

// Columns returns the column names in order.
func (f *Frame) Columns() []string {
	out := make([]string, len(f.cols))
	for i, c := range f.cols {
		out[i] = c.name
	}
	return out
}

// DTypes returns the ordered column→dtype mapping.
func (f *Frame) DTypes() []ColumnType {
	out := make([]ColumnType, len(f.cols))
	for i, c := range f.cols {
		out[i] = ColumnType{Name: c.name, DType: c.dtype}
	}
	return out
}

// HasColumn reports whether a column exists.
func (f *Frame) HasColumn(name string) bool {
	return f.index(name) >= 0
}

func (f *Frame) index(name string) int {
	for i, c := range f.cols {
		if c.name == name {
			return i
		}
	}
	return -1
}

// Col returns the named column.
func (f *Frame) Col(name string) (Series, error) {
	i := f.index(name)
	if i < 0 {
		return Series{}, f.notFound(name)
	}
	return f.cols[i], nil
}

func (f *Frame) notFound(name string) error {
	return fmt.Errorf("%w: %q (available: %s)", ErrColumnNotFound, name, strings.Join(f.Columns(), ", "))
}

// Head returns the first n rows.
func (f *Frame) Head(n int) *Frame {
	if n < 0 {
		n = 0
	}
	if n > f.Len() {
		n = f.Len()
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return f.take(idx)
}

// Tail returns the last n rows.
func (f *Frame) Tail(n int) *Frame {
	if n < 0 {
		n = 0
	}
	if n > f.Len() {
		n = f.Len()
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = f.Len() - n + i
	}
	return f.take(idx)
}

// Select returns a frame with only the named columns, in the given order.
func (f *Frame) Select(names ...string) (*Frame, error) {
	cols := make([]Series, 0, len(names))
	for _, n := range names {
		c, err := f.Col(n)
		if err != nil {
			return nil, err
		}
		cols = append(cols, c)
	}
	return New(cols...)
}

// WithColumn returns a frame with s added, or replacing a column of the
// same name.
func (f *Frame) WithColumn(s Series) (*Frame, error) {
	if len(f.cols) > 0 && s.Len() != f.Len() {
		return nil, fmt.Errorf("%w: %q has %d rows, frame has %d", ErrLengthMismatch, s.name, s.Len(), f.Len())
	}
	cols := append([]Series(nil), f.cols...)
	if i := f.index(s.name); i >= 0 {
		cols[i] = s
	} else {
		cols = append(cols, s)
	}
	return &Frame{cols: cols}, nil
}

// Filter returns the rows for which keep returns true.
func (f *Frame) Filter(keep func(Row) bool) *Frame {
	var idx []int
	for i := 0; i < f.Len(); i++ {
		if keep(Row{f: f, i: i}) {
			idx = append(idx, i)
		}
	}
	return f.take(idx)
}

// Where filters rows comparing a column against value. Supported operators
// are ==, !=, <, <=, >, >= and "contains" (string columns only).
func (f *Frame) Where(column, op string, value any) (*Frame, error) {
	c, err := f.Col(column)
	if err != nil {
		return nil, err
	}
	cmp, err := comparer(c, op, value)
	if err != nil {
		return nil, err
	}
	var idx []int
	for i := 0; i < c.Len(); i++ {
		if cmp(i) {
			idx = append(idx, i)
		}
	}
	return f.take(idx), nil
}

// SortBy returns the frame stably sorted by a column.
func (f *Frame) SortBy(column string, ascending bool) (*Frame, error) {
	c, err := f.Col(column)
	if err != nil {
		return nil, err
	}
	idx := make([]int, f.Len())
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		i, j := idx[a], idx[b]
		if ni, nj := c.isNaN(i), c.isNaN(j); ni != nj {
			return nj
		}
		if ascending {
			return c.less(i, j)
		}
		return c.less(j, i)
	})
	return f.take(idx), nil
}

// Rows returns every row as a column→value map.
func (f *Frame) Rows() []map[string]any {
	out := make([]map[string]any, f.Len())
	for i := range out {
		row := make(map[string]any, len(f.cols))
		for _, c := range f.cols {
			row[c.name] = c.Value(i)
		}
		out[i] = row
	}
	return out
}

// Records returns the rows as positional values in column order.
func (f *Frame) Records() [][]any {
	out := make([][]any, f.Len())
	for i := range out {
		rec := make([]any, len(f.cols))
		for j, c := range f.cols {
			rec[j] = c.Value(i)
		}
		out[i] = rec
	}
	return out
}

func (f *Frame) take(idx []int) *Frame {
	cols := make([]Series, len(f.cols))
	for i, c := range f.cols {
		cols[i] = c.take(idx)
	}
	return &Frame{cols: cols}
}

// Row is a read-only cursor over one row of a frame.
type Row struct {
	f *Frame
	i int
}

// Index returns the row position within its frame.
func (r Row) Index() int { return r.i }

// Get returns the raw value of a column, or nil if the column is missing.
func (r Row) Get(column string) any {
	j := r.f.index(column)
	if j < 0 {
		return nil
	}
	return r.f.cols[j].Value(r.i)
}

// Float returns a numeric column value, or NaN when absent or non-numeric.
func (r Row) Float(column string) float64 {
	switch v := r.Get(column).(type) {
	case int64:
		return float64(v)
	case float64:
		return v
	case bool:
		if v {
			return 1
		}
		return 0
	}
	return math.NaN()
}

// Str returns a column value formatted as a string.
func (r Row) Str(column string) string {
	if s, ok := r.Get(column).(string); ok {
		return s
	}
	return formatValue(r.Get(column))
}

// Time returns a datetime column value, or the zero time.
func (r Row) Time(column string) time.Time {
	t, _ := r.Get(column).(time.Time)
	return t
}

func comparer(c Series, op string, value any) (func(int) bool, error) {
	if op == "contains" {
		if c.dtype != String {
			return nil, fmt.Errorf("%w: contains on %s column %q", ErrTypeMismatch, c.dtype, c.name)
		}
		needle := fmt.Sprint(value)
		return func(i int) bool { return strings.Contains(c.strs[i], needle) }, nil
	}
	var cmp func(i int) int
	switch c.dtype {
	case Int64, Float64, Bool:
		want, ok := toFloat(value)
		if !ok {
			return nil, fmt.Errorf("%w: cannot compare %s column %q with %T", ErrTypeMismatch, c.dtype, c.name, value)
		}
		xs, _ := c.Floats()
		cmp = func(i int) int {
			switch {
			case math.IsNaN(xs[i]):
				return 2 // unordered
			case xs[i] < want:
				return -1
			case xs[i] > want:
				return 1
			}
			return 0
		}
	case String:
		want, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("%w: cannot compare string column %q with %T", ErrTypeMismatch, c.name, value)
		}
		cmp = func(i int) int { return strings.Compare(c.strs[i], want) }
	case Datetime:
		want, ok := value.(time.Time)
		if !ok {
			return nil, fmt.Errorf("%w: cannot compare datetime column %q with %T", ErrTypeMismatch, c.name, value)
		}
		cmp = func(i int) int { return c.times[i].Compare(want) }
	}
	switch op {
	case "==":
		return func(i int) bool { return cmp(i) == 0 }, nil
	case "!=":
		return func(i int) bool { return cmp(i) != 0 }, nil
	case "<":
		return func(i int) bool { return cmp(i) == -1 }, nil
	case "<=":
		return func(i int) bool { r := cmp(i); return r == -1 || r == 0 }, nil
	case ">":
		return func(i int) bool { return cmp(i) == 1 }, nil
	case ">=":
		return func(i int) bool { r := cmp(i); return r == 1 || r == 0 }, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownOp, op)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}
