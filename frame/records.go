package frame

import (
	"fmt"
	"math"
	"time"
)

// FromRecords builds a frame from positional rows, inferring one dtype per
// column from its non-nil values:
//
//   - all integers → int64 (float64 if any value is nil)
//   - integers and floats → float64, nil becomes NaN
//   - all bools → bool
//   - all time.Time → datetime
//   - anything else → string, formatted with fmt
func FromRecords(columns []string, rows [][]any) (*Frame, error) {
	for i, r := range rows {
		if len(r) != len(columns) {
			return nil, fmt.Errorf("%w: row %d has %d values, want %d", ErrLengthMismatch, i, len(r), len(columns))
		}
	}
	cols := make([]Series, len(columns))
	for j, name := range columns {
		vals := make([]any, len(rows))
		for i, r := range rows {
			vals[i] = r[j]
		}
		cols[j] = inferSeries(name, vals)
	}
	return New(cols...)
}

func inferSeries(name string, vals []any) Series {
	var nInt, nFloat, nBool, nTime, nOther, nNil int
	for _, v := range vals {
		switch v.(type) {
		case nil:
			nNil++
		case int, int8, int16, int32, int64, uint8, uint16, uint32:
			nInt++
		case float32, float64:
			nFloat++
		case bool:
			nBool++
		case time.Time:
			nTime++
		default:
			nOther++
		}
	}
	switch {
	case nOther > 0:
	case nInt > 0 && nFloat == 0 && nBool == 0 && nTime == 0 && nNil == 0:
		out := make([]int64, len(vals))
		for i, v := range vals {
			out[i] = toInt64(v)
		}
		return Ints(name, out)
	case nInt+nFloat > 0 && nBool == 0 && nTime == 0:
		out := make([]float64, len(vals))
		for i, v := range vals {
			if v == nil {
				out[i] = math.NaN()
				continue
			}
			if f, ok := toFloat(v); ok {
				out[i] = f
			} else {
				out[i] = float64(toInt64(v))
			}
		}
		return Floats(name, out)
	case nBool > 0 && nInt+nFloat+nTime == 0:
		out := make([]bool, len(vals))
		for i, v := range vals {
			out[i], _ = v.(bool)
		}
		return Bools(name, out)
	case nTime > 0 && nInt+nFloat+nBool == 0:
		out := make([]time.Time, len(vals))
		for i, v := range vals {
			out[i], _ = v.(time.Time)
		}
		return Times(name, out)
	}
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = formatValue(v)
	}
	return Strings(name, out)
}

func toInt64(v any) int64 {
	switch n := v.(type) {
	case int:
		return int64(n)
	case int8:
		return int64(n)
	case int16:
		return int64(n)
	case int32:
		return int64(n)
	case int64:
		return n
	case uint8:
		return int64(n)
	case uint16:
		return int64(n)
	case uint32:
		return int64(n)
	}
	return 0
}
