// Package duck loads datasets into frames through DuckDB, which infers
// column types from CSV and Parquet files.
package duck

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"math"
	"math/big"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/jonwraymond/tableqa/frame"
)

// Load reads a CSV (.csv, .tsv, .csv.gz) or Parquet (.parquet) file into a
// frame using an in-memory DuckDB connection.
func Load(ctx context.Context, log *slog.Logger, path string) (*frame.Frame, error) {
	query, err := readQuery(path)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, fmt.Errorf("failed to open duckdb: %w", err)
	}
	defer db.Close()

	start := time.Now()
	f, err := FromQuery(ctx, db, query)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	if log != nil {
		log.Info("duck: dataset loaded", "path", path, "rows", f.Len(), "columns", f.Width(), "duration", time.Since(start).String())
	}
	return f, nil
}

func readQuery(path string) (string, error) {
	lit := "'" + strings.ReplaceAll(path, "'", "''") + "'"
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".parquet"):
		return "SELECT * FROM read_parquet(" + lit + ")", nil
	case strings.HasSuffix(lower, ".csv"), strings.HasSuffix(lower, ".tsv"), strings.HasSuffix(lower, ".csv.gz"):
		return "SELECT * FROM read_csv_auto(" + lit + ")", nil
	}
	return "", fmt.Errorf("unsupported dataset format %q", filepath.Ext(path))
}

// FromQuery runs query on db and converts the result set into a frame.
func FromQuery(ctx context.Context, db *sql.DB, query string) (*frame.Frame, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()
	return FromRows(rows)
}

// FromRows drains rows into a frame. Column dtypes follow the database
// types; integer columns containing NULL or values outside the int64
// range become float64.
func FromRows(rows *sql.Rows) (*frame.Frame, error) {
	types, err := rows.ColumnTypes()
	if err != nil {
		return nil, fmt.Errorf("failed to read column types: %w", err)
	}

	data := make([][]any, len(types))
	for rows.Next() {
		vals := make([]any, len(types))
		ptrs := make([]any, len(types))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		for i, v := range vals {
			data[i] = append(data[i], v)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	cols := make([]frame.Series, len(types))
	for i, ct := range types {
		cols[i] = toSeries(ct.Name(), dtypeOf(ct.DatabaseTypeName()), data[i])
	}
	return frame.New(cols...)
}

func dtypeOf(dbType string) frame.DType {
	t := strings.ToUpper(dbType)
	switch {
	case t == "BOOLEAN":
		return frame.Bool
	case t == "DATE" || strings.HasPrefix(t, "TIMESTAMP"):
		return frame.Datetime
	case strings.HasSuffix(t, "INT") || t == "BIGINT" || t == "INTEGER" || t == "SMALLINT" || t == "TINYINT" || t == "UBIGINT" || t == "UINTEGER":
		return frame.Int64
	case t == "DOUBLE" || t == "FLOAT" || t == "REAL" || strings.HasPrefix(t, "DECIMAL"):
		return frame.Float64
	}
	return frame.String
}

func toSeries(name string, dt frame.DType, vals []any) frame.Series {
	switch dt {
	case frame.Int64:
		ints := make([]int64, len(vals))
		for i, v := range vals {
			n, ok := asInt(v)
			if !ok {
				return frame.Floats(name, floats(vals))
			}
			ints[i] = n
		}
		return frame.Ints(name, ints)
	case frame.Float64:
		return frame.Floats(name, floats(vals))
	case frame.Bool:
		out := make([]bool, len(vals))
		for i, v := range vals {
			out[i], _ = v.(bool)
		}
		return frame.Bools(name, out)
	case frame.Datetime:
		out := make([]time.Time, len(vals))
		for i, v := range vals {
			out[i], _ = v.(time.Time)
		}
		return frame.Times(name, out)
	}
	out := make([]string, len(vals))
	for i, v := range vals {
		switch s := v.(type) {
		case nil:
		case string:
			out[i] = s
		case []byte:
			out[i] = string(s)
		default:
			out[i] = fmt.Sprint(s)
		}
	}
	return frame.Strings(name, out)
}

func floats(vals []any) []float64 {
	out := make([]float64, len(vals))
	for i, v := range vals {
		out[i] = asFloat(v)
	}
	return out
}

func asInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int32:
		return int64(n), true
	case int16:
		return int64(n), true
	case int8:
		return int64(n), true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint8:
		return int64(n), true
	case *big.Int:
		if n == nil || !n.IsInt64() {
			return 0, false
		}
		return n.Int64(), true
	case interface{ Int64() int64 }:
		return n.Int64(), true
	}
	return 0, false
}

func asFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case uint64:
		return float64(n)
	case *big.Int:
		if n == nil {
			return math.NaN()
		}
		f, _ := new(big.Float).SetInt(n).Float64()
		return f
	case interface{ Float64() float64 }:
		return n.Float64()
	}
	if i, ok := asInt(v); ok {
		return float64(i)
	}
	return math.NaN()
}
