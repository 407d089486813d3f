package duck

import (
	"context"
	"math"
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jonwraymond/tableqa/frame"
)

func writeCSV(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestLoad_CSV(t *testing.T) {
	path := writeCSV(t, "id,name,price,active\n1,apple,1.5,true\n2,pear,2.25,false\n3,plum,0.75,true\n")

	f, err := Load(context.Background(), nil, path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if f.Len() != 3 {
		t.Errorf("Len() = %d, want 3", f.Len())
	}
	want := []frame.ColumnType{
		{Name: "id", DType: frame.Int64},
		{Name: "name", DType: frame.String},
		{Name: "price", DType: frame.Float64},
		{Name: "active", DType: frame.Bool},
	}
	if diff := cmp.Diff(want, f.DTypes()); diff != "" {
		t.Errorf("DTypes() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_NullIntegersBecomeFloats(t *testing.T) {
	path := writeCSV(t, "id,qty\n1,4\n2,\n3,6\n")

	f, err := Load(context.Background(), nil, path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	qty, err := f.Col("qty")
	if err != nil {
		t.Fatalf("Col() error = %v", err)
	}
	if qty.DType() != frame.Float64 {
		t.Errorf("qty dtype = %s, want float64", qty.DType())
	}
	mean, _ := qty.Mean()
	if mean != 5 {
		t.Errorf("Mean() = %v, want 5", mean)
	}
}

func TestLoad_UnsupportedFormat(t *testing.T) {
	if _, err := Load(context.Background(), nil, "data.xlsx"); err == nil {
		t.Fatal("Load(.xlsx) error = nil, want error")
	}
}

func TestReadQuery_EscapesQuotes(t *testing.T) {
	got, err := readQuery("/tmp/o'brien.csv")
	if err != nil {
		t.Fatalf("readQuery() error = %v", err)
	}
	want := "SELECT * FROM read_csv_auto('/tmp/o''brien.csv')"
	if got != want {
		t.Errorf("readQuery() = %q, want %q", got, want)
	}
}

func TestDTypeOf(t *testing.T) {
	tests := map[string]frame.DType{
		"BIGINT":                   frame.Int64,
		"INTEGER":                  frame.Int64,
		"HUGEINT":                  frame.Int64,
		"DOUBLE":                   frame.Float64,
		"DECIMAL(18,3)":            frame.Float64,
		"VARCHAR":                  frame.String,
		"BOOLEAN":                  frame.Bool,
		"DATE":                     frame.Datetime,
		"TIMESTAMP WITH TIME ZONE": frame.Datetime,
	}
	for in, want := range tests {
		if got := dtypeOf(in); got != want {
			t.Errorf("dtypeOf(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestToSeries_IntOverflowBecomesFloat(t *testing.T) {
	huge := new(big.Int).Lsh(big.NewInt(1), 70)
	tests := []struct {
		name string
		vals []any
		want float64
	}{
		{"ubigint", []any{uint64(1), uint64(math.MaxUint64)}, float64(uint64(math.MaxUint64))},
		{"hugeint", []any{big.NewInt(1), huge}, math.Pow(2, 70)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := toSeries("n", frame.Int64, tt.vals)
			if s.DType() != frame.Float64 {
				t.Fatalf("dtype = %s, want float64", s.DType())
			}
			got, err := s.Floats()
			if err != nil {
				t.Fatalf("Floats() error = %v", err)
			}
			if got[0] != 1 || got[1] != tt.want {
				t.Errorf("Floats() = %v, want [1 %v]", got, tt.want)
			}
		})
	}
}

func TestToSeries_HugeIntInRangeStaysInt(t *testing.T) {
	s := toSeries("n", frame.Int64, []any{big.NewInt(-4), uint64(9)})
	if s.DType() != frame.Int64 {
		t.Fatalf("dtype = %s, want int64", s.DType())
	}
	if got := s.Value(0); got != int64(-4) {
		t.Errorf("Value(0) = %v, want -4", got)
	}
}
