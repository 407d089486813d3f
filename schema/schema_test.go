package schema

import (
	"math"
	"strings"
	"testing"

	"github.com/jonwraymond/tableqa/frame"
)

func testFrame() *frame.Frame {
	return frame.MustNew(
		frame.Strings("product_name", []string{"apple", "pear", "plum"}),
		frame.Floats("price", []float64{1.5, math.NaN(), 0.75}),
		frame.Ints("stock", []int64{10, 0, 7}),
	)
}

func lines(s string) []string {
	return strings.Split(strings.TrimRight(s, "\n"), "\n")
}

func TestDescribe_Preview(t *testing.T) {
	d := Describe(testFrame())
	got := lines(d.Preview)
	// header, separator, two rows
	if len(got) != 4 {
		t.Fatalf("Preview has %d lines, want 4:\n%s", len(got), d.Preview)
	}
	if !strings.Contains(got[0], "product_name") || !strings.Contains(got[0], "stock") {
		t.Errorf("Preview header = %q", got[0])
	}
	if !strings.HasPrefix(got[1], "|-") {
		t.Errorf("Preview separator = %q", got[1])
	}
	if !strings.Contains(got[3], "NaN") {
		t.Errorf("second row should show NaN: %q", got[3])
	}
	if strings.Contains(d.Preview, "plum") {
		t.Errorf("Preview shows a third row:\n%s", d.Preview)
	}
}

func TestDescribe_PreviewRows(t *testing.T) {
	d := Describe(testFrame(), WithPreviewRows(3))
	if !strings.Contains(d.Preview, "plum") {
		t.Errorf("Preview missing third row:\n%s", d.Preview)
	}
	d = Describe(testFrame(), WithPreviewRows(-1))
	if got := len(lines(d.Preview)); got != 2 {
		t.Errorf("Preview with no rows has %d lines, want 2", got)
	}
}

func TestDescribe_Columns(t *testing.T) {
	d := Describe(testFrame())
	got := lines(d.Columns)
	if len(got) != 5 {
		t.Fatalf("Columns has %d lines, want 5:\n%s", len(got), d.Columns)
	}
	if !strings.Contains(got[0], "Column Name") {
		t.Errorf("Columns header = %q", got[0])
	}
	for i, name := range []string{"product_name", "price", "stock"} {
		if !strings.Contains(got[i+2], name) {
			t.Errorf("Columns row %d = %q, want %s", i, got[i+2], name)
		}
	}
}

func TestDescribe_ColumnTypes(t *testing.T) {
	d := Describe(testFrame())
	got := lines(d.ColumnTypes)
	if !strings.Contains(got[0], "Column Name") || !strings.Contains(got[0], "Data Type") {
		t.Errorf("ColumnTypes header = %q", got[0])
	}
	want := [][2]string{{"product_name", "string"}, {"price", "float64"}, {"stock", "int64"}}
	for i, w := range want {
		row := got[i+2]
		if !strings.Contains(row, w[0]) || !strings.Contains(row, w[1]) {
			t.Errorf("ColumnTypes row %d = %q, want %v", i, row, w)
		}
	}
}

func TestDescribe_Deterministic(t *testing.T) {
	f := testFrame()
	if Describe(f).String() != Describe(f).String() {
		t.Error("Describe() is not deterministic")
	}
}
