// Package schema renders the textual description of a dataset that
// grounds every model prompt: a short preview, the column names and the
// column types, each as a markdown table.
package schema

import (
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/jonwraymond/tableqa/frame"
)

// DefaultPreviewRows is the number of rows shown in Preview.
const DefaultPreviewRows = 2

// Description is the schema of one dataset. It depends only on the
// dataset, so it is computed once per session and reused by every prompt.
type Description struct {
	Preview     string
	Columns     string
	ColumnTypes string
}

// String joins the three tables under headings, in prompt order.
func (d Description) String() string {
	var b strings.Builder
	b.WriteString("### Preview\n\n")
	b.WriteString(d.Preview)
	b.WriteString("\n### Columns\n\n")
	b.WriteString(d.Columns)
	b.WriteString("\n### Column types\n\n")
	b.WriteString(d.ColumnTypes)
	return b.String()
}

type options struct {
	previewRows int
}

// Option configures Describe.
type Option func(*options)

// WithPreviewRows sets how many leading rows Preview shows. Values below
// zero are treated as zero.
func WithPreviewRows(n int) Option {
	return func(o *options) {
		if n < 0 {
			n = 0
		}
		o.previewRows = n
	}
}

// Describe renders the description of f. It has no side effects.
func Describe(f *frame.Frame, opts ...Option) Description {
	o := options{previewRows: DefaultPreviewRows}
	for _, opt := range opts {
		opt(&o)
	}

	head := f.Head(o.previewRows)
	preview := make([][]string, 0, head.Len())
	for _, rec := range head.Records() {
		row := make([]string, len(rec))
		for i, v := range rec {
			row[i] = frame.FormatValue(v)
		}
		preview = append(preview, row)
	}

	names := make([][]string, 0, f.Width())
	types := make([][]string, 0, f.Width())
	for _, ct := range f.DTypes() {
		names = append(names, []string{ct.Name})
		types = append(types, []string{ct.Name, string(ct.DType)})
	}

	return Description{
		Preview:     markdown(f.Columns(), preview),
		Columns:     markdown([]string{"Column Name"}, names),
		ColumnTypes: markdown([]string{"Column Name", "Data Type"}, types),
	}
}

func markdown(header []string, rows [][]string) string {
	var b strings.Builder
	table := tablewriter.NewWriter(&b)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorders(tablewriter.Border{Left: true, Top: false, Right: true, Bottom: false})
	table.SetCenterSeparator("|")
	table.SetHeader(header)
	table.AppendBulk(rows)
	table.Render()
	return b.String()
}
