// Package report models the pivoted categorization output: two header rows,
// a body padded to the tallest column, and a totals row. Every category
// occupies a description column followed by an amount column.
package report

import (
	"slices"
)

const (
	CategoryCell    = "Category"
	TotalCell       = "Total"
	DescriptionCell = "Description"
	AmountCell      = "Amount"

	// FirstCategoryColumn holds the first category label and description;
	// its amount sits one column to the right.
	FirstCategoryColumn = 1
)

// Row is one line of the report. Cells are plain strings; amounts are
// already formatted as "$ 12.34".
type Row []string

// Report is the ordered sequence of rows returned to callers.
type Report []Row

// Header is the first header row, carrying the category labels at odd indexes.
func (r Report) Header() Row {
	if len(r) == 0 {
		return nil
	}

	return r[0]
}

// Body returns the data rows between the headers and the totals row. The
// returned rows alias r.
func (r Report) Body() []Row {
	if len(r) < 3 {
		return nil
	}

	return r[2 : len(r)-1]
}

// Totals returns the last row.
func (r Report) Totals() Row {
	if len(r) < 3 {
		return nil
	}

	return r[len(r)-1]
}

// Width is the number of cells in the header row.
func (r Report) Width() int {
	return len(r.Header())
}

// Labels returns the category labels in column order.
func (r Report) Labels() []string {
	h := r.Header()

	var out []string
	for i := FirstCategoryColumn; i < len(h); i += 2 {
		out = append(out, h[i])
	}

	return out
}

// InsertBeforeTotals places row directly above the totals row.
func (r Report) InsertBeforeTotals(row Row) Report {
	if len(r) == 0 {
		return Report{row}
	}

	return slices.Insert(r, len(r)-1, row)
}
