package report

import (
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/money"
)

// Entry is one categorized line under a column.
type Entry struct {
	Description string
	Amount      decimal.Decimal
}

// Column is a labelled group of entries.
type Column struct {
	Label   string
	Entries []Entry
}

// Total sums the column's amounts.
func (c Column) Total() decimal.Decimal {
	sum := decimal.Zero
	for _, e := range c.Entries {
		sum = sum.Add(e.Amount)
	}

	return sum
}

// Build lays columns out side by side.
func Build(columns []Column) Report {
	width := 1 + 2*len(columns)

	header := make(Row, 0, width)
	sub := make(Row, 0, width)

	header = append(header, CategoryCell)
	sub = append(sub, "")

	height := 0

	for _, c := range columns {
		header = append(header, c.Label, "")
		sub = append(sub, DescriptionCell, AmountCell)
		height = max(height, len(c.Entries))
	}

	out := make(Report, 0, height+3)
	out = append(out, header, sub)

	for i := range height {
		row := make(Row, 0, width)
		row = append(row, "")

		for _, c := range columns {
			if i >= len(c.Entries) {
				row = append(row, "", "")
				continue
			}

			e := c.Entries[i]
			row = append(row, e.Description, money.Format(e.Amount))
		}

		out = append(out, row)
	}

	totals := make(Row, 0, width)
	totals = append(totals, TotalCell)

	for _, c := range columns {
		totals = append(totals, "", money.FormatTotal(c.Total()))
	}

	return append(out, totals)
}
