// Package reconcile merges the other party's shared expenses into a
// categorized report. A shared expense either replaces the report cell whose
// amount equals its total, or becomes a new row above the totals.
//
// Reconcile is not idempotent: run it once per report.
package reconcile

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/money"
	"github.com/MrJamesThe3rd/tally/internal/report"
)

// SharedTransaction is one line of the shared-expense sheet.
type SharedTransaction struct {
	Description        string          `json:"description"`
	Total              decimal.Decimal `json:"total"`
	CounterpartyAmount decimal.Decimal `json:"counterpartyAmount"`
	Expense            string          `json:"expense"`
}

const labelSeparator = " → "

// Stats counts how shared transactions were applied.
type Stats struct {
	Merged   int
	Inserted int
}

// Reconcile applies shared to rep in order and returns the updated report.
// Matched cells are overwritten in place, so rep itself is modified.
func Reconcile(rep report.Report, shared []SharedTransaction) report.Report {
	rep, _ = Apply(rep, shared)
	return rep
}

// Apply is Reconcile with counts. Only rows present before the call are
// candidates for merging.
func Apply(rep report.Report, shared []SharedTransaction) (report.Report, Stats) {
	var stats Stats

	if len(rep) < 3 {
		return rep, stats
	}

	columns := labelColumns(rep.Header())
	body := rep.Body()

	for _, s := range shared {
		if merge(body, s) {
			stats.Merged++
			continue
		}

		rep = rep.InsertBeforeTotals(newRow(rep.Width(), targetColumn(columns, s.Expense), s))
		stats.Inserted++
	}

	return rep, stats
}

// labelColumns maps lowercased header labels to their amount column. A
// "Main → Sub" label is reachable by both its full text and its sub-category.
func labelColumns(header report.Row) map[string]int {
	out := make(map[string]int)

	for i := report.FirstCategoryColumn; i < len(header); i += 2 {
		label := strings.ToLower(header[i])
		out[label] = i

		if _, sub, ok := strings.Cut(label, labelSeparator); ok {
			if _, taken := out[sub]; !taken {
				out[sub] = i
			}
		}
	}

	return out
}

// merge overwrites the first amount cell, scanning rows then columns, that
// is within tolerance of s.Total.
func merge(body []report.Row, s SharedTransaction) bool {
	for _, row := range body {
		for i := report.FirstCategoryColumn + 1; i < len(row); i += 2 {
			amount, ok := money.ParseCell(row[i])
			if !ok || !money.Near(amount, s.Total) {
				continue
			}

			row[i-1] = s.Description
			row[i] = money.Format(s.CounterpartyAmount)

			return true
		}
	}

	return false
}

func targetColumn(columns map[string]int, expense string) int {
	if i, ok := columns[strings.ToLower(expense)]; ok {
		return i
	}

	return report.FirstCategoryColumn
}

func newRow(width, target int, s SharedTransaction) report.Row {
	row := make(report.Row, max(width, target+2))
	row[target] = s.Description
	row[target+1] = money.Format(s.CounterpartyAmount)

	return row
}
