package importer

import (
	"io"
	"strings"

	"github.com/MrJamesThe3rd/tally/internal/money"
	"github.com/MrJamesThe3rd/tally/internal/reconcile"
)

// Positional layout of the shared-expense sheet.
const (
	sharedColDate = iota
	sharedColExpense
	sharedColDescription
	sharedColTotal
	sharedColCounterparty
)

// ParseShared reads the shared-expense sheet. The header row is skipped and
// the rest is positional; an empty sheet yields no transactions.
func ParseShared(r io.Reader) ([]reconcile.SharedTransaction, error) {
	rows, err := readRows(r)
	if err != nil {
		return nil, err
	}

	if len(rows) <= 1 {
		return nil, nil
	}

	out := make([]reconcile.SharedTransaction, 0, len(rows)-1)

	for _, row := range rows[1:] {
		if blank(row) {
			continue
		}

		out = append(out, reconcile.SharedTransaction{
			Description:        cell(row, sharedColDescription),
			Total:              money.ParseOrZero(cell(row, sharedColTotal)),
			CounterpartyAmount: money.ParseOrZero(cell(row, sharedColCounterparty)),
			Expense:            strings.ToLower(cell(row, sharedColExpense)),
		})
	}

	return out, nil
}
