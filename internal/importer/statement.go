package importer

import (
	"fmt"
	"io"
	"strings"

	"github.com/MrJamesThe3rd/tally/internal/categorize"
	"github.com/MrJamesThe3rd/tally/internal/money"
)

// statementProfile is the column layout of a bank statement export. Header
// names are compared lowercased.
type statementProfile struct {
	DateCol    string
	DescCol    string
	SubDescCol string
	TypeCol    string
	AmountCol  string
	BalanceCol string
}

var statement = statementProfile{
	DateCol:    "date",
	DescCol:    "description",
	SubDescCol: "sub-description",
	TypeCol:    "type of transaction",
	AmountCol:  "amount",
	BalanceCol: "balance",
}

type statementColumns struct {
	date, desc, subDesc, typ, amount, balance int
}

func (p statementProfile) locate(header []string) statementColumns {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if _, dup := idx[key]; !dup {
			idx[key] = i
		}
	}

	find := func(name string) int {
		if i, ok := idx[name]; ok {
			return i
		}

		return -1
	}

	return statementColumns{
		date:    find(p.DateCol),
		desc:    find(p.DescCol),
		subDesc: find(p.SubDescCol),
		typ:     find(p.TypeCol),
		amount:  find(p.AmountCol),
		balance: find(p.BalanceCol),
	}
}

// ParseStatement reads a bank statement CSV. Columns are found by header
// name; missing columns read as empty. A non-numeric amount becomes zero, a
// blank balance stays unset.
func ParseStatement(r io.Reader) ([]categorize.Transaction, error) {
	rows, err := readRows(r)
	if err != nil {
		return nil, err
	}

	if len(rows) < 2 {
		return nil, fmt.Errorf("statement: %w", ErrEmptyInput)
	}

	cols := statement.locate(rows[0])
	txns := make([]categorize.Transaction, 0, len(rows)-1)

	for _, row := range rows[1:] {
		if blank(row) {
			continue
		}

		txn := categorize.Transaction{
			Date:           cell(row, cols.date),
			Description:    cell(row, cols.desc),
			SubDescription: cell(row, cols.subDesc),
			Type:           cell(row, cols.typ),
			Amount:         money.ParseOrZero(cell(row, cols.amount)),
		}

		if raw := cell(row, cols.balance); raw != "" {
			b := money.ParseOrZero(raw)
			txn.Balance = &b
		}

		txns = append(txns, txn)
	}

	if len(txns) == 0 {
		return nil, fmt.Errorf("statement: %w", ErrEmptyInput)
	}

	return txns, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}

	return true
}
