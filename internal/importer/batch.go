package importer

import (
	"fmt"
	"io"

	"github.com/MrJamesThe3rd/tally/internal/categorize"
	"github.com/MrJamesThe3rd/tally/internal/reconcile"
)

// Batch is a statement plus an optional shared-expense sheet.
type Batch struct {
	Transactions []categorize.Transaction      `json:"transactions"`
	Shared       []reconcile.SharedTransaction `json:"sharedTransactions"`
}

// ParseBatch parses a statement and, when shared is non-nil, the shared sheet.
func ParseBatch(statement, shared io.Reader) (Batch, error) {
	txns, err := ParseStatement(statement)
	if err != nil {
		return Batch{}, err
	}

	b := Batch{Transactions: txns, Shared: []reconcile.SharedTransaction{}}

	if shared == nil {
		return b, nil
	}

	s, err := ParseShared(shared)
	if err != nil {
		return Batch{}, fmt.Errorf("shared: %w", err)
	}

	if s != nil {
		b.Shared = s
	}

	return b, nil
}
