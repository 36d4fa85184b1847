// Package categorize files bank transactions under the first taxonomy
// sub-category whose keyword appears in the transaction text, and pivots the
// result into a report.
package categorize

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/report"
	"github.com/MrJamesThe3rd/tally/internal/taxonomy"
)

// Transaction is one parsed bank statement line.
type Transaction struct {
	Date           string           `json:"date"`
	Description    string           `json:"description"`
	SubDescription string           `json:"subDescription"`
	Type           string           `json:"type"`
	Amount         decimal.Decimal  `json:"amount"`
	Balance        *decimal.Decimal `json:"balance,omitempty"`
}

// Buckets used outside of keyword matching.
var (
	MiscPath     = taxonomy.Path{Main: "Expenses", Sub: "Misc Spending"}
	InternetPath = taxonomy.Path{Main: "Expenses", Sub: "Living Expenses"}
	PhonePath    = taxonomy.Path{Main: "Expenses", Sub: "Phone Bill"}
)

const dropMarker = "date="

var (
	nonWord    = regexp.MustCompile(`[^\w\s\p{Z}\x{FEFF}]`)
	whitespace = regexp.MustCompile(`[\s\p{Z}\x{FEFF}]+`)
)

// Normalize lowercases s, removes everything that is neither a word
// character nor whitespace, and collapses whitespace runs into one space.
// Unicode separators such as NBSP count as whitespace.
func Normalize(s string) string {
	s = strings.ToLower(s)
	s = nonWord.ReplaceAllString(s, "")
	s = whitespace.ReplaceAllString(s, " ")

	return strings.TrimSpace(s)
}

// Outcome says what happened to a single transaction.
type Outcome int

const (
	Matched Outcome = iota
	Misc
	Dropped
	Skipped
	Special
)

// Stats counts outcomes over one call.
type Stats struct {
	Matched int
	Misc    int
	Dropped int
	Skipped int
	Special int
}

func (s *Stats) add(o Outcome) {
	switch o {
	case Matched:
		s.Matched++
	case Misc:
		s.Misc++
	case Dropped:
		s.Dropped++
	case Skipped:
		s.Skipped++
	case Special:
		s.Special++
	}
}

// Result is a categorized report plus the outcome counts that produced it.
type Result struct {
	Report report.Report
	Stats  Stats
}

// Categorize builds the report for txns against tax. Unmatched transactions
// land in the "Misc Spending" bucket when autoAssignUnknown is set.
func Categorize(txns []Transaction, tax taxonomy.Taxonomy, autoAssignUnknown bool) report.Report {
	return Analyze(txns, tax, autoAssignUnknown).Report
}

// Analyze is Categorize with outcome counts.
func Analyze(txns []Transaction, tax taxonomy.Taxonomy, autoAssignUnknown bool) Result {
	m := newMatcher(tax)
	g := newGrouping(tax)

	var stats Stats

	for _, txn := range txns {
		stats.add(categorizeOne(txn, m, g, autoAssignUnknown))
	}

	return Result{Report: report.Build(g.columns()), Stats: stats}
}

func categorizeOne(txn Transaction, m *matcher, g *grouping, autoAssignUnknown bool) Outcome {
	if entries, ok := splitVirginPlus(txn); ok {
		for _, e := range entries {
			g.add(e.path, e.entry)
		}

		return Special
	}

	entry := report.Entry{
		Description: txn.Description + " " + txn.SubDescription,
		Amount:      txn.Amount,
	}

	if p, ok := m.match(txn.SubDescription + " " + txn.Description); ok {
		g.add(p, entry)
		return Matched
	}

	if strings.Contains(txn.Description, dropMarker) {
		return Dropped
	}

	if !autoAssignUnknown {
		return Skipped
	}

	g.add(MiscPath, entry)

	return Misc
}
