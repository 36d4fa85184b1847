package categorize

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/report"
	"github.com/MrJamesThe3rd/tally/internal/taxonomy"
)

// The Virgin Plus bundle is billed as one charge and split into its internet
// and phone parts.
var (
	virginPlusTotal    = decimal.RequireFromString("-153.34")
	virginPlusInternet = decimal.RequireFromString("-60.16")
)

const virginPlus = "virgin plus"

type placedEntry struct {
	path  taxonomy.Path
	entry report.Entry
}

func splitVirginPlus(txn Transaction) ([]placedEntry, bool) {
	if !strings.Contains(strings.ToLower(txn.SubDescription), virginPlus) {
		return nil, false
	}

	if !txn.Amount.Equal(virginPlusTotal) {
		return nil, false
	}

	return []placedEntry{
		{
			path:  InternetPath,
			entry: report.Entry{Description: "Internet + TV", Amount: virginPlusInternet},
		},
		{
			path:  PhonePath,
			entry: report.Entry{Description: "Phone Bill", Amount: txn.Amount.Sub(virginPlusInternet)},
		},
	}, true
}
