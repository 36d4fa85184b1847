// Package money holds the fixed-point helpers shared by the importers, the
// categorizer and the reconciler. All amounts are shopspring decimals rounded
// to cents at the edges.
package money

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Tolerance is the absolute difference under which two amounts are treated as equal.
var Tolerance = decimal.RequireFromString("0.01")

// ZeroSentinel is what a report renders for a total that is exactly zero.
const ZeroSentinel = "$ -"

var nonNumeric = regexp.MustCompile(`[^\d.\-]+`)

// Parse reads a plain decimal string ("-12.5", "3.87"). Blank or malformed
// input yields zero and false; callers that must default silently ignore the flag.
func Parse(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}

	return d, true
}

// ParseOrZero is Parse without the flag. Non-numeric amounts become zero.
func ParseOrZero(s string) decimal.Decimal {
	d, _ := Parse(s)
	return d
}

// ParseCell strips every character that is not a digit, a dot or a minus sign
// and parses what is left. "$ 45.00" -> 45, "$ -" -> not ok.
func ParseCell(cell string) (decimal.Decimal, bool) {
	return Parse(nonNumeric.ReplaceAllString(cell, ""))
}

// Format renders an amount as a report cell: "$ 12.34", "$ -5.00".
func Format(d decimal.Decimal) string {
	return "$ " + d.StringFixed(2)
}

// FormatTotal renders a column total. Exact zero becomes the "$ -" sentinel.
func FormatTotal(d decimal.Decimal) string {
	if d.IsZero() {
		return ZeroSentinel
	}

	return Format(d)
}

// Near reports whether a and b differ by strictly less than Tolerance.
func Near(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThan(Tolerance)
}

// Within reports whether a and b differ by at most Tolerance.
func Within(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(Tolerance)
}
