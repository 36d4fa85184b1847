package receipt

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// "<desc> <price>", price signed with exactly two decimals.
	pricedLine = regexp.MustCompile(`^(.+?)\s+(-?\d+\.\d{2})$`)
	// "<qty> [unit] @ $<unit price>[/unit] <total>", e.g. "3 @ $1.29 3.87"
	// or "0.735 kg @ $4.39/kg 3.23".
	quantityLine = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*(?:[a-zA-Z]+\s*)?@\s*\$(\d+(?:\.\d+)?)(?:/[a-zA-Z]+)?\s+(-?\d+\.\d{2})$`)
)

var discountWords = []string{"RABAIS", "DISCOUNT"}

// Token is a receipt item before translation. Key is the text handed to the
// translator; Notes are appended to its translation in order.
type Token struct {
	Key          string
	OriginalText string
	SuffixText   string
	Price        decimal.Decimal
	Notes        []string
}

// Item builds the receipt item for t with label as its translated key.
func (t Token) Item(label string) Item {
	return Item{
		OriginalText:        t.OriginalText,
		SuffixText:          t.SuffixText,
		ReadableDescription: label + strings.Join(t.Notes, ""),
		Price:               t.Price,
	}
}

type quantity struct {
	qty, unitPrice string
	total          decimal.Decimal
}

func (q quantity) note() string {
	return " (" + q.qty + " @ $" + q.unitPrice + ")"
}

func parseQuantity(line string) (quantity, bool) {
	m := quantityLine.FindStringSubmatch(line)
	if m == nil {
		return quantity{}, false
	}

	total, err := decimal.NewFromString(m[3])
	if err != nil {
		return quantity{}, false
	}

	return quantity{qty: m[1], unitPrice: m[2], total: total}, true
}

func parsePriced(line string) (string, decimal.Decimal, bool) {
	m := pricedLine.FindStringSubmatch(line)
	if m == nil {
		return "", decimal.Zero, false
	}

	price, err := decimal.NewFromString(m[2])
	if err != nil {
		return "", decimal.Zero, false
	}

	return m[1], price, true
}

func looksPriced(line string) bool {
	return quantityLine.MatchString(line) || pricedLine.MatchString(line)
}

func isDiscount(desc string, price decimal.Decimal) bool {
	if price.IsNegative() {
		return true
	}

	upper := strings.ToUpper(desc)
	for _, w := range discountWords {
		if strings.Contains(upper, w) {
			return true
		}
	}

	return false
}

// foldState tracks whether a discount line has an item to attach to.
type foldState int

const (
	noPendingItem foldState = iota
	havePendingItem
)

type tokenizer struct {
	lines []string
	out   []Token
	state foldState
}

// Tokenize recovers items from raw receipt lines. Lines that fit no pattern
// are skipped. The result depends only on lines.
func Tokenize(lines []string) []Token {
	t := &tokenizer{lines: lines}

	for i := 0; i < len(lines); {
		i += t.step(i)
	}

	return t.out
}

// step consumes the line at i and returns how many lines it used.
func (t *tokenizer) step(i int) int {
	line := strings.TrimSpace(t.lines[i])
	if line == "" {
		return 1
	}

	if q, ok := parseQuantity(line); ok {
		if name, ok := t.nameBefore(i); ok {
			t.emit(Token{
				Key:          name,
				OriginalText: name + " " + line,
				Price:        q.total,
				Notes:        []string{q.note()},
			})
		}

		return 1
	}

	if desc, price, ok := parsePriced(line); ok {
		if isDiscount(desc, price) && t.foldDiscount(line, price) {
			return 1
		}

		t.emit(Token{Key: desc, OriginalText: line, Price: price})

		return 1
	}

	if i+1 >= len(t.lines) {
		return 1
	}

	next := strings.TrimSpace(t.lines[i+1])

	if q, ok := parseQuantity(next); ok {
		t.emit(Token{
			Key:          line,
			OriginalText: line,
			SuffixText:   next,
			Price:        q.total,
			Notes:        []string{q.note()},
		})

		return 2
	}

	if _, price, ok := parsePriced(next); ok {
		t.emit(Token{Key: line, OriginalText: line, SuffixText: next, Price: price})
		return 2
	}

	return 1
}

// nameBefore finds the closest earlier line that is neither blank nor priced.
// It does not consume anything.
func (t *tokenizer) nameBefore(i int) (string, bool) {
	for j := i - 1; j >= 0; j-- {
		prev := strings.TrimSpace(t.lines[j])
		if prev == "" || looksPriced(prev) {
			continue
		}

		return prev, true
	}

	return "", false
}

func (t *tokenizer) emit(tok Token) {
	t.out = append(t.out, tok)
	t.state = havePendingItem
}

// foldDiscount applies a discount line to the most recent item. A negative
// line is added to its price, a positive one subtracted.
func (t *tokenizer) foldDiscount(line string, price decimal.Decimal) bool {
	switch t.state {
	case noPendingItem:
		return false
	case havePendingItem:
		prev := &t.out[len(t.out)-1]

		if price.IsNegative() {
			prev.Price = prev.Price.Add(price)
		} else {
			prev.Price = prev.Price.Sub(price)
		}

		prev.Notes = append(prev.Notes, " (Discount: $"+price.Abs().String()+")")
		prev.SuffixText = line

		return true
	}

	return false
}
