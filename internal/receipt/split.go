package receipt

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/money"
)

var (
	ErrSplitMismatch = errors.New("split amounts do not match item price")
	ErrNoUsers       = errors.New("split needs at least one user")
	ErrItemIndex     = errors.New("item index out of range")
)

// SplitError reports a custom split whose amounts do not add up to the price.
type SplitError struct {
	Index int
	Price decimal.Decimal
	Sum   decimal.Decimal
}

func (e *SplitError) Error() string {
	return fmt.Sprintf("item %d: split total %s does not match price %s",
		e.Index, e.Sum.StringFixed(2), e.Price.StringFixed(2))
}

func (e *SplitError) Unwrap() error {
	return ErrSplitMismatch
}

var hundred = decimal.NewFromInt(100)

// SplitEvenly divides the item price between users in cents. Leftover cents
// go to the first users so the shares add up to the price exactly.
func SplitEvenly(it *Item, users []uuid.UUID) error {
	if len(users) == 0 {
		return ErrNoUsers
	}

	n := int64(len(users))
	cents := it.Price.Shift(2).Round(0).IntPart()
	base, rest := cents/n, cents%n
	pct := hundred.Div(decimal.NewFromInt(n)).Round(2)

	splits := make([]UserSplit, len(users))

	for i, u := range users {
		share := base
		if int64(i) < abs(rest) {
			share += sign(rest)
		}

		p := pct
		splits[i] = UserSplit{UserID: u, Amount: decimal.New(share, -2), Percentage: &p}
	}

	it.UserSplits = splits
	it.IsSplit = true

	return nil
}

// SplitCustom assigns explicit shares. The shares must add up to the price
// within a cent; percentages are filled in when missing.
func SplitCustom(it *Item, index int, splits []UserSplit) error {
	if len(splits) == 0 {
		return ErrNoUsers
	}

	sum := decimal.Zero
	for _, s := range splits {
		sum = sum.Add(s.Amount)
	}

	if !money.Within(sum, it.Price) {
		return &SplitError{Index: index, Price: it.Price, Sum: sum}
	}

	out := make([]UserSplit, len(splits))

	for i, s := range splits {
		if s.Percentage == nil && !it.Price.IsZero() {
			p := s.Amount.Div(it.Price).Mul(hundred).Round(2)
			s.Percentage = &p
		}

		out[i] = s
	}

	it.UserSplits = out
	it.IsSplit = true

	return nil
}

// SplitRequest targets one item. Either UserIDs (even split) or Splits
// (custom amounts) is set.
type SplitRequest struct {
	ItemIndex int         `json:"itemIndex"`
	UserIDs   []uuid.UUID `json:"userIds,omitempty"`
	Splits    []UserSplit `json:"splits,omitempty"`
}

// ApplySplits returns a copy of items with the requests applied. The first
// invalid request aborts the whole call.
func ApplySplits(items []Item, reqs []SplitRequest) ([]Item, error) {
	out := make([]Item, len(items))
	copy(out, items)

	for _, req := range reqs {
		if req.ItemIndex < 0 || req.ItemIndex >= len(out) {
			return nil, fmt.Errorf("%w: %d", ErrItemIndex, req.ItemIndex)
		}

		it := &out[req.ItemIndex]

		var err error
		if len(req.Splits) > 0 {
			err = SplitCustom(it, req.ItemIndex, req.Splits)
		} else {
			err = SplitEvenly(it, req.UserIDs)
		}

		if err != nil {
			return nil, err
		}
	}

	return out, nil
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}

	return n
}

func sign(n int64) int64 {
	if n < 0 {
		return -1
	}

	return 1
}
