// Package receipt turns grocery receipt lines into priced items, translates
// their store shorthand, and tracks how each receipt is shared between users.
package receipt

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UserSplit is one user's share of an item.
type UserSplit struct {
	UserID     uuid.UUID        `json:"userId"`
	Amount     decimal.Decimal  `json:"amount"`
	Percentage *decimal.Decimal `json:"percentage,omitempty"`
}

type Item struct {
	OriginalText        string          `json:"originalText"`
	SuffixText          string          `json:"suffixText,omitempty"`
	ReadableDescription string          `json:"readableDescription"`
	Price               decimal.Decimal `json:"price"`
	Category            string          `json:"category,omitempty"`
	IsSplit             bool            `json:"isSplit"`
	UserSplits          []UserSplit     `json:"userSplits,omitempty"`
}

func (it Item) split() bool {
	return it.IsSplit && len(it.UserSplits) > 0
}

type Receipt struct {
	ID        uuid.UUID       `json:"id"`
	UserID    *uuid.UUID      `json:"userId,omitempty"`
	UserIDs   []uuid.UUID     `json:"userIds"`
	Items     []Item          `json:"items"`
	Total     decimal.Decimal `json:"total"`
	Store     string          `json:"store,omitempty"`
	Date      time.Time       `json:"date"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// CalculateTotal sums item prices into Total and returns it.
func (r *Receipt) CalculateTotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range r.Items {
		total = total.Add(it.Price)
	}

	r.Total = total

	return total
}

// UserTotal is what userID owes: their split amounts, plus every unsplit
// item when they own the receipt.
func (r *Receipt) UserTotal(userID uuid.UUID) decimal.Decimal {
	total := decimal.Zero

	for _, it := range r.Items {
		if !it.split() {
			if r.UserID != nil && *r.UserID == userID {
				total = total.Add(it.Price)
			}

			continue
		}

		for _, s := range it.UserSplits {
			if s.UserID == userID {
				total = total.Add(s.Amount)
				break
			}
		}
	}

	return total
}

// UserSummary maps every involved user to their total. Unsplit items go to
// the owner; without an owner they are not attributed.
func (r *Receipt) UserSummary() map[uuid.UUID]decimal.Decimal {
	summary := make(map[uuid.UUID]decimal.Decimal)

	for _, it := range r.Items {
		if !it.split() {
			if r.UserID != nil {
				summary[*r.UserID] = summary[*r.UserID].Add(it.Price)
			}

			continue
		}

		for _, s := range it.UserSplits {
			summary[s.UserID] = summary[s.UserID].Add(s.Amount)
		}
	}

	return summary
}

// RefreshUserIDs recomputes UserIDs from the owner and every split, owner
// first, then in order of appearance.
func (r *Receipt) RefreshUserIDs() {
	seen := make(map[uuid.UUID]bool)
	ids := make([]uuid.UUID, 0)

	add := func(id uuid.UUID) {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	if r.UserID != nil {
		add(*r.UserID)
	}

	for _, it := range r.Items {
		for _, s := range it.UserSplits {
			add(s.UserID)
		}
	}

	r.UserIDs = ids
}
