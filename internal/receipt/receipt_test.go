package receipt_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tally/internal/receipt"
)

func TestReceipt_Totals(t *testing.T) {
	owner := uuid.New()
	friend := uuid.New()

	r := &receipt.Receipt{
		UserID: &owner,
		Items: []receipt.Item{
			{ReadableDescription: "Milk", Price: dec("5.49")},
			{
				ReadableDescription: "Cheese",
				Price:               dec("8.00"),
				IsSplit:             true,
				UserSplits: []receipt.UserSplit{
					{UserID: owner, Amount: dec("3.00")},
					{UserID: friend, Amount: dec("5.00")},
				},
			},
		},
	}

	assertPrice(t, "13.49", r.CalculateTotal())
	assertPrice(t, "13.49", r.Total)
	assertPrice(t, "8.49", r.UserTotal(owner))
	assertPrice(t, "5.00", r.UserTotal(friend))
	assertPrice(t, "0", r.UserTotal(uuid.New()))

	summary := r.UserSummary()
	require.Len(t, summary, 2)
	assertPrice(t, "8.49", summary[owner])
	assertPrice(t, "5.00", summary[friend])

	r.RefreshUserIDs()
	assert.Equal(t, []uuid.UUID{owner, friend}, r.UserIDs)
}

func TestReceipt_NoOwner(t *testing.T) {
	u := uuid.New()

	r := &receipt.Receipt{
		Items: []receipt.Item{
			{Price: dec("2.00")},
			{Price: dec("4.00"), IsSplit: true, UserSplits: []receipt.UserSplit{{UserID: u, Amount: dec("4.00")}}},
		},
	}

	summary := r.UserSummary()
	assert.Len(t, summary, 1)
	assertPrice(t, "4.00", summary[u])

	r.RefreshUserIDs()
	assert.Equal(t, []uuid.UUID{u}, r.UserIDs)
}

func TestReceipt_SplitFlagWithoutSplits(t *testing.T) {
	owner := uuid.New()
	r := &receipt.Receipt{UserID: &owner, Items: []receipt.Item{{Price: dec("1.50"), IsSplit: true}}}

	assertPrice(t, "1.50", r.UserTotal(owner))
}
