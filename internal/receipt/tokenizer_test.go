package receipt_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tally/internal/receipt"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertPrice(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, got.Equal(dec(want)), "price: want %s, got %s", want, got)
}

func TestTokenize_DiscountFolding(t *testing.T) {
	type testCase struct {
		name      string
		lines     []string
		wantPrice string
		wantNote  string
	}

	tests := []testCase{
		{
			name:      "negative rabais",
			lines:     []string{"BAG.PAIN GRIL.AI 2.99", "RABAIS -0.80"},
			wantPrice: "2.19",
			wantNote:  " (Discount: $0.8)",
		},
		{
			name:      "positive rabais subtracts",
			lines:     []string{"BAG.PAIN GRIL.AI 2.99", "RABAIS 0.80"},
			wantPrice: "2.19",
			wantNote:  " (Discount: $0.8)",
		},
		{
			name:      "negative line without keyword",
			lines:     []string{"FROMAGE CHEDDAR 7.49", "COUPON MAGASIN -1.50"},
			wantPrice: "5.99",
			wantNote:  " (Discount: $1.5)",
		},
		{
			name:      "discount keyword any case",
			lines:     []string{"LAIT 2% 5.49", "Member discount 0.50"},
			wantPrice: "4.99",
			wantNote:  " (Discount: $0.5)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := receipt.Tokenize(tt.lines)
			require.Len(t, got, 1)

			assertPrice(t, tt.wantPrice, got[0].Price)
			assert.Equal(t, []string{tt.wantNote}, got[0].Notes)
			assert.Equal(t, tt.lines[0], got[0].OriginalText)
			assert.Equal(t, tt.lines[1], got[0].SuffixText)
		})
	}
}

func TestTokenize_DiscountWithoutItem(t *testing.T) {
	got := receipt.Tokenize([]string{"RABAIS -0.80", "LAIT 2% 5.49"})
	require.Len(t, got, 2)

	assert.Equal(t, "RABAIS", got[0].Key)
	assertPrice(t, "-0.80", got[0].Price)
	assert.Equal(t, "LAIT 2%", got[1].Key)
}

func TestTokenize_QuantityPairing(t *testing.T) {
	got := receipt.Tokenize([]string{"POMMES GALA", "3 @ $1.29 3.87"})
	require.Len(t, got, 1)

	assert.Equal(t, "POMMES GALA", got[0].Key)
	assert.Equal(t, "POMMES GALA", got[0].OriginalText)
	assert.Equal(t, "3 @ $1.29 3.87", got[0].SuffixText)
	assert.Equal(t, []string{" (3 @ $1.29)"}, got[0].Notes)
	assertPrice(t, "3.87", got[0].Price)
}

func TestTokenize_WeightedQuantity(t *testing.T) {
	got := receipt.Tokenize([]string{"BANANES", "0.735 kg @ $1.74/kg 1.28"})
	require.Len(t, got, 1)

	assert.Equal(t, []string{" (0.735 @ $1.74)"}, got[0].Notes)
	assertPrice(t, "1.28", got[0].Price)
}

func TestTokenize_TwoLinePrice(t *testing.T) {
	got := receipt.Tokenize([]string{"SELECTION LEG.C", "CODE 0601 2.49", "LAIT 2% 5.49"})
	require.Len(t, got, 2)

	assert.Equal(t, "SELECTION LEG.C", got[0].Key)
	assert.Equal(t, "CODE 0601 2.49", got[0].SuffixText)
	assertPrice(t, "2.49", got[0].Price)
	assert.Empty(t, got[0].Notes)
	assert.Equal(t, "LAIT 2%", got[1].Key)
}

func TestTokenize_StandaloneQuantity(t *testing.T) {
	got := receipt.Tokenize([]string{
		"CAROTTES",
		"SAC 1.99",
		"",
		"2 @ $0.99 1.98",
	})
	require.Len(t, got, 2)

	assert.Equal(t, "CAROTTES", got[0].Key)
	assert.Equal(t, "SAC 1.99", got[0].SuffixText)

	assert.Equal(t, "CAROTTES", got[1].Key)
	assert.Equal(t, "CAROTTES 2 @ $0.99 1.98", got[1].OriginalText)
	assert.Equal(t, []string{" (2 @ $0.99)"}, got[1].Notes)
	assertPrice(t, "1.98", got[1].Price)
}

func TestTokenize_StandaloneQuantityWithoutName(t *testing.T) {
	got := receipt.Tokenize([]string{"LAIT 2% 5.49", "2 @ $0.99 1.98"})
	require.Len(t, got, 1)
	assert.Equal(t, "LAIT 2%", got[0].Key)
}

func TestTokenize_SkipsNoise(t *testing.T) {
	got := receipt.Tokenize([]string{
		"",
		"   ",
		"PAIN BLANC 3.29",
		"SOUS-TOTAL",
		"",
		"MERCI DE VOTRE VISITE",
		"TPS 5%",
		"FIN",
	})
	require.Len(t, got, 1)
	assert.Equal(t, "PAIN BLANC", got[0].Key)
}

func TestTokenize_TrimsLines(t *testing.T) {
	got := receipt.Tokenize([]string{"  BANANES 1.45  "})
	require.Len(t, got, 1)
	assert.Equal(t, "BANANES 1.45", got[0].OriginalText)
}

func TestTokenize_Deterministic(t *testing.T) {
	lines := []string{"BAG.PAIN GRIL.AI 2.99", "RABAIS -0.80", "POMMES GALA", "3 @ $1.29 3.87"}

	assert.Equal(t, receipt.Tokenize(lines), receipt.Tokenize(lines))
}
