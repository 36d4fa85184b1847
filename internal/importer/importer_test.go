package importer_test

import (
	"bytes"
	"regexp"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/MrJamesThe3rd/tally/internal/categorize"
	"github.com/MrJamesThe3rd/tally/internal/importer"
	"github.com/MrJamesThe3rd/tally/internal/reconcile"
	"github.com/MrJamesThe3rd/tally/internal/report"
	"github.com/MrJamesThe3rd/tally/internal/taxonomy"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestParseStatement(t *testing.T) {
	csv := `Date,Description,Sub-description,Type of Transaction,Amount,Balance
2025-03-01,"Point of Sale - Interac","IGA #8123",Debit,-45.12,1200.00
2025-03-02,Deposit,"PAYROLL, ACME",Credit,2000,
2025-03-03,Fee,Service charge,Debit,n/a,abc
`

	txns, err := importer.ParseStatement(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, txns, 3)

	assert.Equal(t, "2025-03-01", txns[0].Date)
	assert.Equal(t, "Point of Sale - Interac", txns[0].Description)
	assert.Equal(t, "IGA #8123", txns[0].SubDescription)
	assert.Equal(t, "Debit", txns[0].Type)
	assert.True(t, txns[0].Amount.Equal(dec("-45.12")))
	require.NotNil(t, txns[0].Balance)
	assert.True(t, txns[0].Balance.Equal(dec("1200")))

	assert.Equal(t, "PAYROLL, ACME", txns[1].SubDescription)
	assert.Nil(t, txns[1].Balance)

	assert.True(t, txns[2].Amount.IsZero())
	require.NotNil(t, txns[2].Balance)
	assert.True(t, txns[2].Balance.IsZero())
}

func TestParseStatement_ColumnOrderAndCase(t *testing.T) {
	csv := "AMOUNT,description,DATE\n-3.50,Coffee,2025-01-01\n"

	txns, err := importer.ParseStatement(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, txns, 1)

	assert.Equal(t, "2025-01-01", txns[0].Date)
	assert.Equal(t, "Coffee", txns[0].Description)
	assert.Empty(t, txns[0].SubDescription)
	assert.True(t, txns[0].Amount.Equal(dec("-3.5")))
	assert.Nil(t, txns[0].Balance)
}

func TestParseStatement_Empty(t *testing.T) {
	type testCase struct {
		name string
		csv  string
	}

	tests := []testCase{
		{name: "no bytes", csv: ""},
		{name: "header only", csv: "date,description,sub-description,type of transaction,amount,balance\n"},
		{name: "header and blank rows", csv: "date,amount\n\n,\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := importer.ParseStatement(strings.NewReader(tt.csv))
			require.ErrorIs(t, err, importer.ErrEmptyInput)
		})
	}
}

func TestParseStatement_Latin1(t *testing.T) {
	raw := "date,description,amount\n2025-01-02,Dépôt paie,100.00\n"

	latin, err := charmap.Windows1252.NewEncoder().Bytes([]byte(raw))
	require.NoError(t, err)

	txns, err := importer.ParseStatement(bytes.NewReader(latin))
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, "Dépôt paie", txns[0].Description)
}

func TestParseShared(t *testing.T) {
	csv := `Date,Expense,Description,Total,Brandon
2025-03-04,Groceries,Costco run,120.00,60.00
2025-03-05,DATES,Cinema,45,bad
`

	got, err := importer.ParseShared(strings.NewReader(csv))
	require.NoError(t, err)

	want := []reconcile.SharedTransaction{
		{Description: "Costco run", Total: dec("120.00"), CounterpartyAmount: dec("60.00"), Expense: "groceries"},
		{Description: "Cinema", Total: dec("45"), CounterpartyAmount: decimal.Zero, Expense: "dates"},
	}

	require.Len(t, got, 2)

	for i := range want {
		assert.Equal(t, want[i].Description, got[i].Description)
		assert.Equal(t, want[i].Expense, got[i].Expense)
		assert.True(t, want[i].Total.Equal(got[i].Total))
		assert.True(t, want[i].CounterpartyAmount.Equal(got[i].CounterpartyAmount))
	}
}

func TestParseShared_HeaderOnly(t *testing.T) {
	got, err := importer.ParseShared(strings.NewReader("date,expense,description,total,brandon\n"))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestParseReceipt(t *testing.T) {
	csv := `DATE,EPICERIE,AUTRE
2025-03-01,BAG.PAIN GRIL.AI 2.99,x
2025-03-01,RABAIS -0.80,
2025-03-01
,POMMES GALA,
,3 @ $1.29 3.87,
`

	lines, err := importer.ParseReceipt(strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"BAG.PAIN GRIL.AI 2.99",
		"RABAIS -0.80",
		"",
		"POMMES GALA",
		"3 @ $1.29 3.87",
	}, lines)
}

func TestParseReceipt_MissingColumn(t *testing.T) {
	_, err := importer.ParseReceipt(strings.NewReader("DATE,GROCERY\n2025-01-01,LAIT 5.49\n"))
	require.ErrorIs(t, err, importer.ErrColumnNotFound)
	assert.Contains(t, err.Error(), "required column not found")
}

func TestParseBatch(t *testing.T) {
	statement := "date,description,amount\n2025-01-01,IGA,-10\n"
	shared := "date,expense,description,total,brandon\n2025-01-01,groceries,IGA,10,5\n"

	b, err := importer.ParseBatch(strings.NewReader(statement), strings.NewReader(shared))
	require.NoError(t, err)
	assert.Len(t, b.Transactions, 1)
	assert.Len(t, b.Shared, 1)

	b, err = importer.ParseBatch(strings.NewReader(statement), nil)
	require.NoError(t, err)
	assert.NotNil(t, b.Shared)
	assert.Empty(t, b.Shared)
}

func TestStatement_CategorizedCSVRoundTrip(t *testing.T) {
	statement := `Date,Description,Sub-description,Type of Transaction,Amount,Balance
2025-03-01,Point of Sale,IGA #8123,Debit,-45.1,1200.00
2025-03-02,Online Transfer,Unknown Vendor,Debit,-10,1190.00
2025-03-03,Point of Sale,"IGA, DÉPANNEUR",Debit,-3.456,1186.54
2025-03-04,Fee,"Service charge, monthly",Debit,-0.005,1186.54
`

	txns, err := importer.ParseStatement(strings.NewReader(statement))
	require.NoError(t, err)

	tax := taxonomy.MustNew(taxonomy.NewMain("Expenses", taxonomy.NewSub("Groceries", "iga")))
	rep := categorize.Categorize(txns, tax, true)

	out, err := rep.CSV()
	require.NoError(t, err)

	back, err := report.ReadCSV(strings.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, rep, back)

	assert.Equal(t, []report.Row{
		{"", "Point of Sale IGA #8123", "$ -45.10", "Online Transfer Unknown Vendor", "$ -10.00"},
		{"", "Point of Sale IGA, DÉPANNEUR", "$ -3.46", "Fee Service charge, monthly", "$ -0.01"},
	}, back.Body())
	assert.Equal(t, report.Row{"Total", "", "$ -48.56", "", "$ -10.01"}, back.Totals())

	cents := regexp.MustCompile(`^\$ (-?\d+\.\d{2}|-)$`)

	for _, row := range back[2:] {
		for i := report.FirstCategoryColumn + 1; i < len(row); i += 2 {
			if row[i] == "" {
				continue
			}

			assert.Regexp(t, cents, row[i])
		}
	}
}
