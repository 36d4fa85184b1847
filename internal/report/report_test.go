package report_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/MrJamesThe3rd/tally/internal/report"
)

func columns() []report.Column {
	return []report.Column{
		{
			Label: "Expenses → Groceries",
			Entries: []report.Entry{
				{Description: "IGA #123 Purchase", Amount: decimal.RequireFromString("-45")},
				{Description: "COSTCO, KANATA", Amount: decimal.RequireFromString("-120.5")},
			},
		},
		{
			Label: "Expenses → Pets",
		},
		{
			Label: "Expenses → Loans",
			Entries: []report.Entry{
				{Description: "NSLSC", Amount: decimal.RequireFromString("-200")},
			},
		},
	}
}

func TestBuild(t *testing.T) {
	got := report.Build(columns())

	want := report.Report{
		{"Category", "Expenses → Groceries", "", "Expenses → Pets", "", "Expenses → Loans", ""},
		{"", "Description", "Amount", "Description", "Amount", "Description", "Amount"},
		{"", "IGA #123 Purchase", "$ -45.00", "", "", "NSLSC", "$ -200.00"},
		{"", "COSTCO, KANATA", "$ -120.50", "", "", "", ""},
		{"Total", "", "$ -165.50", "", "$ -", "", "$ -200.00"},
	}

	assert.Equal(t, want, got)
	assert.Len(t, got.Body(), 2)
	assert.Equal(t, "Total", got.Totals()[0])
	assert.Equal(t, []string{"Expenses → Groceries", "Expenses → Pets", "Expenses → Loans"}, got.Labels())
}

func TestBuild_NoColumns(t *testing.T) {
	got := report.Build(nil)

	assert.Equal(t, report.Report{{"Category"}, {""}, {"Total"}}, got)
	assert.Empty(t, got.Body())
}

func TestInsertBeforeTotals(t *testing.T) {
	r := report.Build(columns())
	r = r.InsertBeforeTotals(report.Row{"", "Shared", "$ 10.00", "", "", "", ""})

	require.Len(t, r, 6)
	assert.Equal(t, "Shared", r[4][1])
	assert.Equal(t, "Total", r[5][0])
}

func TestCSV_QuotesCommas(t *testing.T) {
	r := report.Build(columns())

	out, err := r.CSV()
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, `,"COSTCO, KANATA",$ -120.50,,,,`, lines[3])
	assert.Equal(t, "Total,,$ -165.50,,$ -,,$ -200.00", lines[4])

	back, err := report.ReadCSV(strings.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, r, back)
}

func TestCSV_QuotingRules(t *testing.T) {
	r := report.Report{
		{"", "Expenses → Groceries", ""},
		{"", "", ""},
		{"", " IGA", "$ -4.00"},
		{"", `12" SUB`, "$ -9.99"},
		{"Total", "", "$ -13.99"},
	}

	out, err := r.CSV()
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, `," IGA",$ -4.00`, lines[2])
	assert.Equal(t, `,"12"" SUB",$ -9.99`, lines[3])

	back, err := report.ReadCSV(strings.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, r, back)
}

func TestWriteXLSX(t *testing.T) {
	r := report.Build(columns())

	var buf bytes.Buffer
	require.NoError(t, r.WriteXLSX(&buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)

	defer f.Close()

	rows, err := f.GetRows("Categorized")
	require.NoError(t, err)
	require.Len(t, rows, 5)

	assert.Equal(t, "Expenses → Groceries", rows[0][1])
	assert.Equal(t, "COSTCO, KANATA", rows[3][1])

	v, err := f.GetCellValue("Categorized", "C3", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "-45", v)

	v, err = f.GetCellValue("Categorized", "E5")
	require.NoError(t, err)
	assert.Equal(t, "$ -", v)
}
