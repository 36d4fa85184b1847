package taxonomy_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/MrJamesThe3rd/tally/internal/taxonomy"
)

func TestNew_Validation(t *testing.T) {
	type testCase struct {
		name    string
		mains   []taxonomy.Main
		wantErr bool
	}

	tests := []testCase{
		{
			name: "Valid",
			mains: []taxonomy.Main{
				taxonomy.NewMain("Expenses", taxonomy.NewSub("Groceries", "iga")),
			},
		},
		{
			name:    "EmptyMainName",
			mains:   []taxonomy.Main{taxonomy.NewMain(" ")},
			wantErr: true,
		},
		{
			name: "DuplicateMain",
			mains: []taxonomy.Main{
				taxonomy.NewMain("Expenses"),
				taxonomy.NewMain("Expenses"),
			},
			wantErr: true,
		},
		{
			name: "DuplicateSub",
			mains: []taxonomy.Main{
				taxonomy.NewMain("Expenses", taxonomy.NewSub("Pets"), taxonomy.NewSub("Pets")),
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := taxonomy.New(tt.mains...)
			if tt.wantErr {
				assert.ErrorIs(t, err, taxonomy.ErrInvalid)
				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestNew_CopiesInput(t *testing.T) {
	keywords := []string{"iga"}
	tax := taxonomy.MustNew(taxonomy.NewMain("Expenses", taxonomy.NewSub("Groceries", keywords...)))

	keywords[0] = "changed"

	got, ok := tax.Keywords(taxonomy.Path{Main: "Expenses", Sub: "Groceries"})
	require.True(t, ok)
	assert.Equal(t, []string{"iga"}, got)
}

func TestPaths_InsertionOrder(t *testing.T) {
	tax := taxonomy.MustNew(
		taxonomy.NewMain("Zeta", taxonomy.NewSub("B"), taxonomy.NewSub("A")),
		taxonomy.NewMain("Alpha", taxonomy.NewSub("C")),
	)

	assert.Equal(t, []taxonomy.Path{
		{Main: "Zeta", Sub: "B"},
		{Main: "Zeta", Sub: "A"},
		{Main: "Alpha", Sub: "C"},
	}, tax.Paths())
}

func TestJSON_PreservesOrder(t *testing.T) {
	input := `{"Expenses":{"Trips":["airbnb"],"Groceries":["iga","costco"],"Gifts":[]},"Income":{"Other":["deposit"]}}`

	var tax taxonomy.Taxonomy
	require.NoError(t, json.Unmarshal([]byte(input), &tax))

	assert.Equal(t, []taxonomy.Path{
		{Main: "Expenses", Sub: "Trips"},
		{Main: "Expenses", Sub: "Groceries"},
		{Main: "Expenses", Sub: "Gifts"},
		{Main: "Income", Sub: "Other"},
	}, tax.Paths())

	out, err := json.Marshal(tax)
	require.NoError(t, err)
	assert.JSONEq(t, input, string(out))
	assert.Equal(t, input, string(out))
}

func TestJSON_RejectsBadShape(t *testing.T) {
	inputs := []string{
		`[]`,
		`{"Expenses":["iga"]}`,
		`{"Expenses":{"Groceries":[1,2]}}`,
		`{"Expenses":{"Groceries":"iga"}}`,
	}

	for _, in := range inputs {
		var tax taxonomy.Taxonomy
		err := json.Unmarshal([]byte(in), &tax)
		assert.ErrorIs(t, err, taxonomy.ErrInvalid, in)
	}
}

func TestJSON_NullField(t *testing.T) {
	var req struct {
		Categories taxonomy.Taxonomy `json:"categories"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"categories":null}`), &req))
	assert.True(t, req.Categories.IsEmpty())
}

func TestYAML_RoundTrip(t *testing.T) {
	input := `
Expenses:
  Trips: [airbnb, hotel]
  Groceries: [iga]
Income:
  Other: [deposit]
`

	var tax taxonomy.Taxonomy
	require.NoError(t, yaml.Unmarshal([]byte(input), &tax))

	assert.Equal(t, []taxonomy.Path{
		{Main: "Expenses", Sub: "Trips"},
		{Main: "Expenses", Sub: "Groceries"},
		{Main: "Income", Sub: "Other"},
	}, tax.Paths())

	out, err := yaml.Marshal(tax)
	require.NoError(t, err)

	var again taxonomy.Taxonomy
	require.NoError(t, yaml.Unmarshal(out, &again))
	assert.Equal(t, tax.Mains(), again.Mains())
}

func TestDefault(t *testing.T) {
	tax := taxonomy.Default()

	assert.True(t, tax.Has(taxonomy.Path{Main: "Expenses", Sub: "Misc Spending"}))
	assert.True(t, tax.Has(taxonomy.Path{Main: "Expenses", Sub: "Phone Bill"}))
	assert.True(t, tax.Has(taxonomy.Path{Main: "Expenses", Sub: "Living Expenses"}))

	gifts, ok := tax.Keywords(taxonomy.Path{Main: "Expenses", Sub: "Gifts"})
	require.True(t, ok)
	assert.Empty(t, gifts)
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "Expenses → Groceries", taxonomy.Path{Main: "Expenses", Sub: "Groceries"}.Label())
}
