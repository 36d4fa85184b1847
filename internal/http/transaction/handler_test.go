package transaction_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/tally/internal/categorylist"
	"github.com/MrJamesThe3rd/tally/internal/http/transaction"
	"github.com/MrJamesThe3rd/tally/internal/report"
	"github.com/MrJamesThe3rd/tally/internal/taxonomy"
)

const statementCSV = `Date,Description,Sub-description,Type of Transaction,Amount,Balance
2025-03-01,Point of Sale,IGA #8123,Debit,-45.12,1200.00
`

const sharedCSV = `Date,Expense,Description,Total,Counterparty
2025-03-04,Groceries,Costco run,99.00,-49.50
`

const groceriesJSON = `{"Expenses":{"Groceries":["iga"]}}`

func newRouter(t *testing.T, setup func(m *categorylist.MockRepository)) http.Handler {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := categorylist.NewMockRepository(ctrl)

	if setup != nil {
		setup(repo)
	}

	r := chi.NewRouter()
	r.Route("/transactions", transaction.NewHandler(categorylist.NewService(repo), 1<<20).Routes)

	return r
}

func decodeReport(t *testing.T, body *bytes.Buffer) report.Report {
	t.Helper()

	var rep report.Report
	require.NoError(t, json.Unmarshal(body.Bytes(), &rep))

	return rep
}

func multipartBody(t *testing.T, files map[string]string, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	for name, content := range files {
		fw, err := mw.CreateFormFile(name, name+".csv")
		require.NoError(t, err)

		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}

	for name, value := range fields {
		require.NoError(t, mw.WriteField(name, value))
	}

	require.NoError(t, mw.Close())

	return &buf, mw.FormDataContentType()
}

func TestHandler_Categorize(t *testing.T) {
	listID := uuid.New()

	type testCase struct {
		name       string
		body       string
		setupMock  func(m *categorylist.MockRepository)
		wantStatus int
		wantRows   report.Report
	}

	tests := []testCase{
		{
			name: "InlineCategories",
			body: `{"transactions":[{"description":"Point of Sale","subDescription":"IGA #8123","amount":"-45.12"}],
				"categories":` + groceriesJSON + `}`,
			wantStatus: http.StatusOK,
			wantRows: report.Report{
				{"Category", "Expenses → Groceries", ""},
				{"", "Description", "Amount"},
				{"", "Point of Sale IGA #8123", "$ -45.12"},
				{"Total", "", "$ -45.12"},
			},
		},
		{
			name: "SharedInsertedUnderExpenseColumn",
			body: `{"transactions":[{"description":"Point of Sale","subDescription":"IGA #8123","amount":"-45.12"}],
				"sharedTransactions":[{"description":"Costco run","total":"99","counterpartyAmount":"-49.5","expense":"groceries"}],
				"categories":` + groceriesJSON + `}`,
			wantStatus: http.StatusOK,
			wantRows: report.Report{
				{"Category", "Expenses → Groceries", ""},
				{"", "Description", "Amount"},
				{"", "Point of Sale IGA #8123", "$ -45.12"},
				{"", "Costco run", "$ -49.50"},
				{"Total", "", "$ -45.12"},
			},
		},
		{
			name:       "MissingTransactions",
			body:       `{"categories":` + groceriesJSON + `}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "MalformedBody",
			body:       `{"transactions":`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "UnknownCategoryList",
			body: `{"transactions":[],"categoryListId":"` + listID.String() + `"}`,
			setupMock: func(m *categorylist.MockRepository) {
				m.EXPECT().GetList(gomock.Any(), listID).Return(nil, categorylist.ErrNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name: "NoDefaultList",
			body: `{"transactions":[]}`,
			setupMock: func(m *categorylist.MockRepository) {
				m.EXPECT().GetDefault(gomock.Any()).Return(nil, categorylist.ErrNotFound)
			},
			wantStatus: http.StatusInternalServerError,
		},
		{
			name: "DefaultListSkipsUnknown",
			body: `{"transactions":[{"description":"Mystery","amount":"-1"}],"autoAssignUnknown":false}`,
			setupMock: func(m *categorylist.MockRepository) {
				m.EXPECT().GetDefault(gomock.Any()).Return(&categorylist.List{
					Categories: taxonomy.MustNew(taxonomy.NewMain("Expenses", taxonomy.NewSub("Groceries", "iga"))),
				}, nil)
			},
			wantStatus: http.StatusOK,
			wantRows: report.Report{
				{"Category", "Expenses → Groceries", ""},
				{"", "Description", "Amount"},
				{"Total", "", "$ -"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newRouter(t, tt.setupMock)

			req := httptest.NewRequest(http.MethodPost, "/transactions/categorize", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())

			if tt.wantRows != nil {
				assert.Equal(t, tt.wantRows, decodeReport(t, rec.Body))
			}
		})
	}
}

func TestHandler_CategorizeCSV(t *testing.T) {
	body, contentType := multipartBody(t,
		map[string]string{"transactions": statementCSV, "shared": sharedCSV},
		map[string]string{"categories": groceriesJSON},
	)

	req := httptest.NewRequest(http.MethodPost, "/transactions/categorize-csv", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	newRouter(t, nil).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rep := decodeReport(t, rec.Body)
	require.Len(t, rep, 5)
	assert.Equal(t, report.Row{"", "Costco run", "$ -49.50"}, rep[3])
}

func TestHandler_CategorizeCSV_Errors(t *testing.T) {
	type testCase struct {
		name       string
		files      map[string]string
		fields     map[string]string
		wantStatus int
	}

	tests := []testCase{
		{
			name:       "NoStatement",
			files:      map[string]string{"shared": sharedCSV},
			fields:     map[string]string{"categories": groceriesJSON},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "BadCategoriesJSON",
			files:      map[string]string{"transactions": statementCSV},
			fields:     map[string]string{"categories": `{"Expenses":`},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "BadListID",
			files:      map[string]string{"transactions": statementCSV},
			fields:     map[string]string{"categoryListId": "nope"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "HeaderOnlyStatement",
			files:      map[string]string{"transactions": "Date,Description,Amount\n"},
			fields:     map[string]string{"categories": groceriesJSON},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, contentType := multipartBody(t, tt.files, tt.fields)

			req := httptest.NewRequest(http.MethodPost, "/transactions/categorize-csv", body)
			req.Header.Set("Content-Type", contentType)

			rec := httptest.NewRecorder()
			newRouter(t, nil).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
		})
	}
}

func TestHandler_ParseCSV(t *testing.T) {
	body, contentType := multipartBody(t, map[string]string{"transactions": statementCSV}, nil)

	req := httptest.NewRequest(http.MethodPost, "/transactions/parse-csv", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	newRouter(t, nil).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Transactions []map[string]any `json:"transactions"`
		Shared       []map[string]any `json:"sharedTransactions"`
		Counts       struct {
			Transactions int `json:"transactions"`
			Shared       int `json:"shared"`
		} `json:"counts"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, 1, resp.Counts.Transactions)
	assert.Equal(t, 0, resp.Counts.Shared)
	assert.NotNil(t, resp.Shared)
	assert.Equal(t, "IGA #8123", resp.Transactions[0]["subDescription"])
}

func TestHandler_ExportCSV(t *testing.T) {
	body := `{"transactions":[{"description":"Point of Sale","subDescription":"IGA, Laval","amount":"-45.12"}],
		"categories":` + groceriesJSON + `}`

	req := httptest.NewRequest(http.MethodPost, "/transactions/export-csv", strings.NewReader(body))
	rec := httptest.NewRecorder()
	newRouter(t, nil).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Regexp(t, `^attachment; filename="categorized_transactions_\d{4}-\d{2}-\d{2}\.csv"$`, rec.Header().Get("Content-Disposition"))
	assert.Contains(t, rec.Body.String(), `"Point of Sale IGA, Laval",$ -45.12`)
}

func TestHandler_ExportXLSX(t *testing.T) {
	body := `{"transactions":[{"description":"Point of Sale","subDescription":"IGA #8123","amount":"-45.12"}],
		"categories":` + groceriesJSON + `}`

	req := httptest.NewRequest(http.MethodPost, "/transactions/export-xlsx", strings.NewReader(body))
	rec := httptest.NewRecorder()
	newRouter(t, nil).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Disposition"), ".xlsx")

	f, err := excelize.OpenReader(rec.Body)
	require.NoError(t, err)

	defer f.Close()

	v, err := f.GetCellValue("Categorized", "B3")
	require.NoError(t, err)
	assert.Equal(t, "Point of Sale IGA #8123", v)
}
