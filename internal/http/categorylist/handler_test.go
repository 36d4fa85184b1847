package categorylist_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/tally/internal/categorylist"
	handler "github.com/MrJamesThe3rd/tally/internal/http/categorylist"
	"github.com/MrJamesThe3rd/tally/internal/taxonomy"
)

func newRouter(t *testing.T, setup func(m *categorylist.MockRepository)) http.Handler {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := categorylist.NewMockRepository(ctrl)

	if setup != nil {
		setup(repo)
	}

	r := chi.NewRouter()
	r.Route("/category-lists", handler.NewHandler(categorylist.NewService(repo)).Routes)

	return r
}

func TestHandler_Create(t *testing.T) {
	type testCase struct {
		name       string
		body       string
		setupMock  func(m *categorylist.MockRepository)
		wantStatus int
		wantBody   string
	}

	tests := []testCase{
		{
			name: "Success",
			body: `{"name":"Household","categories":{"Expenses":{"Trips":["airbnb"],"Groceries":["iga"]}}}`,
			setupMock: func(m *categorylist.MockRepository) {
				m.EXPECT().FindByName(gomock.Any(), "Household").Return(nil, categorylist.ErrNotFound)
				m.EXPECT().CreateList(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, l *categorylist.List) error {
						l.ID = uuid.New()
						return nil
					})
			},
			wantStatus: http.StatusCreated,
			wantBody:   `"categories":{"Expenses":{"Trips":["airbnb"],"Groceries":["iga"]}}`,
		},
		{
			name: "Duplicate",
			body: `{"name":"Household","categories":{"Expenses":{"Groceries":["iga"]}}}`,
			setupMock: func(m *categorylist.MockRepository) {
				m.EXPECT().FindByName(gomock.Any(), "Household").Return(&categorylist.List{ID: uuid.New()}, nil)
			},
			wantStatus: http.StatusConflict,
		},
		{
			name:       "ShortName",
			body:       `{"name":"H","categories":{"Expenses":{"Groceries":["iga"]}}}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "MissingCategories",
			body:       `{"name":"Household"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "InvalidCategories",
			body:       `{"name":"Household","categories":{"Expenses":["iga"]}}`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/category-lists/", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")

			rec := httptest.NewRecorder()
			newRouter(t, tt.setupMock).ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestHandler_Default(t *testing.T) {
	def := &categorylist.List{ID: uuid.New(), Name: "Default Categories", IsDefault: true, Categories: taxonomy.Default()}

	rec := httptest.NewRecorder()
	newRouter(t, func(m *categorylist.MockRepository) {
		m.EXPECT().GetDefault(gomock.Any()).Return(def, nil)
	}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/category-lists/default", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"isDefault":true`)

	rec = httptest.NewRecorder()
	newRouter(t, func(m *categorylist.MockRepository) {
		m.EXPECT().GetDefault(gomock.Any()).Return(nil, categorylist.ErrNotFound)
	}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/category-lists/default", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_SearchAndList(t *testing.T) {
	router := newRouter(t, func(m *categorylist.MockRepository) {
		m.EXPECT().Search(gomock.Any(), "house").Return([]*categorylist.List{{Name: "Household"}}, nil)
		m.EXPECT().ListAll(gomock.Any()).Return(nil, nil)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/category-lists/search?q=house", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"Household"`)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/category-lists/search", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/category-lists/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestHandler_SetDefaultAndDelete(t *testing.T) {
	id := uuid.New()

	router := newRouter(t, func(m *categorylist.MockRepository) {
		m.EXPECT().SetDefault(gomock.Any(), id).Return(nil)
		m.EXPECT().GetList(gomock.Any(), id).Return(&categorylist.List{ID: id, IsDefault: true}, nil)
		m.EXPECT().DeleteList(gomock.Any(), id).Return(categorylist.ErrNotFound)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/category-lists/"+id.String()+"/set-default", nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/category-lists/"+id.String(), nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
