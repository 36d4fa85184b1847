package transaction

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/tally/internal/categorize"
	"github.com/MrJamesThe3rd/tally/internal/categorylist"
	"github.com/MrJamesThe3rd/tally/internal/http/render"
	"github.com/MrJamesThe3rd/tally/internal/importer"
	"github.com/MrJamesThe3rd/tally/internal/reconcile"
	"github.com/MrJamesThe3rd/tally/internal/report"
	"github.com/MrJamesThe3rd/tally/internal/taxonomy"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handler struct {
	lists     *categorylist.Service
	maxUpload int64
}

func NewHandler(lists *categorylist.Service, maxUpload int64) *Handler {
	return &Handler{lists: lists, maxUpload: maxUpload}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/categorize", h.categorize)
	r.Post("/categorize-csv", h.categorizeCSV)
	r.Post("/parse-csv", h.parseCSV)
	r.Post("/export-csv", h.exportCSV)
	r.Post("/export-xlsx", h.exportXLSX)
}

type categorizeRequest struct {
	Transactions       []categorize.Transaction      `json:"transactions"`
	SharedTransactions []reconcile.SharedTransaction `json:"sharedTransactions"`
	Categories         *taxonomy.Taxonomy            `json:"categories"`
	CategoryListID     *uuid.UUID                    `json:"categoryListId"`
	AutoAssignUnknown  *bool                         `json:"autoAssignUnknown"`
}

func (req categorizeRequest) autoAssign() bool {
	return req.AutoAssignUnknown == nil || *req.AutoAssignUnknown
}

// decodeAndBuild decodes a categorizeRequest and builds its report. It writes
// the error response itself and reports whether the caller should continue.
func (h *Handler) decodeAndBuild(w http.ResponseWriter, r *http.Request) (report.Report, bool) {
	var req categorizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return nil, false
	}

	if req.Transactions == nil {
		http.Error(w, "transactions array is required", http.StatusBadRequest)
		return nil, false
	}

	tax, ok := h.resolve(w, r, req.CategoryListID, req.Categories)
	if !ok {
		return nil, false
	}

	return build(req.Transactions, req.SharedTransactions, tax, req.autoAssign()), true
}

func (h *Handler) categorize(w http.ResponseWriter, r *http.Request) {
	rep, ok := h.decodeAndBuild(w, r)
	if !ok {
		return
	}

	render.JSON(w, http.StatusOK, rep)
}

func (h *Handler) exportCSV(w http.ResponseWriter, r *http.Request) {
	rep, ok := h.decodeAndBuild(w, r)
	if !ok {
		return
	}

	body, err := rep.CSV()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", attachment("csv"))
	_, _ = io.WriteString(w, body)
}

func (h *Handler) exportXLSX(w http.ResponseWriter, r *http.Request) {
	rep, ok := h.decodeAndBuild(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", attachment("xlsx"))

	if err := rep.WriteXLSX(w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) categorizeCSV(w http.ResponseWriter, r *http.Request) {
	batch, ok := h.readBatch(w, r)
	if !ok {
		return
	}

	var listID *uuid.UUID

	if s := r.FormValue("categoryListId"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			http.Error(w, "invalid categoryListId", http.StatusBadRequest)
			return
		}

		listID = &id
	}

	var inline *taxonomy.Taxonomy

	if s := r.FormValue("categories"); s != "" {
		var tax taxonomy.Taxonomy
		if err := json.Unmarshal([]byte(s), &tax); err != nil {
			http.Error(w, "invalid categories JSON format", http.StatusBadRequest)
			return
		}

		inline = &tax
	}

	autoAssign := true

	if s := r.FormValue("autoAssignUnknown"); s != "" {
		v, err := strconv.ParseBool(s)
		if err != nil {
			http.Error(w, "invalid autoAssignUnknown", http.StatusBadRequest)
			return
		}

		autoAssign = v
	}

	tax, ok := h.resolve(w, r, listID, inline)
	if !ok {
		return
	}

	render.JSON(w, http.StatusOK, build(batch.Transactions, batch.Shared, tax, autoAssign))
}

type parseResponse struct {
	importer.Batch
	Counts parseCounts `json:"counts"`
}

type parseCounts struct {
	Transactions int `json:"transactions"`
	Shared       int `json:"shared"`
}

func (h *Handler) parseCSV(w http.ResponseWriter, r *http.Request) {
	batch, ok := h.readBatch(w, r)
	if !ok {
		return
	}

	render.JSON(w, http.StatusOK, parseResponse{
		Batch: batch,
		Counts: parseCounts{
			Transactions: len(batch.Transactions),
			Shared:       len(batch.Shared),
		},
	})
}

// readBatch parses the "transactions" upload and the optional "shared" one.
func (h *Handler) readBatch(w http.ResponseWriter, r *http.Request) (importer.Batch, bool) {
	if err := render.ParseUpload(w, r, h.maxUpload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return importer.Batch{}, false
	}

	statement, err := render.OpenFile(r, "transactions")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return importer.Batch{}, false
	}

	if statement == nil {
		http.Error(w, "no transactions CSV file uploaded", http.StatusBadRequest)
		return importer.Batch{}, false
	}
	defer render.Close(statement)

	shared, err := render.OpenFile(r, "shared")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return importer.Batch{}, false
	}
	defer render.Close(shared)

	var sharedReader io.Reader
	if shared != nil {
		sharedReader = shared
	}

	batch, err := importer.ParseBatch(statement, sharedReader)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return importer.Batch{}, false
	}

	return batch, true
}

func (h *Handler) resolve(w http.ResponseWriter, r *http.Request, listID *uuid.UUID, inline *taxonomy.Taxonomy) (taxonomy.Taxonomy, bool) {
	tax, err := h.lists.Resolve(r.Context(), listID, inline)

	switch {
	case err == nil:
		return tax, true
	case errors.Is(err, categorylist.ErrNotFound):
		http.Error(w, "category list not found", http.StatusNotFound)
	case errors.Is(err, categorylist.ErrNoDefault):
		http.Error(w, err.Error(), http.StatusInternalServerError)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}

	return taxonomy.Taxonomy{}, false
}

func attachment(ext string) string {
	return fmt.Sprintf(`attachment; filename="categorized_transactions_%s.%s"`, time.Now().Format(time.DateOnly), ext)
}
