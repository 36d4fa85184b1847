package receipt

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/http/render"
	"github.com/MrJamesThe3rd/tally/internal/importer"
	"github.com/MrJamesThe3rd/tally/internal/receipt"
)

// receiptResponse adds what every involved user owes to a receipt.
type receiptResponse struct {
	*receipt.Receipt
	UserSummary map[uuid.UUID]decimal.Decimal `json:"userSummary"`
}

// userReceipt is a receipt as seen by one user.
type userReceipt struct {
	*receipt.Receipt
	UserTotal decimal.Decimal `json:"userTotal"`
}

type Handler struct {
	svc       *receipt.Service
	maxUpload int64
}

func NewHandler(svc *receipt.Service, maxUpload int64) *Handler {
	return &Handler{svc: svc, maxUpload: maxUpload}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.save)
	r.Post("/parse", h.parse)
	r.Post("/splits", h.applySplits)
	r.Get("/user/{userID}", h.listByUser)
	r.Get("/{id}", h.get)
	r.Delete("/{id}", h.delete)
}

func (h *Handler) parse(w http.ResponseWriter, r *http.Request) {
	if err := render.ParseUpload(w, r, h.maxUpload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	file, err := render.OpenFile(r, "receipt")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if file == nil {
		http.Error(w, "no receipt CSV file uploaded", http.StatusBadRequest)
		return
	}
	defer render.Close(file)

	items, err := h.svc.ParseCSV(r.Context(), file)
	if err != nil {
		if errors.Is(err, importer.ErrEmptyInput) || errors.Is(err, importer.ErrColumnNotFound) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	render.JSON(w, http.StatusOK, items)
}

type saveRequest struct {
	Items  []receipt.Item `json:"items"`
	UserID *uuid.UUID     `json:"userId"`
	Store  string         `json:"store"`
	Date   *time.Time     `json:"date"`
}

func (h *Handler) save(w http.ResponseWriter, r *http.Request) {
	var req saveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	params := receipt.SaveParams{
		Items:  req.Items,
		UserID: req.UserID,
		Store:  req.Store,
	}

	if req.Date != nil {
		params.Date = *req.Date
	}

	rec, err := h.svc.Save(r.Context(), params)
	if err != nil {
		writeError(w, err)
		return
	}

	render.JSON(w, http.StatusCreated, rec)
}

type splitsRequest struct {
	Items  []receipt.Item         `json:"items"`
	Splits []receipt.SplitRequest `json:"splits"`
}

func (h *Handler) applySplits(w http.ResponseWriter, r *http.Request) {
	var req splitsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	items, err := receipt.ApplySplits(req.Items, req.Splits)
	if err != nil {
		writeError(w, err)
		return
	}

	render.JSON(w, http.StatusOK, items)
}

func (h *Handler) listByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	receipts, err := h.svc.ListByUser(r.Context(), userID)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	out := make([]userReceipt, 0, len(receipts))
	for _, rec := range receipts {
		out = append(out, userReceipt{Receipt: rec, UserTotal: rec.UserTotal(userID)})
	}

	render.JSON(w, http.StatusOK, out)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	rec, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	render.JSON(w, http.StatusOK, receiptResponse{Receipt: rec, UserSummary: rec.UserSummary()})
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, receipt.ErrNotFound):
		http.Error(w, "receipt not found", http.StatusNotFound)
	case errors.Is(err, receipt.ErrNoItems),
		errors.Is(err, receipt.ErrSplitMismatch),
		errors.Is(err, receipt.ErrNoUsers),
		errors.Is(err, receipt.ErrItemIndex):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
