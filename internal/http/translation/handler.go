package translation

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/tally/internal/http/render"
	"github.com/MrJamesThe3rd/tally/internal/translation"
)

type Handler struct {
	svc *translation.Service
}

func NewHandler(svc *translation.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.upsert)
	r.Get("/translate", h.translate)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := translation.ListFilter{Query: r.URL.Query().Get("q")}

	if s := r.URL.Query().Get("userId"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			http.Error(w, "invalid userId", http.StatusBadRequest)
			return
		}

		filter.UserID = &id
	}

	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}

		filter.Limit = n
	}

	mappings, err := h.svc.List(r.Context(), filter)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if mappings == nil {
		mappings = []*translation.Mapping{}
	}

	render.JSON(w, http.StatusOK, mappings)
}

type upsertRequest struct {
	Original    string     `json:"original"`
	Translation string     `json:"translation"`
	Category    string     `json:"category"`
	UserID      *uuid.UUID `json:"userId"`
}

func (h *Handler) upsert(w http.ResponseWriter, r *http.Request) {
	var req upsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	m, err := h.svc.Learn(r.Context(), translation.UpsertParams{
		Original:    req.Original,
		Translation: req.Translation,
		Category:    req.Category,
		UserID:      req.UserID,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	render.JSON(w, http.StatusOK, m)
}

type translateResponse struct {
	Original    string `json:"original"`
	Translation string `json:"translation"`
}

func (h *Handler) translate(w http.ResponseWriter, r *http.Request) {
	text := r.URL.Query().Get("text")
	if text == "" {
		http.Error(w, "text query parameter is required", http.StatusBadRequest)
		return
	}

	render.JSON(w, http.StatusOK, translateResponse{
		Original:    text,
		Translation: h.svc.Translate(r.Context(), text),
	})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	m, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	render.JSON(w, http.StatusOK, m)
}

type updateRequest struct {
	Translation *string `json:"translation,omitempty"`
	Category    *string `json:"category,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	m, err := h.svc.Update(r.Context(), id, translation.UpdateParams{
		Translation: req.Translation,
		Category:    req.Category,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	render.JSON(w, http.StatusOK, m)
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
	case errors.Is(err, translation.ErrNotFound):
		http.Error(w, "translation not found", http.StatusNotFound)
	case errors.Is(err, translation.ErrInvalid):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
