package categorylist

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/tally/internal/categorylist"
	"github.com/MrJamesThe3rd/tally/internal/http/render"
	"github.com/MrJamesThe3rd/tally/internal/taxonomy"
)

type Handler struct {
	svc *categorylist.Service
}

func NewHandler(svc *categorylist.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/search", h.search)
	r.Get("/default", h.getDefault)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Put("/{id}/set-default", h.setDefault)
	r.Delete("/{id}", h.delete)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	lists, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeLists(w, lists)
}

func (h *Handler) search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		http.Error(w, "q query parameter is required", http.StatusBadRequest)
		return
	}

	lists, err := h.svc.Search(r.Context(), q)
	if err != nil {
		writeError(w, err)
		return
	}

	writeLists(w, lists)
}

type createRequest struct {
	Name       string            `json:"name"`
	Categories taxonomy.Taxonomy `json:"categories"`
	IsDefault  bool              `json:"isDefault"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	l, err := h.svc.Create(r.Context(), categorylist.CreateParams{
		Name:       req.Name,
		Categories: req.Categories,
		IsDefault:  req.IsDefault,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	render.JSON(w, http.StatusCreated, l)
}

func (h *Handler) getDefault(w http.ResponseWriter, r *http.Request) {
	l, err := h.svc.GetDefault(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	render.JSON(w, http.StatusOK, l)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	l, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	render.JSON(w, http.StatusOK, l)
}

type updateRequest struct {
	Name       *string            `json:"name,omitempty"`
	Categories *taxonomy.Taxonomy `json:"categories,omitempty"`
	IsDefault  *bool              `json:"isDefault,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	l, err := h.svc.Update(r.Context(), id, categorylist.UpdateParams{
		Name:       req.Name,
		Categories: req.Categories,
		IsDefault:  req.IsDefault,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	render.JSON(w, http.StatusOK, l)
}

func (h *Handler) setDefault(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	l, err := h.svc.SetDefault(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	render.JSON(w, http.StatusOK, l)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return uuid.Nil, false
	}

	return id, true
}

func writeLists(w http.ResponseWriter, lists []*categorylist.List) {
	if lists == nil {
		lists = []*categorylist.List{}
	}

	render.JSON(w, http.StatusOK, lists)
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, categorylist.ErrNotFound), errors.Is(err, categorylist.ErrNoDefault):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, categorylist.ErrDuplicateName):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, categorylist.ErrInvalid), errors.Is(err, taxonomy.ErrInvalid):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
