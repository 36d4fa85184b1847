package health

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/tally/internal/http/render"
)

type Handler struct {
	version string
	now     func() time.Time
}

func NewHandler(version string) *Handler {
	return &Handler{version: version, now: time.Now}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.health)
}

type response struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	render.JSON(w, http.StatusOK, response{
		Status:    "healthy",
		Timestamp: h.now().UTC(),
		Version:   h.version,
	})
}
