package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/tally/internal/http/categorylist"
	"github.com/MrJamesThe3rd/tally/internal/http/health"
	"github.com/MrJamesThe3rd/tally/internal/http/receipt"
	"github.com/MrJamesThe3rd/tally/internal/http/transaction"
	"github.com/MrJamesThe3rd/tally/internal/http/translation"
	"github.com/MrJamesThe3rd/tally/internal/metrics"
)

type Handlers struct {
	Health        *health.Handler
	Transactions  *transaction.Handler
	Receipts      *receipt.Handler
	Translations  *translation.Handler
	CategoryLists *categorylist.Handler
}

func New(h Handlers, allowedOrigins []string) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         300,
	}))

	router.Handle("/metrics", metrics.Handler())

	router.Route("/api", func(r chi.Router) {
		r.Route("/health", h.Health.Routes)

		r.Route("/v1", func(r chi.Router) {
			r.Route("/transactions", h.Transactions.Routes)
			r.Route("/receipts", h.Receipts.Routes)

			r.Route("/translations", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				h.Translations.Routes(r)
			})

			r.Route("/category-lists", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				h.CategoryLists.Routes(r)
			})
		})
	})

	return router
}
