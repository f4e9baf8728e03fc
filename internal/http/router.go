package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/kakeibo/internal/http/export"
	"github.com/MrJamesThe3rd/kakeibo/internal/http/importcsv"
	"github.com/MrJamesThe3rd/kakeibo/internal/http/summary"
	"github.com/MrJamesThe3rd/kakeibo/internal/http/transaction"
)

func New(
	allowedOrigins []string,
	transactionsV1 *transaction.Handler,
	summaryV1 *summary.Handler,
	importV1 *importcsv.Handler,
	exportV1 *export.Handler,
	metrics http.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.Handle("/metrics", metrics)

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/categories", transactionsV1.CategoryRoutes)

		r.Route("/transactions", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			transactionsV1.Routes(r)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			summaryV1.Routes(r)
		})

		r.Route("/import", importV1.Routes)

		r.Group(exportV1.Routes)
	})

	return router
}
