package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/rachaconta/backend/internal/metrics"
	"github.com/rachaconta/backend/internal/middleware"
)

// NewRouter creates the router with all routes and middleware configured.
// collector may be nil to disable metrics (tests).
func NewRouter(h *Handler, collector *metrics.Collector, corsOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.RequestLogger(collector))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Route("/api", func(r chi.Router) {
		r.Route("/groups", func(r chi.Router) {
			r.Get("/", h.ListGroups)
			r.Post("/", h.CreateGroup)
			r.Get("/{id}", h.GetGroup)
			r.Delete("/{id}", h.DeleteGroup)
			r.Post("/{id}/expenses", h.AddExpense)
			r.Get("/{id}/debts", h.ListDebts)
			r.Get("/{id}/balances", h.GetBalances)
		})

		r.Route("/debts", func(r chi.Router) {
			r.Post("/{id}/settle", h.SettleDebt)
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	if collector != nil {
		r.Method(http.MethodGet, "/metrics", collector.Handler())
	}

	return r
}
