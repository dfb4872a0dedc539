package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Route("/api", func(r chi.Router) {
		r.Route("/plans", func(r chi.Router) {
			r.Post("/optimize", h.Optimize)
			r.Get("/sweep", h.Sweep)
			r.Get("/", h.ListPlans)
			r.Post("/", h.SavePlan)
			r.Get("/{id}", h.GetPlan)
			r.Delete("/{id}", h.DeletePlan)
		})
		r.Get("/rules", h.GetRules)
	})

	return r
}
