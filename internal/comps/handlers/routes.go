package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all comps routes
func (h *Handlers) RegisterRoutes(r chi.Router) {
	r.Route("/comps", func(r chi.Router) {
		r.Post("/resolve", h.HandleResolve)
		r.Post("/filter", h.HandleFilter)
		r.Get("/providers", h.HandleProviders)
	})
}
