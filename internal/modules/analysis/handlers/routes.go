package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all analysis routes
func (h *Handlers) RegisterRoutes(r chi.Router) {
	r.Route("/analysis", func(r chi.Router) {
		r.Post("/run", h.HandleRun)
	})
}
