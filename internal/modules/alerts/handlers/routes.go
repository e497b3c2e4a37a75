package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all alerts routes
func (h *Handlers) RegisterRoutes(r chi.Router) {
	r.Route("/alerts", func(r chi.Router) {
		r.Post("/flip", h.HandleFlipAlerts)
		r.Post("/rental", h.HandleRentalAlerts)
	})
}
