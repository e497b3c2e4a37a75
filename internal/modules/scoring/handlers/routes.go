package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all scoring routes
func (h *Handlers) RegisterRoutes(r chi.Router) {
	r.Route("/scoring", func(r chi.Router) {
		r.Post("/flip", h.HandleScoreFlip)
		r.Post("/rental", h.HandleScoreRental)
	})
}
