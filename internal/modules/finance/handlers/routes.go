package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all finance routes
func (h *Handlers) RegisterRoutes(r chi.Router) {
	r.Route("/finance", func(r chi.Router) {
		r.Post("/irr", h.HandleIRR)
		r.Post("/npv", h.HandleNPV)
		r.Post("/projection", h.HandleProjection)
		r.Post("/breakeven", h.HandleBreakEven)
		r.Post("/amortization", h.HandleAmortization)
		r.Post("/scenarios", h.HandleScenarios)
	})
}
