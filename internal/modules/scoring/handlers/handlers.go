// Package handlers provides HTTP handlers for the scoring engine.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/akladas/propscope/internal/modules/finance"
	"github.com/akladas/propscope/internal/modules/scoring"
)

// Handlers provides HTTP handlers for the scoring module
type Handlers struct {
	log zerolog.Logger
}

// NewHandlers creates a new scoring handlers instance
func NewHandlers(log zerolog.Logger) *Handlers {
	return &Handlers{
		log: log.With().Str("module", "scoring_handlers").Logger(),
	}
}

// FlipScoreRequest carries computed flip metrics to score.
type FlipScoreRequest struct {
	Metrics finance.FlipMetrics `json:"metrics"`
}

// HandleScoreFlip handles POST /api/scoring/flip
func (h *Handlers) HandleScoreFlip(w http.ResponseWriter, r *http.Request) {
	var req FlipScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	h.writeJSON(w, http.StatusOK, scoring.ScoreFlip(req.Metrics))
}

// RentalScoreRequest carries computed rental metrics plus optional market
// context for the market sub-score.
type RentalScoreRequest struct {
	Metrics finance.PropertyMetrics `json:"metrics"`
	Market  *scoring.MarketData     `json:"market,omitempty"`
}

// HandleScoreRental handles POST /api/scoring/rental
func (h *Handlers) HandleScoreRental(w http.ResponseWriter, r *http.Request) {
	var req RentalScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	h.writeJSON(w, http.StatusOK, scoring.ScoreRental(req.Metrics, req.Market))
}

// writeJSON writes a JSON response with status code
func (h *Handlers) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// writeError writes an error response
func (h *Handlers) writeError(w http.ResponseWriter, message string, status int) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
