// Package handlers provides HTTP handlers for the alert generator.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/akladas/propscope/internal/modules/alerts"
	"github.com/akladas/propscope/internal/modules/finance"
)

// Handlers provides HTTP handlers for the alerts module
type Handlers struct {
	log zerolog.Logger
}

// NewHandlers creates a new alerts handlers instance
func NewHandlers(log zerolog.Logger) *Handlers {
	return &Handlers{
		log: log.With().Str("module", "alerts_handlers").Logger(),
	}
}

// FlipAlertsRequest carries flip metrics plus optional threshold overrides
// and market averages.
type FlipAlertsRequest struct {
	Metrics       finance.FlipMetrics    `json:"metrics"`
	PurchasePrice float64                `json:"purchase_price"`
	Market        *alerts.MarketAverages `json:"market,omitempty"`
	Thresholds    alerts.FlipThresholds  `json:"thresholds,omitempty"`
}

// HandleFlipAlerts handles POST /api/alerts/flip
func (h *Handlers) HandleFlipAlerts(w http.ResponseWriter, r *http.Request) {
	var req FlipAlertsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	out := alerts.GenerateFlip(alerts.FlipData{
		Metrics:       req.Metrics,
		PurchasePrice: req.PurchasePrice,
		Market:        req.Market,
	}, req.Thresholds)
	h.writeJSON(w, http.StatusOK, map[string]interface{}{"alerts": out})
}

// RentalAlertsRequest carries rental metrics plus optional threshold
// overrides and market averages.
type RentalAlertsRequest struct {
	Metrics    finance.PropertyMetrics `json:"metrics"`
	Market     *alerts.MarketAverages  `json:"market,omitempty"`
	Thresholds alerts.RentalThresholds `json:"thresholds,omitempty"`
}

// HandleRentalAlerts handles POST /api/alerts/rental
func (h *Handlers) HandleRentalAlerts(w http.ResponseWriter, r *http.Request) {
	var req RentalAlertsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	out := alerts.GenerateRental(alerts.RentalData{
		Metrics: req.Metrics,
		Market:  req.Market,
	}, req.Thresholds)
	h.writeJSON(w, http.StatusOK, map[string]interface{}{"alerts": out})
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
