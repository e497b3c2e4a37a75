// Package handlers provides HTTP handlers for the financial calculators.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/akladas/propscope/internal/modules/finance"
)

// Handlers provides HTTP handlers for the finance module
type Handlers struct {
	log zerolog.Logger
}

// NewHandlers creates a new finance handlers instance
func NewHandlers(log zerolog.Logger) *Handlers {
	return &Handlers{
		log: log.With().Str("module", "finance_handlers").Logger(),
	}
}

// IRRRequest carries a cash-flow series and an optional starting guess.
type IRRRequest struct {
	CashFlows finance.CashFlowSeries `json:"cash_flows"`
	Guess     float64                `json:"guess,omitempty"`
}

// IRRResponse reports the rate when defined. Defined=false means the
// series has no usable IRR, which is a valid result, not an error.
type IRRResponse struct {
	IRR     float64 `json:"irr"`
	Defined bool    `json:"defined"`
}

// HandleIRR handles POST /api/finance/irr
func (h *Handlers) HandleIRR(w http.ResponseWriter, r *http.Request) {
	var req IRRRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	guess := req.Guess
	if guess == 0 {
		guess = finance.DefaultIRRGuess
	}

	rate, ok := finance.IRR(req.CashFlows, guess)
	h.writeJSON(w, http.StatusOK, IRRResponse{IRR: rate, Defined: ok})
}

// NPVRequest carries a cash-flow series and a discount rate.
type NPVRequest struct {
	CashFlows finance.CashFlowSeries `json:"cash_flows"`
	Rate      float64                `json:"rate"`
}

// HandleNPV handles POST /api/finance/npv
func (h *Handlers) HandleNPV(w http.ResponseWriter, r *http.Request) {
	var req NPVRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]float64{"npv": finance.NPV(req.CashFlows, req.Rate)})
}

// ProjectionRequest carries rental inputs and the horizon in years.
type ProjectionRequest struct {
	Inputs finance.RentalInputs `json:"inputs"`
	Years  int                  `json:"years"`
}

// ProjectionResponse bundles the projection with its IRR when defined.
type ProjectionResponse struct {
	Projection finance.Projection `json:"projection"`
	IRR        *float64           `json:"irr,omitempty"`
}

// HandleProjection handles POST /api/finance/projection
func (h *Handlers) HandleProjection(w http.ResponseWriter, r *http.Request) {
	var req ProjectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	projection := finance.ProjectCashFlows(req.Inputs, req.Years)
	resp := ProjectionResponse{Projection: projection}
	if rate, ok := finance.IRR(projection.Series, finance.DefaultIRRGuess); ok {
		resp.IRR = &rate
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// HandleBreakEven handles POST /api/finance/breakeven
func (h *Handlers) HandleBreakEven(w http.ResponseWriter, r *http.Request) {
	var req finance.RentalInputs
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	h.writeJSON(w, http.StatusOK, finance.ComputeBreakEven(req))
}

// AmortizationRequest carries loan terms and the schedule length to build.
// Months 0 means the full term.
type AmortizationRequest struct {
	Principal  float64 `json:"principal"`
	AnnualRate float64 `json:"annual_rate"`
	TermYears  int     `json:"term_years"`
	Months     int     `json:"months,omitempty"`
}

// HandleAmortization handles POST /api/finance/amortization
func (h *Handlers) HandleAmortization(w http.ResponseWriter, r *http.Request) {
	var req AmortizationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	terms := finance.LoanTerms{
		Principal:  req.Principal,
		AnnualRate: req.AnnualRate,
		TermYears:  req.TermYears,
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"payment":  terms.Payment(),
		"schedule": finance.Schedule(terms, req.Months),
	})
}

// ScenariosRequest carries the quoted financing to compare variants of.
type ScenariosRequest struct {
	Principal  float64 `json:"principal"`
	AnnualRate float64 `json:"annual_rate"`
	TermYears  int     `json:"term_years"`
}

// HandleScenarios handles POST /api/finance/scenarios
func (h *Handlers) HandleScenarios(w http.ResponseWriter, r *http.Request) {
	var req ScenariosRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	scenarios := finance.CompareScenarios(req.Principal, req.AnnualRate, req.TermYears)
	h.writeJSON(w, http.StatusOK, map[string]interface{}{"scenarios": scenarios})
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
