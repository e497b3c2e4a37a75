// Package handlers provides HTTP handlers for comp resolution and
// filtering.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/akladas/propscope/internal/comps"
)

// Handlers provides HTTP handlers for the comps module
type Handlers struct {
	resolver *comps.Resolver
	log      zerolog.Logger
}

// NewHandlers creates a new comps handlers instance
func NewHandlers(resolver *comps.Resolver, log zerolog.Logger) *Handlers {
	return &Handlers{
		resolver: resolver,
		log:      log.With().Str("module", "comps_handlers").Logger(),
	}
}

// ResolveRequest names a provider and the subject property to anchor on.
type ResolveRequest struct {
	Query        comps.Query    `json:"query"`
	Provider     string         `json:"provider"`
	ForceRefresh bool           `json:"force_refresh,omitempty"`
	Filters      *comps.Filters `json:"filters,omitempty"`
}

// HandleResolve handles POST /api/comps/resolve
func (h *Handlers) HandleResolve(w http.ResponseWriter, r *http.Request) {
	var req ResolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Provider == "" {
		h.writeError(w, "Provider is required", http.StatusBadRequest)
		return
	}

	result, err := h.resolver.Resolve(r.Context(), req.Query, req.Provider, req.ForceRefresh)
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Filters != nil {
		result.Comps = comps.Filter(result.Comps, *req.Filters)
	}

	stats := comps.ComputeMarketStats(result.Comps)
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"result":       result,
		"market_stats": stats,
	})
}

// FilterRequest carries an existing comp set and the filters to apply.
type FilterRequest struct {
	Comps   []comps.Record `json:"comps"`
	Filters comps.Filters  `json:"filters"`
}

// HandleFilter handles POST /api/comps/filter
func (h *Handlers) HandleFilter(w http.ResponseWriter, r *http.Request) {
	var req FilterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	filtered := comps.Filter(req.Comps, req.Filters)
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"comps":        filtered,
		"market_stats": comps.ComputeMarketStats(filtered),
	})
}

// HandleProviders handles GET /api/comps/providers
func (h *Handlers) HandleProviders(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]interface{}{"providers": h.resolver.Providers()})
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
