// Package handlers provides the HTTP entry point for full analysis runs.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/akladas/propscope/internal/modules/analysis"
)

// Handlers provides HTTP handlers for the analysis module
type Handlers struct {
	service *analysis.Service
	log     zerolog.Logger
}

// NewHandlers creates a new analysis handlers instance
func NewHandlers(service *analysis.Service, log zerolog.Logger) *Handlers {
	return &Handlers{
		service: service,
		log:     log.With().Str("module", "analysis_handlers").Logger(),
	}
}

// RunRequest carries the run configuration. Inputs may be given as the
// typed struct or as a loose field map using the shared field vocabulary;
// the map wins for any field it names.
type RunRequest struct {
	Inputs  analysis.Inputs    `json:"inputs"`
	Fields  map[string]float64 `json:"fields,omitempty"`
	Options analysis.Options   `json:"options"`
}

// mapSource adapts a loose field map onto the FieldSource contract.
type mapSource map[string]float64

func (m mapSource) Get(name string, def float64) float64 {
	if v, ok := m[name]; ok {
		return v
	}
	return def
}

// HandleRun handles POST /api/analysis/run
func (h *Handlers) HandleRun(w http.ResponseWriter, r *http.Request) {
	var req RunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	in := req.Inputs
	if len(req.Fields) > 0 {
		in = analysis.ResolveInputs(mapSource(req.Fields))
	}
	if in.PurchasePrice <= 0 {
		h.writeError(w, "A positive purchase price is required", http.StatusBadRequest)
		return
	}

	result, err := h.service.Run(r.Context(), in, req.Options)
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.writeJSON(w, http.StatusOK, result)
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
