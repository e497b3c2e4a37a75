package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/akladas/propscope/internal/database"
)

// SystemHandlers handles system monitoring endpoints
type SystemHandlers struct {
	log         zerolog.Logger
	cacheDB     *database.DB
	startupTime time.Time
}

// NewSystemHandlers creates a new system handlers instance
func NewSystemHandlers(log zerolog.Logger, cacheDB *database.DB) *SystemHandlers {
	return &SystemHandlers{
		log:         log.With().Str("component", "system_handlers").Logger(),
		cacheDB:     cacheDB,
		startupTime: time.Now(),
	}
}

// SystemHealthResponse reports process and host health.
type SystemHealthResponse struct {
	Status      string  `json:"status"`
	UptimeHours float64 `json:"uptime_hours"`
	CPUPercent  float64 `json:"cpu_percent"`
	RAMPercent  float64 `json:"ram_percent"`
	CacheDB     string  `json:"cache_db"`
}

// HandleSystemHealth handles GET /api/system/health
func (h *SystemHandlers) HandleSystemHealth(w http.ResponseWriter, r *http.Request) {
	cpuPercent, ramPercent := h.getSystemStats()

	response := SystemHealthResponse{
		Status:      "healthy",
		UptimeHours: time.Since(h.startupTime).Hours(),
		CPUPercent:  cpuPercent,
		RAMPercent:  ramPercent,
		CacheDB:     "ok",
	}

	if h.cacheDB != nil {
		if err := h.cacheDB.HealthCheck(r.Context()); err != nil {
			h.log.Warn().Err(err).Msg("Cache database health check failed")
			response.Status = "degraded"
			response.CacheDB = err.Error()
		}
	} else {
		response.CacheDB = "disabled"
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// HandleDatabaseStats handles GET /api/system/database/stats
func (h *SystemHandlers) HandleDatabaseStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if h.cacheDB == nil {
		if err := json.NewEncoder(w).Encode(map[string]string{"status": "disabled"}); err != nil {
			h.log.Error().Err(err).Msg("Failed to encode JSON response")
		}
		return
	}

	stats, err := h.cacheDB.GetStats()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to read cache database stats")
		w.WriteHeader(http.StatusInternalServerError)
		if err := json.NewEncoder(w).Encode(map[string]string{"error": "failed to read database stats"}); err != nil {
			h.log.Error().Err(err).Msg("Failed to encode JSON response")
		}
		return
	}

	response := map[string]interface{}{
		"size_bytes":     stats.SizeBytes,
		"wal_size_bytes": stats.WALSizeBytes,
		"page_count":     stats.PageCount,
		"page_size":      stats.PageSize,
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// getSystemStats calculates CPU and RAM usage percentages.
// A 100ms sample keeps the endpoint responsive while still giving a real
// CPU reading.
func (h *SystemHandlers) getSystemStats() (float64, float64) {
	cpuPercent, err := cpu.Percent(100*time.Millisecond, false)
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get CPU percentage")
		cpuPercent = []float64{0}
	}

	memStat, err := mem.VirtualMemory()
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get memory statistics")
		return 0, 0
	}

	cpuAvg := 0.0
	if len(cpuPercent) > 0 {
		cpuAvg = cpuPercent[0]
	}

	return cpuAvg, memStat.UsedPercent
}
