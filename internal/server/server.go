// Package server provides the HTTP server and routing for PropScope.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/akladas/propscope/internal/comps"
	compshandlers "github.com/akladas/propscope/internal/comps/handlers"
	"github.com/akladas/propscope/internal/database"
	alertshandlers "github.com/akladas/propscope/internal/modules/alerts/handlers"
	"github.com/akladas/propscope/internal/modules/analysis"
	analysishandlers "github.com/akladas/propscope/internal/modules/analysis/handlers"
	financehandlers "github.com/akladas/propscope/internal/modules/finance/handlers"
	scoringhandlers "github.com/akladas/propscope/internal/modules/scoring/handlers"
)

// Config holds server configuration
type Config struct {
	Log            zerolog.Logger
	CacheDB        *database.DB
	Resolver       *comps.Resolver
	Analysis       *analysis.Service
	Port           int
	DevMode        bool
	AllowedOrigins []string // Empty means allow any origin
}

// Server represents the HTTP server
type Server struct {
	router         *chi.Mux
	server         *http.Server
	log            zerolog.Logger
	cacheDB        *database.DB
	resolver       *comps.Resolver
	analysisSvc    *analysis.Service
	systemHandlers *SystemHandlers
}

// New creates a new HTTP server
func New(cfg Config) *Server {
	s := &Server{
		router:         chi.NewRouter(),
		log:            cfg.Log.With().Str("component", "server").Logger(),
		cacheDB:        cfg.CacheDB,
		resolver:       cfg.Resolver,
		analysisSvc:    cfg.Analysis,
		systemHandlers: NewSystemHandlers(cfg.Log, cfg.CacheDB),
	}

	s.setupMiddleware(cfg)
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware(cfg Config) {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(middleware.Timeout(60 * time.Second))

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if !cfg.DevMode {
		s.router.Use(middleware.Compress(5))
	}
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Route("/system", func(r chi.Router) {
			r.Get("/health", s.systemHandlers.HandleSystemHealth)
			r.Get("/database/stats", s.systemHandlers.HandleDatabaseStats)
		})

		financehandlers.NewHandlers(s.log).RegisterRoutes(r)
		scoringhandlers.NewHandlers(s.log).RegisterRoutes(r)
		alertshandlers.NewHandlers(s.log).RegisterRoutes(r)

		if s.resolver != nil {
			compshandlers.NewHandlers(s.resolver, s.log).RegisterRoutes(r)
		}
		if s.analysisSvc != nil {
			analysishandlers.NewHandlers(s.analysisSvc, s.log).RegisterRoutes(r)
		}
	})
}

// handleHealth is the liveness probe.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write([]byte(`{"status":"ok"}`)); err != nil {
		s.log.Error().Err(err).Msg("Failed to write health response")
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.server.Addr).Msg("Starting HTTP server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// loggingMiddleware logs HTTP requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration_ms", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("HTTP request")
	})
}
