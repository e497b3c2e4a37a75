// Package main is the entry point for the PropScope real-estate analysis server.
// It wires the comp cache database, the comparable-sales resolver, the analysis
// service, and the HTTP API, then runs until interrupted.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/akladas/propscope/internal/compcache"
	"github.com/akladas/propscope/internal/comps"
	"github.com/akladas/propscope/internal/config"
	"github.com/akladas/propscope/internal/database"
	"github.com/akladas/propscope/internal/modules/analysis"
	"github.com/akladas/propscope/internal/scheduler"
	"github.com/akladas/propscope/internal/server"
	"github.com/akladas/propscope/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallbackLog := logger.New(logger.Config{Level: "info", Pretty: true})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})

	log.Info().Msg("Starting PropScope")

	// Comp cache database. The cache profile trades durability for speed,
	// which is fine for data that can always be re-fetched.
	cacheDB, err := database.New(database.Config{
		Path:    filepath.Join(cfg.DataDir, "comp_cache.db"),
		Profile: database.ProfileCache,
		Name:    "comp_cache",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open comp cache database")
	}
	defer cacheDB.Close()

	if err := cacheDB.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate comp cache database")
	}

	cacheRepo := compcache.NewRepository(cacheDB.Conn(), compcache.Options{
		FreshnessTTL:    cfg.Cache.FreshnessTTL,
		StorageTTL:      cfg.Cache.StorageTTL,
		MaxPayloadBytes: cfg.Cache.MaxPayloadBytes,
		MaxCompsStored:  cfg.Cache.MaxCompsStored,
	}, log)

	providers := buildProviders(cfg.Comps, log)
	resolver := comps.NewResolver(providers, cacheRepo, comps.RetryPolicy{
		Attempts:     cfg.Comps.RetryAttempts,
		InitialDelay: cfg.Comps.RetryInitialDelay,
	}, log)

	analysisSvc := analysis.NewService(resolver, log)

	sched := scheduler.New(log)
	cleanupJob := compcache.NewCleanupJob(cacheRepo, cacheDB, log)
	if err := sched.AddJob("@daily", cleanupJob); err != nil {
		log.Fatal().Err(err).Msg("Failed to schedule comp cache cleanup")
	}
	sched.Start()
	defer sched.Stop()

	srv := server.New(server.Config{
		Log:            log,
		CacheDB:        cacheDB,
		Resolver:       resolver,
		Analysis:       analysisSvc,
		Port:           cfg.Port,
		DevMode:        cfg.DevMode,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("PropScope ready")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown failed")
	}

	if err := cacheDB.WALCheckpoint("TRUNCATE"); err != nil {
		log.Warn().Err(err).Msg("Final WAL checkpoint failed")
	}

	log.Info().Msg("Shutdown complete")
}

// buildProviders constructs the comp providers that have credentials
// configured. An empty provider list is valid; the resolver reports an
// unknown-provider error only when a request names a provider explicitly.
func buildProviders(cfg *config.CompsConfig, log zerolog.Logger) []comps.Provider {
	var providers []comps.Provider

	if cfg.BridgeAPIKey != "" {
		bridge, err := comps.NewBridgeClient(cfg.BridgeBaseURL, cfg.BridgeAPIKey, cfg.RequestTimeout, log)
		if err != nil {
			log.Warn().Err(err).Msg("Skipping Bridge provider")
		} else {
			providers = append(providers, bridge)
		}
	}

	if cfg.OpenAIAPIKey != "" {
		openai, err := comps.NewOpenAIClient(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.RequestTimeout, log)
		if err != nil {
			log.Warn().Err(err).Msg("Skipping OpenAI provider")
		} else {
			providers = append(providers, openai)
		}
	}

	if cfg.GeminiAPIKey != "" {
		gemini, err := comps.NewGeminiClient(cfg.GeminiBaseURL, cfg.GeminiAPIKey, cfg.RequestTimeout, log)
		if err != nil {
			log.Warn().Err(err).Msg("Skipping Gemini provider")
		} else {
			providers = append(providers, gemini)
		}
	}

	if len(providers) == 0 {
		log.Warn().Msg("No comp providers configured; analysis will run without comparable sales")
	}

	return providers
}
