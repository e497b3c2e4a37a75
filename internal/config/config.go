// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/akladas/propscope/internal/utils"
)

// Config holds application configuration
type Config struct {
	DataDir        string // Base directory for databases (always absolute)
	LogLevel       string
	Port           int
	DevMode        bool
	AllowedOrigins []string // CORS origins; defaults to allowing any origin
	Cache          *CacheConfig
	Comps          *CompsConfig
}

// CacheConfig holds comp cache tuning.
// Storage TTL controls how long rows survive in the backing store; freshness
// TTL is the authoritative reuse window, lazily checked on read. The storage
// TTL defaults shorter than the freshness TTL, so a fresh-looking entry can
// still be evicted early - callers must treat that as an ordinary miss.
type CacheConfig struct {
	FreshnessTTL    time.Duration
	StorageTTL      time.Duration
	MaxPayloadBytes int // Payloads above this are truncated before storing
	MaxCompsStored  int // Comps kept when truncating an oversized payload
}

// CompsConfig holds comparable-sales provider configuration
type CompsConfig struct {
	BridgeBaseURL     string
	BridgeAPIKey      string
	OpenAIBaseURL     string
	OpenAIAPIKey      string
	GeminiBaseURL     string
	GeminiAPIKey      string
	RequestTimeout    time.Duration
	RetryAttempts     int
	RetryInitialDelay time.Duration
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	dataDir := getEnv("PROPSCOPE_DATA_DIR", "")
	if dataDir == "" {
		dataDir = "./data"
	}

	// Always resolve to absolute path
	absDataDir, err := filepath.Abs(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory path: %w", err)
	}

	// Ensure directory exists
	if err := os.MkdirAll(absDataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	allowedOrigins := utils.ParseCSV(getEnv("PROPSCOPE_ALLOWED_ORIGINS", ""))
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	cfg := &Config{
		DataDir:        absDataDir,
		Port:           getEnvAsInt("PROPSCOPE_PORT", 8080),
		DevMode:        getEnvAsBool("DEV_MODE", false),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		AllowedOrigins: allowedOrigins,
		Cache:          loadCacheConfig(),
		Comps:          loadCompsConfig(),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	if c.Cache.FreshnessTTL <= 0 {
		return fmt.Errorf("cache freshness TTL must be positive")
	}
	if c.Cache.StorageTTL <= 0 {
		return fmt.Errorf("cache storage TTL must be positive")
	}
	if c.Comps.RetryAttempts < 1 {
		return fmt.Errorf("comps retry attempts must be at least 1")
	}
	// Note: provider API keys optional - the resolver degrades to an empty
	// comp list when a provider is unavailable.
	return nil
}

func loadCacheConfig() *CacheConfig {
	return &CacheConfig{
		FreshnessTTL:    getEnvAsDuration("COMP_CACHE_FRESHNESS_TTL", 24*time.Hour),
		StorageTTL:      getEnvAsDuration("COMP_CACHE_STORAGE_TTL", 6*time.Hour),
		MaxPayloadBytes: getEnvAsInt("COMP_CACHE_MAX_PAYLOAD_BYTES", 50*1024),
		MaxCompsStored:  getEnvAsInt("COMP_CACHE_MAX_COMPS", 10),
	}
}

func loadCompsConfig() *CompsConfig {
	return &CompsConfig{
		BridgeBaseURL:     getEnv("BRIDGE_BASE_URL", "https://api.bridgedataoutput.com/api/v2"),
		BridgeAPIKey:      getEnv("BRIDGE_API_KEY", ""),
		OpenAIBaseURL:     getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAIAPIKey:      getEnv("OPENAI_API_KEY", ""),
		GeminiBaseURL:     getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
		GeminiAPIKey:      getEnv("GEMINI_API_KEY", ""),
		RequestTimeout:    getEnvAsDuration("COMP_REQUEST_TIMEOUT", 15*time.Second),
		RetryAttempts:     getEnvAsInt("COMP_RETRY_ATTEMPTS", 3),
		RetryInitialDelay: getEnvAsDuration("COMP_RETRY_INITIAL_DELAY", time.Second),
	}
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
