package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the GA4 event-prediction oracle server.
type Config struct {
	// Server configuration
	Port    int
	BaseURL string

	// Google OAuth configuration
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURI  string

	// JWT configuration
	JWTSecret string

	// Logging
	LogLevel string

	// Oracle: specification store sources
	SpecDevGuidePath   string
	SpecParamTablePath string
	SpecSiteConfigPath string

	// Oracle: vision service
	VisionProvider string // "anthropic" or "mock"
	VisionAPIKey   string
	VisionModel    string
	VisionTimeout  time.Duration

	// Oracle: feedback cache
	FeedbackBackend  string // "memory" or "redis"
	FeedbackRedisURL string

	// Oracle: worker pools and timeouts
	BrowserPoolSize int
	VisionPoolSize  int
	DomTimeout      time.Duration

	// HTTP rate limiting (per client IP)
	RateLimitRPS   float64
	RateLimitBurst int
}

// Load reads a .env file if present, then reads configuration from
// environment variables (which always take precedence over .env
// entries, since godotenv never overwrites an already-set variable).
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("config: failed to read .env file", "error", err)
	}

	cfg := &Config{
		Port:               getEnvInt("PORT", 8081),
		BaseURL:            getEnv("BASE_URL", "http://localhost:8081"),
		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURI:  getEnv("GOOGLE_REDIRECT_URI", ""),
		JWTSecret:          getEnv("JWT_SECRET", ""),
		LogLevel:           getEnv("LOG_LEVEL", "info"),

		SpecDevGuidePath:   getEnv("SPEC_DEV_GUIDE_PATH", ""),
		SpecParamTablePath: getEnv("SPEC_PARAM_TABLE_PATH", ""),
		SpecSiteConfigPath: getEnv("SPEC_SITE_CONFIG_PATH", ""),

		VisionProvider: getEnv("VISION_PROVIDER", "mock"),
		VisionAPIKey:   getEnv("VISION_API_KEY", ""),
		VisionModel:    getEnv("VISION_MODEL", "claude-sonnet-4-5"),
		VisionTimeout:  getEnvDuration("VISION_TIMEOUT", 60*time.Second),

		FeedbackBackend:  getEnv("FEEDBACK_BACKEND", "memory"),
		FeedbackRedisURL: getEnv("FEEDBACK_REDIS_URL", ""),

		BrowserPoolSize: getEnvInt("BROWSER_POOL_SIZE", 4),
		VisionPoolSize:  getEnvInt("VISION_POOL_SIZE", 2),
		DomTimeout:      getEnvDuration("DOM_TIMEOUT", 5*time.Second),

		RateLimitRPS:   getEnvFloat("RATE_LIMIT_RPS", 5),
		RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 20),
	}

	// Validation is deferred to when auth is actually needed
	// This allows the server to start and respond to initialize/ping
	// even without OAuth credentials configured

	return cfg, nil
}

// ValidateAuth checks if OAuth credentials are configured.
func (c *Config) ValidateAuth() error {
	if c.GoogleClientID == "" {
		return fmt.Errorf("GOOGLE_CLIENT_ID is required for authentication")
	}
	if c.GoogleClientSecret == "" {
		return fmt.Errorf("GOOGLE_CLIENT_SECRET is required for authentication")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required for authentication")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}
