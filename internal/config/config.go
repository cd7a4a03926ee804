package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
// Values are loaded from environment variables with sensible defaults.
type Config struct {
	// Server
	Port     int
	LogLevel string

	// CORS (the dashboard SPA origin)
	AllowedOrigins []string

	// HTTP client
	HTTPTimeout time.Duration

	// Resilience
	MaxRetries     int
	InitialBackoff time.Duration
	MaxConcurrency int

	// Caches
	ProfileCacheTTL  time.Duration
	InsightsCacheTTL time.Duration

	// Task board change feed
	WatchInterval time.Duration

	// Observability
	OTLPEndpoint string

	// Supabase
	SupabaseURL     string
	SupabaseAnonKey string
	// Service-role key. The operator CLI needs it; the server uses it for
	// privileged table access behind RLS.
	SupabaseServiceKey string
	// Secret GoTrue signs access tokens with; lets us validate locally
	// instead of round-tripping every request to the auth endpoint.
	SupabaseJWTSecret string

	// Dev mode
	DevAuth bool // DEV_AUTH=true bypasses GoTrue, checks bcrypt hashes in dev_logins
}

// Load reads configuration from environment variables with defaults.
func Load() *Config {
	return &Config{
		Port:     getEnvInt("PORT", 8080),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		AllowedOrigins: []string{getEnv("ALLOWED_ORIGIN", "http://localhost:5173")},

		HTTPTimeout: getEnvDuration("HTTP_TIMEOUT", 10*time.Second),

		MaxRetries:     getEnvInt("MAX_RETRIES", 3),
		InitialBackoff: getEnvDuration("INITIAL_BACKOFF", 100*time.Millisecond),
		MaxConcurrency: getEnvInt("MAX_CONCURRENCY", 50),

		ProfileCacheTTL:  getEnvDuration("PROFILE_CACHE_TTL", 5*time.Minute),
		InsightsCacheTTL: getEnvDuration("INSIGHTS_CACHE_TTL", 10*time.Minute),

		WatchInterval: getEnvDuration("WATCH_INTERVAL", 3*time.Second),

		OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),

		SupabaseURL:        getEnv("SUPABASE_URL", ""),
		SupabaseAnonKey:    getEnv("SUPABASE_ANON_KEY", ""),
		SupabaseServiceKey: getEnv("SUPABASE_SERVICE_ROLE_KEY", ""),
		SupabaseJWTSecret:  getEnv("SUPABASE_JWT_SECRET", ""),

		DevAuth: getEnv("DEV_AUTH", "false") == "true",
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
