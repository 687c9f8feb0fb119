// Package config provides environment-driven configuration for cinelake.
package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
)

// Secret wraps a sensitive string to prevent accidental logging or marshalling.
type Secret string

// String implements fmt.Stringer, returning a redacted placeholder.
func (s Secret) String() string { return "[REDACTED]" }

// GoString implements fmt.GoStringer, returning a redacted placeholder.
func (s Secret) GoString() string { return "[REDACTED]" }

// MarshalText implements encoding.TextMarshaler, returning a redacted placeholder.
func (s Secret) MarshalText() ([]byte, error) { return []byte("[REDACTED]"), nil }

// Value returns the underlying secret string.
func (s Secret) Value() string { return string(s) }

// Config holds all application configuration values.
type Config struct {
	DatabaseURL Secret
	Port        string
	ListenHost  string
	CORSOrigins []string
	LogLevel    string

	// Gemini NL-to-SQL translation. Empty API key disables the Gemini
	// strategy; the keyword fallback still serves /ask.
	GeminiAPIKey Secret
	GeminiModel  string

	// Upstream movie API used by the daily extraction.
	TMDBAPIKey  Secret
	TMDBBaseURL string
	TMDBRate    float64

	// Object storage and notification trigger for batch imports.
	GCPProject        string
	BatchBucket       string
	BatchSubscription string

	// Conflict policy for imports triggered by bucket notifications.
	// Imports requested over HTTP choose their own policy per request.
	ImportPolicy string

	// Success-prediction model manifest. Empty path leaves the predictor
	// unavailable; /predict reports 503 until one is configured.
	ModelManifest string

	QueryRowLimit int
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:       Secret(envOrDefault("DATABASE_URL", "")),
		Port:              envOrDefault("PORT", "3040"),
		ListenHost:        envOrDefault("LISTEN_HOST", "127.0.0.1"),
		LogLevel:          envOrDefault("LOG_LEVEL", "info"),
		GeminiAPIKey:      Secret(envOrDefault("GEMINI_API_KEY", "")),
		GeminiModel:       envOrDefault("GEMINI_MODEL", "gemini-1.5-flash"),
		TMDBAPIKey:        Secret(envOrDefault("TMDB_API_KEY", "")),
		TMDBBaseURL:       envOrDefault("TMDB_BASE_URL", "https://api.themoviedb.org/3"),
		GCPProject:        envOrDefault("GCP_PROJECT", ""),
		BatchBucket:       envOrDefault("BATCH_BUCKET", ""),
		BatchSubscription: envOrDefault("BATCH_SUBSCRIPTION", ""),
		ImportPolicy:      envOrDefault("IMPORT_POLICY", "overwrite"),
		ModelManifest:     envOrDefault("MODEL_MANIFEST", ""),
	}

	rowLimit, err := strconv.Atoi(envOrDefault("QUERY_ROW_LIMIT", "20"))
	if err != nil || rowLimit < 1 || rowLimit > 1000 {
		return nil, fmt.Errorf("QUERY_ROW_LIMIT must be an integer between 1 and 1000")
	}
	cfg.QueryRowLimit = rowLimit

	tmdbRate, err := strconv.ParseFloat(envOrDefault("TMDB_RATE", "4"), 64)
	if err != nil || tmdbRate <= 0 || tmdbRate > 50 {
		return nil, fmt.Errorf("TMDB_RATE must be a positive number of requests per second, at most 50")
	}
	cfg.TMDBRate = tmdbRate

	origins := envOrDefault("CORS_ORIGINS", "http://localhost:3000")
	cfg.CORSOrigins = strings.Split(origins, ",")

	for i, o := range cfg.CORSOrigins {
		cfg.CORSOrigins[i] = strings.TrimSpace(o)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// Addr returns the listen address in host:port format.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.ListenHost, c.Port)
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}
