// Package config loads the toolkit configuration from the environment,
// with an optional .env file. The core packages receive already-resolved
// values from here; nothing below this layer reads the environment.
package config

import (
	"errors"
	"os"
	"time"

	"github.com/joho/godotenv"

	"cilok/internal/geo"
)

// AIBackend names the completion service selected for a run.
type AIBackend string

const (
	AIBackendOpenRouter AIBackend = "openrouter"
	AIBackendGemini     AIBackend = "gemini"
)

// DefaultModel is the OpenRouter model used when AI_MODEL is unset.
const DefaultModel = "google/gemini-2.0-flash-exp:free"

// DefaultGeminiModel is used when the Gemini backend answers directly.
const DefaultGeminiModel = "gemini-2.0-flash"

type Config struct {
	OpenRouterKey string
	GeminiKey     string
	AIModel       string

	GoogleMapsKey string
	MapboxKey     string

	Country  string
	Language string

	HTTPAddr   string
	GeoTimeout time.Duration
	Debug      bool
}

// Load reads .env (best effort) and the environment. It fails only when
// no AI credential is configured; map credentials are optional and merely
// steer provider selection.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		OpenRouterKey: os.Getenv("OPENROUTER_API_KEY"),
		GeminiKey:     os.Getenv("GEMINI_API_KEY"),
		AIModel:       envOrDefault("AI_MODEL", DefaultModel),
		GoogleMapsKey: os.Getenv("GOOGLE_MAPS_API_KEY"),
		MapboxKey:     os.Getenv("MAPBOX_API_KEY"),
		Country:       envOrDefault("DEFAULT_COUNTRY", "id"),
		Language:      envOrDefault("DEFAULT_LANGUAGE", "id"),
		HTTPAddr:      envOrDefault("CILOK_HTTP_ADDR", ":8080"),
		Debug:         os.Getenv("CILOK_DEBUG") == "true",
	}

	timeout, err := envOrDefaultDuration("CILOK_GEO_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, errors.New("invalid CILOK_GEO_TIMEOUT")
	}
	cfg.GeoTimeout = timeout

	if cfg.OpenRouterKey == "" && cfg.GeminiKey == "" {
		return nil, errors.New("OPENROUTER_API_KEY or GEMINI_API_KEY is required")
	}

	return cfg, nil
}

// GeoSelection resolves the geocoding backend once from credential
// presence. Every geocoding call in a run uses this selection, which
// keeps address formatting consistent within a session.
func (c *Config) GeoSelection() geo.Selection {
	if c.GoogleMapsKey != "" {
		return geo.SelectionCommercial
	}
	return geo.SelectionFree
}

// AISelection resolves the completion backend: OpenRouter when its key is
// present, Gemini direct otherwise.
func (c *Config) AISelection() AIBackend {
	if c.OpenRouterKey != "" {
		return AIBackendOpenRouter
	}
	return AIBackendGemini
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, errors.New("duration must be positive")
	}
	return d, nil
}
