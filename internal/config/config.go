package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds runtime configuration sourced from env vars.
type Config struct {
	Port         string
	DatabaseURL  string
	JWTSecret    string
	SessionTTL   time.Duration
	AppBaseURL   string
	ResendAPIKey string
	EmailFrom    string
	Environment  string
	CORSOrigins  []string
}

// Load reads configuration from the environment and performs minimal validation.
func Load() (Config, error) {
	cfg := Config{
		Port:         fallback(os.Getenv("PORT"), "8080"),
		DatabaseURL:  strings.TrimSpace(os.Getenv("DATABASE_URL")),
		JWTSecret:    strings.TrimSpace(os.Getenv("JWT_SECRET")),
		AppBaseURL:   fallback(os.Getenv("APP_BASE_URL"), "http://localhost:3000"),
		ResendAPIKey: strings.TrimSpace(os.Getenv("RESEND_API_KEY")),
		EmailFrom:    fallback(os.Getenv("EMAIL_FROM"), "Portal <onboarding@resend.dev>"),
		Environment:  fallback(os.Getenv("APP_ENV"), "development"),
		CORSOrigins:  parseCSV(fallback(os.Getenv("CORS_ALLOWED_ORIGINS"), "*")),
	}

	hours := fallback(os.Getenv("SESSION_TTL_HOURS"), "168")
	if ttlHours, err := strconv.Atoi(hours); err == nil && ttlHours > 0 {
		cfg.SessionTTL = time.Duration(ttlHours) * time.Hour
	} else {
		cfg.SessionTTL = 168 * time.Hour
	}

	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET is required")
	}

	return cfg, nil
}

// HTTPAddress returns the host:port pair for the HTTP server to bind to.
func (c Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

// IsProduction reports whether secure cookie handling applies.
func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}

func parseCSV(input string) []string {
	parts := strings.Split(input, ",")
	var out []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
