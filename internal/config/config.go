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
	JWTIssuer    string
	JWTTTL       time.Duration
	SessionTTL   time.Duration
	BcryptCost   int
	RatesAPIURL  string
	RatesAPIKey  string
	RatesTimeout time.Duration
	CORSOrigins  []string
	LogLevel     string
}

// Load reads configuration from the environment and performs minimal validation.
func Load() (Config, error) {
	cfg := Config{
		Port:        fallback(os.Getenv("PORT"), "8080"),
		DatabaseURL: strings.TrimSpace(os.Getenv("DATABASE_URL")),
		JWTSecret:   strings.TrimSpace(os.Getenv("JWT_SECRET")),
		JWTIssuer:   fallback(os.Getenv("JWT_ISSUER"), "currency-exchange-be"),
		RatesAPIURL: fallback(os.Getenv("RATES_API_URL"), "https://api.exchangerate.host/latest"),
		RatesAPIKey: strings.TrimSpace(os.Getenv("RATES_API_KEY")),
		CORSOrigins: parseCSV(fallback(os.Getenv("CORS_ALLOWED_ORIGINS"), "*")),
		LogLevel:    fallback(os.Getenv("LOG_LEVEL"), "info"),
	}

	cfg.JWTTTL = durationFromEnv("JWT_TTL_MINUTES", time.Minute, 15)
	cfg.SessionTTL = durationFromEnv("SESSION_TTL_HOURS", time.Hour, 24)
	cfg.RatesTimeout = durationFromEnv("RATES_TIMEOUT_SECONDS", time.Second, 10)

	// Zero means "library default"; the hasher resolves it.
	if cost, err := strconv.Atoi(fallback(os.Getenv("BCRYPT_COST"), "0")); err == nil && cost > 0 {
		cfg.BcryptCost = cost
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

func durationFromEnv(key string, unit time.Duration, def int) time.Duration {
	if n, err := strconv.Atoi(fallback(os.Getenv(key), "")); err == nil && n > 0 {
		return time.Duration(n) * unit
	}
	return time.Duration(def) * unit
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
