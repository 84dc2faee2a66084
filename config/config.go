package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything main needs to wire the server.
type Config struct {
	Port string

	// Database
	DBDriver    string // "postgres" or "sqlite"
	DatabaseURL string
	SQLitePath  string

	// HTTP limits
	BodyLimitBytes  int
	AllowedOrigins  string
	RateLimitMax    int
	RateLimitWindow time.Duration

	// Redis (optional, shared limiter storage)
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Plan parser (optional)
	GeminiAPIKey string
	GeminiModel  string

	// Stripe webhook (optional)
	StripeWebhookSecret string
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first if present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:                getEnv("PORT", "8080"),
		DBDriver:            strings.ToLower(getEnv("DB_DRIVER", "postgres")),
		SQLitePath:          getEnv("SQLITE_PATH", "data/consultancy.db"),
		AllowedOrigins:      getEnv("ALLOWED_ORIGINS", "*"),
		RateLimitMax:        envInt("RATE_LIMIT_MAX", 60),
		RateLimitWindow:     time.Duration(envInt("RATE_LIMIT_WINDOW_SECONDS", 60)) * time.Second,
		RedisAddr:           getEnv("REDIS_ADDR", ""),
		RedisPassword:       getEnv("REDIS_PASSWORD", ""),
		RedisDB:             envInt("REDIS_DB", 0),
		GeminiAPIKey:        getEnv("GEMINI_API_KEY", ""),
		GeminiModel:         getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		StripeWebhookSecret: getEnv("STRIPE_WEBHOOK_SECRET", ""),
	}

	// Fiber default BodyLimit is 4 MiB; BODY_LIMIT_BYTES wins over BODY_LIMIT_MB.
	cfg.BodyLimitBytes = envInt("BODY_LIMIT_BYTES", 0)
	if cfg.BodyLimitBytes <= 0 {
		cfg.BodyLimitBytes = envInt("BODY_LIMIT_MB", 4) * 1024 * 1024
	}

	switch cfg.DBDriver {
	case "postgres":
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
		if cfg.DatabaseURL == "" {
			user, ok := os.LookupEnv("DB_USER")
			if !ok {
				return nil, fmt.Errorf("missing required environment variable: DATABASE_URL or DB_USER")
			}
			cfg.DatabaseURL = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
				getEnv("DB_HOST", "localhost"), user, os.Getenv("DB_PASSWORD"),
				getEnv("DB_NAME", "consultancy"), getEnv("DB_PORT", "5432"))
		}
	case "sqlite":
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q (want postgres or sqlite)", cfg.DBDriver)
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

// envInt reads an int env var with a default fallback.
func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
