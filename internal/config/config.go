package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv         string
	Port           string
	AllowedOrigins string

	DatabaseURL string
	RedisURL    string

	JWTSecret     string
	JWTTTL        time.Duration
	ResetTokenTTL time.Duration

	MeiliSearchHost string
	MeiliMasterKey  string

	SendgridAPIKey    string
	SendgridFromEmail string
	FrontendURL       string

	RateLimitAuth time.Duration
}

func Load() (*Config, error) {
	// Don't fail if .env doesn't exist (might be prod env vars)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:3000"),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),

		JWTSecret: getEnv("JWT_SECRET", "change-me"),

		MeiliSearchHost: os.Getenv("MEILISEARCH_HOST"),
		MeiliMasterKey:  os.Getenv("MEILI_MASTER_KEY"),

		SendgridAPIKey:    os.Getenv("SENDGRID_API_KEY"),
		SendgridFromEmail: os.Getenv("SENDGRID_FROM_EMAIL"),
		FrontendURL:       getEnv("FRONTEND_URL", "http://localhost:3000"),
	}

	cfg.JWTTTL = time.Duration(getEnvInt("JWT_TTL_MINUTES", 60)) * time.Minute
	cfg.ResetTokenTTL = time.Duration(getEnvInt("RESET_TOKEN_TTL_MINUTES", 60)) * time.Minute

	var err error
	cfg.RateLimitAuth, err = time.ParseDuration(getEnv("RATE_LIMIT_AUTH", "1s"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_AUTH: %w", err)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}
