// movies-service/internal/config/config.go
package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config — конфигурация процесса, собранная из переменных окружения.
type Config struct {
	HTTPPort              string
	ReviewsServiceBaseURL string
	ReviewsClientTimeout  time.Duration
	ReviewsClientRetries  int
	SeedOnStart           bool
}

// Load читает .env (если есть) и переменные окружения.
// Для всех значений есть значения по умолчанию, пригодные для локального запуска.
func Load(logger *slog.Logger) *Config {
	if err := godotenv.Load(); err == nil {
		logger.Info("Loaded configuration from .env file")
	}

	cfg := &Config{
		HTTPPort:              getEnv("HTTP_PORT", "3000"),
		ReviewsServiceBaseURL: getEnv("REVIEWS_SERVICE_BASE_URL", "http://localhost:3002"),
		ReviewsClientTimeout:  getDuration(logger, "REVIEWS_CLIENT_TIMEOUT", 5*time.Second),
		ReviewsClientRetries:  getInt(logger, "REVIEWS_CLIENT_MAX_RETRIES", 2),
		SeedOnStart:           os.Getenv("DB_SEED") != "",
	}

	if os.Getenv("REVIEWS_SERVICE_BASE_URL") == "" {
		logger.Warn("REVIEWS_SERVICE_BASE_URL not set, using default",
			slog.String("base_url", cfg.ReviewsServiceBaseURL))
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDuration(logger *slog.Logger, key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		logger.Warn("Invalid duration in environment, using default",
			slog.String("key", key), slog.String("value", value))
		return fallback
	}
	return parsed
}

func getInt(logger *slog.Logger, key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 0 {
		logger.Warn("Invalid integer in environment, using default",
			slog.String("key", key), slog.String("value", value))
		return fallback
	}
	return parsed
}
