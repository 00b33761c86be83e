package config

import (
	"fmt"
	"os"
	"time"
)

// Config holds all process-wide settings. It is built once at startup and
// never mutated afterwards; every component that needs a setting receives
// the struct (or a field of it) through its constructor.
type Config struct {
	Port             string
	DatabaseURL      string
	JWTSecret        string
	ModelAPIURL      string
	ModelAPIBatchURL string
	AMQPURL          string

	ScoreTimeout      time.Duration
	BatchScoreTimeout time.Duration
}

// Load reads configuration from the environment. Callers are expected to
// have loaded any .env file (godotenv) before calling this.
func Load() (*Config, error) {
	cfg := &Config{
		Port:              getenv("PORT", "8080"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		ModelAPIURL:       os.Getenv("MODEL_API_URL"),
		ModelAPIBatchURL:  os.Getenv("MODEL_API_BATCH_URL"),
		AMQPURL:           os.Getenv("AMQP_URL"),
		ScoreTimeout:      8 * time.Second,
		BatchScoreTimeout: 20 * time.Second,
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = fmt.Sprintf(
			"postgres://%s:%s@%s:%s/%s?sslmode=disable",
			os.Getenv("DB_USER"),
			os.Getenv("DB_PASSWORD"),
			getenv("DB_HOST", "localhost"),
			getenv("DB_PORT", "5432"),
			os.Getenv("DB_NAME"),
		)
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET must be set")
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
