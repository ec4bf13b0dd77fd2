package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the runtime settings, populated from environment variables.
type Config struct {
	LogLevel    string
	LogFormat   string
	Workers     int
	MetricsAddr string
	DatabaseURL string
}

// Load reads configuration from the environment, loading a .env file first
// when one is present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	workers, err := getenvInt("DECODE_WORKERS", runtime.NumCPU())
	if err != nil {
		return nil, err
	}
	if workers < 1 {
		return nil, fmt.Errorf("DECODE_WORKERS must be at least 1, got %d", workers)
	}

	return &Config{
		LogLevel:    getenvDefault("LOG_LEVEL", "info"),
		LogFormat:   getenvDefault("LOG_FORMAT", "text"),
		Workers:     workers,
		MetricsAddr: os.Getenv("METRICS_ADDR"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
	}, nil
}

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
