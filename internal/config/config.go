// Package config loads process configuration from the environment,
// grounded on the teacher's cmd/main.go getEnvOrDefault/godotenv.Load
// pattern.
package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every environment-derived setting the server needs.
type Config struct {
	ServerPort string

	DBHost string
	DBPort string
	DBUser string
	DBPass string
	DBName string
	DBSSLMode string

	JWTSecret string

	StandingsCacheTTL time.Duration
	BroadcastDepth    int

	SwissBacktrackBudget int
}

// Load reads a .env file if present (a missing one is only logged, not
// fatal -- matching the teacher) and layers environment variables with
// defaults over it.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("config: no .env file found, using process environment")
	}

	return Config{
		ServerPort: getEnvOrDefault("SERVER_PORT", "8082"),

		DBHost:    getEnvOrDefault("DB_HOST", "localhost"),
		DBPort:    getEnvOrDefault("DB_PORT", "5432"),
		DBUser:    getEnvOrDefault("DB_USER", "postgres"),
		DBPass:    getEnvOrDefault("DB_PASSWORD", "postgres"),
		DBName:    getEnvOrDefault("DB_NAME", "pawnengine"),
		DBSSLMode: getEnvOrDefault("DB_SSLMODE", "require"),

		JWTSecret: getEnvOrDefault("JWT_SECRET", "development-secret-change-me"),

		StandingsCacheTTL: getEnvDurationOrDefault("STANDINGS_CACHE_TTL", 2*time.Second),
		BroadcastDepth:    getEnvIntOrDefault("BROADCAST_DEPTH", 256),

		SwissBacktrackBudget: getEnvIntOrDefault("SWISS_BACKTRACK_BUDGET", 64),
	}
}

func getEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvIntOrDefault(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("config: invalid int for %s=%q, using default %d", key, v, fallback)
		return fallback
	}
	return n
}

func getEnvDurationOrDefault(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("config: invalid duration for %s=%q, using default %s", key, v, fallback)
		return fallback
	}
	return d
}
