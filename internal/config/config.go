package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	Port          string
	Env           string
	MongoURI      string
	MongoDatabase string
	RedisURL      string // optional, enables rate limiting

	// Expiry sweep
	SweepInterval  time.Duration
	StaleThreshold time.Duration
}

// Load reads configuration from environment variables.
// In development, it loads from .env file if present.
// In production, it panics on missing required variables.
func Load() *Config {
	// Load .env file if it exists (for development)
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getEnv("PORT", "5000"),
		Env:            getEnv("ENV", "development"),
		MongoURI:       getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:  getEnv("MONGO_DATABASE", "batepapo"),
		RedisURL:       os.Getenv("REDIS_URL"),
		SweepInterval:  getDuration("SWEEP_INTERVAL", 15*time.Second),
		StaleThreshold: getDuration("STALE_THRESHOLD", 10*time.Second),
	}

	if cfg.Env == "production" && os.Getenv("MONGO_URI") == "" {
		panic("MONGO_URI is required in production")
	}

	return cfg
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}
