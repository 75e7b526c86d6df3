package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Env      string
	Port     string
	Database DatabaseConfig
	Crawler  CrawlerConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Database string
	Alter    bool
}

// CrawlerConfig holds the external price source settings
type CrawlerConfig struct {
	SourceURL          string        // direct price source
	RelayURL           string        // fallback relay, receives ?url=<escaped source>
	DirectTimeout      time.Duration // budget for the direct attempt
	RelayTimeout       time.Duration // budget for the relay attempt
	CheckCooldown      time.Duration // minimum gap between update cycles
	FreshnessWindow    time.Duration // persisted prices younger than this skip the fetch
	AutoUpdateEnabled  bool
	AutoUpdateInterval time.Duration
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	return &Config{
		Env:  getEnv("APP_ENV", "development"),
		Port: getEnv("PORT", "3210"),
		Database: DatabaseConfig{
			Host:     getEnv("PG_HOST", "localhost"),
			Port:     getEnv("PG_PORT", "5432"),
			Username: getEnv("PG_USERNAME", "postgres"),
			Password: os.Getenv("PG_PASSWORD"),
			Database: getEnv("PG_DATABASE", "silvershop"),
			Alter:    getEnv("DB_ALTER", "false") == "true",
		},
		Crawler: CrawlerConfig{
			SourceURL:          getEnv("PRICE_SOURCE_URL", "https://silver.phuquygroup.vn"),
			RelayURL:           getEnv("PRICE_RELAY_URL", "https://api.allorigins.win/raw"),
			DirectTimeout:      getDuration("PRICE_DIRECT_TIMEOUT", 15*time.Second),
			RelayTimeout:       getDuration("PRICE_RELAY_TIMEOUT", 20*time.Second),
			CheckCooldown:      getDuration("PRICE_CHECK_COOLDOWN", time.Minute),
			FreshnessWindow:    getDuration("PRICE_FRESHNESS_WINDOW", time.Minute),
			AutoUpdateEnabled:  getEnv("PRICE_AUTO_UPDATE", "true") == "true",
			AutoUpdateInterval: getDuration("PRICE_AUTO_UPDATE_INTERVAL", time.Minute),
		},
	}, nil
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDuration reads a duration env var, accepting Go syntax ("30s") or
// plain seconds ("30").
func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}
