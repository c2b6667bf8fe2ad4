// Package config loads runtime settings from the environment and an optional .env file.
package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	Addr       string // PRT_ADDR, listen address for serve
	ResultsDir string // PRT_RESULTS_DIR, where web records are written
	SessionDB  string // PRT_SESSION_DB, SQLite file for web sessions; empty keeps them in memory
	CookieName string // PRT_COOKIE_NAME
	LogLevel   string // LOG_LEVEL: debug, info, warn, error
}

// Defaults.
const (
	DefaultAddr       = ":5000"
	DefaultResultsDir = "results"
	DefaultCookieName = "prt_session"
	DefaultLogLevel   = "info"
)

// Load reads .env from the working directory if present, then the environment.
// Variables already set in the environment win over .env entries.
func Load() (*Config, error) {
	// A missing .env is normal.
	_ = godotenv.Load()
	return FromEnv(), nil
}

// LoadFile is Load with an explicit .env path; the file must exist.
func LoadFile(path string) (*Config, error) {
	if err := godotenv.Load(path); err != nil {
		return nil, err
	}
	return FromEnv(), nil
}

// FromEnv builds a Config from the current environment only.
func FromEnv() *Config {
	logLevel := getEnvOrDefault("LOG_LEVEL", DefaultLogLevel)
	// DEBUG flag overrides log level
	if os.Getenv("DEBUG") == "1" {
		logLevel = "debug"
	}
	return &Config{
		Addr:       getEnvOrDefault("PRT_ADDR", DefaultAddr),
		ResultsDir: getEnvOrDefault("PRT_RESULTS_DIR", DefaultResultsDir),
		SessionDB:  os.Getenv("PRT_SESSION_DB"),
		CookieName: getEnvOrDefault("PRT_COOKIE_NAME", DefaultCookieName),
		LogLevel:   logLevel,
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
