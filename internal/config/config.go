package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

// Storage type values accepted in STORAGE_TYPE.
const (
	StorageMemory = "memory"
	StorageSQLite = "sqlite"
)

// Config holds all configuration for the application
type Config struct {
	// Resource paths
	DataDir    string
	AssetsPath string

	// Persistence
	StorageType string // "memory" or "sqlite"

	// Elasticsearch archive (optional; disabled when URL is empty)
	ESURL           string
	ESUsername      string
	ESPassword      string
	ESIndexPrefix   string
	ArchiveInterval time.Duration

	// Environment
	Environment string // "development" or "production"
	LogLevel    string
}

// Load reads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		// Only return error if file exists but couldn't be loaded
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	// Get working directory for resource paths
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	cfg := &Config{
		DataDir:       getEnvWithDefault("DATA_DIR", filepath.Join(wd, "data")),
		AssetsPath:    getEnvWithDefault("ASSETS_PATH", filepath.Join(wd, "assets")),
		StorageType:   getEnvWithDefault("STORAGE_TYPE", StorageMemory),
		ESURL:         os.Getenv("ELASTICSEARCH_URL"),
		ESUsername:    os.Getenv("ELASTICSEARCH_USERNAME"),
		ESPassword:    os.Getenv("ELASTICSEARCH_PASSWORD"),
		ESIndexPrefix: getEnvWithDefault("ELASTICSEARCH_INDEX_PREFIX", "pipsbluff"),
		Environment:   getEnvWithDefault("ENVIRONMENT", "development"),
		LogLevel:      getEnvWithDefault("LOG_LEVEL", "INFO"),
	}

	interval := getEnvWithDefault("ARCHIVE_INTERVAL", "15m")
	cfg.ArchiveInterval, err = time.ParseDuration(interval)
	if err != nil {
		return nil, fmt.Errorf("invalid ARCHIVE_INTERVAL %q: %w", interval, err)
	}

	// Validate required fields
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	// Create data directory if it doesn't exist
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

// validate checks if all required configuration is present
func (c *Config) validate() error {
	if c.StorageType != StorageMemory && c.StorageType != StorageSQLite {
		return fmt.Errorf("STORAGE_TYPE must be %q or %q, got %q", StorageMemory, StorageSQLite, c.StorageType)
	}
	return nil
}

// DatabasePath returns the SQLite database file location.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "pipsbluff.db")
}

// ArchiveEnabled returns true if an Elasticsearch archive is configured.
func (c *Config) ArchiveEnabled() bool {
	return c.ESURL != ""
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// getEnvWithDefault returns environment variable value or default if not set
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
