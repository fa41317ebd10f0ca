package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config represents the complete application configuration
type Config struct {
	Results  ResultsConfig
	Server   ServerConfig
	Database DatabaseConfig
	Export   ExportConfig
}

// ResultsConfig locates the self-play results to analyze
type ResultsConfig struct {
	Dir string
}

// ServerConfig holds report server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// DatabaseConfig holds the optional report archive connection. An
// empty URL disables archiving and historical comparison.
type DatabaseConfig struct {
	URL          string
	HistoryLimit int
}

// ExportConfig holds report export settings
type ExportConfig struct {
	ExcelFile string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Results: ResultsConfig{
			Dir: getEnvOrDefault("RESULTS_DIR", "selfplay_results"),
		},
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			GinMode: getEnvOrDefault("GIN_MODE", "release"),
		},
		Database: DatabaseConfig{
			URL:          os.Getenv("DATABASE_URL"),
			HistoryLimit: getEnvIntOrDefault("HISTORY_LIMIT", 5),
		},
		Export: ExportConfig{
			ExcelFile: os.Getenv("EXPORT_XLSX"),
		},
	}

	if err := validate(config); err != nil {
		return nil, err
	}
	return config, nil
}

func validate(c *Config) error {
	if c.Results.Dir == "" {
		return fmt.Errorf("RESULTS_DIR cannot be empty")
	}
	if c.Database.HistoryLimit <= 0 {
		return fmt.Errorf("HISTORY_LIMIT must be positive, got %d", c.Database.HistoryLimit)
	}
	return nil
}

func getEnvOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvIntOrDefault(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
