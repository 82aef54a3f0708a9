package config

import (
	"os"
	"strconv"
	"time"

	"gopower/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server      ServerConfig
	Export      ExportConfig
	Sensitivity SensitivityConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port            string
	GinMode         string
	ShutdownTimeout time.Duration
}

// ExportConfig holds result export settings
type ExportConfig struct {
	OutputDir string
	ToolName  string
}

// SensitivityConfig holds sweep execution settings
type SensitivityConfig struct {
	MaxConcurrent int64
	MaxPoints     int
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port:            getEnvOrDefault("PORT", "8080"),
			GinMode:         getEnvOrDefault("GIN_MODE", "debug"),
			ShutdownTimeout: getEnvDurationOrDefault("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Export: ExportConfig{
			OutputDir: getEnvOrDefault("EXPORT_DIR", "."),
			ToolName:  getEnvOrDefault("EXPORT_TOOL_NAME", "gopower"),
		},
		Sensitivity: SensitivityConfig{
			MaxConcurrent: int64(getEnvIntOrDefault("SWEEP_MAX_CONCURRENT", 8)),
			MaxPoints:     getEnvIntOrDefault("SWEEP_MAX_POINTS", 1000),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("PORT must not be empty")
	}
	if _, err := strconv.Atoi(config.Server.Port); err != nil {
		return errors.ConfigInvalid("PORT must be numeric")
	}
	if config.Sensitivity.MaxConcurrent < 1 {
		return errors.ConfigInvalid("SWEEP_MAX_CONCURRENT must be at least 1")
	}
	if config.Sensitivity.MaxPoints < 2 {
		return errors.ConfigInvalid("SWEEP_MAX_POINTS must be at least 2")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
