package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Data modes select which upstream supplies the clinic list.
const (
	// DataModeDatabase resolves from the Postgres table with the static
	// snapshot file as fallback.
	DataModeDatabase = "database"

	// DataModeSelfContained resolves from the generative acquisition API
	// behind the TTL cache.
	DataModeSelfContained = "self_contained"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Gemini   GeminiConfig
	Data     DataConfig
	Logging  LoggingConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host string
	Port int
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// GeminiConfig holds generative acquisition API configuration
type GeminiConfig struct {
	APIKey       string
	Model        string
	RateLimitRPM int
	BurstLimit   int
}

// DataConfig holds data-resolution configuration
type DataConfig struct {
	Mode          string
	ClinicTable   string
	SnapshotPath  string
	CurationPath  string
	CacheTTL      time.Duration
	EnrichWorkers int
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Environment string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "vetlyst"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvAsInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Gemini: GeminiConfig{
			APIKey:       getEnv("GEMINI_API_KEY", ""),
			Model:        getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
			RateLimitRPM: getEnvAsInt("GEMINI_RATE_LIMIT_RPM", 60),
			BurstLimit:   getEnvAsInt("GEMINI_BURST_LIMIT", 5),
		},
		Data: DataConfig{
			Mode:          getEnv("DATA_MODE", DataModeDatabase),
			ClinicTable:   getEnv("CLINIC_TABLE", "clinics"),
			SnapshotPath:  getEnv("SNAPSHOT_PATH", "data/clinics.json"),
			CurationPath:  getEnv("CURATION_PATH", "config/curation_overrides.json"),
			CacheTTL:      time.Duration(getEnvAsInt("CACHE_TTL_HOURS", 24)) * time.Hour,
			EnrichWorkers: getEnvAsInt("ENRICH_WORKERS", 4),
		},
		Logging: LoggingConfig{
			Environment: getEnv("APP_ENV", "development"),
		},
	}

	if cfg.Data.Mode != DataModeDatabase && cfg.Data.Mode != DataModeSelfContained {
		return nil, fmt.Errorf("invalid DATA_MODE %q", cfg.Data.Mode)
	}

	return cfg, nil
}

// DatabaseDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) DatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// RedisAddr returns the Redis address
func (c *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
