package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"clinic-appointments/appointment"

	"github.com/joho/godotenv"
)

// Storage backends understood by STORAGE_BACKEND.
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// ID strategies understood by ID_STRATEGY.
const (
	IDStrategyUUID      = "uuid"
	IDStrategyTimestamp = "timestamp"
)

// Config holds application configuration
type Config struct {
	Port            string
	LogLevel        string
	StorageBackend  string
	StorageKey      string
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	PostgresDSN     string
	IDStrategy      string
	MetricsEnabled  bool
	ShutdownTimeout time.Duration
}

// Load reads an optional .env file and then the process environment.
func Load() *Config {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv reads configuration from environment variables only.
func FromEnv() *Config {
	return &Config{
		Port:            getEnv("PORT", "8080"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		StorageBackend:  strings.ToLower(strings.TrimSpace(getEnv("STORAGE_BACKEND", BackendMemory))),
		StorageKey:      getEnv("STORAGE_KEY", appointment.DefaultKey),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		RedisDB:         getEnvAsInt("REDIS_DB", 0),
		PostgresDSN:     getEnv("POSTGRES_DSN", ""),
		IDStrategy:      strings.ToLower(strings.TrimSpace(getEnv("ID_STRATEGY", IDStrategyUUID))),
		MetricsEnabled:  getEnvAsBool("METRICS_ENABLED", true),
		ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

// Validate reports configuration that cannot start the service.
func (c *Config) Validate() error {
	switch c.StorageBackend {
	case BackendMemory, BackendRedis:
	case BackendPostgres:
		if c.PostgresDSN == "" {
			return errors.New("POSTGRES_DSN is required for the postgres backend")
		}
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.StorageBackend)
	}
	switch c.IDStrategy {
	case IDStrategyUUID, IDStrategyTimestamp:
	default:
		return fmt.Errorf("unknown ID_STRATEGY %q", c.IDStrategy)
	}
	if c.StorageKey == "" {
		return errors.New("STORAGE_KEY must not be empty")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
