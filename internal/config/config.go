package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Outbox backends
const (
	OutboxMemory = "memory"
	OutboxRedis  = "redis"
	OutboxNone   = "none" // failed relays are dropped
)

type Config struct {
	// Environment
	GoEnv string `env:"GO_ENV" default:"development"`

	// Local API
	HTTPAddr       string `env:"HTTP_ADDR" default:"127.0.0.1:8090"`
	MetricsEnabled bool   `env:"METRICS_ENABLED" default:"true"`

	// Sync server (overridable at runtime through the persisted endpoint setting)
	SyncHost string `env:"SYNC_HOST" default:"localhost"`
	SyncPort int    `env:"SYNC_PORT" default:"8080"`

	// Connection timings
	ConnectTimeout time.Duration `env:"CONNECT_TIMEOUT" default:"10s"`
	ReconnectDelay time.Duration `env:"RECONNECT_DELAY" default:"5s"`
	WriteTimeout   time.Duration `env:"WRITE_TIMEOUT" default:"10s"`
	PingInterval   time.Duration `env:"PING_INTERVAL" default:"0s"` // 0 disables keepalive pings

	// Local store
	DatabaseURL string `env:"DATABASE_URL" default:"villahub.db"`

	// Outbox
	OutboxBackend   string  `env:"OUTBOX_BACKEND" default:"memory"`
	OutboxCapacity  int     `env:"OUTBOX_CAPACITY" default:"1000"`
	OutboxDrainRate float64 `env:"OUTBOX_DRAIN_RATE" default:"20"`

	// Redis (only used by the redis outbox)
	RedisURL       string `env:"REDIS_URL" default:"redis://localhost:6379/0"`
	RedisPassword  string `env:"REDIS_PASSWORD"`
	RedisOutboxKey string `env:"REDIS_OUTBOX_KEY" default:"villahub:outbox"`

	// Logging
	LogLevel     string `env:"LOG_LEVEL" default:"info"`
	LogFormat    string `env:"LOG_FORMAT" default:"text"`
	LogFile      string `env:"LOG_FILE"`
	LogMaxSizeMB int    `env:"LOG_MAX_SIZE_MB" default:"10"`
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// a missing .env file is fine, system env vars still apply
	if err := godotenv.Load(".env"); err != nil {
		slog.Debug("dotenv_not_loaded", "error", err)
	}

	config := &Config{}

	if err := loadEnvString(&config.GoEnv, "GO_ENV", "development"); err != nil {
		return nil, err
	}

	// Local API
	if err := loadEnvString(&config.HTTPAddr, "HTTP_ADDR", "127.0.0.1:8090"); err != nil {
		return nil, err
	}
	if err := loadEnvBool(&config.MetricsEnabled, "METRICS_ENABLED", true); err != nil {
		return nil, err
	}

	// Sync server
	if err := loadEnvString(&config.SyncHost, "SYNC_HOST", "localhost"); err != nil {
		return nil, err
	}
	if err := loadEnvInt(&config.SyncPort, "SYNC_PORT", 8080); err != nil {
		return nil, err
	}

	// Connection timings
	if err := loadEnvDuration(&config.ConnectTimeout, "CONNECT_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if err := loadEnvDuration(&config.ReconnectDelay, "RECONNECT_DELAY", 5*time.Second); err != nil {
		return nil, err
	}
	if err := loadEnvDuration(&config.WriteTimeout, "WRITE_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if err := loadEnvDuration(&config.PingInterval, "PING_INTERVAL", 0); err != nil {
		return nil, err
	}

	// Local store
	if err := loadEnvString(&config.DatabaseURL, "DATABASE_URL", "villahub.db"); err != nil {
		return nil, err
	}

	// Outbox
	if err := loadEnvString(&config.OutboxBackend, "OUTBOX_BACKEND", "memory"); err != nil {
		return nil, err
	}
	if err := loadEnvInt(&config.OutboxCapacity, "OUTBOX_CAPACITY", 1000); err != nil {
		return nil, err
	}
	if err := loadEnvFloat(&config.OutboxDrainRate, "OUTBOX_DRAIN_RATE", 20); err != nil {
		return nil, err
	}

	// Redis
	if err := loadEnvString(&config.RedisURL, "REDIS_URL", "redis://localhost:6379/0"); err != nil {
		return nil, err
	}
	if err := loadEnvString(&config.RedisPassword, "REDIS_PASSWORD", ""); err != nil {
		return nil, err
	}
	if err := loadEnvString(&config.RedisOutboxKey, "REDIS_OUTBOX_KEY", "villahub:outbox"); err != nil {
		return nil, err
	}

	// Logging
	if err := loadEnvString(&config.LogLevel, "LOG_LEVEL", "info"); err != nil {
		return nil, err
	}
	if err := loadEnvString(&config.LogFormat, "LOG_FORMAT", "text"); err != nil {
		return nil, err
	}
	if err := loadEnvString(&config.LogFile, "LOG_FILE", ""); err != nil {
		return nil, err
	}
	if err := loadEnvInt(&config.LogMaxSizeMB, "LOG_MAX_SIZE_MB", 10); err != nil {
		return nil, err
	}
	return config, nil
}

// Helper functions for type conversion and validation
func loadEnvString(target *string, key, defaultValue string) error {
	if value := os.Getenv(key); value != "" {
		*target = value
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvInt(target *int, key string, defaultValue int) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer value for %s: %w", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvFloat(target *float64, key string, defaultValue float64) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid float value for %s: %w", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvBool(target *bool, key string, defaultValue bool) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean value for %s: %w", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvDuration(target *time.Duration, key string, defaultValue time.Duration) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration value for %s: %w", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

// Validate performs validation on the loaded configuration
func (c *Config) Validate() error {
	var errors []string

	if strings.TrimSpace(c.SyncHost) == "" {
		errors = append(errors, "SYNC_HOST must not be empty")
	}
	if c.SyncPort < 1 || c.SyncPort > 65535 {
		errors = append(errors, "SYNC_PORT must be between 1 and 65535")
	}

	if c.ConnectTimeout <= 0 {
		errors = append(errors, "CONNECT_TIMEOUT must be positive")
	}
	if c.ReconnectDelay <= 0 {
		errors = append(errors, "RECONNECT_DELAY must be positive")
	}
	if c.WriteTimeout <= 0 {
		errors = append(errors, "WRITE_TIMEOUT must be positive")
	}
	if c.PingInterval < 0 {
		errors = append(errors, "PING_INTERVAL must not be negative")
	}

	validBackends := []string{OutboxMemory, OutboxRedis, OutboxNone}
	if !contains(validBackends, c.OutboxBackend) {
		errors = append(errors, fmt.Sprintf("OUTBOX_BACKEND must be one of: %s", strings.Join(validBackends, ", ")))
	}
	if c.OutboxCapacity < 1 {
		errors = append(errors, "OUTBOX_CAPACITY must be at least 1")
	}
	if c.OutboxDrainRate <= 0 {
		errors = append(errors, "OUTBOX_DRAIN_RATE must be positive")
	}

	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, c.LogLevel) {
		errors = append(errors, fmt.Sprintf("LOG_LEVEL must be one of: %s", strings.Join(validLogLevels, ", ")))
	}

	validLogFormats := []string{"text", "json"}
	if !contains(validLogFormats, c.LogFormat) {
		errors = append(errors, fmt.Sprintf("LOG_FORMAT must be one of: %s", strings.Join(validLogFormats, ", ")))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errors, "; "))
	}

	return nil
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.GoEnv == "development"
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.GoEnv == "production"
}

// IsPostgres reports whether DATABASE_URL points at a PostgreSQL server
// instead of a local SQLite file.
func (c *Config) IsPostgres() bool {
	return strings.HasPrefix(c.DatabaseURL, "postgres://") || strings.HasPrefix(c.DatabaseURL, "postgresql://")
}

// Helper function to check if slice contains a string
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
