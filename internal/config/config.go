package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Session storage
	SessionBackend    string
	SQLiteDBPath      string
	SessionKey        string
	SessionQuotaBytes int
	SchemaVersion     int

	// Guest identity
	GuestUserID string

	// AMQP change events, disabled when AMQPURL is empty
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Logging
	LogLevel  string
	LogFormat string

	// Dashboard memoization
	DashboardCacheSize int
	DashboardCacheTTL  time.Duration
}

var (
	validBackends   = []string{"memory", "sqlite"}
	validLogLevels  = []string{"debug", "info", "warn", "error"}
	validLogFormats = []string{"text", "json"}
)

func Load() *Config {
	return &Config{
		SessionBackend:    getEnv("SESSION_BACKEND", "memory"),
		SQLiteDBPath:      getEnv("SQLITE_DB_PATH", "./data/fintrack-session.db"),
		SessionKey:        getEnv("SESSION_KEY", "fintrack-guest-store"),
		SessionQuotaBytes: getEnvInt("SESSION_QUOTA_BYTES", 5<<20),
		SchemaVersion:     getEnvInt("SCHEMA_VERSION", 1),

		GuestUserID: getEnv("GUEST_USER_ID", "guest"),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "fintrack"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "guest_changes"),

		LogLevel:  strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat: strings.ToLower(getEnv("LOG_FORMAT", "text")),

		DashboardCacheSize: getEnvInt("DASHBOARD_CACHE_SIZE", 32),
		DashboardCacheTTL:  getEnvDuration("DASHBOARD_CACHE_TTL", 5*time.Minute),
	}
}

// Validate validates the configuration and returns an error listing every
// problem found
func (c *Config) Validate() error {
	var errors []string

	if !slices.Contains(validBackends, c.SessionBackend) {
		errors = append(errors, fmt.Sprintf("invalid session backend '%s': must be one of %v", c.SessionBackend, validBackends))
	}

	if c.SessionBackend == "sqlite" {
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		} else {
			dir := filepath.Dir(c.SQLiteDBPath)
			if dir != "." && dir != "" {
				if _, err := os.Stat(dir); os.IsNotExist(err) {
					if err := os.MkdirAll(dir, 0755); err != nil {
						errors = append(errors, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
					}
				}
			}
		}
	}

	if strings.TrimSpace(c.SessionKey) == "" {
		errors = append(errors, "session key cannot be empty")
	}
	if c.SessionQuotaBytes < 0 {
		errors = append(errors, fmt.Sprintf("invalid session quota %d: must not be negative", c.SessionQuotaBytes))
	}
	if c.SchemaVersion < 1 {
		errors = append(errors, fmt.Sprintf("invalid schema version %d: must be at least 1", c.SchemaVersion))
	}

	if !strings.HasPrefix(strings.ToLower(c.GuestUserID), "guest") {
		errors = append(errors, fmt.Sprintf("invalid guest user id '%s': must start with 'guest'", c.GuestUserID))
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
	}

	if !slices.Contains(validLogLevels, c.LogLevel) {
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of %v", c.LogLevel, validLogLevels))
	}
	if !slices.Contains(validLogFormats, c.LogFormat) {
		errors = append(errors, fmt.Sprintf("invalid log format '%s': must be one of %v", c.LogFormat, validLogFormats))
	}

	if c.DashboardCacheSize < 1 {
		errors = append(errors, fmt.Sprintf("invalid dashboard cache size %d: must be at least 1", c.DashboardCacheSize))
	} else if c.DashboardCacheSize > 1000 {
		errors = append(errors, fmt.Sprintf("invalid dashboard cache size %d: must be at most 1000", c.DashboardCacheSize))
	}
	if c.DashboardCacheTTL < 0 {
		errors = append(errors, fmt.Sprintf("invalid dashboard cache TTL %v: must not be negative", c.DashboardCacheTTL))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
