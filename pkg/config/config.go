// ABOUTME: Configuration management for the application with environment variable support
// ABOUTME: Defines configuration structures for storage, cache, fetching, and logging

package config

import (
	"errors"
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	// Storage contains persistence configuration
	Storage StorageConfig

	// Cache contains fetch-cache configuration
	Cache CacheConfig

	// Fetch contains feed download configuration
	Fetch FetchConfig

	// Log contains logging configuration
	Log LogConfig
}

// StorageConfig holds persistence configuration
type StorageConfig struct {
	// DBPath is the SQLite database file. Empty means the default
	// location under the user's home directory.
	DBPath string
}

// CacheConfig holds fetch-cache backend configuration
type CacheConfig struct {
	// Type specifies the cache backend (none/memory/redis)
	Type string

	// Redis contains Redis-specific configuration
	Redis RedisConfig
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// Address is the Redis server address
	Address string

	// Password is the Redis authentication password
	Password string

	// DB is the Redis database number
	DB int
}

// FetchConfig holds feed download configuration
type FetchConfig struct {
	// TimeoutSeconds bounds each HTTP request
	TimeoutSeconds int

	// Workers caps concurrent feed syncs
	Workers int

	// RequestsPerSecond caps outbound fetches. Zero disables the limit.
	RequestsPerSecond float64
}

// LogConfig holds logging configuration
type LogConfig struct {
	// Level is the minimum log level (debug/info/warn/error)
	Level string

	// File sends logs to a rotating file when set, stderr otherwise
	File string
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Storage: StorageConfig{
			DBPath: getEnvOrDefault("FEEDSYNC_DB", ""),
		},
		Cache: CacheConfig{
			Type: getEnvOrDefault("FEEDSYNC_CACHE", "memory"),
			Redis: RedisConfig{
				Address:  getEnvOrDefault("FEEDSYNC_REDIS_ADDRESS", "localhost:6379"),
				Password: getEnvOrDefault("FEEDSYNC_REDIS_PASSWORD", ""),
				DB:       getEnvAsIntOrDefault("FEEDSYNC_REDIS_DB", 0),
			},
		},
		Fetch: FetchConfig{
			TimeoutSeconds:    getEnvAsIntOrDefault("FEEDSYNC_FETCH_TIMEOUT", 30),
			Workers:           getEnvAsIntOrDefault("FEEDSYNC_SYNC_WORKERS", 8),
			RequestsPerSecond: getEnvAsFloatOrDefault("FEEDSYNC_FETCH_RPS", 0),
		},
		Log: LogConfig{
			Level: getEnvOrDefault("FEEDSYNC_LOG_LEVEL", "info"),
			File:  getEnvOrDefault("FEEDSYNC_LOG_FILE", ""),
		},
	}

	return cfg, nil
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault returns the environment variable as int or a default
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsFloatOrDefault returns the environment variable as float64 or a default
func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.Cache.Type {
	case "none", "memory", "redis":
	default:
		return errors.New("cache type must be 'none', 'memory', or 'redis'")
	}

	if c.Cache.Type == "redis" && c.Cache.Redis.Address == "" {
		return errors.New("redis address cannot be empty when using redis cache")
	}

	if c.Fetch.TimeoutSeconds < 1 {
		return errors.New("fetch timeout must be at least 1 second")
	}

	if c.Fetch.Workers < 1 {
		return errors.New("sync workers must be at least 1")
	}

	if c.Fetch.RequestsPerSecond < 0 {
		return errors.New("fetch rate limit cannot be negative")
	}

	return nil
}
