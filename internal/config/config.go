// Package config provides configuration loading from environment variables.
package config

import (
	"os"
	"strconv"
	"time"
)

// Tool output limit defaults.
const (
	DefaultSearchLimitValue = 5
	DefaultTraceLimitValue  = 3
)

// Config holds all configuration for the MCP server.
type Config struct {
	APIKey      string // STACK_EXCHANGE_API_KEY, optional; absence lowers quota
	AccessToken string // STACK_EXCHANGE_ACCESS_TOKEN, optional
	Site        string // STACK_EXCHANGE_SITE, default "stackoverflow"
	BaseURL     string // STACK_EXCHANGE_BASE_URL, default the public 2.3 API

	HTTPClientTimeout time.Duration // HTTP_CLIENT_TIMEOUT_MS, default 30000ms (30s)
	RequestsPerSecond float64       // REQUESTS_PER_SECOND, default 25
	RequestBurst      int           // REQUEST_BURST, default 5
	RetryMaxAttempts  int           // RETRY_MAX_ATTEMPTS, default 2
	RetryBaseDelay    time.Duration // RETRY_BASE_DELAY_MS, default 500ms
	RetryMaxDelay     time.Duration // RETRY_MAX_DELAY_MS, default 30000ms (30s)

	DefaultPageSize    int // DEFAULT_PAGE_SIZE, default 5 (API max: 100)
	DefaultSearchLimit int // DEFAULT_SEARCH_LIMIT, default 5
	DefaultTraceLimit  int // DEFAULT_TRACE_LIMIT, default 3
	ThreadCacheItems   int // THREAD_CACHE_MAX_ITEMS, default 256
	FetchWorkers       int // FETCH_WORKERS, default 4

	// Logging configuration
	LogLevel      string // LOG_LEVEL, default "info"
	LogFile       string // LOG_FILE, default "" (stderr only)
	LogMaxSizeMB  int    // LOG_MAX_SIZE_MB, default 10
	LogMaxBackups int    // LOG_MAX_BACKUPS, default 3
	LogMaxAgeDays int    // LOG_MAX_AGE_DAYS, default 28
	LogCompress   bool   // LOG_COMPRESS, default true
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		APIKey:      getEnvString("STACK_EXCHANGE_API_KEY", ""),
		AccessToken: getEnvString("STACK_EXCHANGE_ACCESS_TOKEN", ""),
		Site:        getEnvString("STACK_EXCHANGE_SITE", "stackoverflow"),
		BaseURL:     getEnvString("STACK_EXCHANGE_BASE_URL", ""),

		HTTPClientTimeout: getEnvDurationMs("HTTP_CLIENT_TIMEOUT_MS", 30000),
		RequestsPerSecond: getEnvFloat("REQUESTS_PER_SECOND", 25),
		RequestBurst:      getEnvInt("REQUEST_BURST", 5),
		RetryMaxAttempts:  getEnvInt("RETRY_MAX_ATTEMPTS", 2),
		RetryBaseDelay:    getEnvDurationMs("RETRY_BASE_DELAY_MS", 500),
		RetryMaxDelay:     getEnvDurationMs("RETRY_MAX_DELAY_MS", 30000),

		DefaultPageSize:    getEnvInt("DEFAULT_PAGE_SIZE", 5),
		DefaultSearchLimit: getEnvInt("DEFAULT_SEARCH_LIMIT", DefaultSearchLimitValue),
		DefaultTraceLimit:  getEnvInt("DEFAULT_TRACE_LIMIT", DefaultTraceLimitValue),
		ThreadCacheItems:   getEnvInt("THREAD_CACHE_MAX_ITEMS", 256),
		FetchWorkers:       getEnvInt("FETCH_WORKERS", 4),

		LogLevel:      getEnvString("LOG_LEVEL", "info"),
		LogFile:       getEnvString("LOG_FILE", ""),
		LogMaxSizeMB:  getEnvInt("LOG_MAX_SIZE_MB", 10),
		LogMaxBackups: getEnvInt("LOG_MAX_BACKUPS", 3),
		LogMaxAgeDays: getEnvInt("LOG_MAX_AGE_DAYS", 28),
		LogCompress:   getEnvBool("LOG_COMPRESS", true),
	}
}

func getEnvBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		switch v {
		case "1", "true", "yes", "on":
			return true
		case "0", "false", "no", "off":
			return false
		}
	}
	return defaultVal
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvDurationMs(key string, defaultMs int) time.Duration {
	ms := getEnvInt(key, defaultMs)
	return time.Duration(ms) * time.Millisecond
}
