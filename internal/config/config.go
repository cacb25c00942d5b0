package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Host               string
	Port               string
	RequestTimeout     time.Duration
	ImageFetchTimeout  time.Duration
	TransformTimeout   time.Duration
	MaxRequestBodySize int64
	BatchWorkers       int
	HistoryLimit       int

	// Optional Azure persistence of transformed images. All three must be
	// set together, or all left empty.
	AzureAccountName     string
	AzureAccountKey      string
	AzureResultContainer string
}

func (c *Config) ServerAddress() string {
	host := strings.TrimSpace(c.Host)
	port := strings.TrimSpace(c.Port)
	return net.JoinHostPort(host, port)
}

// AzureEnabled reports whether transformed images should be persisted to
// blob storage.
func (c *Config) AzureEnabled() bool {
	return c.AzureAccountName != "" && c.AzureAccountKey != "" && c.AzureResultContainer != ""
}

func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Host:                 getEnvOrDefault("HOST", "0.0.0.0"),
		Port:                 getEnvOrDefault("PORT", "8080"),
		RequestTimeout:       parseDurationOrDefault("REQUEST_TIMEOUT", 30*time.Second),
		ImageFetchTimeout:    parseDurationOrDefault("IMAGE_FETCH_TIMEOUT", 15*time.Second),
		TransformTimeout:     parseDurationOrDefault("TRANSFORM_TIMEOUT", 20*time.Second),
		MaxRequestBodySize:   parseIntOrDefault("MAX_REQUEST_BODY_SIZE", 10*1024*1024), // 10MB
		BatchWorkers:         int(parseIntOrDefault("BATCH_WORKERS", 0)),               // 0 = NumCPU
		HistoryLimit:         int(parseIntOrDefault("HISTORY_LIMIT", 10)),
		AzureAccountName:     os.Getenv("AZURE_STORAGE_ACCOUNT"),
		AzureAccountKey:      os.Getenv("AZURE_STORAGE_KEY"),
		AzureResultContainer: os.Getenv("AZURE_RESULT_CONTAINER"),
	}

	p, err := strconv.Atoi(strings.TrimSpace(cfg.Port))
	if err != nil || p < 1 || p > 65535 {
		return nil, fmt.Errorf("invalid PORT: %q", cfg.Port)
	}
	if cfg.MaxRequestBodySize <= 0 {
		return nil, fmt.Errorf("MAX_REQUEST_BODY_SIZE must be > 0 (got %d)", cfg.MaxRequestBodySize)
	}
	if cfg.RequestTimeout <= 0 || cfg.ImageFetchTimeout <= 0 || cfg.TransformTimeout <= 0 {
		return nil, fmt.Errorf("timeouts must be > 0 (got request=%s, fetch=%s, transform=%s)",
			cfg.RequestTimeout, cfg.ImageFetchTimeout, cfg.TransformTimeout)
	}
	if cfg.BatchWorkers < 0 {
		return nil, fmt.Errorf("BATCH_WORKERS must be >= 0 (got %d)", cfg.BatchWorkers)
	}
	if cfg.HistoryLimit < 1 {
		return nil, fmt.Errorf("HISTORY_LIMIT must be >= 1 (got %d)", cfg.HistoryLimit)
	}

	azureSet := 0
	for _, v := range []string{cfg.AzureAccountName, cfg.AzureAccountKey, cfg.AzureResultContainer} {
		if v != "" {
			azureSet++
		}
	}
	if azureSet != 0 && azureSet != 3 {
		return nil, fmt.Errorf("AZURE_STORAGE_ACCOUNT, AZURE_STORAGE_KEY and AZURE_RESULT_CONTAINER must be set together")
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(strings.TrimSpace(value)); err == nil && duration > 0 {
			return duration
		}
	}
	return defaultValue
}

func parseIntOrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}
