package config

import (
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"HOST", "PORT", "REQUEST_TIMEOUT", "IMAGE_FETCH_TIMEOUT",
		"TRANSFORM_TIMEOUT", "MAX_REQUEST_BODY_SIZE", "BATCH_WORKERS",
		"HISTORY_LIMIT", "AZURE_STORAGE_ACCOUNT", "AZURE_STORAGE_KEY",
		"AZURE_RESULT_CONTAINER",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv failed: %v", err)
	}

	if cfg.ServerAddress() != "0.0.0.0:8080" {
		t.Errorf("Unexpected default address %q", cfg.ServerAddress())
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Errorf("Unexpected default request timeout %s", cfg.RequestTimeout)
	}
	if cfg.HistoryLimit != 10 {
		t.Errorf("Unexpected default history limit %d", cfg.HistoryLimit)
	}
	if cfg.BatchWorkers != 0 {
		t.Errorf("Unexpected default batch workers %d", cfg.BatchWorkers)
	}
	if cfg.AzureEnabled() {
		t.Error("Azure must be disabled when no credentials are set")
	}
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("REQUEST_TIMEOUT", "45s")
	t.Setenv("HISTORY_LIMIT", "3")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv failed: %v", err)
	}
	if cfg.Port != "9090" {
		t.Errorf("Expected port 9090, got %q", cfg.Port)
	}
	if cfg.RequestTimeout != 45*time.Second {
		t.Errorf("Expected 45s request timeout, got %s", cfg.RequestTimeout)
	}
	if cfg.HistoryLimit != 3 {
		t.Errorf("Expected history limit 3, got %d", cfg.HistoryLimit)
	}
}

func TestLoadFromEnv_InvalidPort(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "not-a-port")

	if _, err := LoadFromEnv(); err == nil {
		t.Error("Expected an error for a non-numeric port")
	}
}

func TestLoadFromEnv_InvalidHistoryLimit(t *testing.T) {
	clearEnv(t)
	t.Setenv("HISTORY_LIMIT", "0")

	if _, err := LoadFromEnv(); err == nil {
		t.Error("Expected an error for a zero history limit")
	}
}

func TestLoadFromEnv_AzureTrio(t *testing.T) {
	clearEnv(t)
	t.Setenv("AZURE_STORAGE_ACCOUNT", "acct")
	t.Setenv("AZURE_STORAGE_KEY", "key")
	t.Setenv("AZURE_RESULT_CONTAINER", "results")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv failed with full Azure trio: %v", err)
	}
	if !cfg.AzureEnabled() {
		t.Error("Azure must be enabled when all three variables are set")
	}
}

func TestLoadFromEnv_AzurePartialTrio(t *testing.T) {
	partials := []map[string]string{
		{"AZURE_STORAGE_ACCOUNT": "acct"},
		{"AZURE_STORAGE_ACCOUNT": "acct", "AZURE_STORAGE_KEY": "key"},
		{"AZURE_RESULT_CONTAINER": "results"},
	}

	for _, env := range partials {
		t.Run("", func(t *testing.T) {
			clearEnv(t)
			for k, v := range env {
				t.Setenv(k, v)
			}
			if _, err := LoadFromEnv(); err == nil {
				t.Errorf("Expected an error for partial Azure config %v", env)
			}
		})
	}
}
