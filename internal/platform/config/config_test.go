package config_test

import (
	"path/filepath"
	"testing"
	"time"

	"chronicle/internal/platform/config"
)

func TestFromEnvironmentDefaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg, err := config.FromEnvironment(dir, map[string]string{})
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	if cfg.StoreDriver != config.DriverSQLite {
		t.Fatalf("driver = %q", cfg.StoreDriver)
	}
	if cfg.DBPath != filepath.Join(dir, ".chronicle", "chronicle.db") {
		t.Fatalf("db path = %q", cfg.DBPath)
	}
	if cfg.TextModel != "gemini-2.5-flash" || cfg.ImageModel != "gemini-2.5-flash-image" {
		t.Fatalf("models = %q / %q", cfg.TextModel, cfg.ImageModel)
	}
	if cfg.GenerationTimeout != 90*time.Second {
		t.Fatalf("timeout = %v", cfg.GenerationTimeout)
	}
	if cfg.APIKey() != "" {
		t.Fatalf("expected no api key")
	}
}

func TestFromEnvironmentOverrides(t *testing.T) {
	t.Parallel()

	cfg, err := config.FromEnvironment(t.TempDir(), map[string]string{
		"CHRONICLE_STORE":              "memory",
		"API_KEY":                      "legacy",
		"CHRONICLE_GENERATION_TIMEOUT": "5s",
	})
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	if cfg.StoreDriver != config.DriverMemory {
		t.Fatalf("driver = %q", cfg.StoreDriver)
	}
	if cfg.APIKey() != "legacy" {
		t.Fatalf("api key fallback = %q", cfg.APIKey())
	}

	cfg, err = config.FromEnvironment(t.TempDir(), map[string]string{"API_KEY": "legacy", "GEMINI_API_KEY": "primary"})
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	if cfg.APIKey() != "primary" {
		t.Fatalf("api key = %q", cfg.APIKey())
	}
}

func TestFromEnvironmentRejects(t *testing.T) {
	t.Parallel()

	if _, err := config.FromEnvironment("", map[string]string{}); err == nil {
		t.Fatalf("expected error for empty data dir")
	}
	if _, err := config.FromEnvironment(t.TempDir(), map[string]string{"CHRONICLE_STORE": "redis"}); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}
