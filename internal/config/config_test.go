/*-------------------------------------------------------------------------
 *
 * config_test.go
 *    Tests for ApprovalHub configuration loading
 *
 * Copyright (c) 2024-2026, neurondb, Inc. <admin@neurondb.com>
 *
 * IDENTIFICATION
 *    ApprovalHub/internal/config/config_test.go
 *
 *-------------------------------------------------------------------------
 */

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

/* TestDefaultConfig tests the built-in defaults */
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Server.Port != 8080 {
		t.Errorf("server port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Database.Database != "approval_hub" {
		t.Errorf("database name = %q, want approval_hub", cfg.Database.Database)
	}
	if cfg.Inference.EmbeddingModel != "cohere/embed-english-v3.0" {
		t.Errorf("embedding model = %q", cfg.Inference.EmbeddingModel)
	}
	if cfg.Inference.CompletionModel != "anthropic/claude-3-5-sonnet" {
		t.Errorf("completion model = %q", cfg.Inference.CompletionModel)
	}
	if cfg.Enrichment.Workers != 2 || cfg.Enrichment.QueueSize != 256 {
		t.Errorf("enrichment = %+v", cfg.Enrichment)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

/* TestLoadConfig tests YAML values overriding defaults */
func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: 9090
database:
  host: db.internal
  database: approvals_prod
inference:
  url: http://inference.internal:8000
  timeout: 45s
enrichment:
  workers: 4
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("server port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Database.Host != "db.internal" {
		t.Errorf("database host = %q, want db.internal", cfg.Database.Host)
	}
	if cfg.Inference.Timeout != 45*time.Second {
		t.Errorf("inference timeout = %v, want 45s", cfg.Inference.Timeout)
	}
	if cfg.Enrichment.Workers != 4 {
		t.Errorf("enrichment workers = %d, want 4", cfg.Enrichment.Workers)
	}
	/* Unset fields keep defaults */
	if cfg.Database.Port != 5432 {
		t.Errorf("database port = %d, want default 5432", cfg.Database.Port)
	}
	if cfg.Enrichment.QueueSize != 256 {
		t.Errorf("enrichment queue size = %d, want default 256", cfg.Enrichment.QueueSize)
	}
}

/* TestLoadConfigMissingFile tests the error for an absent file */
func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
	if !strings.Contains(err.Error(), "failed to read config file") {
		t.Errorf("unexpected error: %v", err)
	}
}

/* TestLoadFromEnv tests environment overrides */
func TestLoadFromEnv(t *testing.T) {
	t.Setenv("DB_HOST", "env-db")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("INFERENCE_KEY", "sk-test")
	t.Setenv("ENRICHMENT_WORKERS", "8")

	cfg := DefaultConfig()
	LoadFromEnv(cfg)

	if cfg.Database.Host != "env-db" {
		t.Errorf("database host = %q, want env-db", cfg.Database.Host)
	}
	if cfg.Database.Port != 5433 {
		t.Errorf("database port = %d, want 5433", cfg.Database.Port)
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("server port = %d, want 7070", cfg.Server.Port)
	}
	if cfg.Inference.APIKey != "sk-test" {
		t.Errorf("inference key = %q", cfg.Inference.APIKey)
	}
	if cfg.Enrichment.Workers != 8 {
		t.Errorf("enrichment workers = %d, want 8", cfg.Enrichment.Workers)
	}
}

/* TestLoadFromEnvPortFallback tests SERVER_PORT winning over PORT */
func TestLoadFromEnvPortFallback(t *testing.T) {
	t.Setenv("PORT", "6060")

	cfg := DefaultConfig()
	LoadFromEnv(cfg)
	if cfg.Server.Port != 6060 {
		t.Errorf("server port = %d, want 6060 from PORT", cfg.Server.Port)
	}

	t.Setenv("SERVER_PORT", "6061")
	cfg = DefaultConfig()
	LoadFromEnv(cfg)
	if cfg.Server.Port != 6061 {
		t.Errorf("server port = %d, want 6061 from SERVER_PORT", cfg.Server.Port)
	}
}

/* TestValidate tests rejection of unusable values */
func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"port too low", func(c *Config) { c.Server.Port = 0 }, "out of range"},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }, "out of range"},
		{"no db host", func(c *Config) { c.Database.Host = "" }, "database host"},
		{"no db name", func(c *Config) { c.Database.Database = "" }, "database name"},
		{"zero workers", func(c *Config) { c.Enrichment.Workers = 0 }, "workers"},
		{"zero queue", func(c *Config) { c.Enrichment.QueueSize = 0 }, "queue size"},
	}

	for _, tc := range cases {
		cfg := DefaultConfig()
		tc.mutate(cfg)
		err := cfg.Validate()
		if err == nil {
			t.Errorf("%s: expected validation error", tc.name)
			continue
		}
		if !strings.Contains(err.Error(), tc.want) {
			t.Errorf("%s: error %q does not mention %q", tc.name, err, tc.want)
		}
	}
}

/* TestConnString tests libpq connection string assembly */
func TestConnString(t *testing.T) {
	cfg := DatabaseConfig{
		Host: "localhost", Port: 5432, User: "postgres",
		Password: "secret", Database: "approval_hub", SSLMode: "disable",
	}
	got := cfg.ConnString()
	want := "host=localhost port=5432 user=postgres password=secret dbname=approval_hub sslmode=disable"
	if got != want {
		t.Errorf("ConnString() = %q, want %q", got, want)
	}
}
