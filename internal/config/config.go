/*-------------------------------------------------------------------------
 *
 * config.go
 *    Configuration loading for ApprovalHub
 *
 * Configuration comes from a YAML file, environment variables, or
 * defaults, in that order of precedence. The inference section is
 * injected into the enrichment pipeline and search engine at
 * construction; no component reads ambient process state.
 *
 * Copyright (c) 2024-2026, neurondb, Inc. <admin@neurondb.com>
 *
 * IDENTIFICATION
 *    ApprovalHub/internal/config/config.go
 *
 *-------------------------------------------------------------------------
 */

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Database      DatabaseConfig      `yaml:"database"`
	Inference     InferenceConfig     `yaml:"inference"`
	Enrichment    EnrichmentConfig    `yaml:"enrichment"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Logging       LoggingConfig       `yaml:"logging"`
}

type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

type DatabaseConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	Database        string        `yaml:"database"`
	SSLMode         string        `yaml:"ssl_mode"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `yaml:"conn_max_idle_time"`
}

type InferenceConfig struct {
	URL             string        `yaml:"url"`
	APIKey          string        `yaml:"api_key"`
	EmbeddingModel  string        `yaml:"embedding_model"`
	CompletionModel string        `yaml:"completion_model"`
	Timeout         time.Duration `yaml:"timeout"`
	MaxTokens       int           `yaml:"max_tokens"`
	Temperature     float64       `yaml:"temperature"`
}

type EnrichmentConfig struct {
	Workers   int `yaml:"workers"`
	QueueSize int `yaml:"queue_size"`
}

type NotificationsConfig struct {
	WebhookURL string        `yaml:"webhook_url"`
	Timeout    time.Duration `yaml:"timeout"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

/* DefaultConfig returns the built-in defaults */
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         8080,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			Password:        "",
			Database:        "approval_hub",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 30 * time.Minute,
			ConnMaxIdleTime: 10 * time.Minute,
		},
		Inference: InferenceConfig{
			EmbeddingModel:  "cohere/embed-english-v3.0",
			CompletionModel: "anthropic/claude-3-5-sonnet",
			Timeout:         30 * time.Second,
			MaxTokens:       200,
			Temperature:     0.7,
		},
		Enrichment: EnrichmentConfig{
			Workers:   2,
			QueueSize: 256,
		},
		Notifications: NotificationsConfig{
			Timeout: 10 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

/* LoadConfig loads configuration from a YAML file over the defaults */
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file '%s': %w", path, err)
	}

	LoadFromEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

/* LoadFromEnv overlays environment variables onto the config */
func LoadFromEnv(cfg *Config) {
	setString(&cfg.Server.Host, "SERVER_HOST")
	setInt(&cfg.Server.Port, "SERVER_PORT", "PORT")

	setString(&cfg.Database.Host, "DB_HOST")
	setInt(&cfg.Database.Port, "DB_PORT")
	setString(&cfg.Database.User, "DB_USER")
	setString(&cfg.Database.Password, "DB_PASSWORD")
	setString(&cfg.Database.Database, "DB_NAME")
	setString(&cfg.Database.SSLMode, "DB_SSL_MODE")

	setString(&cfg.Inference.URL, "INFERENCE_URL")
	setString(&cfg.Inference.APIKey, "INFERENCE_KEY")
	setString(&cfg.Inference.EmbeddingModel, "INFERENCE_EMBEDDING_MODEL")
	setString(&cfg.Inference.CompletionModel, "INFERENCE_COMPLETION_MODEL")

	setInt(&cfg.Enrichment.Workers, "ENRICHMENT_WORKERS")
	setInt(&cfg.Enrichment.QueueSize, "ENRICHMENT_QUEUE_SIZE")

	setString(&cfg.Notifications.WebhookURL, "NOTIFY_WEBHOOK_URL")

	setString(&cfg.Logging.Level, "LOG_LEVEL")
	setString(&cfg.Logging.Format, "LOG_FORMAT")
}

/* Validate checks the configuration for unusable values */
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid config: server port %d is out of range", c.Server.Port)
	}
	if c.Database.Host == "" {
		return fmt.Errorf("invalid config: database host is required")
	}
	if c.Database.Database == "" {
		return fmt.Errorf("invalid config: database name is required")
	}
	if c.Enrichment.Workers <= 0 {
		return fmt.Errorf("invalid config: enrichment workers must be positive, got %d", c.Enrichment.Workers)
	}
	if c.Enrichment.QueueSize <= 0 {
		return fmt.Errorf("invalid config: enrichment queue size must be positive, got %d", c.Enrichment.QueueSize)
	}
	return nil
}

/* ConnString builds the libpq connection string */
func (c *DatabaseConfig) ConnString() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode)
}

func setString(target *string, keys ...string) {
	for _, key := range keys {
		if v := os.Getenv(key); v != "" {
			*target = v
			return
		}
	}
}

func setInt(target *int, keys ...string) {
	for _, key := range keys {
		if v := os.Getenv(key); v != "" {
			if parsed, err := strconv.Atoi(v); err == nil {
				*target = parsed
			}
			return
		}
	}
}
