// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host     string
	Port     string
	Env      string // "development", "production", "testing"
	LogLevel string

	// Key-value backend for history and saved credentials:
	// "valkey", "postgres" or "memory".
	KVBackend string

	// PostgreSQL connection
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Valkey (Redis-compatible)
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string
	ValkeyDB       int

	// Gemini
	GeminiAPIKey         string // server default credential, optional
	GeminiBaseURL        string
	GeminiModel          string
	GeminiFastModel      string
	GeminiImageModel     string
	GeminiThinkingBudget int
	GeminiTimeout        time.Duration

	// Storyboard rendering
	ImageLimit    int
	ImageSize     string
	ImageInterval time.Duration

	// History and credentials
	HistoryLimit      int
	HistoryQuotaBytes int
	CredentialSecret  string

	SessionTTL time.Duration

	// Generation endpoint rate limit, per client
	RateLimitGenerate int
	RateLimitWindow   time.Duration

	// S3-compatible image archive, optional
	S3Endpoint  string
	S3Region    string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
	S3PublicURL string
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. Returns an error if a value cannot be
// parsed or critical values are missing in production mode.
func Load() (*Config, error) {
	var errs []string
	p := parser{errs: &errs}

	cfg := &Config{
		Host:     envOrDefault("APP_HOST", "0.0.0.0"),
		Port:     envOrDefault("APP_PORT", "8080"),
		Env:      envOrDefault("APP_ENV", "development"),
		LogLevel: os.Getenv("LOG_LEVEL"),

		KVBackend: strings.ToLower(envOrDefault("KV_BACKEND", "valkey")),

		DBHost:     envOrDefault("POSTGRES_HOST", "localhost"),
		DBPort:     envOrDefault("POSTGRES_PORT", "5432"),
		DBUser:     envOrDefault("POSTGRES_USER", "pawtune"),
		DBPassword: envOrDefault("POSTGRES_PASSWORD", "changeme"),
		DBName:     envOrDefault("POSTGRES_DB", "pawtune"),

		ValkeyHost:     envOrDefault("VALKEY_HOST", "localhost"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),
		ValkeyDB:       p.integer("VALKEY_DB", 0),

		GeminiAPIKey:         os.Getenv("GEMINI_API_KEY"),
		GeminiBaseURL:        envOrDefault("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
		GeminiModel:          envOrDefault("GEMINI_MODEL", "gemini-3-pro-preview"),
		GeminiFastModel:      envOrDefault("GEMINI_FAST_MODEL", "gemini-3-flash-preview"),
		GeminiImageModel:     envOrDefault("GEMINI_IMAGE_MODEL", "gemini-3-pro-image-preview"),
		GeminiThinkingBudget: p.integer("GEMINI_THINKING_BUDGET", 4000),
		GeminiTimeout:        p.duration("GEMINI_TIMEOUT", 180*time.Second),

		ImageLimit:    p.integer("IMAGE_LIMIT", 20),
		ImageSize:     envOrDefault("IMAGE_SIZE", "1K"),
		ImageInterval: p.duration("IMAGE_INTERVAL", 0),

		HistoryLimit:      p.integer("HISTORY_LIMIT", 30),
		HistoryQuotaBytes: p.integer("HISTORY_QUOTA_BYTES", 5*1024*1024),
		CredentialSecret:  os.Getenv("CREDENTIAL_SECRET"),

		SessionTTL: p.duration("SESSION_TTL", 720*time.Hour),

		RateLimitGenerate: p.integer("RATE_LIMIT_GENERATE", 10),
		RateLimitWindow:   p.duration("RATE_LIMIT_WINDOW", time.Minute),

		S3Endpoint:  os.Getenv("S3_ENDPOINT"),
		S3Region:    envOrDefault("S3_REGION", "us-east-1"),
		S3AccessKey: os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey: os.Getenv("S3_SECRET_KEY"),
		S3Bucket:    os.Getenv("S3_BUCKET"),
		S3PublicURL: os.Getenv("S3_PUBLIC_URL"),
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("config: %s", strings.Join(errs, "; "))
	}

	switch cfg.KVBackend {
	case "valkey", "postgres", "memory":
	default:
		return nil, fmt.Errorf("KV_BACKEND must be valkey, postgres or memory, got %q", cfg.KVBackend)
	}

	if cfg.Env == "production" {
		if cfg.KVBackend == "postgres" && cfg.DBPassword == "changeme" {
			return nil, fmt.Errorf("POSTGRES_PASSWORD must be set in production")
		}
		if cfg.CredentialSecret == "" {
			return nil, fmt.Errorf("CREDENTIAL_SECRET must be set in production")
		}
	}

	return cfg, nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// S3Enabled reports whether the image archive is configured.
func (c *Config) S3Enabled() bool {
	return c.S3Endpoint != "" && c.S3AccessKey != "" && c.S3SecretKey != "" && c.S3Bucket != ""
}

// SlogLevel returns the configured log level. Development defaults to
// debug, everything else to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	if c.IsDev() {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// parser reads typed values and collects every malformed one, so a bad
// deployment reports all its mistakes at once.
type parser struct {
	errs *[]string
}

func (p parser) integer(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		*p.errs = append(*p.errs, fmt.Sprintf("%s: %q is not a non-negative integer", key, v))
		return fallback
	}
	return n
}

func (p parser) duration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		*p.errs = append(*p.errs, fmt.Sprintf("%s: %q is not a duration", key, v))
		return fallback
	}
	return d
}
