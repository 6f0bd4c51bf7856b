// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"fmt"
	"os"
	"strings"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string
	Port string
	Env  string // "development", "production", "testing"

	// MongoDB connection
	MongoURI string
	MongoDB  string

	// Secrets are provisioned out of band, never embedded in source.
	TOTPSecret string // base32 shared secret for the admin one-time code
	SessionKey string // 64 hex chars; symmetric key for session tokens

	// Redis (optional; enables the Redis-backed rate limiter when set)
	RedisHost     string
	RedisPort     string
	RedisPassword string

	// CORS
	AllowedOrigins []string
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. Returns an error if critical values
// are missing in production mode.
func Load() (*Config, error) {
	cfg := &Config{
		Host: envOrDefault("APP_HOST", "0.0.0.0"),
		Port: envOrDefault("APP_PORT", "8080"),
		Env:  envOrDefault("APP_ENV", "development"),

		MongoURI: envOrDefault("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDB:  envOrDefault("MONGODB_DB", "musubi"),

		TOTPSecret: os.Getenv("TOTP_SECRET"),
		SessionKey: os.Getenv("SESSION_KEY"),

		RedisHost:     os.Getenv("REDIS_HOST"),
		RedisPort:     envOrDefault("REDIS_PORT", "6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		AllowedOrigins: splitList(envOrDefault("CORS_ORIGINS", "*")),
	}

	if cfg.Env == "production" {
		if cfg.TOTPSecret == "" {
			return nil, fmt.Errorf("TOTP_SECRET must be set in production")
		}
		if cfg.SessionKey == "" {
			return nil, fmt.Errorf("SESSION_KEY must be set in production")
		}
	}

	return cfg, nil
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// RedisAddr returns the Redis address (host:port).
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}

// RedisEnabled reports whether a Redis host was configured.
func (c *Config) RedisEnabled() bool {
	return c.RedisHost != ""
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitList splits a comma-separated environment value into trimmed entries.
func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
