// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

// knownWeakSecrets contains default/example secrets that must be rejected in production.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath        string `env:"OMARKET_DB_PATH" envDefault:"./data/omarket.db"`
	SessionSecret string `env:"OMARKET_SESSION_SECRET,required"`
	ServerHost    string `env:"OMARKET_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"OMARKET_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"OMARKET_ENV" envDefault:"development"`
	LogLevel      string `env:"OMARKET_LOG_LEVEL" envDefault:"info"`
	UploadsDir    string `env:"OMARKET_UPLOADS_DIR" envDefault:"./uploads"`

	// AdminEmail owns the store: sign-ins with this address get the
	// admin role and order notifications are addressed to it.
	AdminEmail string `env:"OMARKET_ADMIN_EMAIL,required"`

	// Cache configuration
	RedisURL     string `env:"OMARKET_REDIS_URL"`                          // Optional Redis URL for distributed caching
	CachePrefix  string `env:"OMARKET_CACHE_PREFIX" envDefault:"omarket:"` // Redis key prefix
	CacheTTL     int    `env:"OMARKET_CACHE_TTL" envDefault:"3600"`        // Default cache TTL in seconds
	CacheMaxSize int    `env:"OMARKET_CACHE_MAX_SIZE" envDefault:"10000"`  // Max memory cache entries

	// AI configuration
	OpenAIAPIKey string `env:"OMARKET_OPENAI_API_KEY"` // Enables pitch generation and price suggestions
	AIModel      string `env:"OMARKET_AI_MODEL"`       // Chat model override

	// Seeding configuration
	DoSeed bool `env:"OMARKET_DO_SEED" envDefault:"false"` // Seed the demo catalog on first run
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// AIEnabled returns true if an OpenAI API key is configured.
func (c Config) AIEnabled() bool {
	return c.OpenAIAPIKey != ""
}

// MinSessionSecretLength is the minimum required length for the session secret.
const MinSessionSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("OMARKET_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}

	for _, weak := range knownWeakSecrets {
		if cfg.SessionSecret == weak {
			return nil, fmt.Errorf("OMARKET_SESSION_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	if !hasMinimumEntropy(cfg.SessionSecret) {
		slog.Warn("OMARKET_SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	if !strings.Contains(cfg.AdminEmail, "@") {
		return nil, fmt.Errorf("OMARKET_ADMIN_EMAIL %q is not an email address", cfg.AdminEmail)
	}

	return cfg, nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
