// Package config provides application configuration management.
// Configuration is loaded from environment variables following 12-factor principles.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all application configuration.
// All fields are populated from environment variables.
type Config struct {
	// Application settings
	AppEnv  string `env:"APP_ENV" envDefault:"development"`
	AppPort int    `env:"APP_PORT" envDefault:"8080"`

	// Google Cloud project hosting the secret store and the document store.
	GoogleCloudProject string `env:"GOOGLE_CLOUD_PROJECT" envDefault:"adagio-teas-visitor-ids"`

	// Optional service-account key material. When empty, Application
	// Default Credentials are used.
	GoogleCredentialsJSON string `env:"GOOGLE_CREDENTIALS_JSON" envDefault:""`

	// Firestore collection holding user_id -> visitor_id records.
	FirestoreCollection string `env:"FIRESTORE_COLLECTION" envDefault:"visitor_ids"`

	// Key used to verify credential checksums.
	APISecretKey string `env:"API_SECRET_KEY" envDefault:"your-secret-key-change-in-production"`

	// Name of the secret holding the credential payload.
	APITokensSecretName string `env:"API_TOKENS_SECRET_NAME" envDefault:"adagio-visitorid-api-tokens"`

	// Inline credential payload used when the secret store is unreachable
	// (local development fallback). Same JSON shape as the secret itself.
	APITokensJSON string `env:"API_TOKENS_JSON" envDefault:""`

	// Per-request deadline for document store lookups.
	StoreTimeout time.Duration `env:"STORE_TIMEOUT" envDefault:"5s"`

	// Deadline for fetching the credential payload at startup.
	CredentialLoadTimeout time.Duration `env:"CREDENTIAL_LOAD_TIMEOUT" envDefault:"10s"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Server timeouts
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	// Request body size limit in bytes (default 1MB)
	MaxRequestBodySize int64 `env:"MAX_REQUEST_BODY_SIZE" envDefault:"1048576"`
}

// defaultAPISecretKey mirrors the envDefault tag on APISecretKey.
const defaultAPISecretKey = "your-secret-key-change-in-production"

// UsesDefaultSecretKey reports whether the checksum key was left at its
// built-in default.
func (c *Config) UsesDefaultSecretKey() bool {
	return c.APISecretKey == defaultAPISecretKey
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Load parses environment variables and returns a Config.
// Returns an error if a variable cannot be parsed.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}
