package api

import (
	"fmt"
	"os"
	"time"

	"github.com/paperbay/paperbay/internal/logger"
)

// EnvJWTSecret is the environment variable holding the HMAC secret shared
// with the identity provider.
const EnvJWTSecret = "PAPERBAY_API_JWT_SECRET"

// APIConfig configures the REST API HTTP server.
type APIConfig struct {
	// Port is the HTTP port for the API endpoints.
	// Default: 8080
	Port int `mapstructure:"port" validate:"omitempty,min=1,max=65535" yaml:"port"`

	// ReadTimeout is the maximum duration for reading the entire request,
	// including the body. Uploads up to the per-request size cap must fit
	// inside it. A zero or negative value means no timeout.
	// Default: 120s
	ReadTimeout time.Duration `mapstructure:"read_timeout" yaml:"read_timeout"`

	// WriteTimeout is the maximum duration before timing out response
	// writes, which bounds download time.
	// Default: 120s
	WriteTimeout time.Duration `mapstructure:"write_timeout" yaml:"write_timeout"`

	// IdleTimeout is the keep-alive idle limit. If zero, ReadTimeout
	// applies.
	// Default: 60s
	IdleTimeout time.Duration `mapstructure:"idle_timeout" yaml:"idle_timeout"`

	// PublicBaseURL is the externally reachable base URL of this server,
	// used when minting public share links and editor session configs.
	// Default: http://localhost:<port>
	PublicBaseURL string `mapstructure:"public_base_url" validate:"omitempty,url" yaml:"public_base_url"`

	// EditorAllowedHosts lists the hosts (host or host:port) that save
	// callbacks may download edited documents from. A callback whose
	// document URL points anywhere else is rejected. Empty means no
	// editor host is trusted and save callbacks cannot complete.
	EditorAllowedHosts []string `mapstructure:"editor_allowed_hosts" yaml:"editor_allowed_hosts"`

	// JWT configures validation of identity-provider bearer tokens.
	JWT JWTConfig `mapstructure:"jwt" yaml:"jwt"`
}

// JWTConfig configures bearer-token validation.
type JWTConfig struct {
	// Secret is the HMAC key shared with the identity provider. Must be at
	// least 32 characters. Can also be set via PAPERBAY_API_JWT_SECRET;
	// the environment variable takes precedence over the config file.
	Secret string `mapstructure:"secret" yaml:"secret"`

	// TokenDuration is the lifetime of tokens this server itself issues
	// (used by tests and the CLI login flow).
	// Default: 24h
	TokenDuration time.Duration `mapstructure:"token_duration" yaml:"token_duration"`
}

// applyDefaults fills in zero values with sensible defaults.
func (c *APIConfig) applyDefaults() {
	if c.Port == 0 {
		c.Port = 8080
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = 120 * time.Second
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = 120 * time.Second
	}
	if c.IdleTimeout == 0 {
		c.IdleTimeout = 60 * time.Second
	}
	if c.PublicBaseURL == "" {
		c.PublicBaseURL = fmt.Sprintf("http://localhost:%d", c.Port)
	}
	if c.JWT.TokenDuration == 0 {
		c.JWT.TokenDuration = 24 * time.Hour
	}
}

// GetJWTSecret returns the JWT secret, preferring the environment
// variable. Logs a warning when the env var overrides a config value.
func (c *APIConfig) GetJWTSecret() string {
	envSecret := os.Getenv(EnvJWTSecret)
	if envSecret != "" {
		if c.JWT.Secret != "" && c.JWT.Secret != envSecret {
			logger.Warn("JWT secret from environment variable overrides config file value",
				"env_var", EnvJWTSecret)
		}
		return envSecret
	}
	return c.JWT.Secret
}

// HasJWTSecret returns whether a JWT secret is configured.
func (c *APIConfig) HasJWTSecret() bool {
	return c.GetJWTSecret() != ""
}
