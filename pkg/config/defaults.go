package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/paperbay/paperbay/pkg/controlplane/store"
)

// ApplyDefaults sets default values for any unspecified configuration
// fields. Zero values are replaced; explicit values are preserved.
func ApplyDefaults(cfg *Config) {
	applyLoggingDefaults(&cfg.Logging)
	applyShutdownTimeoutDefaults(cfg)
	applyDatabaseDefaults(&cfg.Database)
	applyContentDefaults(&cfg.Content)
	cfg.Ledger.ApplyDefaults()
	cfg.Editor.ApplyDefaults()
	applyAPIDefaults(cfg)
}

// applyLoggingDefaults sets logging defaults and normalizes values.
func applyLoggingDefaults(cfg *LoggingConfig) {
	if cfg.Level == "" {
		cfg.Level = "INFO"
	}
	// Normalize log level to uppercase for consistent internal representation
	cfg.Level = strings.ToUpper(cfg.Level)

	if cfg.Format == "" {
		cfg.Format = "text"
	}
	if cfg.Output == "" {
		cfg.Output = "stdout"
	}
}

// applyShutdownTimeoutDefaults sets shutdown timeout defaults.
func applyShutdownTimeoutDefaults(cfg *Config) {
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = 30 * time.Second
	}
}

// applyDatabaseDefaults sets control plane database defaults.
func applyDatabaseDefaults(cfg *store.Config) {
	cfg.ApplyDefaults()
}

// applyContentDefaults sets content store defaults.
func applyContentDefaults(cfg *ContentConfig) {
	if cfg.Type == "" {
		cfg.Type = "filesystem"
	}
	if cfg.Path == "" && (cfg.Type == "filesystem" || cfg.Type == "badger") {
		cfg.Path = defaultContentDir()
	}
}

// applyAPIDefaults sets REST API server defaults. The API package owns
// its defaults; calling through keeps the two in sync.
func applyAPIDefaults(cfg *Config) {
	apiCfg := &cfg.API
	if apiCfg.Port == 0 {
		apiCfg.Port = 8080
	}
	if apiCfg.ReadTimeout == 0 {
		apiCfg.ReadTimeout = 120 * time.Second
	}
	if apiCfg.WriteTimeout == 0 {
		apiCfg.WriteTimeout = 120 * time.Second
	}
	if apiCfg.IdleTimeout == 0 {
		apiCfg.IdleTimeout = 60 * time.Second
	}
	if apiCfg.JWT.TokenDuration == 0 {
		apiCfg.JWT.TokenDuration = 24 * time.Hour
	}
}

// defaultContentDir returns the default content storage directory.
// Uses XDG_DATA_HOME if set, otherwise ~/.local/share.
func defaultContentDir() string {
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return filepath.Join(xdgData, "paperbay", "content")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "paperbay-content")
	}
	return filepath.Join(home, ".local", "share", "paperbay", "content")
}

// GetDefaultConfig returns a Config struct with all default values
// applied. Useful for generating sample configuration files and testing.
func GetDefaultConfig() *Config {
	cfg := &Config{
		Logging: LoggingConfig{},
		Database: store.Config{
			Type: store.DatabaseTypeSQLite, // Default to SQLite for single-node
		},
	}

	ApplyDefaults(cfg)
	return cfg
}
