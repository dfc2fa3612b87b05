package config

import (
	"testing"
	"time"
)

func TestApplyDefaults_EmptyConfig(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	if cfg.Logging.Level != "INFO" {
		t.Errorf("Expected level INFO, got %q", cfg.Logging.Level)
	}
	if cfg.ShutdownTimeout != 30*time.Second {
		t.Errorf("Expected shutdown timeout 30s, got %v", cfg.ShutdownTimeout)
	}
	if cfg.Content.Type != "filesystem" {
		t.Errorf("Expected content type filesystem, got %q", cfg.Content.Type)
	}
	if cfg.Ledger.DefaultQuotaLimit != 100<<20 {
		t.Errorf("Expected quota limit 100MiB, got %d", cfg.Ledger.DefaultQuotaLimit)
	}
	if cfg.Editor.SessionTTL != 30*time.Minute {
		t.Errorf("Expected session TTL 30m, got %v", cfg.Editor.SessionTTL)
	}
	if cfg.API.JWT.TokenDuration != 24*time.Hour {
		t.Errorf("Expected token duration 24h, got %v", cfg.API.JWT.TokenDuration)
	}
}

func TestApplyDefaults_NormalizesLogLevel(t *testing.T) {
	cfg := &Config{}
	cfg.Logging.Level = "debug"
	ApplyDefaults(cfg)

	if cfg.Logging.Level != "DEBUG" {
		t.Errorf("Expected normalized level DEBUG, got %q", cfg.Logging.Level)
	}
}

func TestApplyDefaults_PreservesExplicitValues(t *testing.T) {
	cfg := &Config{}
	cfg.ShutdownTimeout = 5 * time.Second
	cfg.Content.Type = "badger"
	cfg.Content.Path = "/srv/paperbay/content"
	cfg.Ledger.DefaultQuotaLimit = 1 << 30
	ApplyDefaults(cfg)

	if cfg.ShutdownTimeout != 5*time.Second {
		t.Errorf("Expected explicit shutdown timeout preserved, got %v", cfg.ShutdownTimeout)
	}
	if cfg.Content.Type != "badger" {
		t.Errorf("Expected explicit content type preserved, got %q", cfg.Content.Type)
	}
	if cfg.Content.Path != "/srv/paperbay/content" {
		t.Errorf("Expected explicit content path preserved, got %q", cfg.Content.Path)
	}
	if cfg.Ledger.DefaultQuotaLimit != 1<<30 {
		t.Errorf("Expected explicit quota limit preserved, got %d", cfg.Ledger.DefaultQuotaLimit)
	}
}

func TestApplyDefaults_MemoryContentNeedsNoPath(t *testing.T) {
	cfg := &Config{}
	cfg.Content.Type = "memory"
	ApplyDefaults(cfg)

	if cfg.Content.Path != "" {
		t.Errorf("Expected no path for memory store, got %q", cfg.Content.Path)
	}
}
