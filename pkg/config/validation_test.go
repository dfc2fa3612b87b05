package config

import (
	"strings"
	"testing"
)

func TestValidate_ValidConfig(t *testing.T) {
	cfg := GetDefaultConfig()

	if err := Validate(cfg); err != nil {
		t.Errorf("Expected valid config to pass validation, got error: %v", err)
	}
}

func TestValidate_InvalidLogLevel(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Logging.Level = "INVALID"

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Expected validation error for invalid log level")
	}
	if !strings.Contains(err.Error(), "oneof") {
		t.Errorf("Expected 'oneof' validation error, got: %v", err)
	}
}

func TestValidate_InvalidLogFormat(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Logging.Format = "xml"

	if err := Validate(cfg); err == nil {
		t.Fatal("Expected validation error for invalid log format")
	}
}

func TestValidate_InvalidAPIPort(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.API.Port = 70000

	if err := Validate(cfg); err == nil {
		t.Fatal("Expected validation error for out-of-range API port")
	}
}

func TestValidate_InvalidContentType(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Content.Type = "floppy"

	if err := Validate(cfg); err == nil {
		t.Fatal("Expected validation error for unknown content store type")
	}
}

func TestValidate_S3RequiresBucket(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Content.Type = "s3"
	cfg.Content.S3.Bucket = ""

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Expected validation error for s3 content store without bucket")
	}
	if !strings.Contains(err.Error(), "bucket") {
		t.Errorf("Expected bucket error, got: %v", err)
	}
}

func TestValidate_ZeroShutdownTimeout(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.ShutdownTimeout = 0

	if err := Validate(cfg); err == nil {
		t.Fatal("Expected validation error for zero shutdown timeout")
	}
}
