package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
)

// InitConfig creates a sample configuration file at the default location.
// Returns the path the file was written to. Fails if the file already
// exists unless force is set.
func InitConfig(force bool) (string, error) {
	configPath := GetDefaultConfigPath()
	return configPath, InitConfigToPath(configPath, force)
}

// InitConfigToPath creates a sample configuration file at the given path.
func InitConfigToPath(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file already exists at %s (use --force to overwrite)", path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	secret, err := generateRandomSecret()
	if err != nil {
		return fmt.Errorf("failed to generate JWT secret: %w", err)
	}

	content := fmt.Sprintf(sampleConfig, defaultContentDir(), secret)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// generateRandomSecret returns 32 bytes of entropy as a 64-character hex
// string, satisfying the minimum JWT secret length.
func generateRandomSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

const sampleConfig = `# paperbay Configuration File
#
# All settings can be overridden with environment variables:
#   PAPERBAY_<SECTION>_<KEY>  (underscores for nested keys)
# Examples:
#   PAPERBAY_LOGGING_LEVEL=DEBUG
#   PAPERBAY_API_PORT=9080

logging:
  # DEBUG, INFO, WARN, ERROR
  level: INFO
  # text or json
  format: text
  # stdout, stderr, or a file path
  output: stdout

# Maximum time to wait for in-flight requests during shutdown
shutdown_timeout: 30s

database:
  # sqlite or postgres
  type: sqlite
  sqlite:
    path: paperbay.db
  # postgres:
  #   host: localhost
  #   port: 5432
  #   database: paperbay
  #   user: paperbay
  #   password: ""
  #   ssl_mode: disable

content:
  # filesystem, badger, s3, or memory
  type: filesystem
  path: %s
  # s3:
  #   bucket: paperbay-content
  #   region: us-east-1
  #   endpoint: ""          # set for MinIO or other S3-compatible stores
  #   key_prefix: content/
  #   force_path_style: false

ledger:
  # Storage quota provisioned for each user, in bytes (default 100 MiB)
  default_quota_limit: 104857600

editor:
  # How long an issued editor session stays valid
  session_ttl: 30m

metrics:
  # Prometheus scrape endpoint at /metrics on the API port
  enabled: false

api:
  port: 8080
  read_timeout: 120s
  write_timeout: 120s
  idle_timeout: 60s
  # Externally reachable base URL, used in public share links and the
  # URLs handed to the editing service
  # public_base_url: https://paperbay.example.com
  # Hosts the save callback may download edited documents from. Save
  # callbacks are rejected until the editing service's host is listed.
  # editor_allowed_hosts:
  #   - onlyoffice.internal
  jwt:
    # Shared HMAC secret for verifying identity provider tokens.
    # Randomly generated at init; override with PAPERBAY_API_JWT_SECRET.
    secret: %s
    token_duration: 24h
`
