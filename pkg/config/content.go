package config

import (
	"context"
	"fmt"

	"github.com/paperbay/paperbay/pkg/content"
	"github.com/paperbay/paperbay/pkg/content/store/badger"
	"github.com/paperbay/paperbay/pkg/content/store/filesystem"
	"github.com/paperbay/paperbay/pkg/content/store/memory"
	"github.com/paperbay/paperbay/pkg/content/store/s3"
)

// ContentConfig selects and configures the content store backend.
type ContentConfig struct {
	// Type selects the backend.
	// Valid values: filesystem, badger, s3, memory (testing only)
	// Default: filesystem
	Type string `mapstructure:"type" validate:"omitempty,oneof=filesystem badger s3 memory" yaml:"type"`

	// Path is the storage directory for the filesystem and badger backends.
	// Default: $XDG_DATA_HOME/paperbay/content
	Path string `mapstructure:"path" yaml:"path,omitempty"`

	// S3 configures the S3 backend. Required when Type is "s3".
	S3 S3ContentConfig `mapstructure:"s3" yaml:"s3,omitempty"`
}

// S3ContentConfig configures the S3-compatible content store backend.
type S3ContentConfig struct {
	// Bucket is the bucket name. Must already exist.
	Bucket string `mapstructure:"bucket" yaml:"bucket"`

	// Region is the AWS region.
	Region string `mapstructure:"region" yaml:"region,omitempty"`

	// Endpoint overrides the AWS endpoint for S3-compatible stores
	// (MinIO, Ceph RGW).
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint,omitempty"`

	// KeyPrefix is prepended to every object key.
	KeyPrefix string `mapstructure:"key_prefix" yaml:"key_prefix,omitempty"`

	// AccessKeyID / SecretAccessKey are static credentials. When empty the
	// SDK's default credential chain is used (env, shared config, IMDS).
	AccessKeyID     string `mapstructure:"access_key_id" yaml:"access_key_id,omitempty"`
	SecretAccessKey string `mapstructure:"secret_access_key" yaml:"secret_access_key,omitempty"`

	// ForcePathStyle uses path-style addressing, needed by most
	// S3-compatible stores.
	ForcePathStyle bool `mapstructure:"force_path_style" yaml:"force_path_style,omitempty"`
}

// CreateContentStore creates a content store instance from configuration.
func CreateContentStore(ctx context.Context, cfg ContentConfig) (content.Store, error) {
	switch cfg.Type {
	case "filesystem", "":
		if cfg.Path == "" {
			return nil, fmt.Errorf("filesystem content store requires path to be set")
		}
		return filesystem.New(cfg.Path)
	case "badger":
		if cfg.Path == "" {
			return nil, fmt.Errorf("badger content store requires path to be set")
		}
		return badger.New(cfg.Path)
	case "s3":
		return createS3ContentStore(ctx, cfg.S3)
	case "memory":
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown content store type: %q", cfg.Type)
	}
}

// createS3ContentStore creates an S3-backed content store.
func createS3ContentStore(ctx context.Context, cfg S3ContentConfig) (content.Store, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("S3 content store requires bucket to be set")
	}

	return s3.New(ctx, s3.Config{
		Endpoint:        cfg.Endpoint,
		Region:          cfg.Region,
		Bucket:          cfg.Bucket,
		KeyPrefix:       cfg.KeyPrefix,
		AccessKeyID:     cfg.AccessKeyID,
		SecretAccessKey: cfg.SecretAccessKey,
		ForcePathStyle:  cfg.ForcePathStyle,
	})
}
