package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Validate checks the configuration against the struct-level validation
// tags. Returns a descriptive error for the first group of violations.
func Validate(cfg *Config) error {
	validate := validator.New()

	if err := validate.Struct(cfg); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			return fmt.Errorf("invalid configuration: %w", verrs)
		}
		return err
	}

	// Cross-field checks the tag language cannot express.
	if cfg.Content.Type == "s3" && cfg.Content.S3.Bucket == "" {
		return fmt.Errorf("content.s3.bucket is required when content.type is s3")
	}

	return nil
}
