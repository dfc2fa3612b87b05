// Package s3 implements content storage on Amazon S3 or any S3-compatible
// object store (MinIO, Ceph RGW).
package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/paperbay/paperbay/pkg/content"
)

// Store keeps each content blob as one S3 object under an optional key
// prefix. Documents are written whole, so plain PutObject is sufficient;
// editor write-backs are bounded by the per-user quota, well below the
// multipart threshold that would make incremental upload worthwhile.
type Store struct {
	client    *awss3.Client
	bucket    string
	keyPrefix string
}

// Config contains configuration for the S3 content store.
type Config struct {
	// Endpoint overrides the AWS endpoint for S3-compatible stores.
	Endpoint string

	// Region is the AWS region. Required by the SDK even for compatible stores.
	Region string

	// Bucket is the bucket name. Must already exist.
	Bucket string

	// KeyPrefix is prepended to every object key, e.g. "paperbay/content/".
	KeyPrefix string

	// AccessKeyID / SecretAccessKey are static credentials. When empty the
	// SDK's default credential chain is used (env, shared config, IMDS).
	AccessKeyID     string
	SecretAccessKey string

	// ForcePathStyle uses path-style addressing, needed by most
	// S3-compatible stores.
	ForcePathStyle bool
}

// New creates an S3 content store from configuration.
func New(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := awss3.NewFromConfig(awsCfg, func(o *awss3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.ForcePathStyle
	})

	return &Store{
		client:    client,
		bucket:    cfg.Bucket,
		keyPrefix: cfg.KeyPrefix,
	}, nil
}

// NewWithClient wraps an existing S3 client. Used by tests.
func NewWithClient(client *awss3.Client, bucket, keyPrefix string) *Store {
	return &Store{client: client, bucket: bucket, keyPrefix: keyPrefix}
}

func (s *Store) key(id content.ID) string {
	return s.keyPrefix + string(id)
}

func (s *Store) Put(ctx context.Context, id content.ID, r io.Reader) (int64, error) {
	// PutObject needs a seekable body or a known length for signing, and
	// content sizes are quota-bounded, so buffer the blob.
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}

	_, err = s.client.PutObject(ctx, &awss3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(id)),
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to put content %s: %w", id, err)
	}
	return int64(len(data)), nil
}

func (s *Store) Get(ctx context.Context, id content.ID) (io.ReadCloser, error) {
	out, err := s.client.GetObject(ctx, &awss3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(id)),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, content.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get content %s: %w", id, err)
	}
	return out.Body, nil
}

func (s *Store) Size(ctx context.Context, id content.ID) (int64, error) {
	out, err := s.client.HeadObject(ctx, &awss3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(id)),
	})
	if err != nil {
		if isNotFound(err) {
			return 0, content.ErrNotFound
		}
		return 0, fmt.Errorf("failed to head content %s: %w", id, err)
	}
	if out.ContentLength == nil {
		return 0, nil
	}
	return *out.ContentLength, nil
}

func (s *Store) Exists(ctx context.Context, id content.ID) (bool, error) {
	_, err := s.Size(ctx, id)
	if errors.Is(err, content.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) Delete(ctx context.Context, id content.ID) error {
	_, err := s.client.DeleteObject(ctx, &awss3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(id)),
	})
	if err != nil {
		return fmt.Errorf("failed to delete content %s: %w", id, err)
	}
	return nil
}

func (s *Store) Close() error {
	return nil
}

// isNotFound matches S3's NoSuchKey and NotFound error shapes. HeadObject
// returns NotFound while GetObject returns NoSuchKey.
func isNotFound(err error) bool {
	var noKey *types.NoSuchKey
	if errors.As(err, &noKey) {
		return true
	}
	var notFound *types.NotFound
	return errors.As(err, &notFound)
}
