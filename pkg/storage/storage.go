package storage

import (
	"context"
	"fmt"
	"io"
)

// Storage is a flat blob store addressed by opaque keys.
type Storage interface {
	// Put writes data from r and returns the key it was stored under.
	// Without WithKey a random key is generated.
	Put(ctx context.Context, r io.Reader, size int64, opts ...Option) (*FileInfo, error)

	// Get opens a stored object. The caller closes the reader.
	// Returns ErrNotFound when no object exists under key.
	Get(ctx context.Context, key string) (io.ReadCloser, error)

	// Exists reports whether an object is stored under key.
	Exists(ctx context.Context, key string) (bool, error)

	// Delete removes an object. Deleting a missing object is not an error.
	Delete(ctx context.Context, key string) error
}

// Driver names accepted by Config.Driver.
const (
	DriverLocal = "local"
	DriverS3    = "s3"
)

// DefaultRoot is where the local driver keeps objects when no root is configured.
const DefaultRoot = "/tmp/files_manager"

// Config selects and configures a storage backend.
type Config struct {
	Driver string `env:"STORAGE_DRIVER" envDefault:"local"`
	Root   string `env:"FOLDER_PATH" envDefault:"/tmp/files_manager"`
	S3     S3Config
}

// S3Config holds S3-compatible storage configuration.
type S3Config struct {
	Bucket    string `env:"S3_BUCKET"`
	AccessKey string `env:"S3_ACCESS_KEY"`
	SecretKey string `env:"S3_SECRET_KEY"`
	// Endpoint is set for MinIO and other S3-compatible services.
	Endpoint  string `env:"S3_ENDPOINT"`
	Region    string `env:"S3_REGION" envDefault:"us-east-1"`
	Prefix    string `env:"S3_PREFIX"`
	PathStyle bool   `env:"S3_PATH_STYLE"`
}

// FileInfo describes a stored object.
type FileInfo struct {
	Key         string
	ContentType string
	Size        int64
}

// Default configuration values.
const DefaultRegion = "us-east-1"

func (c *S3Config) applyDefaults() {
	if c.Region == "" {
		c.Region = DefaultRegion
	}
}

func (c *S3Config) validate() error {
	if c.Bucket == "" || c.AccessKey == "" || c.SecretKey == "" {
		return ErrInvalidConfig
	}
	return nil
}

// Open builds the backend named by cfg.Driver.
func Open(cfg Config) (Storage, error) {
	switch cfg.Driver {
	case "", DriverLocal:
		return NewLocal(cfg.Root)
	case DriverS3:
		return NewS3(cfg.S3)
	default:
		return nil, fmt.Errorf("%w: unknown driver %q", ErrInvalidConfig, cfg.Driver)
	}
}
