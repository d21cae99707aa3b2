// Package minio archives generated PDB structures in S3-compatible object
// storage and hands out presigned download links for them.
package minio

import (
	"context"
	"io"
	"net/url"
	"sync"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/minio/minio-go/v7/pkg/lifecycle"

	"github.com/turtacn/molforge/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/molforge/pkg/errors"
)

// MinIOAPI is the subset of *minio.Client used here.
type MinIOAPI interface {
	ListBuckets(ctx context.Context) ([]minio.BucketInfo, error)
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	SetBucketLifecycle(ctx context.Context, bucketName string, config *lifecycle.Configuration) error
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (*minio.Object, error)
	StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
	PresignedGetObject(ctx context.Context, bucketName, objectName string, expiry time.Duration, reqParams url.Values) (*url.URL, error)
}

// MinIOConfig holds connection and bucket parameters.
type MinIOConfig struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	UseSSL          bool
	Region          string
	Bucket          string
	PresignExpiry   time.Duration
	// RetentionDays expires archived structures; zero keeps them forever.
	RetentionDays int
}

var ErrMinIOClientClosed = errors.New(errors.ErrCodeStorageError, "minio client is closed")

// MinIOClient owns the connection and the archive bucket.
type MinIOClient struct {
	client MinIOAPI
	config *MinIOConfig
	logger logging.Logger
	mu     sync.RWMutex
	closed bool
}

// NewMinIOClient connects, verifies credentials and ensures the bucket exists.
func NewMinIOClient(cfg *MinIOConfig, log logging.Logger) (*MinIOClient, error) {
	applyDefaults(cfg)

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStorageError, "failed to create minio client")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := client.ListBuckets(ctx); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeServiceUnavailable, "failed to connect to minio")
	}

	mc, err := newWithAPI(ctx, client, cfg, log)
	if err != nil {
		return nil, err
	}
	log.Info("MinIO client connected",
		logging.String("endpoint", cfg.Endpoint),
		logging.String("bucket", cfg.Bucket),
		logging.Bool("ssl", cfg.UseSSL))
	return mc, nil
}

// newWithAPI wires an already constructed API, used by NewMinIOClient and tests.
func newWithAPI(ctx context.Context, api MinIOAPI, cfg *MinIOConfig, log logging.Logger) (*MinIOClient, error) {
	applyDefaults(cfg)
	mc := &MinIOClient{client: api, config: cfg, logger: log}
	if err := mc.EnsureBucket(ctx); err != nil {
		return nil, err
	}
	mc.setupLifecycle(ctx)
	return mc, nil
}

func applyDefaults(cfg *MinIOConfig) {
	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}
	if cfg.Bucket == "" {
		cfg.Bucket = "molforge-structures"
	}
	if cfg.PresignExpiry == 0 {
		cfg.PresignExpiry = time.Hour
	}
}

// EnsureBucket creates the archive bucket when it is missing.
func (c *MinIOClient) EnsureBucket(ctx context.Context) error {
	exists, err := c.client.BucketExists(ctx, c.config.Bucket)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeStorageError, "failed to check bucket existence")
	}
	if exists {
		return nil
	}
	if err := c.client.MakeBucket(ctx, c.config.Bucket, minio.MakeBucketOptions{Region: c.config.Region}); err != nil {
		return errors.Wrap(err, errors.ErrCodeStorageError, "failed to create bucket "+c.config.Bucket)
	}
	c.logger.Info("Created bucket", logging.String("bucket", c.config.Bucket))
	return nil
}

// setupLifecycle applies the retention rule. Failure only warns since some
// S3-compatible stores do not implement lifecycle configuration.
func (c *MinIOClient) setupLifecycle(ctx context.Context) {
	if c.config.RetentionDays <= 0 {
		return
	}
	lc := lifecycle.NewConfiguration()
	lc.Rules = []lifecycle.Rule{
		{
			ID:         "structure-retention",
			Status:     "Enabled",
			RuleFilter: lifecycle.Filter{Prefix: structurePrefix},
			Expiration: lifecycle.Expiration{Days: lifecycle.ExpirationDays(c.config.RetentionDays)},
		},
	}
	if err := c.client.SetBucketLifecycle(ctx, c.config.Bucket, lc); err != nil {
		c.logger.Warn("Failed to set lifecycle for structure bucket", logging.Err(err))
	}
}

// Ping checks that the bucket is reachable.
func (c *MinIOClient) Ping(ctx context.Context) error {
	c.mu.RLock()
	closed := c.closed
	c.mu.RUnlock()
	if closed {
		return ErrMinIOClientClosed
	}
	if _, err := c.client.BucketExists(ctx, c.config.Bucket); err != nil {
		return errors.Wrap(err, errors.ErrCodeStorageError, "minio unreachable")
	}
	return nil
}

// Close marks the client closed. minio-go holds no long-lived connections.
func (c *MinIOClient) Close() error {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	return nil
}

//Personal.AI order the ending
