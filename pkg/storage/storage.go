package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"github.com/polinatih/school-proj/config"
)

// Client stores uploaded files in an S3-compatible bucket.
type Client struct {
	mc        *minio.Client
	bucket    string
	publicURL string
	logger    *zap.Logger
}

// NewClient connects to the object store and makes sure the bucket exists.
func NewClient(ctx context.Context, cfg *config.StorageConfig, logger *zap.Logger) (*Client, error) {
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}

	publicURL := strings.TrimRight(cfg.PublicBaseURL, "/")
	if publicURL == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		publicURL = scheme + "://" + cfg.Endpoint
	}

	c := &Client{mc: mc, bucket: cfg.Bucket, publicURL: publicURL, logger: logger}
	if err := c.ensureBucket(ctx); err != nil {
		return nil, err
	}

	logger.Info("object storage ready", zap.String("endpoint", cfg.Endpoint), zap.String("bucket", cfg.Bucket))
	return c, nil
}

func (c *Client) ensureBucket(ctx context.Context) error {
	exists, err := c.mc.BucketExists(ctx, c.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", c.bucket, err)
	}
	if exists {
		return nil
	}
	if err := c.mc.MakeBucket(ctx, c.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("create bucket %s: %w", c.bucket, err)
	}
	return nil
}

// Put uploads an object and returns its public URL.
func (c *Client) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	_, err := c.mc.PutObject(ctx, c.bucket, key, r, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}
	return c.URL(key), nil
}

// Remove deletes an object.
func (c *Client) Remove(ctx context.Context, key string) error {
	return c.mc.RemoveObject(ctx, c.bucket, key, minio.RemoveObjectOptions{})
}

// URL is the public address of key.
func (c *Client) URL(key string) string {
	return c.publicURL + "/" + c.bucket + "/" + key
}
