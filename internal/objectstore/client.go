// Package objectstore is the gateway to the MinIO bucket holding the audio
// library. The catalog never writes to the bucket; it lists, reads, and
// presigns.
package objectstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/luis122448/catalog-music-service/internal/config"
	"github.com/luis122448/catalog-music-service/internal/domain"
	"github.com/luis122448/catalog-music-service/internal/logger"
)

// ErrNotFound is returned when an object vanished between listing and fetch.
var ErrNotFound = errors.New("object not found")

type Client struct {
	mc     *minio.Client
	bucket string
	log    *logger.Logger
}

func New(cfg *config.Config, log *logger.Logger) (*Client, error) {
	mc, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	return &Client{
		mc:     mc,
		bucket: cfg.MinioBucket,
		log:    log.WithComponent("objectstore"),
	}, nil
}

// ListAll recursively lists every object in the bucket. Errors on individual
// listing entries are logged and skipped; ListAll fails only when the listing
// produced nothing but errors.
func (c *Client) ListAll(ctx context.Context) ([]domain.ObjectInfo, error) {
	var (
		objects []domain.ObjectInfo
		lastErr error
	)

	for obj := range c.mc.ListObjects(ctx, c.bucket, minio.ListObjectsOptions{Recursive: true}) {
		if obj.Err != nil {
			c.log.Error("Failed to list object", "error", obj.Err)
			lastErr = obj.Err
			continue
		}
		objects = append(objects, domain.ObjectInfo{
			Key:   obj.Key,
			Size:  obj.Size,
			IsDir: strings.HasSuffix(obj.Key, "/"),
		})
	}

	if len(objects) == 0 && lastErr != nil {
		return nil, fmt.Errorf("failed to list bucket %s: %w", c.bucket, lastErr)
	}
	return objects, nil
}

// Open returns a reader for the object at key. The caller must close it on
// every exit path.
func (c *Client) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	obj, err := c.mc.GetObject(ctx, c.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object %s: %w", key, err)
	}

	// GetObject is lazy; surface missing keys now instead of on first read.
	if _, err := obj.Stat(); err != nil {
		obj.Close() //nolint:errcheck // already failing
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return nil, fmt.Errorf("failed to stat object %s: %w", key, err)
	}

	return obj, nil
}

// PresignedURL issues a time-limited GET URL for the object at key.
func (c *Client) PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	u, err := c.mc.PresignedGetObject(ctx, c.bucket, key, ttl, nil)
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return "", fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return "", fmt.Errorf("failed to presign object %s: %w", key, err)
	}
	return u.String(), nil
}
