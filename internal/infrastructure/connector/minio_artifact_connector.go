package connector

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/artifacts"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/pkg/apperr"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/pkg/config"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/pkg/logger"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioArtifactConnector stores artifacts as objects of a MinIO bucket
type MinioArtifactConnector struct {
	client *minio.Client
	bucket string
	logger logger.Logger
}

// NewMinioArtifactConnector creates a new instance of MinioArtifactConnector.
// The bucket is created when it does not exist.
func NewMinioArtifactConnector(ctx context.Context, settings *config.ArtifactSettings, logger logger.Logger) (*MinioArtifactConnector, error) {
	client, err := minio.New(settings.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(settings.AccessKey, settings.SecretKey, ""),
		Secure: settings.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, settings.Bucket)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeUnavailable, err, "failed to reach artifact bucket %s", settings.Bucket)
	}
	if !exists {
		if err := client.MakeBucket(ctx, settings.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", settings.Bucket, err)
		}
		logger.Info("Created artifact bucket ", settings.Bucket)
	}

	return &MinioArtifactConnector{
		client: client,
		bucket: settings.Bucket,
		logger: logger,
	}, nil
}

// Upload puts data under key.
func (c *MinioArtifactConnector) Upload(ctx context.Context, key string, data []byte) (*artifacts.Object, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}

	ct := contentType(data)
	info, err := c.client.PutObject(ctx, c.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: ct,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload artifact %s: %w", key, err)
	}

	c.logger.Info("Uploaded artifact ", key, " to bucket ", c.bucket)
	return &artifacts.Object{
		Key:         key,
		Size:        info.Size,
		ContentType: ct,
	}, nil
}

// Download reads the object of key.
func (c *MinioArtifactConnector) Download(ctx context.Context, key string) ([]byte, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}

	obj, err := c.client.GetObject(ctx, c.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, translateError(key, err)
	}
	defer func() {
		_ = obj.Close()
	}()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, translateError(key, err)
	}
	return data, nil
}

// Delete removes the object of key.
func (c *MinioArtifactConnector) Delete(ctx context.Context, key string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	if err := c.client.RemoveObject(ctx, c.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return translateError(key, err)
	}

	c.logger.Info("Deleted artifact ", key, " from bucket ", c.bucket)
	return nil
}

func translateError(key string, err error) error {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey":
		return apperr.NotFound("artifact %s not found", key)
	case "NoSuchBucket":
		return apperr.Wrap(apperr.CodeUnavailable, err, "artifact bucket missing")
	default:
		return fmt.Errorf("artifact %s: %w", key, err)
	}
}
