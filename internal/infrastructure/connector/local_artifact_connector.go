package connector

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/artifacts"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/pkg/apperr"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/pkg/config"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/pkg/logger"
)

// LocalArtifactConnector stores artifacts as files below a root directory
type LocalArtifactConnector struct {
	root   string
	logger logger.Logger
}

// NewLocalArtifactConnector creates a new instance of LocalArtifactConnector
func NewLocalArtifactConnector(settings *config.ArtifactSettings, logger logger.Logger) (*LocalArtifactConnector, error) {
	root, err := filepath.Abs(settings.RootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve artifact root: %w", err)
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create artifact root: %w", err)
	}

	return &LocalArtifactConnector{
		root:   root,
		logger: logger,
	}, nil
}

func (c *LocalArtifactConnector) path(key string) (string, error) {
	if err := validateKey(key); err != nil {
		return "", err
	}
	return filepath.Join(c.root, filepath.FromSlash(key)), nil
}

// Upload writes data to the file of key, replacing it atomically.
func (c *LocalArtifactConnector) Upload(_ context.Context, key string, data []byte) (*artifacts.Object, error) {
	p, err := c.path(key)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create artifact directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(p), ".upload-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create artifact: %w", err)
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return nil, fmt.Errorf("failed to write artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("failed to write artifact: %w", err)
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		return nil, fmt.Errorf("failed to store artifact: %w", err)
	}

	c.logger.Info("Stored artifact ", key)
	return &artifacts.Object{
		Key:         key,
		Size:        int64(len(data)),
		ContentType: contentType(data),
	}, nil
}

// Download reads the file of key.
func (c *LocalArtifactConnector) Download(_ context.Context, key string) ([]byte, error) {
	p, err := c.path(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperr.NotFound("artifact %s not found", key)
		}
		return nil, fmt.Errorf("failed to read artifact: %w", err)
	}
	return data, nil
}

// Delete removes the file of key.
func (c *LocalArtifactConnector) Delete(_ context.Context, key string) error {
	p, err := c.path(key)
	if err != nil {
		return err
	}

	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete artifact: %w", err)
	}

	c.logger.Info("Deleted artifact ", key)
	return nil
}
