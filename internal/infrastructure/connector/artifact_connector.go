package connector

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/artifacts"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/pkg/apperr"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/pkg/config"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/pkg/logger"

	"github.com/gabriel-vasile/mimetype"
)

// NewArtifactConnector creates the connector selected by settings.Provider
func NewArtifactConnector(ctx context.Context, settings *config.ArtifactSettings, logger logger.Logger) (artifacts.ArtifactConnector, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid artifact settings: %w", err)
	}

	switch settings.Provider {
	case config.LocalArtifactProvider:
		return NewLocalArtifactConnector(settings, logger)
	case config.MinioArtifactProvider:
		return NewMinioArtifactConnector(ctx, settings, logger)
	default:
		return nil, fmt.Errorf("unsupported artifact provider: %s", settings.Provider)
	}
}

// validateKey accepts slash separated relative keys without . or .. segments.
func validateKey(key string) error {
	if key == "" || strings.HasPrefix(key, "/") || strings.Contains(key, "\\") {
		return apperr.InvalidInput("invalid artifact key %q", key)
	}
	if path.Clean(key) != key {
		return apperr.InvalidInput("invalid artifact key %q", key)
	}
	for _, segment := range strings.Split(key, "/") {
		if segment == ".." || segment == "." {
			return apperr.InvalidInput("invalid artifact key %q", key)
		}
	}
	return nil
}

// contentType sniffs the media type of data.
func contentType(data []byte) string {
	return mimetype.Detect(data).String()
}
