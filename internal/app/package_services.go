package app

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/artifacts"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/notebooks"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/packages"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/reproducibility"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/pkg/apperr"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/pkg/config"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/pkg/logger"

	"github.com/google/uuid"
)

var fileNameChars = regexp.MustCompile(`[^a-z0-9]+`)

// packageService implements the PackageService interface
type packageService struct {
	notebookRepo notebooks.NotebookRepository
	packageRepo  packages.PackageRepository
	analysisRepo reproducibility.AnalysisRepository
	analyzer     reproducibility.StaticAnalyzer
	builder      packages.Builder
	artifacts    artifacts.ArtifactConnector
	docker       *config.DockerSettings
	logger       logger.Logger
}

// NewPackageService creates a new instance of PackageService
func NewPackageService(
	notebookRepo notebooks.NotebookRepository,
	packageRepo packages.PackageRepository,
	analysisRepo reproducibility.AnalysisRepository,
	analyzer reproducibility.StaticAnalyzer,
	builder packages.Builder,
	artifactConnector artifacts.ArtifactConnector,
	docker *config.DockerSettings,
	logger logger.Logger,
) (packages.PackageService, error) {
	if docker == nil || docker.Image == "" || docker.RVersion == "" {
		return nil, fmt.Errorf("docker image and R version are required")
	}

	return &packageService{
		notebookRepo: notebookRepo,
		packageRepo:  packageRepo,
		analysisRepo: analysisRepo,
		analyzer:     analyzer,
		builder:      builder,
		artifacts:    artifactConnector,
		docker:       docker,
		logger:       logger,
	}, nil
}

// Generate builds and stores the package of the current content of a notebook.
func (s *packageService) Generate(ctx context.Context, userID, notebookID string) (*packages.PackageMeta, error) {
	notebook, err := ownedNotebook(ctx, s.notebookRepo, userID, notebookID)
	if err != nil {
		return nil, err
	}

	contentHash := notebooks.ContentHash(notebook.Content, s.docker.ImageRef())
	deps, err := s.dependencies(ctx, notebook, contentHash)
	if err != nil {
		return nil, err
	}

	archive, err := s.builder.Build(&packages.BuildSpec{
		Title:        notebook.Title,
		Content:      notebook.Content,
		Image:        s.docker.Image,
		RVersion:     s.docker.RVersion,
		ContentHash:  contentHash,
		Dependencies: deps,
	})
	if err != nil {
		return nil, err
	}

	previous, err := s.packageRepo.GetByNotebookID(ctx, notebook.ID)
	if err != nil && !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}

	key := packages.ArtifactKey(notebook.ID, contentHash)
	obj, err := s.artifacts.Upload(ctx, key, archive)
	if err != nil {
		return nil, fmt.Errorf("failed to store package: %w", err)
	}

	meta := &packages.PackageMeta{
		ID:              uuid.NewString(),
		NotebookID:      notebook.ID,
		UserID:          userID,
		ContentHash:     contentHash,
		ArtifactKey:     key,
		Size:            obj.Size,
		DateTimeCreated: time.Now().UTC(),
	}
	if err := s.packageRepo.Upsert(ctx, meta); err != nil {
		return nil, err
	}

	if previous != nil && previous.ArtifactKey != key {
		if err := s.artifacts.Delete(ctx, previous.ArtifactKey); err != nil {
			s.logger.Warn("Failed to delete previous package ", previous.ArtifactKey, ": ", err)
		}
	}

	s.logger.Info("Generated package of notebook ", notebook.ID, " with ", len(deps), " dependencies")
	return meta, nil
}

// dependencies prefers the versions of an analysis of the same content and
// falls back to static extraction.
func (s *packageService) dependencies(ctx context.Context, notebook *notebooks.Notebook, contentHash string) ([]reproducibility.Dependency, error) {
	analysis, err := s.analysisRepo.GetLatestByNotebookID(ctx, notebook.ID)
	switch {
	case err == nil && analysis.ContentHash == contentHash:
		return analysis.Dependencies, nil
	case err != nil && !errors.Is(err, apperr.ErrNotFound):
		return nil, err
	}
	return s.analyzer.Dependencies(notebook.Content), nil
}

// Status reports whether the stored package matches the current content.
func (s *packageService) Status(ctx context.Context, userID, notebookID string) (*packages.Status, error) {
	notebook, err := ownedNotebook(ctx, s.notebookRepo, userID, notebookID)
	if err != nil {
		return nil, err
	}

	status := &packages.Status{
		ContentHash: notebooks.ContentHash(notebook.Content, s.docker.ImageRef()),
	}

	meta, err := s.packageRepo.GetByNotebookID(ctx, notebook.ID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return status, nil
		}
		return nil, err
	}

	status.Exists = true
	status.UpToDate = meta.ContentHash == status.ContentHash
	status.PackageHash = &meta.ContentHash
	status.Size = &meta.Size
	status.DateTimeCreated = &meta.DateTimeCreated
	return status, nil
}

// Download returns the stored archive of a notebook and a file name for it.
func (s *packageService) Download(ctx context.Context, userID, notebookID string) ([]byte, string, error) {
	notebook, err := ownedNotebook(ctx, s.notebookRepo, userID, notebookID)
	if err != nil {
		return nil, "", err
	}

	meta, err := s.packageRepo.GetByNotebookID(ctx, notebook.ID)
	if err != nil {
		return nil, "", err
	}

	data, err := s.artifacts.Download(ctx, meta.ArtifactKey)
	if err != nil {
		return nil, "", err
	}
	return data, packageFileName(notebook.Title), nil
}

func packageFileName(title string) string {
	name := strings.Trim(fileNameChars.ReplaceAllString(strings.ToLower(title), "_"), "_")
	if name == "" {
		name = "notebook"
	}
	return name + "_reproducible.zip"
}
