package app

import (
	"context"
	"time"

	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/artifacts"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/executions"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/notebooks"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/packages"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/pkg/apperr"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/pkg/logger"

	"github.com/google/uuid"
)

// notebookService implements the NotebookService interface
type notebookService struct {
	notebookRepo  notebooks.NotebookRepository
	executionRepo executions.ExecutionRepository
	packageRepo   packages.PackageRepository
	artifacts     artifacts.ArtifactConnector
	logger        logger.Logger
}

// NewNotebookService creates a new instance of NotebookService
func NewNotebookService(
	notebookRepo notebooks.NotebookRepository,
	executionRepo executions.ExecutionRepository,
	packageRepo packages.PackageRepository,
	artifactConnector artifacts.ArtifactConnector,
	logger logger.Logger,
) (notebooks.NotebookService, error) {
	return &notebookService{
		notebookRepo:  notebookRepo,
		executionRepo: executionRepo,
		packageRepo:   packageRepo,
		artifacts:     artifactConnector,
		logger:        logger,
	}, nil
}

// Create stores a new notebook owned by userID.
func (s *notebookService) Create(ctx context.Context, userID, title, content string) (*notebooks.Notebook, error) {
	now := time.Now().UTC()
	notebook := &notebooks.Notebook{
		ID:              uuid.NewString(),
		UserID:          userID,
		Title:           title,
		Content:         content,
		DateTimeCreated: now,
		DateTimeUpdated: now,
	}
	if err := notebook.Validate(); err != nil {
		return nil, apperr.Wrap(apperr.CodeInvalidInput, err, "invalid notebook")
	}

	if err := s.notebookRepo.Create(ctx, notebook); err != nil {
		return nil, err
	}
	return notebook, nil
}

// List retrieves the notebooks of userID.
func (s *notebookService) List(ctx context.Context, userID string, query *notebooks.NotebookQuery) ([]*notebooks.Notebook, error) {
	if query == nil {
		query = notebooks.NewNotebookQuery()
	}
	return s.notebookRepo.List(ctx, userID, query)
}

// GetByID retrieves a notebook of userID.
func (s *notebookService) GetByID(ctx context.Context, userID, notebookID string) (*notebooks.Notebook, error) {
	return ownedNotebook(ctx, s.notebookRepo, userID, notebookID)
}

// Update applies patch to a notebook of userID.
func (s *notebookService) Update(ctx context.Context, userID, notebookID string, patch *notebooks.NotebookPatch) (*notebooks.Notebook, error) {
	if err := patch.Validate(); err != nil {
		return nil, apperr.Wrap(apperr.CodeInvalidInput, err, "invalid notebook update")
	}

	notebook, err := ownedNotebook(ctx, s.notebookRepo, userID, notebookID)
	if err != nil {
		return nil, err
	}

	patch.Apply(notebook)
	notebook.DateTimeUpdated = time.Now().UTC()

	if err := s.notebookRepo.UpdateByID(ctx, notebook); err != nil {
		return nil, err
	}
	return notebook, nil
}

// DeleteByID deletes a notebook of userID with everything derived from it.
// Stored artifacts are removed after the rows; failures there are only logged.
func (s *notebookService) DeleteByID(ctx context.Context, userID, notebookID string) error {
	notebook, err := ownedNotebook(ctx, s.notebookRepo, userID, notebookID)
	if err != nil {
		return err
	}

	var keys []string
	executionList, err := s.executionRepo.ListByNotebookID(ctx, notebook.ID, "", 0)
	if err != nil {
		return err
	}
	for _, execution := range executionList {
		if execution.OutputKey != nil {
			keys = append(keys, *execution.OutputKey)
		}
	}

	meta, err := s.packageRepo.GetByNotebookID(ctx, notebook.ID)
	switch {
	case err == nil:
		keys = append(keys, meta.ArtifactKey)
	case apperr.CodeOf(err) != apperr.CodeNotFound:
		return err
	}

	if err := s.notebookRepo.DeleteByID(ctx, notebook.ID); err != nil {
		return err
	}

	for _, key := range keys {
		if err := s.artifacts.Delete(ctx, key); err != nil {
			s.logger.Warn("Failed to delete artifact ", key, ": ", err)
		}
	}
	return nil
}
