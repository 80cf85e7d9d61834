package app

import (
	"context"

	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/artifacts"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/executions"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/notebooks"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/reproducibility"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/pkg/apperr"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/pkg/logger"
)

// diffService implements the DiffService interface
type diffService struct {
	notebookRepo  notebooks.NotebookRepository
	executionRepo executions.ExecutionRepository
	artifacts     artifacts.ArtifactConnector
	differ        reproducibility.OutputDiffer
	logger        logger.Logger
}

// NewDiffService creates a new instance of DiffService
func NewDiffService(
	notebookRepo notebooks.NotebookRepository,
	executionRepo executions.ExecutionRepository,
	artifactConnector artifacts.ArtifactConnector,
	differ reproducibility.OutputDiffer,
	logger logger.Logger,
) (reproducibility.DiffService, error) {
	return &diffService{
		notebookRepo:  notebookRepo,
		executionRepo: executionRepo,
		artifacts:     artifactConnector,
		differ:        differ,
		logger:        logger,
	}, nil
}

// GenerateDiff compares the outputs of two executions of a notebook.
func (s *diffService) GenerateDiff(ctx context.Context, userID, notebookID string, baseExecutionID, headExecutionID *string) (*reproducibility.OutputDiff, error) {
	notebook, err := ownedNotebook(ctx, s.notebookRepo, userID, notebookID)
	if err != nil {
		return nil, err
	}

	base, head, err := s.targets(ctx, notebook.ID, baseExecutionID, headExecutionID)
	if err != nil {
		return nil, err
	}

	baseHTML, err := s.output(ctx, base)
	if err != nil {
		return nil, err
	}
	headHTML, err := s.output(ctx, head)
	if err != nil {
		return nil, err
	}

	diff, err := s.differ.Diff(baseHTML, headHTML)
	if err != nil {
		return nil, err
	}
	diff.BaseExecutionID = base.ID
	diff.HeadExecutionID = head.ID

	s.logger.Info("Compared executions ", base.ID, " and ", head.ID, ": ", diff.Added, " added, ", diff.Removed, " removed")
	return diff, nil
}

// RenderHTML renders a diff as a standalone HTML page.
func (s *diffService) RenderHTML(diff *reproducibility.OutputDiff, title string) ([]byte, error) {
	return s.differ.RenderHTML(diff, title)
}

// targets resolves the executions to compare. Without IDs the two most recent
// succeeded executions are used, the older one as base.
func (s *diffService) targets(ctx context.Context, notebookID string, baseID, headID *string) (*executions.Execution, *executions.Execution, error) {
	if baseID == nil && headID == nil {
		latest, err := s.executionRepo.ListByNotebookID(ctx, notebookID, executions.StatusSucceeded, 2)
		if err != nil {
			return nil, nil, err
		}
		if len(latest) < 2 {
			return nil, nil, apperr.InvalidInput("at least two successful executions are required for a diff")
		}
		return latest[1], latest[0], nil
	}

	if baseID == nil || headID == nil {
		return nil, nil, apperr.InvalidInput("both base_execution_id and head_execution_id are required")
	}

	base, err := notebookExecution(ctx, s.executionRepo, notebookID, *baseID)
	if err != nil {
		return nil, nil, err
	}
	head, err := notebookExecution(ctx, s.executionRepo, notebookID, *headID)
	if err != nil {
		return nil, nil, err
	}
	return base, head, nil
}

func (s *diffService) output(ctx context.Context, execution *executions.Execution) ([]byte, error) {
	if execution.Status != executions.StatusSucceeded || execution.OutputKey == nil {
		return nil, apperr.InvalidInput("execution %s has no output to compare", execution.ID)
	}
	return s.artifacts.Download(ctx, *execution.OutputKey)
}
