package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/artifacts"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/executions"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/notebooks"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/pkg/apperr"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/pkg/executor"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/pkg/logger"

	"github.com/google/uuid"
)

// executionService implements the ExecutionService interface
type executionService struct {
	notebookRepo  notebooks.NotebookRepository
	executionRepo executions.ExecutionRepository
	runner        executions.Runner
	artifacts     artifacts.ArtifactConnector
	environment   string
	logger        logger.Logger
}

// NewExecutionService creates a new instance of ExecutionService.
// environment identifies the image notebooks run in and is part of every content hash.
func NewExecutionService(
	notebookRepo notebooks.NotebookRepository,
	executionRepo executions.ExecutionRepository,
	runner executions.Runner,
	artifactConnector artifacts.ArtifactConnector,
	environment string,
	logger logger.Logger,
) (executions.ExecutionService, error) {
	if environment == "" {
		return nil, fmt.Errorf("execution environment is required")
	}

	return &executionService{
		notebookRepo:  notebookRepo,
		executionRepo: executionRepo,
		runner:        runner,
		artifacts:     artifactConnector,
		environment:   environment,
		logger:        logger,
	}, nil
}

// Execute renders the current content of a notebook and records the outcome.
func (s *executionService) Execute(ctx context.Context, userID, notebookID string) (*executions.Execution, error) {
	notebook, err := ownedNotebook(ctx, s.notebookRepo, userID, notebookID)
	if err != nil {
		return nil, err
	}

	execution := &executions.Execution{
		ID:              uuid.NewString(),
		NotebookID:      notebook.ID,
		UserID:          userID,
		Status:          executions.StatusRunning,
		ContentHash:     notebooks.ContentHash(notebook.Content, s.environment),
		DateTimeStarted: time.Now().UTC(),
	}
	if err := s.executionRepo.Create(ctx, execution); err != nil {
		return nil, err
	}
	s.logger.Info("Started execution ", execution.ID, " of notebook ", notebook.ID)

	result, renderErr := s.runner.Render(ctx, notebook.Title, notebook.Content)

	// The outcome is recorded even when the request was cancelled.
	finishCtx := context.WithoutCancel(ctx)

	var renderLog string
	if result != nil {
		renderLog = result.Log
	}

	if renderErr != nil {
		s.logger.Warn("Execution ", execution.ID, " failed: ", renderErr)
		failed, err := s.finish(finishCtx, execution, executions.StatusFailed, nil, appendLog(renderLog, renderErr.Error()))
		if err != nil {
			return nil, err
		}
		// Only failures of the notebook itself are a result; the rest is reported to the caller.
		if apperr.CodeOf(renderErr) != apperr.CodeExecutionFailed {
			return nil, renderErr
		}
		return failed, nil
	}

	key := executions.OutputKey(notebook.ID, execution.ID)
	if _, err := s.artifacts.Upload(finishCtx, key, result.HTML); err != nil {
		if _, ferr := s.finish(finishCtx, execution, executions.StatusFailed, nil, appendLog(renderLog, "failed to store output")); ferr != nil {
			s.logger.Error("Failed to record failed execution ", execution.ID, ": ", ferr)
		}
		return nil, fmt.Errorf("failed to store output of execution %s: %w", execution.ID, err)
	}

	return s.finish(finishCtx, execution, executions.StatusSucceeded, &key, renderLog)
}

func (s *executionService) finish(ctx context.Context, execution *executions.Execution, status string, outputKey *string, log string) (*executions.Execution, error) {
	finished := time.Now().UTC()
	execution.Status = status
	execution.OutputKey = outputKey
	execution.Log = executor.Tail(log, executions.MaxLogSize)
	execution.DateTimeFinished = &finished

	if err := s.executionRepo.UpdateByID(ctx, execution); err != nil {
		return nil, err
	}

	s.logger.Info("Execution ", execution.ID, " finished with status ", status, " after ", execution.Duration())
	return execution, nil
}

func appendLog(log, line string) string {
	if log == "" {
		return line
	}
	return strings.TrimRight(log, "\n") + "\n" + line
}

// List retrieves the executions of a notebook, newest first.
func (s *executionService) List(ctx context.Context, userID, notebookID string) ([]*executions.Execution, error) {
	notebook, err := ownedNotebook(ctx, s.notebookRepo, userID, notebookID)
	if err != nil {
		return nil, err
	}
	return s.executionRepo.ListByNotebookID(ctx, notebook.ID, "", 0)
}

// GetByID retrieves an execution of a notebook.
func (s *executionService) GetByID(ctx context.Context, userID, notebookID, executionID string) (*executions.Execution, error) {
	notebook, err := ownedNotebook(ctx, s.notebookRepo, userID, notebookID)
	if err != nil {
		return nil, err
	}
	return notebookExecution(ctx, s.executionRepo, notebook.ID, executionID)
}

// DownloadOutput returns the rendered HTML of an execution.
func (s *executionService) DownloadOutput(ctx context.Context, userID, notebookID string, executionID *string) ([]byte, *executions.Execution, error) {
	notebook, err := ownedNotebook(ctx, s.notebookRepo, userID, notebookID)
	if err != nil {
		return nil, nil, err
	}

	var execution *executions.Execution
	if executionID == nil {
		latest, err := s.executionRepo.ListByNotebookID(ctx, notebook.ID, executions.StatusSucceeded, 1)
		if err != nil {
			return nil, nil, err
		}
		if len(latest) == 0 {
			return nil, nil, apperr.NotFound("notebook %s has no successful execution", notebook.ID)
		}
		execution = latest[0]
	} else {
		execution, err = notebookExecution(ctx, s.executionRepo, notebook.ID, *executionID)
		if err != nil {
			return nil, nil, err
		}
	}

	if execution.OutputKey == nil {
		return nil, nil, apperr.NotFound("execution %s has no output", execution.ID)
	}

	html, err := s.artifacts.Download(ctx, *execution.OutputKey)
	if err != nil {
		return nil, nil, err
	}
	return html, execution, nil
}

// notebookExecution loads an execution and checks that it belongs to notebookID.
func notebookExecution(ctx context.Context, repo executions.ExecutionRepository, notebookID, executionID string) (*executions.Execution, error) {
	execution, err := repo.GetByID(ctx, executionID)
	if err != nil {
		return nil, err
	}
	if execution.NotebookID != notebookID {
		return nil, apperr.NotFound("execution with ID %s not found", executionID)
	}
	return execution, nil
}
