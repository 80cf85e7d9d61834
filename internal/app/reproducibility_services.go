package app

import (
	"context"
	"fmt"
	"time"

	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/notebooks"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/reproducibility"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/pkg/logger"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// analysisService implements the AnalysisService interface
type analysisService struct {
	notebookRepo notebooks.NotebookRepository
	analysisRepo reproducibility.AnalysisRepository
	analyzer     reproducibility.StaticAnalyzer
	tracer       reproducibility.DependencyTracer
	environment  string
	logger       logger.Logger
}

// NewAnalysisService creates a new instance of AnalysisService.
// A nil tracer disables dependency tracing; only static dependencies are reported then.
func NewAnalysisService(
	notebookRepo notebooks.NotebookRepository,
	analysisRepo reproducibility.AnalysisRepository,
	analyzer reproducibility.StaticAnalyzer,
	tracer reproducibility.DependencyTracer,
	environment string,
	logger logger.Logger,
) (reproducibility.AnalysisService, error) {
	if environment == "" {
		return nil, fmt.Errorf("execution environment is required")
	}

	return &analysisService{
		notebookRepo: notebookRepo,
		analysisRepo: analysisRepo,
		analyzer:     analyzer,
		tracer:       tracer,
		environment:  environment,
		logger:       logger,
	}, nil
}

// Analyze runs the static analysis and the dependency trace of a notebook side by side.
func (s *analysisService) Analyze(ctx context.Context, userID, notebookID string) (*reproducibility.Report, error) {
	notebook, err := ownedNotebook(ctx, s.notebookRepo, userID, notebookID)
	if err != nil {
		return nil, err
	}

	var (
		findings []reproducibility.Finding
		static   []reproducibility.Dependency
		traced   []reproducibility.Dependency
		traceErr *string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		findings = s.analyzer.Analyze(notebook.Content)
		static = s.analyzer.Dependencies(notebook.Content)
		return nil
	})
	if s.tracer != nil {
		g.Go(func() error {
			deps, err := s.tracer.Trace(gctx, notebook.Title, notebook.Content)
			if err != nil {
				// Tracing is best effort; static dependencies are still reported.
				s.logger.Warn("Dependency trace of notebook ", notebook.ID, " failed: ", err)
				msg := err.Error()
				traceErr = &msg
				return nil
			}
			traced = deps
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if findings == nil {
		findings = []reproducibility.Finding{}
	}

	analysis := &reproducibility.Analysis{
		ID:              uuid.NewString(),
		NotebookID:      notebook.ID,
		UserID:          userID,
		ContentHash:     notebooks.ContentHash(notebook.Content, s.environment),
		Score:           reproducibility.Score(findings),
		Findings:        findings,
		Dependencies:    reproducibility.MergeDependencies(static, traced),
		TraceError:      traceErr,
		DateTimeCreated: time.Now().UTC(),
	}
	if err := s.analysisRepo.Create(ctx, analysis); err != nil {
		return nil, err
	}

	return &reproducibility.Report{Analysis: analysis, UpToDate: true}, nil
}

// GetLatest retrieves the most recent analysis of a notebook.
func (s *analysisService) GetLatest(ctx context.Context, userID, notebookID string) (*reproducibility.Report, error) {
	notebook, err := ownedNotebook(ctx, s.notebookRepo, userID, notebookID)
	if err != nil {
		return nil, err
	}

	analysis, err := s.analysisRepo.GetLatestByNotebookID(ctx, notebook.ID)
	if err != nil {
		return nil, err
	}

	return &reproducibility.Report{
		Analysis: analysis,
		UpToDate: analysis.ContentHash == notebooks.ContentHash(notebook.Content, s.environment),
	}, nil
}
