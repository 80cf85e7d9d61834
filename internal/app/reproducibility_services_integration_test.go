//go:build integration
// +build integration

package app

import (
	"context"
	"errors"
	"testing"

	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/executions"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/notebooks"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/reproducibility"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAnalysisService_AnalyzeMergesTracedVersions(t *testing.T) {
	ts := SetupTestServices(t)
	ctx := context.Background()

	notebook := CreateTestNotebook(t, ts)
	ts.Tracer.On("Trace", mock.Anything, notebook.Title, notebook.Content).Return([]reproducibility.Dependency{
		{Name: "ggplot2", Version: "3.4.4", Source: reproducibility.DependencySourceTraced},
		{Name: "scales", Version: "1.3.0", Source: reproducibility.DependencySourceTraced},
	}, nil)

	report, err := ts.AnalysisService.Analyze(ctx, notebook.UserID, notebook.ID)
	require.NoError(t, err)
	assert.True(t, report.UpToDate)

	analysis := report.Analysis
	assert.Nil(t, analysis.TraceError)
	assert.Equal(t, 80, analysis.Score)
	require.Len(t, analysis.Findings, 2)
	assert.Equal(t, reproducibility.RuleHardcodedPath, analysis.Findings[0].Rule)
	assert.Equal(t, reproducibility.RuleMissingSeed, analysis.Findings[1].Rule)

	assert.Equal(t, []reproducibility.Dependency{
		{Name: "dplyr", Source: reproducibility.DependencySourceStatic},
		{Name: "ggplot2", Version: "3.4.4", Source: reproducibility.DependencySourceTraced},
		{Name: "scales", Version: "1.3.0", Source: reproducibility.DependencySourceTraced},
	}, analysis.Dependencies)
}

func TestAnalysisService_TraceFailureFallsBackToStatic(t *testing.T) {
	ts := SetupTestServices(t)
	ctx := context.Background()

	notebook := CreateTestNotebook(t, ts)
	ts.Tracer.On("Trace", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("docker daemon not reachable"))

	report, err := ts.AnalysisService.Analyze(ctx, notebook.UserID, notebook.ID)
	require.NoError(t, err)

	require.NotNil(t, report.Analysis.TraceError)
	assert.Contains(t, *report.Analysis.TraceError, "docker daemon")
	require.Len(t, report.Analysis.Dependencies, 2)
	for _, dep := range report.Analysis.Dependencies {
		assert.Equal(t, reproducibility.DependencySourceStatic, dep.Source)
		assert.Empty(t, dep.Version)
	}
}

func TestAnalysisService_GetLatestTracksFreshness(t *testing.T) {
	ts := SetupTestServices(t)
	ctx := context.Background()

	notebook := CreateTestNotebook(t, ts)
	ts.Tracer.On("Trace", mock.Anything, mock.Anything, mock.Anything).Return([]reproducibility.Dependency{}, nil)

	_, err := ts.AnalysisService.GetLatest(ctx, notebook.UserID, notebook.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	analyzed, err := ts.AnalysisService.Analyze(ctx, notebook.UserID, notebook.ID)
	require.NoError(t, err)

	latest, err := ts.AnalysisService.GetLatest(ctx, notebook.UserID, notebook.ID)
	require.NoError(t, err)
	assert.Equal(t, analyzed.Analysis.ID, latest.Analysis.ID)
	assert.True(t, latest.UpToDate)

	content := "set.seed(1)\nx <- rnorm(3)\n"
	_, err = ts.NotebookService.Update(ctx, notebook.UserID, notebook.ID, &notebooks.NotebookPatch{Content: &content})
	require.NoError(t, err)

	stale, err := ts.AnalysisService.GetLatest(ctx, notebook.UserID, notebook.ID)
	require.NoError(t, err)
	assert.False(t, stale.UpToDate)
}

func TestDiffService_DefaultTargets(t *testing.T) {
	ts := SetupTestServices(t)
	ctx := context.Background()

	notebook := CreateTestNotebook(t, ts)
	ts.Runner.On("Render", mock.Anything, mock.Anything, mock.Anything).
		Return(&executions.RenderResult{HTML: []byte("<html><body><p>mean 5.84</p><p>sd 0.83</p></body></html>")}, nil).Once()
	ts.Runner.On("Render", mock.Anything, mock.Anything, mock.Anything).
		Return(&executions.RenderResult{HTML: []byte("<html><body><p>mean 5.91</p><p>sd 0.83</p></body></html>")}, nil).Once()

	_, err := ts.DiffService.GenerateDiff(ctx, notebook.UserID, notebook.ID, nil, nil)
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	base, err := ts.ExecutionService.Execute(ctx, notebook.UserID, notebook.ID)
	require.NoError(t, err)
	head, err := ts.ExecutionService.Execute(ctx, notebook.UserID, notebook.ID)
	require.NoError(t, err)

	diff, err := ts.DiffService.GenerateDiff(ctx, notebook.UserID, notebook.ID, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, base.ID, diff.BaseExecutionID)
	assert.Equal(t, head.ID, diff.HeadExecutionID)
	assert.False(t, diff.Identical)
	assert.Equal(t, 1, diff.Added)
	assert.Equal(t, 1, diff.Removed)

	page, err := ts.DiffService.RenderHTML(diff, notebook.Title)
	require.NoError(t, err)
	assert.Contains(t, string(page), "mean 5.91")
}

func TestDiffService_ExplicitTargets(t *testing.T) {
	ts := SetupTestServices(t)
	ctx := context.Background()

	notebook := CreateTestNotebook(t, ts)
	ts.Runner.On("Render", mock.Anything, mock.Anything, mock.Anything).
		Return(&executions.RenderResult{HTML: []byte("<p>same</p>")}, nil).Once()
	ts.Runner.On("Render", mock.Anything, mock.Anything, mock.Anything).
		Return(&executions.RenderResult{Log: "boom"}, apperr.New(apperr.CodeExecutionFailed, "render failed")).Once()
	ts.Runner.On("Render", mock.Anything, mock.Anything, mock.Anything).
		Return(&executions.RenderResult{HTML: []byte("<div><p>same</p></div>")}, nil).Once()

	first, err := ts.ExecutionService.Execute(ctx, notebook.UserID, notebook.ID)
	require.NoError(t, err)
	failed, err := ts.ExecutionService.Execute(ctx, notebook.UserID, notebook.ID)
	require.NoError(t, err)
	third, err := ts.ExecutionService.Execute(ctx, notebook.UserID, notebook.ID)
	require.NoError(t, err)

	diff, err := ts.DiffService.GenerateDiff(ctx, notebook.UserID, notebook.ID, &first.ID, &third.ID)
	require.NoError(t, err)
	assert.True(t, diff.Identical)

	_, err = ts.DiffService.GenerateDiff(ctx, notebook.UserID, notebook.ID, &first.ID, &failed.ID)
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	_, err = ts.DiffService.GenerateDiff(ctx, notebook.UserID, notebook.ID, &first.ID, nil)
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}
