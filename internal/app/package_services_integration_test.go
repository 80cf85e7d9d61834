//go:build integration
// +build integration

package app

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/notebooks"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/reproducibility"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func archiveFile(t *testing.T, data []byte, name string) string {
	t.Helper()

	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	for _, f := range reader.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		defer rc.Close()
		content, err := io.ReadAll(rc)
		require.NoError(t, err)
		return string(content)
	}
	t.Fatalf("archive has no %s", name)
	return ""
}

func TestPackageService_GenerateStatusDownload(t *testing.T) {
	ts := SetupTestServices(t)
	ctx := context.Background()

	notebook := CreateTestNotebook(t, ts)

	status, err := ts.PackageService.Status(ctx, notebook.UserID, notebook.ID)
	require.NoError(t, err)
	assert.False(t, status.Exists)
	assert.False(t, status.UpToDate)
	assert.Nil(t, status.PackageHash)

	_, _, err = ts.PackageService.Download(ctx, notebook.UserID, notebook.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	meta, err := ts.PackageService.Generate(ctx, notebook.UserID, notebook.ID)
	require.NoError(t, err)
	assert.Greater(t, meta.Size, int64(0))

	status, err = ts.PackageService.Status(ctx, notebook.UserID, notebook.ID)
	require.NoError(t, err)
	assert.True(t, status.Exists)
	assert.True(t, status.UpToDate)
	require.NotNil(t, status.PackageHash)
	assert.Equal(t, status.ContentHash, *status.PackageHash)

	data, name, err := ts.PackageService.Download(ctx, notebook.UserID, notebook.ID)
	require.NoError(t, err)
	assert.Equal(t, "iris_exploration_reproducible.zip", name)
	assert.Contains(t, archiveFile(t, data, "Dockerfile"), "FROM rocker/verse:4.3.1")
	assert.Equal(t, notebook.Content, archiveFile(t, data, "notebook.Rmd"))

	content := "library(data.table)\n"
	_, err = ts.NotebookService.Update(ctx, notebook.UserID, notebook.ID, &notebooks.NotebookPatch{Content: &content})
	require.NoError(t, err)

	status, err = ts.PackageService.Status(ctx, notebook.UserID, notebook.ID)
	require.NoError(t, err)
	assert.True(t, status.Exists)
	assert.False(t, status.UpToDate)
}

func TestPackageService_UsesTracedVersionsOfCurrentAnalysis(t *testing.T) {
	ts := SetupTestServices(t)
	ctx := context.Background()

	notebook := CreateTestNotebook(t, ts)
	ts.Tracer.On("Trace", mock.Anything, mock.Anything, mock.Anything).Return([]reproducibility.Dependency{
		{Name: "ggplot2", Version: "3.4.4", Source: reproducibility.DependencySourceTraced},
	}, nil)
	_, err := ts.AnalysisService.Analyze(ctx, notebook.UserID, notebook.ID)
	require.NoError(t, err)

	_, err = ts.PackageService.Generate(ctx, notebook.UserID, notebook.ID)
	require.NoError(t, err)

	data, _, err := ts.PackageService.Download(ctx, notebook.UserID, notebook.ID)
	require.NoError(t, err)
	install := archiveFile(t, data, "install.R")
	assert.Contains(t, install, "ggplot2")
	assert.Contains(t, install, "3.4.4")
	assert.Contains(t, install, "dplyr")
}

func TestPackageService_RegenerationReplacesPreviousArchive(t *testing.T) {
	ts := SetupTestServices(t)
	ctx := context.Background()

	notebook := CreateTestNotebook(t, ts)
	first, err := ts.PackageService.Generate(ctx, notebook.UserID, notebook.ID)
	require.NoError(t, err)

	content := "x <- 1\n"
	_, err = ts.NotebookService.Update(ctx, notebook.UserID, notebook.ID, &notebooks.NotebookPatch{Content: &content})
	require.NoError(t, err)

	second, err := ts.PackageService.Generate(ctx, notebook.UserID, notebook.ID)
	require.NoError(t, err)
	assert.NotEqual(t, first.ArtifactKey, second.ArtifactKey)

	_, err = ts.Artifacts.Download(ctx, first.ArtifactKey)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
