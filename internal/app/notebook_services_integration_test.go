//go:build integration
// +build integration

package app

import (
	"context"
	"testing"

	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/executions"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/notebooks"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/pkg/apperr"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNotebookService_CreateGetList(t *testing.T) {
	ts := SetupTestServices(t)
	ctx := context.Background()

	notebook := CreateTestNotebook(t, ts)

	fetched, err := ts.NotebookService.GetByID(ctx, notebook.UserID, notebook.ID)
	require.NoError(t, err)
	assert.Equal(t, notebook.Title, fetched.Title)

	list, err := ts.NotebookService.List(ctx, notebook.UserID, nil)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, notebook.ID, list[0].ID)

	others, err := ts.NotebookService.List(ctx, uuid.NewString(), nil)
	require.NoError(t, err)
	assert.Empty(t, others)
}

func TestNotebookService_ForeignNotebookIsNotFound(t *testing.T) {
	ts := SetupTestServices(t)
	ctx := context.Background()

	notebook := CreateTestNotebook(t, ts)
	stranger := uuid.NewString()

	_, err := ts.NotebookService.GetByID(ctx, stranger, notebook.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	title := "hijacked"
	_, err = ts.NotebookService.Update(ctx, stranger, notebook.ID, &notebooks.NotebookPatch{Title: &title})
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	assert.ErrorIs(t, ts.NotebookService.DeleteByID(ctx, stranger, notebook.ID), apperr.ErrNotFound)
}

func TestNotebookService_CreateInvalid(t *testing.T) {
	ts := SetupTestServices(t)

	_, err := ts.NotebookService.Create(context.Background(), uuid.NewString(), "", "x <- 1")
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestNotebookService_Update(t *testing.T) {
	ts := SetupTestServices(t)
	ctx := context.Background()

	notebook := CreateTestNotebook(t, ts)
	content := "x <- 1\n"

	updated, err := ts.NotebookService.Update(ctx, notebook.UserID, notebook.ID, &notebooks.NotebookPatch{Content: &content})
	require.NoError(t, err)
	assert.Equal(t, notebook.Title, updated.Title)
	assert.Equal(t, content, updated.Content)
	assert.False(t, updated.DateTimeUpdated.Before(notebook.DateTimeUpdated))

	empty := ""
	_, err = ts.NotebookService.Update(ctx, notebook.UserID, notebook.ID, &notebooks.NotebookPatch{Title: &empty})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestNotebookService_DeleteRemovesArtifacts(t *testing.T) {
	ts := SetupTestServices(t)
	ctx := context.Background()

	notebook := CreateTestNotebook(t, ts)
	ts.Runner.On("Render", mock.Anything, notebook.Title, notebook.Content).
		Return(&executions.RenderResult{HTML: []byte("<html><body><p>ok</p></body></html>")}, nil)

	execution, err := ts.ExecutionService.Execute(ctx, notebook.UserID, notebook.ID)
	require.NoError(t, err)
	require.NotNil(t, execution.OutputKey)

	meta, err := ts.PackageService.Generate(ctx, notebook.UserID, notebook.ID)
	require.NoError(t, err)

	require.NoError(t, ts.NotebookService.DeleteByID(ctx, notebook.UserID, notebook.ID))

	_, err = ts.NotebookService.GetByID(ctx, notebook.UserID, notebook.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = ts.Artifacts.Download(ctx, *execution.OutputKey)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	_, err = ts.Artifacts.Download(ctx, meta.ArtifactKey)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
