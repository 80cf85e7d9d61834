//go:build integration
// +build integration

package persistence

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/executions"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/notebooks"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/infrastructure/persistence/models"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/pkg/apperr"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/pkg/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotebookSqliteRepository_CreateAndGet(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	notebook := CreateTestNotebook(t, uuid.NewString(), "Iris")
	require.NoError(t, ctx.NotebookRepo.Create(context.Background(), notebook))

	fetched, err := ctx.NotebookRepo.GetByID(context.Background(), notebook.ID)
	require.NoError(t, err)
	assert.Equal(t, notebook.Title, fetched.Title)
	assert.Equal(t, notebook.Content, fetched.Content)
}

func TestNotebookSqliteRepository_GetByID_NotFound(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	_, err := ctx.NotebookRepo.GetByID(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestNotebookSqliteRepository_List(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)
	bg := context.Background()

	owner := uuid.NewString()
	base := time.Now().UTC()
	for i := 1; i <= 3; i++ {
		notebook := CreateTestNotebook(t, owner, fmt.Sprintf("analysis-%d", i))
		notebook.DateTimeUpdated = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, ctx.NotebookRepo.Create(bg, notebook))
	}
	require.NoError(t, ctx.NotebookRepo.Create(bg, CreateTestNotebook(t, uuid.NewString(), "analysis-foreign")))

	t.Run("default order is newest update first", func(t *testing.T) {
		list, err := ctx.NotebookRepo.List(bg, owner, notebooks.NewNotebookQuery())
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, "analysis-3", list[0].Title)
		assert.Equal(t, "analysis-1", list[2].Title)
	})

	t.Run("title filter and pagination", func(t *testing.T) {
		query := &notebooks.NotebookQuery{Title: "analysis", SortBy: "title", SortOrder: "asc", Limit: 1, Offset: 1}
		list, err := ctx.NotebookRepo.List(bg, owner, query)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "analysis-2", list[0].Title)
	})

	t.Run("wildcards in the title filter match literally", func(t *testing.T) {
		require.NoError(t, ctx.NotebookRepo.Create(bg, CreateTestNotebook(t, owner, "100% coverage")))
		require.NoError(t, ctx.NotebookRepo.Create(bg, CreateTestNotebook(t, owner, "run_2")))

		for filter, expected := range map[string][]string{
			"%":      {"100% coverage"},
			"_":      {"run_2"},
			"0% c":   {"100% coverage"},
			`\`:      {},
			"analys": {"analysis-1", "analysis-2", "analysis-3"},
		} {
			query := &notebooks.NotebookQuery{Title: filter, SortBy: "title", SortOrder: "asc"}
			list, err := ctx.NotebookRepo.List(bg, owner, query)
			require.NoError(t, err, filter)

			titles := []string{}
			for _, n := range list {
				titles = append(titles, n.Title)
			}
			assert.Equal(t, expected, titles, filter)
		}
	})

	t.Run("invalid query", func(t *testing.T) {
		_, err := ctx.NotebookRepo.List(bg, owner, &notebooks.NotebookQuery{SortBy: "content"})
		assert.ErrorIs(t, err, apperr.ErrInvalidInput)
	})
}

func TestNotebookSqliteRepository_UpdateByID(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)
	bg := context.Background()

	notebook := CreateTestNotebook(t, uuid.NewString(), "Draft")
	require.NoError(t, ctx.NotebookRepo.Create(bg, notebook))

	notebook.Title = "Final"
	notebook.DateTimeUpdated = notebook.DateTimeUpdated.Add(time.Minute)
	require.NoError(t, ctx.NotebookRepo.UpdateByID(bg, notebook))

	fetched, err := ctx.NotebookRepo.GetByID(bg, notebook.ID)
	require.NoError(t, err)
	assert.Equal(t, "Final", fetched.Title)

	missing := CreateTestNotebook(t, uuid.NewString(), "Missing")
	assert.ErrorIs(t, ctx.NotebookRepo.UpdateByID(bg, missing), apperr.ErrNotFound)
}

func TestNotebookSqliteRepository_DeleteByIDCascades(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)
	bg := context.Background()

	notebook := CreateTestNotebook(t, uuid.NewString(), "Doomed")
	require.NoError(t, ctx.NotebookRepo.Create(bg, notebook))
	require.NoError(t, ctx.ExecutionRepo.Create(bg, CreateTestExecution(t, notebook, executions.StatusSucceeded, time.Now().UTC())))
	require.NoError(t, ctx.AnalysisRepo.Create(bg, CreateTestAnalysis(t, notebook, time.Now().UTC())))
	require.NoError(t, ctx.PackageRepo.Upsert(bg, CreateTestPackage(t, notebook)))

	kept := CreateTestNotebook(t, notebook.UserID, "Kept")
	require.NoError(t, ctx.NotebookRepo.Create(bg, kept))
	require.NoError(t, ctx.ExecutionRepo.Create(bg, CreateTestExecution(t, kept, executions.StatusFailed, time.Now().UTC())))

	require.NoError(t, ctx.NotebookRepo.DeleteByID(bg, notebook.ID))

	_, err := ctx.NotebookRepo.GetByID(bg, notebook.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	var count int64
	require.NoError(t, ctx.DB.Model(&models.ExecutionModel{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
	require.NoError(t, ctx.DB.Model(&models.AnalysisModel{}).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, ctx.DB.Model(&models.PackageModel{}).Count(&count).Error)
	assert.Zero(t, count)

	assert.ErrorIs(t, ctx.NotebookRepo.DeleteByID(bg, notebook.ID), apperr.ErrNotFound)
}
