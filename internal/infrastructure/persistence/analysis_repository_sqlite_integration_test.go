//go:build integration
// +build integration

package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/chumaana/reproducible-notebook-app-sub000/internal/pkg/apperr"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/pkg/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalysisSqliteRepository_GetLatest(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)
	bg := context.Background()

	notebook := CreateTestNotebook(t, uuid.NewString(), "Analyze me")
	older := CreateTestAnalysis(t, notebook, time.Now().UTC().Add(-time.Hour))
	newer := CreateTestAnalysis(t, notebook, time.Now().UTC())
	traceErr := "docker not available"
	newer.TraceError = &traceErr
	require.NoError(t, ctx.AnalysisRepo.Create(bg, newer))
	require.NoError(t, ctx.AnalysisRepo.Create(bg, older))

	latest, err := ctx.AnalysisRepo.GetLatestByNotebookID(bg, notebook.ID)
	require.NoError(t, err)
	assert.Equal(t, newer.ID, latest.ID)
	assert.Equal(t, newer.Score, latest.Score)
	assert.Equal(t, newer.Findings, latest.Findings)
	assert.Equal(t, newer.Dependencies, latest.Dependencies)
	require.NotNil(t, latest.TraceError)
	assert.Equal(t, traceErr, *latest.TraceError)
}

func TestAnalysisSqliteRepository_NotFound(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	_, err := ctx.AnalysisRepo.GetLatestByNotebookID(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestPackageSqliteRepository_Upsert(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)
	bg := context.Background()

	notebook := CreateTestNotebook(t, uuid.NewString(), "Package me")
	first := CreateTestPackage(t, notebook)
	require.NoError(t, ctx.PackageRepo.Upsert(bg, first))

	second := CreateTestPackage(t, notebook)
	second.Size = 4096
	require.NoError(t, ctx.PackageRepo.Upsert(bg, second))

	meta, err := ctx.PackageRepo.GetByNotebookID(bg, notebook.ID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, meta.ID)
	assert.Equal(t, int64(4096), meta.Size)

	require.NoError(t, ctx.PackageRepo.DeleteByNotebookID(bg, notebook.ID))
	_, err = ctx.PackageRepo.GetByNotebookID(bg, notebook.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
