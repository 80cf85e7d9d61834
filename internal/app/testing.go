//go:build integration
// +build integration

package app

import (
	"context"
	"testing"
	"time"

	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/artifacts"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/executions"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/notebooks"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/packages"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/reproducibility"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/users"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/infrastructure/analyzer"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/infrastructure/connector"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/infrastructure/htmldiff"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/infrastructure/packager"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/infrastructure/persistence"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/pkg/config"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/pkg/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// Test constants for the notebook environment
const (
	TestImage    = "rocker/verse"
	TestRVersion = "4.3.1"
)

// MockRunner is a mock implementation of the executions.Runner interface
type MockRunner struct {
	mock.Mock
}

// Render mocks the Render method
func (m *MockRunner) Render(ctx context.Context, title, content string) (*executions.RenderResult, error) {
	args := m.Called(ctx, title, content)
	var result *executions.RenderResult
	if r := args.Get(0); r != nil {
		result = r.(*executions.RenderResult)
	}
	return result, args.Error(1)
}

// MockTracer is a mock implementation of the reproducibility.DependencyTracer interface
type MockTracer struct {
	mock.Mock
}

// Trace mocks the Trace method
func (m *MockTracer) Trace(ctx context.Context, title, content string) ([]reproducibility.Dependency, error) {
	args := m.Called(ctx, title, content)
	var deps []reproducibility.Dependency
	if d := args.Get(0); d != nil {
		deps = d.([]reproducibility.Dependency)
	}
	return deps, args.Error(1)
}

// TestServices holds all application services and dependencies for testing
type TestServices struct {
	AuthService      users.AuthService
	NotebookService  notebooks.NotebookService
	ExecutionService executions.ExecutionService
	AnalysisService  reproducibility.AnalysisService
	DiffService      reproducibility.DiffService
	PackageService   packages.PackageService

	Runner    *MockRunner
	Tracer    *MockTracer
	Artifacts artifacts.ArtifactConnector
	DBContext *persistence.TestContext
}

// SetupTestServices wires every service against an in-memory SQLite database
// and a temporary artifact directory
func SetupTestServices(t *testing.T) *TestServices {
	t.Helper()

	ctx := context.Background()
	logger := testutil.SetupTestLogger(t)
	dbContext := persistence.SetupTestDB(t, config.SqliteDbType)

	artifactConnector, err := connector.NewArtifactConnector(ctx, &config.ArtifactSettings{
		Provider: config.LocalArtifactProvider,
		RootDir:  t.TempDir(),
	}, logger)
	require.NoError(t, err, "Failed to create artifact connector")

	docker := &config.DockerSettings{Image: TestImage, RVersion: TestRVersion}
	runner := &MockRunner{}
	tracer := &MockTracer{}

	staticAnalyzer, err := analyzer.NewStaticAnalyzer(logger)
	require.NoError(t, err)
	differ, err := htmldiff.NewOutputDiffer(logger)
	require.NoError(t, err)
	builder, err := packager.NewBuilder(logger)
	require.NoError(t, err)

	ts := &TestServices{
		Runner:    runner,
		Tracer:    tracer,
		Artifacts: artifactConnector,
		DBContext: dbContext,
	}

	ts.AuthService, err = NewAuthService(dbContext.UserRepo, dbContext.TokenRepo, &config.AuthSettings{
		TokenTTL:   time.Hour,
		BcryptCost: bcrypt.MinCost,
	}, logger)
	require.NoError(t, err, "Failed to create auth service")

	ts.NotebookService, err = NewNotebookService(dbContext.NotebookRepo, dbContext.ExecutionRepo, dbContext.PackageRepo, artifactConnector, logger)
	require.NoError(t, err, "Failed to create notebook service")

	ts.ExecutionService, err = NewExecutionService(dbContext.NotebookRepo, dbContext.ExecutionRepo, runner, artifactConnector, docker.ImageRef(), logger)
	require.NoError(t, err, "Failed to create execution service")

	ts.AnalysisService, err = NewAnalysisService(dbContext.NotebookRepo, dbContext.AnalysisRepo, staticAnalyzer, tracer, docker.ImageRef(), logger)
	require.NoError(t, err, "Failed to create analysis service")

	ts.DiffService, err = NewDiffService(dbContext.NotebookRepo, dbContext.ExecutionRepo, artifactConnector, differ, logger)
	require.NoError(t, err, "Failed to create diff service")

	ts.PackageService, err = NewPackageService(dbContext.NotebookRepo, dbContext.PackageRepo, dbContext.AnalysisRepo, staticAnalyzer, builder, artifactConnector, docker, logger)
	require.NoError(t, err, "Failed to create package service")

	return ts
}

// CreateTestNotebook stores a notebook with the sample R Markdown content for a new user
func CreateTestNotebook(t *testing.T, ts *TestServices) *notebooks.Notebook {
	t.Helper()

	notebook, err := ts.NotebookService.Create(context.Background(), uuid.NewString(), "Iris exploration", testutil.SampleRMarkdown)
	require.NoError(t, err)
	return notebook
}
