//go:build integration
// +build integration

package persistence

import (
	"strings"
	"testing"
	"time"

	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/executions"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/notebooks"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/packages"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/reproducibility"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/users"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/pkg/config"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/pkg/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// TestEnvironment is the environment fingerprinted into test content hashes
const TestEnvironment = "rocker/verse:4.3.1"

// TestContext holds test database and repositories
type TestContext struct {
	DB            *gorm.DB
	UserRepo      users.UserRepository
	TokenRepo     users.TokenRepository
	NotebookRepo  notebooks.NotebookRepository
	ExecutionRepo executions.ExecutionRepository
	AnalysisRepo  reproducibility.AnalysisRepository
	PackageRepo   packages.PackageRepository
}

// SetupTestDB initializes test database with automatic cleanup
func SetupTestDB(t *testing.T, dbType string) *TestContext {
	t.Helper()

	var settings config.DatabaseSettings
	cleanupFunc := func() {}

	switch dbType {
	case config.SqliteDbType:
		settings = config.DatabaseSettings{
			Type: config.SqliteDbType,
			DSN:  ":memory:",
		}

	case config.PostgresDbType:
		uniqueDBName := "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
		settings = config.DatabaseSettings{
			Type: config.PostgresDbType,
			DSN:  "user=postgres password=postgres host=localhost port=5432 sslmode=disable",
			Name: uniqueDBName,
		}
		cleanupFunc = func() {
			adminDSN := "user=postgres password=postgres host=localhost port=5432 dbname=postgres sslmode=disable"
			_ = DropDatabase(adminDSN, uniqueDBName)
		}

	default:
		t.Fatalf("Unsupported database type: %s", dbType)
	}

	db, err := NewDBConnection(settings)
	require.NoError(t, err, "Failed to create database connection")

	t.Cleanup(func() {
		_ = CloseDB(db)
		cleanupFunc()
	})

	require.NoError(t, Migrate(db), "Failed to migrate schema")

	logger := testutil.SetupTestLogger(t)

	tc := &TestContext{DB: db}
	tc.UserRepo, err = NewGormUserRepository(db, logger)
	require.NoError(t, err)
	tc.TokenRepo, err = NewGormTokenRepository(db, logger)
	require.NoError(t, err)
	tc.NotebookRepo, err = NewGormNotebookRepository(db, logger)
	require.NoError(t, err)
	tc.ExecutionRepo, err = NewGormExecutionRepository(db, logger)
	require.NoError(t, err)
	tc.AnalysisRepo, err = NewGormAnalysisRepository(db, logger)
	require.NoError(t, err)
	tc.PackageRepo, err = NewGormPackageRepository(db, logger)
	require.NoError(t, err)

	return tc
}

// CreateTestUser returns a valid, unsaved user
func CreateTestUser(t *testing.T, username string) *users.User {
	t.Helper()

	return &users.User{
		ID:              uuid.NewString(),
		Username:        username,
		PasswordHash:    "$2a$04$abcdefghijklmnopqrstuuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ",
		DateTimeCreated: time.Now().UTC(),
	}
}

// CreateTestToken returns a valid, unsaved token of userID expiring after ttl
func CreateTestToken(t *testing.T, userID string, ttl time.Duration) *users.Token {
	t.Helper()

	now := time.Now().UTC()
	return &users.Token{
		Key:             strings.Repeat("0", users.TokenKeyLength-16) + strings.ReplaceAll(uuid.NewString(), "-", "")[:16],
		UserID:          userID,
		DateTimeCreated: now.Add(-time.Minute),
		ExpiresAt:       now.Add(-time.Minute).Add(ttl),
	}
}

// CreateTestNotebook returns a valid, unsaved notebook of userID
func CreateTestNotebook(t *testing.T, userID, title string) *notebooks.Notebook {
	t.Helper()

	now := time.Now().UTC()
	return &notebooks.Notebook{
		ID:              uuid.NewString(),
		UserID:          userID,
		Title:           title,
		Content:         testutil.SampleRMarkdown,
		DateTimeCreated: now,
		DateTimeUpdated: now,
	}
}

// CreateTestExecution returns a valid, unsaved execution of notebook started at started
func CreateTestExecution(t *testing.T, notebook *notebooks.Notebook, status string, started time.Time) *executions.Execution {
	t.Helper()

	execution := &executions.Execution{
		ID:              uuid.NewString(),
		NotebookID:      notebook.ID,
		UserID:          notebook.UserID,
		Status:          status,
		ContentHash:     notebooks.ContentHash(notebook.Content, TestEnvironment),
		DateTimeStarted: started,
	}
	if status == executions.StatusSucceeded || status == executions.StatusFailed {
		finished := started.Add(time.Second)
		execution.DateTimeFinished = &finished
	}
	if status == executions.StatusSucceeded {
		key := executions.OutputKey(notebook.ID, execution.ID)
		execution.OutputKey = &key
	}
	return execution
}

// CreateTestAnalysis returns a valid, unsaved analysis of notebook
func CreateTestAnalysis(t *testing.T, notebook *notebooks.Notebook, created time.Time) *reproducibility.Analysis {
	t.Helper()

	findings := []reproducibility.Finding{
		{Rule: reproducibility.RuleMissingSeed, Severity: reproducibility.SeverityWarning, Line: 22, CodeLine: 5, Column: 6, Message: "random numbers without set.seed()"},
	}
	return &reproducibility.Analysis{
		ID:          uuid.NewString(),
		NotebookID:  notebook.ID,
		UserID:      notebook.UserID,
		ContentHash: notebooks.ContentHash(notebook.Content, TestEnvironment),
		Score:       reproducibility.Score(findings),
		Findings:    findings,
		Dependencies: []reproducibility.Dependency{
			{Name: "ggplot2", Version: "3.4.4", Source: reproducibility.DependencySourceTraced},
		},
		DateTimeCreated: created,
	}
}

// CreateTestPackage returns a valid, unsaved package meta of notebook
func CreateTestPackage(t *testing.T, notebook *notebooks.Notebook) *packages.PackageMeta {
	t.Helper()

	hash := notebooks.ContentHash(notebook.Content, TestEnvironment)
	return &packages.PackageMeta{
		ID:              uuid.NewString(),
		NotebookID:      notebook.ID,
		UserID:          notebook.UserID,
		ContentHash:     hash,
		ArtifactKey:     packages.ArtifactKey(notebook.ID, hash),
		Size:            2048,
		DateTimeCreated: time.Now().UTC(),
	}
}
