//go:build unit
// +build unit

package v1

import (
	"context"

	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/executions"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/notebooks"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/packages"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/reproducibility"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/users"

	"github.com/stretchr/testify/mock"
)

// MockAuthService is a mock implementation of users.AuthService
type MockAuthService struct {
	mock.Mock
}

// Register mocks the Register method
func (m *MockAuthService) Register(ctx context.Context, credentials *users.Credentials) (*users.User, *users.Token, error) {
	args := m.Called(ctx, credentials)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*users.User), args.Get(1).(*users.Token), args.Error(2)
}

// Login mocks the Login method
func (m *MockAuthService) Login(ctx context.Context, credentials *users.Credentials) (*users.Token, error) {
	args := m.Called(ctx, credentials)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.Token), args.Error(1)
}

// Logout mocks the Logout method
func (m *MockAuthService) Logout(ctx context.Context, tokenKey string) error {
	args := m.Called(ctx, tokenKey)
	return args.Error(0)
}

// Authenticate mocks the Authenticate method
func (m *MockAuthService) Authenticate(ctx context.Context, tokenKey string) (*users.User, error) {
	args := m.Called(ctx, tokenKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.User), args.Error(1)
}

// MockNotebookService is a mock implementation of notebooks.NotebookService
type MockNotebookService struct {
	mock.Mock
}

// Create mocks the Create method
func (m *MockNotebookService) Create(ctx context.Context, userID, title, content string) (*notebooks.Notebook, error) {
	args := m.Called(ctx, userID, title, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notebooks.Notebook), args.Error(1)
}

// List mocks the List method
func (m *MockNotebookService) List(ctx context.Context, userID string, query *notebooks.NotebookQuery) ([]*notebooks.Notebook, error) {
	args := m.Called(ctx, userID, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*notebooks.Notebook), args.Error(1)
}

// GetByID mocks the GetByID method
func (m *MockNotebookService) GetByID(ctx context.Context, userID, notebookID string) (*notebooks.Notebook, error) {
	args := m.Called(ctx, userID, notebookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notebooks.Notebook), args.Error(1)
}

// Update mocks the Update method
func (m *MockNotebookService) Update(ctx context.Context, userID, notebookID string, patch *notebooks.NotebookPatch) (*notebooks.Notebook, error) {
	args := m.Called(ctx, userID, notebookID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notebooks.Notebook), args.Error(1)
}

// DeleteByID mocks the DeleteByID method
func (m *MockNotebookService) DeleteByID(ctx context.Context, userID, notebookID string) error {
	args := m.Called(ctx, userID, notebookID)
	return args.Error(0)
}

// MockExecutionService is a mock implementation of executions.ExecutionService
type MockExecutionService struct {
	mock.Mock
}

// Execute mocks the Execute method
func (m *MockExecutionService) Execute(ctx context.Context, userID, notebookID string) (*executions.Execution, error) {
	args := m.Called(ctx, userID, notebookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*executions.Execution), args.Error(1)
}

// List mocks the List method
func (m *MockExecutionService) List(ctx context.Context, userID, notebookID string) ([]*executions.Execution, error) {
	args := m.Called(ctx, userID, notebookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*executions.Execution), args.Error(1)
}

// GetByID mocks the GetByID method
func (m *MockExecutionService) GetByID(ctx context.Context, userID, notebookID, executionID string) (*executions.Execution, error) {
	args := m.Called(ctx, userID, notebookID, executionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*executions.Execution), args.Error(1)
}

// DownloadOutput mocks the DownloadOutput method
func (m *MockExecutionService) DownloadOutput(ctx context.Context, userID, notebookID string, executionID *string) ([]byte, *executions.Execution, error) {
	args := m.Called(ctx, userID, notebookID, executionID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]byte), args.Get(1).(*executions.Execution), args.Error(2)
}

// MockAnalysisService is a mock implementation of reproducibility.AnalysisService
type MockAnalysisService struct {
	mock.Mock
}

// Analyze mocks the Analyze method
func (m *MockAnalysisService) Analyze(ctx context.Context, userID, notebookID string) (*reproducibility.Report, error) {
	args := m.Called(ctx, userID, notebookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reproducibility.Report), args.Error(1)
}

// GetLatest mocks the GetLatest method
func (m *MockAnalysisService) GetLatest(ctx context.Context, userID, notebookID string) (*reproducibility.Report, error) {
	args := m.Called(ctx, userID, notebookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reproducibility.Report), args.Error(1)
}

// MockDiffService is a mock implementation of reproducibility.DiffService
type MockDiffService struct {
	mock.Mock
}

// GenerateDiff mocks the GenerateDiff method
func (m *MockDiffService) GenerateDiff(ctx context.Context, userID, notebookID string, baseExecutionID, headExecutionID *string) (*reproducibility.OutputDiff, error) {
	args := m.Called(ctx, userID, notebookID, baseExecutionID, headExecutionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reproducibility.OutputDiff), args.Error(1)
}

// RenderHTML mocks the RenderHTML method
func (m *MockDiffService) RenderHTML(diff *reproducibility.OutputDiff, title string) ([]byte, error) {
	args := m.Called(diff, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockPackageService is a mock implementation of packages.PackageService
type MockPackageService struct {
	mock.Mock
}

// Generate mocks the Generate method
func (m *MockPackageService) Generate(ctx context.Context, userID, notebookID string) (*packages.PackageMeta, error) {
	args := m.Called(ctx, userID, notebookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*packages.PackageMeta), args.Error(1)
}

// Status mocks the Status method
func (m *MockPackageService) Status(ctx context.Context, userID, notebookID string) (*packages.Status, error) {
	args := m.Called(ctx, userID, notebookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*packages.Status), args.Error(1)
}

// Download mocks the Download method
func (m *MockPackageService) Download(ctx context.Context, userID, notebookID string) ([]byte, string, error) {
	args := m.Called(ctx, userID, notebookID)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).([]byte), args.String(1), args.Error(2)
}
