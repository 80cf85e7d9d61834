//go:build unit
// +build unit

package v1

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/chumaana/reproducible-notebook-app-sub000/internal/pkg/apperr"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupTestRouter() (*gin.Engine, *MockAuthService, *MockNotebookService) {
	gin.SetMode(gin.TestMode)

	mockAuthService := new(MockAuthService)
	mockNotebookService := new(MockNotebookService)

	r := gin.New()
	SetupRoutes(r, mockAuthService, mockNotebookService, new(MockExecutionService), new(MockAnalysisService), new(MockDiffService), new(MockPackageService))
	return r, mockAuthService, mockNotebookService
}

// TestSetupRoutes_RoutesRegistered verifies that routes are properly registered
func TestSetupRoutes_RoutesRegistered(t *testing.T) {
	r, mockAuthService, _ := setupTestRouter()
	mockAuthService.On("Authenticate", mock.Anything, mock.Anything).Return(nil, apperr.Unauthorized("authentication required"))

	tests := []struct {
		method string
		url    string
	}{
		{"POST", "/api/v1/auth/logout"},
		{"GET", "/api/v1/auth/me"},
		{"GET", "/api/v1/notebooks"},
		{"POST", "/api/v1/notebooks"},
		{"GET", "/api/v1/notebooks/1"},
		{"PUT", "/api/v1/notebooks/1"},
		{"PATCH", "/api/v1/notebooks/1"},
		{"DELETE", "/api/v1/notebooks/1"},
		{"POST", "/api/v1/notebooks/1/execute"},
		{"GET", "/api/v1/notebooks/1/executions"},
		{"GET", "/api/v1/notebooks/1/download"},
		{"POST", "/api/v1/notebooks/1/reproducibility"},
		{"GET", "/api/v1/notebooks/1/reproducibility"},
		{"POST", "/api/v1/notebooks/1/generate_diff"},
		{"POST", "/api/v1/notebooks/1/generate_package"},
		{"GET", "/api/v1/notebooks/1/package_status"},
		{"GET", "/api/v1/notebooks/1/download_package"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.url, func(t *testing.T) {
			req, _ := http.NewRequest(tt.method, tt.url, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			// Protected routes exist and reject anonymous requests
			assert.Equal(t, http.StatusUnauthorized, w.Code, "Route should require a token")
		})
	}
}

func TestSetupRoutes_PublicRoutes(t *testing.T) {
	r, mockAuthService, _ := setupTestRouter()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/healthz", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	for _, url := range []string{"/api/v1/auth/register", "/api/v1/auth/login"} {
		req, _ := http.NewRequest(http.MethodPost, url, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code, url)
	}

	mockAuthService.AssertNotCalled(t, "Authenticate", mock.Anything, mock.Anything)
}

func TestSetupRoutes_AuthenticatedRequest(t *testing.T) {
	r, mockAuthService, mockNotebookService := setupTestRouter()
	user := testUser()

	mockAuthService.On("Authenticate", mock.Anything, "abc").Return(user, nil)
	mockNotebookService.On("GetByID", mock.Anything, user.ID, "42").Return(nil, apperr.NotFound("notebook 42 not found"))

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/notebooks/42", nil)
	req.Header.Set("Authorization", "Bearer abc")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"notebook 42 not found"}`, w.Body.String())
	mockNotebookService.AssertExpectations(t)
}
