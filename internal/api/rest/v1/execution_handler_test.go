//go:build unit
// +build unit

package v1

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/executions"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/pkg/apperr"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testExecution(notebookID, status string) *executions.Execution {
	started := time.Now().Add(-2 * time.Second)
	finished := started.Add(2 * time.Second)
	e := &executions.Execution{
		ID:               uuid.NewString(),
		NotebookID:       notebookID,
		UserID:           uuid.NewString(),
		Status:           status,
		ContentHash:      strings.Repeat("a", 64),
		Log:              "processing file: notebook.Rmd",
		DateTimeStarted:  started,
		DateTimeFinished: &finished,
	}
	if status == executions.StatusSucceeded {
		key := executions.OutputKey(notebookID, e.ID)
		e.OutputKey = &key
	}
	return e
}

func TestExecute(t *testing.T) {
	user := testUser()
	notebookID := uuid.NewString()
	execution := testExecution(notebookID, executions.StatusSucceeded)

	mockExecutionService := new(MockExecutionService)
	mockExecutionService.On("Execute", mock.Anything, user.ID, notebookID).Return(execution, nil)

	handler := NewExecutionHandler(mockExecutionService)

	w, c := newUserContext(http.MethodPost, "/notebooks/"+notebookID+"/execute", nil, user)
	c.Params = gin.Params{{Key: "id", Value: notebookID}}
	handler.Execute(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response ExecutionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, executions.StatusSucceeded, response.Status)
	assert.True(t, response.HasOutput)
	assert.InDelta(t, 2.0, response.DurationSeconds, 0.01)
	mockExecutionService.AssertExpectations(t)
}

func TestExecute_FailedRenderIsNotAnError(t *testing.T) {
	user := testUser()
	notebookID := uuid.NewString()
	execution := testExecution(notebookID, executions.StatusFailed)
	execution.Log = "Error in library(missing): there is no package called 'missing'"

	mockExecutionService := new(MockExecutionService)
	mockExecutionService.On("Execute", mock.Anything, user.ID, notebookID).Return(execution, nil)

	handler := NewExecutionHandler(mockExecutionService)

	w, c := newUserContext(http.MethodPost, "/notebooks/"+notebookID+"/execute", nil, user)
	c.Params = gin.Params{{Key: "id", Value: notebookID}}
	handler.Execute(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"failed"`)
	assert.Contains(t, w.Body.String(), "there is no package called")
}

func TestExecute_DockerUnavailable(t *testing.T) {
	user := testUser()
	notebookID := uuid.NewString()

	mockExecutionService := new(MockExecutionService)
	mockExecutionService.On("Execute", mock.Anything, user.ID, notebookID).Return(nil, apperr.New(apperr.CodeUnavailable, "docker is not available"))

	handler := NewExecutionHandler(mockExecutionService)

	w, c := newUserContext(http.MethodPost, "/notebooks/"+notebookID+"/execute", nil, user)
	c.Params = gin.Params{{Key: "id", Value: notebookID}}
	handler.Execute(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestListExecutions(t *testing.T) {
	user := testUser()
	notebookID := uuid.NewString()
	list := []*executions.Execution{
		testExecution(notebookID, executions.StatusSucceeded),
		testExecution(notebookID, executions.StatusFailed),
	}

	mockExecutionService := new(MockExecutionService)
	mockExecutionService.On("List", mock.Anything, user.ID, notebookID).Return(list, nil)

	handler := NewExecutionHandler(mockExecutionService)

	w, c := newUserContext(http.MethodGet, "/notebooks/"+notebookID+"/executions", nil, user)
	c.Params = gin.Params{{Key: "id", Value: notebookID}}
	handler.List(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response []ExecutionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response, 2)
	assert.False(t, response[1].HasOutput)
}

func TestDownloadOutput(t *testing.T) {
	user := testUser()
	notebookID := uuid.NewString()
	execution := testExecution(notebookID, executions.StatusSucceeded)
	html := []byte("<html><body><p>42</p></body></html>")

	mockExecutionService := new(MockExecutionService)
	mockExecutionService.On("DownloadOutput", mock.Anything, user.ID, notebookID, mock.MatchedBy(func(id *string) bool {
		return id != nil && *id == execution.ID
	})).Return(html, execution, nil)

	handler := NewExecutionHandler(mockExecutionService)

	w, c := newUserContext(http.MethodGet, "/notebooks/"+notebookID+"/download?execution_id="+execution.ID, nil, user)
	c.Params = gin.Params{{Key: "id", Value: notebookID}}
	handler.DownloadOutput(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, html, w.Body.Bytes())
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "output_"+execution.ID+".html")
	mockExecutionService.AssertExpectations(t)
}

func TestDownloadOutput_LatestWithoutOutput(t *testing.T) {
	user := testUser()
	notebookID := uuid.NewString()

	mockExecutionService := new(MockExecutionService)
	mockExecutionService.On("DownloadOutput", mock.Anything, user.ID, notebookID, (*string)(nil)).Return(nil, nil, apperr.NotFound("no succeeded execution"))

	handler := NewExecutionHandler(mockExecutionService)

	w, c := newUserContext(http.MethodGet, "/notebooks/"+notebookID+"/download", nil, user)
	c.Params = gin.Params{{Key: "id", Value: notebookID}}
	handler.DownloadOutput(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	mockExecutionService.AssertExpectations(t)
}
