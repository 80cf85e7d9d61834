//go:build unit
// +build unit

package v1

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/notebooks"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/pkg/apperr"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testNotebook(userID string) *notebooks.Notebook {
	now := time.Now()
	return &notebooks.Notebook{
		ID:              uuid.NewString(),
		UserID:          userID,
		Title:           "Iris exploration",
		Content:         "x <- 1\n",
		DateTimeCreated: now,
		DateTimeUpdated: now,
	}
}

func TestCreateNotebook(t *testing.T) {
	user := testUser()
	notebook := testNotebook(user.ID)

	mockNotebookService := new(MockNotebookService)
	mockNotebookService.On("Create", mock.Anything, user.ID, "Iris exploration", "x <- 1\n").Return(notebook, nil)

	handler := NewNotebookHandler(mockNotebookService)

	w, c := newUserContext(http.MethodPost, "/notebooks", []byte(`{"title":"Iris exploration","content":"x <- 1\n"}`), user)
	handler.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response NotebookResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, notebook.ID, response.ID)
	mockNotebookService.AssertExpectations(t)
}

func TestCreateNotebook_MissingTitle(t *testing.T) {
	mockNotebookService := new(MockNotebookService)
	handler := NewNotebookHandler(mockNotebookService)

	w, c := newUserContext(http.MethodPost, "/notebooks", []byte(`{"content":"x <- 1"}`), testUser())
	handler.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockNotebookService.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestListNotebooks(t *testing.T) {
	user := testUser()
	list := []*notebooks.Notebook{testNotebook(user.ID), testNotebook(user.ID)}

	mockNotebookService := new(MockNotebookService)
	mockNotebookService.On("List", mock.Anything, user.ID, mock.MatchedBy(func(q *notebooks.NotebookQuery) bool {
		return q.Title == "iris" && q.Limit == 10 && q.SortBy == "title" && q.SortOrder == "asc"
	})).Return(list, nil)

	handler := NewNotebookHandler(mockNotebookService)

	w, c := newUserContext(http.MethodGet, "/notebooks?title=iris&limit=10&sortBy=title&sortOrder=asc", nil, user)
	handler.List(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response []NotebookResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Len(t, response, 2)
	mockNotebookService.AssertExpectations(t)
}

func TestListNotebooks_InvalidSort(t *testing.T) {
	handler := NewNotebookHandler(new(MockNotebookService))

	w, c := newUserContext(http.MethodGet, "/notebooks?sortBy=content", nil, testUser())
	handler.List(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetNotebookByID_NotFound(t *testing.T) {
	user := testUser()
	notebookID := uuid.NewString()

	mockNotebookService := new(MockNotebookService)
	mockNotebookService.On("GetByID", mock.Anything, user.ID, notebookID).Return(nil, apperr.NotFound("notebook %s not found", notebookID))

	handler := NewNotebookHandler(mockNotebookService)

	w, c := newUserContext(http.MethodGet, "/notebooks/"+notebookID, nil, user)
	c.Params = gin.Params{{Key: "id", Value: notebookID}}
	handler.GetByID(c)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var response ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Contains(t, response.Message, notebookID)
}

func TestPatchNotebook(t *testing.T) {
	user := testUser()
	notebook := testNotebook(user.ID)
	notebook.Title = "Renamed"

	mockNotebookService := new(MockNotebookService)
	mockNotebookService.On("Update", mock.Anything, user.ID, notebook.ID, mock.MatchedBy(func(p *notebooks.NotebookPatch) bool {
		return p.Title != nil && *p.Title == "Renamed" && p.Content == nil
	})).Return(notebook, nil)

	handler := NewNotebookHandler(mockNotebookService)

	w, c := newUserContext(http.MethodPatch, "/notebooks/"+notebook.ID, []byte(`{"title":"Renamed"}`), user)
	c.Params = gin.Params{{Key: "id", Value: notebook.ID}}
	handler.Patch(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Renamed")
	mockNotebookService.AssertExpectations(t)
}

func TestReplaceNotebook(t *testing.T) {
	user := testUser()
	notebook := testNotebook(user.ID)

	mockNotebookService := new(MockNotebookService)
	mockNotebookService.On("Update", mock.Anything, user.ID, notebook.ID, mock.MatchedBy(func(p *notebooks.NotebookPatch) bool {
		return p.Title != nil && p.Content != nil && *p.Content == ""
	})).Return(notebook, nil)

	handler := NewNotebookHandler(mockNotebookService)

	w, c := newUserContext(http.MethodPut, "/notebooks/"+notebook.ID, []byte(`{"title":"Iris exploration"}`), user)
	c.Params = gin.Params{{Key: "id", Value: notebook.ID}}
	handler.Replace(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockNotebookService.AssertExpectations(t)
}

func TestDeleteNotebookByID(t *testing.T) {
	user := testUser()
	notebookID := uuid.NewString()

	mockNotebookService := new(MockNotebookService)
	mockNotebookService.On("DeleteByID", mock.Anything, user.ID, notebookID).Return(nil)

	handler := NewNotebookHandler(mockNotebookService)

	w, c := newUserContext(http.MethodDelete, "/notebooks/"+notebookID, nil, user)
	c.Params = gin.Params{{Key: "id", Value: notebookID}}
	handler.DeleteByID(c)

	assert.Equal(t, http.StatusNoContent, w.Code)
	mockNotebookService.AssertExpectations(t)
}
