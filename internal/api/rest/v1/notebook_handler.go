package v1

import (
	"net/http"

	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/notebooks"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/pkg/strutil"

	"github.com/gin-gonic/gin"
)

// NotebookHandler struct holds the services
type NotebookHandler interface {
	Create(ctx *gin.Context)
	List(ctx *gin.Context)
	GetByID(ctx *gin.Context)
	Replace(ctx *gin.Context)
	Patch(ctx *gin.Context)
	DeleteByID(ctx *gin.Context)
}

type notebookHandler struct {
	notebookService notebooks.NotebookService
}

// NewNotebookHandler creates a new NotebookHandler
func NewNotebookHandler(notebookService notebooks.NotebookService) NotebookHandler {
	return &notebookHandler{
		notebookService: notebookService,
	}
}

// Create handles the POST request to create a notebook
func (handler *notebookHandler) Create(ctx *gin.Context) {
	var request NotebookRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, "invalid request body")
		return
	}
	if err := request.Validate(); err != nil {
		badRequest(ctx, err.Error())
		return
	}

	notebook, err := handler.notebookService.Create(ctx, currentUser(ctx).ID, request.Title, request.Content)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, NewNotebookResponse(notebook))
}

// List handles the GET request to list notebooks with optional filters
func (handler *notebookHandler) List(ctx *gin.Context) {
	query := notebooks.NewNotebookQuery()

	if title := ctx.Query("title"); len(title) > 0 {
		query.Title = title
	}
	if limit := ctx.Query("limit"); len(limit) > 0 {
		query.Limit = strutil.ConvertToInt(limit)
	}
	if offset := ctx.Query("offset"); len(offset) > 0 {
		query.Offset = strutil.ConvertToInt(offset)
	}
	if sortBy := ctx.Query("sortBy"); len(sortBy) > 0 {
		query.SortBy = sortBy
	}
	if sortOrder := ctx.Query("sortOrder"); len(sortOrder) > 0 {
		query.SortOrder = sortOrder
	}

	if err := query.Validate(); err != nil {
		badRequest(ctx, err.Error())
		return
	}

	list, err := handler.notebookService.List(ctx, currentUser(ctx).ID, query)
	if err != nil {
		respondError(ctx, err)
		return
	}

	response := make([]NotebookResponse, 0, len(list))
	for _, notebook := range list {
		response = append(response, NewNotebookResponse(notebook))
	}

	ctx.JSON(http.StatusOK, response)
}

// GetByID handles the GET request to fetch a notebook by its ID
func (handler *notebookHandler) GetByID(ctx *gin.Context) {
	notebook, err := handler.notebookService.GetByID(ctx, currentUser(ctx).ID, ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, NewNotebookResponse(notebook))
}

// Replace handles the PUT request to overwrite title and content of a notebook
func (handler *notebookHandler) Replace(ctx *gin.Context) {
	var request NotebookRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, "invalid request body")
		return
	}
	if err := request.Validate(); err != nil {
		badRequest(ctx, err.Error())
		return
	}

	handler.update(ctx, &notebooks.NotebookPatch{Title: &request.Title, Content: &request.Content})
}

// Patch handles the PATCH request to update some fields of a notebook
func (handler *notebookHandler) Patch(ctx *gin.Context) {
	var request NotebookPatchRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, "invalid request body")
		return
	}

	handler.update(ctx, &notebooks.NotebookPatch{Title: request.Title, Content: request.Content})
}

func (handler *notebookHandler) update(ctx *gin.Context, patch *notebooks.NotebookPatch) {
	notebook, err := handler.notebookService.Update(ctx, currentUser(ctx).ID, ctx.Param("id"), patch)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, NewNotebookResponse(notebook))
}

// DeleteByID handles the DELETE request to delete a notebook with everything it owns
func (handler *notebookHandler) DeleteByID(ctx *gin.Context) {
	if err := handler.notebookService.DeleteByID(ctx, currentUser(ctx).ID, ctx.Param("id")); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
	ctx.Writer.WriteHeaderNow()
}
