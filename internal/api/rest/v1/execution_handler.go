package v1

import (
	"fmt"
	"net/http"

	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/executions"

	"github.com/gin-gonic/gin"
)

// ExecutionHandler struct holds the services
type ExecutionHandler interface {
	Execute(ctx *gin.Context)
	List(ctx *gin.Context)
	DownloadOutput(ctx *gin.Context)
}

type executionHandler struct {
	executionService executions.ExecutionService
}

// NewExecutionHandler creates a new ExecutionHandler
func NewExecutionHandler(executionService executions.ExecutionService) ExecutionHandler {
	return &executionHandler{
		executionService: executionService,
	}
}

// Execute handles the POST request to render a notebook.
// A failed render is answered with 200 and status failed on the execution.
func (handler *executionHandler) Execute(ctx *gin.Context) {
	execution, err := handler.executionService.Execute(ctx, currentUser(ctx).ID, ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, NewExecutionResponse(execution))
}

// List handles the GET request to list the executions of a notebook
func (handler *executionHandler) List(ctx *gin.Context) {
	list, err := handler.executionService.List(ctx, currentUser(ctx).ID, ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	response := make([]ExecutionResponse, 0, len(list))
	for _, execution := range list {
		response = append(response, NewExecutionResponse(execution))
	}

	ctx.JSON(http.StatusOK, response)
}

// DownloadOutput handles the GET request to download rendered HTML
func (handler *executionHandler) DownloadOutput(ctx *gin.Context) {
	var executionID *string
	if id := ctx.Query("execution_id"); len(id) > 0 {
		executionID = &id
	}

	html, execution, err := handler.executionService.DownloadOutput(ctx, currentUser(ctx).ID, ctx.Param("id"), executionID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Writer.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "output_"+execution.ID+".html"))
	ctx.Data(http.StatusOK, "text/html; charset=utf-8", html)
}
