package v1

import (
	"errors"
	"io"
	"net/http"

	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/reproducibility"

	"github.com/gin-gonic/gin"
)

// ReproducibilityHandler struct holds the services
type ReproducibilityHandler interface {
	Analyze(ctx *gin.Context)
	GetLatest(ctx *gin.Context)
	GenerateDiff(ctx *gin.Context)
}

type reproducibilityHandler struct {
	analysisService reproducibility.AnalysisService
	diffService     reproducibility.DiffService
}

// NewReproducibilityHandler creates a new ReproducibilityHandler
func NewReproducibilityHandler(analysisService reproducibility.AnalysisService, diffService reproducibility.DiffService) ReproducibilityHandler {
	return &reproducibilityHandler{
		analysisService: analysisService,
		diffService:     diffService,
	}
}

// Analyze handles the POST request to analyze the current content of a notebook
func (handler *reproducibilityHandler) Analyze(ctx *gin.Context) {
	report, err := handler.analysisService.Analyze(ctx, currentUser(ctx).ID, ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, NewAnalysisResponse(report))
}

// GetLatest handles the GET request for the most recent analysis of a notebook
func (handler *reproducibilityHandler) GetLatest(ctx *gin.Context) {
	report, err := handler.analysisService.GetLatest(ctx, currentUser(ctx).ID, ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, NewAnalysisResponse(report))
}

// GenerateDiff handles the POST request to compare two executions.
// The body is optional; ?format=html answers with the rendered page.
func (handler *reproducibilityHandler) GenerateDiff(ctx *gin.Context) {
	var request DiffRequest
	if err := ctx.ShouldBindJSON(&request); err != nil && !errors.Is(err, io.EOF) {
		badRequest(ctx, "invalid request body")
		return
	}
	if err := request.Validate(); err != nil {
		badRequest(ctx, err.Error())
		return
	}

	diff, err := handler.diffService.GenerateDiff(ctx, currentUser(ctx).ID, ctx.Param("id"), request.BaseExecutionID, request.HeadExecutionID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	if ctx.Query("format") == "html" {
		page, err := handler.diffService.RenderHTML(diff, "Output diff")
		if err != nil {
			respondError(ctx, err)
			return
		}
		ctx.Data(http.StatusOK, "text/html; charset=utf-8", page)
		return
	}

	ctx.JSON(http.StatusOK, diff)
}
