package v1

import (
	"fmt"
	"net/http"

	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/packages"

	"github.com/gin-gonic/gin"
)

// PackageHandler struct holds the services
type PackageHandler interface {
	Generate(ctx *gin.Context)
	Status(ctx *gin.Context)
	Download(ctx *gin.Context)
}

type packageHandler struct {
	packageService packages.PackageService
}

// NewPackageHandler creates a new PackageHandler
func NewPackageHandler(packageService packages.PackageService) PackageHandler {
	return &packageHandler{
		packageService: packageService,
	}
}

// Generate handles the POST request to build the reproducibility package of a notebook
func (handler *packageHandler) Generate(ctx *gin.Context) {
	meta, err := handler.packageService.Generate(ctx, currentUser(ctx).ID, ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, NewPackageResponse(meta))
}

// Status handles the GET request reporting whether the package is current
func (handler *packageHandler) Status(ctx *gin.Context) {
	status, err := handler.packageService.Status(ctx, currentUser(ctx).ID, ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, NewPackageStatusResponse(status))
}

// Download handles the GET request to download the package archive
func (handler *packageHandler) Download(ctx *gin.Context) {
	archive, fileName, err := handler.packageService.Download(ctx, currentUser(ctx).ID, ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Writer.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	ctx.Data(http.StatusOK, "application/zip", archive)
}
