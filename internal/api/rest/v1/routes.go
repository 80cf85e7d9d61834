package v1

import (
	"net/http"

	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/executions"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/notebooks"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/packages"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/reproducibility"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/users"

	"github.com/gin-gonic/gin"
)

// SetupRoutes sets up all the API routes for version 1.
func SetupRoutes(r *gin.Engine,
	authService users.AuthService,
	notebookService notebooks.NotebookService,
	executionService executions.ExecutionService,
	analysisService reproducibility.AnalysisService,
	diffService reproducibility.DiffService,
	packageService packages.PackageService) {

	v1 := r.Group(BasePath) // lookup in version file

	v1.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Auth Routes
	authHandler := NewAuthHandler(authService)
	v1.POST("/auth/register", authHandler.Register)
	v1.POST("/auth/login", authHandler.Login)

	protected := v1.Group("", AuthMiddleware(authService))
	protected.POST("/auth/logout", authHandler.Logout)
	protected.GET("/auth/me", authHandler.Me)

	// Notebooks Routes
	notebookHandler := NewNotebookHandler(notebookService)
	protected.POST("/notebooks", notebookHandler.Create)
	protected.GET("/notebooks", notebookHandler.List)
	protected.GET("/notebooks/:id", notebookHandler.GetByID)
	protected.PUT("/notebooks/:id", notebookHandler.Replace)
	protected.PATCH("/notebooks/:id", notebookHandler.Patch)
	protected.DELETE("/notebooks/:id", notebookHandler.DeleteByID)

	// Executions Routes
	executionHandler := NewExecutionHandler(executionService)
	protected.POST("/notebooks/:id/execute", executionHandler.Execute)
	protected.GET("/notebooks/:id/executions", executionHandler.List)
	protected.GET("/notebooks/:id/download", executionHandler.DownloadOutput)

	// Reproducibility Routes
	reproducibilityHandler := NewReproducibilityHandler(analysisService, diffService)
	protected.POST("/notebooks/:id/reproducibility", reproducibilityHandler.Analyze)
	protected.GET("/notebooks/:id/reproducibility", reproducibilityHandler.GetLatest)
	protected.POST("/notebooks/:id/generate_diff", reproducibilityHandler.GenerateDiff)

	// Packages Routes
	packageHandler := NewPackageHandler(packageService)
	protected.POST("/notebooks/:id/generate_package", packageHandler.Generate)
	protected.GET("/notebooks/:id/package_status", packageHandler.Status)
	protected.GET("/notebooks/:id/download_package", packageHandler.Download)
}
