// cmd/rnotebook-rest-api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	v1 "github.com/chumaana/reproducible-notebook-app-sub000/internal/api/rest/v1"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/app"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/executions"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/notebooks"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/packages"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/reproducibility"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/users"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/infrastructure/analyzer"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/infrastructure/connector"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/infrastructure/htmldiff"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/infrastructure/packager"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/infrastructure/persistence"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/infrastructure/runner"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/pkg/config"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/pkg/executor"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/pkg/logger"
	"github.com/gin-contrib/cors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Application error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Parse configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "../../configs/rest-app.yaml"
	}

	restConfig, err := config.InitializeRestConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	// Initialize logger
	if err := logger.InitLogger(&restConfig.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	log, err := logger.GetLogger()
	if err != nil {
		return fmt.Errorf("failed to get logger: %w", err)
	}

	// Initialize application dependencies
	deps, err := initializeDependencies(restConfig, log)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer func() {
		if err := persistence.CloseDB(deps.db); err != nil {
			log.Warn("Failed to close database: ", err)
		}
	}()

	// Setup and start server with graceful shutdown
	return startServerWithGracefulShutdown(restConfig, deps, log)
}

// appDependencies holds all initialized application components
type appDependencies struct {
	db       *gorm.DB
	services *appServices
}

type repositories struct {
	users      users.UserRepository
	tokens     users.TokenRepository
	notebooks  notebooks.NotebookRepository
	executions executions.ExecutionRepository
	analyses   reproducibility.AnalysisRepository
	packages   packages.PackageRepository
}

type notebookEngines struct {
	runner   executions.Runner
	tracer   reproducibility.DependencyTracer
	analyzer reproducibility.StaticAnalyzer
	differ   reproducibility.OutputDiffer
	builder  packages.Builder
}

type appServices struct {
	auth      users.AuthService
	notebook  notebooks.NotebookService
	execution executions.ExecutionService
	analysis  reproducibility.AnalysisService
	diff      reproducibility.DiffService
	pkg       packages.PackageService
}

// initializeDependencies sets up all application components
func initializeDependencies(cfg *config.RestConfig, log logger.Logger) (*appDependencies, error) {
	// Initialize database
	db, err := persistence.NewDBConnection(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to create db connection: %w", err)
	}

	// Run migrations
	if err := persistence.Migrate(db); err != nil {
		return nil, err
	}
	log.Info("Database migrations completed successfully")

	repos, err := initializeRepositories(db, log)
	if err != nil {
		return nil, err
	}

	// Initialize artifact storage
	artifactConnector, err := connector.NewArtifactConnector(context.Background(), &cfg.Artifacts, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize artifact connector: %w", err)
	}

	engines, err := initializeEngines(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize engines: %w", err)
	}

	environment := cfg.Docker.ImageRef()

	authService, err := app.NewAuthService(repos.users, repos.tokens, &cfg.Auth, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create auth service: %w", err)
	}

	notebookService, err := app.NewNotebookService(repos.notebooks, repos.executions, repos.packages, artifactConnector, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create notebook service: %w", err)
	}

	executionService, err := app.NewExecutionService(repos.notebooks, repos.executions, engines.runner, artifactConnector, environment, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create execution service: %w", err)
	}

	analysisService, err := app.NewAnalysisService(repos.notebooks, repos.analyses, engines.analyzer, engines.tracer, environment, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create analysis service: %w", err)
	}

	diffService, err := app.NewDiffService(repos.notebooks, repos.executions, artifactConnector, engines.differ, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create diff service: %w", err)
	}

	packageService, err := app.NewPackageService(
		repos.notebooks, repos.packages, repos.analyses,
		engines.analyzer, engines.builder, artifactConnector,
		&cfg.Docker, log,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create package service: %w", err)
	}

	log.Info("Application services initialized successfully")
	return &appDependencies{
		db: db,
		services: &appServices{
			auth:      authService,
			notebook:  notebookService,
			execution: executionService,
			analysis:  analysisService,
			diff:      diffService,
			pkg:       packageService,
		},
	}, nil
}

// initializeRepositories sets up the gorm repositories of every entity
func initializeRepositories(db *gorm.DB, log logger.Logger) (*repositories, error) {
	userRepo, err := persistence.NewGormUserRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create user repository: %w", err)
	}

	tokenRepo, err := persistence.NewGormTokenRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create token repository: %w", err)
	}

	notebookRepo, err := persistence.NewGormNotebookRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create notebook repository: %w", err)
	}

	executionRepo, err := persistence.NewGormExecutionRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create execution repository: %w", err)
	}

	analysisRepo, err := persistence.NewGormAnalysisRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create analysis repository: %w", err)
	}

	packageRepo, err := persistence.NewGormPackageRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create package repository: %w", err)
	}

	return &repositories{
		users:      userRepo,
		tokens:     tokenRepo,
		notebooks:  notebookRepo,
		executions: executionRepo,
		analyses:   analysisRepo,
		packages:   packageRepo,
	}, nil
}

// initializeEngines sets up the docker runner, analyzer, differ and package builder
func initializeEngines(cfg *config.RestConfig, log logger.Logger) (*notebookEngines, error) {
	dockerRunner, err := runner.NewDockerRunner(executor.New(), &cfg.Docker, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create docker runner: %w", err)
	}

	var tracer reproducibility.DependencyTracer
	if cfg.Docker.TraceDependencies {
		tracer = dockerRunner
	} else {
		log.Info("Dependency tracing disabled")
	}

	staticAnalyzer, err := analyzer.NewStaticAnalyzer(log)
	if err != nil {
		return nil, fmt.Errorf("failed to create static analyzer: %w", err)
	}

	differ, err := htmldiff.NewOutputDiffer(log)
	if err != nil {
		return nil, fmt.Errorf("failed to create output differ: %w", err)
	}

	builder, err := packager.NewBuilder(log)
	if err != nil {
		return nil, fmt.Errorf("failed to create package builder: %w", err)
	}

	log.Info("Notebook engines initialized for ", cfg.Docker.ImageRef())
	return &notebookEngines{
		runner:   dockerRunner,
		tracer:   tracer,
		analyzer: staticAnalyzer,
		differ:   differ,
		builder:  builder,
	}, nil
}

// startServerWithGracefulShutdown starts the HTTP server and handles graceful shutdown
func startServerWithGracefulShutdown(cfg *config.RestConfig, deps *appDependencies, log logger.Logger) error {
	// Setup router
	r := gin.Default()

	// Configure CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Setup API routes
	v1.SetupRoutes(r,
		deps.services.auth,
		deps.services.notebook,
		deps.services.execution,
		deps.services.analysis,
		deps.services.diff,
		deps.services.pkg,
	)

	// Create HTTP server. Renders may take as long as the docker timeout.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attack
		WriteTimeout:      cfg.Docker.Timeout + time.Minute,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start server in goroutine
	go func() {
		log.Info("Starting server on port ", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- fmt.Errorf("server failed to start: %w", err)
		}
	}()

	// Channel to listen for interrupt signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Block until we receive a signal or server error
	select {
	case err := <-serverErrors:
		return err
	case sig := <-quit:
		log.Info("Received signal ", sig, ", initiating graceful shutdown")
	}

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	log.Info("Shutting down server...")
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("Server stopped gracefully")
	return nil
}
