package v1

import (
	"errors"
	"fmt"
	"time"

	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/executions"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/notebooks"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/packages"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/reproducibility"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/users"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Message string `json:"message"`
}

// CredentialsRequest is the body of the register and login endpoints
type CredentialsRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Validate checks that both fields are present
func (r *CredentialsRequest) Validate() error {
	return validateRequest(r)
}

// UserResponse describes an account
type UserResponse struct {
	ID              string    `json:"id"`
	Username        string    `json:"username"`
	DateTimeCreated time.Time `json:"date_time_created"`
}

// NewUserResponse converts a user
func NewUserResponse(u *users.User) UserResponse {
	return UserResponse{
		ID:              u.ID,
		Username:        u.Username,
		DateTimeCreated: u.DateTimeCreated,
	}
}

// TokenResponse carries an issued bearer token
type TokenResponse struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expires_at"`
	User      *UserResponse `json:"user,omitempty"`
}

// NotebookRequest is the body of the create and replace endpoints
type NotebookRequest struct {
	Title   string `json:"title" validate:"required,max=255"`
	Content string `json:"content"`
}

// Validate checks the title
func (r *NotebookRequest) Validate() error {
	return validateRequest(r)
}

// NotebookPatchRequest is the body of the partial update endpoint
type NotebookPatchRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// NotebookResponse describes a notebook
type NotebookResponse struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Content         string    `json:"content"`
	DateTimeCreated time.Time `json:"date_time_created"`
	DateTimeUpdated time.Time `json:"date_time_updated"`
}

// NewNotebookResponse converts a notebook
func NewNotebookResponse(n *notebooks.Notebook) NotebookResponse {
	return NotebookResponse{
		ID:              n.ID,
		Title:           n.Title,
		Content:         n.Content,
		DateTimeCreated: n.DateTimeCreated,
		DateTimeUpdated: n.DateTimeUpdated,
	}
}

// ExecutionResponse describes an execution
type ExecutionResponse struct {
	ID               string     `json:"id"`
	NotebookID       string     `json:"notebook_id"`
	Status           string     `json:"status"`
	ContentHash      string     `json:"content_hash"`
	HasOutput        bool       `json:"has_output"`
	Log              string     `json:"log"`
	DateTimeStarted  time.Time  `json:"date_time_started"`
	DateTimeFinished *time.Time `json:"date_time_finished"`
	DurationSeconds  float64    `json:"duration_seconds"`
}

// NewExecutionResponse converts an execution
func NewExecutionResponse(e *executions.Execution) ExecutionResponse {
	return ExecutionResponse{
		ID:               e.ID,
		NotebookID:       e.NotebookID,
		Status:           e.Status,
		ContentHash:      e.ContentHash,
		HasOutput:        e.OutputKey != nil,
		Log:              e.Log,
		DateTimeStarted:  e.DateTimeStarted,
		DateTimeFinished: e.DateTimeFinished,
		DurationSeconds:  e.Duration().Seconds(),
	}
}

// AnalysisResponse describes a reproducibility analysis
type AnalysisResponse struct {
	ID              string                       `json:"id"`
	NotebookID      string                       `json:"notebook_id"`
	Score           int                          `json:"score"`
	Findings        []reproducibility.Finding    `json:"findings"`
	Counts          map[string]int               `json:"counts"`
	Dependencies    []reproducibility.Dependency `json:"dependencies"`
	TraceError      *string                      `json:"trace_error"`
	ContentHash     string                       `json:"content_hash"`
	UpToDate        bool                         `json:"up_to_date"`
	DateTimeCreated time.Time                    `json:"date_time_created"`
}

// NewAnalysisResponse converts a report
func NewAnalysisResponse(report *reproducibility.Report) AnalysisResponse {
	a := report.Analysis
	counts := map[string]int{
		string(reproducibility.SeverityError):   0,
		string(reproducibility.SeverityWarning): 0,
		string(reproducibility.SeverityInfo):    0,
	}
	for severity, n := range a.Counts() {
		counts[string(severity)] = n
	}

	findings := a.Findings
	if findings == nil {
		findings = []reproducibility.Finding{}
	}
	dependencies := a.Dependencies
	if dependencies == nil {
		dependencies = []reproducibility.Dependency{}
	}

	return AnalysisResponse{
		ID:              a.ID,
		NotebookID:      a.NotebookID,
		Score:           a.Score,
		Findings:        findings,
		Counts:          counts,
		Dependencies:    dependencies,
		TraceError:      a.TraceError,
		ContentHash:     a.ContentHash,
		UpToDate:        report.UpToDate,
		DateTimeCreated: a.DateTimeCreated,
	}
}

// DiffRequest selects the executions to compare. Both fields are optional.
type DiffRequest struct {
	BaseExecutionID *string `json:"base_execution_id" validate:"omitempty,uuid4"`
	HeadExecutionID *string `json:"head_execution_id" validate:"omitempty,uuid4"`
}

// Validate checks the execution ids
func (r *DiffRequest) Validate() error {
	return validateRequest(r)
}

// PackageResponse describes a generated package
type PackageResponse struct {
	ID              string    `json:"id"`
	NotebookID      string    `json:"notebook_id"`
	ContentHash     string    `json:"content_hash"`
	Size            int64     `json:"size"`
	DateTimeCreated time.Time `json:"date_time_created"`
}

// NewPackageResponse converts a package meta
func NewPackageResponse(p *packages.PackageMeta) PackageResponse {
	return PackageResponse{
		ID:              p.ID,
		NotebookID:      p.NotebookID,
		ContentHash:     p.ContentHash,
		Size:            p.Size,
		DateTimeCreated: p.DateTimeCreated,
	}
}

// PackageStatusResponse reports whether a package matches the current content
type PackageStatusResponse struct {
	Exists          bool       `json:"exists"`
	UpToDate        bool       `json:"up_to_date"`
	ContentHash     string     `json:"content_hash"`
	PackageHash     *string    `json:"package_hash"`
	Size            *int64     `json:"size"`
	DateTimeCreated *time.Time `json:"date_time_created"`
}

// NewPackageStatusResponse converts a package status
func NewPackageStatusResponse(s *packages.Status) PackageStatusResponse {
	return PackageStatusResponse{
		Exists:          s.Exists,
		UpToDate:        s.UpToDate,
		ContentHash:     s.ContentHash,
		PackageHash:     s.PackageHash,
		Size:            s.Size,
		DateTimeCreated: s.DateTimeCreated,
	}
}

func validateRequest(s interface{}) error {
	validate := validator.New()

	err := validate.Struct(s)
	if err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			var messages []string
			for _, fieldErr := range validationErrors {
				messages = append(messages, fmt.Sprintf("Field: %s, Tag: %s", fieldErr.Field(), fieldErr.Tag()))
			}
			return fmt.Errorf("validation failed: %v", messages)
		}
		return fmt.Errorf("validation error: %w", err)
	}

	return nil
}
