package executions

import "context"

// RenderResult is the outcome of rendering a notebook.
type RenderResult struct {
	HTML []byte
	// Log holds the combined container output.
	Log string
}

// Runner renders notebooks in an isolated R environment.
type Runner interface {
	// Render knits content into HTML. On failure the returned result still
	// carries the log of the attempt.
	Render(ctx context.Context, title, content string) (*RenderResult, error)
}

// ExecutionService defines methods for running notebooks and retrieving their outputs.
type ExecutionService interface {
	// Execute renders the current content of a notebook of userID. A failed
	// render is not an error: the execution is returned with StatusFailed.
	Execute(ctx context.Context, userID, notebookID string) (*Execution, error)

	// List retrieves the executions of a notebook, newest first.
	List(ctx context.Context, userID, notebookID string) ([]*Execution, error)

	// GetByID retrieves an execution of a notebook by ID.
	GetByID(ctx context.Context, userID, notebookID, executionID string) (*Execution, error)

	// DownloadOutput returns the HTML of the given execution, or of the latest
	// succeeded one when executionID is nil.
	DownloadOutput(ctx context.Context, userID, notebookID string, executionID *string) ([]byte, *Execution, error)
}

// ExecutionRepository defines the interface for Execution-related operations
type ExecutionRepository interface {
	Create(ctx context.Context, execution *Execution) error
	GetByID(ctx context.Context, executionID string) (*Execution, error)
	UpdateByID(ctx context.Context, execution *Execution) error
	// ListByNotebookID returns executions newest first. An empty status
	// matches every status and a limit of 0 returns all of them.
	ListByNotebookID(ctx context.Context, notebookID, status string, limit int) ([]*Execution, error)
}
