package notebooks

import "context"

// NotebookService defines methods for managing the notebooks of a user.
// Notebooks of other users are reported as not found.
type NotebookService interface {
	// Create stores a new notebook owned by userID.
	Create(ctx context.Context, userID, title, content string) (*Notebook, error)

	// List retrieves the notebooks of userID considering a query filter when set.
	List(ctx context.Context, userID string, query *NotebookQuery) ([]*Notebook, error)

	// GetByID retrieves a notebook of userID by ID.
	GetByID(ctx context.Context, userID, notebookID string) (*Notebook, error)

	// Update applies a partial update to a notebook of userID.
	Update(ctx context.Context, userID, notebookID string, patch *NotebookPatch) (*Notebook, error)

	// DeleteByID deletes a notebook together with its executions, analyses,
	// packages and stored artifacts.
	DeleteByID(ctx context.Context, userID, notebookID string) error
}

// NotebookRepository defines the interface for Notebook-related operations
type NotebookRepository interface {
	Create(ctx context.Context, notebook *Notebook) error
	List(ctx context.Context, userID string, query *NotebookQuery) ([]*Notebook, error)
	GetByID(ctx context.Context, notebookID string) (*Notebook, error)
	UpdateByID(ctx context.Context, notebook *Notebook) error
	// DeleteByID deletes the notebook and every row referencing it.
	DeleteByID(ctx context.Context, notebookID string) error
}
