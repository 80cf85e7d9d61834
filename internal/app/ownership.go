package app

import (
	"context"

	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/notebooks"
	"github.com/chumaana/reproducible-notebook-app-sub000/internal/pkg/apperr"
)

// ownedNotebook loads a notebook and hides it from everyone but its owner.
func ownedNotebook(ctx context.Context, repo notebooks.NotebookRepository, userID, notebookID string) (*notebooks.Notebook, error) {
	notebook, err := repo.GetByID(ctx, notebookID)
	if err != nil {
		return nil, err
	}
	if notebook.UserID != userID {
		return nil, apperr.NotFound("notebook with ID %s not found", notebookID)
	}
	return notebook, nil
}
