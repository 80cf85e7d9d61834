package packages

import "context"

// PackageService defines methods for generating and downloading reproducibility packages.
type PackageService interface {
	// Generate builds the package of the current notebook content and replaces any previous one.
	Generate(ctx context.Context, userID, notebookID string) (*PackageMeta, error)

	// Status reports whether a package exists and matches the current content.
	Status(ctx context.Context, userID, notebookID string) (*Status, error)

	// Download returns the archive and its file name.
	Download(ctx context.Context, userID, notebookID string) ([]byte, string, error)
}

// Builder assembles package archives.
type Builder interface {
	Build(spec *BuildSpec) ([]byte, error)
}

// PackageRepository defines the interface for PackageMeta-related operations
type PackageRepository interface {
	// Upsert stores meta as the only package of its notebook.
	Upsert(ctx context.Context, meta *PackageMeta) error
	GetByNotebookID(ctx context.Context, notebookID string) (*PackageMeta, error)
	DeleteByNotebookID(ctx context.Context, notebookID string) error
}
