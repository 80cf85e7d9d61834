package packages

import (
	"errors"
	"fmt"
	"time"

	"github.com/chumaana/reproducible-notebook-app-sub000/internal/domain/reproducibility"

	"github.com/go-playground/validator/v10"
)

// PackageMeta entity
type PackageMeta struct {
	ID              string    `validate:"required,uuid4"`
	NotebookID      string    `validate:"required,uuid4"`
	UserID          string    `validate:"required,uuid4"`
	ContentHash     string    `validate:"required,len=64,hexadecimal"`
	ArtifactKey     string    `validate:"required,min=1,max=512"`
	Size            int64     `validate:"required,min=1"`
	DateTimeCreated time.Time `validate:"required"`
}

// Validate for validating PackageMeta struct
func (p *PackageMeta) Validate() error {
	validate := validator.New()

	err := validate.Struct(p)
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

// ArtifactKey returns the storage key of the package of a notebook revision.
func ArtifactKey(notebookID, contentHash string) string {
	return fmt.Sprintf("packages/%s/%s.zip", notebookID, contentHash)
}

// Status summarizes the package of a notebook.
type Status struct {
	Exists bool
	// UpToDate is true when the package was built from the current content and image.
	UpToDate    bool
	ContentHash string
	PackageHash *string
	Size        *int64
	// DateTimeCreated is set when a package exists.
	DateTimeCreated *time.Time
}

// BuildSpec is the input of a package build.
type BuildSpec struct {
	Title        string
	Content      string
	Image        string
	RVersion     string
	ContentHash  string
	Dependencies []reproducibility.Dependency
}
