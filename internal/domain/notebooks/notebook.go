package notebooks

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Notebook entity
type Notebook struct {
	ID              string    `validate:"required,uuid4"`
	UserID          string    `validate:"required,uuid4"`
	Title           string    `validate:"required,min=1,max=255"`
	Content         string    `validate:"max=1048576"`
	DateTimeCreated time.Time `validate:"required"`
	DateTimeUpdated time.Time `validate:"required"`
}

// Validate for validating Notebook struct
func (n *Notebook) Validate() error {
	return validate(n)
}

// NotebookPatch holds the fields of a partial update. Nil fields are left unchanged.
type NotebookPatch struct {
	Title   *string `validate:"omitempty,min=1,max=255"`
	Content *string `validate:"omitempty,max=1048576"`
}

// Validate for validating NotebookPatch struct
func (p *NotebookPatch) Validate() error {
	return validate(p)
}

// Apply copies the set fields of p onto n.
func (p *NotebookPatch) Apply(n *Notebook) {
	if p.Title != nil {
		n.Title = *p.Title
	}
	if p.Content != nil {
		n.Content = *p.Content
	}
}

// ContentHash fingerprints notebook content together with the environment it
// runs in, such as the tagged container image.
func ContentHash(content, environment string) string {
	h := sha256.New()
	h.Write([]byte(environment))
	h.Write([]byte{0})
	h.Write([]byte(content))
	return hex.EncodeToString(h.Sum(nil))
}

func validate(s interface{}) error {
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
