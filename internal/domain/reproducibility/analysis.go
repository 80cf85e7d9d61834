package reproducibility

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Analysis is a stored reproducibility report of one notebook revision.
type Analysis struct {
	ID              string       `validate:"required,uuid4"`
	NotebookID      string       `validate:"required,uuid4"`
	UserID          string       `validate:"required,uuid4"`
	ContentHash     string       `validate:"required,len=64,hexadecimal"`
	Score           int          `validate:"min=0,max=100"`
	Findings        []Finding    `validate:"-"`
	Dependencies    []Dependency `validate:"-"`
	TraceError      *string      `validate:"omitempty"`
	DateTimeCreated time.Time    `validate:"required"`
}

// Validate for validating Analysis struct
func (a *Analysis) Validate() error {
	validate := validator.New()

	err := validate.Struct(a)
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

// Counts returns the number of findings per severity.
func (a *Analysis) Counts() map[Severity]int {
	return CountBySeverity(a.Findings)
}
