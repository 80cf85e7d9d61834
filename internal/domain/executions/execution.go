package executions

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Execution statuses
const (
	StatusPending   = "pending"
	StatusRunning   = "running"
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
)

// MaxLogSize bounds the render log kept on an execution.
const MaxLogSize = 64 * 1024

// Execution entity
type Execution struct {
	ID               string     `validate:"required,uuid4"`
	NotebookID       string     `validate:"required,uuid4"`
	UserID           string     `validate:"required,uuid4"`
	Status           string     `validate:"required,oneof=pending running succeeded failed"`
	ContentHash      string     `validate:"required,len=64,hexadecimal"`
	OutputKey        *string    `validate:"omitempty,min=1,max=512"`
	Log              string     `validate:"max=65536"`
	DateTimeStarted  time.Time  `validate:"required"`
	DateTimeFinished *time.Time `validate:"omitempty"`
}

// Validate for validating Execution struct
func (e *Execution) Validate() error {
	validate := validator.New()

	err := validate.Struct(e)
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

	if e.Status == StatusSucceeded && e.OutputKey == nil {
		return fmt.Errorf("validation failed: succeeded execution without output")
	}

	return nil
}

// Finished reports whether the execution reached a final status.
func (e *Execution) Finished() bool {
	return e.Status == StatusSucceeded || e.Status == StatusFailed
}

// Duration returns the render time, or zero while the execution runs.
func (e *Execution) Duration() time.Duration {
	if e.DateTimeFinished == nil {
		return 0
	}
	return e.DateTimeFinished.Sub(e.DateTimeStarted)
}

// OutputKey returns the artifact key of the rendered HTML of an execution.
func OutputKey(notebookID, executionID string) string {
	return fmt.Sprintf("executions/%s/%s.html", notebookID, executionID)
}
