package users

import (
	"errors"
	"fmt"
	"time"

	"github.com/chumaana/reproducible-notebook-app-sub000/internal/pkg/validators"

	"github.com/go-playground/validator/v10"
)

// TokenKeyLength is the number of hex characters of an API token.
const TokenKeyLength = 40

// User entity
type User struct {
	ID              string    `validate:"required,uuid4"`
	Username        string    `validate:"required,min=3,max=150,username"`
	PasswordHash    string    `validate:"required"`
	DateTimeCreated time.Time `validate:"required"`
}

// Validate for validating User struct
func (u *User) Validate() error {
	return validate(u)
}

// Token is an opaque bearer credential issued at registration or login.
type Token struct {
	Key             string    `validate:"required,len=40,hexadecimal"`
	UserID          string    `validate:"required,uuid4"`
	DateTimeCreated time.Time `validate:"required"`
	ExpiresAt       time.Time `validate:"required,gtfield=DateTimeCreated"`
}

// Validate for validating Token struct
func (t *Token) Validate() error {
	return validate(t)
}

// Expired reports whether the token is no longer valid at now.
func (t *Token) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

// Credentials are the username and password supplied by a client.
type Credentials struct {
	Username string `validate:"required,min=3,max=150,username"`
	Password string `validate:"required,min=8,password"`
}

// Validate for validating Credentials struct
func (c *Credentials) Validate() error {
	return validate(c)
}

func validate(s interface{}) error {
	validate := validator.New()

	if err := validate.RegisterValidation("username", validators.UsernameValidation); err != nil {
		return fmt.Errorf("failed to register custom validator: %w", err)
	}
	if err := validate.RegisterValidation("password", validators.PasswordValidation); err != nil {
		return fmt.Errorf("failed to register custom validator: %w", err)
	}

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
