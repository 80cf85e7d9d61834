package config

import (
	"fmt"

	"github.com/chumaana/reproducible-notebook-app-sub000/internal/pkg/validators"

	"github.com/go-playground/validator/v10"
)

// newValidator returns a validator with the project specific tags registered.
func newValidator() (*validator.Validate, error) {
	validate := validator.New()
	if err := validate.RegisterValidation("rversion", validators.RVersionValidation); err != nil {
		return nil, fmt.Errorf("failed to register custom validator: %w", err)
	}
	return validate, nil
}

func validateStruct(name string, s interface{}) error {
	validate, err := newValidator()
	if err != nil {
		return err
	}
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for %s: %w", name, err)
	}
	return nil
}
