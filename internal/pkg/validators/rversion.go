package validators

import (
	"github.com/Masterminds/semver/v3"
	"github.com/go-playground/validator/v10"
)

// RVersionValidation validates that the field holds an R release version such as 4.3.1.
func RVersionValidation(fl validator.FieldLevel) bool {
	v, err := semver.StrictNewVersion(fl.Field().String())
	if err != nil {
		return false
	}
	// rocker images only exist for R >= 3.1
	return v.Major() >= 3 && !(v.Major() == 3 && v.Minor() < 1)
}
