package validators

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	rPackageNamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9.]*[A-Za-z0-9]$`)
	usernamePattern     = regexp.MustCompile(`^[A-Za-z0-9_.@+-]+$`)
)

// RPackageNameValidation validates a CRAN package name: letters, digits and dots,
// starting with a letter and not ending with a dot.
func RPackageNameValidation(fl validator.FieldLevel) bool {
	return IsRPackageName(fl.Field().String())
}

// IsRPackageName reports whether name is a syntactically valid R package name.
func IsRPackageName(name string) bool {
	return len(name) >= 2 && rPackageNamePattern.MatchString(name)
}

// MaxPasswordBytes is the longest password bcrypt accepts.
const MaxPasswordBytes = 72

// PasswordValidation validates that the password fits in MaxPasswordBytes bytes.
func PasswordValidation(fl validator.FieldLevel) bool {
	return len(fl.Field().String()) <= MaxPasswordBytes
}

// UsernameValidation validates the characters allowed in account names.
func UsernameValidation(fl validator.FieldLevel) bool {
	return usernamePattern.MatchString(fl.Field().String())
}
