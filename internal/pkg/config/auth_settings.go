package config

import "time"

// AuthSettings configures token based authentication.
type AuthSettings struct {
	TokenTTL   time.Duration `mapstructure:"token_ttl" validate:"required,min=1m"`
	BcryptCost int           `mapstructure:"bcrypt_cost" validate:"omitempty,min=4,max=31"`
}

// Validate checks that all fields in AuthSettings are valid
func (s *AuthSettings) Validate() error {
	return validateStruct("AuthSettings", s)
}
