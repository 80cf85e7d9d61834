package config

import (
	"fmt"
	"regexp"
)

var dbNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Supported database types
const (
	PostgresDbType = "postgres"
	SqliteDbType   = "sqlite"
)

// DatabaseSettings holds the connection settings of the notebook store.
// Name is only used by PostgreSQL, where the database is created on demand.
type DatabaseSettings struct {
	Type string `mapstructure:"type" validate:"required,oneof=postgres sqlite"`
	DSN  string `mapstructure:"dsn" validate:"required"`
	Name string `mapstructure:"name"`
}

// Validate checks that all fields in DatabaseSettings are valid
func (s *DatabaseSettings) Validate() error {
	if err := validateStruct("DatabaseSettings", s); err != nil {
		return err
	}
	if s.Name != "" && !dbNamePattern.MatchString(s.Name) {
		return fmt.Errorf("database name %q must be a plain identifier", s.Name)
	}
	return nil
}
