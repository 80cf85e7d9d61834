// Package config provides functionality for loading and managing application configuration.
//
// Settings are read from a YAML file through viper, overridden by RNB_-prefixed
// environment variables, and validated before they reach the rest of the
// application.
package config
