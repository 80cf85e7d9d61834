package config

import (
	"fmt"
	"time"
)

// Docker network modes accepted for notebook containers
const (
	DockerNetworkNone   = "none"
	DockerNetworkBridge = "bridge"
	DockerNetworkHost   = "host"
)

// DockerSettings configures the container used to render notebooks.
type DockerSettings struct {
	Binary            string        `mapstructure:"binary" validate:"required"`
	Host              string        `mapstructure:"host"`
	Image             string        `mapstructure:"image" validate:"required"`
	RVersion          string        `mapstructure:"r_version" validate:"required,rversion"`
	Timeout           time.Duration `mapstructure:"timeout" validate:"required,min=1s"`
	Memory            string        `mapstructure:"memory"`
	CPUs              string        `mapstructure:"cpus"`
	Network           string        `mapstructure:"network" validate:"omitempty,oneof=none bridge host"`
	WorkDir           string        `mapstructure:"work_dir"`
	TraceDependencies bool          `mapstructure:"trace_dependencies"`
	// Retries applies to docker calls that could not reach the daemon.
	Retries           int           `mapstructure:"retries" validate:"min=0,max=10"`
	RetryDelay        time.Duration `mapstructure:"retry_delay"`
}

// Validate checks that all fields in DockerSettings are valid
func (s *DockerSettings) Validate() error {
	return validateStruct("DockerSettings", s)
}

// ImageRef returns the fully tagged image the notebooks run in, e.g. rocker/verse:4.3.1.
func (s *DockerSettings) ImageRef() string {
	return fmt.Sprintf("%s:%s", s.Image, s.RVersion)
}
