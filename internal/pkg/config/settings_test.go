//go:build unit
// +build unit

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validDockerSettings() DockerSettings {
	return DockerSettings{
		Binary:   "docker",
		Image:    "rocker/verse",
		RVersion: "4.3.1",
		Timeout:  5 * time.Minute,
		Network:  DockerNetworkNone,
	}
}

func TestDockerSettingsValidation(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(*DockerSettings)
		expectedError bool
	}{
		{"valid", func(*DockerSettings) {}, false},
		{"missing image", func(s *DockerSettings) { s.Image = "" }, true},
		{"non semver r version", func(s *DockerSettings) { s.RVersion = "latest" }, true},
		{"sub second timeout", func(s *DockerSettings) { s.Timeout = 10 * time.Millisecond }, true},
		{"unknown network", func(s *DockerSettings) { s.Network = "overlay" }, true},
		{"empty network is allowed", func(s *DockerSettings) { s.Network = "" }, false},
		{"negative retries", func(s *DockerSettings) { s.Retries = -1 }, true},
		{"too many retries", func(s *DockerSettings) { s.Retries = 11 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validDockerSettings()
			tt.mutate(&s)
			err := s.Validate()
			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDockerSettings_ImageRef(t *testing.T) {
	s := validDockerSettings()
	assert.Equal(t, "rocker/verse:4.3.1", s.ImageRef())
}

func TestArtifactSettingsValidation(t *testing.T) {
	tests := []struct {
		name          string
		settings      ArtifactSettings
		expectedError bool
	}{
		{"local with root dir", ArtifactSettings{Provider: LocalArtifactProvider, RootDir: "/data"}, false},
		{"local without root dir", ArtifactSettings{Provider: LocalArtifactProvider}, true},
		{"minio complete", ArtifactSettings{Provider: MinioArtifactProvider, Endpoint: "localhost:9000", Bucket: "notebooks", AccessKey: "a", SecretKey: "b"}, false},
		{"minio without credentials", ArtifactSettings{Provider: MinioArtifactProvider, Endpoint: "localhost:9000", Bucket: "notebooks"}, true},
		{"minio without bucket", ArtifactSettings{Provider: MinioArtifactProvider, Endpoint: "localhost:9000", AccessKey: "a", SecretKey: "b"}, true},
		{"unknown provider", ArtifactSettings{Provider: "azure"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.settings.Validate()
			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAuthSettingsValidation(t *testing.T) {
	assert.NoError(t, (&AuthSettings{TokenTTL: time.Hour}).Validate())
	assert.NoError(t, (&AuthSettings{TokenTTL: time.Hour, BcryptCost: 12}).Validate())
	assert.Error(t, (&AuthSettings{}).Validate())
	assert.Error(t, (&AuthSettings{TokenTTL: time.Hour, BcryptCost: 2}).Validate())
}
