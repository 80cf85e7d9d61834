package config

import "fmt"

// LocalArtifactProvider stores artifacts on the local filesystem
const LocalArtifactProvider = "local"

// MinioArtifactProvider stores artifacts in an S3 compatible MinIO bucket
const MinioArtifactProvider = "minio"

// ArtifactSettings configures where execution outputs and packages are stored.
type ArtifactSettings struct {
	Provider  string `mapstructure:"provider" validate:"required,oneof=local minio"`
	RootDir   string `mapstructure:"root_dir"`
	Endpoint  string `mapstructure:"endpoint"`
	Bucket    string `mapstructure:"bucket"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	UseSSL    bool   `mapstructure:"use_ssl"`
}

// Validate checks that all fields in ArtifactSettings are valid
func (s *ArtifactSettings) Validate() error {
	if err := validateStruct("ArtifactSettings", s); err != nil {
		return err
	}

	switch s.Provider {
	case LocalArtifactProvider:
		if s.RootDir == "" {
			return fmt.Errorf("root dir is required for the local artifact provider")
		}
	case MinioArtifactProvider:
		if s.Endpoint == "" || s.Bucket == "" {
			return fmt.Errorf("endpoint and bucket are required for the minio artifact provider")
		}
		if s.AccessKey == "" || s.SecretKey == "" {
			return fmt.Errorf("access key and secret key are required for the minio artifact provider")
		}
	}

	return nil
}
