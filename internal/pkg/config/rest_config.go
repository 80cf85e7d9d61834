package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables overriding file settings,
// e.g. RNB_DATABASE_DSN overrides database.dsn.
const EnvPrefix = "RNB"

// RestConfig is the complete configuration of the REST service.
type RestConfig struct {
	Port      string           `mapstructure:"port" validate:"required,numeric"`
	Database  DatabaseSettings `mapstructure:"database"`
	Logger    LoggerSettings   `mapstructure:"logger"`
	Docker    DockerSettings   `mapstructure:"docker"`
	Artifacts ArtifactSettings `mapstructure:"artifacts"`
	Auth      AuthSettings     `mapstructure:"auth"`
}

// InitializeRestConfig reads the YAML file at path, applies environment overrides
// and validates the result.
func InitializeRestConfig(path string) (*RestConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg RestConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the configuration and every nested settings block.
func (c *RestConfig) Validate() error {
	if err := validateStruct("RestConfig", c); err != nil {
		return err
	}

	validators := []interface{ Validate() error }{
		&c.Database, &c.Logger, &c.Docker, &c.Artifacts, &c.Auth,
	}
	for _, s := range validators {
		if err := s.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// setDefaults registers every key so that environment overrides also apply to
// keys missing from the file.
func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8000")

	v.SetDefault("database.type", SqliteDbType)
	v.SetDefault("database.dsn", "notebooks.db")
	v.SetDefault("database.name", "")

	v.SetDefault("logger.log_level", LogLevelInfo)
	v.SetDefault("logger.log_type", LogTypeConsole)
	v.SetDefault("logger.file_path", "")
	v.SetDefault("logger.max_size", 0)
	v.SetDefault("logger.max_backups", 0)
	v.SetDefault("logger.max_age", 0)

	v.SetDefault("docker.binary", "docker")
	v.SetDefault("docker.image", "rocker/verse")
	v.SetDefault("docker.r_version", "4.3.1")
	v.SetDefault("docker.timeout", "5m")
	v.SetDefault("docker.memory", "2g")
	v.SetDefault("docker.cpus", "1")
	v.SetDefault("docker.network", DockerNetworkNone)
	v.SetDefault("docker.work_dir", "")
	v.SetDefault("docker.trace_dependencies", true)
	v.SetDefault("docker.retries", 2)
	v.SetDefault("docker.retry_delay", "2s")

	v.SetDefault("artifacts.provider", LocalArtifactProvider)
	v.SetDefault("artifacts.root_dir", "artifacts")
	v.SetDefault("artifacts.endpoint", "")
	v.SetDefault("artifacts.bucket", "")
	v.SetDefault("artifacts.access_key", "")
	v.SetDefault("artifacts.secret_key", "")
	v.SetDefault("artifacts.use_ssl", false)

	v.SetDefault("auth.token_ttl", "24h")
	v.SetDefault("auth.bcrypt_cost", 0)
}
