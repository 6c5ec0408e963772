package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables overriding file settings, e.g. RSA_OAEP_LOGGER_LOG_LEVEL.
const EnvPrefix = "RSA_OAEP"

// AppConfig aggregates the settings of every component
type AppConfig struct {
	Logger       LoggerSettings       `mapstructure:"logger"`
	Database     DatabaseSettings     `mapstructure:"database"`
	KeyConnector KeyConnectorSettings `mapstructure:"key_connector"`
	Crypto       CryptoSettings       `mapstructure:"crypto"`
	Server       ServerSettings       `mapstructure:"server"`
}

// Validate checks every settings section
func (c *AppConfig) Validate() error {
	return errors.Join(
		c.Logger.Validate(),
		c.Database.Validate(),
		c.KeyConnector.Validate(),
		c.Crypto.Validate(),
		c.Server.Validate(),
	)
}

// InitializeAppConfig loads the configuration from path and the environment. An empty path looks for
// rsa-oaep.yaml in ./configs and the working directory and falls back to defaults when none exists.
func InitializeAppConfig(path string) (*AppConfig, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("rsa-oaep")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logger.log_level", LogLevelInfo)
	v.SetDefault("logger.log_type", LogTypeConsole)
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 28)

	v.SetDefault("database.type", SqliteDbType)
	v.SetDefault("database.dsn", "rsa-oaep.db")

	v.SetDefault("key_connector.cloud_provider", LocalProvider)
	v.SetDefault("key_connector.directory", "keys")

	v.SetDefault("crypto.default_key_size", 2048)
	v.SetDefault("crypto.label", "")
	v.SetDefault("crypto.export_primes", true)
	v.SetDefault("crypto.max_generation_attempts", 3)

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("server.max_upload_size", 32<<20)
	v.SetDefault("server.shutdown_timeout", "15s")
}
