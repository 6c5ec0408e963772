package commands

import (
	"fmt"
	"os"

	"github.com/Photic23/rsa-oaep/internal/pkg/config"
	"github.com/Photic23/rsa-oaep/internal/pkg/logger"
	"github.com/spf13/cobra"
)

const configEnvVar = config.EnvPrefix + "_CONFIG_PATH"

// loadEnvironment reads the configuration selected by --config and initializes the logger from it.
func loadEnvironment(cmd *cobra.Command) (*config.AppConfig, logger.Logger, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, nil, fmt.Errorf("invalid config flag: %w", err)
	}
	if path == "" {
		path = os.Getenv(configEnvVar)
	}

	cfg, err := config.InitializeAppConfig(path)
	if err != nil {
		return nil, nil, err
	}

	loggerInstance, err := setupLogger(&cfg.Logger)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger.WithComponent(loggerInstance, logger.ComponentCLI), nil
}

func setupLogger(settings *config.LoggerSettings) (logger.Logger, error) {
	if err := logger.InitLogger(settings); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	loggerInstance, err := logger.GetLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to get logger instance: %w", err)
	}

	return loggerInstance, nil
}

func requireFlag(cmd *cobra.Command, name string) (string, error) {
	value, err := cmd.Flags().GetString(name)
	if err != nil {
		return "", fmt.Errorf("invalid %s flag: %w", name, err)
	}
	if value == "" {
		return "", fmt.Errorf("--%s is required", name)
	}
	return value, nil
}
