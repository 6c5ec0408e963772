package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// LocalProvider stores key files in a directory on the local filesystem
const LocalProvider = "local"

// AzureCloudProvider stores key files in an Azure Blob Storage container
const AzureCloudProvider = "azure"

// KeyConnectorSettings selects and configures where generated key files are kept
type KeyConnectorSettings struct {
	CloudProvider    string `mapstructure:"cloud_provider" validate:"required,oneof=local azure"`
	Directory        string `mapstructure:"directory" validate:"required_if=CloudProvider local"`
	ConnectionString string `mapstructure:"connection_string" validate:"required_if=CloudProvider azure"`
	ContainerName    string `mapstructure:"container_name" validate:"required_if=CloudProvider azure"`
}

// Validate checks that all fields in KeyConnectorSettings are valid
func (s *KeyConnectorSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for KeyConnectorSettings: %w", err)
	}
	return nil
}
