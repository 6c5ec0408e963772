package connector

import (
	"context"
	"fmt"
	"path"

	"github.com/Photic23/rsa-oaep/internal/domain/keys"
	"github.com/Photic23/rsa-oaep/internal/pkg/config"
	"github.com/Photic23/rsa-oaep/internal/pkg/logger"
	"github.com/google/uuid"
)

// NewVaultConnector creates the connector selected by settings.CloudProvider
func NewVaultConnector(ctx context.Context, settings *config.KeyConnectorSettings, logger logger.Logger) (keys.VaultConnector, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	switch settings.CloudProvider {
	case config.LocalProvider:
		return NewFilesystemVaultConnector(settings, logger)
	case config.AzureCloudProvider:
		return NewAzureVaultConnector(ctx, settings, logger)
	default:
		return nil, fmt.Errorf("unsupported cloud provider: %s", settings.CloudProvider)
	}
}

// keyObjectName returns "<keyPairID>/<keyID>-<keyType>-key.txt" after checking every component,
// so names can be used as file paths and blob names alike.
func keyObjectName(keyID, keyPairID, keyType string) (string, error) {
	if _, err := uuid.Parse(keyID); err != nil {
		return "", fmt.Errorf("invalid key id %q: %w", keyID, err)
	}
	if _, err := uuid.Parse(keyPairID); err != nil {
		return "", fmt.Errorf("invalid key pair id %q: %w", keyPairID, err)
	}
	if keyType != keys.KeyTypePublic && keyType != keys.KeyTypePrivate {
		return "", fmt.Errorf("invalid key type %q", keyType)
	}
	return path.Join(keyPairID, fmt.Sprintf("%s-%s-key.txt", keyID, keyType)), nil
}
