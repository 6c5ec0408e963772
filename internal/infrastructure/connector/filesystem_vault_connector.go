package connector

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Photic23/rsa-oaep/internal/domain/keys"
	"github.com/Photic23/rsa-oaep/internal/pkg/config"
	"github.com/Photic23/rsa-oaep/internal/pkg/logger"
)

// filesystemVaultConnector keeps key files below a local directory
type filesystemVaultConnector struct {
	directory string
	logger    logger.Logger
}

// NewFilesystemVaultConnector creates a VaultConnector writing to settings.Directory, which is created if missing
func NewFilesystemVaultConnector(settings *config.KeyConnectorSettings, logger logger.Logger) (keys.VaultConnector, error) {
	if settings.Directory == "" {
		return nil, errors.New("key directory is required")
	}
	if err := os.MkdirAll(settings.Directory, 0700); err != nil {
		return nil, fmt.Errorf("failed to create key directory: %w", err)
	}
	return &filesystemVaultConnector{
		directory: settings.Directory,
		logger:    logger,
	}, nil
}

func (c *filesystemVaultConnector) keyPath(keyID, keyPairID, keyType string) (string, error) {
	name, err := keyObjectName(keyID, keyPairID, keyType)
	if err != nil {
		return "", err
	}
	return filepath.Join(c.directory, filepath.FromSlash(name)), nil
}

// Upload writes the key file with owner-only permissions
func (c *filesystemVaultConnector) Upload(ctx context.Context, content []byte, keyID, keyPairID, keyType string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	keyPath, err := c.keyPath(keyID, keyPairID, keyType)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(keyPath), 0700); err != nil {
		return fmt.Errorf("failed to create key pair directory: %w", err)
	}
	if err := os.WriteFile(keyPath, content, 0600); err != nil {
		return fmt.Errorf("failed to write key file: %w", err)
	}

	c.logger.Info("Stored ", keyType, " key ", keyID, " in ", keyPath)
	return nil
}

// Download reads a key file
func (c *filesystemVaultConnector) Download(ctx context.Context, keyID, keyPairID, keyType string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	keyPath, err := c.keyPath(keyID, keyPairID, keyType)
	if err != nil {
		return nil, err
	}

	content, err := os.ReadFile(keyPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: no key file for %s", keys.ErrCryptoKeyNotFound, keyID)
		}
		return nil, fmt.Errorf("failed to read key file: %w", err)
	}

	c.logger.Info("Loaded ", keyType, " key ", keyID)
	return content, nil
}

// Delete removes a key file and the key pair directory once it is empty
func (c *filesystemVaultConnector) Delete(ctx context.Context, keyID, keyPairID, keyType string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	keyPath, err := c.keyPath(keyID, keyPairID, keyType)
	if err != nil {
		return err
	}

	if err := os.Remove(keyPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: no key file for %s", keys.ErrCryptoKeyNotFound, keyID)
		}
		return fmt.Errorf("failed to delete key file: %w", err)
	}

	// fails while the other half of the pair is still stored
	_ = os.Remove(filepath.Dir(keyPath))

	c.logger.Info("Deleted ", keyType, " key ", keyID)
	return nil
}
