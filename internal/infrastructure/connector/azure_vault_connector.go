package connector

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
	"github.com/Photic23/rsa-oaep/internal/domain/keys"
	"github.com/Photic23/rsa-oaep/internal/pkg/config"
	"github.com/Photic23/rsa-oaep/internal/pkg/logger"
)

// azureVaultConnector keeps key files as blobs in an Azure Blob Storage container
type azureVaultConnector struct {
	client        *azblob.Client
	containerName string
	logger        logger.Logger
}

// NewAzureVaultConnector creates a VaultConnector for the container in settings and creates the container if needed
func NewAzureVaultConnector(ctx context.Context, settings *config.KeyConnectorSettings, logger logger.Logger) (keys.VaultConnector, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	client, err := azblob.NewClientFromConnectionString(settings.ConnectionString, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure Blob client: %w", err)
	}

	if _, err := client.CreateContainer(ctx, settings.ContainerName, nil); err != nil && !bloberror.HasCode(err, bloberror.ContainerAlreadyExists) {
		return nil, fmt.Errorf("failed to create container %s: %w", settings.ContainerName, err)
	}

	return &azureVaultConnector{
		client:        client,
		containerName: settings.ContainerName,
		logger:        logger,
	}, nil
}

// Upload stores a key file as a block blob
func (c *azureVaultConnector) Upload(ctx context.Context, content []byte, keyID, keyPairID, keyType string) error {
	blobName, err := keyObjectName(keyID, keyPairID, keyType)
	if err != nil {
		return err
	}

	if _, err := c.client.UploadBuffer(ctx, c.containerName, blobName, content, nil); err != nil {
		return fmt.Errorf("failed to upload key blob: %w", err)
	}

	c.logger.Info("Uploaded ", keyType, " key ", keyID, " to blob ", blobName)
	return nil
}

// Download reads a key file blob
func (c *azureVaultConnector) Download(ctx context.Context, keyID, keyPairID, keyType string) ([]byte, error) {
	blobName, err := keyObjectName(keyID, keyPairID, keyType)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.DownloadStream(ctx, c.containerName, blobName, nil)
	if err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound) {
			return nil, fmt.Errorf("%w: no key blob for %s", keys.ErrCryptoKeyNotFound, keyID)
		}
		return nil, fmt.Errorf("failed to download key blob: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Warn("failed to close blob stream: ", err)
		}
	}()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return nil, fmt.Errorf("failed to read key blob: %w", err)
	}

	c.logger.Info("Downloaded ", keyType, " key ", keyID)
	return buf.Bytes(), nil
}

// Delete removes a key file blob
func (c *azureVaultConnector) Delete(ctx context.Context, keyID, keyPairID, keyType string) error {
	blobName, err := keyObjectName(keyID, keyPairID, keyType)
	if err != nil {
		return err
	}

	if _, err := c.client.DeleteBlob(ctx, c.containerName, blobName, nil); err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound) {
			return fmt.Errorf("%w: no key blob for %s", keys.ErrCryptoKeyNotFound, keyID)
		}
		return fmt.Errorf("failed to delete key blob: %w", err)
	}

	c.logger.Info("Deleted ", keyType, " key ", keyID, " blob ", blobName)
	return nil
}
