package keys

import (
	"context"
)

// KeyGenerationResult is delivered once by an asynchronous key generation.
type KeyGenerationResult struct {
	Keys []*CryptoKeyMeta
	Err  error
}

// CryptoKeyGenerationService defines methods for generating and registering RSA key pairs.
type CryptoKeyGenerationService interface {
	// Generate creates a key pair of keySize bits, stores both key files and their metadata.
	// It returns the metadata of the public and the private key, in that order.
	Generate(ctx context.Context, keySize uint32) ([]*CryptoKeyMeta, error)

	// GenerateAsync runs Generate on a worker goroutine. The returned channel yields exactly one result.
	GenerateAsync(ctx context.Context, keySize uint32) <-chan KeyGenerationResult
}

// CryptoKeyMetadataService defines methods for managing cryptographic key metadata and deleting keys.
type CryptoKeyMetadataService interface {
	// List retrieves all cryptographic keys metadata considering a query filter when set.
	List(ctx context.Context, query *CryptoKeyQuery) ([]*CryptoKeyMeta, error)

	// GetByID retrieves the metadata of a cryptographic key by its unique ID.
	GetByID(ctx context.Context, keyID string) (*CryptoKeyMeta, error)

	// DeleteByID deletes a cryptographic key file and its associated metadata by ID.
	DeleteByID(ctx context.Context, keyID string) error
}

// CryptoKeyDownloadService defines methods for downloading key files.
type CryptoKeyDownloadService interface {
	// DownloadByID returns the key file content of the key with the given ID.
	DownloadByID(ctx context.Context, keyID string) ([]byte, error)
}

// CryptoKeyRepository defines the interface for CryptoKey-related operations
type CryptoKeyRepository interface {
	Create(ctx context.Context, key *CryptoKeyMeta) error
	List(ctx context.Context, query *CryptoKeyQuery) ([]*CryptoKeyMeta, error)
	GetByID(ctx context.Context, keyID string) (*CryptoKeyMeta, error)
	UpdateByID(ctx context.Context, key *CryptoKeyMeta) error
	DeleteByID(ctx context.Context, keyID string) error
}

// VaultConnector stores key files. Implementations exist for a local directory and Azure Blob Storage.
type VaultConnector interface {
	// Upload stores the key file content of one key of a pair.
	Upload(ctx context.Context, content []byte, keyID, keyPairID, keyType string) error

	// Download retrieves a key file by its IDs and type.
	Download(ctx context.Context, keyID, keyPairID, keyType string) ([]byte, error)

	// Delete removes a key file by its IDs and type.
	Delete(ctx context.Context, keyID, keyPairID, keyType string) error
}
