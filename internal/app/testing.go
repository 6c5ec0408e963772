//go:build integration
// +build integration

package app

import (
	"context"
	"testing"

	"github.com/Photic23/rsa-oaep/internal/domain/files"
	"github.com/Photic23/rsa-oaep/internal/domain/keys"
	"github.com/Photic23/rsa-oaep/internal/infrastructure/connector"
	"github.com/Photic23/rsa-oaep/internal/infrastructure/cryptography"
	"github.com/Photic23/rsa-oaep/internal/infrastructure/persistence"
	"github.com/Photic23/rsa-oaep/internal/pkg/config"
	"github.com/Photic23/rsa-oaep/internal/pkg/metrics"
	"github.com/Photic23/rsa-oaep/internal/pkg/testutil"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/stretchr/testify/require"
)

// TestKeySize keeps generation fast in integration tests
const TestKeySize = 1024

// TestServices holds all application services and dependencies for testing
type TestServices struct {
	// Crypto key services
	CryptoKeyGenerationService keys.CryptoKeyGenerationService
	CryptoKeyMetadataService   keys.CryptoKeyMetadataService
	CryptoKeyDownloadService   keys.CryptoKeyDownloadService

	// File services
	FileEncryptionService files.FileEncryptionService
	FileDecryptionService files.FileDecryptionService

	// Infrastructure
	VaultConnector keys.VaultConnector
	Metrics        *metrics.Metrics
	DBContext      *persistence.TestContext
}

// SetupTestServices initializes all application services against a real database and a key directory
// below t.TempDir()
func SetupTestServices(t *testing.T, dbType string) *TestServices {
	t.Helper()

	logger := testutil.SetupTestLogger(t)

	dbContext := persistence.SetupTestDB(t, dbType)

	keyConnectorSettings := &config.KeyConnectorSettings{
		CloudProvider: config.LocalProvider,
		Directory:     t.TempDir(),
	}
	vaultConnector, err := connector.NewVaultConnector(context.Background(), keyConnectorSettings, logger)
	require.NoError(t, err, "Failed to create vault connector")

	m, err := metrics.New(prometheus.NewRegistry())
	require.NoError(t, err, "Failed to create metrics")

	cryptoSettings := &config.CryptoSettings{
		DefaultKeySize:        TestKeySize,
		ExportPrimes:          true,
		MaxGenerationAttempts: 3,
	}

	keyEngine, err := cryptography.NewRSAKeyEngine(nil, logger)
	require.NoError(t, err, "Failed to create key engine")
	oaepProcessor, err := cryptography.NewOAEPProcessor(nil, logger)
	require.NoError(t, err, "Failed to create OAEP processor")
	fileProcessor, err := cryptography.NewFileProcessor(keyEngine, oaepProcessor, cryptoSettings.LabelBytes(), logger)
	require.NoError(t, err, "Failed to create file processor")

	generationService, err := NewCryptoKeyGenerationService(vaultConnector, dbContext.CryptoKeyRepo, keyEngine, cryptoSettings, m, logger)
	require.NoError(t, err, "Failed to create CryptoKeyGenerationService")

	metadataService, err := NewCryptoKeyMetadataService(vaultConnector, dbContext.CryptoKeyRepo, logger)
	require.NoError(t, err, "Failed to create CryptoKeyMetadataService")

	downloadService, err := NewCryptoKeyDownloadService(vaultConnector, dbContext.CryptoKeyRepo, logger)
	require.NoError(t, err, "Failed to create CryptoKeyDownloadService")

	encryptionService, err := NewFileEncryptionService(vaultConnector, dbContext.CryptoKeyRepo, fileProcessor, m, logger)
	require.NoError(t, err, "Failed to create FileEncryptionService")

	decryptionService, err := NewFileDecryptionService(vaultConnector, dbContext.CryptoKeyRepo, fileProcessor, m, logger)
	require.NoError(t, err, "Failed to create FileDecryptionService")

	return &TestServices{
		CryptoKeyGenerationService: generationService,
		CryptoKeyMetadataService:   metadataService,
		CryptoKeyDownloadService:   downloadService,
		FileEncryptionService:      encryptionService,
		FileDecryptionService:      decryptionService,
		VaultConnector:             vaultConnector,
		Metrics:                    m,
		DBContext:                  dbContext,
	}
}
