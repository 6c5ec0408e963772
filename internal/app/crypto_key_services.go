package app

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Photic23/rsa-oaep/internal/domain/cryptoalg"
	"github.com/Photic23/rsa-oaep/internal/domain/keys"
	"github.com/Photic23/rsa-oaep/internal/infrastructure/cryptography"
	"github.com/Photic23/rsa-oaep/internal/infrastructure/cryptography/sha256"
	"github.com/Photic23/rsa-oaep/internal/pkg/config"
	"github.com/Photic23/rsa-oaep/internal/pkg/logger"
	"github.com/Photic23/rsa-oaep/internal/pkg/metrics"

	"github.com/google/uuid"
)

// cryptoKeyGenerationService implements the CryptoKeyGenerationService interface
type cryptoKeyGenerationService struct {
	vaultConnector keys.VaultConnector
	cryptoKeyRepo  keys.CryptoKeyRepository
	keyEngine      cryptoalg.KeyEngine
	settings       config.CryptoSettings
	metrics        *metrics.Metrics
	logger         logger.Logger
}

// NewCryptoKeyGenerationService creates a new cryptoKeyGenerationService instance.
// A nil m records into unregistered collectors.
func NewCryptoKeyGenerationService(
	vaultConnector keys.VaultConnector,
	cryptoKeyRepo keys.CryptoKeyRepository,
	keyEngine cryptoalg.KeyEngine,
	settings *config.CryptoSettings,
	m *metrics.Metrics,
	logger logger.Logger,
) (keys.CryptoKeyGenerationService, error) {
	if vaultConnector == nil || cryptoKeyRepo == nil || keyEngine == nil || settings == nil {
		return nil, fmt.Errorf("vault connector, repository, key engine and crypto settings are required")
	}
	m, err := orUnregistered(m)
	if err != nil {
		return nil, err
	}

	s := *settings
	if s.MaxGenerationAttempts < 1 {
		s.MaxGenerationAttempts = 1
	}
	if s.DefaultKeySize == 0 {
		s.DefaultKeySize = cryptoalg.DefaultKeySize
	}

	return &cryptoKeyGenerationService{
		vaultConnector: vaultConnector,
		cryptoKeyRepo:  cryptoKeyRepo,
		keyEngine:      keyEngine,
		settings:       s,
		metrics:        m,
		logger:         logger,
	}, nil
}

// Generate derives a key pair, stores both key files and registers their metadata.
// A keySize of 0 selects the configured default.
func (s *cryptoKeyGenerationService) Generate(ctx context.Context, keySize uint32) (metas []*keys.CryptoKeyMeta, err error) {
	defer func() {
		s.metrics.KeyGenerations.WithLabelValues(metrics.Status(err)).Inc()
	}()

	if keySize == 0 {
		keySize = uint32(s.settings.DefaultKeySize)
	}

	start := time.Now()
	keyPair, err := GenerateKeyPair(ctx, s.keyEngine, int(keySize), s.settings.MaxGenerationAttempts, s.logger, func(int) {
		s.metrics.KeyGenerationAttempts.Inc()
	})
	if err != nil {
		return nil, err
	}
	s.metrics.KeyGenerationDuration.WithLabelValues(strconv.Itoa(int(keySize))).Observe(time.Since(start).Seconds())

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	publicContent, err := cryptography.MarshalKey(keyPair.PublicRecord())
	if err != nil {
		return nil, err
	}
	privateContent, err := cryptography.MarshalKey(keyPair.PrivateRecord(s.settings.ExportPrimes))
	if err != nil {
		return nil, err
	}

	keyPairID := uuid.NewString()
	now := time.Now()
	fingerprint := Fingerprint(keyPair.N.Bytes())

	publicMeta := &keys.CryptoKeyMeta{
		ID:              uuid.NewString(),
		KeyPairID:       keyPairID,
		Algorithm:       cryptoalg.AlgorithmRSAOAEP,
		KeySize:         keySize,
		Type:            keys.KeyTypePublic,
		Fingerprint:     fingerprint,
		DateTimeCreated: now,
	}
	privateMeta := &keys.CryptoKeyMeta{
		ID:              uuid.NewString(),
		KeyPairID:       keyPairID,
		Algorithm:       cryptoalg.AlgorithmRSAOAEP,
		KeySize:         keySize,
		Type:            keys.KeyTypePrivate,
		Fingerprint:     fingerprint,
		DateTimeCreated: now,
	}

	var stored []*keys.CryptoKeyMeta
	for _, item := range []struct {
		meta    *keys.CryptoKeyMeta
		content []byte
	}{
		{publicMeta, publicContent},
		{privateMeta, privateContent},
	} {
		if err := s.store(ctx, item.meta, item.content); err != nil {
			s.rollback(stored)
			return nil, err
		}
		stored = append(stored, item.meta)
	}

	s.logger.Info("Registered key pair ", keyPairID, " with fingerprint ", fingerprint)
	return stored, nil
}

// GenerateAsync runs Generate on its own goroutine and delivers the single result on a buffered channel.
func (s *cryptoKeyGenerationService) GenerateAsync(ctx context.Context, keySize uint32) <-chan keys.KeyGenerationResult {
	results := make(chan keys.KeyGenerationResult, 1)
	go func() {
		defer close(results)
		metas, err := s.Generate(ctx, keySize)
		results <- keys.KeyGenerationResult{Keys: metas, Err: err}
	}()
	return results
}

func (s *cryptoKeyGenerationService) store(ctx context.Context, meta *keys.CryptoKeyMeta, content []byte) error {
	if err := s.vaultConnector.Upload(ctx, content, meta.ID, meta.KeyPairID, meta.Type); err != nil {
		return fmt.Errorf("failed to upload %s key: %w", meta.Type, err)
	}
	if err := s.cryptoKeyRepo.Create(ctx, meta); err != nil {
		if delErr := s.vaultConnector.Delete(context.Background(), meta.ID, meta.KeyPairID, meta.Type); delErr != nil {
			s.logger.Warn("failed to remove orphaned key file ", meta.ID, ": ", delErr)
		}
		return fmt.Errorf("failed to register %s key: %w", meta.Type, err)
	}
	return nil
}

// rollback removes keys of a partially registered pair.
func (s *cryptoKeyGenerationService) rollback(stored []*keys.CryptoKeyMeta) {
	ctx := context.Background()
	for _, meta := range stored {
		if err := s.vaultConnector.Delete(ctx, meta.ID, meta.KeyPairID, meta.Type); err != nil {
			s.logger.Warn("failed to remove key file ", meta.ID, ": ", err)
		}
		if err := s.cryptoKeyRepo.DeleteByID(ctx, meta.ID); err != nil {
			s.logger.Warn("failed to remove key metadata ", meta.ID, ": ", err)
		}
	}
}

// Fingerprint returns the hex encoded SHA-256 digest of the big-endian modulus bytes.
func Fingerprint(modulus []byte) string {
	sum := sha256.Sum256(modulus)
	return hex.EncodeToString(sum[:])
}

// cryptoKeyMetadataService implements the CryptoKeyMetadataService interface to manages cryptographic key metadata.
type cryptoKeyMetadataService struct {
	vaultConnector keys.VaultConnector
	cryptoKeyRepo  keys.CryptoKeyRepository
	logger         logger.Logger
}

// NewCryptoKeyMetadataService creates a new cryptoKeyMetadataService instance
func NewCryptoKeyMetadataService(vaultConnector keys.VaultConnector, cryptoKeyRepo keys.CryptoKeyRepository, logger logger.Logger) (keys.CryptoKeyMetadataService, error) {
	return &cryptoKeyMetadataService{
		vaultConnector: vaultConnector,
		cryptoKeyRepo:  cryptoKeyRepo,
		logger:         logger,
	}, nil
}

// List retrieves all cryptographic key metadata based on a query.
func (s *cryptoKeyMetadataService) List(ctx context.Context, query *keys.CryptoKeyQuery) ([]*keys.CryptoKeyMeta, error) {
	if query != nil {
		if err := query.Validate(); err != nil {
			return nil, err
		}
	}

	cryptoKeyMetas, err := s.cryptoKeyRepo.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return cryptoKeyMetas, nil
}

// GetByID retrieves the metadata of a cryptographic key by its ID.
func (s *cryptoKeyMetadataService) GetByID(ctx context.Context, keyID string) (*keys.CryptoKeyMeta, error) {
	keyMeta, err := s.cryptoKeyRepo.GetByID(ctx, keyID)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return keyMeta, nil
}

// DeleteByID deletes a key file and then its metadata.
func (s *cryptoKeyMetadataService) DeleteByID(ctx context.Context, keyID string) error {
	keyMeta, err := s.GetByID(ctx, keyID)
	if err != nil {
		return fmt.Errorf("failed to get key metadata: %w", err)
	}

	err = s.vaultConnector.Delete(ctx, keyID, keyMeta.KeyPairID, keyMeta.Type)
	if err != nil && !errors.Is(err, keys.ErrCryptoKeyNotFound) {
		return fmt.Errorf("failed to delete key from vault: %w", err)
	}
	if err != nil {
		s.logger.Warn("Key file of ", keyID, " was already gone, removing metadata only")
	}

	err = s.cryptoKeyRepo.DeleteByID(ctx, keyID)
	if err != nil {
		return fmt.Errorf("failed to delete key from database: %w", err)
	}
	s.logger.Info("Deleted key ", keyID)
	return nil
}

// cryptoKeyDownloadService implements the CryptoKeyDownloadService interface to handle the download of cryptographic keys.
type cryptoKeyDownloadService struct {
	vaultConnector keys.VaultConnector
	cryptoKeyRepo  keys.CryptoKeyRepository
	logger         logger.Logger
}

// NewCryptoKeyDownloadService creates a new cryptoKeyDownloadService instance
func NewCryptoKeyDownloadService(vaultConnector keys.VaultConnector, cryptoKeyRepo keys.CryptoKeyRepository, logger logger.Logger) (keys.CryptoKeyDownloadService, error) {
	return &cryptoKeyDownloadService{
		vaultConnector: vaultConnector,
		cryptoKeyRepo:  cryptoKeyRepo,
		logger:         logger,
	}, nil
}

// DownloadByID retrieves a key file by its ID.
func (s *cryptoKeyDownloadService) DownloadByID(ctx context.Context, keyID string) ([]byte, error) {
	keyMeta, err := s.cryptoKeyRepo.GetByID(ctx, keyID)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	content, err := s.vaultConnector.Download(ctx, keyMeta.ID, keyMeta.KeyPairID, keyMeta.Type)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return content, nil
}
