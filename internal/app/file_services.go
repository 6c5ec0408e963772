package app

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/Photic23/rsa-oaep/internal/domain/cryptoalg"
	"github.com/Photic23/rsa-oaep/internal/domain/files"
	"github.com/Photic23/rsa-oaep/internal/domain/keys"
	"github.com/Photic23/rsa-oaep/internal/infrastructure/cryptography"
	"github.com/Photic23/rsa-oaep/internal/pkg/logger"
	"github.com/Photic23/rsa-oaep/internal/pkg/metrics"
)

// keyLoader resolves registered keys into RSA key material
type keyLoader struct {
	vaultConnector keys.VaultConnector
	cryptoKeyRepo  keys.CryptoKeyRepository
}

func (l *keyLoader) load(ctx context.Context, keyID, keyType string) (*cryptoalg.KeyRecord, error) {
	keyMeta, err := l.cryptoKeyRepo.GetByID(ctx, keyID)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	if keyMeta.Type != keyType {
		return nil, fmt.Errorf("%w: key %s is a %s key, expected %s", keys.ErrKeyTypeMismatch, keyID, keyMeta.Type, keyType)
	}

	content, err := l.vaultConnector.Download(ctx, keyMeta.ID, keyMeta.KeyPairID, keyMeta.Type)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	kind, err := cryptoalg.ParseKeyKind(keyType)
	if err != nil {
		return nil, err
	}
	return cryptography.ParseKey(content, kind)
}

// fileEncryptionService implements the FileEncryptionService interface
type fileEncryptionService struct {
	keyLoader
	fileProcessor cryptoalg.FileProcessor
	metrics       *metrics.Metrics
	logger        logger.Logger
}

// NewFileEncryptionService creates a new fileEncryptionService instance
func NewFileEncryptionService(
	vaultConnector keys.VaultConnector,
	cryptoKeyRepo keys.CryptoKeyRepository,
	fileProcessor cryptoalg.FileProcessor,
	m *metrics.Metrics,
	logger logger.Logger,
) (files.FileEncryptionService, error) {
	if vaultConnector == nil || cryptoKeyRepo == nil || fileProcessor == nil {
		return nil, fmt.Errorf("vault connector, repository and file processor are required")
	}
	m, err := orUnregistered(m)
	if err != nil {
		return nil, err
	}
	return &fileEncryptionService{
		keyLoader:     keyLoader{vaultConnector: vaultConnector, cryptoKeyRepo: cryptoKeyRepo},
		fileProcessor: fileProcessor,
		metrics:       m,
		logger:        logger,
	}, nil
}

// Encrypt frames r into w with the public key registered under keyID.
func (s *fileEncryptionService) Encrypt(ctx context.Context, r io.Reader, w io.Writer, fileName, keyID string) (blocks int, err error) {
	defer func() {
		s.metrics.FileEncryptions.WithLabelValues(metrics.Status(err)).Inc()
		s.metrics.Blocks.WithLabelValues(metrics.LabelOperationEncode).Add(float64(blocks))
	}()

	record, err := s.load(ctx, keyID, keys.KeyTypePublic)
	if err != nil {
		return 0, err
	}
	publicKey, err := record.PublicKey()
	if err != nil {
		return 0, err
	}

	blocks, err = s.fileProcessor.EncryptStream(r, w, filepath.Ext(fileName), publicKey)
	if err != nil {
		return blocks, err
	}
	s.logger.Info("Encrypted ", fileName, " into ", blocks, " blocks with key ", keyID)
	return blocks, nil
}

// fileDecryptionService implements the FileDecryptionService interface
type fileDecryptionService struct {
	keyLoader
	fileProcessor cryptoalg.FileProcessor
	metrics       *metrics.Metrics
	logger        logger.Logger
}

// NewFileDecryptionService creates a new fileDecryptionService instance
func NewFileDecryptionService(
	vaultConnector keys.VaultConnector,
	cryptoKeyRepo keys.CryptoKeyRepository,
	fileProcessor cryptoalg.FileProcessor,
	m *metrics.Metrics,
	logger logger.Logger,
) (files.FileDecryptionService, error) {
	if vaultConnector == nil || cryptoKeyRepo == nil || fileProcessor == nil {
		return nil, fmt.Errorf("vault connector, repository and file processor are required")
	}
	m, err := orUnregistered(m)
	if err != nil {
		return nil, err
	}
	return &fileDecryptionService{
		keyLoader:     keyLoader{vaultConnector: vaultConnector, cryptoKeyRepo: cryptoKeyRepo},
		fileProcessor: fileProcessor,
		metrics:       m,
		logger:        logger,
	}, nil
}

// Decrypt restores the plaintext of the container in r with the private key registered under keyID.
func (s *fileDecryptionService) Decrypt(ctx context.Context, r io.Reader, w io.Writer, keyID string) (ext string, err error) {
	var blocks int
	defer func() {
		s.metrics.FileDecryptions.WithLabelValues(metrics.Status(err)).Inc()
		s.metrics.Blocks.WithLabelValues(metrics.LabelOperationDecode).Add(float64(blocks))
	}()

	record, err := s.load(ctx, keyID, keys.KeyTypePrivate)
	if err != nil {
		return "", err
	}
	privateKey, err := record.PrivateKey()
	if err != nil {
		return "", err
	}

	ext, blocks, err = s.fileProcessor.DecryptStream(r, w, privateKey)
	if err != nil {
		return "", err
	}
	s.logger.Info("Decrypted ", blocks, " blocks with key ", keyID)
	return ext, nil
}

func orUnregistered(m *metrics.Metrics) (*metrics.Metrics, error) {
	if m != nil {
		return m, nil
	}
	return metrics.New(nil)
}
