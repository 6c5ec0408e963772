//go:build unit
// +build unit

package v1

import (
	"context"
	"io"

	"github.com/Photic23/rsa-oaep/internal/domain/keys"

	"github.com/stretchr/testify/mock"
)

// MockCryptoKeyGenerationService is a mock implementation of CryptoKeyGenerationService
type MockCryptoKeyGenerationService struct {
	mock.Mock
}

func (m *MockCryptoKeyGenerationService) Generate(ctx context.Context, keySize uint32) ([]*keys.CryptoKeyMeta, error) {
	args := m.Called(ctx, keySize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*keys.CryptoKeyMeta), args.Error(1)
}

func (m *MockCryptoKeyGenerationService) GenerateAsync(ctx context.Context, keySize uint32) <-chan keys.KeyGenerationResult {
	results := make(chan keys.KeyGenerationResult, 1)
	metas, err := m.Generate(ctx, keySize)
	results <- keys.KeyGenerationResult{Keys: metas, Err: err}
	close(results)
	return results
}

// MockCryptoKeyMetadataService is a mock implementation of CryptoKeyMetadataService
type MockCryptoKeyMetadataService struct {
	mock.Mock
}

func (m *MockCryptoKeyMetadataService) List(ctx context.Context, query *keys.CryptoKeyQuery) ([]*keys.CryptoKeyMeta, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*keys.CryptoKeyMeta), args.Error(1)
}

func (m *MockCryptoKeyMetadataService) GetByID(ctx context.Context, keyID string) (*keys.CryptoKeyMeta, error) {
	args := m.Called(ctx, keyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*keys.CryptoKeyMeta), args.Error(1)
}

func (m *MockCryptoKeyMetadataService) DeleteByID(ctx context.Context, keyID string) error {
	args := m.Called(ctx, keyID)
	return args.Error(0)
}

// MockCryptoKeyDownloadService is a mock implementation of CryptoKeyDownloadService
type MockCryptoKeyDownloadService struct {
	mock.Mock
}

func (m *MockCryptoKeyDownloadService) DownloadByID(ctx context.Context, keyID string) ([]byte, error) {
	args := m.Called(ctx, keyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockFileEncryptionService is a mock implementation of FileEncryptionService.
// Output, when set, is written to w before returning.
type MockFileEncryptionService struct {
	mock.Mock
	Output []byte
}

func (m *MockFileEncryptionService) Encrypt(ctx context.Context, r io.Reader, w io.Writer, fileName, keyID string) (int, error) {
	content, _ := io.ReadAll(r)
	args := m.Called(ctx, content, fileName, keyID)
	if args.Error(1) == nil && m.Output != nil {
		_, _ = w.Write(m.Output)
	}
	return args.Int(0), args.Error(1)
}

// MockFileDecryptionService is a mock implementation of FileDecryptionService
type MockFileDecryptionService struct {
	mock.Mock
	Output []byte
}

func (m *MockFileDecryptionService) Decrypt(ctx context.Context, r io.Reader, w io.Writer, keyID string) (string, error) {
	content, _ := io.ReadAll(r)
	args := m.Called(ctx, content, keyID)
	if args.Error(1) == nil && m.Output != nil {
		_, _ = w.Write(m.Output)
	}
	return args.String(0), args.Error(1)
}
