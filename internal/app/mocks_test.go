//go:build unit
// +build unit

package app

import (
	"context"
	"sync"
	"testing"

	"github.com/Photic23/rsa-oaep/internal/domain/cryptoalg"
	"github.com/Photic23/rsa-oaep/internal/domain/keys"
	"github.com/Photic23/rsa-oaep/internal/infrastructure/cryptography"
	"github.com/Photic23/rsa-oaep/internal/pkg/testutil"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockVaultConnector is a mock implementation of VaultConnector
type MockVaultConnector struct {
	mock.Mock
}

func (m *MockVaultConnector) Upload(ctx context.Context, content []byte, keyID, keyPairID, keyType string) error {
	args := m.Called(ctx, content, keyID, keyPairID, keyType)
	return args.Error(0)
}

func (m *MockVaultConnector) Download(ctx context.Context, keyID, keyPairID, keyType string) ([]byte, error) {
	args := m.Called(ctx, keyID, keyPairID, keyType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockVaultConnector) Delete(ctx context.Context, keyID, keyPairID, keyType string) error {
	args := m.Called(ctx, keyID, keyPairID, keyType)
	return args.Error(0)
}

// MockCryptoKeyRepository is a mock implementation of CryptoKeyRepository
type MockCryptoKeyRepository struct {
	mock.Mock
}

func (m *MockCryptoKeyRepository) Create(ctx context.Context, key *keys.CryptoKeyMeta) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCryptoKeyRepository) List(ctx context.Context, query *keys.CryptoKeyQuery) ([]*keys.CryptoKeyMeta, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*keys.CryptoKeyMeta), args.Error(1)
}

func (m *MockCryptoKeyRepository) GetByID(ctx context.Context, keyID string) (*keys.CryptoKeyMeta, error) {
	args := m.Called(ctx, keyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*keys.CryptoKeyMeta), args.Error(1)
}

func (m *MockCryptoKeyRepository) UpdateByID(ctx context.Context, key *keys.CryptoKeyMeta) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCryptoKeyRepository) DeleteByID(ctx context.Context, keyID string) error {
	args := m.Called(ctx, keyID)
	return args.Error(0)
}

// MockKeyEngine is a mock implementation of KeyEngine
type MockKeyEngine struct {
	mock.Mock
}

func (m *MockKeyEngine) GenerateKeyPair(bits int) (*cryptoalg.KeyPair, error) {
	args := m.Called(bits)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cryptoalg.KeyPair), args.Error(1)
}

func (m *MockKeyEngine) SaveKey(record *cryptoalg.KeyRecord, path string) error {
	args := m.Called(record, path)
	return args.Error(0)
}

func (m *MockKeyEngine) LoadKey(path string, kind cryptoalg.KeyKind) (*cryptoalg.KeyRecord, error) {
	args := m.Called(path, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cryptoalg.KeyRecord), args.Error(1)
}

var (
	fixtureOnce sync.Once
	fixturePair *cryptoalg.KeyPair
	fixtureErr  error
)

// testKeyPair returns a 1024 bit key pair shared by all tests of the package.
func testKeyPair(t *testing.T) *cryptoalg.KeyPair {
	t.Helper()
	log := testutil.SetupTestLogger(t)
	fixtureOnce.Do(func() {
		engine, err := cryptography.NewRSAKeyEngine(nil, log)
		if err != nil {
			fixtureErr = err
			return
		}
		fixturePair, fixtureErr = engine.GenerateKeyPair(1024)
	})
	require.NoError(t, fixtureErr)
	return fixturePair
}
