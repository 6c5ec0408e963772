//go:build unit
// +build unit

package app

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/Photic23/rsa-oaep/internal/domain/cryptoalg"
	"github.com/Photic23/rsa-oaep/internal/domain/keys"
	"github.com/Photic23/rsa-oaep/internal/infrastructure/cryptography"
	"github.com/Photic23/rsa-oaep/internal/pkg/config"
	"github.com/Photic23/rsa-oaep/internal/pkg/metrics"
	"github.com/Photic23/rsa-oaep/internal/pkg/testutil"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type generationFixture struct {
	vault   *MockVaultConnector
	repo    *MockCryptoKeyRepository
	engine  *MockKeyEngine
	metrics *metrics.Metrics
	service keys.CryptoKeyGenerationService
}

func setupGenerationService(t *testing.T, settings *config.CryptoSettings) *generationFixture {
	t.Helper()

	f := &generationFixture{
		vault:  &MockVaultConnector{},
		repo:   &MockCryptoKeyRepository{},
		engine: &MockKeyEngine{},
	}
	m, err := metrics.New(nil)
	require.NoError(t, err)
	f.metrics = m

	f.service, err = NewCryptoKeyGenerationService(f.vault, f.repo, f.engine, settings, m, testutil.SetupTestLogger(t))
	require.NoError(t, err)
	return f
}

func defaultCryptoSettings() *config.CryptoSettings {
	return &config.CryptoSettings{
		DefaultKeySize:        1024,
		ExportPrimes:          true,
		MaxGenerationAttempts: 3,
	}
}

func TestCryptoKeyGenerationService_Generate(t *testing.T) {
	f := setupGenerationService(t, defaultCryptoSettings())
	pair := testKeyPair(t)

	var uploaded [][]byte
	f.engine.On("GenerateKeyPair", 1024).Return(pair, nil).Once()
	f.vault.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { uploaded = append(uploaded, args.Get(1).([]byte)) }).
		Return(nil).Twice()
	f.repo.On("Create", mock.Anything, mock.AnythingOfType("*keys.CryptoKeyMeta")).Return(nil).Twice()

	metas, err := f.service.Generate(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, metas, 2)

	public, private := metas[0], metas[1]
	assert.Equal(t, keys.KeyTypePublic, public.Type)
	assert.Equal(t, keys.KeyTypePrivate, private.Type)
	assert.Equal(t, public.KeyPairID, private.KeyPairID)
	assert.NotEqual(t, public.ID, private.ID)
	assert.Equal(t, uint32(1024), public.KeySize)
	assert.Equal(t, cryptoalg.AlgorithmRSAOAEP, private.Algorithm)
	assert.Equal(t, Fingerprint(pair.N.Bytes()), public.Fingerprint)
	assert.Equal(t, public.Fingerprint, private.Fingerprint)
	require.NoError(t, public.Validate())

	require.Len(t, uploaded, 2)
	publicRecord, err := cryptography.ParseKey(uploaded[0], cryptoalg.KeyKindPublic)
	require.NoError(t, err)
	assert.Equal(t, 0, publicRecord.N.Cmp(pair.N))
	privateRecord, err := cryptography.ParseKey(uploaded[1], cryptoalg.KeyKindPrivate)
	require.NoError(t, err)
	assert.True(t, privateRecord.HasPrimes())

	assert.Equal(t, float64(1), promtestutil.ToFloat64(f.metrics.KeyGenerations.WithLabelValues(metrics.LabelStatusSuccess)))
	f.engine.AssertExpectations(t)
	f.vault.AssertExpectations(t)
	f.repo.AssertExpectations(t)
}

func TestCryptoKeyGenerationService_Generate_WithoutPrimes(t *testing.T) {
	settings := defaultCryptoSettings()
	settings.ExportPrimes = false
	f := setupGenerationService(t, settings)

	var privateContent []byte
	f.engine.On("GenerateKeyPair", 1024).Return(testKeyPair(t), nil)
	f.vault.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, keys.KeyTypePublic).Return(nil)
	f.vault.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, keys.KeyTypePrivate).
		Run(func(args mock.Arguments) { privateContent = args.Get(1).([]byte) }).
		Return(nil)
	f.repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	_, err := f.service.Generate(context.Background(), 1024)
	require.NoError(t, err)

	record, err := cryptography.ParseKey(privateContent, cryptoalg.KeyKindPrivate)
	require.NoError(t, err)
	assert.False(t, record.HasPrimes())
}

func TestCryptoKeyGenerationService_Generate_RetriesOnNoInverse(t *testing.T) {
	f := setupGenerationService(t, defaultCryptoSettings())
	noInverse := fmt.Errorf("%w: %w", cryptoalg.ErrGenerationFailure, cryptoalg.ErrNoInverse)

	f.engine.On("GenerateKeyPair", 1024).Return(nil, noInverse).Twice()
	f.engine.On("GenerateKeyPair", 1024).Return(testKeyPair(t), nil).Once()
	f.vault.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	metas, err := f.service.Generate(context.Background(), 1024)
	require.NoError(t, err)
	assert.Len(t, metas, 2)
	assert.Equal(t, float64(3), promtestutil.ToFloat64(f.metrics.KeyGenerationAttempts))
	f.engine.AssertNumberOfCalls(t, "GenerateKeyPair", 3)
}

func TestCryptoKeyGenerationService_Generate_GivesUp(t *testing.T) {
	f := setupGenerationService(t, defaultCryptoSettings())
	noInverse := fmt.Errorf("%w: %w", cryptoalg.ErrGenerationFailure, cryptoalg.ErrNoInverse)
	f.engine.On("GenerateKeyPair", 1024).Return(nil, noInverse)

	_, err := f.service.Generate(context.Background(), 1024)
	require.Error(t, err)
	assert.ErrorIs(t, err, cryptoalg.ErrGenerationFailure)
	assert.ErrorIs(t, err, cryptoalg.ErrNoInverse)
	f.engine.AssertNumberOfCalls(t, "GenerateKeyPair", 3)
	f.vault.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	assert.Equal(t, float64(1), promtestutil.ToFloat64(f.metrics.KeyGenerations.WithLabelValues(metrics.LabelStatusFail)))
}

func TestCryptoKeyGenerationService_Generate_UnsupportedSizeIsNotRetried(t *testing.T) {
	f := setupGenerationService(t, defaultCryptoSettings())
	f.engine.On("GenerateKeyPair", 1000).Return(nil, cryptoalg.ErrGenerationFailure)

	_, err := f.service.Generate(context.Background(), 1000)
	assert.ErrorIs(t, err, cryptoalg.ErrGenerationFailure)
	f.engine.AssertNumberOfCalls(t, "GenerateKeyPair", 1)
}

func TestCryptoKeyGenerationService_Generate_RollsBackOnRepositoryFailure(t *testing.T) {
	f := setupGenerationService(t, defaultCryptoSettings())
	dbErr := errors.New("database unavailable")

	f.engine.On("GenerateKeyPair", 1024).Return(testKeyPair(t), nil)
	f.vault.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.vault.On("Delete", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.repo.On("Create", mock.Anything, mock.MatchedBy(func(k *keys.CryptoKeyMeta) bool { return k.IsPublic() })).Return(nil)
	f.repo.On("Create", mock.Anything, mock.MatchedBy(func(k *keys.CryptoKeyMeta) bool { return !k.IsPublic() })).Return(dbErr)
	f.repo.On("DeleteByID", mock.Anything, mock.Anything).Return(nil)

	_, err := f.service.Generate(context.Background(), 1024)
	assert.ErrorIs(t, err, dbErr)

	f.vault.AssertNumberOfCalls(t, "Delete", 2)
	f.repo.AssertNumberOfCalls(t, "DeleteByID", 1)
}

func TestCryptoKeyGenerationService_Generate_CancelledContext(t *testing.T) {
	f := setupGenerationService(t, defaultCryptoSettings())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.service.Generate(ctx, 1024)
	assert.ErrorIs(t, err, context.Canceled)
	f.engine.AssertNotCalled(t, "GenerateKeyPair", mock.Anything)
}

func TestCryptoKeyGenerationService_GenerateAsync(t *testing.T) {
	f := setupGenerationService(t, defaultCryptoSettings())
	f.engine.On("GenerateKeyPair", 1024).Return(testKeyPair(t), nil)
	f.vault.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	results := f.service.GenerateAsync(context.Background(), 1024)
	result, ok := <-results
	require.True(t, ok)
	require.NoError(t, result.Err)
	assert.Len(t, result.Keys, 2)

	_, ok = <-results
	assert.False(t, ok, "channel should be closed after the single result")
}

func TestNewCryptoKeyGenerationService_RequiresDependencies(t *testing.T) {
	_, err := NewCryptoKeyGenerationService(nil, nil, nil, nil, nil, testutil.SetupTestLogger(t))
	assert.Error(t, err)
}

func TestFingerprint(t *testing.T) {
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", Fingerprint(nil))
	assert.Len(t, Fingerprint([]byte{0x01, 0x02}), 64)
}

func TestCryptoKeyMetadataService(t *testing.T) {
	log := testutil.SetupTestLogger(t)
	meta := &keys.CryptoKeyMeta{ID: "key-1", KeyPairID: "pair-1", Type: keys.KeyTypePrivate}

	t.Run("GetByID", func(t *testing.T) {
		repo := &MockCryptoKeyRepository{}
		repo.On("GetByID", mock.Anything, "key-1").Return(meta, nil)
		service, err := NewCryptoKeyMetadataService(&MockVaultConnector{}, repo, log)
		require.NoError(t, err)

		got, err := service.GetByID(context.Background(), "key-1")
		require.NoError(t, err)
		assert.Equal(t, meta, got)
	})

	t.Run("GetByID not found", func(t *testing.T) {
		repo := &MockCryptoKeyRepository{}
		repo.On("GetByID", mock.Anything, "missing").Return(nil, keys.ErrCryptoKeyNotFound)
		service, err := NewCryptoKeyMetadataService(&MockVaultConnector{}, repo, log)
		require.NoError(t, err)

		_, err = service.GetByID(context.Background(), "missing")
		assert.ErrorIs(t, err, keys.ErrCryptoKeyNotFound)
	})

	t.Run("List rejects invalid query", func(t *testing.T) {
		repo := &MockCryptoKeyRepository{}
		service, err := NewCryptoKeyMetadataService(&MockVaultConnector{}, repo, log)
		require.NoError(t, err)

		query := keys.NewCryptoKeyQuery()
		query.SortOrder = "sideways"
		_, err = service.List(context.Background(), query)
		assert.Error(t, err)
		repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
	})

	t.Run("List", func(t *testing.T) {
		repo := &MockCryptoKeyRepository{}
		repo.On("List", mock.Anything, mock.Anything).Return([]*keys.CryptoKeyMeta{meta}, nil)
		service, err := NewCryptoKeyMetadataService(&MockVaultConnector{}, repo, log)
		require.NoError(t, err)

		got, err := service.List(context.Background(), keys.NewCryptoKeyQuery())
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("DeleteByID removes file then metadata", func(t *testing.T) {
		repo := &MockCryptoKeyRepository{}
		vault := &MockVaultConnector{}
		repo.On("GetByID", mock.Anything, "key-1").Return(meta, nil)
		vault.On("Delete", mock.Anything, "key-1", "pair-1", keys.KeyTypePrivate).Return(nil)
		repo.On("DeleteByID", mock.Anything, "key-1").Return(nil)
		service, err := NewCryptoKeyMetadataService(vault, repo, log)
		require.NoError(t, err)

		require.NoError(t, service.DeleteByID(context.Background(), "key-1"))
		vault.AssertExpectations(t)
		repo.AssertExpectations(t)
	})

	t.Run("DeleteByID tolerates a missing key file", func(t *testing.T) {
		repo := &MockCryptoKeyRepository{}
		vault := &MockVaultConnector{}
		repo.On("GetByID", mock.Anything, "key-1").Return(meta, nil)
		vault.On("Delete", mock.Anything, "key-1", "pair-1", keys.KeyTypePrivate).Return(keys.ErrCryptoKeyNotFound)
		repo.On("DeleteByID", mock.Anything, "key-1").Return(nil)
		service, err := NewCryptoKeyMetadataService(vault, repo, log)
		require.NoError(t, err)

		require.NoError(t, service.DeleteByID(context.Background(), "key-1"))
		repo.AssertExpectations(t)
	})

	t.Run("DeleteByID vault failure keeps metadata", func(t *testing.T) {
		repo := &MockCryptoKeyRepository{}
		vault := &MockVaultConnector{}
		repo.On("GetByID", mock.Anything, "key-1").Return(meta, nil)
		vault.On("Delete", mock.Anything, "key-1", "pair-1", keys.KeyTypePrivate).Return(errors.New("storage down"))
		service, err := NewCryptoKeyMetadataService(vault, repo, log)
		require.NoError(t, err)

		assert.Error(t, service.DeleteByID(context.Background(), "key-1"))
		repo.AssertNotCalled(t, "DeleteByID", mock.Anything, mock.Anything)
	})
}

func TestCryptoKeyDownloadService_DownloadByID(t *testing.T) {
	log := testutil.SetupTestLogger(t)
	meta := &keys.CryptoKeyMeta{ID: "key-1", KeyPairID: "pair-1", Type: keys.KeyTypePublic}

	repo := &MockCryptoKeyRepository{}
	vault := &MockVaultConnector{}
	repo.On("GetByID", mock.Anything, "key-1").Return(meta, nil)
	vault.On("Download", mock.Anything, "key-1", "pair-1", keys.KeyTypePublic).Return([]byte("c35\n10001"), nil)

	service, err := NewCryptoKeyDownloadService(vault, repo, log)
	require.NoError(t, err)

	content, err := service.DownloadByID(context.Background(), "key-1")
	require.NoError(t, err)
	assert.Equal(t, []byte("c35\n10001"), content)
}
