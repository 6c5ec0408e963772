//go:build integration
// +build integration

package persistence

import (
	"strings"
	"testing"
	"time"

	"github.com/Photic23/rsa-oaep/internal/domain/cryptoalg"
	"github.com/Photic23/rsa-oaep/internal/domain/keys"
	"github.com/Photic23/rsa-oaep/internal/pkg/config"
	"github.com/Photic23/rsa-oaep/internal/pkg/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Test constants
const (
	TestKeySize2048 = 2048
	TestKeySize4096 = 4096

	TestFingerprint = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
)

// TestContext holds test database and repositories
type TestContext struct {
	DB            *gorm.DB
	CryptoKeyRepo keys.CryptoKeyRepository
}

// SetupTestDB initializes test database with automatic cleanup
func SetupTestDB(t *testing.T, dbType string) *TestContext {
	t.Helper()

	var settings config.DatabaseSettings
	cleanupFunc := func() {}

	switch dbType {
	case config.SqliteDbType:
		settings = config.DatabaseSettings{
			Type: config.SqliteDbType,
			DSN:  ":memory:",
		}

	case config.PostgresDbType:
		uniqueDBName := "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
		settings = config.DatabaseSettings{
			Type: config.PostgresDbType,
			DSN:  "user=postgres password=postgres host=localhost port=5432 sslmode=disable",
			Name: uniqueDBName,
		}
		cleanupFunc = func() {
			adminDSN := "user=postgres password=postgres host=localhost port=5432 dbname=postgres sslmode=disable"
			_ = DropDatabase(adminDSN, uniqueDBName)
		}

	default:
		t.Fatalf("Unsupported database type: %s", dbType)
	}

	db, err := NewDBConnection(settings)
	require.NoError(t, err, "Failed to create database connection")

	t.Cleanup(func() {
		_ = CloseDB(db)
		cleanupFunc()
	})

	require.NoError(t, Migrate(db), "Failed to migrate schema")

	cryptoKeyRepo, err := NewGormCryptoKeyRepository(db, testutil.SetupTestLogger(t))
	require.NoError(t, err, "Failed to create crypto key repository")

	return &TestContext{
		DB:            db,
		CryptoKeyRepo: cryptoKeyRepo,
	}
}

// CreateTestKey creates a public 2048 bit test key
func CreateTestKey(t *testing.T) *keys.CryptoKeyMeta {
	t.Helper()
	return CreateTestKeyWithOptions(t, uuid.NewString(), keys.KeyTypePublic, TestKeySize2048)
}

// CreateTestKeyWithOptions creates a test key belonging to keyPairID
func CreateTestKeyWithOptions(t *testing.T, keyPairID, keyType string, keySize int) *keys.CryptoKeyMeta {
	t.Helper()

	return &keys.CryptoKeyMeta{
		ID:              uuid.NewString(),
		KeyPairID:       keyPairID,
		Type:            keyType,
		Algorithm:       cryptoalg.AlgorithmRSAOAEP,
		KeySize:         uint32(keySize),
		Fingerprint:     TestFingerprint,
		DateTimeCreated: time.Now(),
	}
}
