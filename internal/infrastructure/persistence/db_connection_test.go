//go:build unit
// +build unit

package persistence

import (
	"testing"

	"github.com/Photic23/rsa-oaep/internal/pkg/config"
	"github.com/stretchr/testify/assert"
)

func TestNewDBConnection_UnsupportedType(t *testing.T) {
	db, err := NewDBConnection(config.DatabaseSettings{Type: "mysql"})
	assert.Nil(t, db)
	assert.ErrorContains(t, err, "unsupported database type")
}

func TestNewGormCryptoKeyRepository_NilDB(t *testing.T) {
	repo, err := NewGormCryptoKeyRepository(nil, nil)
	assert.Nil(t, repo)
	assert.Error(t, err)
}
