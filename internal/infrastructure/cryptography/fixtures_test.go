//go:build unit
// +build unit

package cryptography

import (
	"errors"
	"sync"
	"testing"

	"github.com/Photic23/rsa-oaep/internal/domain/cryptoalg"
	"github.com/Photic23/rsa-oaep/internal/pkg/logger"
	"github.com/Photic23/rsa-oaep/internal/pkg/testutil"
	"github.com/stretchr/testify/require"
)

const testKeySize = 1024

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
		engine, err := NewRSAKeyEngine(nil, log)
		if err != nil {
			fixtureErr = err
			return
		}
		fixturePair, fixtureErr = engine.GenerateKeyPair(testKeySize)
	})
	require.NoError(t, fixtureErr)
	return fixturePair
}

func setupKeyEngine(t *testing.T) (cryptoalg.KeyEngine, logger.Logger) {
	t.Helper()
	log := testutil.SetupTestLogger(t)
	engine, err := NewRSAKeyEngine(nil, log)
	require.NoError(t, err)
	return engine, log
}

func setupOAEPProcessor(t *testing.T) cryptoalg.OAEPProcessor {
	t.Helper()
	processor, err := NewOAEPProcessor(nil, testutil.SetupTestLogger(t))
	require.NoError(t, err)
	return processor
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("entropy source unavailable")
}
