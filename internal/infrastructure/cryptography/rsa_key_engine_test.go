//go:build unit
// +build unit

package cryptography

import (
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Photic23/rsa-oaep/internal/domain/cryptoalg"
	"github.com/Photic23/rsa-oaep/internal/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRSAKeyEngine_GenerateKeyPair(t *testing.T) {
	kp := testKeyPair(t)

	one := big.NewInt(1)
	phi := new(big.Int).Mul(new(big.Int).Sub(kp.P, one), new(big.Int).Sub(kp.Q, one))

	assert.Equal(t, 0, new(big.Int).Mul(kp.P, kp.Q).Cmp(kp.N), "n = p*q")
	assert.Equal(t, int64(cryptoalg.PublicExponent), kp.E.Int64())
	assert.NotEqual(t, 0, kp.P.Cmp(kp.Q), "p and q must differ")
	assert.Equal(t, testKeySize/2, kp.P.BitLen())
	assert.Equal(t, testKeySize/2, kp.Q.BitLen())
	assert.Equal(t, testKeySize/8, kp.Size())

	gcd := new(big.Int).GCD(nil, nil, phi, kp.E)
	assert.Equal(t, int64(1), gcd.Int64())

	ed := new(big.Int).Mul(kp.E, kp.D)
	assert.Equal(t, int64(1), ed.Mod(ed, phi).Int64(), "e*d mod phi = 1")

	assert.True(t, kp.P.ProbablyPrime(20))
	assert.True(t, kp.Q.ProbablyPrime(20))
}

func TestRSAKeyEngine_GenerateKeyPair_Errors(t *testing.T) {
	engine, _ := setupKeyEngine(t)

	for _, bits := range []int{0, 512, 1000, 8192} {
		_, err := engine.GenerateKeyPair(bits)
		assert.ErrorIs(t, err, cryptoalg.ErrGenerationFailure, "bits %d", bits)
	}

	failing, err := NewRSAKeyEngine(failingReader{}, testutil.SetupTestLogger(t))
	require.NoError(t, err)
	_, err = failing.GenerateKeyPair(1024)
	assert.ErrorIs(t, err, cryptoalg.ErrGenerationFailure)
}

func TestRSAKeyEngine_SaveAndLoadKeys(t *testing.T) {
	engine, _ := setupKeyEngine(t)
	kp := testKeyPair(t)
	dir := t.TempDir()

	t.Run("public key", func(t *testing.T) {
		path := filepath.Join(dir, "public-key.txt")
		require.NoError(t, engine.SaveKey(kp.PublicRecord(), path))

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, kp.N.Text(16)+"\n"+kp.E.Text(16), string(content))

		record, err := engine.LoadKey(path, cryptoalg.KeyKindPublic)
		require.NoError(t, err)
		pub, err := record.PublicKey()
		require.NoError(t, err)
		assert.Equal(t, 0, pub.N.Cmp(kp.N))
		assert.Equal(t, 0, pub.E.Cmp(kp.E))
	})

	t.Run("private key with primes", func(t *testing.T) {
		path := filepath.Join(dir, "private-key.txt")
		require.NoError(t, engine.SaveKey(kp.PrivateRecord(true), path))

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Len(t, strings.Split(string(content), "\n"), 4)
		assert.False(t, strings.HasSuffix(string(content), "\n"))

		record, err := engine.LoadKey(path, cryptoalg.KeyKindPrivate)
		require.NoError(t, err)
		require.True(t, record.HasPrimes())
		assert.Equal(t, 0, record.P.Cmp(kp.P))
		assert.Equal(t, 0, record.Q.Cmp(kp.Q))

		priv, err := record.PrivateKey()
		require.NoError(t, err)
		assert.Equal(t, 0, priv.D.Cmp(kp.D))
	})

	t.Run("private key without primes", func(t *testing.T) {
		path := filepath.Join(dir, "private-key-short.txt")
		require.NoError(t, engine.SaveKey(kp.PrivateRecord(false), path))

		record, err := engine.LoadKey(path, cryptoalg.KeyKindPrivate)
		require.NoError(t, err)
		assert.False(t, record.HasPrimes())
		assert.Equal(t, 0, record.Exponent.Cmp(kp.D))
	})

	t.Run("private key file loaded as public", func(t *testing.T) {
		path := filepath.Join(dir, "private-key.txt")
		_, err := engine.LoadKey(path, cryptoalg.KeyKindPublic)
		assert.ErrorIs(t, err, cryptoalg.ErrInvalidKeyFormat)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := engine.LoadKey(filepath.Join(dir, "missing.txt"), cryptoalg.KeyKindPublic)
		assert.ErrorIs(t, err, cryptoalg.ErrIOFailure)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("unwritable path", func(t *testing.T) {
		err := engine.SaveKey(kp.PublicRecord(), filepath.Join(dir, "no-such-dir", "key.txt"))
		assert.ErrorIs(t, err, cryptoalg.ErrIOFailure)
	})
}
