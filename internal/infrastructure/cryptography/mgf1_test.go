//go:build unit
// +build unit

package cryptography

import (
	"encoding/hex"
	"testing"

	"github.com/Photic23/rsa-oaep/internal/domain/cryptoalg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMGF1_KnownAnswers(t *testing.T) {
	tests := []struct {
		seed     string
		length   int
		expected string
	}{
		{"foo", 3, "3bdaba"},
		{"foo", 5, "3bdaba83cf"},
		{"bar", 50, "382576a7841021cc28fc4c0948753fb8312090cea942ea4c4e735d10dc724b155f9f6069f289d61daca0cb814502ef04eae1"},
	}

	for _, tt := range tests {
		t.Run(tt.seed, func(t *testing.T) {
			mask, err := MGF1([]byte(tt.seed), tt.length)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, hex.EncodeToString(mask))
		})
	}
}

func TestMGF1_LengthAndPrefix(t *testing.T) {
	seed := []byte("deterministic seed")

	long, err := MGF1(seed, 200)
	require.NoError(t, err)
	require.Len(t, long, 200)

	for _, n := range []int{0, 1, 31, 32, 33, 64, 199} {
		short, err := MGF1(seed, n)
		require.NoError(t, err)
		assert.Len(t, short, n)
		assert.Equal(t, long[:n], short, "length %d", n)
	}
}

func TestMGF1_Errors(t *testing.T) {
	_, err := MGF1([]byte("seed"), -1)
	assert.Error(t, err)

	_, err = MGF1([]byte("seed"), int(maxMaskLength)+1)
	assert.ErrorIs(t, err, cryptoalg.ErrMaskTooLong)
}

func TestMGF1XOR_IsInvolution(t *testing.T) {
	data := []byte("mask me twice and nothing changes")
	buf := append([]byte(nil), data...)

	require.NoError(t, mgf1XOR(buf, []byte("seed")))
	assert.NotEqual(t, data, buf)

	require.NoError(t, mgf1XOR(buf, []byte("seed")))
	assert.Equal(t, data, buf)
}
