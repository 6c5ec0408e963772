//go:build unit
// +build unit

package cryptography

import (
	"errors"
	"math/big"
	"testing"

	"github.com/Photic23/rsa-oaep/internal/domain/cryptoalg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalKey(t *testing.T) {
	record := &cryptoalg.KeyRecord{
		Kind:     cryptoalg.KeyKindPrivate,
		N:        big.NewInt(3233),
		Exponent: big.NewInt(2753),
		P:        big.NewInt(61),
		Q:        big.NewInt(53),
	}

	data, err := MarshalKey(record)
	require.NoError(t, err)
	assert.Equal(t, "ca1\nac1\n3d\n35", string(data))

	record.Kind = cryptoalg.KeyKindPublic
	record.Exponent = big.NewInt(17)
	data, err = MarshalKey(record)
	require.NoError(t, err)
	assert.Equal(t, "ca1\n11", string(data))

	_, err = MarshalKey(&cryptoalg.KeyRecord{})
	assert.Error(t, err)
}

func TestParseKey(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		kind     cryptoalg.KeyKind
		wantErr  bool
		wantLine int
		primes   bool
	}{
		{name: "public", data: "ca1\n11", kind: cryptoalg.KeyKindPublic},
		{name: "private two fields", data: "ca1\nac1", kind: cryptoalg.KeyKindPrivate},
		{name: "private four fields", data: "ca1\nac1\n3d\n35", kind: cryptoalg.KeyKindPrivate, primes: true},
		{name: "trailing newline", data: "ca1\n11\n", kind: cryptoalg.KeyKindPublic},
		{name: "windows line endings", data: "ca1\r\n11", kind: cryptoalg.KeyKindPublic},
		{name: "uppercase hex", data: "CA1\n11", kind: cryptoalg.KeyKindPublic},
		{name: "empty", data: "", kind: cryptoalg.KeyKindPublic, wantErr: true},
		{name: "one field", data: "ca1", kind: cryptoalg.KeyKindPublic, wantErr: true},
		{name: "three fields", data: "ca1\n11\n3d", kind: cryptoalg.KeyKindPrivate, wantErr: true},
		{name: "five fields", data: "ca1\nac1\n3d\n35\n1", kind: cryptoalg.KeyKindPrivate, wantErr: true},
		{name: "public with primes", data: "ca1\n11\n3d\n35", kind: cryptoalg.KeyKindPublic, wantErr: true},
		{name: "non hex", data: "ca1\nxyz", kind: cryptoalg.KeyKindPublic, wantErr: true, wantLine: 2},
		{name: "hex prefix", data: "0xca1\n11", kind: cryptoalg.KeyKindPublic, wantErr: true, wantLine: 1},
		{name: "signed", data: "-ca1\n11", kind: cryptoalg.KeyKindPublic, wantErr: true, wantLine: 1},
		{name: "zero exponent", data: "ca1\n0", kind: cryptoalg.KeyKindPublic, wantErr: true, wantLine: 2},
		{name: "blank field", data: "ca1\n\n3d\n35", kind: cryptoalg.KeyKindPrivate, wantErr: true, wantLine: 2},
		{name: "primes do not match modulus", data: "ca1\nac1\n3d\n37", kind: cryptoalg.KeyKindPrivate, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record, err := ParseKey([]byte(tt.data), tt.kind)

			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, cryptoalg.ErrInvalidKeyFormat)

				var formatErr *cryptoalg.KeyFormatError
				require.True(t, errors.As(err, &formatErr))
				assert.Equal(t, tt.wantLine, formatErr.Line)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.kind, record.Kind)
			assert.Equal(t, int64(3233), record.N.Int64())
			assert.Equal(t, tt.primes, record.HasPrimes())
		})
	}
}
