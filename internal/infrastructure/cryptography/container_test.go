//go:build unit
// +build unit

package cryptography

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"

	"github.com/Photic23/rsa-oaep/internal/domain/cryptoalg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeHeader(t *testing.T) {
	tests := []struct {
		ext      string
		expected string
	}{
		{".pdf", "\x04.pdf      "},
		{".TXT", "\x04.txt      "},
		{"", "\x00          "},
		{".markdown", "\x09.markdown "},
		{".verylongextension", "\x0a.verylonge"},
	}

	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			header := EncodeHeader(tt.ext)
			assert.Len(t, header, cryptoalg.HeaderSize)
			assert.Equal(t, tt.expected, string(header))
		})
	}
}

func TestDecodeHeader(t *testing.T) {
	ext, err := DecodeHeader(bytes.NewReader(EncodeHeader(".tar")))
	require.NoError(t, err)
	assert.Equal(t, ".tar", ext)

	ext, err = DecodeHeader(bytes.NewReader(EncodeHeader("")))
	require.NoError(t, err)
	assert.Equal(t, "", ext)

	_, err = DecodeHeader(bytes.NewReader([]byte("\x04.pdf")))
	assert.ErrorIs(t, err, cryptoalg.ErrInvalidContainerHeader)

	_, err = DecodeHeader(bytes.NewReader([]byte("\x0b.abcdefghij")))
	assert.ErrorIs(t, err, cryptoalg.ErrInvalidContainerHeader)
}

func TestResolveOutputPath(t *testing.T) {
	tests := []struct {
		output   string
		ext      string
		expected string
	}{
		{"out/report", ".pdf", "out/report.pdf"},
		{"out/report.pdf", ".pdf", "out/report.pdf"},
		{"out/report.bin", ".pdf", "out/report.pdf"},
		{"out/report.bin", "", "out/report.bin"},
		{"archive.tar.gz", ".gz", "archive.tar.gz"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ResolveOutputPath(tt.output, tt.ext), "output %s ext %s", tt.output, tt.ext)
	}
}

func record(length uint32, body []byte) []byte {
	prefix := make([]byte, cryptoalg.LengthPrefixSize)
	binary.BigEndian.PutUint32(prefix, length)
	return append(prefix, body...)
}

func TestReadRecord(t *testing.T) {
	const k = 8
	block := []byte("01234567")

	tests := []struct {
		name    string
		data    []byte
		wantErr error
	}{
		{"complete record", record(k, block), nil},
		{"clean end of stream", nil, io.EOF},
		{"partial prefix", []byte{0x00, 0x00}, cryptoalg.ErrTruncatedBlock},
		{"short block", record(k, block[:5]), cryptoalg.ErrTruncatedBlock},
		{"declared longer and cut", record(k+4, block), cryptoalg.ErrTruncatedBlock},
		{"declared shorter", record(k-2, block[:6]), cryptoalg.ErrInvalidCiphertextLength},
		{"declared longer and complete", record(k+2, append(block, 'x', 'y')), cryptoalg.ErrInvalidCiphertextLength},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := make([]byte, k)
			err := readRecord(bytes.NewReader(tt.data), buf)
			if tt.wantErr == nil {
				require.NoError(t, err)
				assert.Equal(t, block, buf)
				return
			}
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}
