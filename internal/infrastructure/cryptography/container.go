package cryptography

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/Photic23/rsa-oaep/internal/domain/cryptoalg"
)

// NormalizeExtension lower-cases ext and truncates it to the width of the header field.
func NormalizeExtension(ext string) string {
	ext = strings.ToLower(ext)
	if len(ext) > cryptoalg.ExtensionFieldSize {
		ext = ext[:cryptoalg.ExtensionFieldSize]
	}
	return ext
}

// EncodeHeader returns the 11-byte container header for ext: its length followed by the
// space-padded extension.
func EncodeHeader(ext string) []byte {
	ext = NormalizeExtension(ext)

	header := make([]byte, cryptoalg.HeaderSize)
	header[0] = byte(len(ext))
	copy(header[1:], ext)
	for i := 1 + len(ext); i < cryptoalg.HeaderSize; i++ {
		header[i] = ' '
	}
	return header
}

// DecodeHeader reads the container header from r and returns the recorded extension.
func DecodeHeader(r io.Reader) (string, error) {
	header := make([]byte, cryptoalg.HeaderSize)
	if _, err := io.ReadFull(r, header); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return "", fmt.Errorf("%w: header is shorter than %d bytes", cryptoalg.ErrInvalidContainerHeader, cryptoalg.HeaderSize)
		}
		return "", ioError("failed to read container header", err)
	}

	n := int(header[0])
	if n > cryptoalg.ExtensionFieldSize {
		return "", fmt.Errorf("%w: extension length %d exceeds %d", cryptoalg.ErrInvalidContainerHeader, n, cryptoalg.ExtensionFieldSize)
	}
	return string(header[1 : 1+n]), nil
}

// ResolveOutputPath replaces the extension of output with ext unless output already ends with it.
func ResolveOutputPath(output, ext string) string {
	if strings.HasSuffix(output, ext) {
		return output
	}
	return strings.TrimSuffix(output, filepath.Ext(output)) + ext
}

func writeRecord(w io.Writer, block []byte) error {
	var prefix [cryptoalg.LengthPrefixSize]byte
	binary.BigEndian.PutUint32(prefix[:], uint32(len(block)))
	if _, err := w.Write(prefix[:]); err != nil {
		return ioError("failed to write block length", err)
	}
	if _, err := w.Write(block); err != nil {
		return ioError("failed to write block", err)
	}
	return nil
}

// readRecord reads the next record into buf, which must be k bytes long. It returns io.EOF when the
// stream ends cleanly before a length prefix.
func readRecord(r io.Reader, buf []byte) error {
	var prefix [cryptoalg.LengthPrefixSize]byte
	n, err := io.ReadFull(r, prefix[:])
	switch {
	case n == 0 && errors.Is(err, io.EOF):
		return io.EOF
	case errors.Is(err, io.ErrUnexpectedEOF):
		return fmt.Errorf("%w: length prefix cut after %d bytes", cryptoalg.ErrTruncatedBlock, n)
	case err != nil:
		return ioError("failed to read block length", err)
	}

	length := int64(binary.BigEndian.Uint32(prefix[:]))
	if length != int64(len(buf)) {
		copied, err := io.CopyN(io.Discard, r, length)
		if copied < length {
			if err != nil && !errors.Is(err, io.EOF) {
				return ioError("failed to read block", err)
			}
			return &cryptoalg.LengthError{Err: cryptoalg.ErrTruncatedBlock, Field: "block", Limit: int(length), Actual: int(copied)}
		}
		return &cryptoalg.LengthError{Err: cryptoalg.ErrInvalidCiphertextLength, Field: "ciphertext", Limit: len(buf), Actual: int(length)}
	}

	if n, err := io.ReadFull(r, buf); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return &cryptoalg.LengthError{Err: cryptoalg.ErrTruncatedBlock, Field: "block", Limit: len(buf), Actual: n}
		}
		return ioError("failed to read block", err)
	}
	return nil
}
