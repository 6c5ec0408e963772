package cryptography

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/Photic23/rsa-oaep/internal/domain/cryptoalg"
)

// MarshalKey encodes a record as lowercase hexadecimal fields separated by "\n", without a trailing newline.
// Public records are always written with two fields, private records with four when they carry p and q.
func MarshalKey(record *cryptoalg.KeyRecord) ([]byte, error) {
	if record == nil || record.N == nil || record.Exponent == nil {
		return nil, errors.New("key record is incomplete")
	}

	fields := []string{record.N.Text(16), record.Exponent.Text(16)}
	if record.Kind == cryptoalg.KeyKindPrivate && record.HasPrimes() {
		fields = append(fields, record.P.Text(16), record.Q.Text(16))
	}
	return []byte(strings.Join(fields, "\n")), nil
}

// ParseKey decodes a key file. Surrounding whitespace is ignored. The field count must be 2, or 4 for
// private keys, and each field must be a positive hexadecimal integer.
func ParseKey(data []byte, kind cryptoalg.KeyKind) (*cryptoalg.KeyRecord, error) {
	text := strings.TrimSpace(string(data))
	if text == "" {
		return nil, &cryptoalg.KeyFormatError{Reason: "empty key file"}
	}

	lines := strings.Split(text, "\n")
	switch {
	case len(lines) == 2:
	case len(lines) == 4 && kind == cryptoalg.KeyKindPrivate:
	case len(lines) == 4:
		return nil, &cryptoalg.KeyFormatError{Reason: "public key files hold exactly 2 fields"}
	default:
		return nil, &cryptoalg.KeyFormatError{Reason: fmt.Sprintf("expected 2 or 4 fields, got %d", len(lines))}
	}

	values := make([]*big.Int, len(lines))
	for i, line := range lines {
		v, err := parseHexField(strings.TrimSpace(line))
		if err != nil {
			return nil, &cryptoalg.KeyFormatError{Line: i + 1, Reason: err.Error()}
		}
		values[i] = v
	}

	record := &cryptoalg.KeyRecord{Kind: kind, N: values[0], Exponent: values[1]}
	if len(values) == 4 {
		record.P, record.Q = values[2], values[3]
		if new(big.Int).Mul(record.P, record.Q).Cmp(record.N) != 0 {
			return nil, &cryptoalg.KeyFormatError{Reason: "p*q does not equal n"}
		}
	}
	return record, nil
}

func parseHexField(s string) (*big.Int, error) {
	if s == "" {
		return nil, errors.New("empty field")
	}
	for _, c := range s {
		if !isHexDigit(c) {
			return nil, fmt.Errorf("invalid hexadecimal character %q", c)
		}
	}
	v, ok := new(big.Int).SetString(s, 16)
	if !ok {
		return nil, errors.New("not a hexadecimal integer")
	}
	if v.Sign() == 0 {
		return nil, errors.New("value must be positive")
	}
	return v, nil
}

func isHexDigit(c rune) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}
