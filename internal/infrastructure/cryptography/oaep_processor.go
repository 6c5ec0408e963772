package cryptography

import (
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/Photic23/rsa-oaep/internal/domain/cryptoalg"
	"github.com/Photic23/rsa-oaep/internal/infrastructure/cryptography/sha256"
	"github.com/Photic23/rsa-oaep/internal/pkg/logger"
)

// oaepProcessor struct that implements the OAEPProcessor interface
type oaepProcessor struct {
	random io.Reader
	logger logger.Logger
}

// NewOAEPProcessor creates and returns a new instance of oaepProcessor.
// A nil random source selects crypto/rand for seed generation.
func NewOAEPProcessor(random io.Reader, logger logger.Logger) (cryptoalg.OAEPProcessor, error) {
	if random == nil {
		random = rand.Reader
	}
	return &oaepProcessor{
		random: random,
		logger: logger,
	}, nil
}

// Encode builds EM = 0x00 || maskedSeed || maskedDB with DB = SHA256(label) || PS || 0x01 || message
// and returns EM^e mod n as exactly k bytes.
func (o *oaepProcessor) Encode(message []byte, publicKey *cryptoalg.PublicKey, label []byte) ([]byte, error) {
	if publicKey == nil || publicKey.N == nil || publicKey.E == nil {
		return nil, errors.New("public key cannot be nil")
	}

	k := publicKey.Size()
	maxLen := k - cryptoalg.OAEPOverhead
	if len(message) > maxLen {
		return nil, &cryptoalg.LengthError{
			Err:    cryptoalg.ErrMessageTooLong,
			Field:  "message",
			Limit:  max(maxLen, 0),
			Actual: len(message),
			AtMost: true,
		}
	}

	lHash := sha256.Sum256(label)

	em := make([]byte, k)
	seed := em[1 : 1+cryptoalg.HashSize]
	db := em[1+cryptoalg.HashSize:]

	copy(db, lHash[:])
	db[len(db)-len(message)-1] = 0x01
	copy(db[len(db)-len(message):], message)

	if _, err := io.ReadFull(o.random, seed); err != nil {
		return nil, fmt.Errorf("failed to generate OAEP seed: %w", err)
	}

	if err := mgf1XOR(db, seed); err != nil {
		return nil, err
	}
	if err := mgf1XOR(seed, db); err != nil {
		return nil, err
	}

	m := new(big.Int).SetBytes(em)
	c := m.Exp(m, publicKey.E, publicKey.N)

	o.logger.Debug("OAEP encoded ", len(message), " byte message into ", k, " byte block")
	return c.FillBytes(make([]byte, k)), nil
}

// Decode reverses Encode. The leading byte, the label hash and the padding separator are all evaluated
// before the first failing check is reported.
func (o *oaepProcessor) Decode(block []byte, privateKey *cryptoalg.PrivateKey, label []byte) ([]byte, error) {
	if privateKey == nil || privateKey.N == nil || privateKey.D == nil {
		return nil, errors.New("private key cannot be nil")
	}

	k := privateKey.Size()
	if len(block) != k {
		return nil, &cryptoalg.LengthError{
			Err:    cryptoalg.ErrInvalidCiphertextLength,
			Field:  "ciphertext",
			Limit:  k,
			Actual: len(block),
		}
	}
	if k < cryptoalg.OAEPOverhead {
		return nil, fmt.Errorf("%w: modulus of %d bytes is too small for OAEP", cryptoalg.ErrInvalidCiphertextLength, k)
	}

	c := new(big.Int).SetBytes(block)
	if c.Cmp(privateKey.N) >= 0 {
		return nil, fmt.Errorf("%w: ciphertext representative out of range", cryptoalg.ErrInvalidPadding)
	}

	m := c.Exp(c, privateKey.D, privateKey.N)
	em := m.FillBytes(make([]byte, k))

	seed := em[1 : 1+cryptoalg.HashSize]
	db := em[1+cryptoalg.HashSize:]
	if err := mgf1XOR(seed, db); err != nil {
		return nil, err
	}
	if err := mgf1XOR(db, seed); err != nil {
		return nil, err
	}

	lHash := sha256.Sum256(label)
	leadingZero := subtle.ConstantTimeByteEq(em[0], 0)
	labelMatches := subtle.ConstantTimeCompare(db[:cryptoalg.HashSize], lHash[:])

	rest := db[cryptoalg.HashSize:]
	lookingForSeparator := 1
	index := 0
	invalid := 0
	for i, b := range rest {
		isZero := subtle.ConstantTimeByteEq(b, 0)
		isOne := subtle.ConstantTimeByteEq(b, 1)
		index = subtle.ConstantTimeSelect(lookingForSeparator&isOne, i, index)
		lookingForSeparator = subtle.ConstantTimeSelect(isOne, 0, lookingForSeparator)
		invalid = subtle.ConstantTimeSelect(lookingForSeparator&^isZero, 1, invalid)
	}

	switch {
	case leadingZero != 1:
		return nil, fmt.Errorf("%w: leading byte is not zero", cryptoalg.ErrInvalidPadding)
	case labelMatches != 1:
		return nil, cryptoalg.ErrInvalidLabelHash
	case lookingForSeparator == 1 || invalid == 1:
		return nil, fmt.Errorf("%w: missing 0x01 separator", cryptoalg.ErrInvalidPadding)
	}

	out := make([]byte, len(rest)-index-1)
	copy(out, rest[index+1:])

	o.logger.Debug("OAEP decoded ", k, " byte block into ", len(out), " byte message")
	return out, nil
}
