package cryptography

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"os"

	"github.com/Photic23/rsa-oaep/internal/domain/cryptoalg"
	"github.com/Photic23/rsa-oaep/internal/pkg/logger"
)

// rsaKeyEngine struct that implements the KeyEngine interface
type rsaKeyEngine struct {
	random io.Reader
	logger logger.Logger
}

// NewRSAKeyEngine creates and returns a new instance of rsaKeyEngine.
// A nil random source selects crypto/rand.
func NewRSAKeyEngine(random io.Reader, logger logger.Logger) (cryptoalg.KeyEngine, error) {
	if random == nil {
		random = rand.Reader
	}
	return &rsaKeyEngine{
		random: random,
		logger: logger,
	}, nil
}

// GenerateKeyPair generates an RSA key pair with e = 65537 and two distinct bits/2 primes.
func (r *rsaKeyEngine) GenerateKeyPair(bits int) (*cryptoalg.KeyPair, error) {
	if !cryptoalg.IsSupportedKeySize(bits) {
		return nil, fmt.Errorf("%w: unsupported key size %d, expected one of %v", cryptoalg.ErrGenerationFailure, bits, cryptoalg.SupportedKeySizes)
	}

	p, err := GeneratePrime(bits/2, r.random)
	if err != nil {
		return nil, err
	}
	var q *big.Int
	for q == nil || q.Cmp(p) == 0 {
		q, err = GeneratePrime(bits/2, r.random)
		if err != nil {
			return nil, err
		}
	}

	n := new(big.Int).Mul(p, q)
	phi := new(big.Int).Mul(new(big.Int).Sub(p, bigOne), new(big.Int).Sub(q, bigOne))
	e := big.NewInt(cryptoalg.PublicExponent)

	d, err := ModInverse(e, phi)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cryptoalg.ErrGenerationFailure, err)
	}

	r.logger.Info("Generated RSA key pair with ", n.BitLen(), " bit modulus")
	return &cryptoalg.KeyPair{N: n, E: e, D: d, P: p, Q: q}, nil
}

// SaveKey writes the record to path with owner-only permissions.
func (r *rsaKeyEngine) SaveKey(record *cryptoalg.KeyRecord, path string) error {
	data, err := MarshalKey(record)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return ioError("failed to write key file", err)
	}

	r.logger.Info("Saved RSA ", record.Kind, " key ", path)
	return nil
}

// LoadKey reads and parses the key file at path.
func (r *rsaKeyEngine) LoadKey(path string, kind cryptoalg.KeyKind) (*cryptoalg.KeyRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ioError("failed to read key file", err)
	}

	record, err := ParseKey(data, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to parse key file %s: %w", path, err)
	}

	r.logger.Info("Loaded RSA ", kind, " key ", path)
	return record, nil
}
