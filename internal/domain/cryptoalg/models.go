package cryptoalg

import (
	"fmt"
	"math/big"
)

// ByteSize returns k, the length in bytes of the modulus n.
func ByteSize(n *big.Int) int {
	return (n.BitLen() + 7) / 8
}

// PublicKey is the encryption half of a key pair.
type PublicKey struct {
	N *big.Int
	E *big.Int
}

// Size returns the modulus length in bytes.
func (k *PublicKey) Size() int {
	return ByteSize(k.N)
}

// MaxMessageSize returns the largest message a single OAEP block can carry under this key.
func (k *PublicKey) MaxMessageSize() int {
	return k.Size() - OAEPOverhead
}

// PrivateKey is the decryption half of a key pair.
type PrivateKey struct {
	N *big.Int
	D *big.Int
}

// Size returns the modulus length in bytes.
func (k *PrivateKey) Size() int {
	return ByteSize(k.N)
}

// KeyPair holds every value produced by key generation.
type KeyPair struct {
	N *big.Int
	E *big.Int
	D *big.Int
	P *big.Int
	Q *big.Int
}

// Public returns the (n, e) view of the pair.
func (kp *KeyPair) Public() *PublicKey {
	return &PublicKey{N: kp.N, E: kp.E}
}

// Private returns the (n, d) view of the pair.
func (kp *KeyPair) Private() *PrivateKey {
	return &PrivateKey{N: kp.N, D: kp.D}
}

// Size returns the modulus length in bytes.
func (kp *KeyPair) Size() int {
	return ByteSize(kp.N)
}

// PublicRecord returns the key file record for the public half.
func (kp *KeyPair) PublicRecord() *KeyRecord {
	return &KeyRecord{Kind: KeyKindPublic, N: kp.N, Exponent: kp.E}
}

// PrivateRecord returns the key file record for the private half, optionally carrying p and q.
func (kp *KeyPair) PrivateRecord(withPrimes bool) *KeyRecord {
	rec := &KeyRecord{Kind: KeyKindPrivate, N: kp.N, Exponent: kp.D}
	if withPrimes {
		rec.P = kp.P
		rec.Q = kp.Q
	}
	return rec
}

// KeyKind tells which exponent a KeyRecord carries.
type KeyKind int

const (
	KeyKindPublic KeyKind = iota
	KeyKindPrivate
)

func (k KeyKind) String() string {
	switch k {
	case KeyKindPublic:
		return "public"
	case KeyKindPrivate:
		return "private"
	default:
		return fmt.Sprintf("KeyKind(%d)", int(k))
	}
}

// ParseKeyKind maps "public" and "private" to their KeyKind.
func ParseKeyKind(s string) (KeyKind, error) {
	switch s {
	case "public":
		return KeyKindPublic, nil
	case "private":
		return KeyKindPrivate, nil
	default:
		return 0, fmt.Errorf("unknown key kind %q", s)
	}
}

// KeyRecord is the content of a key file: the modulus, one exponent and, for private keys, optionally the primes.
type KeyRecord struct {
	Kind     KeyKind
	N        *big.Int
	Exponent *big.Int
	P        *big.Int
	Q        *big.Int
}

// HasPrimes reports whether the record carries p and q.
func (r *KeyRecord) HasPrimes() bool {
	return r.P != nil && r.Q != nil
}

// PublicKey returns the record as a public key.
func (r *KeyRecord) PublicKey() (*PublicKey, error) {
	if r.Kind != KeyKindPublic {
		return nil, &KeyFormatError{Reason: fmt.Sprintf("expected a public key, got %s", r.Kind)}
	}
	return &PublicKey{N: r.N, E: r.Exponent}, nil
}

// PrivateKey returns the record as a private key.
func (r *KeyRecord) PrivateKey() (*PrivateKey, error) {
	if r.Kind != KeyKindPrivate {
		return nil, &KeyFormatError{Reason: fmt.Sprintf("expected a private key, got %s", r.Kind)}
	}
	return &PrivateKey{N: r.N, D: r.Exponent}, nil
}
