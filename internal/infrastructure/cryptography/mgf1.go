package cryptography

import (
	"encoding/binary"
	"fmt"

	"github.com/Photic23/rsa-oaep/internal/domain/cryptoalg"
	"github.com/Photic23/rsa-oaep/internal/infrastructure/cryptography/sha256"
)

// maxMaskLength is 2^32 hash outputs.
var maxMaskLength int64 = (1 << 32) * sha256.Size

// MGF1 derives a mask of exactly length bytes from seed by hashing seed with a big-endian
// 32-bit counter and concatenating the digests.
func MGF1(seed []byte, length int) ([]byte, error) {
	if length < 0 {
		return nil, fmt.Errorf("mask length must not be negative, got %d", length)
	}
	if int64(length) > maxMaskLength {
		return nil, fmt.Errorf("%w: requested %d bytes, at most %d allowed", cryptoalg.ErrMaskTooLong, length, maxMaskLength)
	}

	out := make([]byte, 0, length+sha256.Size)
	h := sha256.New()
	var counter [4]byte
	for c := uint32(0); len(out) < length; c++ {
		binary.BigEndian.PutUint32(counter[:], c)
		h.Reset()
		h.Update(seed).Update(counter[:])
		out = h.Sum(out)
	}
	return out[:length], nil
}

// mgf1XOR xors dst in place with MGF1(seed, len(dst)).
func mgf1XOR(dst, seed []byte) error {
	mask, err := MGF1(seed, len(dst))
	if err != nil {
		return err
	}
	for i := range dst {
		dst[i] ^= mask[i]
	}
	return nil
}
