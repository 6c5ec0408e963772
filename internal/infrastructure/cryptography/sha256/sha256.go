// Package sha256 implements the SHA-256 hash function as defined in FIPS 180-4.
//
// It is the only hash primitive used by the engine: MGF1, the OAEP label hash and key fingerprints
// all go through it.
package sha256

import (
	"encoding/binary"
	"encoding/hex"
	"hash"
	"math/bits"
)

// Size is the length of a SHA-256 digest in bytes.
const Size = 32

// BlockSize is the block size of SHA-256 in bytes.
const BlockSize = 64

var iv = [8]uint32{
	0x6a09e667, 0xbb67ae85, 0x3c6ef372, 0xa54ff53a,
	0x510e527f, 0x9b05688c, 0x1f83d9ab, 0x5be0cd19,
}

var k = [64]uint32{
	0x428a2f98, 0x71374491, 0xb5c0fbcf, 0xe9b5dba5, 0x3956c25b, 0x59f111f1, 0x923f82a4, 0xab1c5ed5,
	0xd807aa98, 0x12835b01, 0x243185be, 0x550c7dc3, 0x72be5d74, 0x80deb1fe, 0x9bdc06a7, 0xc19bf174,
	0xe49b69c1, 0xefbe4786, 0x0fc19dc6, 0x240ca1cc, 0x2de92c6f, 0x4a7484aa, 0x5cb0a9dc, 0x76f988da,
	0x983e5152, 0xa831c66d, 0xb00327c8, 0xbf597fc7, 0xc6e00bf3, 0xd5a79147, 0x06ca6351, 0x14292967,
	0x27b70a85, 0x2e1b2138, 0x4d2c6dfc, 0x53380d13, 0x650a7354, 0x766a0abb, 0x81c2c92e, 0x92722c85,
	0xa2bfe8a1, 0xa81a664b, 0xc24b8b70, 0xc76c51a3, 0xd192e819, 0xd6990624, 0xf40e3585, 0x106aa070,
	0x19a4c116, 0x1e376c08, 0x2748774c, 0x34b0bcb5, 0x391c0cb3, 0x4ed8aa4a, 0x5b9cca4f, 0x682e6ff3,
	0x748f82ee, 0x78a5636f, 0x84c87814, 0x8cc70208, 0x90befffa, 0xa4506ceb, 0xbef9a3f7, 0xc67178f2,
}

// Hasher accumulates input and produces SHA-256 digests. Finalizing does not modify the accumulated state,
// so Digest may be called repeatedly and Update may continue afterwards.
type Hasher struct {
	h   [8]uint32
	buf [BlockSize]byte
	nx  int
	len uint64
}

var _ hash.Hash = (*Hasher)(nil)

// New returns a Hasher with no input.
func New() *Hasher {
	d := &Hasher{}
	d.Reset()
	return d
}

// Sum256 returns the SHA-256 digest of data.
func Sum256(data []byte) [Size]byte {
	d := New()
	d.Update(data)
	return d.Digest()
}

// Reset discards all accumulated input.
func (d *Hasher) Reset() {
	d.h = iv
	d.nx = 0
	d.len = 0
}

// Size returns the digest length.
func (d *Hasher) Size() int { return Size }

// BlockSize returns the compression block length.
func (d *Hasher) BlockSize() int { return BlockSize }

// Update feeds p into the hash state and returns the Hasher for chaining.
func (d *Hasher) Update(p []byte) *Hasher {
	d.len += uint64(len(p))
	if d.nx > 0 {
		n := copy(d.buf[d.nx:], p)
		d.nx += n
		if d.nx == BlockSize {
			d.compress(d.buf[:])
			d.nx = 0
		}
		p = p[n:]
	}
	for len(p) >= BlockSize {
		d.compress(p[:BlockSize])
		p = p[BlockSize:]
	}
	if len(p) > 0 {
		d.nx = copy(d.buf[:], p)
	}
	return d
}

// Write implements io.Writer. It never fails.
func (d *Hasher) Write(p []byte) (int, error) {
	d.Update(p)
	return len(p), nil
}

// Sum appends the current digest to b.
func (d *Hasher) Sum(b []byte) []byte {
	digest := d.Digest()
	return append(b, digest[:]...)
}

// Digest returns the digest of everything fed so far.
func (d *Hasher) Digest() [Size]byte {
	c := *d
	return c.finish()
}

// HexDigest returns Digest as 64 lowercase hexadecimal characters.
func (d *Hasher) HexDigest() string {
	digest := d.Digest()
	return hex.EncodeToString(digest[:])
}

func (d *Hasher) finish() [Size]byte {
	bitLen := d.len << 3

	var pad [BlockSize + 8]byte
	pad[0] = 0x80
	n := 56 - d.nx
	if d.nx >= 56 {
		n += BlockSize
	}
	binary.BigEndian.PutUint64(pad[n:], bitLen)
	d.Update(pad[:n+8])

	var out [Size]byte
	for i, v := range d.h {
		binary.BigEndian.PutUint32(out[i*4:], v)
	}
	return out
}

func (d *Hasher) compress(block []byte) {
	var w [64]uint32
	for i := 0; i < 16; i++ {
		w[i] = binary.BigEndian.Uint32(block[i*4:])
	}
	for i := 16; i < 64; i++ {
		s0 := bits.RotateLeft32(w[i-15], -7) ^ bits.RotateLeft32(w[i-15], -18) ^ (w[i-15] >> 3)
		s1 := bits.RotateLeft32(w[i-2], -17) ^ bits.RotateLeft32(w[i-2], -19) ^ (w[i-2] >> 10)
		w[i] = w[i-16] + s0 + w[i-7] + s1
	}

	a, b, c, e, f, g, h := d.h[0], d.h[1], d.h[2], d.h[4], d.h[5], d.h[6], d.h[7]
	dd := d.h[3]
	for i := 0; i < 64; i++ {
		S1 := bits.RotateLeft32(e, -6) ^ bits.RotateLeft32(e, -11) ^ bits.RotateLeft32(e, -25)
		ch := (e & f) ^ (^e & g)
		t1 := h + S1 + ch + k[i] + w[i]
		S0 := bits.RotateLeft32(a, -2) ^ bits.RotateLeft32(a, -13) ^ bits.RotateLeft32(a, -22)
		maj := (a & b) ^ (a & c) ^ (b & c)
		t2 := S0 + maj

		h = g
		g = f
		f = e
		e = dd + t1
		dd = c
		c = b
		b = a
		a = t1 + t2
	}

	d.h[0] += a
	d.h[1] += b
	d.h[2] += c
	d.h[3] += dd
	d.h[4] += e
	d.h[5] += f
	d.h[6] += g
	d.h[7] += h
}
