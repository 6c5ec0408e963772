package cryptography

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"

	"github.com/Photic23/rsa-oaep/internal/domain/cryptoalg"
)

var (
	bigOne   = big.NewInt(1)
	bigTwo   = big.NewInt(2)
	bigThree = big.NewInt(3)
)

// IsPrime runs the Miller-Rabin test on n with the given number of rounds, drawing bases uniformly
// from [2, n-2]. A failure to read randomness makes the candidate count as composite.
func IsPrime(n *big.Int, rounds int, random io.Reader) bool {
	if n.Cmp(bigTwo) < 0 {
		return false
	}
	if n.Cmp(bigThree) <= 0 {
		return true
	}
	if n.Bit(0) == 0 {
		return false
	}

	nMinusOne := new(big.Int).Sub(n, bigOne)
	r := nMinusOne.TrailingZeroBits()
	d := new(big.Int).Rsh(nMinusOne, r)
	span := new(big.Int).Sub(n, bigThree)

	for i := 0; i < rounds; i++ {
		a, err := rand.Int(random, span)
		if err != nil {
			return false
		}
		a.Add(a, bigTwo)

		x := new(big.Int).Exp(a, d, n)
		if x.Cmp(bigOne) == 0 || x.Cmp(nMinusOne) == 0 {
			continue
		}

		witness := true
		for j := uint(1); j < r; j++ {
			x.Exp(x, bigTwo, n)
			if x.Cmp(nMinusOne) == 0 {
				witness = false
				break
			}
		}
		if witness {
			return false
		}
	}
	return true
}

// GeneratePrime returns a random prime of exactly bits bits. Both the top and the bottom bit of every
// candidate are set.
func GeneratePrime(bits int, random io.Reader) (*big.Int, error) {
	if bits < 2 {
		return nil, fmt.Errorf("%w: prime size must be at least 2 bits, got %d", cryptoalg.ErrGenerationFailure, bits)
	}

	buf := make([]byte, (bits+7)/8)
	excess := uint(len(buf)*8 - bits)
	candidate := new(big.Int)
	for {
		if _, err := io.ReadFull(random, buf); err != nil {
			return nil, fmt.Errorf("%w: failed to read random bytes: %w", cryptoalg.ErrGenerationFailure, err)
		}
		buf[0] &= byte(0xff >> excess)

		candidate.SetBytes(buf)
		candidate.SetBit(candidate, bits-1, 1)
		candidate.SetBit(candidate, 0, 1)

		if IsPrime(candidate, cryptoalg.MillerRabinRounds, random) {
			return new(big.Int).Set(candidate), nil
		}
	}
}

// ExtendedGCD returns g = gcd(a, b) and Bezout coefficients x, y with a*x + b*y = g.
// a and b must be non-negative.
func ExtendedGCD(a, b *big.Int) (g, x, y *big.Int) {
	if b.Sign() == 0 {
		return new(big.Int).Set(a), big.NewInt(1), big.NewInt(0)
	}

	q, r := new(big.Int).DivMod(a, b, new(big.Int))
	g, x1, y1 := ExtendedGCD(b, r)

	y = new(big.Int).Mul(q, y1)
	y.Sub(x1, y)
	return g, y1, y
}

// ModInverse returns the d in [0, phi) with e*d = 1 mod phi.
func ModInverse(e, phi *big.Int) (*big.Int, error) {
	if phi.Sign() <= 0 {
		return nil, fmt.Errorf("%w: modulus must be positive", cryptoalg.ErrNoInverse)
	}

	g, x, _ := ExtendedGCD(new(big.Int).Mod(e, phi), phi)
	if g.Cmp(bigOne) != 0 {
		return nil, fmt.Errorf("%w: gcd(e, phi) is %s", cryptoalg.ErrNoInverse, g)
	}
	return x.Mod(x, phi), nil
}
