package krypto

import (
	"crypto/rand"
	"errors"
	"math/big"
)

// ErrInvalidBitSize is returned for prime sizes below 2 bits.
var ErrInvalidBitSize = errors.New("prime bit size must be at least 2")

// primalityRounds is the number of Miller-Rabin rounds used by IsProbablePrime.
const primalityRounds = 20

// GenerateRandomPrime returns a random prime of exactly bits bits.
// It draws from crypto/rand, although nothing in this module relies on the primes
// being secret.
func GenerateRandomPrime(bits int) (*big.Int, error) {
	if bits < 2 {
		return nil, ErrInvalidBitSize
	}
	return rand.Prime(rand.Reader, bits)
}

// IsProbablePrime reports whether n is prime with overwhelming probability.
func IsProbablePrime(n int64) bool {
	if n < 2 {
		return false
	}
	return big.NewInt(n).ProbablyPrime(primalityRounds)
}
