// Package krypto provides the number theory behind the classical ciphers: modular
// reduction, greatest common divisors, modular inverses and random primes.
//
// # Modular Arithmetic
//
// Mod always returns a value in [0, m), also for negative inputs:
//
//	krypto.Mod(-3, 26) // 23
//
// ModularInverse uses the extended Euclidean algorithm and reports ErrNotInvertible
// when the value shares a factor with the modulus:
//
//	inv, err := krypto.ModularInverse(7, 95) // 68, nil
//	_, err = krypto.ModularInverse(5, 95)    // ErrNotInvertible
//
// # Primes
//
// GenerateRandomPrime returns a prime of the requested bit length drawn from
// crypto/rand; IsProbablePrime tests small integers. Neither makes any claim to
// key-generation quality.
package krypto
